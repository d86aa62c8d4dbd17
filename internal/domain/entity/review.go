package entity

import "time"

// Review is a buyer's rating of a product, 1 to 5.
type Review struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"productId"`
	ReviewerID string    `json:"reviewerId"`
	Rating     int       `json:"rating"`
	Title      string    `json:"title,omitempty"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
