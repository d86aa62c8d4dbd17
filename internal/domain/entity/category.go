package entity

import "time"

// Category is a node in the product taxonomy. ParentCategoryID is empty
// for root categories.
type Category struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	ParentCategoryID string    `json:"parentCategoryId,omitempty"`
	Attributes       []string  `json:"attributes,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
