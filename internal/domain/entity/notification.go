package entity

import "time"

// NotificationType classifies what a notification is about.
type NotificationType string

const (
	NotifyOrderStatus   NotificationType = "order_status"
	NotifyMessage       NotificationType = "message"
	NotifyReview        NotificationType = "review"
	NotifyProductUpdate NotificationType = "product_update"
	NotifySystem        NotificationType = "system"
)

// Notification is delivered to a single user.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	Data      map[string]any   `json:"data,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}
