package entity

import "time"

// Conversation groups messages between two or more participants,
// optionally about a specific product. A conversation is uniquely keyed
// by its participant set plus the product reference.
type Conversation struct {
	ID            string    `json:"id"`
	Participants  []string  `json:"participants"`
	ProductID     string    `json:"productId,omitempty"`
	LastMessageID string    `json:"lastMessageId,omitempty"`
	LastMessageAt time.Time `json:"lastMessageAt"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Message belongs to exactly one conversation.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	RecipientID    string    `json:"recipientId"`
	Content        string    `json:"content"`
	Attachments    []string  `json:"attachments,omitempty"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
