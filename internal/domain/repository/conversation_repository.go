package repository

import (
	"context"

	"github.com/vecino/marketplace/internal/domain/entity"
)

// NewMessage is the caller-supplied part of a message; id, conversation
// binding and timestamps are assigned by the repository.
type NewMessage struct {
	SenderID    string
	RecipientID string
	Content     string
	Attachments []string
}

// ConversationRepository extends the base contract with messaging
// operations. Messages live in their own collection but are only reachable
// through their conversation.
type ConversationRepository interface {
	BaseRepository[entity.Conversation]

	FindByParticipant(ctx context.Context, userID string, page *Page) ([]*entity.Conversation, error)
	FindByProduct(ctx context.Context, productID string, page *Page) ([]*entity.Conversation, error)

	// FindOrCreate is idempotent: the same participant set and product
	// always resolve to the same conversation.
	FindOrCreate(ctx context.Context, participants []string, productID string) (*entity.Conversation, error)

	// GetMessages returns the conversation's messages in chronological order.
	GetMessages(ctx context.Context, conversationID string, page *Page) ([]*entity.Message, error)

	// AddMessage appends a message and advances the conversation's
	// last-message pointer and timestamp.
	AddMessage(ctx context.Context, conversationID string, msg NewMessage) (*entity.Message, error)

	// MarkMessagesAsRead marks every unread message addressed to userID in
	// the conversation and returns how many were affected.
	MarkMessagesAsRead(ctx context.Context, conversationID string, userID string) (int64, error)
}
