package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vecino/marketplace/internal/domain/entity"
	"github.com/vecino/marketplace/internal/domain/repository"
	"github.com/vecino/marketplace/pkg/notify"
)

// MessagingService owns the conversation use cases. Sending a message
// queues a notification for the recipient.
type MessagingService struct {
	Conversations repository.ConversationRepository
	Users         repository.UserRepository
	Notify        notify.Publisher
	Logger        *logrus.Logger
}

func NewMessagingService(conversations repository.ConversationRepository, users repository.UserRepository, publisher notify.Publisher, logger *logrus.Logger) *MessagingService {
	return &MessagingService{Conversations: conversations, Users: users, Notify: publisher, Logger: logger}
}

// StartConversation resolves the conversation for the participant set and
// optional product, creating it when absent.
func (s *MessagingService) StartConversation(ctx context.Context, participants []string, productID string) (*entity.Conversation, error) {
	if len(participants) < 2 {
		return nil, fmt.Errorf("conversation needs at least two participants")
	}
	return s.Conversations.FindOrCreate(ctx, participants, productID)
}

func (s *MessagingService) FindByID(ctx context.Context, id string) (*entity.Conversation, error) {
	c, err := s.Conversations.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "Conversation", id)
	}
	return c, nil
}

func (s *MessagingService) ListByParticipant(ctx context.Context, userID string, page *repository.Page) ([]*entity.Conversation, error) {
	return s.Conversations.FindByParticipant(ctx, userID, page)
}

func (s *MessagingService) ListByProduct(ctx context.Context, productID string, page *repository.Page) ([]*entity.Conversation, error) {
	return s.Conversations.FindByProduct(ctx, productID, page)
}

// SendMessage appends the message and queues a notification for the
// recipient. The notification is best effort.
func (s *MessagingService) SendMessage(ctx context.Context, conversationID string, msg repository.NewMessage) (*entity.Message, error) {
	m, err := s.Conversations.AddMessage(ctx, conversationID, msg)
	if err != nil {
		return nil, translateNotFound(err, "Conversation", conversationID)
	}
	s.notifyRecipient(ctx, m)
	return m, nil
}

// GetMessages returns the conversation's messages oldest first.
func (s *MessagingService) GetMessages(ctx context.Context, conversationID string, page *repository.Page) ([]*entity.Message, error) {
	return s.Conversations.GetMessages(ctx, conversationID, page)
}

// MarkRead marks every unread message addressed to userID and returns how
// many were affected.
func (s *MessagingService) MarkRead(ctx context.Context, conversationID, userID string) (int64, error) {
	return s.Conversations.MarkMessagesAsRead(ctx, conversationID, userID)
}

func (s *MessagingService) notifyRecipient(ctx context.Context, m *entity.Message) {
	if s.Notify == nil || m.RecipientID == "" {
		return
	}
	job := notify.Job{
		UserID:  m.RecipientID,
		Type:    string(entity.NotifyMessage),
		Title:   "New message",
		Message: m.Content,
		Data:    map[string]any{"conversation_id": m.ConversationID, "message_id": m.ID, "sender_id": m.SenderID},
	}
	if s.Users != nil {
		if recipient, err := s.Users.FindByID(ctx, m.RecipientID); err == nil {
			job.Email = recipient.Email
		}
	}
	if err := s.Notify.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("message_id", m.ID).Warn("notification publish failed")
	}
}
