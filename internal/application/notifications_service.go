package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/vecino/marketplace/internal/domain/entity"
	"github.com/vecino/marketplace/internal/domain/repository"
)

// NotificationsService owns the per-user notification feed. Creation is
// mostly driven by the queue worker; the read and mark operations back
// the HTTP surface.
type NotificationsService struct {
	Notifications repository.NotificationRepository
	Logger        *logrus.Logger
}

func NewNotificationsService(notifications repository.NotificationRepository, logger *logrus.Logger) *NotificationsService {
	return &NotificationsService{Notifications: notifications, Logger: logger}
}

func (s *NotificationsService) Create(ctx context.Context, n *entity.Notification) (*entity.Notification, error) {
	return s.Notifications.Create(ctx, n)
}

// ListByUser returns the user's notifications, newest first.
func (s *NotificationsService) ListByUser(ctx context.Context, userID string, page *repository.Page) ([]*entity.Notification, error) {
	return s.Notifications.FindByUser(ctx, userID, page)
}

func (s *NotificationsService) MarkRead(ctx context.Context, id string) (*entity.Notification, error) {
	n, err := s.Notifications.MarkRead(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "Notification", id)
	}
	return n, nil
}

// MarkAllRead returns how many notifications were flipped to read.
func (s *NotificationsService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.Notifications.MarkAllRead(ctx, userID)
}
