package repository

import (
	"context"

	"github.com/vecino/marketplace/internal/domain/entity"
)

// NotificationRepository extends the base contract with per-user queries.
type NotificationRepository interface {
	BaseRepository[entity.Notification]

	FindByUser(ctx context.Context, userID string, page *Page) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, id string) (*entity.Notification, error)

	// MarkAllRead marks every unread notification of the user and returns
	// how many were affected.
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}
