package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vecino/marketplace/internal/domain/entity"
	"github.com/vecino/marketplace/internal/domain/repository"
	"github.com/vecino/marketplace/internal/infrastructure/identifier"
	"github.com/vecino/marketplace/internal/infrastructure/mapper"
)

// NotificationRepository implements repository.NotificationRepository on
// the notifications collection.
type NotificationRepository struct {
	*Collection[entity.Notification]
}

func NewNotificationRepository(pool *pgxpool.Pool, ids identifier.Codec, m *mapper.NotificationMapper) *NotificationRepository {
	return &NotificationRepository{Collection: NewCollection[entity.Notification](pool, "notifications", ids, m)}
}

func (r *NotificationRepository) FindByUser(ctx context.Context, userID string, page *repository.Page) ([]*entity.Notification, error) {
	uid, err := r.ids.Parse(userID)
	if err != nil {
		return []*entity.Notification{}, nil
	}
	q := "SELECT " + selectCols + " FROM notifications WHERE doc->>'userId' = $1 ORDER BY created_at DESC, id"
	q, args := paginate(q, []any{r.ids.Format(uid)}, page)
	return r.queryMany(ctx, q, args)
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id string) (*entity.Notification, error) {
	uid, err := r.ids.Parse(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	row := r.pool.QueryRow(ctx,
		`UPDATE notifications SET doc = doc || '{"read": true}'::jsonb, updated_at = now() WHERE id = $1 RETURNING `+selectCols,
		uid)
	rec, err := scanRecord(row)
	if err != nil {
		return nil, err
	}
	return r.mapper.ToDomain(rec), nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	uid, err := r.ids.Parse(userID)
	if err != nil {
		return 0, repository.ErrNotFound
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE notifications SET doc = doc || '{"read": true}'::jsonb, updated_at = now()
		WHERE doc->>'userId' = $1 AND NOT coalesce((doc->>'read')::bool, false)`,
		r.ids.Format(uid))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

var _ repository.NotificationRepository = (*NotificationRepository)(nil)
