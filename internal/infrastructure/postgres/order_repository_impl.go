package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vecino/marketplace/internal/domain/entity"
	"github.com/vecino/marketplace/internal/domain/repository"
	"github.com/vecino/marketplace/internal/infrastructure/identifier"
	"github.com/vecino/marketplace/internal/infrastructure/mapper"
)

// OrderRepository implements repository.OrderRepository on the orders
// collection. History queries come back most recent first.
type OrderRepository struct {
	*Collection[entity.Order]
}

func NewOrderRepository(pool *pgxpool.Pool, ids identifier.Codec, m *mapper.OrderMapper) *OrderRepository {
	return &OrderRepository{Collection: NewCollection[entity.Order](pool, "orders", ids, m)}
}

func (r *OrderRepository) findByField(ctx context.Context, field, value string, page *repository.Page) ([]*entity.Order, error) {
	q := "SELECT " + selectCols + " FROM orders WHERE doc->>'" + field + "' = $1 ORDER BY created_at DESC, id"
	q, args := paginate(q, []any{value}, page)
	return r.queryMany(ctx, q, args)
}

func (r *OrderRepository) FindByBuyer(ctx context.Context, buyerID string, page *repository.Page) ([]*entity.Order, error) {
	uid, err := r.ids.Parse(buyerID)
	if err != nil {
		return []*entity.Order{}, nil
	}
	return r.findByField(ctx, "buyerId", r.ids.Format(uid), page)
}

func (r *OrderRepository) FindBySeller(ctx context.Context, sellerID string, page *repository.Page) ([]*entity.Order, error) {
	uid, err := r.ids.Parse(sellerID)
	if err != nil {
		return []*entity.Order{}, nil
	}
	return r.findByField(ctx, "sellerId", r.ids.Format(uid), page)
}

func (r *OrderRepository) FindByStatus(ctx context.Context, status entity.OrderStatus, page *repository.Page) ([]*entity.Order, error) {
	return r.findByField(ctx, "status", string(status), page)
}

// FindByProduct matches orders whose line items contain the product.
func (r *OrderRepository) FindByProduct(ctx context.Context, productID string, page *repository.Page) ([]*entity.Order, error) {
	uid, err := r.ids.Parse(productID)
	if err != nil {
		return []*entity.Order{}, nil
	}
	contains := []any{mapper.Document{"productId": r.ids.Format(uid)}}
	q := "SELECT " + selectCols + " FROM orders WHERE doc->'items' @> $1 ORDER BY created_at DESC, id"
	q, args := paginate(q, []any{contains}, page)
	return r.queryMany(ctx, q, args)
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) (*entity.Order, error) {
	uid, err := r.ids.Parse(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	row := r.pool.QueryRow(ctx,
		"UPDATE orders SET doc = doc || jsonb_build_object('status', $2::text), updated_at = now() WHERE id = $1 RETURNING "+selectCols,
		uid, string(status))
	rec, err := scanRecord(row)
	if err != nil {
		return nil, err
	}
	return r.mapper.ToDomain(rec), nil
}

var _ repository.OrderRepository = (*OrderRepository)(nil)
