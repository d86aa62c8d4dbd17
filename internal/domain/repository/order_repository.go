package repository

import (
	"context"

	"github.com/vecino/marketplace/internal/domain/entity"
)

// OrderRepository extends the base contract with order history queries.
type OrderRepository interface {
	BaseRepository[entity.Order]

	FindByBuyer(ctx context.Context, buyerID string, page *Page) ([]*entity.Order, error)
	FindBySeller(ctx context.Context, sellerID string, page *Page) ([]*entity.Order, error)
	FindByStatus(ctx context.Context, status entity.OrderStatus, page *Page) ([]*entity.Order, error)

	// FindByProduct returns orders containing a line item for the product.
	FindByProduct(ctx context.Context, productID string, page *Page) ([]*entity.Order, error)

	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) (*entity.Order, error)
}
