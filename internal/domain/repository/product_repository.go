package repository

import (
	"context"

	"github.com/vecino/marketplace/internal/domain/entity"
)

// ProductRepository extends the base contract with catalog queries.
type ProductRepository interface {
	BaseRepository[entity.Product]

	FindBySeller(ctx context.Context, sellerID string, page *Page) ([]*entity.Product, error)
	FindByCategory(ctx context.Context, categoryID string, page *Page) ([]*entity.Product, error)

	// Search matches title, description and tags, ranked by relevance.
	Search(ctx context.Context, query string, page *Page) ([]*entity.Product, error)

	FindByStatus(ctx context.Context, status entity.ProductStatus, page *Page) ([]*entity.Product, error)

	// FindByLocation returns products within location.RadiusKm kilometers
	// (10 km when unset) of the given point.
	FindByLocation(ctx context.Context, location entity.GeoLocation, page *Page) ([]*entity.Product, error)

	UpdateStatus(ctx context.Context, id string, status entity.ProductStatus) (*entity.Product, error)

	// AddImage appends an image. When isPrimary is true the primary flag is
	// first cleared on every other image so at most one stays primary.
	AddImage(ctx context.Context, id string, imageURL string, isPrimary bool) (*entity.Product, error)

	// RemoveImage removes the image with the given URL. If the removed image
	// was the only primary one, the first remaining image is promoted.
	RemoveImage(ctx context.Context, id string, imageURL string) (*entity.Product, error)
}
