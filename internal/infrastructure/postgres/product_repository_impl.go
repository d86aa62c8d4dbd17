package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vecino/marketplace/internal/domain/entity"
	"github.com/vecino/marketplace/internal/domain/repository"
	"github.com/vecino/marketplace/internal/infrastructure/identifier"
	"github.com/vecino/marketplace/internal/infrastructure/mapper"
)

// defaultRadiusKm applies when a proximity search does not say how far.
const defaultRadiusKm = 10

// ProductRepository implements repository.ProductRepository on the
// products collection.
type ProductRepository struct {
	*Collection[entity.Product]
}

func NewProductRepository(pool *pgxpool.Pool, ids identifier.Codec, m *mapper.ProductMapper) *ProductRepository {
	return &ProductRepository{Collection: NewCollection[entity.Product](pool, "products", ids, m)}
}

func (r *ProductRepository) FindBySeller(ctx context.Context, sellerID string, page *repository.Page) ([]*entity.Product, error) {
	uid, err := r.ids.Parse(sellerID)
	if err != nil {
		return []*entity.Product{}, nil
	}
	q := "SELECT " + selectCols + " FROM products WHERE doc->>'sellerId' = $1 ORDER BY created_at, id"
	q, args := paginate(q, []any{r.ids.Format(uid)}, page)
	return r.queryMany(ctx, q, args)
}

func (r *ProductRepository) FindByCategory(ctx context.Context, categoryID string, page *repository.Page) ([]*entity.Product, error) {
	uid, err := r.ids.Parse(categoryID)
	if err != nil {
		return []*entity.Product{}, nil
	}
	q := "SELECT " + selectCols + " FROM products WHERE doc->>'categoryId' = $1 ORDER BY created_at, id"
	q, args := paginate(q, []any{r.ids.Format(uid)}, page)
	return r.queryMany(ctx, q, args)
}

// Search runs the weighted full-text query over title, tags and
// description, most relevant first. products_search_tsv is the indexed
// expression defined in the migrations.
func (r *ProductRepository) Search(ctx context.Context, query string, page *repository.Page) ([]*entity.Product, error) {
	q := "SELECT " + selectCols + " FROM products" +
		" WHERE products_search_tsv(doc) @@ plainto_tsquery('english', $1)" +
		" ORDER BY ts_rank(products_search_tsv(doc), plainto_tsquery('english', $1)) DESC, created_at, id"
	q, args := paginate(q, []any{query}, page)
	return r.queryMany(ctx, q, args)
}

func (r *ProductRepository) FindByStatus(ctx context.Context, status entity.ProductStatus, page *repository.Page) ([]*entity.Product, error) {
	return r.FindBy(ctx, &entity.Product{Status: status}, page)
}

// FindByLocation returns products within the requested radius (km) of the
// point, nearest first, using a haversine distance on the stored
// coordinates.
func (r *ProductRepository) FindByLocation(ctx context.Context, location entity.GeoLocation, page *repository.Page) ([]*entity.Product, error) {
	radius := location.RadiusKm
	if radius <= 0 {
		radius = defaultRadiusKm
	}
	const distance = `2 * 6371 * asin(sqrt(
		pow(sin(radians(((doc->'location'->>'latitude')::float8 - $1) / 2)), 2) +
		cos(radians($1)) * cos(radians((doc->'location'->>'latitude')::float8)) *
		pow(sin(radians(((doc->'location'->>'longitude')::float8 - $2) / 2)), 2)))`
	q := "SELECT " + selectCols + " FROM products" +
		" WHERE doc->'location' ? 'latitude' AND " + distance + " <= $3" +
		" ORDER BY " + distance + ", created_at, id"
	q, args := paginate(q, []any{location.Latitude, location.Longitude, radius}, page)
	return r.queryMany(ctx, q, args)
}

func (r *ProductRepository) UpdateStatus(ctx context.Context, id string, status entity.ProductStatus) (*entity.Product, error) {
	uid, err := r.ids.Parse(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	row := r.pool.QueryRow(ctx,
		"UPDATE products SET doc = doc || jsonb_build_object('status', $2::text), updated_at = now() WHERE id = $1 RETURNING "+selectCols,
		uid, string(status))
	rec, err := scanRecord(row)
	if err != nil {
		return nil, err
	}
	return r.mapper.ToDomain(rec), nil
}

// AddImage appends an image to the product. When isPrimary is set the
// primary flag is first cleared on every existing image; the clear and the
// push are two separate storage calls, so a concurrent writer can observe
// the intermediate state.
func (r *ProductRepository) AddImage(ctx context.Context, id string, imageURL string, isPrimary bool) (*entity.Product, error) {
	uid, err := r.ids.Parse(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	if isPrimary {
		_, err := r.pool.Exec(ctx, `
			UPDATE products SET doc = jsonb_set(doc, '{images}', (
				SELECT coalesce(jsonb_agg(img || '{"isPrimary": false}'::jsonb), '[]'::jsonb)
				FROM jsonb_array_elements(coalesce(doc->'images', '[]'::jsonb)) AS img
			)), updated_at = now()
			WHERE id = $1`, uid)
		if err != nil {
			return nil, err
		}
	}
	img := mapper.Document{"url": imageURL, "isPrimary": isPrimary}
	row := r.pool.QueryRow(ctx,
		"UPDATE products SET doc = jsonb_set(doc, '{images}', coalesce(doc->'images', '[]'::jsonb) || $2), updated_at = now() WHERE id = $1 RETURNING "+selectCols,
		uid, img)
	rec, err := scanRecord(row)
	if err != nil {
		return nil, err
	}
	return r.mapper.ToDomain(rec), nil
}

// RemoveImage drops every image with the given URL. If images remain but
// none is flagged primary afterwards, the first remaining image is
// promoted so the "some image is primary" convention holds.
func (r *ProductRepository) RemoveImage(ctx context.Context, id string, imageURL string) (*entity.Product, error) {
	uid, err := r.ids.Parse(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE products SET doc = jsonb_set(doc, '{images}', (
			SELECT coalesce(jsonb_agg(img), '[]'::jsonb)
			FROM jsonb_array_elements(coalesce(doc->'images', '[]'::jsonb)) AS img
			WHERE img->>'url' <> $2
		)), updated_at = now()
		WHERE id = $1 RETURNING `+selectCols, uid, imageURL)
	rec, err := scanRecord(row)
	if err != nil {
		return nil, err
	}
	p := r.mapper.ToDomain(rec)

	if len(p.Images) == 0 {
		return p, nil
	}
	for _, img := range p.Images {
		if img.IsPrimary {
			return p, nil
		}
	}
	row = r.pool.QueryRow(ctx,
		"UPDATE products SET doc = jsonb_set(doc, '{images,0,isPrimary}', 'true'::jsonb), updated_at = now() WHERE id = $1 RETURNING "+selectCols,
		uid)
	rec, err = scanRecord(row)
	if err != nil {
		return nil, err
	}
	return r.mapper.ToDomain(rec), nil
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
