package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vecino/marketplace/internal/domain/entity"
	"github.com/vecino/marketplace/internal/domain/repository"
	"github.com/vecino/marketplace/pkg/cache"
	"github.com/vecino/marketplace/pkg/helpers"
)

// cacheTTL bounds how stale a cached entity may get.
const cacheTTL = 300 * time.Second

const (
	productCachePrefix = "product"
	productListKey     = "all_products"
)

// ProductsService owns the catalog use cases: CRUD over listings, the
// cache-aside read path, full-text and proximity search, image management
// backed by GCS, and a best-effort search mirror in Elasticsearch.
type ProductsService struct {
	Products repository.ProductRepository
	Cache    cache.Store
	Logger   *logrus.Logger

	ES              *elasticsearch.Client
	ESProductsIndex string

	GCS       *storage.Client
	GCSBucket string
}

func NewProductsService(products repository.ProductRepository, store cache.Store, logger *logrus.Logger, es *elasticsearch.Client, esIndex string, gcs *storage.Client, gcsBucket string) *ProductsService {
	return &ProductsService{
		Products:        products,
		Cache:           store,
		Logger:          logger,
		ES:              es,
		ESProductsIndex: esIndex,
		GCS:             gcs,
		GCSBucket:       gcsBucket,
	}
}

// FindByID reads through the cache under "product_<id>".
func (s *ProductsService) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	key := cache.EntityKey(productCachePrefix, id)
	var cached entity.Product
	if ok, _ := s.Cache.Get(ctx, key, &cached); ok {
		return &cached, nil
	}
	p, err := s.Products.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "Product", id)
	}
	if err := s.Cache.Set(ctx, key, p, cacheTTL); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("key", key).Warn("cache set failed")
	}
	return p, nil
}

// FindAll reads through the cache under "all_products". Only the
// unpaginated listing is cached; paginated reads always hit the store.
func (s *ProductsService) FindAll(ctx context.Context, page *repository.Page) ([]*entity.Product, error) {
	if page != nil {
		return s.Products.FindAll(ctx, page)
	}
	var cached []*entity.Product
	if ok, _ := s.Cache.Get(ctx, productListKey, &cached); ok {
		return cached, nil
	}
	products, err := s.Products.FindAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	if err := s.Cache.Set(ctx, productListKey, products, cacheTTL); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("key", productListKey).Warn("cache set failed")
	}
	return products, nil
}

func (s *ProductsService) FindBySeller(ctx context.Context, sellerID string, page *repository.Page) ([]*entity.Product, error) {
	return s.Products.FindBySeller(ctx, sellerID, page)
}

func (s *ProductsService) FindByCategory(ctx context.Context, categoryID string, page *repository.Page) ([]*entity.Product, error) {
	return s.Products.FindByCategory(ctx, categoryID, page)
}

func (s *ProductsService) FindByStatus(ctx context.Context, status entity.ProductStatus, page *repository.Page) ([]*entity.Product, error) {
	return s.Products.FindByStatus(ctx, status, page)
}

// Search ranks store-side matches over title, description and tags.
func (s *ProductsService) Search(ctx context.Context, query string, page *repository.Page) ([]*entity.Product, error) {
	return s.Products.Search(ctx, query, page)
}

// FindNearby returns listings within location.RadiusKm of the point,
// 10 km when the radius is unset.
func (s *ProductsService) FindNearby(ctx context.Context, location entity.GeoLocation, page *repository.Page) ([]*entity.Product, error) {
	return s.Products.FindByLocation(ctx, location, page)
}

func (s *ProductsService) Create(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	created, err := s.Products.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, created.ID)
	_ = s.indexProduct(ctx, created)
	return created, nil
}

func (s *ProductsService) Update(ctx context.Context, id string, patch *entity.Product) (*entity.Product, error) {
	updated, err := s.Products.Update(ctx, id, patch)
	if err != nil {
		return nil, translateNotFound(err, "Product", id)
	}
	s.invalidate(ctx, id)
	_ = s.indexProduct(ctx, updated)
	return updated, nil
}

func (s *ProductsService) Delete(ctx context.Context, id string) (*entity.Product, error) {
	deleted, err := s.Products.Delete(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "Product", id)
	}
	s.invalidate(ctx, id)
	_ = s.removeFromIndex(ctx, id)
	return deleted, nil
}

func (s *ProductsService) UpdateStatus(ctx context.Context, id string, status entity.ProductStatus) (*entity.Product, error) {
	updated, err := s.Products.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, translateNotFound(err, "Product", id)
	}
	s.invalidate(ctx, id)
	_ = s.indexProduct(ctx, updated)
	return updated, nil
}

// AddImage registers an already-stored image URL on the product.
func (s *ProductsService) AddImage(ctx context.Context, id string, imageURL string, isPrimary bool) (*entity.Product, error) {
	updated, err := s.Products.AddImage(ctx, id, imageURL, isPrimary)
	if err != nil {
		return nil, translateNotFound(err, "Product", id)
	}
	s.invalidate(ctx, id)
	return updated, nil
}

func (s *ProductsService) RemoveImage(ctx context.Context, id string, imageURL string) (*entity.Product, error) {
	updated, err := s.Products.RemoveImage(ctx, id, imageURL)
	if err != nil {
		return nil, translateNotFound(err, "Product", id)
	}
	s.invalidate(ctx, id)
	return updated, nil
}

// UploadImage streams the file into GCS under products/<id>/ and registers
// the resulting public URL on the product.
func (s *ProductsService) UploadImage(ctx context.Context, id string, r io.Reader, filename, contentType string, isPrimary bool) (*entity.Product, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, errors.New("gcs not configured")
	}
	if _, err := s.FindByID(ctx, id); err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("products", id, uuid.NewString()+ext))
	url, err := helpers.UploadImageToGCS(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}
	return s.AddImage(ctx, id, url, isPrimary)
}

// QuickSearch hits the Elasticsearch mirror with the same field weighting
// the store-side search uses. Returns raw documents; an unconfigured
// mirror yields an empty result, not an error.
func (s *ProductsService) QuickSearch(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESProductsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^10", "tags^5", "description^3"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESProductsIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

// invalidate drops both the entity key and the list key after any write.
func (s *ProductsService) invalidate(ctx context.Context, id string) {
	keys := []string{cache.EntityKey(productCachePrefix, id), productListKey}
	if err := s.Cache.Delete(ctx, keys...); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("keys", keys).Warn("cache invalidation failed")
	}
}

// indexProduct mirrors the listing into Elasticsearch. Best effort; the
// write path never fails on a mirror error.
func (s *ProductsService) indexProduct(ctx context.Context, p *entity.Product) error {
	if s.ES == nil || s.ESProductsIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":          p.ID,
		"title":       p.Title,
		"description": p.Description,
		"tags":        p.Tags,
		"status":      string(p.Status),
		"price":       p.Price.Amount,
		"currency":    p.Price.Currency,
		"seller_id":   p.SellerID,
		"category_id": p.CategoryID,
		"created_at":  p.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":  p.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESProductsIndex, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", p.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("product_id", p.ID).Warn("es index response error")
	}
	return nil
}

func (s *ProductsService) removeFromIndex(ctx context.Context, id string) error {
	if s.ES == nil || s.ESProductsIndex == "" {
		return nil
	}
	req := esapi.DeleteRequest{Index: s.ESProductsIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", id).Warn("es delete failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	return nil
}

// translateNotFound maps the repository sentinel into the typed
// service-level error; every other failure passes through unchanged.
func translateNotFound(err error, resource, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{Resource: resource, ID: id}
	}
	return err
}
