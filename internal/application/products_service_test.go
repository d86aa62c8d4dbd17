package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecino/marketplace/internal/domain/entity"
	"github.com/vecino/marketplace/pkg/cache"
)

func newProductsService(repo *stubProductRepo, store cache.Store) *ProductsService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewProductsService(repo, store, logger, nil, "", nil, "")
}

func TestProductsFindByIDPopulatesCache(t *testing.T) {
	ctx := context.Background()
	repo := newStubProductRepo()
	store := cache.NewMemory()
	svc := newProductsService(repo, store)

	p := repo.put(&entity.Product{Title: "Bike", Status: entity.ProductActive})

	got, err := svc.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bike", got.Title)
	assert.Equal(t, 1, repo.findCalls)

	// second read served from cache
	got, err = svc.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bike", got.Title)
	assert.Equal(t, 1, repo.findCalls)

	var cached entity.Product
	ok, _ := store.Get(ctx, cache.EntityKey("product", p.ID), &cached)
	assert.True(t, ok)
}

func TestProductsFindByIDNotFound(t *testing.T) {
	svc := newProductsService(newStubProductRepo(), cache.NewMemory())

	id := uuid.NewString()
	_, err := svc.FindByID(context.Background(), id)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Product", nf.Resource)
	assert.Equal(t, id, nf.ID)
}

func TestProductsFindAllCachesList(t *testing.T) {
	ctx := context.Background()
	repo := newStubProductRepo()
	store := cache.NewMemory()
	svc := newProductsService(repo, store)

	repo.put(&entity.Product{Title: "A"})
	repo.put(&entity.Product{Title: "B"})

	first, err := svc.FindAll(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, first, 2)
	assert.Equal(t, 1, repo.allCalls)

	second, err := svc.FindAll(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, second, 2)
	assert.Equal(t, 1, repo.allCalls)
}

func TestProductsPaginatedListSkipsCache(t *testing.T) {
	ctx := context.Background()
	repo := newStubProductRepo()
	svc := newProductsService(repo, cache.NewMemory())

	repo.put(&entity.Product{Title: "A"})

	_, err := svc.FindAll(ctx, &pageOne)
	require.NoError(t, err)
	_, err = svc.FindAll(ctx, &pageOne)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.allCalls)
}

func TestProductsUpdateInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	repo := newStubProductRepo()
	store := cache.NewMemory()
	svc := newProductsService(repo, store)

	p := repo.put(&entity.Product{Title: "Old"})

	_, err := svc.FindByID(ctx, p.ID)
	require.NoError(t, err)
	_, err = svc.FindAll(ctx, nil)
	require.NoError(t, err)

	_, err = svc.Update(ctx, p.ID, &entity.Product{Title: "New"})
	require.NoError(t, err)

	var cached entity.Product
	ok, _ := store.Get(ctx, cache.EntityKey("product", p.ID), &cached)
	assert.False(t, ok, "entity key must be invalidated")
	var cachedList []*entity.Product
	ok, _ = store.Get(ctx, "all_products", &cachedList)
	assert.False(t, ok, "list key must be invalidated")

	got, err := svc.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
}

func TestProductsDeleteInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	repo := newStubProductRepo()
	store := cache.NewMemory()
	svc := newProductsService(repo, store)

	p := repo.put(&entity.Product{Title: "Gone"})
	_, err := svc.FindByID(ctx, p.ID)
	require.NoError(t, err)

	_, err = svc.Delete(ctx, p.ID)
	require.NoError(t, err)

	_, err = svc.FindByID(ctx, p.ID)
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestAddImagePrimaryIsExclusive(t *testing.T) {
	ctx := context.Background()
	repo := newStubProductRepo()
	svc := newProductsService(repo, cache.NewMemory())

	p := repo.put(&entity.Product{Title: "Camera"})

	_, err := svc.AddImage(ctx, p.ID, "front.jpg", true)
	require.NoError(t, err)
	updated, err := svc.AddImage(ctx, p.ID, "back.jpg", true)
	require.NoError(t, err)

	primaries := 0
	for _, img := range updated.Images {
		if img.IsPrimary {
			primaries++
		}
	}
	assert.Equal(t, 1, primaries)
	require.NotNil(t, updated.PrimaryImage())
	assert.Equal(t, "back.jpg", updated.PrimaryImage().URL)
}

func TestRemoveImagePromotesNewPrimary(t *testing.T) {
	ctx := context.Background()
	repo := newStubProductRepo()
	svc := newProductsService(repo, cache.NewMemory())

	p := repo.put(&entity.Product{Title: "Camera"})

	_, err := svc.AddImage(ctx, p.ID, "front.jpg", true)
	require.NoError(t, err)
	_, err = svc.AddImage(ctx, p.ID, "back.jpg", false)
	require.NoError(t, err)
	_, err = svc.AddImage(ctx, p.ID, "side.jpg", false)
	require.NoError(t, err)

	updated, err := svc.RemoveImage(ctx, p.ID, "front.jpg")
	require.NoError(t, err)

	require.Len(t, updated.Images, 2)
	primaries := 0
	for _, img := range updated.Images {
		if img.IsPrimary {
			primaries++
		}
	}
	assert.Equal(t, 1, primaries)
	assert.Equal(t, "back.jpg", updated.PrimaryImage().URL)
	assert.True(t, updated.Images[0].IsPrimary, "first remaining image takes over as primary")
}

func TestRemoveLastImageLeavesNone(t *testing.T) {
	ctx := context.Background()
	repo := newStubProductRepo()
	svc := newProductsService(repo, cache.NewMemory())

	p := repo.put(&entity.Product{Title: "Camera"})

	_, err := svc.AddImage(ctx, p.ID, "only.jpg", true)
	require.NoError(t, err)
	updated, err := svc.RemoveImage(ctx, p.ID, "only.jpg")
	require.NoError(t, err)
	assert.Empty(t, updated.Images)
	assert.Nil(t, updated.PrimaryImage())
}

func TestProductsQuickSearchWithoutMirror(t *testing.T) {
	svc := newProductsService(newStubProductRepo(), cache.NewMemory())
	hits, err := svc.QuickSearch(context.Background(), "bike", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
