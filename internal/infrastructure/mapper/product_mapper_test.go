package mapper

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecino/marketplace/internal/domain/entity"
	"github.com/vecino/marketplace/internal/infrastructure/identifier"
)

func TestProductMapperRoundTrip(t *testing.T) {
	m := NewProductMapper(identifier.UUID{})
	sellerID := uuid.NewString()
	categoryID := uuid.NewString()

	p := &entity.Product{
		Title:       "Mountain Bike",
		Description: "Hardtail, size M",
		Price:       entity.Money{Amount: 12500, Currency: "PHP"},
		SellerID:    sellerID,
		CategoryID:  categoryID,
		Status:      entity.ProductActive,
		Condition:   entity.ConditionGood,
		Location:    &entity.GeoLocation{Latitude: 14.5995, Longitude: 120.9842},
		Specifications: []entity.ProductSpecification{
			{Key: "frame", Value: "aluminium"},
			{Key: "wheel", Value: "29", Unit: "in"},
		},
		Images: []entity.ImageMetadata{{URL: "https://img.example/bike.jpg", IsPrimary: true}},
		Tags:   []string{"bike", "outdoors"},
	}

	rec := Record{
		ID:        uuid.New(),
		Doc:       m.NewDocument(p),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	got := m.ToDomain(rec)

	assert.Equal(t, rec.ID.String(), got.ID)
	assert.Equal(t, p.Title, got.Title)
	assert.Equal(t, p.Description, got.Description)
	assert.Equal(t, p.Price, got.Price)
	assert.Equal(t, sellerID, got.SellerID)
	assert.Equal(t, categoryID, got.CategoryID)
	assert.Equal(t, p.Status, got.Status)
	assert.Equal(t, p.Condition, got.Condition)
	require.NotNil(t, got.Location)
	assert.Equal(t, p.Location.Latitude, got.Location.Latitude)
	assert.Equal(t, p.Specifications, got.Specifications)
	assert.Equal(t, p.Images, got.Images)
	assert.Equal(t, p.Tags, got.Tags)
}

func TestProductMapperSparsePersistence(t *testing.T) {
	m := NewProductMapper(identifier.UUID{})

	doc := m.ToPersistence(&entity.Product{Title: "Only Title"})
	assert.Equal(t, Document{"title": "Only Title"}, doc)

	// zero-valued entity produces an empty patch
	assert.Empty(t, m.ToPersistence(&entity.Product{}))
	assert.Empty(t, m.ToPersistence(nil))
}

func TestProductMapperDropsInvalidReferences(t *testing.T) {
	m := NewProductMapper(identifier.UUID{})
	doc := m.ToPersistence(&entity.Product{
		Title:      "Lamp",
		SellerID:   "seller-1",
		CategoryID: "nope",
	})
	assert.NotContains(t, doc, "sellerId")
	assert.NotContains(t, doc, "categoryId")
	assert.Equal(t, "Lamp", doc["title"])
}

func TestProductMapperNewDocumentDefaults(t *testing.T) {
	m := NewProductMapper(identifier.UUID{})
	doc := m.NewDocument(&entity.Product{Title: "Chair"})

	assert.Equal(t, string(entity.ProductDraft), doc["status"])
	assert.Equal(t, Document{"amount": float64(0), "currency": entity.DefaultCurrency}, doc["price"])
	assert.Equal(t, []any{}, doc["images"])
	assert.Equal(t, []any{}, doc["tags"])
	assert.Equal(t, []any{}, doc["specifications"])
	assert.NotContains(t, doc, "id")
}

func TestProductMapperNilDocument(t *testing.T) {
	m := NewProductMapper(identifier.UUID{})
	got := m.ToDomain(Record{ID: uuid.New()})
	assert.Equal(t, "", got.Title)
	assert.Empty(t, got.Images)
}
