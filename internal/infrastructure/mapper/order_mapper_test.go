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

func TestOrderMapperRoundTripWithSnapshot(t *testing.T) {
	ids := identifier.UUID{}
	m := NewOrderMapper(ids, NewProductMapper(ids))

	buyerID := uuid.NewString()
	sellerID := uuid.NewString()
	productID := uuid.NewString()

	o := &entity.Order{
		BuyerID:  buyerID,
		SellerID: sellerID,
		Status:   entity.OrderPaid,
		Items: []entity.OrderItem{
			{
				ProductID: productID,
				ProductSnapshot: &entity.Product{
					ID:       productID,
					Title:    "Desk Lamp",
					Price:    entity.Money{Amount: 450, Currency: "PHP"},
					SellerID: sellerID,
					Status:   entity.ProductActive,
				},
				Quantity:   2,
				UnitPrice:  entity.Money{Amount: 450, Currency: "PHP"},
				TotalPrice: entity.Money{Amount: 900, Currency: "PHP"},
			},
		},
		Subtotal:        entity.Money{Amount: 900, Currency: "PHP"},
		Tax:             entity.Money{Amount: 108, Currency: "PHP"},
		Total:           entity.Money{Amount: 1008, Currency: "PHP"},
		ShippingAddress: entity.Address{Street: "1 Rizal St", City: "Manila", Country: "PH"},
		PaymentMethod:   "card",
	}

	rec := Record{ID: uuid.New(), Doc: m.NewDocument(o), CreatedAt: time.Now(), UpdatedAt: time.Now()}
	got := m.ToDomain(rec)

	assert.Equal(t, rec.ID.String(), got.ID)
	assert.Equal(t, buyerID, got.BuyerID)
	assert.Equal(t, sellerID, got.SellerID)
	assert.Equal(t, entity.OrderPaid, got.Status)
	require.Len(t, got.Items, 1)
	item := got.Items[0]
	assert.Equal(t, productID, item.ProductID)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, o.Items[0].UnitPrice, item.UnitPrice)
	assert.Equal(t, o.Items[0].TotalPrice, item.TotalPrice)
	require.NotNil(t, item.ProductSnapshot)
	assert.Equal(t, "Desk Lamp", item.ProductSnapshot.Title)
	assert.Equal(t, productID, item.ProductSnapshot.ID)
	assert.Equal(t, o.Subtotal, got.Subtotal)
	assert.Equal(t, o.Tax, got.Tax)
	assert.Equal(t, o.Total, got.Total)
	assert.Equal(t, o.ShippingAddress, got.ShippingAddress)
	assert.Equal(t, "card", got.PaymentMethod)
}

func TestOrderMapperNewDocumentDefaults(t *testing.T) {
	ids := identifier.UUID{}
	m := NewOrderMapper(ids, NewProductMapper(ids))

	doc := m.NewDocument(&entity.Order{})
	assert.Equal(t, string(entity.OrderCreated), doc["status"])
	assert.Equal(t, []any{}, doc["items"])
	for _, key := range []string{"subtotal", "tax", "total"} {
		assert.Equal(t, Document{"amount": float64(0), "currency": entity.DefaultCurrency}, doc[key], key)
	}
}

func TestOrderMapperDropsInvalidParties(t *testing.T) {
	ids := identifier.UUID{}
	m := NewOrderMapper(ids, NewProductMapper(ids))

	doc := m.ToPersistence(&entity.Order{BuyerID: "buyer-1", SellerID: "seller-1", Status: entity.OrderCreated})
	assert.NotContains(t, doc, "buyerId")
	assert.NotContains(t, doc, "sellerId")
	assert.Equal(t, "created", doc["status"])
}
