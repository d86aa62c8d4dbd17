package mapper

import (
	"github.com/vecino/marketplace/internal/domain/entity"
	"github.com/vecino/marketplace/internal/infrastructure/identifier"
)

// OrderMapper converts between Order entities and order documents. Line
// items embed a product snapshot, mapped through the product mapper.
type OrderMapper struct {
	ids      identifier.Codec
	products *ProductMapper
}

func NewOrderMapper(ids identifier.Codec, products *ProductMapper) *OrderMapper {
	return &OrderMapper{ids: ids, products: products}
}

func (m *OrderMapper) ToDomain(rec Record) *entity.Order {
	o := m.FromDocument(rec.Doc)
	o.ID = m.ids.Format(rec.ID)
	o.CreatedAt = rec.CreatedAt
	o.UpdatedAt = rec.UpdatedAt
	return o
}

func (m *OrderMapper) FromDocument(doc Document) *entity.Order {
	o := &entity.Order{}
	if doc == nil {
		return o
	}
	o.ID = str(doc, "id")
	o.BuyerID = str(doc, "buyerId")
	o.SellerID = str(doc, "sellerId")
	o.Status = entity.OrderStatus(str(doc, "status"))
	if items := docList(doc, "items"); items != nil {
		o.Items = make([]entity.OrderItem, 0, len(items))
		for _, it := range items {
			o.Items = append(o.Items, m.itemFromDoc(it))
		}
	}
	o.Subtotal = moneyFromDoc(sub(doc, "subtotal"))
	o.Tax = moneyFromDoc(sub(doc, "tax"))
	o.Total = moneyFromDoc(sub(doc, "total"))
	o.ShippingAddress = addressFromDoc(sub(doc, "shippingAddress"))
	o.PaymentMethod = str(doc, "paymentMethod")
	o.PaymentID = str(doc, "paymentId")
	return o
}

func (m *OrderMapper) ToPersistence(o *entity.Order) Document {
	doc := Document{}
	if o == nil {
		return doc
	}
	if o.ID != "" {
		doc["id"] = o.ID
	}
	if o.BuyerID != "" && identifier.Valid(o.BuyerID) {
		doc["buyerId"] = o.BuyerID
	}
	if o.SellerID != "" && identifier.Valid(o.SellerID) {
		doc["sellerId"] = o.SellerID
	}
	if o.Status != "" {
		doc["status"] = string(o.Status)
	}
	if o.Items != nil {
		items := make([]Document, 0, len(o.Items))
		for _, it := range o.Items {
			items = append(items, m.itemDoc(it))
		}
		doc["items"] = docsToAny(items)
	}
	if o.Subtotal != (entity.Money{}) {
		doc["subtotal"] = moneyDoc(o.Subtotal)
	}
	if o.Tax != (entity.Money{}) {
		doc["tax"] = moneyDoc(o.Tax)
	}
	if o.Total != (entity.Money{}) {
		doc["total"] = moneyDoc(o.Total)
	}
	if o.ShippingAddress != (entity.Address{}) {
		doc["shippingAddress"] = addressDoc(o.ShippingAddress)
	}
	if o.PaymentMethod != "" {
		doc["paymentMethod"] = o.PaymentMethod
	}
	if o.PaymentID != "" {
		doc["paymentId"] = o.PaymentID
	}
	return doc
}

func (m *OrderMapper) NewDocument(o *entity.Order) Document {
	doc := m.ToPersistence(o)
	delete(doc, "id")
	if _, ok := doc["status"]; !ok {
		doc["status"] = string(entity.OrderCreated)
	}
	if _, ok := doc["items"]; !ok {
		doc["items"] = []any{}
	}
	for _, key := range []string{"subtotal", "tax", "total"} {
		if _, ok := doc[key]; !ok {
			doc[key] = moneyDoc(entity.Money{Amount: 0, Currency: entity.DefaultCurrency})
		}
	}
	return doc
}

func (m *OrderMapper) itemDoc(it entity.OrderItem) Document {
	doc := Document{
		"productId":  it.ProductID,
		"quantity":   it.Quantity,
		"unitPrice":  moneyDoc(it.UnitPrice),
		"totalPrice": moneyDoc(it.TotalPrice),
	}
	if it.ProductSnapshot != nil {
		doc["productSnapshot"] = m.products.ToPersistence(it.ProductSnapshot)
	}
	return doc
}

func (m *OrderMapper) itemFromDoc(doc Document) entity.OrderItem {
	it := entity.OrderItem{
		ProductID:  str(doc, "productId"),
		Quantity:   integer(doc, "quantity"),
		UnitPrice:  moneyFromDoc(sub(doc, "unitPrice")),
		TotalPrice: moneyFromDoc(sub(doc, "totalPrice")),
	}
	if snap := sub(doc, "productSnapshot"); snap != nil {
		it.ProductSnapshot = m.products.FromDocument(snap)
	}
	return it
}
