package entity

import "time"

// OrderStatus is the lifecycle status of an order.
// Legal transitions: CREATED -> PAID -> SHIPPED -> DELIVERED, with
// CANCELLED and REFUNDED as terminal branches (see the CanBe* rules).
type OrderStatus string

const (
	OrderCreated   OrderStatus = "created"
	OrderPaid      OrderStatus = "paid"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
	OrderRefunded  OrderStatus = "refunded"
)

// OrderItem is a line item carrying a snapshot of the product at order time.
type OrderItem struct {
	ProductID       string   `json:"productId"`
	ProductSnapshot *Product `json:"productSnapshot,omitempty"`
	Quantity        int      `json:"quantity"`
	UnitPrice       Money    `json:"unitPrice"`
	TotalPrice      Money    `json:"totalPrice"`
}

// Order is the aggregate root of the ordering context.
type Order struct {
	ID              string      `json:"id"`
	BuyerID         string      `json:"buyerId"`
	SellerID        string      `json:"sellerId"`
	Status          OrderStatus `json:"status"`
	Items           []OrderItem `json:"items"`
	Subtotal        Money       `json:"subtotal"`
	Tax             Money       `json:"tax"`
	Total           Money       `json:"total"`
	ShippingAddress Address     `json:"shippingAddress"`
	PaymentMethod   string      `json:"paymentMethod,omitempty"`
	PaymentID       string      `json:"paymentId,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// CanBeCancelled reports whether the order may move to CANCELLED.
func (o *Order) CanBeCancelled() bool {
	return o.Status == OrderCreated || o.Status == OrderPaid
}

// CanBeShipped reports whether the order may move to SHIPPED.
func (o *Order) CanBeShipped() bool {
	return o.Status == OrderPaid
}

// CanBeDelivered reports whether the order may move to DELIVERED.
func (o *Order) CanBeDelivered() bool {
	return o.Status == OrderShipped
}

// CanBeRefunded reports whether the order may move to REFUNDED.
func (o *Order) CanBeRefunded() bool {
	switch o.Status {
	case OrderPaid, OrderShipped, OrderDelivered:
		return true
	}
	return false
}

// CanTransitionTo applies the legality table for a requested target status.
func (o *Order) CanTransitionTo(next OrderStatus) bool {
	switch next {
	case OrderPaid:
		return o.Status == OrderCreated
	case OrderShipped:
		return o.CanBeShipped()
	case OrderDelivered:
		return o.CanBeDelivered()
	case OrderCancelled:
		return o.CanBeCancelled()
	case OrderRefunded:
		return o.CanBeRefunded()
	}
	return false
}
