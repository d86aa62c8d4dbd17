package application

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/vecino/marketplace/internal/domain/entity"
	"github.com/vecino/marketplace/internal/domain/repository"
	"github.com/vecino/marketplace/pkg/notify"
)

// taxRate is applied on the order subtotal at checkout.
const taxRate = 0.12

// NewOrderItem is the caller-supplied part of a line item; pricing and
// the product snapshot are resolved from the catalog at checkout.
type NewOrderItem struct {
	ProductID string
	Quantity  int
}

// OrdersService owns the ordering use cases: checkout with product
// snapshots and computed totals, history queries, and the guarded status
// transitions. Status changes emit a notification job for the buyer.
type OrdersService struct {
	Orders   repository.OrderRepository
	Products repository.ProductRepository
	Users    repository.UserRepository
	Notify   notify.Publisher
	Logger   *logrus.Logger
}

func NewOrdersService(orders repository.OrderRepository, products repository.ProductRepository, users repository.UserRepository, publisher notify.Publisher, logger *logrus.Logger) *OrdersService {
	return &OrdersService{Orders: orders, Products: products, Users: users, Notify: publisher, Logger: logger}
}

// Create checks out a new order. Every product must exist and be
// available; line items carry a snapshot of the product as sold, and the
// order totals are computed here, never taken from the caller.
func (s *OrdersService) Create(ctx context.Context, buyerID string, shipping entity.Address, paymentMethod string, items []NewOrderItem) (*entity.Order, error) {
	if len(items) == 0 {
		return nil, errors.New("order needs at least one item")
	}

	var (
		lines    = make([]entity.OrderItem, 0, len(items))
		sellerID string
		subtotal float64
		currency = entity.DefaultCurrency
	)
	for _, it := range items {
		p, err := s.Products.FindByID(ctx, it.ProductID)
		if err != nil {
			return nil, translateNotFound(err, "Product", it.ProductID)
		}
		if !p.IsAvailable() {
			return nil, fmt.Errorf("product %s is not available", p.ID)
		}
		if sellerID == "" {
			sellerID = p.SellerID
		} else if sellerID != p.SellerID {
			return nil, errors.New("all items of an order must share one seller")
		}
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		if p.Price.Currency != "" {
			currency = p.Price.Currency
		}
		lineTotal := round2(p.Price.Amount * float64(qty))
		snapshot := *p
		lines = append(lines, entity.OrderItem{
			ProductID:       p.ID,
			ProductSnapshot: &snapshot,
			Quantity:        qty,
			UnitPrice:       p.Price,
			TotalPrice:      entity.Money{Amount: lineTotal, Currency: currency},
		})
		subtotal += lineTotal
	}

	subtotal = round2(subtotal)
	tax := round2(subtotal * taxRate)
	total := round2(subtotal + tax)

	order := &entity.Order{
		BuyerID:         buyerID,
		SellerID:        sellerID,
		Status:          entity.OrderCreated,
		Items:           lines,
		Subtotal:        entity.Money{Amount: subtotal, Currency: currency},
		Tax:             entity.Money{Amount: tax, Currency: currency},
		Total:           entity.Money{Amount: total, Currency: currency},
		ShippingAddress: shipping,
		PaymentMethod:   paymentMethod,
	}
	created, err := s.Orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}
	s.notifyStatus(ctx, created, "Order placed")
	return created, nil
}

func (s *OrdersService) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := s.Orders.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "Order", id)
	}
	return o, nil
}

func (s *OrdersService) FindByBuyer(ctx context.Context, buyerID string, page *repository.Page) ([]*entity.Order, error) {
	return s.Orders.FindByBuyer(ctx, buyerID, page)
}

func (s *OrdersService) FindBySeller(ctx context.Context, sellerID string, page *repository.Page) ([]*entity.Order, error) {
	return s.Orders.FindBySeller(ctx, sellerID, page)
}

func (s *OrdersService) FindByStatus(ctx context.Context, status entity.OrderStatus, page *repository.Page) ([]*entity.Order, error) {
	return s.Orders.FindByStatus(ctx, status, page)
}

func (s *OrdersService) FindByProduct(ctx context.Context, productID string, page *repository.Page) ([]*entity.Order, error) {
	return s.Orders.FindByProduct(ctx, productID, page)
}

// Pay moves the order to PAID and records the payment reference.
func (s *OrdersService) Pay(ctx context.Context, id string, paymentID string) (*entity.Order, error) {
	o, err := s.transition(ctx, id, entity.OrderPaid)
	if err != nil {
		return nil, err
	}
	if paymentID != "" {
		o, err = s.Orders.Update(ctx, id, &entity.Order{PaymentID: paymentID})
		if err != nil {
			return nil, translateNotFound(err, "Order", id)
		}
	}
	s.notifyStatus(ctx, o, "Order paid")
	return o, nil
}

func (s *OrdersService) Ship(ctx context.Context, id string) (*entity.Order, error) {
	o, err := s.transition(ctx, id, entity.OrderShipped)
	if err != nil {
		return nil, err
	}
	s.notifyStatus(ctx, o, "Order shipped")
	return o, nil
}

func (s *OrdersService) Deliver(ctx context.Context, id string) (*entity.Order, error) {
	o, err := s.transition(ctx, id, entity.OrderDelivered)
	if err != nil {
		return nil, err
	}
	s.notifyStatus(ctx, o, "Order delivered")
	return o, nil
}

func (s *OrdersService) Cancel(ctx context.Context, id string) (*entity.Order, error) {
	o, err := s.transition(ctx, id, entity.OrderCancelled)
	if err != nil {
		return nil, err
	}
	s.notifyStatus(ctx, o, "Order cancelled")
	return o, nil
}

func (s *OrdersService) Refund(ctx context.Context, id string) (*entity.Order, error) {
	o, err := s.transition(ctx, id, entity.OrderRefunded)
	if err != nil {
		return nil, err
	}
	s.notifyStatus(ctx, o, "Order refunded")
	return o, nil
}

// transition loads the order, applies the legality table and persists the
// new status.
func (s *OrdersService) transition(ctx context.Context, id string, next entity.OrderStatus) (*entity.Order, error) {
	o, err := s.Orders.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "Order", id)
	}
	if !o.CanTransitionTo(next) {
		return nil, &IllegalTransitionError{From: o.Status, To: next}
	}
	updated, err := s.Orders.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, translateNotFound(err, "Order", id)
	}
	return updated, nil
}

// notifyStatus queues an order-status notification for the buyer. Queue
// failures are logged, never surfaced; the order write already happened.
func (s *OrdersService) notifyStatus(ctx context.Context, o *entity.Order, title string) {
	if s.Notify == nil {
		return
	}
	job := notify.Job{
		UserID:  o.BuyerID,
		Type:    string(entity.NotifyOrderStatus),
		Title:   title,
		Message: fmt.Sprintf("Your order %s is now %s.", o.ID, o.Status),
		Data:    map[string]any{"order_id": o.ID, "status": string(o.Status)},
	}
	if s.Users != nil {
		if buyer, err := s.Users.FindByID(ctx, o.BuyerID); err == nil {
			job.Email = buyer.Email
		}
	}
	if err := s.Notify.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("order_id", o.ID).Warn("notification publish failed")
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
