package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vecino/marketplace/internal/application"
	"github.com/vecino/marketplace/internal/domain/entity"
	"github.com/vecino/marketplace/internal/interface/middleware"
	"github.com/vecino/marketplace/pkg/response"
	"github.com/vecino/marketplace/pkg/validation"
)

type OrdersHandler struct {
	Svc    *application.OrdersService
	Logger *logrus.Logger
}

func NewOrdersHandler(svc *application.OrdersService, logger *logrus.Logger) *OrdersHandler {
	return &OrdersHandler{Svc: svc, Logger: logger}
}

type orderItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"omitempty,gte=1"`
}

type createOrderRequest struct {
	Items           []orderItemRequest `json:"items" binding:"required,min=1,dive"`
	ShippingAddress entity.Address     `json:"shipping_address" binding:"required"`
	PaymentMethod   string             `json:"payment_method"`
}

type payOrderRequest struct {
	PaymentID string `json:"payment_id"`
}

func (h *OrdersHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	items := make([]application.NewOrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, application.NewOrderItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	buyerID := c.GetString(middleware.CtxUserIDKey)
	o, err := h.Svc.Create(c.Request.Context(), buyerID, req.ShippingAddress, req.PaymentMethod, items)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, o, "order created", nil)
}

func (h *OrdersHandler) Get(c *gin.Context) {
	o, err := h.Svc.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, o, "order", nil)
}

// List returns the caller's purchase history.
func (h *OrdersHandler) List(c *gin.Context) {
	buyerID := c.GetString(middleware.CtxUserIDKey)
	orders, err := h.Svc.FindByBuyer(c.Request.Context(), buyerID, pageFromQuery(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, orders, "orders", nil)
}

func (h *OrdersHandler) ListByBuyer(c *gin.Context) {
	orders, err := h.Svc.FindByBuyer(c.Request.Context(), c.Param("id"), pageFromQuery(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, orders, "orders", nil)
}

func (h *OrdersHandler) ListBySeller(c *gin.Context) {
	orders, err := h.Svc.FindBySeller(c.Request.Context(), c.Param("id"), pageFromQuery(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, orders, "orders", nil)
}

func (h *OrdersHandler) ListByStatus(c *gin.Context) {
	status := entity.OrderStatus(c.Param("status"))
	orders, err := h.Svc.FindByStatus(c.Request.Context(), status, pageFromQuery(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, orders, "orders", nil)
}

func (h *OrdersHandler) ListByProduct(c *gin.Context) {
	orders, err := h.Svc.FindByProduct(c.Request.Context(), c.Param("id"), pageFromQuery(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, orders, "orders", nil)
}

func (h *OrdersHandler) Pay(c *gin.Context) {
	var req payOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
			return
		}
	}
	o, err := h.Svc.Pay(c.Request.Context(), c.Param("id"), req.PaymentID)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, o, "order paid", nil)
}

func (h *OrdersHandler) Ship(c *gin.Context) {
	o, err := h.Svc.Ship(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, o, "order shipped", nil)
}

func (h *OrdersHandler) Deliver(c *gin.Context) {
	o, err := h.Svc.Deliver(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, o, "order delivered", nil)
}

func (h *OrdersHandler) Cancel(c *gin.Context) {
	o, err := h.Svc.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, o, "order cancelled", nil)
}

func (h *OrdersHandler) Refund(c *gin.Context) {
	o, err := h.Svc.Refund(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, o, "order refunded", nil)
}
