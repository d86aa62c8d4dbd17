package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/vecino/marketplace/internal/interface/http"
	"github.com/vecino/marketplace/internal/interface/middleware"
	"github.com/vecino/marketplace/pkg/helpers"
)

// OrdersModule wires ordering routes. Everything requires auth.
type OrdersModule struct {
	Handler *handlers.OrdersHandler
	JWT     *helpers.JWTManager
}

func NewOrdersModule(h *handlers.OrdersHandler, jwt *helpers.JWTManager) *OrdersModule {
	return &OrdersModule{Handler: h, JWT: jwt}
}

func (m *OrdersModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.POST("/orders", m.Handler.Create)
		auth.GET("/orders", m.Handler.List)
		auth.GET("/orders/:id", m.Handler.Get)
		auth.GET("/orders/buyer/:id", m.Handler.ListByBuyer)
		auth.GET("/orders/seller/:id", m.Handler.ListBySeller)
		auth.GET("/orders/status/:status", m.Handler.ListByStatus)
		auth.GET("/orders/product/:id", m.Handler.ListByProduct)
		auth.POST("/orders/:id/pay", m.Handler.Pay)
		auth.POST("/orders/:id/ship", m.Handler.Ship)
		auth.POST("/orders/:id/deliver", m.Handler.Deliver)
		auth.POST("/orders/:id/cancel", m.Handler.Cancel)
		auth.POST("/orders/:id/refund", m.Handler.Refund)
	}
}
