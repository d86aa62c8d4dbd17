package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/vecino/marketplace/internal/interface/http"
	"github.com/vecino/marketplace/internal/interface/middleware"
	"github.com/vecino/marketplace/pkg/helpers"
)

// MessagingModule wires conversation routes. Everything requires auth.
type MessagingModule struct {
	Handler *handlers.MessagingHandler
	JWT     *helpers.JWTManager
}

func NewMessagingModule(h *handlers.MessagingHandler, jwt *helpers.JWTManager) *MessagingModule {
	return &MessagingModule{Handler: h, JWT: jwt}
}

func (m *MessagingModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.POST("/conversations", m.Handler.Start)
		auth.GET("/conversations", m.Handler.List)
		auth.GET("/conversations/:id", m.Handler.Get)
		auth.GET("/conversations/product/:id", m.Handler.ListByProduct)
		auth.GET("/conversations/:id/messages", m.Handler.Messages)
		auth.POST("/conversations/:id/messages", m.Handler.Send)
		auth.POST("/conversations/:id/read", m.Handler.MarkRead)
	}
}
