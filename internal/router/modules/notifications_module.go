package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/vecino/marketplace/internal/interface/http"
	"github.com/vecino/marketplace/internal/interface/middleware"
	"github.com/vecino/marketplace/pkg/helpers"
)

// NotificationsModule wires the per-user notification feed.
type NotificationsModule struct {
	Handler *handlers.NotificationsHandler
	JWT     *helpers.JWTManager
}

func NewNotificationsModule(h *handlers.NotificationsHandler, jwt *helpers.JWTManager) *NotificationsModule {
	return &NotificationsModule{Handler: h, JWT: jwt}
}

func (m *NotificationsModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/notifications", m.Handler.List)
		auth.POST("/notifications/:id/read", m.Handler.MarkRead)
		auth.POST("/notifications/read-all", m.Handler.MarkAllRead)
	}
}
