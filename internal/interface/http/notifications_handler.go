package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vecino/marketplace/internal/application"
	"github.com/vecino/marketplace/internal/interface/middleware"
	"github.com/vecino/marketplace/pkg/response"
)

type NotificationsHandler struct {
	Svc    *application.NotificationsService
	Logger *logrus.Logger
}

func NewNotificationsHandler(svc *application.NotificationsService, logger *logrus.Logger) *NotificationsHandler {
	return &NotificationsHandler{Svc: svc, Logger: logger}
}

// List returns the caller's notifications, newest first.
func (h *NotificationsHandler) List(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	items, err := h.Svc.ListByUser(c.Request.Context(), uid, pageFromQuery(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items, "notifications", nil)
}

func (h *NotificationsHandler) MarkRead(c *gin.Context) {
	n, err := h.Svc.MarkRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, n, "notification marked read", nil)
}

func (h *NotificationsHandler) MarkAllRead(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	n, err := h.Svc.MarkAllRead(c.Request.Context(), uid)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"marked": n}, "notifications marked read", nil)
}
