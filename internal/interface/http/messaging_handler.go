package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vecino/marketplace/internal/application"
	"github.com/vecino/marketplace/internal/domain/repository"
	"github.com/vecino/marketplace/internal/interface/middleware"
	"github.com/vecino/marketplace/pkg/response"
	"github.com/vecino/marketplace/pkg/validation"
)

type MessagingHandler struct {
	Svc    *application.MessagingService
	Logger *logrus.Logger
}

func NewMessagingHandler(svc *application.MessagingService, logger *logrus.Logger) *MessagingHandler {
	return &MessagingHandler{Svc: svc, Logger: logger}
}

type startConversationRequest struct {
	ParticipantID string `json:"participant_id" binding:"required,uuid"`
	ProductID     string `json:"product_id" binding:"omitempty,uuid"`
}

type sendMessageRequest struct {
	RecipientID string   `json:"recipient_id" binding:"required,uuid"`
	Content     string   `json:"content" binding:"required"`
	Attachments []string `json:"attachments" binding:"omitempty,dive,url"`
}

// Start resolves or creates the conversation between the caller and the
// given participant.
func (h *MessagingHandler) Start(c *gin.Context) {
	var req startConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	conv, err := h.Svc.StartConversation(c.Request.Context(), []string{uid, req.ParticipantID}, req.ProductID)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, conv, "conversation", nil)
}

func (h *MessagingHandler) Get(c *gin.Context) {
	conv, err := h.Svc.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, conv, "conversation", nil)
}

// List returns the caller's conversations, most recent activity first.
func (h *MessagingHandler) List(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	convs, err := h.Svc.ListByParticipant(c.Request.Context(), uid, pageFromQuery(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, convs, "conversations", nil)
}

func (h *MessagingHandler) ListByProduct(c *gin.Context) {
	convs, err := h.Svc.ListByProduct(c.Request.Context(), c.Param("id"), pageFromQuery(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, convs, "conversations", nil)
}

func (h *MessagingHandler) Messages(c *gin.Context) {
	msgs, err := h.Svc.GetMessages(c.Request.Context(), c.Param("id"), pageFromQuery(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, msgs, "messages", nil)
}

func (h *MessagingHandler) Send(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	msg := repository.NewMessage{
		SenderID:    c.GetString(middleware.CtxUserIDKey),
		RecipientID: req.RecipientID,
		Content:     req.Content,
		Attachments: req.Attachments,
	}
	m, err := h.Svc.SendMessage(c.Request.Context(), c.Param("id"), msg)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, m, "message sent", nil)
}

// MarkRead flips every unread message addressed to the caller.
func (h *MessagingHandler) MarkRead(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	n, err := h.Svc.MarkRead(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"marked": n}, "messages marked read", nil)
}
