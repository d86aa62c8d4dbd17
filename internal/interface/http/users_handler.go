package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vecino/marketplace/internal/application"
	"github.com/vecino/marketplace/internal/domain/entity"
	"github.com/vecino/marketplace/internal/interface/middleware"
	"github.com/vecino/marketplace/pkg/helpers"
	"github.com/vecino/marketplace/pkg/response"
	"github.com/vecino/marketplace/pkg/validation"
)

type UsersHandler struct {
	Svc    *application.UsersService
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewUsersHandler(svc *application.UsersService, jwt *helpers.JWTManager, logger *logrus.Logger) *UsersHandler {
	return &UsersHandler{Svc: svc, JWT: jwt, Logger: logger}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,pwd"`
	Role     string `json:"role" binding:"omitempty,oneof=buyer seller admin"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateUserRequest struct {
	Name    string          `json:"name"`
	Phone   string          `json:"phone"`
	Address *entity.Address `json:"address"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,pwd"`
}

func (h *UsersHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), req.Email, req.Name, req.Password, entity.UserRole(req.Role))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, u, "user registered", nil)
}

func (h *UsersHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		serviceError(c, err)
		return
	}
	token, exp, err := h.JWT.GenerateAccessToken(u.ID)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u, "access_token": token}, "login successful", map[string]any{"access_expires_at": exp})
}

func (h *UsersHandler) Profile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.FindByID(c.Request.Context(), uid)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "profile", nil)
}

func (h *UsersHandler) Get(c *gin.Context) {
	u, err := h.Svc.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "user", nil)
}

func (h *UsersHandler) List(c *gin.Context) {
	if role := c.Query("role"); role != "" {
		users, err := h.Svc.FindByRole(c.Request.Context(), entity.UserRole(role), pageFromQuery(c))
		if err != nil {
			serviceError(c, err)
			return
		}
		response.Success(c, http.StatusOK, users, "users", nil)
		return
	}
	users, err := h.Svc.FindAll(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, users, "users", nil)
}

func (h *UsersHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	patch := &entity.User{Name: req.Name, Phone: req.Phone, Address: req.Address}
	u, err := h.Svc.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "user updated", nil)
}

func (h *UsersHandler) Delete(c *gin.Context) {
	u, err := h.Svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "user deleted", nil)
}

func (h *UsersHandler) ChangePassword(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ChangePassword(c.Request.Context(), uid, req.CurrentPassword, req.NewPassword); err != nil {
		serviceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"changed": true}, "password changed", nil)
}
