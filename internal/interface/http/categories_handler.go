package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vecino/marketplace/internal/application"
	"github.com/vecino/marketplace/internal/domain/entity"
	"github.com/vecino/marketplace/pkg/response"
	"github.com/vecino/marketplace/pkg/validation"
)

type CategoriesHandler struct {
	Svc    *application.CategoriesService
	Logger *logrus.Logger
}

func NewCategoriesHandler(svc *application.CategoriesService, logger *logrus.Logger) *CategoriesHandler {
	return &CategoriesHandler{Svc: svc, Logger: logger}
}

type categoryRequest struct {
	Name             string   `json:"name" binding:"required"`
	Description      string   `json:"description"`
	ParentCategoryID string   `json:"parent_category_id" binding:"omitempty,uuid"`
	Attributes       []string `json:"attributes"`
}

func (h *CategoriesHandler) Create(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cat := &entity.Category{
		Name:             req.Name,
		Description:      req.Description,
		ParentCategoryID: req.ParentCategoryID,
		Attributes:       req.Attributes,
	}
	created, err := h.Svc.Create(c.Request.Context(), cat)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created, "category created", nil)
}

func (h *CategoriesHandler) Get(c *gin.Context) {
	cat, err := h.Svc.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cat, "category", nil)
}

func (h *CategoriesHandler) List(c *gin.Context) {
	cats, err := h.Svc.FindAll(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cats, "categories", nil)
}

func (h *CategoriesHandler) Update(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	patch := &entity.Category{
		Name:             req.Name,
		Description:      req.Description,
		ParentCategoryID: req.ParentCategoryID,
		Attributes:       req.Attributes,
	}
	cat, err := h.Svc.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cat, "category updated", nil)
}

func (h *CategoriesHandler) Delete(c *gin.Context) {
	cat, err := h.Svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cat, "category deleted", nil)
}
