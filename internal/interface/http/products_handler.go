package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vecino/marketplace/internal/application"
	"github.com/vecino/marketplace/internal/domain/entity"
	"github.com/vecino/marketplace/internal/interface/middleware"
	"github.com/vecino/marketplace/pkg/response"
	"github.com/vecino/marketplace/pkg/validation"
)

type ProductsHandler struct {
	Svc    *application.ProductsService
	Logger *logrus.Logger
}

func NewProductsHandler(svc *application.ProductsService, logger *logrus.Logger) *ProductsHandler {
	return &ProductsHandler{Svc: svc, Logger: logger}
}

type productRequest struct {
	Title          string                        `json:"title" binding:"required"`
	Description    string                        `json:"description"`
	Price          float64                       `json:"price" binding:"required,gte=0"`
	Currency       string                        `json:"currency"`
	CategoryID     string                        `json:"category_id" binding:"required,uuid"`
	Condition      string                        `json:"condition" binding:"omitempty,oneof=new like_new good fair poor"`
	Location       *entity.GeoLocation           `json:"location"`
	Specifications []entity.ProductSpecification `json:"specifications"`
	Tags           []string                      `json:"tags"`
}

type updateProductRequest struct {
	Title          string                        `json:"title"`
	Description    string                        `json:"description"`
	Price          float64                       `json:"price" binding:"omitempty,gte=0"`
	Currency       string                        `json:"currency"`
	CategoryID     string                        `json:"category_id" binding:"omitempty,uuid"`
	Condition      string                        `json:"condition" binding:"omitempty,oneof=new like_new good fair poor"`
	Location       *entity.GeoLocation           `json:"location"`
	Specifications []entity.ProductSpecification `json:"specifications"`
	Tags           []string                      `json:"tags"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft active sold inactive"`
}

type addImageRequest struct {
	URL       string `json:"url" binding:"required,url"`
	IsPrimary bool   `json:"is_primary"`
}

func (h *ProductsHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	currency := req.Currency
	if currency == "" {
		currency = entity.DefaultCurrency
	}
	p := &entity.Product{
		Title:          req.Title,
		Description:    req.Description,
		Price:          entity.Money{Amount: req.Price, Currency: currency},
		SellerID:       c.GetString(middleware.CtxUserIDKey),
		CategoryID:     req.CategoryID,
		Condition:      entity.ProductCondition(req.Condition),
		Location:       req.Location,
		Specifications: req.Specifications,
		Tags:           req.Tags,
	}
	created, err := h.Svc.Create(c.Request.Context(), p)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created, "product created", nil)
}

func (h *ProductsHandler) Get(c *gin.Context) {
	p, err := h.Svc.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "product", nil)
}

func (h *ProductsHandler) List(c *gin.Context) {
	if status := c.Query("status"); status != "" {
		products, err := h.Svc.FindByStatus(c.Request.Context(), entity.ProductStatus(status), pageFromQuery(c))
		if err != nil {
			serviceError(c, err)
			return
		}
		response.Success(c, http.StatusOK, products, "products", nil)
		return
	}
	products, err := h.Svc.FindAll(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, products, "products", nil)
}

func (h *ProductsHandler) ListBySeller(c *gin.Context) {
	products, err := h.Svc.FindBySeller(c.Request.Context(), c.Param("id"), pageFromQuery(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, products, "products", nil)
}

func (h *ProductsHandler) ListByCategory(c *gin.Context) {
	products, err := h.Svc.FindByCategory(c.Request.Context(), c.Param("id"), pageFromQuery(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, products, "products", nil)
}

func (h *ProductsHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	products, err := h.Svc.Search(c.Request.Context(), q, pageFromQuery(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, products, "search results", nil)
}

// QuickSearch serves the Elasticsearch-backed typeahead.
func (h *ProductsHandler) QuickSearch(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.QuickSearch(c.Request.Context(), q, size)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", nil)
}

func (h *ProductsHandler) Nearby(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil {
		response.Error[any](c, http.StatusBadRequest, "lat and lon are required", nil)
		return
	}
	radius, _ := strconv.ParseFloat(c.DefaultQuery("radius", "0"), 64)
	loc := entity.GeoLocation{Latitude: lat, Longitude: lon, RadiusKm: radius}
	products, err := h.Svc.FindNearby(c.Request.Context(), loc, pageFromQuery(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, products, "products", nil)
}

func (h *ProductsHandler) Update(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	patch := &entity.Product{
		Title:          req.Title,
		Description:    req.Description,
		CategoryID:     req.CategoryID,
		Condition:      entity.ProductCondition(req.Condition),
		Location:       req.Location,
		Specifications: req.Specifications,
		Tags:           req.Tags,
	}
	if req.Price > 0 {
		currency := req.Currency
		if currency == "" {
			currency = entity.DefaultCurrency
		}
		patch.Price = entity.Money{Amount: req.Price, Currency: currency}
	}
	p, err := h.Svc.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "product updated", nil)
}

func (h *ProductsHandler) Delete(c *gin.Context) {
	p, err := h.Svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "product deleted", nil)
}

func (h *ProductsHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.UpdateStatus(c.Request.Context(), c.Param("id"), entity.ProductStatus(req.Status))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "status updated", nil)
}

func (h *ProductsHandler) AddImage(c *gin.Context) {
	var req addImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.AddImage(c.Request.Context(), c.Param("id"), req.URL, req.IsPrimary)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "image added", nil)
}

func (h *ProductsHandler) RemoveImage(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		response.Error[any](c, http.StatusBadRequest, "missing url", nil)
		return
	}
	p, err := h.Svc.RemoveImage(c.Request.Context(), c.Param("id"), url)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "image removed", nil)
}

// UploadImage accepts a multipart file and stores it in GCS before
// registering it on the product.
func (h *ProductsHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing file", nil)
		return
	}
	isPrimary, _ := strconv.ParseBool(c.DefaultPostForm("is_primary", "false"))
	f, err := file.Open()
	if err != nil {
		serviceError(c, err)
		return
	}
	defer func() { _ = f.Close() }()
	contentType := file.Header.Get("Content-Type")
	p, err := h.Svc.UploadImage(c.Request.Context(), c.Param("id"), f, file.Filename, contentType, isPrimary)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "image uploaded", nil)
}
