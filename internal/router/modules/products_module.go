package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vecino/marketplace/internal/container"
	handlers "github.com/vecino/marketplace/internal/interface/http"
	"github.com/vecino/marketplace/internal/interface/middleware"
	"github.com/vecino/marketplace/pkg/helpers"
)

// ProductsModule wires catalog routes. Reads are public; writes require
// an authenticated seller.
type ProductsModule struct {
	Handler *handlers.ProductsHandler
	JWT     *helpers.JWTManager
}

func NewProductsModule(h *handlers.ProductsHandler, jwt *helpers.JWTManager) *ProductsModule {
	return &ProductsModule{Handler: h, JWT: jwt}
}

func (m *ProductsModule) Register(rg *gin.RouterGroup) {
	searchLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.GET("/products", m.Handler.List)
	rg.GET("/products/:id", m.Handler.Get)
	rg.GET("/products/seller/:id", m.Handler.ListBySeller)
	rg.GET("/products/category/:id", m.Handler.ListByCategory)
	rg.GET("/products/search", searchLimiter, m.Handler.Search)
	rg.GET("/products/quick-search", searchLimiter, m.Handler.QuickSearch)
	rg.GET("/products/nearby", searchLimiter, m.Handler.Nearby)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.POST("/products", m.Handler.Create)
		auth.PUT("/products/:id", m.Handler.Update)
		auth.DELETE("/products/:id", m.Handler.Delete)
		auth.PATCH("/products/:id/status", m.Handler.UpdateStatus)
		auth.POST("/products/:id/images", m.Handler.AddImage)
		auth.DELETE("/products/:id/images", m.Handler.RemoveImage)
		auth.POST("/products/:id/images/upload", m.Handler.UploadImage)
	}
}
