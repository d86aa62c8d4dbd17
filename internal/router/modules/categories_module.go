package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/vecino/marketplace/internal/interface/http"
	"github.com/vecino/marketplace/internal/interface/middleware"
	"github.com/vecino/marketplace/pkg/helpers"
)

// CategoriesModule wires taxonomy routes. Reads are public; writes
// require auth (admin checks live with the caller for now).
type CategoriesModule struct {
	Handler *handlers.CategoriesHandler
	JWT     *helpers.JWTManager
}

func NewCategoriesModule(h *handlers.CategoriesHandler, jwt *helpers.JWTManager) *CategoriesModule {
	return &CategoriesModule{Handler: h, JWT: jwt}
}

func (m *CategoriesModule) Register(rg *gin.RouterGroup) {
	rg.GET("/categories", m.Handler.List)
	rg.GET("/categories/:id", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.POST("/categories", m.Handler.Create)
		auth.PUT("/categories/:id", m.Handler.Update)
		auth.DELETE("/categories/:id", m.Handler.Delete)
	}
}
