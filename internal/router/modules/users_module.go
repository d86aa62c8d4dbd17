package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vecino/marketplace/internal/container"
	handlers "github.com/vecino/marketplace/internal/interface/http"
	"github.com/vecino/marketplace/internal/interface/middleware"
	"github.com/vecino/marketplace/pkg/helpers"
)

// UsersModule wires identity routes.
// Public: POST /api/users/register, POST /api/users/login
// Protected: profile, password change, user CRUD
type UsersModule struct {
	Handler *handlers.UsersHandler
	JWT     *helpers.JWTManager
}

func NewUsersModule(h *handlers.UsersHandler, jwt *helpers.JWTManager) *UsersModule {
	return &UsersModule{Handler: h, JWT: jwt}
}

func (m *UsersModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/users/register", registerLimiter, m.Handler.Register)
	rg.POST("/users/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP()))
	{
		auth.GET("/profile", m.Handler.Profile)
		auth.POST("/profile/password", m.Handler.ChangePassword)
		auth.GET("/users", m.Handler.List)
		auth.GET("/users/:id", m.Handler.Get)
		auth.PUT("/users/:id", m.Handler.Update)
		auth.DELETE("/users/:id", m.Handler.Delete)
	}
}
