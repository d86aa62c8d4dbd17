package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vecino/marketplace/pkg/helpers"
	"github.com/vecino/marketplace/pkg/response"
)

// CtxUserIDKey is the Gin context key holding the authenticated user id.
const CtxUserIDKey = "userID"

// Auth validates the access token and injects the user id into the
// context. The token comes from the Authorization bearer header or the
// access_token cookie. Claims only; no server-side session.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if ck, err := c.Cookie("access_token"); err == nil {
				token = ck
			}
		}
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", err.Error())
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
