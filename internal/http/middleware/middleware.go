package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nexavault/storefront/internal/auth"
)

// SessionKey is the gin context key holding the decoded admin session.
const SessionKey = "session"

// Middleware gates admin-only routes on a valid session cookie.
type Middleware struct {
	auth *auth.Service
}

// New initializes the middleware with the auth service.
func New(authService *auth.Service) *Middleware {
	return &Middleware{auth: authService}
}

// Recovery is a middleware that recovers from panics and returns a 500 Internal Server Error
// instead of crashing the server.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("Panic recovered",
					slog.Any("error", err),
					slog.String("path", c.Request.URL.Path),
					slog.String("method", c.Request.Method),
				)
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal Server Error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// RequireAdminPage gates HTML admin pages: without a valid session the
// visitor is redirected to the login page.
func (m *Middleware) RequireAdminPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := m.auth.SessionFromRequest(c.Request)
		if sess == nil {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Set(SessionKey, sess)
		c.Next()
	}
}

// RequireAdminAPI gates JSON mutation endpoints: without a valid session the
// caller gets a 401.
func (m *Middleware) RequireAdminAPI() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := m.auth.SessionFromRequest(c.Request)
		if sess == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		c.Set(SessionKey, sess)
		c.Next()
	}
}
