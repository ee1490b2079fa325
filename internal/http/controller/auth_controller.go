package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nexavault/storefront/internal/auth"
	"github.com/nexavault/storefront/internal/metrics"
)

// AuthController handles the login and logout pages.
type AuthController struct {
	auth *auth.Service
}

// NewAuthController creates an AuthController over the auth service.
func NewAuthController(authService *auth.Service) *AuthController {
	return &AuthController{auth: authService}
}

// LoginPage renders the password form. An already authenticated admin is sent
// straight to the console.
func (ac *AuthController) LoginPage(c *gin.Context) {
	if ac.auth.SessionFromRequest(c.Request) != nil {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// Login verifies the submitted password, sets the session cookie and redirects
// to the console. A failed attempt re-renders the form with an inline error.
func (ac *AuthController) Login(c *gin.Context) {
	password := c.PostForm("password")

	token, expires, err := ac.auth.Login(password)
	if err != nil {
		metrics.AdminLogins.WithLabelValues("failure").Inc()
		if errors.Is(err, auth.ErrInvalidPassword) {
			c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": "Invalid password"})
			return
		}
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"Error": "Something went wrong, try again"})
		return
	}

	metrics.AdminLogins.WithLabelValues("success").Inc()
	http.SetCookie(c.Writer, auth.SessionCookie(token, expires))
	c.Redirect(http.StatusFound, "/admin")
}

// Logout clears the session cookie and returns to the public home page.
func (ac *AuthController) Logout(c *gin.Context) {
	http.SetCookie(c.Writer, auth.ClearSessionCookie())
	c.Redirect(http.StatusFound, "/")
}
