package controller_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nexavault/storefront/internal/auth"
	"github.com/nexavault/storefront/internal/config"
	"github.com/nexavault/storefront/internal/http/controller"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *auth.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authService := auth.NewService(config.Admin{
		Password:      "correct horse",
		SessionSecret: "test-signing-secret",
	})
	ac := controller.NewAuthController(authService)

	router := gin.New()
	router.LoadHTMLGlob("../../../web/templates/*.html")
	router.GET("/admin/login", ac.LoginPage)
	router.POST("/admin/login", ac.Login)
	router.POST("/admin/logout", ac.Logout)
	return router, authService
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)
	return w
}

func TestLoginPage(t *testing.T) {
	router, _ := newAuthRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/login", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="password"`)
}

func TestLogin(t *testing.T) {
	t.Run("correct password sets the session cookie and redirects", func(t *testing.T) {
		router, authService := newAuthRouter(t)

		w := postForm(router, "/admin/login", url.Values{"password": {"correct horse"}})

		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/admin", w.Header().Get("Location"))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		cookie := cookies[0]
		assert.Equal(t, auth.CookieName, cookie.Name)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, "/", cookie.Path)

		// The issued cookie must round-trip through the session gate.
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.AddCookie(cookie)
		sess := authService.SessionFromRequest(req)
		require.NotNil(t, sess)
		assert.Equal(t, "admin", sess.Role)
	})

	t.Run("wrong password re-renders the form with an inline error", func(t *testing.T) {
		router, _ := newAuthRouter(t)

		w := postForm(router, "/admin/login", url.Values{"password": {"battery staple"}})

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid password")
		assert.Empty(t, w.Result().Cookies())
	})
}

func TestLogout(t *testing.T) {
	router, _ := newAuthRouter(t)

	w := postForm(router, "/admin/logout", url.Values{})

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.CookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
