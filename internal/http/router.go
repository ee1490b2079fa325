package http

import (
	"github.com/gin-gonic/gin"
	"github.com/nexavault/storefront/internal/http/controller"
	"github.com/nexavault/storefront/internal/http/middleware"
)

// InitRouter wires the storefront routes: the JSON product API, the public
// pages and the session-gated admin console.
func InitRouter(
	server *gin.Engine,
	mw *middleware.Middleware,
	ctr *controller.Controller,
	productCtr *controller.ProductController,
	authCtr *controller.AuthController,
	pageCtr *controller.PageController,
) *gin.Engine {
	// Apply recovery middleware globally to prevent panics from crashing the server
	server.Use(middleware.Recovery())

	server.GET("/ping", ctr.Ping)

	// Public pages
	server.GET("/", pageCtr.Home)
	server.GET("/products/:slug", pageCtr.ProductPage)

	// JSON product API; mutations require an admin session
	products := server.Group("/products")
	{
		products.GET("", productCtr.ListProducts)
		products.POST("", mw.RequireAdminAPI(), productCtr.CreateProduct)
		products.DELETE("/:id", mw.RequireAdminAPI(), productCtr.DeleteProduct)
	}

	// Admin console
	admin := server.Group("/admin")
	{
		admin.GET("/login", authCtr.LoginPage)
		admin.POST("/login", authCtr.Login)
		admin.POST("/logout", authCtr.Logout)

		gated := admin.Group("", mw.RequireAdminPage())
		gated.GET("", pageCtr.AdminPage)
		gated.POST("/products", pageCtr.AdminCreate)
		gated.POST("/products/:id/delete", pageCtr.AdminDelete)
	}

	return server
}
