package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nexavault/storefront/internal/model"
	"github.com/nexavault/storefront/internal/service"
	"github.com/nexavault/storefront/internal/store"
)

// ProductController handles the JSON product API.
type ProductController struct {
	productService *service.ProductService
}

// NewProductController creates a new ProductController with the given product service.
func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// CreateProductRequest represents the request body for creating a product.
// Presence of the required fields is enforced by the store so validation
// failures surface uniformly; gin only checks formats and ranges here.
type CreateProductRequest struct {
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Excerpt     string  `json:"excerpt"`
	Price       float64 `json:"price" binding:"omitempty,gte=0"`
	GumroadLink string  `json:"gumroadLink"`
	ImageURL    string  `json:"imageUrl"`
	Category    string  `json:"category"`
}

// ProductResponse represents the response body for a product.
type ProductResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Excerpt     string  `json:"excerpt"`
	Price       float64 `json:"price"`
	GumroadLink string  `json:"gumroadLink"`
	ImageURL    string  `json:"imageUrl"`
	Category    string  `json:"category"`
	PublishedAt string  `json:"publishedAt"`
}

// ListProductsRequest represents the query parameters for listing products.
type ListProductsRequest struct {
	Slug   string `form:"slug"`
	Limit  int    `form:"limit" binding:"omitempty,gte=0"`
	Offset int    `form:"offset" binding:"omitempty,gte=0"`
}

// ListProducts handles GET /products. With ?slug= it resolves a single
// product; otherwise it returns the listing, optionally bounded by
// ?limit=&offset= for load-more pagination. Without a limit the full set is
// returned.
func (pc *ProductController) ListProducts(c *gin.Context) {
	var req ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Slug != "" {
		product, err := pc.productService.GetProductBySlug(c.Request.Context(), req.Slug)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			slog.Error("failed to fetch product", slog.Any("err", err), slog.String("slug", req.Slug))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}
		c.JSON(http.StatusOK, toProductResponse(product))
		return
	}

	products, err := pc.productService.ListProducts(c.Request.Context(), store.Query{
		Offset: req.Offset,
		Limit:  req.Limit,
	})
	if err != nil {
		slog.Error("failed to list products", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, toProductResponse(&products[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// CreateProduct handles POST /products. Failure modes are differentiated:
// missing fields are a 400, slug collisions a 409, everything else a generic
// 500 with the detail kept server-side.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := pc.productService.CreateProduct(c.Request.Context(), model.ProductInput{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Excerpt:     req.Excerpt,
		Price:       req.Price,
		GumroadLink: req.GumroadLink,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
	})
	if err != nil {
		var vErr *store.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
		case errors.Is(err, store.ErrDuplicateSlug):
			c.JSON(http.StatusConflict, gin.H{"error": "A product with this slug already exists"})
		default:
			slog.Error("failed to create product", slog.Any("err", err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		}
		return
	}

	c.JSON(http.StatusCreated, toProductResponse(created))
}

// DeleteProduct handles DELETE /products/:id. Deleting an id that no longer
// exists is not an error for the caller.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	if _, err := pc.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		slog.Error("failed to delete product", slog.Any("err", err), slog.String("product_id", id.String()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.Status(http.StatusNoContent)
}

func toProductResponse(product *model.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID.String(),
		Title:       product.Title,
		Slug:        product.Slug,
		Description: product.Description,
		Excerpt:     product.Excerpt,
		Price:       product.Price,
		GumroadLink: product.GumroadLink,
		ImageURL:    product.ImageURL,
		Category:    product.Category,
		PublishedAt: product.PublishedAt.Format(time.RFC3339),
	}
}
