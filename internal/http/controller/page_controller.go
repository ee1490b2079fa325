package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nexavault/storefront/internal/catalogue"
	"github.com/nexavault/storefront/internal/model"
	"github.com/nexavault/storefront/internal/service"
	"github.com/nexavault/storefront/internal/store"
)

// maxFeedPages caps server-driven load-more so a crafted URL cannot walk the
// whole catalogue in one request.
const maxFeedPages = 50

// PageController renders the public storefront and the admin console.
type PageController struct {
	productService *service.ProductService
	origin         string
}

// NewPageController creates a PageController. origin is the canonical site
// origin used for share links.
func NewPageController(productService *service.ProductService, origin string) *PageController {
	return &PageController{
		productService: productService,
		origin:         origin,
	}
}

type productCard struct {
	ID       string
	Title    string
	Slug     string
	Excerpt  string
	Price    float64
	ImageURL string
	Category string
	Link     string
}

func (pc *PageController) toCard(p *model.Product) productCard {
	return productCard{
		ID:       p.ID.String(),
		Title:    p.Title,
		Slug:     p.Slug,
		Excerpt:  p.Excerpt,
		Price:    p.Price,
		ImageURL: p.ImageURL,
		Category: p.Category,
		Link:     catalogue.ProductLink(pc.origin, p.Slug),
	}
}

// Home renders the public catalogue. ?pages= drives the load-more control
// (each increment fetches one more page of five), ?q= filters the fetched
// items. A degraded store yields an empty catalogue, never an error page.
func (pc *PageController) Home(c *gin.Context) {
	pages, err := strconv.Atoi(c.DefaultQuery("pages", "1"))
	if err != nil || pages < 1 {
		pages = 1
	}
	if pages > maxFeedPages {
		pages = maxFeedPages
	}
	term := c.Query("q")

	feed := catalogue.NewFeed(pc.productService)
	for i := 0; i < pages && !feed.Exhausted(); i++ {
		if err := feed.LoadMore(c.Request.Context()); err != nil {
			slog.Error("failed to load catalogue, rendering empty storefront", slog.Any("err", err))
			break
		}
	}
	feed.Search(term)

	visible := feed.Visible()
	cards := make([]productCard, 0, len(visible))
	for i := range visible {
		cards = append(cards, pc.toCard(&visible[i]))
	}

	c.HTML(http.StatusOK, "home.html", gin.H{
		"Products":     cards,
		"Query":        term,
		"ShowLoadMore": !feed.Exhausted(),
		"NextPages":    pages + 1,
	})
}

// ProductPage renders a single product resolved by slug, or the not-found
// page when the slug is absent.
func (pc *PageController) ProductPage(c *gin.Context) {
	slug := c.Param("slug")

	product, err := pc.productService.GetProductBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.HTML(http.StatusNotFound, "notfound.html", gin.H{"Slug": slug})
			return
		}
		slog.Error("failed to fetch product page", slog.Any("err", err), slog.String("slug", slug))
		c.HTML(http.StatusInternalServerError, "notfound.html", gin.H{"Slug": slug})
		return
	}

	c.HTML(http.StatusOK, "product.html", gin.H{
		"Product":     product,
		"Card":        pc.toCard(product),
		"GumroadLink": product.GumroadLink,
	})
}

// AdminPage renders the console: the create form plus the full listing with
// delete controls. Requires a session (enforced by middleware).
func (pc *PageController) AdminPage(c *gin.Context) {
	products, err := pc.productService.ListProducts(c.Request.Context(), store.Query{})
	if err != nil {
		slog.Error("failed to list products for admin console", slog.Any("err", err))
		c.HTML(http.StatusOK, "admin.html", gin.H{
			"Error": "Could not load listings, the catalogue may be degraded",
		})
		return
	}

	cards := make([]productCard, 0, len(products))
	for i := range products {
		cards = append(cards, pc.toCard(&products[i]))
	}

	c.HTML(http.StatusOK, "admin.html", gin.H{
		"Products": cards,
		"Error":    c.Query("error"),
	})
}

// AdminCreate handles the console's create form and redirects back to the
// console, carrying any failure as an inline message.
func (pc *PageController) AdminCreate(c *gin.Context) {
	price, err := strconv.ParseFloat(c.DefaultPostForm("price", "0"), 64)
	if err != nil || price < 0 {
		c.Redirect(http.StatusFound, "/admin?error="+url.QueryEscape("price must be a non-negative number"))
		return
	}

	input := model.ProductInput{
		Title:       c.PostForm("title"),
		Slug:        c.PostForm("slug"),
		Description: c.PostForm("description"),
		Excerpt:     c.PostForm("excerpt"),
		Price:       price,
		GumroadLink: c.PostForm("gumroadLink"),
		ImageURL:    c.PostForm("imageUrl"),
		Category:    c.PostForm("category"),
	}

	if _, err := pc.productService.CreateProduct(c.Request.Context(), input); err != nil {
		var vErr *store.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.Redirect(http.StatusFound, "/admin?error="+url.QueryEscape(vErr.Error()))
		case errors.Is(err, store.ErrDuplicateSlug):
			c.Redirect(http.StatusFound, "/admin?error="+url.QueryEscape("a product with this slug already exists"))
		default:
			slog.Error("failed to create product from console", slog.Any("err", err))
			c.Redirect(http.StatusFound, "/admin?error="+url.QueryEscape("failed to create product"))
		}
		return
	}

	c.Redirect(http.StatusFound, "/admin")
}

// AdminDelete handles the console's delete form. The confirmation happens in
// the browser; an id that is already gone still redirects back cleanly.
func (pc *PageController) AdminDelete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/admin?error="+url.QueryEscape("invalid product id"))
		return
	}

	if _, err := pc.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		slog.Error("failed to delete product from console", slog.Any("err", err), slog.String("product_id", id.String()))
		c.Redirect(http.StatusFound, "/admin?error="+url.QueryEscape("failed to delete product"))
		return
	}

	c.Redirect(http.StatusFound, "/admin")
}
