package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCategory is assigned when a product is created without a category.
const DefaultCategory = "Digital Product"

// Product represents a storefront listing. Description holds markdown that is
// rendered client-side; ImageURL may be empty, in which case the presentation
// layer falls back to a placeholder.
type Product struct {
	ID          uuid.UUID
	Title       string
	Slug        string
	Description string
	Excerpt     string
	Price       float64
	GumroadLink string
	ImageURL    string
	Category    string
	PublishedAt time.Time
}

// InitMeta assigns the generated identifier and publish timestamp.
// PublishedAt is the sole listing sort key and is immutable after creation.
func (p *Product) InitMeta() {
	p.ID = uuid.New()
	p.PublishedAt = time.Now()
}

// ProductInput is the caller-supplied portion of a product, everything except
// the store-assigned ID and PublishedAt.
type ProductInput struct {
	Title       string
	Slug        string
	Description string
	Excerpt     string
	Price       float64
	GumroadLink string
	ImageURL    string
	Category    string
}
