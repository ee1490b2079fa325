package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nexavault/storefront/internal/model"
)

var (
	// ErrNotFound is returned by GetBySlug when no product matches. A miss is a
	// normal outcome, callers render a not-found page rather than an error page.
	ErrNotFound = errors.New("product not found")

	// ErrDuplicateSlug is returned by Create when the slug is already taken.
	ErrDuplicateSlug = errors.New("slug already exists")

	// ErrStoreUnavailable wraps connectivity failures to the underlying datastore.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError reports a create input missing required fields.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "invalid product input: missing " + e.Field
}

// Query bounds a listing. A non-positive Limit returns the full set.
type Query struct {
	Offset int
	Limit  int
}

// ProductStore is the persistence contract for the products relation.
// Listings are ordered by publish date descending with the id as tiebreaker so
// repeated offset fetches neither skip nor duplicate rows on page boundaries.
// The store carries no authorization logic; admin gating happens at the
// HTTP boundary.
type ProductStore interface {
	List(ctx context.Context, query Query) ([]model.Product, error)
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)
	Create(ctx context.Context, input model.ProductInput) (*model.Product, error)
	// Delete removes a product by id. It reports whether a row was removed;
	// deleting an absent id is not an error.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// ValidateInput enforces the required create fields and applies the category
// default. Title and the checkout link are the only hard requirements.
func ValidateInput(input *model.ProductInput) error {
	if input.Title == "" {
		return &ValidationError{Field: "title"}
	}
	if input.GumroadLink == "" {
		return &ValidationError{Field: "gumroadLink"}
	}
	if input.Slug == "" {
		return &ValidationError{Field: "slug"}
	}
	if input.Category == "" {
		input.Category = model.DefaultCategory
	}
	return nil
}
