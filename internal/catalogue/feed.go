// Package catalogue owns the public listing view state: the accumulated
// products, the search term and the load-more cursor. State only changes
// through the defined actions, never implicitly.
package catalogue

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/nexavault/storefront/internal/model"
	"github.com/nexavault/storefront/internal/store"
)

// PageSize is the number of products fetched per load-more step.
const PageSize = 5

// Lister is the read-side slice of the product store the feed depends on.
type Lister interface {
	ListProducts(ctx context.Context, query store.Query) ([]model.Product, error)
}

// Feed accumulates pages of products for the public catalogue.
type Feed struct {
	lister    Lister
	items     []model.Product
	term      string
	offset    int
	exhausted bool
}

// NewFeed creates an empty feed over the given lister.
func NewFeed(lister Lister) *Feed {
	return &Feed{lister: lister}
}

// LoadMore fetches the next page and appends it to the feed. Exhaustion is
// detected heuristically: a page shorter than PageSize means the end was
// reached, so when the total is an exact multiple of PageSize one extra empty
// fetch occurs before the feed reports exhausted.
func (f *Feed) LoadMore(ctx context.Context) error {
	if f.exhausted {
		return nil
	}

	page, err := f.lister.ListProducts(ctx, store.Query{Offset: f.offset, Limit: PageSize})
	if err != nil {
		return err
	}

	f.items = append(f.items, page...)
	f.offset += len(page)
	if len(page) < PageSize {
		f.exhausted = true
	}
	return nil
}

// Search sets the case-insensitive filter term. Filtering applies only to
// already-fetched items; it never queries the store for unfetched matches.
func (f *Feed) Search(term string) {
	f.term = term
}

// Remove prunes a deleted product from the local view state.
func (f *Feed) Remove(id uuid.UUID) {
	for i, item := range f.items {
		if item.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return
		}
	}
}

// Visible returns the fetched items matching the current search term, in
// fetch order (newest first).
func (f *Feed) Visible() []model.Product {
	if f.term == "" {
		return f.items
	}

	needle := strings.ToLower(f.term)
	var matched []model.Product
	for _, item := range f.items {
		if strings.Contains(strings.ToLower(item.Title), needle) ||
			strings.Contains(strings.ToLower(item.Excerpt), needle) {
			matched = append(matched, item)
		}
	}
	return matched
}

// Term returns the current search term.
func (f *Feed) Term() string {
	return f.term
}

// Size returns the number of fetched items, ignoring the search filter.
func (f *Feed) Size() int {
	return len(f.items)
}

// Exhausted reports whether the end of the catalogue has been reached and the
// load-more control should be hidden.
func (f *Feed) Exhausted() bool {
	return f.exhausted
}

// ProductLink builds the canonical share URL for a product slug.
func ProductLink(origin, slug string) string {
	return strings.TrimSuffix(origin, "/") + "/products/" + slug
}
