package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nexavault/storefront/internal/events"
	"github.com/nexavault/storefront/internal/metrics"
	"github.com/nexavault/storefront/internal/model"
	"github.com/nexavault/storefront/internal/store"
)

// Publisher is the event sink the service notifies about catalogue changes.
type Publisher interface {
	PublishProductMessage(ctx context.Context, msg events.ProductMessage) error
}

// ProductService orchestrates the product store, metrics and the optional
// catalogue event publisher. It carries no authorization logic; admin gating
// happens at the HTTP boundary.
type ProductService struct {
	store     store.ProductStore
	publisher Publisher
}

// NewProductService creates a ProductService. A nil publisher disables
// catalogue events.
func NewProductService(productStore store.ProductStore, publisher Publisher) *ProductService {
	return &ProductService{
		store:     productStore,
		publisher: publisher,
	}
}

// CreateProduct validates and persists a new listing, then publishes a
// best-effort created event.
func (ps *ProductService) CreateProduct(ctx context.Context, input model.ProductInput) (*model.Product, error) {
	created, err := ps.store.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	metrics.ProductsCreated.Inc()

	if ps.publisher != nil {
		msg := events.NewProductMessage(events.ActionCreated, created)
		if err := ps.publisher.PublishProductMessage(ctx, msg); err != nil {
			// Log error but don't fail the request
			slog.Error("failed to publish catalogue event", slog.Any("err", err),
				slog.String("action", events.ActionCreated), slog.String("product_id", created.ID.String()))
		}
	}

	return created, nil
}

// DeleteProduct removes a listing. Deleting an absent id is a no-op for the
// caller; it reports whether a row was actually removed.
func (ps *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted, err := ps.store.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		slog.Info("delete requested for absent product", slog.String("product_id", id.String()))
		return false, nil
	}

	metrics.ProductsDeleted.Inc()

	if ps.publisher != nil {
		msg := events.ProductMessage{Action: events.ActionDeleted, ProductID: id.String()}
		if err := ps.publisher.PublishProductMessage(ctx, msg); err != nil {
			// Log error but don't fail the request
			slog.Error("failed to publish catalogue event", slog.Any("err", err),
				slog.String("action", events.ActionDeleted), slog.String("product_id", id.String()))
		}
	}

	return true, nil
}

// ListProducts returns products newest first, bounded by the query.
func (ps *ProductService) ListProducts(ctx context.Context, query store.Query) ([]model.Product, error) {
	return ps.store.List(ctx, query)
}

// GetProductBySlug resolves a single product by its public slug.
func (ps *ProductService) GetProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	return ps.store.GetBySlug(ctx, slug)
}
