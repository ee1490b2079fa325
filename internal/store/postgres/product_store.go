package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nexavault/storefront/internal/model"
	"github.com/nexavault/storefront/internal/store"
)

const productColumns = "id, title, slug, description, excerpt, price, gumroad_link, image_url, category, published_at"

// ProductStore implements store.ProductStore over the products relation.
type ProductStore struct {
	db *sql.DB
}

// NewProductStore creates a new ProductStore instance.
func NewProductStore(db *sql.DB) store.ProductStore {
	return &ProductStore{db: db}
}

func (s *ProductStore) getExecutor() dbExecutor {
	return s.db
}

// Create validates the input, assigns id and publish timestamp and inserts the
// product. Slug collisions surface as store.ErrDuplicateSlug; the unique
// constraint on the relation is the arbiter under concurrent creates.
func (s *ProductStore) Create(ctx context.Context, input model.ProductInput) (*model.Product, error) {
	if err := store.ValidateInput(&input); err != nil {
		return nil, err
	}

	product := &model.Product{
		Title:       input.Title,
		Slug:        input.Slug,
		Description: input.Description,
		Excerpt:     input.Excerpt,
		Price:       input.Price,
		GumroadLink: input.GumroadLink,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
	}
	product.InitMeta()

	query := `INSERT INTO products (id, title, slug, description, excerpt, price, gumroad_link, image_url, category, published_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	executor := s.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx,
		product.ID, product.Title, product.Slug, product.Description, product.Excerpt,
		product.Price, product.GumroadLink, product.ImageURL, product.Category, product.PublishedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("failed to insert product %q: %w", product.Slug, store.ErrDuplicateSlug)
		}
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	return product, nil
}

// List retrieves products ordered by publish date descending. The id tiebreaker
// keeps repeated offset fetches stable when publish timestamps collide.
func (s *ProductStore) List(ctx context.Context, query store.Query) ([]model.Product, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + productColumns + " FROM products ORDER BY published_at DESC, id DESC")

	var args []interface{}
	argIndex := 1

	if query.Limit > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argIndex))
		args = append(args, query.Limit)
		argIndex++
	}
	if query.Offset > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argIndex))
		args = append(args, query.Offset)
	}

	executor := s.getExecutor()
	stmt, err := executor.PrepareContext(ctx, queryBuilder.String())
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var product model.Product
		if err := scanProduct(rows.Scan, &product); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return products, nil
}

// GetBySlug retrieves a single product by its public slug. A miss returns
// store.ErrNotFound.
func (s *ProductStore) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE slug = $1"

	executor := s.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	var result model.Product
	err = scanProduct(stmt.QueryRowContext(ctx, slug).Scan, &result)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &result, nil
}

// Delete removes a product by id and reports whether a row was removed.
func (s *ProductStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `DELETE FROM products WHERE id = $1`

	executor := s.getExecutor()
	stmt, err := executor.PrepareContext(ctx, query)
	if err != nil {
		return false, fmt.Errorf("failed to prepare delete statement: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func scanProduct(scan func(dest ...interface{}) error, p *model.Product) error {
	return scan(
		&p.ID, &p.Title, &p.Slug, &p.Description, &p.Excerpt,
		&p.Price, &p.GumroadLink, &p.ImageURL, &p.Category, &p.PublishedAt,
	)
}
