package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nexavault/storefront/internal/model"
	"github.com/nexavault/storefront/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productCols = []string{"id", "title", "slug", "description", "excerpt", "price", "gumroad_link", "image_url", "category", "published_at"}

func validInput() model.ProductInput {
	return model.ProductInput{
		Title:       "UI Kit",
		Slug:        "ui-kit",
		Description: "A **markdown** description",
		Excerpt:     "Short summary",
		Price:       9.99,
		GumroadLink: "https://gum.co/ui-kit",
		ImageURL:    "/images/ui-kit.png",
		Category:    "Template",
	}
}

func TestProductStore_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewProductStore(db)
	ctx := context.Background()

	t.Run("successful creation", func(t *testing.T) {
		input := validInput()

		mock.ExpectPrepare("INSERT INTO products").
			ExpectExec().
			WithArgs(sqlmock.AnyArg(), input.Title, input.Slug, input.Description, input.Excerpt,
				input.Price, input.GumroadLink, input.ImageURL, input.Category, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		created, err := s.Create(ctx, input)
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Equal(t, input.Title, created.Title)
		assert.Equal(t, input.Slug, created.Slug)
		assert.False(t, created.PublishedAt.IsZero())

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("category defaults when unset", func(t *testing.T) {
		input := validInput()
		input.Category = ""

		mock.ExpectPrepare("INSERT INTO products").
			ExpectExec().
			WithArgs(sqlmock.AnyArg(), input.Title, input.Slug, input.Description, input.Excerpt,
				input.Price, input.GumroadLink, input.ImageURL, model.DefaultCategory, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		created, err := s.Create(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, model.DefaultCategory, created.Category)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing title fails validation without touching the db", func(t *testing.T) {
		input := validInput()
		input.Title = ""

		created, err := s.Create(ctx, input)
		require.Error(t, err)
		assert.Nil(t, created)

		var vErr *store.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "title", vErr.Field)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing gumroad link fails validation", func(t *testing.T) {
		input := validInput()
		input.GumroadLink = ""

		_, err := s.Create(ctx, input)
		var vErr *store.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "gumroadLink", vErr.Field)
	})

	t.Run("duplicate slug maps to ErrDuplicateSlug", func(t *testing.T) {
		input := validInput()

		mock.ExpectPrepare("INSERT INTO products").
			ExpectExec().
			WithArgs(sqlmock.AnyArg(), input.Title, input.Slug, input.Description, input.Excerpt,
				input.Price, input.GumroadLink, input.ImageURL, input.Category, sqlmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "products_slug_key"})

		created, err := s.Create(ctx, input)
		require.Error(t, err)
		assert.Nil(t, created)
		assert.ErrorIs(t, err, store.ErrDuplicateSlug)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductStore_GetBySlug(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewProductStore(db)
	ctx := context.Background()

	t.Run("successful find", func(t *testing.T) {
		id := uuid.New()
		now := time.Now()
		rows := sqlmock.NewRows(productCols).
			AddRow(id, "UI Kit", "ui-kit", "desc", "excerpt", 9.99, "https://gum.co/ui-kit", "", "Template", now)

		mock.ExpectPrepare("SELECT (.+) FROM products WHERE slug = \\$1").
			ExpectQuery().
			WithArgs("ui-kit").
			WillReturnRows(rows)

		found, err := s.GetBySlug(ctx, "ui-kit")
		require.NoError(t, err)
		require.NotNil(t, found)

		assert.Equal(t, id, found.ID)
		assert.Equal(t, "UI Kit", found.Title)
		assert.Equal(t, 9.99, found.Price)
		assert.Empty(t, found.ImageURL)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("miss returns ErrNotFound", func(t *testing.T) {
		mock.ExpectPrepare("SELECT (.+) FROM products WHERE slug = \\$1").
			ExpectQuery().
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		found, err := s.GetBySlug(ctx, "missing")
		require.Error(t, err)
		assert.Nil(t, found)
		assert.ErrorIs(t, err, store.ErrNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductStore_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewProductStore(db)
	ctx := context.Background()

	t.Run("full list without limit", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows(productCols).
			AddRow(uuid.New(), "Second", "second", "d", "e", 5, "https://gum.co/2", "", "Template", now).
			AddRow(uuid.New(), "First", "first", "d", "e", 4, "https://gum.co/1", "", "Template", now.Add(-time.Hour))

		mock.ExpectPrepare("SELECT (.+) FROM products ORDER BY published_at DESC, id DESC$").
			ExpectQuery().
			WillReturnRows(rows)

		products, err := s.List(ctx, store.Query{})
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "Second", products[0].Title)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("paginated list applies limit and offset", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows(productCols).
			AddRow(uuid.New(), "Sixth", "sixth", "d", "e", 5, "https://gum.co/6", "", "Template", now)

		mock.ExpectPrepare("SELECT (.+) FROM products ORDER BY published_at DESC, id DESC LIMIT \\$1 OFFSET \\$2").
			ExpectQuery().
			WithArgs(5, 5).
			WillReturnRows(rows)

		products, err := s.List(ctx, store.Query{Offset: 5, Limit: 5})
		require.NoError(t, err)
		require.Len(t, products, 1)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty result is not an error", func(t *testing.T) {
		mock.ExpectPrepare("SELECT (.+) FROM products ORDER BY published_at DESC, id DESC$").
			ExpectQuery().
			WillReturnRows(sqlmock.NewRows(productCols))

		products, err := s.List(ctx, store.Query{})
		require.NoError(t, err)
		assert.Empty(t, products)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductStore_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewProductStore(db)
	ctx := context.Background()

	t.Run("existing row is removed", func(t *testing.T) {
		id := uuid.New()

		mock.ExpectPrepare("DELETE FROM products WHERE id = \\$1").
			ExpectExec().
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		deleted, err := s.Delete(ctx, id)
		require.NoError(t, err)
		assert.True(t, deleted)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent id is not an error", func(t *testing.T) {
		id := uuid.New()

		mock.ExpectPrepare("DELETE FROM products WHERE id = \\$1").
			ExpectExec().
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		deleted, err := s.Delete(ctx, id)
		require.NoError(t, err)
		assert.False(t, deleted)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
