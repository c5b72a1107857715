package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	repository "github.com/quickretail/qpos/internal/repositories"
)

func setupProductRepoTest(t *testing.T) (repository.ProductRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	return repository.NewProductRepo(db), mock
}

func TestGetProductByID(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		repo, mock := setupProductRepoTest(t)

		mock.ExpectQuery(`SELECT (.+) FROM products`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "sku", "name", "description", "category_id", "base_price",
				"cost_price", "image_url", "is_active", "created_at", "updated_at",
			}).AddRow(int64(3), "SNK-001", "Court Sneaker", "", int64(1),
				2000.0, 1200.0, "", true, now, now))

		product, err := repo.GetProductByID(ctx, 3)

		require.NoError(t, err)
		assert.Equal(t, "Court Sneaker", product.Name)
		assert.Equal(t, 2000.0, product.BasePrice)
	})

	t.Run("Failure - Not Found Passes Through", func(t *testing.T) {
		repo, mock := setupProductRepoTest(t)

		mock.ExpectQuery(`SELECT (.+) FROM products`).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		product, err := repo.GetProductByID(ctx, 99)

		assert.Nil(t, product)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestGetVariantByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, mock := setupProductRepoTest(t)

		mock.ExpectQuery(`SELECT (.+) FROM product_variants`).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "product_id", "size_uk", "size_us", "size_eu", "color",
				"barcode", "stock_quantity", "reorder_level", "price_adjustment", "is_active",
			}).AddRow(int64(5), int64(3), 9.0, 10.0, 43.0, "Black",
				"8901234567890", 10, 3, 0.0, true))

		variant, err := repo.GetVariantByID(ctx, 5)

		require.NoError(t, err)
		assert.Equal(t, int64(3), variant.ProductID)
		assert.Equal(t, 10, variant.StockQuantity)
	})
}

func TestUpdateVariantStock(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, mock := setupProductRepoTest(t)

		mock.ExpectExec(`UPDATE product_variants`).
			WithArgs(8, int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateVariantStock(ctx, 5, 8)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Unknown Variant", func(t *testing.T) {
		repo, mock := setupProductRepoTest(t)

		mock.ExpectExec(`UPDATE product_variants`).
			WithArgs(8, int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateVariantStock(ctx, 99, 8)

		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		repo, mock := setupProductRepoTest(t)

		mock.ExpectExec(`UPDATE product_variants`).
			WithArgs(8, int64(5)).
			WillReturnError(errors.New("db down"))

		err := repo.UpdateVariantStock(ctx, 5, 8)

		assert.Error(t, err)
	})
}
