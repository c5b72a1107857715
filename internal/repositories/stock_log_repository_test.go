package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickretail/qpos/internal/models"
	repository "github.com/quickretail/qpos/internal/repositories"
)

func setupStockLogRepoTest(t *testing.T) (repository.StockLogRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	return repository.NewStockLogRepo(db), mock
}

func TestAppendStockLog(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Entry ID Backfilled", func(t *testing.T) {
		repo, mock := setupStockLogRepoTest(t)
		entry := &models.StockLogEntry{
			ProductID: 3, VariantID: 5, ChangeAmount: -2,
			Reason: models.StockReasonSale, Note: "Sale", Timestamp: time.Now(),
		}

		mock.ExpectQuery(`INSERT INTO stock_logs`).
			WithArgs(entry.ProductID, entry.VariantID, entry.ChangeAmount,
				entry.Reason, entry.Note, entry.Timestamp).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(101)))

		err := repo.Append(ctx, entry)

		require.NoError(t, err)
		assert.Equal(t, int64(101), entry.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Insert Error", func(t *testing.T) {
		repo, mock := setupStockLogRepoTest(t)

		mock.ExpectQuery(`INSERT INTO stock_logs`).
			WillReturnError(errors.New("db down"))

		err := repo.Append(ctx, &models.StockLogEntry{VariantID: 5, ChangeAmount: 1})

		assert.Error(t, err)
	})
}

func TestListStockLogsByVariant(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Newest First", func(t *testing.T) {
		repo, mock := setupStockLogRepoTest(t)
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM stock_logs`).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "product_id", "variant_id", "change_amount", "reason", "note", "timestamp",
			}).
				AddRow(int64(2), int64(3), int64(5), -2, "SALE", "Sale", now).
				AddRow(int64(1), int64(3), int64(5), 10, "INITIAL", "Initial Stock", now.Add(-time.Hour)))

		entries, err := repo.ListByVariant(ctx, 5)

		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, models.StockReasonSale, entries[0].Reason)
		assert.Equal(t, models.StockReasonInitial, entries[1].Reason)
	})
}
