package service_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appErrors "github.com/quickretail/qpos/internal/errors"
	"github.com/quickretail/qpos/internal/models"
	repository "github.com/quickretail/qpos/internal/repositories"
	service "github.com/quickretail/qpos/internal/services"
)

func newStockServiceTest() (*service.StockService, *repository.MockProductRepository, *repository.MockStockLogRepository) {
	mockProducts := repository.NewMockProductRepository()
	mockLogs := repository.NewMockStockLogRepository()

	return service.NewStockService(mockProducts, mockLogs), mockProducts, mockLogs
}

func TestAdjustStock(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Restock", func(t *testing.T) {
		// Arrange
		stockService, mockProducts, mockLogs := newStockServiceTest()
		variant := testVariant() // stock 10
		mockProducts.On("GetVariantByID", ctx, int64(5)).Return(variant, nil).Once()
		mockProducts.On("UpdateVariantStock", ctx, int64(5), 25).Return(nil).Once()
		mockLogs.On("Append", ctx, mock.AnythingOfType("*models.StockLogEntry")).Return(nil).Once()

		// Act
		entry, err := stockService.Adjust(ctx, 3, 5, 15, models.StockReasonRestock, "weekly delivery")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 15, entry.ChangeAmount)
		assert.Equal(t, models.StockReasonRestock, entry.Reason)
		assert.Equal(t, "weekly delivery", entry.Note)
		mockProducts.AssertExpectations(t)
		mockLogs.AssertExpectations(t)
	})

	t.Run("Success - Decrement Clamped At Zero Logs Requested Change", func(t *testing.T) {
		stockService, mockProducts, mockLogs := newStockServiceTest()
		variant := testVariant()
		variant.StockQuantity = 3
		mockProducts.On("GetVariantByID", ctx, int64(5)).Return(variant, nil).Once()
		// Requested -5 against stock 3 floors the level at zero.
		mockProducts.On("UpdateVariantStock", ctx, int64(5), 0).Return(nil).Once()
		mockLogs.On("Append", ctx, mock.AnythingOfType("*models.StockLogEntry")).Return(nil).Once()

		entry, err := stockService.Adjust(ctx, 3, 5, -5, models.StockReasonDamage, "")

		require.NoError(t, err)
		assert.Equal(t, -5, entry.ChangeAmount)
		mockProducts.AssertExpectations(t)
	})

	t.Run("Success - Note Is Sanitized", func(t *testing.T) {
		stockService, mockProducts, mockLogs := newStockServiceTest()
		mockProducts.On("GetVariantByID", ctx, int64(5)).Return(testVariant(), nil).Once()
		mockProducts.On("UpdateVariantStock", ctx, int64(5), 11).Return(nil).Once()
		mockLogs.On("Append", ctx, mock.AnythingOfType("*models.StockLogEntry")).Return(nil).Once()

		entry, err := stockService.Adjust(ctx, 3, 5, 1, models.StockReasonCorrection, `<script>alert(1)</script>recount`)

		require.NoError(t, err)
		assert.Equal(t, "recount", entry.Note)
	})

	t.Run("Failure - Zero Change Amount", func(t *testing.T) {
		stockService, mockProducts, _ := newStockServiceTest()

		entry, err := stockService.Adjust(ctx, 3, 5, 0, models.StockReasonRestock, "")

		assert.Nil(t, entry)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		mockProducts.AssertNotCalled(t, "GetVariantByID", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Unknown Reason", func(t *testing.T) {
		stockService, _, _ := newStockServiceTest()

		entry, err := stockService.Adjust(ctx, 3, 5, 1, "SHRINKAGE", "")

		assert.Nil(t, entry)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
	})

	t.Run("Failure - Variant Not Found", func(t *testing.T) {
		stockService, mockProducts, _ := newStockServiceTest()
		mockProducts.On("GetVariantByID", ctx, int64(99)).Return(nil, sql.ErrNoRows).Once()

		entry, err := stockService.Adjust(ctx, 3, 99, 1, models.StockReasonRestock, "")

		assert.Nil(t, entry)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})

	t.Run("Failure - Variant Product Mismatch", func(t *testing.T) {
		stockService, mockProducts, _ := newStockServiceTest()
		mockProducts.On("GetVariantByID", ctx, int64(5)).Return(testVariant(), nil).Once()

		entry, err := stockService.Adjust(ctx, 999, 5, 1, models.StockReasonRestock, "")

		assert.Nil(t, entry)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
	})
}

func TestSeedInitial(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Initial Entry Mirrors Starting Quantity", func(t *testing.T) {
		stockService, _, mockLogs := newStockServiceTest()
		variant := testVariant()
		mockLogs.On("Append", ctx, mock.AnythingOfType("*models.StockLogEntry")).Return(nil).Once()

		entry, err := stockService.SeedInitial(ctx, variant)

		require.NoError(t, err)
		assert.Equal(t, models.StockReasonInitial, entry.Reason)
		assert.Equal(t, variant.StockQuantity, entry.ChangeAmount)
		assert.Equal(t, "Initial Stock", entry.Note)
		mockLogs.AssertExpectations(t)
	})
}

func TestStockHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		stockService, _, mockLogs := newStockServiceTest()
		expected := []models.StockLogEntry{
			{ID: 2, VariantID: 5, ChangeAmount: -2, Reason: models.StockReasonSale},
			{ID: 1, VariantID: 5, ChangeAmount: 10, Reason: models.StockReasonInitial},
		}
		mockLogs.On("ListByVariant", ctx, int64(5)).Return(expected, nil).Once()

		entries, err := stockService.History(ctx, 5)

		require.NoError(t, err)
		assert.Equal(t, expected, entries)
	})
}
