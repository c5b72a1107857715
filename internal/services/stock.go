package service

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/quickretail/qpos/internal/errors"
	"github.com/quickretail/qpos/internal/metrics"
	"github.com/quickretail/qpos/internal/models"
	repository "github.com/quickretail/qpos/internal/repositories"
)

// StockService is the stock ledger: every quantity change goes through
// Adjust, which writes the new stock level and appends one immutable audit
// entry per adjustment.
type StockService struct {
	products repository.ProductRepository
	logs     repository.StockLogRepository
	sanitize *bluemonday.Policy
}

func NewStockService(products repository.ProductRepository, logs repository.StockLogRepository) *StockService {
	return &StockService{
		products: products,
		logs:     logs,
		sanitize: bluemonday.StrictPolicy(),
	}
}

// Adjust applies a signed quantity delta to a variant. Decrements are clamped
// at zero rather than rejected, so an oversell floors stock instead of
// failing the sale. The audit entry records the requested delta, not the
// clamped effective change. Each call is an independent unit of work; callers
// issuing one adjust per cart line get no cross-line atomicity.
func (s *StockService) Adjust(ctx context.Context, productID, variantID int64, changeAmount int, reason models.StockChangeReason, note string) (*models.StockLogEntry, error) {
	if changeAmount == 0 {
		return nil, errors.ValidationError("Change amount must not be zero")
	}

	if !models.ValidStockReason(reason) {
		return nil, errors.ValidationError("Unknown stock change reason")
	}

	variant, err := s.products.GetVariantByID(ctx, variantID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Variant not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to load variant").WithError(err)
	}

	if variant.ProductID != productID {
		return nil, errors.BadRequestError("Variant does not belong to the given product")
	}

	newStock := max(0, variant.StockQuantity+changeAmount)

	if err := s.products.UpdateVariantStock(ctx, variantID, newStock); err != nil {
		return nil, errors.DatabaseError("Failed to update variant stock").WithError(err)
	}

	entry := &models.StockLogEntry{
		ProductID:    productID,
		VariantID:    variantID,
		ChangeAmount: changeAmount,
		Reason:       reason,
		Note:         s.sanitize.Sanitize(note),
		Timestamp:    time.Now(),
	}

	if err := s.logs.Append(ctx, entry); err != nil {
		return nil, errors.DatabaseError("Failed to append stock log entry").WithError(err)
	}

	metrics.ObserveStockAdjustment(string(reason))

	return entry, nil
}

// SeedInitial writes the one INITIAL ledger entry for a freshly created
// variant, recording its starting quantity.
func (s *StockService) SeedInitial(ctx context.Context, variant *models.ProductVariant) (*models.StockLogEntry, error) {
	entry := &models.StockLogEntry{
		ProductID:    variant.ProductID,
		VariantID:    variant.ID,
		ChangeAmount: variant.StockQuantity,
		Reason:       models.StockReasonInitial,
		Note:         "Initial Stock",
		Timestamp:    time.Now(),
	}

	if err := s.logs.Append(ctx, entry); err != nil {
		return nil, errors.DatabaseError("Failed to append stock log entry").WithError(err)
	}

	return entry, nil
}

// History lists a variant's ledger entries, newest first.
func (s *StockService) History(ctx context.Context, variantID int64) ([]models.StockLogEntry, error) {
	entries, err := s.logs.ListByVariant(ctx, variantID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list stock history").WithError(err)
	}

	return entries, nil
}
