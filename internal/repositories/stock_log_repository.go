package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/quickretail/qpos/internal/models"
	"github.com/quickretail/qpos/internal/utils"
)

// StockLogRepository is the append-only audit trail of stock changes.
// Entries are never updated or deleted once written.
type StockLogRepository interface {
	Append(ctx context.Context, entry *models.StockLogEntry) error
	ListByVariant(ctx context.Context, variantID int64) ([]models.StockLogEntry, error)
}

type stockLogRepository struct {
	DB *sql.DB
}

func NewStockLogRepo(db *sql.DB) StockLogRepository {
	return &stockLogRepository{DB: db}
}

func (r *stockLogRepository) Append(ctx context.Context, entry *models.StockLogEntry) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO stock_logs (product_id, variant_id, change_amount, reason, note, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	return r.DB.QueryRowContext(dbCtx, query,
		entry.ProductID, entry.VariantID, entry.ChangeAmount,
		entry.Reason, entry.Note, entry.Timestamp,
	).Scan(&entry.ID)
}

func (r *stockLogRepository) ListByVariant(ctx context.Context, variantID int64) ([]models.StockLogEntry, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, product_id, variant_id, change_amount, reason, note, timestamp
		FROM stock_logs
		WHERE variant_id = $1
		ORDER BY timestamp DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, variantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock logs: %w", err)
	}

	defer rows.Close()

	var entries []models.StockLogEntry

	for rows.Next() {
		var entry models.StockLogEntry

		err := rows.Scan(&entry.ID, &entry.ProductID, &entry.VariantID,
			&entry.ChangeAmount, &entry.Reason, &entry.Note, &entry.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock log entry: %w", err)
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
