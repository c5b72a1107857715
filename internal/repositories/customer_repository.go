package repository

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/quickretail/qpos/internal/models"
	"github.com/quickretail/qpos/internal/utils"
)

type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
	// RecordVisit applies the loyalty accrual for one settled order: one more
	// visit, the order total added to lifetime spend, and floor(total/10)
	// loyalty points. Counters are never decremented.
	RecordVisit(ctx context.Context, id int64, amount float64) error
}

type customerRepository struct {
	DB *sql.DB
}

func NewCustomerRepo(db *sql.DB) CustomerRepository {
	return &customerRepository{DB: db}
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	customer := &models.Customer{}

	query := `
		SELECT id, name, phone, email, address, city, loyalty_points, total_purchases, total_spent, created_at
		FROM customers
		WHERE id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&customer.ID, &customer.Name, &customer.Phone, &customer.Email,
		&customer.Address, &customer.City, &customer.LoyaltyPoints,
		&customer.TotalPurchases, &customer.TotalSpent, &customer.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return customer, nil
}

func (r *customerRepository) RecordVisit(ctx context.Context, id int64, amount float64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	points := int64(math.Floor(amount / 10))

	query := `
		UPDATE customers
		SET total_purchases = total_purchases + 1,
		    total_spent = total_spent + $1,
		    loyalty_points = loyalty_points + $2
		WHERE id = $3
	`

	result, err := r.DB.ExecContext(dbCtx, query, amount, points, id)
	if err != nil {
		return fmt.Errorf("failed to record customer visit: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}
