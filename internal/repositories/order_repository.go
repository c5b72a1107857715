package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/quickretail/qpos/internal/models"
	"github.com/quickretail/qpos/internal/utils"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	ListOrdersBetween(ctx context.Context, from, to time.Time) ([]models.Order, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

// CreateOrder writes the order, its items and its payments in a single
// transaction. A settlement record is all-or-nothing; a half-written order
// would break the payment reconciliation invariant.
func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback()

	query := `
		INSERT INTO orders (order_number, customer_id, cashier_id, order_date, subtotal, discount_amount, discount_kind, discount_value, coupon_code, tax_amount, total_amount, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	err = tx.QueryRowContext(dbCtx, query,
		order.OrderNumber, order.CustomerID, order.CashierID, order.OrderDate,
		order.Subtotal, order.DiscountAmount, order.DiscountKind, order.DiscountValue,
		order.CouponCode, order.TaxAmount, order.TotalAmount, order.PaymentStatus,
	).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID

		query := `
			INSERT INTO order_items (order_id, variant_id, product_name, size_uk, color, quantity, unit_price, total_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`

		err := tx.QueryRowContext(dbCtx, query,
			item.OrderID, item.VariantID, item.ProductName, item.SizeUK,
			item.Color, item.Quantity, item.UnitPrice, item.TotalPrice,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("failed to insert an order item: %w", err)
		}
	}

	for i := range order.Payments {
		payment := &order.Payments[i]
		payment.OrderID = order.ID

		query := `
			INSERT INTO payments (order_id, payment_method, amount, payment_date)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`

		err := tx.QueryRowContext(dbCtx, query,
			payment.OrderID, payment.PaymentMethod, payment.Amount, payment.PaymentDate,
		).Scan(&payment.ID)
		if err != nil {
			return fmt.Errorf("failed to insert a payment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	return nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order := &models.Order{ID: id}

	query := `
		SELECT order_number, customer_id, cashier_id, order_date, subtotal, discount_amount, discount_kind, discount_value, coupon_code, tax_amount, total_amount, payment_status
		FROM orders
		WHERE id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&order.OrderNumber, &order.CustomerID, &order.CashierID, &order.OrderDate,
		&order.Subtotal, &order.DiscountAmount, &order.DiscountKind, &order.DiscountValue,
		&order.CouponCode, &order.TaxAmount, &order.TotalAmount, &order.PaymentStatus)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("failed to get the order: %w", err)
	}

	if err := r.loadItems(dbCtx, order); err != nil {
		return nil, err
	}

	if err := r.loadPayments(dbCtx, order); err != nil {
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) ListOrders(ctx context.Context) ([]models.Order, error) {
	return r.listOrders(ctx, `
		SELECT id, order_number, customer_id, cashier_id, order_date, subtotal, discount_amount, discount_kind, discount_value, coupon_code, tax_amount, total_amount, payment_status
		FROM orders
		ORDER BY order_date DESC
	`)
}

func (r *orderRepository) ListOrdersBetween(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	return r.listOrders(ctx, `
		SELECT id, order_number, customer_id, cashier_id, order_date, subtotal, discount_amount, discount_kind, discount_value, coupon_code, tax_amount, total_amount, payment_status
		FROM orders
		WHERE order_date >= $1 AND order_date < $2
		ORDER BY order_date DESC
	`, from, to)
}

func (r *orderRepository) listOrders(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	defer rows.Close()

	var orders []models.Order

	for rows.Next() {
		var order models.Order

		err := rows.Scan(
			&order.ID, &order.OrderNumber, &order.CustomerID, &order.CashierID,
			&order.OrderDate, &order.Subtotal, &order.DiscountAmount, &order.DiscountKind,
			&order.DiscountValue, &order.CouponCode, &order.TaxAmount, &order.TotalAmount,
			&order.PaymentStatus)
		if err != nil {
			return nil, fmt.Errorf("failed to scan the orders: %w", err)
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		if err := r.loadItems(dbCtx, &orders[i]); err != nil {
			return nil, err
		}

		if err := r.loadPayments(dbCtx, &orders[i]); err != nil {
			return nil, err
		}
	}

	return orders, nil
}

func (r *orderRepository) loadItems(ctx context.Context, order *models.Order) error {
	query := `
		SELECT id, variant_id, product_name, size_uk, color, quantity, unit_price, total_price
		FROM order_items
		WHERE order_id = $1
	`

	rows, err := r.DB.QueryContext(ctx, query, order.ID)
	if err != nil {
		return fmt.Errorf("failed to get the order items: %w", err)
	}

	defer rows.Close()

	var items []models.OrderItem

	for rows.Next() {
		var item models.OrderItem

		err := rows.Scan(&item.ID, &item.VariantID, &item.ProductName, &item.SizeUK,
			&item.Color, &item.Quantity, &item.UnitPrice, &item.TotalPrice)
		if err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}

		item.OrderID = order.ID
		items = append(items, item)
	}

	order.Items = items

	return rows.Err()
}

func (r *orderRepository) loadPayments(ctx context.Context, order *models.Order) error {
	query := `
		SELECT id, payment_method, amount, payment_date
		FROM payments
		WHERE order_id = $1
	`

	rows, err := r.DB.QueryContext(ctx, query, order.ID)
	if err != nil {
		return fmt.Errorf("failed to get the order payments: %w", err)
	}

	defer rows.Close()

	var payments []models.Payment

	for rows.Next() {
		var payment models.Payment

		err := rows.Scan(&payment.ID, &payment.PaymentMethod, &payment.Amount, &payment.PaymentDate)
		if err != nil {
			return fmt.Errorf("failed to scan payment: %w", err)
		}

		payment.OrderID = order.ID
		payments = append(payments, payment)
	}

	order.Payments = payments

	return rows.Err()
}
