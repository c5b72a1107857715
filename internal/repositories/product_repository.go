package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/quickretail/qpos/internal/models"
	"github.com/quickretail/qpos/internal/utils"
)

type ProductRepository interface {
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	GetVariantByID(ctx context.Context, id int64) (*models.ProductVariant, error)
	UpdateVariantStock(ctx context.Context, variantID int64, stockQuantity int) error
	ListVariantsByProduct(ctx context.Context, productID int64) ([]models.ProductVariant, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

func (r *productRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product := &models.Product{}

	query := `
		SELECT id, sku, name, description, category_id, base_price, cost_price, image_url, is_active, created_at, updated_at
		FROM products
		WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&product.ID, &product.SKU, &product.Name, &product.Description,
		&product.CategoryID, &product.BasePrice, &product.CostPrice,
		&product.ImageURL, &product.IsActive, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return product, nil
}

func (r *productRepository) GetVariantByID(ctx context.Context, id int64) (*models.ProductVariant, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	variant := &models.ProductVariant{}

	query := `
		SELECT id, product_id, size_uk, size_us, size_eu, color, barcode, stock_quantity, reorder_level, price_adjustment, is_active
		FROM product_variants
		WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&variant.ID, &variant.ProductID, &variant.SizeUK, &variant.SizeUS,
		&variant.SizeEU, &variant.Color, &variant.Barcode, &variant.StockQuantity,
		&variant.ReorderLevel, &variant.PriceAdjustment, &variant.IsActive)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return variant, nil
}

func (r *productRepository) UpdateVariantStock(ctx context.Context, variantID int64, stockQuantity int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE product_variants
		SET stock_quantity = $1
		WHERE id = $2
	`

	result, err := r.DB.ExecContext(dbCtx, query, stockQuantity, variantID)
	if err != nil {
		return fmt.Errorf("failed to update variant stock: %w", err)
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

func (r *productRepository) ListVariantsByProduct(ctx context.Context, productID int64) ([]models.ProductVariant, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, product_id, size_uk, size_us, size_eu, color, barcode, stock_quantity, reorder_level, price_adjustment, is_active
		FROM product_variants
		WHERE product_id = $1
		ORDER BY id`

	rows, err := r.DB.QueryContext(dbCtx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list variants: %w", err)
	}

	defer rows.Close()

	var variants []models.ProductVariant

	for rows.Next() {
		var variant models.ProductVariant

		err := rows.Scan(
			&variant.ID, &variant.ProductID, &variant.SizeUK, &variant.SizeUS,
			&variant.SizeEU, &variant.Color, &variant.Barcode, &variant.StockQuantity,
			&variant.ReorderLevel, &variant.PriceAdjustment, &variant.IsActive)
		if err != nil {
			return nil, fmt.Errorf("failed to scan variant: %w", err)
		}

		variants = append(variants, variant)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return variants, nil
}
