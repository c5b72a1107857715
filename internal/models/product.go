package models

import "time"

type Category struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	DisplayOrder int    `json:"display_order"`
	IsActive     bool   `json:"is_active"`
}

type Product struct {
	ID          int64     `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CategoryID  int64     `json:"category_id"`
	BasePrice   float64   `json:"base_price"`
	CostPrice   float64   `json:"cost_price,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Category    *Category `json:"category,omitempty"`
}

// ProductVariant is the sellable unit. The checkout core reads price and
// identity fields and writes StockQuantity; everything else belongs to the
// catalog.
type ProductVariant struct {
	ID              int64   `json:"id"`
	ProductID       int64   `json:"product_id"`
	SizeUK          float64 `json:"size_uk"`
	SizeUS          float64 `json:"size_us,omitempty"`
	SizeEU          float64 `json:"size_eu,omitempty"`
	Color           string  `json:"color"`
	Barcode         string  `json:"barcode,omitempty"`
	StockQuantity   int     `json:"stock_quantity"`
	ReorderLevel    int     `json:"reorder_level"`
	PriceAdjustment float64 `json:"price_adjustment"`
	IsActive        bool    `json:"is_active"`
}

// UnitPrice is the price a cart line snapshots when the variant is added.
func (v *ProductVariant) UnitPrice(p *Product) float64 {
	return p.BasePrice + v.PriceAdjustment
}
