package models

import (
	"time"

	"github.com/quickretail/qpos/internal/pricing"
)

type DiscountKind string

const (
	DiscountPercentage DiscountKind = "percentage"
	DiscountFixed      DiscountKind = "fixed"
)

// Discount is the single active discount on a cart. CouponCode is set only
// when the discount came from coupon resolution; a manually entered discount
// always carries an empty code.
type Discount struct {
	Kind       DiscountKind `json:"kind"`
	Value      float64      `json:"value"`
	CouponCode string       `json:"coupon_code,omitempty"`
}

// CartLine is an ephemeral cart entry. UnitPrice is snapshotted when the
// variant is added and never follows later catalog price changes. TotalPrice
// is always recomputed from UnitPrice * Quantity, never edited directly.
type CartLine struct {
	ID          string  `json:"id"`
	VariantID   int64   `json:"variant_id"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	ImageURL    string  `json:"image_url,omitempty"`
	SizeUK      float64 `json:"size_uk"`
	Color       string  `json:"color"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

// Cart is the aggregate root for the uncommitted sale. One cart per register
// session; it lives until settlement succeeds or the operator clears it.
type Cart struct {
	SessionID  string     `json:"session_id"`
	Items      []CartLine `json:"items"`
	Discount   *Discount  `json:"discount,omitempty"`
	CustomerID *int64     `json:"customer_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CartTotals holds the derived money values of a cart. They are computed on
// demand and never stored; a stale total is a wrong charge.
type CartTotals struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discount_amount"`
	TaxableAmount  float64 `json:"taxable_amount"`
	TaxAmount      float64 `json:"tax_amount"`
	GrandTotal     float64 `json:"grand_total"`
	ItemCount      int     `json:"item_count"`
}

func (c *Cart) Subtotal() float64 {
	var subtotal float64
	for _, line := range c.Items {
		subtotal += line.TotalPrice
	}

	return subtotal
}

// DiscountAmount applies the active discount to the current subtotal. A fixed
// discount is clamped so it can never exceed the subtotal.
func (c *Cart) DiscountAmount() float64 {
	if c.Discount == nil {
		return 0
	}

	subtotal := c.Subtotal()

	switch c.Discount.Kind {
	case DiscountPercentage:
		return subtotal * (c.Discount.Value / 100)
	case DiscountFixed:
		return min(c.Discount.Value, subtotal)
	}

	return 0
}

// Totals recomputes every derived value from the current items and discount.
func (c *Cart) Totals(taxRate float64) CartTotals {
	subtotal := c.Subtotal()
	discountAmount := c.DiscountAmount()
	taxableAmount := pricing.ClampNonNegative(subtotal - discountAmount)
	taxAmount := taxableAmount * taxRate

	var itemCount int
	for _, line := range c.Items {
		itemCount += line.Quantity
	}

	return CartTotals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		TaxableAmount:  taxableAmount,
		TaxAmount:      taxAmount,
		GrandTotal:     taxableAmount + taxAmount,
		ItemCount:      itemCount,
	}
}

// Line finds a cart line by its cart-local id.
func (c *Cart) Line(lineID string) (*CartLine, bool) {
	for i := range c.Items {
		if c.Items[i].ID == lineID {
			return &c.Items[i], true
		}
	}

	return nil, false
}

// LineByVariant finds a cart line by variant id, used to merge repeat adds.
func (c *Cart) LineByVariant(variantID int64) (*CartLine, bool) {
	for i := range c.Items {
		if c.Items[i].VariantID == variantID {
			return &c.Items[i], true
		}
	}

	return nil, false
}

type CartSummary struct {
	Cart   *Cart      `json:"cart"`
	Totals CartTotals `json:"totals"`
}

type AddLineRequest struct {
	VariantID int64 `json:"variant_id" validate:"required"`
	Quantity  int   `json:"quantity"   validate:"required,min=1"`
}

type UpdateQuantityRequest struct {
	LineID   string `json:"line_id"  validate:"required"`
	Quantity int    `json:"quantity" validate:"min=0"`
}

type SetDiscountRequest struct {
	Kind  DiscountKind `json:"kind"  validate:"required,oneof=percentage fixed"`
	Value float64      `json:"value" validate:"required,gt=0"`
}

type ApplyCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

type SetCustomerRequest struct {
	CustomerID *int64 `json:"customer_id"`
}
