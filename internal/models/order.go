package models

import "time"

type PaymentMethod string

const (
	PaymentMethodCash  PaymentMethod = "cash"
	PaymentMethodCard  PaymentMethod = "card"
	PaymentMethodUPI   PaymentMethod = "upi"
	PaymentMethodOther PaymentMethod = "other"
)

type PaymentStatus string

const (
	PaymentStatusPaid PaymentStatus = "paid"
)

// OrderItem is a frozen copy of a cart line, decoupled from the cleared cart
// and from any later catalog changes.
type OrderItem struct {
	ID          int64   `json:"id"`
	OrderID     int64   `json:"order_id"`
	VariantID   int64   `json:"variant_id"`
	ProductName string  `json:"product_name"`
	SizeUK      float64 `json:"size_uk"`
	Color       string  `json:"color"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

type Payment struct {
	ID            int64         `json:"id"`
	OrderID       int64         `json:"order_id"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Amount        float64       `json:"amount"`
	PaymentDate   time.Time     `json:"payment_date"`
}

// Order is the immutable settlement record. It is written exactly once, when
// a checkout settles, and never updated afterwards. The sum of its payments
// equals TotalAmount at the moment it is written.
type Order struct {
	ID             int64         `json:"id"`
	OrderNumber    string        `json:"order_number"`
	CustomerID     *int64        `json:"customer_id,omitempty"`
	CashierID      int64         `json:"cashier_id"`
	OrderDate      time.Time     `json:"order_date"`
	Subtotal       float64       `json:"subtotal"`
	DiscountAmount float64       `json:"discount_amount"`
	DiscountKind   DiscountKind  `json:"discount_kind,omitempty"`
	DiscountValue  float64       `json:"discount_value,omitempty"`
	CouponCode     string        `json:"coupon_code,omitempty"`
	TaxAmount      float64       `json:"tax_amount"`
	TotalAmount    float64       `json:"total_amount"`
	PaymentStatus  PaymentStatus `json:"payment_status"`
	Items          []OrderItem   `json:"items"`
	Payments       []Payment     `json:"payments"`
}

type SelectMethodRequest struct {
	Method string `json:"method" validate:"required,oneof=cash card upi split"`
}

type TenderRequest struct {
	AmountTendered float64 `json:"amount_tendered" validate:"gte=0"`
}

type SplitEntryRequest struct {
	Method PaymentMethod `json:"method" validate:"required,oneof=cash card upi other"`
	Amount float64       `json:"amount" validate:"required,gt=0"`
}

type OrderResponse struct {
	Order *Order `json:"order"`
}
