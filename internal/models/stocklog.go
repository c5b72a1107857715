package models

import "time"

type StockChangeReason string

const (
	StockReasonSale       StockChangeReason = "SALE"
	StockReasonRestock    StockChangeReason = "RESTOCK"
	StockReasonReturn     StockChangeReason = "RETURN"
	StockReasonDamage     StockChangeReason = "DAMAGE"
	StockReasonTheft      StockChangeReason = "THEFT"
	StockReasonCorrection StockChangeReason = "CORRECTION"
	StockReasonInitial    StockChangeReason = "INITIAL"
)

// ValidStockReason reports whether the reason is one of the ledger's
// enumerated reason codes.
func ValidStockReason(r StockChangeReason) bool {
	switch r {
	case StockReasonSale, StockReasonRestock, StockReasonReturn,
		StockReasonDamage, StockReasonTheft, StockReasonCorrection,
		StockReasonInitial:
		return true
	}

	return false
}

// StockLogEntry is one append-only audit record per stock-affecting event.
// ChangeAmount is the requested delta, not the clamped effective change.
type StockLogEntry struct {
	ID           int64             `json:"id"`
	ProductID    int64             `json:"product_id"`
	VariantID    int64             `json:"variant_id"`
	ChangeAmount int               `json:"change_amount"`
	Reason       StockChangeReason `json:"reason"`
	Note         string            `json:"note,omitempty"`
	Timestamp    time.Time         `json:"timestamp"`
}

type AdjustStockRequest struct {
	ProductID    int64             `json:"product_id"    validate:"required"`
	VariantID    int64             `json:"variant_id"    validate:"required"`
	ChangeAmount int               `json:"change_amount" validate:"required"`
	Reason       StockChangeReason `json:"reason"        validate:"required,oneof=SALE RESTOCK RETURN DAMAGE THEFT CORRECTION INITIAL"`
	Note         string            `json:"note,omitempty"`
}
