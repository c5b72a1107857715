// Package pricing holds the currency arithmetic shared by the cart and the
// settlement pipeline. Amounts are plain float64 rounded to two decimals at
// presentation and reconciliation boundaries.
package pricing

import "math"

const (
	// CashEpsilon is the tolerance on a cash tender: settlement is allowed
	// while the remaining due is at most one unit of currency.
	CashEpsilon = 1.0

	// SplitEpsilon is the tolerance when reconciling a payment allocation
	// against the grand total.
	SplitEpsilon = 0.01
)

// Round2 rounds half away from zero to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// ClampNonNegative floors negative amounts at zero.
func ClampNonNegative(x float64) float64 {
	return math.Max(0, x)
}

// Reconciles reports whether an allocated sum covers a total within
// SplitEpsilon.
func Reconciles(allocated, total float64) bool {
	return math.Abs(allocated-total) <= SplitEpsilon
}
