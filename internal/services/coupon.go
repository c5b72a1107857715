package service

import (
	"strings"

	"github.com/quickretail/qpos/internal/models"
)

// couponTable is the static promotion configuration. Codes have no expiry,
// usage limit or per-customer eligibility; any valid code applies unlimited
// times.
var couponTable = map[string]models.Discount{
	"SAVE10":    {Kind: models.DiscountPercentage, Value: 10},
	"LOYALTY20": {Kind: models.DiscountPercentage, Value: 20},
	"FLAT500":   {Kind: models.DiscountFixed, Value: 500},
	"WELCOME50": {Kind: models.DiscountPercentage, Value: 50},
}

// ResolveCoupon maps a code to its discount terms. Matching is
// case-insensitive; unknown codes resolve to nil.
func ResolveCoupon(code string) *models.Discount {
	upperCode := strings.ToUpper(strings.TrimSpace(code))

	discount, ok := couponTable[upperCode]
	if !ok {
		return nil
	}

	discount.CouponCode = upperCode

	return &discount
}
