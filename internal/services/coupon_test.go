package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickretail/qpos/internal/models"
	service "github.com/quickretail/qpos/internal/services"
)

func TestResolveCoupon(t *testing.T) {
	t.Run("Success - Known Codes", func(t *testing.T) {
		tests := []struct {
			code  string
			kind  models.DiscountKind
			value float64
		}{
			{"SAVE10", models.DiscountPercentage, 10},
			{"LOYALTY20", models.DiscountPercentage, 20},
			{"FLAT500", models.DiscountFixed, 500},
			{"WELCOME50", models.DiscountPercentage, 50},
		}

		for _, tt := range tests {
			discount := service.ResolveCoupon(tt.code)
			require.NotNil(t, discount, "expected %s to resolve", tt.code)
			assert.Equal(t, tt.kind, discount.Kind)
			assert.Equal(t, tt.value, discount.Value)
			assert.Equal(t, tt.code, discount.CouponCode)
		}
	})

	t.Run("Success - Case Insensitive With Whitespace", func(t *testing.T) {
		discount := service.ResolveCoupon("  save10 ")
		require.NotNil(t, discount)
		assert.Equal(t, "SAVE10", discount.CouponCode)
		assert.Equal(t, models.DiscountPercentage, discount.Kind)
	})

	t.Run("Failure - Unknown Code", func(t *testing.T) {
		assert.Nil(t, service.ResolveCoupon("NOPE"))
		assert.Nil(t, service.ResolveCoupon(""))
	})
}
