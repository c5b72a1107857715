package events_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickretail/qpos/internal/events"
)

func TestBus(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Fan Out To All Subscribers", func(t *testing.T) {
		bus := events.NewBus(nil)

		var first, second []any
		bus.Subscribe(events.TopicCartChanged, func(_ context.Context, payload any) {
			first = append(first, payload)
		})
		bus.Subscribe(events.TopicCartChanged, func(_ context.Context, payload any) {
			second = append(second, payload)
		})

		bus.Publish(ctx, events.TopicCartChanged, events.CartChanged{SessionID: "register-1"})

		require.Len(t, first, 1)
		require.Len(t, second, 1)
		assert.Equal(t, events.CartChanged{SessionID: "register-1"}, first[0])
	})

	t.Run("Success - Topics Are Isolated", func(t *testing.T) {
		bus := events.NewBus(nil)

		var cartEvents int
		bus.Subscribe(events.TopicCartChanged, func(_ context.Context, _ any) {
			cartEvents++
		})

		bus.Publish(ctx, events.TopicOrderCommitted, events.OrderCommitted{OrderID: 1})

		assert.Zero(t, cartEvents)
	})

	t.Run("Success - Publish Without Subscribers", func(t *testing.T) {
		bus := events.NewBus(nil)

		assert.NotPanics(t, func() {
			bus.Publish(ctx, events.TopicOrderCommitted, events.OrderCommitted{OrderID: 1})
		})
	})
}
