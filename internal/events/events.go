// Package events defines the notification contract between the checkout core
// and whatever presentation layer sits on top of it. The core publishes; it
// never knows who is listening.
package events

import (
	"context"
	"log/slog"
	"sync"
)

type Topic string

const (
	TopicCartChanged    Topic = "cart.changed"
	TopicOrderCommitted Topic = "order.committed"
)

type CartChanged struct {
	SessionID string `json:"session_id"`
}

type OrderCommitted struct {
	OrderID     int64   `json:"order_id"`
	OrderNumber string  `json:"order_number"`
	TotalAmount float64 `json:"total_amount"`
}

type Publisher interface {
	Publish(ctx context.Context, topic Topic, payload any)
}

type Handler func(ctx context.Context, payload any)

// Bus is a synchronous in-process publisher with subscriber fan-out.
// Subscribers run on the publishing goroutine; handlers must not block.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Topic][]Handler
	logger   *slog.Logger
}

func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}

	return &Bus{
		handlers: make(map[Topic][]Handler),
		logger:   logger,
	}
}

func (b *Bus) Subscribe(topic Topic, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[topic] = append(b.handlers[topic], h)
}

func (b *Bus) Publish(ctx context.Context, topic Topic, payload any) {
	b.mu.RLock()
	handlers := b.handlers[topic]
	b.mu.RUnlock()

	b.logger.Debug("event published", slog.String("topic", string(topic)), slog.Int("subscribers", len(handlers)))

	for _, h := range handlers {
		h(ctx, payload)
	}
}
