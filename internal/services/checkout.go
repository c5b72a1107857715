package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quickretail/qpos/internal/errors"
	"github.com/quickretail/qpos/internal/events"
	"github.com/quickretail/qpos/internal/metrics"
	"github.com/quickretail/qpos/internal/models"
	"github.com/quickretail/qpos/internal/pricing"
	repository "github.com/quickretail/qpos/internal/repositories"
)

// CheckoutService drives payment collection and settlement. Checkouts are
// in-memory per session; an abandoned one simply evaporates with the process,
// only settlement leaves durable state.
type CheckoutService struct {
	carts     *CartService
	stock     *StockService
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	events    events.Publisher

	mu        sync.Mutex
	checkouts map[string]*Checkout
	settling  map[string]bool
}

func NewCheckoutService(
	carts *CartService,
	stock *StockService,
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	publisher events.Publisher,
) *CheckoutService {
	return &CheckoutService{
		carts:     carts,
		stock:     stock,
		orders:    orders,
		customers: customers,
		events:    publisher,
		checkouts: make(map[string]*Checkout),
		settling:  make(map[string]bool),
	}
}

// Begin opens a checkout for the session's current cart, freezing the grand
// total the payment flow will collect against. An existing unsettled checkout
// for the session is replaced.
func (s *CheckoutService) Begin(ctx context.Context, sessionID string) (*Checkout, error) {
	summary, err := s.carts.Summary(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if len(summary.Cart.Items) == 0 {
		return nil, errors.BadRequestError("Cannot start checkout on an empty cart")
	}

	checkout := NewCheckout(sessionID, summary.Totals.GrandTotal)

	s.mu.Lock()
	s.checkouts[sessionID] = checkout
	s.mu.Unlock()

	return checkout, nil
}

// Get returns the session's in-flight checkout.
func (s *CheckoutService) Get(sessionID string) (*Checkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	checkout, ok := s.checkouts[sessionID]
	if !ok {
		return nil, errors.NotFoundError("No checkout in progress for this session")
	}

	return checkout, nil
}

func (s *CheckoutService) SelectMethod(sessionID string, mode SelectionMode) (*Checkout, error) {
	return s.mutate(sessionID, func(c *Checkout) error {
		return c.SelectMethod(mode)
	})
}

func (s *CheckoutService) EnterTender(sessionID string, amount float64) (*Checkout, error) {
	return s.mutate(sessionID, func(c *Checkout) error {
		return c.EnterTender(amount)
	})
}

func (s *CheckoutService) AddSplitEntry(sessionID string, method models.PaymentMethod, amount float64) (*Checkout, error) {
	return s.mutate(sessionID, func(c *Checkout) error {
		return c.AddSplitEntry(uuid.NewString(), method, amount)
	})
}

func (s *CheckoutService) RemoveSplitEntry(sessionID, entryID string) (*Checkout, error) {
	return s.mutate(sessionID, func(c *Checkout) error {
		return c.RemoveSplitEntry(entryID)
	})
}

// Cancel abandons the checkout. The cart is untouched; the operator can edit
// it and begin again.
func (s *CheckoutService) Cancel(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.checkouts[sessionID]; !ok {
		return errors.NotFoundError("No checkout in progress for this session")
	}

	delete(s.checkouts, sessionID)

	return nil
}

func (s *CheckoutService) mutate(sessionID string, fn func(*Checkout) error) (*Checkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	checkout, ok := s.checkouts[sessionID]
	if !ok {
		return nil, errors.NotFoundError("No checkout in progress for this session")
	}

	if s.settling[sessionID] {
		return nil, errors.ConflictError("Settlement is already in progress for this session")
	}

	if err := fn(checkout); err != nil {
		return nil, err
	}

	return checkout, nil
}

// ConfirmSettlement is the commit point of a sale. It revalidates the cart
// against the frozen checkout total, writes the order with its items and
// payments in one transaction, then walks the side effects: stock decrements
// per line, loyalty accrual, cart clear. Stock adjustments run outside the
// order transaction, one per line; a failed line aborts before the order is
// written but already-applied lines stay applied, mirrored by their ledger
// entries.
func (s *CheckoutService) ConfirmSettlement(ctx context.Context, sessionID string, cashierID int64) (*models.Order, error) {
	checkout, err := s.beginSettlement(sessionID)
	if err != nil {
		return nil, err
	}
	defer s.endSettlement(sessionID)

	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if len(cart.Items) == 0 {
		return nil, errors.BadRequestError("Cannot settle an empty cart")
	}

	totals := cart.Totals(s.carts.TaxRate())
	if pricing.Round2(totals.GrandTotal) != checkout.Total {
		return nil, errors.ConflictError("Cart changed after checkout began, restart checkout")
	}

	if !checkout.CanSettle() {
		return nil, errors.PaymentRequiredError("Payment does not cover the amount due")
	}

	for _, line := range cart.Items {
		if _, err := s.stock.Adjust(ctx, line.ProductID, line.VariantID, -line.Quantity, models.StockReasonSale, "Sale"); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	order := s.freezeOrder(cart, totals, checkout, cashierID, now)

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, errors.DatabaseError("Failed to create order").WithError(err)
	}

	if cart.CustomerID != nil {
		if err := s.customers.RecordVisit(ctx, *cart.CustomerID, order.TotalAmount); err != nil {
			slog.ErrorContext(ctx, "failed to record customer visit",
				slog.Int64("customerId", *cart.CustomerID),
				slog.String("orderNumber", order.OrderNumber),
				slog.Any("error", err))
		}
	}

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		slog.ErrorContext(ctx, "failed to clear cart after settlement",
			slog.String("sessionId", sessionID),
			slog.Any("error", err))
	}

	s.mu.Lock()
	checkout.State = StateSettled
	delete(s.checkouts, sessionID)
	s.mu.Unlock()

	s.events.Publish(ctx, events.TopicOrderCommitted, events.OrderCommitted{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		TotalAmount: order.TotalAmount,
	})
	metrics.ObserveOrderSettled(string(checkout.Mode), order.TotalAmount)

	return order, nil
}

// beginSettlement marks the session as settling so concurrent confirms and
// mutations fail fast instead of double-charging.
func (s *CheckoutService) beginSettlement(sessionID string) (*Checkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	checkout, ok := s.checkouts[sessionID]
	if !ok {
		return nil, errors.NotFoundError("No checkout in progress for this session")
	}

	if s.settling[sessionID] {
		return nil, errors.ConflictError("Settlement is already in progress for this session")
	}

	s.settling[sessionID] = true

	return checkout, nil
}

func (s *CheckoutService) endSettlement(sessionID string) {
	s.mu.Lock()
	delete(s.settling, sessionID)
	s.mu.Unlock()
}

func (s *CheckoutService) freezeOrder(cart *models.Cart, totals models.CartTotals, checkout *Checkout, cashierID int64, now time.Time) *models.Order {
	order := &models.Order{
		OrderNumber:    newOrderNumber(now),
		CustomerID:     cart.CustomerID,
		CashierID:      cashierID,
		OrderDate:      now,
		Subtotal:       pricing.Round2(totals.Subtotal),
		DiscountAmount: pricing.Round2(totals.DiscountAmount),
		TaxAmount:      pricing.Round2(totals.TaxAmount),
		TotalAmount:    pricing.Round2(totals.GrandTotal),
		PaymentStatus:  models.PaymentStatusPaid,
		Payments:       checkout.Payments(now),
	}

	if cart.Discount != nil {
		order.DiscountKind = cart.Discount.Kind
		order.DiscountValue = cart.Discount.Value
		order.CouponCode = cart.Discount.CouponCode
	}

	order.Items = make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		order.Items = append(order.Items, models.OrderItem{
			VariantID:   line.VariantID,
			ProductName: line.ProductName,
			SizeUK:      line.SizeUK,
			Color:       line.Color,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			TotalPrice:  line.TotalPrice,
		})
	}

	return order
}

// newOrderNumber builds a human-readable receipt number. Uniqueness is not
// guaranteed by the suffix alone; the orders table enforces it.
func newOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%04d", now.Format("20060102"), rand.IntN(10000))
}
