package service

import (
	"time"

	"github.com/quickretail/qpos/internal/errors"
	"github.com/quickretail/qpos/internal/models"
	"github.com/quickretail/qpos/internal/pricing"
)

// CheckoutState is the lifecycle position of an in-flight checkout.
type CheckoutState string

const (
	StateNoMethodSelected CheckoutState = "no_method_selected"
	StateMethodSelected   CheckoutState = "method_selected"
	StateTenderEntered    CheckoutState = "tender_entered"
	StateAllocatingSplit  CheckoutState = "allocating_split"
	StateSplitComplete    CheckoutState = "split_complete"
	StateSettled          CheckoutState = "settled"
)

// SelectionMode is the payment mode chosen at the register. The first three
// settle as a single full-amount payment; split allocates the total across
// several entries.
type SelectionMode string

const (
	ModeCash  SelectionMode = "cash"
	ModeCard  SelectionMode = "card"
	ModeUPI   SelectionMode = "upi"
	ModeSplit SelectionMode = "split"
)

// SplitEntry is one allocation inside a split payment.
type SplitEntry struct {
	ID     string               `json:"id"`
	Method models.PaymentMethod `json:"method"`
	Amount float64              `json:"amount"`
}

// Checkout is the in-memory payment collection state for one session. It is a
// pure state machine over a frozen total; all mutation goes through its
// methods so the state field can never disagree with the data.
type Checkout struct {
	SessionID      string        `json:"session_id"`
	Total          float64       `json:"total"`
	State          CheckoutState `json:"state"`
	Mode           SelectionMode `json:"mode,omitempty"`
	AmountTendered float64       `json:"amount_tendered"`
	SplitEntries   []SplitEntry  `json:"split_entries,omitempty"`
	StartedAt      time.Time     `json:"started_at"`
}

func NewCheckout(sessionID string, total float64) *Checkout {
	return &Checkout{
		SessionID: sessionID,
		Total:     pricing.Round2(total),
		State:     StateNoMethodSelected,
		StartedAt: time.Now(),
	}
}

// SelectMethod picks the payment mode. Re-selecting resets any tender or split
// allocation already entered; a settled checkout is immutable.
func (c *Checkout) SelectMethod(mode SelectionMode) error {
	if c.State == StateSettled {
		return errors.ConflictError("Checkout is already settled")
	}

	switch mode {
	case ModeCash, ModeCard, ModeUPI, ModeSplit:
	default:
		return errors.ValidationError("Unknown payment mode")
	}

	c.Mode = mode
	c.AmountTendered = 0
	c.SplitEntries = nil

	if mode == ModeSplit {
		c.State = StateAllocatingSplit
	} else {
		c.State = StateMethodSelected
	}

	return nil
}

// EnterTender records the cash handed over. It only applies in cash mode; the
// amount may be short of the total, the settlement gate decides whether the
// shortfall is acceptable.
func (c *Checkout) EnterTender(amount float64) error {
	if c.State == StateSettled {
		return errors.ConflictError("Checkout is already settled")
	}

	if c.Mode != ModeCash {
		return errors.BadRequestError("Tender entry only applies to cash payments")
	}

	if amount < 0 {
		return errors.ValidationError("Tendered amount cannot be negative")
	}

	c.AmountTendered = amount
	c.State = StateTenderEntered

	return nil
}

// AddSplitEntry allocates part of the total to a payment method. An entry may
// not exceed the remaining due, so the allocation can never overshoot.
func (c *Checkout) AddSplitEntry(id string, method models.PaymentMethod, amount float64) error {
	if c.State == StateSettled {
		return errors.ConflictError("Checkout is already settled")
	}

	if c.Mode != ModeSplit {
		return errors.BadRequestError("Split entries only apply to split payments")
	}

	if amount <= 0 {
		return errors.ValidationError("Split entry amount must be positive")
	}

	remaining := c.RemainingDue()
	if amount > remaining+pricing.SplitEpsilon {
		return errors.ValidationError("Split entry exceeds the remaining amount due")
	}

	c.SplitEntries = append(c.SplitEntries, SplitEntry{ID: id, Method: method, Amount: amount})
	c.refreshSplitState()

	return nil
}

// RemoveSplitEntry drops one allocation by id, reopening the gap it covered.
func (c *Checkout) RemoveSplitEntry(id string) error {
	if c.State == StateSettled {
		return errors.ConflictError("Checkout is already settled")
	}

	if c.Mode != ModeSplit {
		return errors.BadRequestError("Split entries only apply to split payments")
	}

	for i, entry := range c.SplitEntries {
		if entry.ID == id {
			c.SplitEntries = append(c.SplitEntries[:i], c.SplitEntries[i+1:]...)
			c.refreshSplitState()

			return nil
		}
	}

	return errors.NotFoundError("Split entry not found")
}

func (c *Checkout) refreshSplitState() {
	if pricing.Reconciles(c.allocated(), c.Total) {
		c.State = StateSplitComplete
	} else {
		c.State = StateAllocatingSplit
	}
}

func (c *Checkout) allocated() float64 {
	var sum float64
	for _, entry := range c.SplitEntries {
		sum += entry.Amount
	}

	return sum
}

// RemainingDue is what is still owed given the mode's inputs so far. It never
// goes below zero; overpayment surfaces as change, not negative due.
func (c *Checkout) RemainingDue() float64 {
	switch c.Mode {
	case ModeCash:
		return pricing.ClampNonNegative(pricing.Round2(c.Total - c.AmountTendered))
	case ModeSplit:
		return pricing.ClampNonNegative(pricing.Round2(c.Total - c.allocated()))
	case ModeCard, ModeUPI:
		return c.Total
	}

	return c.Total
}

// ChangeAmount is the cash to hand back. Only a cash overpayment produces
// change; every other mode settles exactly.
func (c *Checkout) ChangeAmount() float64 {
	if c.Mode != ModeCash {
		return 0
	}

	return pricing.ClampNonNegative(pricing.Round2(c.AmountTendered - c.Total))
}

// CanSettle is the settlement gate. Cash tolerates a shortfall of up to
// CashEpsilon, absorbing sub-unit rounding on the tendered amount. A split
// must reconcile exactly within SplitEpsilon. Card and UPI settle on method
// selection alone; the terminal outside this system collected the money.
func (c *Checkout) CanSettle() bool {
	switch c.Mode {
	case ModeCash:
		return c.State == StateTenderEntered && pricing.Round2(c.Total-c.AmountTendered) <= pricing.CashEpsilon
	case ModeCard, ModeUPI:
		return c.State == StateMethodSelected
	case ModeSplit:
		return c.State == StateSplitComplete
	}

	return false
}

// Payments freezes the collection state into the payment rows the order will
// carry. A cash payment records the total owed, not the tendered amount;
// change is the register's concern, not the ledger's.
func (c *Checkout) Payments(now time.Time) []models.Payment {
	switch c.Mode {
	case ModeCash:
		return []models.Payment{{PaymentMethod: models.PaymentMethodCash, Amount: c.Total, PaymentDate: now}}
	case ModeCard:
		return []models.Payment{{PaymentMethod: models.PaymentMethodCard, Amount: c.Total, PaymentDate: now}}
	case ModeUPI:
		return []models.Payment{{PaymentMethod: models.PaymentMethodUPI, Amount: c.Total, PaymentDate: now}}
	case ModeSplit:
		payments := make([]models.Payment, 0, len(c.SplitEntries))
		for _, entry := range c.SplitEntries {
			payments = append(payments, models.Payment{
				PaymentMethod: entry.Method,
				Amount:        entry.Amount,
				PaymentDate:   now,
			})
		}

		return payments
	}

	return nil
}
