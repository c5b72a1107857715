package service

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/google/uuid"

	"github.com/quickretail/qpos/internal/errors"
	"github.com/quickretail/qpos/internal/events"
	"github.com/quickretail/qpos/internal/models"
	repository "github.com/quickretail/qpos/internal/repositories"
)

// CartService owns the mutable cart aggregate. Every operation loads the
// session's snapshot, mutates it and saves it back; totals are derived on
// demand and never stored.
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	events   events.Publisher
	taxRate  float64
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository, publisher events.Publisher, taxRate float64) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		events:   publisher,
		taxRate:  taxRate,
	}
}

func (s *CartService) TaxRate() float64 {
	return s.taxRate
}

// GetCart returns the session's cart, creating an empty one on first use.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load cart").WithError(err)
	}

	if cart == nil {
		now := time.Now()
		cart = &models.Cart{
			SessionID: sessionID,
			Items:     []models.CartLine{},
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	return cart, nil
}

func (s *CartService) Summary(ctx context.Context, sessionID string) (*models.CartSummary, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &models.CartSummary{Cart: cart, Totals: cart.Totals(s.taxRate)}, nil
}

// AddLine puts a variant in the cart. A repeat add of the same variant merges
// into the existing line. The unit price is snapshotted here and does not
// follow later catalog changes. Stock is deliberately not checked at add time;
// it is enforced at settlement.
func (s *CartService) AddLine(ctx context.Context, sessionID string, req *models.AddLineRequest) (*models.CartSummary, error) {
	if req.Quantity < 1 {
		return nil, errors.ValidationError("Quantity must be a positive integer")
	}

	variant, err := s.products.GetVariantByID(ctx, req.VariantID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Variant not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to load variant").WithError(err)
	}

	product, err := s.products.GetProductByID(ctx, variant.ProductID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to load product").WithError(err)
	}

	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if line, ok := cart.LineByVariant(variant.ID); ok {
		line.Quantity += req.Quantity
		line.TotalPrice = line.UnitPrice * float64(line.Quantity)
	} else {
		unitPrice := variant.UnitPrice(product)
		cart.Items = append(cart.Items, models.CartLine{
			ID:          uuid.NewString(),
			VariantID:   variant.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			ImageURL:    product.ImageURL,
			SizeUK:      variant.SizeUK,
			Color:       variant.Color,
			Quantity:    req.Quantity,
			UnitPrice:   unitPrice,
			TotalPrice:  unitPrice * float64(req.Quantity),
		})
	}

	return s.saveAndSummarize(ctx, cart)
}

// SetQuantity updates a line's quantity, recomputing its total. A quantity of
// zero or less removes the line.
func (s *CartService) SetQuantity(ctx context.Context, sessionID string, req *models.UpdateQuantityRequest) (*models.CartSummary, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	line, ok := cart.Line(req.LineID)
	if !ok {
		return nil, errors.NotFoundError("Cart line not found")
	}

	if req.Quantity <= 0 {
		cart.Items = removeLine(cart.Items, req.LineID)
	} else {
		line.Quantity = req.Quantity
		line.TotalPrice = line.UnitPrice * float64(line.Quantity)
	}

	return s.saveAndSummarize(ctx, cart)
}

func (s *CartService) RemoveLine(ctx context.Context, sessionID, lineID string) (*models.CartSummary, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if _, ok := cart.Line(lineID); !ok {
		return nil, errors.NotFoundError("Cart line not found")
	}

	cart.Items = removeLine(cart.Items, lineID)

	return s.saveAndSummarize(ctx, cart)
}

// SetDiscount applies a manual discount, replacing any coupon-sourced one.
// Only one discount object exists on a cart at a time.
func (s *CartService) SetDiscount(ctx context.Context, sessionID string, req *models.SetDiscountRequest) (*models.CartSummary, error) {
	if req.Value <= 0 {
		return nil, errors.ValidationError("Discount value must be positive")
	}

	if req.Kind == models.DiscountPercentage && req.Value > 100 {
		return nil, errors.ValidationError("Percentage discount cannot exceed 100")
	}

	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.Discount = &models.Discount{Kind: req.Kind, Value: req.Value}

	return s.saveAndSummarize(ctx, cart)
}

// ApplyCoupon resolves a code and applies its discount, replacing any manual
// discount. An unknown code fails without mutating the cart.
func (s *CartService) ApplyCoupon(ctx context.Context, sessionID, code string) (*models.CartSummary, error) {
	discount := ResolveCoupon(code)
	if discount == nil {
		return nil, errors.ValidationError("Invalid coupon code")
	}

	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.Discount = discount

	return s.saveAndSummarize(ctx, cart)
}

func (s *CartService) ClearDiscount(ctx context.Context, sessionID string) (*models.CartSummary, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.Discount = nil

	return s.saveAndSummarize(ctx, cart)
}

func (s *CartService) SetCustomer(ctx context.Context, sessionID string, customerID *int64) (*models.CartSummary, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.CustomerID = customerID

	return s.saveAndSummarize(ctx, cart)
}

// Clear drops the whole cart: items, discount and customer. It runs after a
// successful settlement or on an explicit operator reset.
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	if err := s.carts.Delete(ctx, sessionID); err != nil {
		return errors.DatabaseError("Failed to clear cart").WithError(err)
	}

	s.events.Publish(ctx, events.TopicCartChanged, events.CartChanged{SessionID: sessionID})

	return nil
}

func (s *CartService) saveAndSummarize(ctx context.Context, cart *models.Cart) (*models.CartSummary, error) {
	cart.UpdatedAt = time.Now()

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, errors.DatabaseError("Failed to update cart").WithError(err)
	}

	s.events.Publish(ctx, events.TopicCartChanged, events.CartChanged{SessionID: cart.SessionID})

	return &models.CartSummary{Cart: cart, Totals: cart.Totals(s.taxRate)}, nil
}

func removeLine(items []models.CartLine, lineID string) []models.CartLine {
	filtered := items[:0]
	for _, line := range items {
		if line.ID != lineID {
			filtered = append(filtered, line)
		}
	}

	return filtered
}
