package service

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/quickretail/qpos/internal/errors"
	"github.com/quickretail/qpos/internal/models"
	"github.com/quickretail/qpos/internal/pricing"
	repository "github.com/quickretail/qpos/internal/repositories"
)

// ReportService aggregates settled orders into register reports. Everything
// here is derived from the orders table on demand; nothing is precomputed.
type ReportService struct {
	orders repository.OrderRepository
}

func NewReportService(orders repository.OrderRepository) *ReportService {
	return &ReportService{orders: orders}
}

// ReportSummary is the at-a-glance view for a reporting window.
type ReportSummary struct {
	From              time.Time          `json:"from"`
	To                time.Time          `json:"to"`
	OrderCount        int                `json:"order_count"`
	TotalRevenue      float64            `json:"total_revenue"`
	TotalDiscount     float64            `json:"total_discount"`
	TotalTax          float64            `json:"total_tax"`
	AverageOrderValue float64            `json:"average_order_value"`
	PaymentBreakdown  map[string]float64 `json:"payment_breakdown"`
}

// DailyRevenue is one day's bucket in a revenue-over-time report.
type DailyRevenue struct {
	Date       string  `json:"date"`
	OrderCount int     `json:"order_count"`
	Revenue    float64 `json:"revenue"`
}

// Summary aggregates the window [from, to).
func (s *ReportService) Summary(ctx context.Context, from, to time.Time) (*ReportSummary, error) {
	orders, err := s.orders.ListOrdersBetween(ctx, from, to)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list orders for report").WithError(err)
	}

	summary := &ReportSummary{
		From:             from,
		To:               to,
		OrderCount:       len(orders),
		PaymentBreakdown: make(map[string]float64),
	}

	for _, order := range orders {
		summary.TotalRevenue += order.TotalAmount
		summary.TotalDiscount += order.DiscountAmount
		summary.TotalTax += order.TaxAmount

		// A split order contributes to several buckets, one per payment, so
		// the buckets sum to revenue regardless of how orders were paid.
		for _, payment := range order.Payments {
			summary.PaymentBreakdown[string(payment.PaymentMethod)] += payment.Amount
		}
	}

	if summary.OrderCount > 0 {
		summary.AverageOrderValue = pricing.Round2(summary.TotalRevenue / float64(summary.OrderCount))
	}

	summary.TotalRevenue = pricing.Round2(summary.TotalRevenue)
	summary.TotalDiscount = pricing.Round2(summary.TotalDiscount)
	summary.TotalTax = pricing.Round2(summary.TotalTax)

	for method, amount := range summary.PaymentBreakdown {
		summary.PaymentBreakdown[method] = pricing.Round2(amount)
	}

	return summary, nil
}

// Daily buckets the window's orders by calendar day in the server's zone.
func (s *ReportService) Daily(ctx context.Context, from, to time.Time) ([]DailyRevenue, error) {
	orders, err := s.orders.ListOrdersBetween(ctx, from, to)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list orders for report").WithError(err)
	}

	buckets := make(map[string]*DailyRevenue)
	var keys []string

	for _, order := range orders {
		day := order.OrderDate.Format("2006-01-02")

		bucket, ok := buckets[day]
		if !ok {
			bucket = &DailyRevenue{Date: day}
			buckets[day] = bucket
			keys = append(keys, day)
		}

		bucket.OrderCount++
		bucket.Revenue += order.TotalAmount
	}

	result := make([]DailyRevenue, 0, len(keys))
	for _, day := range keys {
		bucket := buckets[day]
		bucket.Revenue = pricing.Round2(bucket.Revenue)
		result = append(result, *bucket)
	}

	return result, nil
}

// ListOrders returns settled orders, newest first.
func (s *ReportService) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list orders").WithError(err)
	}

	return orders, nil
}

// GetOrder returns a single settled order with its items and payments.
func (s *ReportService) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	order, err := s.orders.GetOrderByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Order not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to load order").WithError(err)
	}

	return order, nil
}
