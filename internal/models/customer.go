package models

import "time"

// Customer carries the loyalty counters mutated by settlement. They are only
// ever incremented, once per completed order with an attached customer.
type Customer struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email,omitempty"`
	Address        string    `json:"address,omitempty"`
	City           string    `json:"city,omitempty"`
	LoyaltyPoints  int64     `json:"loyalty_points"`
	TotalPurchases int64     `json:"total_purchases"`
	TotalSpent     float64   `json:"total_spent"`
	CreatedAt      time.Time `json:"created_at"`
}
