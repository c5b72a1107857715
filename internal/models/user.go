package models

import "github.com/golang-jwt/jwt/v5"

type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleCashier UserRole = "CASHIER"
)

// User is a cashier account. Login is PIN-based; the hash is bcrypt.
type User struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Name     string   `json:"name"`
	PINHash  string   `json:"-"`
	Role     UserRole `json:"role"`
	IsActive bool     `json:"is_active"`
}

type Claims struct {
	CashierID int64    `json:"cashier_id"`
	Username  string   `json:"username"`
	Role      UserRole `json:"role"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	PIN      string `json:"pin"      validate:"required,min=4"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
