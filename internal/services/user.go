package service

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/quickretail/qpos/internal/config"
	"github.com/quickretail/qpos/internal/errors"
	"github.com/quickretail/qpos/internal/models"
	repository "github.com/quickretail/qpos/internal/repositories"
)

// UserService handles cashier authentication. A register session is the
// cashier's JWT; its subject keys the cart snapshot and checkout state.
type UserService struct {
	users    repository.UserRepository
	security config.Security
}

func NewUserService(users repository.UserRepository, security config.Security) *UserService {
	return &UserService{users: users, security: security}
}

// Login verifies a cashier's PIN and issues a signed session token. Unknown
// usernames and wrong PINs return the same error.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.UnauthorizedError("Invalid username or PIN")
		}

		return nil, errors.DatabaseError("Failed to load user").WithError(err)
	}

	if !user.IsActive {
		return nil, errors.ForbiddenError("Account is disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PINHash), []byte(req.PIN)); err != nil {
		return nil, errors.UnauthorizedError("Invalid username or PIN")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, errors.InternalError("Failed to issue session token").WithError(err)
	}

	return &models.LoginResponse{Token: token, User: user}, nil
}

func (s *UserService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &models.Claims{
		CashierID: user.ID,
		Username:  user.Username,
		Role:      user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.security.JWTExpiryHours) * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.security.JWTKey))
}

// VerifyToken parses and validates a session token, returning its claims.
func (s *UserService) VerifyToken(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.security.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.UnauthorizedError("Invalid or expired session token")
	}

	return claims, nil
}
