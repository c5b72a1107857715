package service_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/quickretail/qpos/internal/config"
	appErrors "github.com/quickretail/qpos/internal/errors"
	"github.com/quickretail/qpos/internal/models"
	repository "github.com/quickretail/qpos/internal/repositories"
	service "github.com/quickretail/qpos/internal/services"
)

func newUserServiceTest(t *testing.T) (*service.UserService, *repository.MockUserRepository, *models.User) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("4321"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		ID:       11,
		Username: "asha",
		Name:     "Asha",
		PINHash:  string(hash),
		Role:     models.RoleCashier,
		IsActive: true,
	}

	mockUsers := repository.NewMockUserRepository()
	security := config.Security{JWTKey: "test-secret", JWTExpiryHours: 1}

	return service.NewUserService(mockUsers, security), mockUsers, user
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Token Carries Cashier Claims", func(t *testing.T) {
		// Arrange
		userService, mockUsers, user := newUserServiceTest(t)
		mockUsers.On("GetByUsername", ctx, "asha").Return(user, nil).Once()

		// Act
		resp, err := userService.Login(ctx, &models.LoginRequest{Username: "asha", PIN: "4321"})

		// Assert
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, user.Username, resp.User.Username)

		claims, err := userService.VerifyToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, int64(11), claims.CashierID)
		assert.Equal(t, models.RoleCashier, claims.Role)
		mockUsers.AssertExpectations(t)
	})

	t.Run("Failure - Wrong PIN", func(t *testing.T) {
		userService, mockUsers, user := newUserServiceTest(t)
		mockUsers.On("GetByUsername", ctx, "asha").Return(user, nil).Once()

		resp, err := userService.Login(ctx, &models.LoginRequest{Username: "asha", PIN: "0000"})

		assert.Nil(t, resp)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, appErr.Code)
	})

	t.Run("Failure - Unknown Username Yields Same Error", func(t *testing.T) {
		userService, mockUsers, _ := newUserServiceTest(t)
		mockUsers.On("GetByUsername", ctx, "ghost").Return(nil, sql.ErrNoRows).Once()

		resp, err := userService.Login(ctx, &models.LoginRequest{Username: "ghost", PIN: "4321"})

		assert.Nil(t, resp)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, appErr.Code)
		assert.Equal(t, "Invalid username or PIN", appErr.Message)
	})

	t.Run("Failure - Disabled Account", func(t *testing.T) {
		userService, mockUsers, user := newUserServiceTest(t)
		user.IsActive = false
		mockUsers.On("GetByUsername", ctx, "asha").Return(user, nil).Once()

		resp, err := userService.Login(ctx, &models.LoginRequest{Username: "asha", PIN: "4321"})

		assert.Nil(t, resp)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeForbidden, appErr.Code)
	})
}

func TestVerifyToken(t *testing.T) {
	t.Run("Failure - Garbage Token", func(t *testing.T) {
		userService, _, _ := newUserServiceTest(t)

		claims, err := userService.VerifyToken("not-a-jwt")

		assert.Nil(t, claims)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, appErr.Code)
	})

	t.Run("Failure - Wrong Signing Key", func(t *testing.T) {
		userService, mockUsers, user := newUserServiceTest(t)
		mockUsers.On("GetByUsername", context.Background(), "asha").Return(user, nil).Once()

		resp, err := userService.Login(context.Background(), &models.LoginRequest{Username: "asha", PIN: "4321"})
		require.NoError(t, err)

		otherService := service.NewUserService(mockUsers, config.Security{JWTKey: "different-secret", JWTExpiryHours: 1})

		claims, err := otherService.VerifyToken(resp.Token)

		assert.Nil(t, claims)
		assert.Error(t, err)
	})
}
