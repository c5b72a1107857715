package repository

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/quickretail/qpos/internal/models"
)

// Testify mocks for the repository interfaces, shared by the service tests.

type MockProductRepository struct {
	mock.Mock
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{}
}

func (m *MockProductRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*models.Product); ok {
		return p, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProductRepository) GetVariantByID(ctx context.Context, id int64) (*models.ProductVariant, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*models.ProductVariant); ok {
		return v, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProductRepository) UpdateVariantStock(ctx context.Context, variantID int64, stockQuantity int) error {
	args := m.Called(ctx, variantID, stockQuantity)

	return args.Error(0)
}

func (m *MockProductRepository) ListVariantsByProduct(ctx context.Context, productID int64) ([]models.ProductVariant, error) {
	args := m.Called(ctx, productID)
	if v, ok := args.Get(0).([]models.ProductVariant); ok {
		return v, args.Error(1)
	}

	return nil, args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{}
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)

	return args.Error(0)
}

func (m *MockOrderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*models.Order); ok {
		return o, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockOrderRepository) ListOrders(ctx context.Context) ([]models.Order, error) {
	args := m.Called(ctx)
	if o, ok := args.Get(0).([]models.Order); ok {
		return o, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockOrderRepository) ListOrdersBetween(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	args := m.Called(ctx, from, to)
	if o, ok := args.Get(0).([]models.Order); ok {
		return o, args.Error(1)
	}

	return nil, args.Error(1)
}

type MockStockLogRepository struct {
	mock.Mock
}

func NewMockStockLogRepository() *MockStockLogRepository {
	return &MockStockLogRepository{}
}

func (m *MockStockLogRepository) Append(ctx context.Context, entry *models.StockLogEntry) error {
	args := m.Called(ctx, entry)

	return args.Error(0)
}

func (m *MockStockLogRepository) ListByVariant(ctx context.Context, variantID int64) ([]models.StockLogEntry, error) {
	args := m.Called(ctx, variantID)
	if e, ok := args.Get(0).([]models.StockLogEntry); ok {
		return e, args.Error(1)
	}

	return nil, args.Error(1)
}

type MockCustomerRepository struct {
	mock.Mock
}

func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{}
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*models.Customer); ok {
		return c, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCustomerRepository) RecordVisit(ctx context.Context, id int64, amount float64) error {
	args := m.Called(ctx, id, amount)

	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}

	return nil, args.Error(1)
}

type MockCartRepository struct {
	mock.Mock
}

func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{}
}

func (m *MockCartRepository) Get(ctx context.Context, sessionID string) (*models.Cart, error) {
	args := m.Called(ctx, sessionID)
	if c, ok := args.Get(0).(*models.Cart); ok {
		return c, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, cart *models.Cart) error {
	args := m.Called(ctx, cart)

	return args.Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)

	return args.Error(0)
}
