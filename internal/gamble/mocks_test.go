package gamble

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/coinverse/CoinverseBot_Go/internal/domain"
	"github.com/coinverse/CoinverseBot_Go/internal/economy"
	"github.com/coinverse/CoinverseBot_Go/internal/repository"
)

// MockEconomyService implements economy.Service for testing
type MockEconomyService struct {
	mock.Mock
}

func (m *MockEconomyService) ApplyDelta(ctx context.Context, userID string, delta repository.BalanceDelta) (*domain.User, error) {
	args := m.Called(ctx, userID, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockEconomyService) Exchange(ctx context.Context, userID, direction string, amount int64) (*economy.ExchangeResult, error) {
	args := m.Called(ctx, userID, direction, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*economy.ExchangeResult), args.Error(1)
}

func (m *MockEconomyService) ClaimDailyBonus(ctx context.Context, userID string) (*economy.BonusResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*economy.BonusResult), args.Error(1)
}

func (m *MockEconomyService) Credit(ctx context.Context, targetID string, currency domain.Currency, amount int64) (*domain.User, error) {
	args := m.Called(ctx, targetID, currency, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockEconomyService) Giveaway(ctx context.Context, currency domain.Currency, amount int64) (int64, error) {
	args := m.Called(ctx, currency, amount)
	return args.Get(0).(int64), args.Error(1)
}

// MockInventoryRepository implements repository.Inventory for testing
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryEntry), args.Error(1)
}

func (m *MockInventoryRepository) ItemCount(ctx context.Context, userID, itemID string) (int, error) {
	args := m.Called(ctx, userID, itemID)
	return args.Int(0), args.Error(1)
}

func (m *MockInventoryRepository) AddItem(ctx context.Context, userID, itemID string, quantity int) error {
	args := m.Called(ctx, userID, itemID, quantity)
	return args.Error(0)
}

func (m *MockInventoryRepository) RemoveItem(ctx context.Context, userID, itemID string, quantity int) error {
	args := m.Called(ctx, userID, itemID, quantity)
	return args.Error(0)
}

func (m *MockInventoryRepository) BeginTx(ctx context.Context) (repository.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.Tx), args.Error(1)
}
