package season

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/coinverse/CoinverseBot_Go/internal/domain"
	"github.com/coinverse/CoinverseBot_Go/internal/economy"
	"github.com/coinverse/CoinverseBot_Go/internal/repository"
)

// MockUserRepository implements repository.User for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockUserRepository) TopByTotalEarned(ctx context.Context, limit int) ([]domain.User, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) GetGlobalStats(ctx context.Context) (*repository.GlobalStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.GlobalStats), args.Error(1)
}

func (m *MockUserRepository) ApplyBalanceDelta(ctx context.Context, userID string, delta repository.BalanceDelta) (*domain.User, error) {
	args := m.Called(ctx, userID, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ApplyBalanceDeltaAll(ctx context.Context, delta repository.BalanceDelta) (int64, error) {
	args := m.Called(ctx, delta)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) UpdateRankLevel(ctx context.Context, userID string, level int) error {
	args := m.Called(ctx, userID, level)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateSeasonProgress(ctx context.Context, userID string, level int, xp int64) error {
	args := m.Called(ctx, userID, level, xp)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateDailyBonus(ctx context.Context, userID string, streak int, claimedAt time.Time) error {
	args := m.Called(ctx, userID, streak, claimedAt)
	return args.Error(0)
}

func (m *MockUserRepository) SetPremium(ctx context.Context, userID string, premium bool) error {
	args := m.Called(ctx, userID, premium)
	return args.Error(0)
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
