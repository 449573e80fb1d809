package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/coinverse/CoinverseBot_Go/internal/admin"
	"github.com/coinverse/CoinverseBot_Go/internal/crafting"
	"github.com/coinverse/CoinverseBot_Go/internal/domain"
	"github.com/coinverse/CoinverseBot_Go/internal/economy"
	"github.com/coinverse/CoinverseBot_Go/internal/lootbox"
	"github.com/coinverse/CoinverseBot_Go/internal/quest"
	"github.com/coinverse/CoinverseBot_Go/internal/repository"
	"github.com/coinverse/CoinverseBot_Go/internal/user"
)

// MockUserService implements user.Service for testing
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, userID, username string, referrerID *string) (*user.RegisterResult, error) {
	args := m.Called(ctx, userID, username, referrerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.RegisterResult), args.Error(1)
}

func (m *MockUserService) Profile(ctx context.Context, userID string) (*user.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Profile), args.Error(1)
}

func (m *MockUserService) Inventory(ctx context.Context, userID string) (*user.InventoryView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.InventoryView), args.Error(1)
}

func (m *MockUserService) ReferralInfo(ctx context.Context, userID string) (*user.ReferralInfo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.ReferralInfo), args.Error(1)
}

func (m *MockUserService) Leaderboard(ctx context.Context, limit int) ([]user.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]user.LeaderboardEntry), args.Error(1)
}

func (m *MockUserService) InvalidateCache(userID string) {
	m.Called(userID)
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

// MockLootboxService implements lootbox.Service for testing
type MockLootboxService struct {
	mock.Mock
}

func (m *MockLootboxService) Open(ctx context.Context, userID, containerID string) (*lootbox.OpenResult, error) {
	args := m.Called(ctx, userID, containerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lootbox.OpenResult), args.Error(1)
}

func (m *MockLootboxService) ListContainers(ctx context.Context) []domain.Container {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.Container)
}

// MockGambleService implements gamble.Service for testing
type MockGambleService struct {
	mock.Mock
}

func (m *MockGambleService) PlaceBet(ctx context.Context, userID, game string, amount int64) (*domain.BetResult, error) {
	args := m.Called(ctx, userID, game, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BetResult), args.Error(1)
}

// MockCraftingService implements crafting.Service for testing
type MockCraftingService struct {
	mock.Mock
}

func (m *MockCraftingService) Craft(ctx context.Context, userID, recipeID string) (*crafting.CraftResult, error) {
	args := m.Called(ctx, userID, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crafting.CraftResult), args.Error(1)
}

func (m *MockCraftingService) ListRecipes(ctx context.Context) []domain.Recipe {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.Recipe)
}

// MockQuestService implements quest.Service for testing
type MockQuestService struct {
	mock.Mock
}

func (m *MockQuestService) Bump(ctx context.Context, userID, counter string, n int) error {
	args := m.Called(ctx, userID, counter, n)
	return args.Error(0)
}

func (m *MockQuestService) List(ctx context.Context, userID string) ([]quest.Status, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]quest.Status), args.Error(1)
}

// MockSeasonService implements season.Service for testing
type MockSeasonService struct {
	mock.Mock
}

func (m *MockSeasonService) AddXP(ctx context.Context, userID string, amount int64, source string) (*domain.SeasonProgress, error) {
	args := m.Called(ctx, userID, amount, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SeasonProgress), args.Error(1)
}

// MockAdminService implements admin.Service for testing
type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) Stats(ctx context.Context) (*repository.GlobalStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.GlobalStats), args.Error(1)
}

func (m *MockAdminService) GrantItem(ctx context.Context, targetID, itemID string, delta int) error {
	args := m.Called(ctx, targetID, itemID, delta)
	return args.Error(0)
}

func (m *MockAdminService) Broadcast(ctx context.Context, message string) (*admin.BroadcastResult, error) {
	args := m.Called(ctx, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*admin.BroadcastResult), args.Error(1)
}

func (m *MockAdminService) Feedback(ctx context.Context, userID, text string) error {
	args := m.Called(ctx, userID, text)
	return args.Error(0)
}
