package economy

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/coinverse/CoinverseBot_Go/internal/domain"
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

// MockRankService implements rank.Service for testing
type MockRankService struct {
	mock.Mock
}

func (m *MockRankService) Evaluate(ctx context.Context, user *domain.User) (*domain.RankTier, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RankTier), args.Error(1)
}
