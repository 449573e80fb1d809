package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/coinverse/CoinverseBot_Go/internal/catalog"
	"github.com/coinverse/CoinverseBot_Go/internal/concurrency"
	"github.com/coinverse/CoinverseBot_Go/internal/config"
	"github.com/coinverse/CoinverseBot_Go/internal/domain"
	"github.com/coinverse/CoinverseBot_Go/internal/event"
	"github.com/coinverse/CoinverseBot_Go/internal/notify"
	"github.com/coinverse/CoinverseBot_Go/internal/repository"
)

func ptr(v int64) *int64 { return &v }

func strPtr(s string) *string { return &s }

func testCatalog() *catalog.Catalog {
	items := []domain.Item{
		{ID: "card_goblin", Name: "Goblin", Rarity: "common", Type: domain.ItemTypeCard, Power: 3},
		{ID: "card_dragon", Name: "Dragon", Rarity: "legendary", Type: domain.ItemTypeCard, Power: 9},
		{ID: "scrap", Name: "Scrap", Rarity: "common", Type: domain.ItemTypeItem},
	}
	ranks := []domain.RankTier{
		{Level: 1, Threshold: ptr(0), Name: "Newcomer"},
		{Level: 2, Threshold: ptr(5000), Name: "Trader"},
		{Level: 3, Threshold: ptr(15000), Name: "Merchant"},
	}
	return catalog.New(items, nil, ranks, nil, nil, nil)
}

func testConfig() config.EconomyConfig {
	return config.EconomyConfig{
		StartCoins:    1000,
		ReferredBonus: 2000,
		ReferralBonus: 1000,
	}
}

func newTestService(repo *MockUserRepository, inv *MockInventoryRepository, eco *MockEconomyService) Service {
	publisher := event.NewResilientPublisher(event.NewMemoryBus(), event.DefaultResilientConfig())
	return NewService(repo, inv, eco, testCatalog(), concurrency.NewLockManager(), publisher, notify.LogNotifier{}, testConfig())
}

func TestRegister_BaseStartingBalance(t *testing.T) {
	repo := new(MockUserRepository)
	eco := new(MockEconomyService)
	svc := newTestService(repo, new(MockInventoryRepository), eco)

	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == "user-1" && u.Coins == 1000 && u.TotalEarned == 1000 &&
			u.RankLevel == 1 && u.SeasonLevel == 1 && u.ReferrerID == nil
	})).Return(nil)

	res, err := svc.Register(context.Background(), "user-1", "alice", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), res.StartCoins)
	assert.False(t, res.Referred)
	eco.AssertNotCalled(t, "ApplyDelta", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestRegister_WithReferral(t *testing.T) {
	repo := new(MockUserRepository)
	eco := new(MockEconomyService)
	svc := newTestService(repo, new(MockInventoryRepository), eco)

	repo.On("GetUserByID", mock.Anything, "referrer").
		Return(&domain.User{ID: "referrer"}, nil)
	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Coins == 2000 && u.ReferrerID != nil && *u.ReferrerID == "referrer"
	})).Return(nil)
	eco.On("ApplyDelta", mock.Anything, "referrer", repository.BalanceDelta{Coins: 1000, CountEarned: true}).
		Return(&domain.User{ID: "referrer", Coins: 2000}, nil)

	res, err := svc.Register(context.Background(), "user-1", "bob", strPtr("referrer"))
	require.NoError(t, err)
	assert.True(t, res.Referred)
	assert.Equal(t, int64(2000), res.StartCoins)
	eco.AssertExpectations(t)
}

func TestRegister_UnknownReferrerIgnored(t *testing.T) {
	repo := new(MockUserRepository)
	eco := new(MockEconomyService)
	svc := newTestService(repo, new(MockInventoryRepository), eco)

	repo.On("GetUserByID", mock.Anything, "ghost").Return(nil, nil)
	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Coins == 1000 && u.ReferrerID == nil
	})).Return(nil)

	res, err := svc.Register(context.Background(), "user-1", "carol", strPtr("ghost"))
	require.NoError(t, err)
	assert.False(t, res.Referred)
	eco.AssertNotCalled(t, "ApplyDelta", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister_SelfReferralRejected(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestService(repo, new(MockInventoryRepository), new(MockEconomyService))

	_, err := svc.Register(context.Background(), "user-1", "dave", strPtr("user-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestRegister_DuplicateUser(t *testing.T) {
	repo := new(MockUserRepository)
	eco := new(MockEconomyService)
	svc := newTestService(repo, new(MockInventoryRepository), eco)

	repo.On("CreateUser", mock.Anything, mock.Anything).Return(domain.ErrUserAlreadyExists)

	_, err := svc.Register(context.Background(), "user-1", "alice", nil)
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	eco.AssertNotCalled(t, "ApplyDelta", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister_ReferrerCreditFailureDoesNotFailRegistration(t *testing.T) {
	repo := new(MockUserRepository)
	eco := new(MockEconomyService)
	svc := newTestService(repo, new(MockInventoryRepository), eco)

	repo.On("GetUserByID", mock.Anything, "referrer").
		Return(&domain.User{ID: "referrer"}, nil)
	repo.On("CreateUser", mock.Anything, mock.Anything).Return(nil)
	eco.On("ApplyDelta", mock.Anything, "referrer", mock.Anything).
		Return(nil, assert.AnError)

	res, err := svc.Register(context.Background(), "user-1", "bob", strPtr("referrer"))
	require.NoError(t, err)
	assert.True(t, res.Referred)
}

func TestProfile_RankProgress(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestService(repo, new(MockInventoryRepository), new(MockEconomyService))

	// Halfway between the Trader (5000) and Merchant (15000) thresholds
	repo.On("GetUserByID", mock.Anything, "user-1").
		Return(&domain.User{ID: "user-1", Username: "alice", TotalEarned: 10000, RankLevel: 2}, nil)

	p, err := svc.Profile(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Trader", p.RankName)
	assert.InDelta(t, 0.5, p.RankProgress, 0.001)
}

func TestProfile_TopRankProgressIsFull(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestService(repo, new(MockInventoryRepository), new(MockEconomyService))

	repo.On("GetUserByID", mock.Anything, "user-1").
		Return(&domain.User{ID: "user-1", TotalEarned: 99999, RankLevel: 3}, nil)

	p, err := svc.Profile(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Merchant", p.RankName)
	assert.Equal(t, 1.0, p.RankProgress)
}

func TestProfile_CachesReads(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestService(repo, new(MockInventoryRepository), new(MockEconomyService))

	repo.On("GetUserByID", mock.Anything, "user-1").
		Return(&domain.User{ID: "user-1", RankLevel: 1}, nil).Once()

	_, err := svc.Profile(context.Background(), "user-1")
	require.NoError(t, err)
	_, err = svc.Profile(context.Background(), "user-1")
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "GetUserByID", 1)
}

func TestProfile_InvalidateCacheForcesReload(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestService(repo, new(MockInventoryRepository), new(MockEconomyService))

	repo.On("GetUserByID", mock.Anything, "user-1").
		Return(&domain.User{ID: "user-1", RankLevel: 1}, nil)

	_, err := svc.Profile(context.Background(), "user-1")
	require.NoError(t, err)
	svc.InvalidateCache("user-1")
	_, err = svc.Profile(context.Background(), "user-1")
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "GetUserByID", 2)
}

func TestProfile_UserNotFound(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestService(repo, new(MockInventoryRepository), new(MockEconomyService))

	repo.On("GetUserByID", mock.Anything, "ghost").Return(nil, nil)

	_, err := svc.Profile(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestInventory_SplitsAndSortsCards(t *testing.T) {
	repo := new(MockUserRepository)
	inv := new(MockInventoryRepository)
	svc := newTestService(repo, inv, new(MockEconomyService))

	repo.On("GetUserByID", mock.Anything, "user-1").
		Return(&domain.User{ID: "user-1", RankLevel: 1}, nil)
	inv.On("GetInventory", mock.Anything, "user-1").Return([]domain.InventoryEntry{
		{ItemID: "card_goblin", Quantity: 2},
		{ItemID: "card_dragon", Quantity: 1},
		{ItemID: "scrap", Quantity: 10},
		{ItemID: "unknown_item", Quantity: 1}, // no catalog entry, dropped
	}, nil)

	view, err := svc.Inventory(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, view.Cards, 2)
	require.Len(t, view.Items, 1)
	// Legendary dragon outranks the common goblin
	assert.Equal(t, "card_dragon", view.Cards[0].Item.ID)
	assert.Equal(t, "card_goblin", view.Cards[1].Item.ID)
	assert.Equal(t, "scrap", view.Items[0].Item.ID)
}

func TestReferralInfo(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestService(repo, new(MockInventoryRepository), new(MockEconomyService))

	repo.On("GetUserByID", mock.Anything, "user-1").
		Return(&domain.User{ID: "user-1"}, nil)

	info, err := svc.ReferralInfo(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", info.Code)
	assert.Equal(t, int64(2000), info.ReferredBonus)
	assert.Equal(t, int64(1000), info.ReferralBonus)
}

func TestLeaderboard(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestService(repo, new(MockInventoryRepository), new(MockEconomyService))

	repo.On("TopByTotalEarned", mock.Anything, 2).Return([]domain.User{
		{ID: "user-2", Username: "bob", TotalEarned: 20000, RankLevel: 3},
		{ID: "user-1", Username: "alice", TotalEarned: 8000, RankLevel: 2},
	}, nil)

	entries, err := svc.Leaderboard(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Merchant", entries[0].RankName)
	assert.Equal(t, "Trader", entries[1].RankName)
}

func TestLeaderboard_ClampsLimit(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestService(repo, new(MockInventoryRepository), new(MockEconomyService))

	repo.On("TopByTotalEarned", mock.Anything, 10).Return([]domain.User{}, nil)

	_, err := svc.Leaderboard(context.Background(), 0)
	require.NoError(t, err)
	_, err = svc.Leaderboard(context.Background(), 500)
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "TopByTotalEarned", 2)
}
