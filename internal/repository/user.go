package repository

import (
	"context"
	"time"

	"github.com/coinverse/CoinverseBot_Go/internal/domain"
)

// BalanceDelta describes one atomic ledger mutation. The store executes it as
// a single `SET coins = coins + delta` update; negative results are refused at
// the store level so a lost pre-check can never drive a balance below zero.
type BalanceDelta struct {
	Coins       int64
	Stars       int64
	CountEarned bool // bump total_earned by Coins when Coins > 0
}

// GlobalStats is the admin-facing aggregate over all users.
type GlobalStats struct {
	TotalUsers int64 `json:"total_users"`
	TotalCoins int64 `json:"total_coins"`
	TotalStars int64 `json:"total_stars"`
	TotalItems int64 `json:"total_items"`
}

// User defines the interface for ledger persistence
type User interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	ListUserIDs(ctx context.Context) ([]string, error)
	TopByTotalEarned(ctx context.Context, limit int) ([]domain.User, error)
	GetGlobalStats(ctx context.Context) (*GlobalStats, error)

	// ApplyBalanceDelta atomically mutates one user's balances and returns the
	// post-commit record. Returns domain.ErrUserNotFound for unknown IDs and
	// domain.ErrInsufficientFunds when a debit would go negative.
	ApplyBalanceDelta(ctx context.Context, userID string, delta BalanceDelta) (*domain.User, error)

	// ApplyBalanceDeltaAll applies the same credit to every user and returns
	// the number of rows touched. Only non-negative deltas are meaningful here.
	ApplyBalanceDeltaAll(ctx context.Context, delta BalanceDelta) (int64, error)

	UpdateRankLevel(ctx context.Context, userID string, level int) error
	UpdateSeasonProgress(ctx context.Context, userID string, level int, xp int64) error
	UpdateDailyBonus(ctx context.Context, userID string, streak int, claimedAt time.Time) error
	SetPremium(ctx context.Context, userID string, premium bool) error
}
