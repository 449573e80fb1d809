// Package economy owns balance mutations. Every coin or star movement in the
// system funnels through ApplyDelta so that earning accounting and rank
// re-evaluation cannot be skipped.
package economy

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/coinverse/CoinverseBot_Go/internal/concurrency"
	"github.com/coinverse/CoinverseBot_Go/internal/config"
	"github.com/coinverse/CoinverseBot_Go/internal/domain"
	"github.com/coinverse/CoinverseBot_Go/internal/event"
	"github.com/coinverse/CoinverseBot_Go/internal/logger"
	"github.com/coinverse/CoinverseBot_Go/internal/metrics"
	"github.com/coinverse/CoinverseBot_Go/internal/rank"
	"github.com/coinverse/CoinverseBot_Go/internal/repository"
)

// Exchange directions.
const (
	DirectionSell = "sell" // star -> coins
	DirectionBuy  = "buy"  // coins -> star
)

// ExchangeResult contains the result of a star exchange
type ExchangeResult struct {
	Direction string `json:"direction"`
	Stars     int64  `json:"stars"`
	Coins     int64  `json:"coins"`
	NewCoins  int64  `json:"new_coins"`
	NewStars  int64  `json:"new_stars"`
}

// BonusResult contains the result of a daily bonus claim
type BonusResult struct {
	Streak   int   `json:"streak"`
	Reward   int64 `json:"reward"`
	NewCoins int64 `json:"new_coins"`
}

// Service defines the interface for economy operations
type Service interface {
	// ApplyDelta atomically mutates one user's balances. When the delta counts
	// as earned, the rank ladder is re-evaluated after the commit.
	ApplyDelta(ctx context.Context, userID string, delta repository.BalanceDelta) (*domain.User, error)

	Exchange(ctx context.Context, userID, direction string, amount int64) (*ExchangeResult, error)
	ClaimDailyBonus(ctx context.Context, userID string) (*BonusResult, error)

	// Credit is the admin balance adjustment. Positive coin amounts count as
	// earned.
	Credit(ctx context.Context, targetID string, currency domain.Currency, amount int64) (*domain.User, error)

	// Giveaway credits every user the same amount and returns how many users
	// were touched. Per-user rank evaluation is deferred to each user's next
	// earning operation.
	Giveaway(ctx context.Context, currency domain.Currency, amount int64) (int64, error)
}

type service struct {
	repo      repository.User
	rankSvc   rank.Service
	locks     *concurrency.LockManager
	publisher *event.ResilientPublisher
	cfg       config.EconomyConfig
	now       func() time.Time
}

// NewService creates a new economy service
func NewService(repo repository.User, rankSvc rank.Service, locks *concurrency.LockManager, publisher *event.ResilientPublisher, cfg config.EconomyConfig) Service {
	return &service{
		repo:      repo,
		rankSvc:   rankSvc,
		locks:     locks,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *service) ApplyDelta(ctx context.Context, userID string, delta repository.BalanceDelta) (*domain.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.repo.ApplyBalanceDelta(ctx, userID, delta)
	if err != nil {
		return nil, err
	}

	if delta.CountEarned && delta.Coins > 0 {
		// A failed promotion is recoverable: rank derives from TotalEarned, so
		// the next earning operation retries it.
		if _, err := s.rankSvc.Evaluate(ctx, user); err != nil {
			log.Error("Rank evaluation failed", "userID", userID, "error", err)
		}
	}

	return user, nil
}

func (s *service) Exchange(ctx context.Context, userID, direction string, amount int64) (*ExchangeResult, error) {
	log := logger.FromContext(ctx)

	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}

	var delta repository.BalanceDelta
	switch direction {
	case DirectionSell:
		// The price multiplication must not wrap; a wrapped product would flip
		// the sign of the coin delta.
		if amount > math.MaxInt64/s.cfg.StarSellPrice {
			return nil, fmt.Errorf("%w: amount too large", domain.ErrInvalidInput)
		}
		// Coins gained from selling stars count toward lifetime earnings.
		delta = repository.BalanceDelta{
			Coins:       amount * s.cfg.StarSellPrice,
			Stars:       -amount,
			CountEarned: true,
		}
	case DirectionBuy:
		if amount > math.MaxInt64/s.cfg.StarBuyPrice {
			return nil, fmt.Errorf("%w: amount too large", domain.ErrInvalidInput)
		}
		delta = repository.BalanceDelta{
			Coins: -amount * s.cfg.StarBuyPrice,
			Stars: amount,
		}
	default:
		return nil, fmt.Errorf("%w: unknown exchange direction %q", domain.ErrInvalidInput, direction)
	}

	user, err := s.ApplyDelta(ctx, userID, delta)
	if err != nil {
		return nil, err
	}

	log.Info("Stars exchanged",
		"userID", userID,
		"direction", direction,
		"stars", amount)

	return &ExchangeResult{
		Direction: direction,
		Stars:     amount,
		Coins:     delta.Coins,
		NewCoins:  user.Coins,
		NewStars:  user.Stars,
	}, nil
}

func (s *service) ClaimDailyBonus(ctx context.Context, userID string) (*BonusResult, error) {
	log := logger.FromContext(ctx)

	var result *BonusResult
	err := s.locks.WithLock(userID, func() error {
		user, err := s.repo.GetUserByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		if user == nil {
			return domain.ErrUserNotFound
		}

		today := s.now()
		streak := 1
		if user.LastBonusAt != nil {
			if domain.SameDate(*user.LastBonusAt, today) {
				return domain.ErrBonusAlreadyClaimed
			}
			// Streak continues only across consecutive days and wraps after
			// seven steps.
			if domain.SameDate(user.LastBonusAt.AddDate(0, 0, 1), today) {
				streak = user.DailyStreak%7 + 1
			}
		}

		// The claim marker persists before the credit. If the credit then
		// fails, today's claim is lost rather than claimable twice.
		if err := s.repo.UpdateDailyBonus(ctx, userID, streak, today); err != nil {
			return fmt.Errorf("failed to update daily bonus: %w", err)
		}

		reward := s.cfg.DailyBonusBase * int64(streak)
		user, err = s.ApplyDelta(ctx, userID, repository.BalanceDelta{Coins: reward, CountEarned: true})
		if err != nil {
			return fmt.Errorf("failed to credit bonus: %w", err)
		}

		result = &BonusResult{
			Streak:   streak,
			Reward:   reward,
			NewCoins: user.Coins,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Daily bonus claimed",
		"userID", userID,
		"streak", result.Streak,
		"reward", result.Reward)
	metrics.DailyBonusesClaimed.Inc()

	s.publisher.PublishWithRetry(ctx, event.Event{
		Version: "1.0",
		Type:    event.BonusClaimed,
		Payload: map[string]interface{}{
			"user_id": userID,
			"streak":  result.Streak,
			"reward":  result.Reward,
		},
	})

	return result, nil
}

func (s *service) Credit(ctx context.Context, targetID string, currency domain.Currency, amount int64) (*domain.User, error) {
	log := logger.FromContext(ctx)

	if !currency.Valid() {
		return nil, fmt.Errorf("%w: unknown currency %q", domain.ErrInvalidInput, currency)
	}

	delta := repository.BalanceDelta{}
	switch currency {
	case domain.CurrencyCoins:
		delta.Coins = amount
		delta.CountEarned = amount > 0
	case domain.CurrencyStars:
		delta.Stars = amount
	}

	user, err := s.ApplyDelta(ctx, targetID, delta)
	if err != nil {
		return nil, err
	}

	log.Info("Balance credited",
		"targetID", targetID,
		"currency", currency,
		"amount", amount)
	return user, nil
}

func (s *service) Giveaway(ctx context.Context, currency domain.Currency, amount int64) (int64, error) {
	log := logger.FromContext(ctx)

	if !currency.Valid() {
		return 0, fmt.Errorf("%w: unknown currency %q", domain.ErrInvalidInput, currency)
	}
	if amount <= 0 {
		return 0, fmt.Errorf("%w: giveaway amount must be positive", domain.ErrInvalidInput)
	}

	delta := repository.BalanceDelta{}
	if currency == domain.CurrencyCoins {
		delta.Coins = amount
		delta.CountEarned = true
	} else {
		delta.Stars = amount
	}

	count, err := s.repo.ApplyBalanceDeltaAll(ctx, delta)
	if err != nil {
		return 0, fmt.Errorf("failed to apply giveaway: %w", err)
	}

	log.Info("Giveaway applied",
		"currency", currency,
		"amount", amount,
		"users", count)
	return count, nil
}
