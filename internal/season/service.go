// Package season implements the season pass: XP accumulates per user, levels
// advance when the current level's XP requirement is met, and each level
// grants its free reward plus, for premium holders, its premium reward.
package season

import (
	"context"
	"fmt"

	"github.com/coinverse/CoinverseBot_Go/internal/catalog"
	"github.com/coinverse/CoinverseBot_Go/internal/concurrency"
	"github.com/coinverse/CoinverseBot_Go/internal/domain"
	"github.com/coinverse/CoinverseBot_Go/internal/economy"
	"github.com/coinverse/CoinverseBot_Go/internal/event"
	"github.com/coinverse/CoinverseBot_Go/internal/logger"
	"github.com/coinverse/CoinverseBot_Go/internal/metrics"
	"github.com/coinverse/CoinverseBot_Go/internal/notify"
	"github.com/coinverse/CoinverseBot_Go/internal/repository"
)

// Service defines the interface for season pass operations
type Service interface {
	// AddXP applies XP to the user's season progress, cascading through as
	// many level-ups as the amount covers. Rewards are granted level by level
	// before the final progress persists, so they are delivered at-least-once.
	AddXP(ctx context.Context, userID string, amount int64, source string) (*domain.SeasonProgress, error)
}

type service struct {
	repo      repository.User
	inventory repository.Inventory
	economy   economy.Service
	catalog   *catalog.Catalog
	locks     *concurrency.LockManager
	publisher *event.ResilientPublisher
	notifier  notify.Notifier
}

// NewService creates a new season service
func NewService(repo repository.User, inventory repository.Inventory, eco economy.Service, cat *catalog.Catalog, locks *concurrency.LockManager, publisher *event.ResilientPublisher, notifier notify.Notifier) Service {
	return &service{
		repo:      repo,
		inventory: inventory,
		economy:   eco,
		catalog:   cat,
		locks:     locks,
		publisher: publisher,
		notifier:  notifier,
	}
}

func (s *service) AddXP(ctx context.Context, userID string, amount int64, source string) (*domain.SeasonProgress, error) {
	log := logger.FromContext(ctx)

	if amount <= 0 {
		return nil, fmt.Errorf("%w: xp amount must be positive", domain.ErrInvalidInput)
	}

	var progress *domain.SeasonProgress
	err := s.locks.WithLock(userID, func() error {
		user, err := s.repo.GetUserByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		if user == nil {
			return domain.ErrUserNotFound
		}

		level := user.SeasonLevel
		if level < 1 {
			level = 1
		}
		xp := user.SeasonXP + amount
		maxLevel := s.catalog.MaxSeasonLevel()

		var rewards []domain.Reward
		gained := 0
		for level < maxLevel {
			def, ok := s.catalog.SeasonLevel(level)
			if !ok || xp < def.XPRequired {
				break
			}
			xp -= def.XPRequired
			level++
			gained++

			if err := s.grantReward(ctx, userID, def.FreeReward); err != nil {
				return err
			}
			rewards = append(rewards, def.FreeReward)
			if user.HasPremium && def.PremiumReward != nil {
				if err := s.grantReward(ctx, userID, *def.PremiumReward); err != nil {
					return err
				}
				rewards = append(rewards, *def.PremiumReward)
			}
		}

		// At the cap the residual XP stays on the record so a future season
		// extension can pick it up.
		if err := s.repo.UpdateSeasonProgress(ctx, userID, level, xp); err != nil {
			return fmt.Errorf("failed to update season progress: %w", err)
		}

		progress = &domain.SeasonProgress{
			Level:        level,
			XP:           xp,
			LevelsGained: gained,
			Rewards:      rewards,
			ReachedCap:   level >= maxLevel,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if progress.LevelsGained > 0 {
		log.Info("Season level up",
			"userID", userID,
			"newLevel", progress.Level,
			"levelsGained", progress.LevelsGained,
			"source", source)
		metrics.SeasonLevelUps.Add(float64(progress.LevelsGained))

		s.publisher.PublishWithRetry(ctx, event.Event{
			Version: "1.0",
			Type:    event.SeasonLevelUp,
			Payload: event.SeasonLevelUpPayloadV1{
				UserID:       userID,
				NewLevel:     progress.Level,
				LevelsGained: progress.LevelsGained,
			},
		})
		notify.Dispatch(ctx, s.notifier, userID,
			fmt.Sprintf("Season pass level %d reached!", progress.Level))
	}

	return progress, nil
}

func (s *service) grantReward(ctx context.Context, userID string, reward domain.Reward) error {
	switch reward.Type {
	case domain.PrizeCoins:
		_, err := s.economy.ApplyDelta(ctx, userID, repository.BalanceDelta{Coins: reward.Amount, CountEarned: true})
		if err != nil {
			return fmt.Errorf("failed to grant coin reward: %w", err)
		}
	case domain.PrizeStars:
		_, err := s.economy.ApplyDelta(ctx, userID, repository.BalanceDelta{Stars: reward.Amount})
		if err != nil {
			return fmt.Errorf("failed to grant star reward: %w", err)
		}
	case domain.PrizeItem:
		if err := s.inventory.AddItem(ctx, userID, reward.ItemID, 1); err != nil {
			return fmt.Errorf("failed to grant item reward: %w", err)
		}
	default:
		return fmt.Errorf("%w: unknown reward type %q", domain.ErrInvalidInput, reward.Type)
	}
	return nil
}
