// Package rank maps lifetime earned coins onto the rank ladder and handles
// promotions. Rank is monotonic: it only ever moves up, because TotalEarned
// only ever grows.
package rank

import (
	"context"
	"fmt"

	"github.com/coinverse/CoinverseBot_Go/internal/catalog"
	"github.com/coinverse/CoinverseBot_Go/internal/domain"
	"github.com/coinverse/CoinverseBot_Go/internal/event"
	"github.com/coinverse/CoinverseBot_Go/internal/logger"
	"github.com/coinverse/CoinverseBot_Go/internal/metrics"
	"github.com/coinverse/CoinverseBot_Go/internal/notify"
	"github.com/coinverse/CoinverseBot_Go/internal/repository"
)

// LevelFor returns the highest tier level whose threshold is <= totalEarned.
// Tiers with a nil threshold are skipped; they cannot be reached by earning.
func LevelFor(totalEarned int64, tiers []domain.RankTier) int {
	level := 0
	for _, t := range tiers {
		if t.Threshold == nil {
			continue
		}
		if totalEarned >= *t.Threshold {
			level = t.Level
		}
	}
	return level
}

// Service evaluates rank promotions after earnings change.
type Service interface {
	// Evaluate re-derives the user's rank from TotalEarned and persists a
	// promotion when the derived level exceeds the stored one. Returns the
	// tier promoted to, or nil when nothing changed.
	Evaluate(ctx context.Context, user *domain.User) (*domain.RankTier, error)
}

type service struct {
	repo      repository.User
	catalog   *catalog.Catalog
	publisher *event.ResilientPublisher
	notifier  notify.Notifier
}

// NewService creates a new rank service
func NewService(repo repository.User, cat *catalog.Catalog, publisher *event.ResilientPublisher, notifier notify.Notifier) Service {
	return &service{
		repo:      repo,
		catalog:   cat,
		publisher: publisher,
		notifier:  notifier,
	}
}

func (s *service) Evaluate(ctx context.Context, user *domain.User) (*domain.RankTier, error) {
	log := logger.FromContext(ctx)

	newLevel := LevelFor(user.TotalEarned, s.catalog.Ranks())
	if newLevel <= user.RankLevel {
		return nil, nil
	}

	if err := s.repo.UpdateRankLevel(ctx, user.ID, newLevel); err != nil {
		return nil, fmt.Errorf("failed to update rank level: %w", err)
	}

	tier, ok := s.catalog.Rank(newLevel)
	if !ok {
		// LevelFor only returns levels present in the ladder.
		return nil, fmt.Errorf("rank level %d missing from ladder", newLevel)
	}

	oldLevel := user.RankLevel
	user.RankLevel = newLevel

	log.Info("User promoted",
		"userID", user.ID,
		"oldLevel", oldLevel,
		"newLevel", newLevel,
		"rank", tier.Name)
	metrics.RankPromotions.Inc()

	s.publisher.PublishWithRetry(ctx, event.Event{
		Version: "1.0",
		Type:    event.RankPromoted,
		Payload: event.RankPromotedPayloadV1{
			UserID:   user.ID,
			OldLevel: oldLevel,
			NewLevel: newLevel,
			RankName: tier.Name,
		},
	})
	notify.Dispatch(ctx, s.notifier, user.ID,
		fmt.Sprintf("Rank up! You are now %s (level %d)", tier.Name, newLevel))

	return &tier, nil
}
