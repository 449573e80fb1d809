// Package quest tracks repeatable daily quests. Progress rows reset lazily on
// the first bump of a new day, and each quest's reward is granted exactly once
// per day, on the bump that crosses the target.
package quest

import (
	"context"
	"fmt"
	"time"

	"github.com/coinverse/CoinverseBot_Go/internal/catalog"
	"github.com/coinverse/CoinverseBot_Go/internal/concurrency"
	"github.com/coinverse/CoinverseBot_Go/internal/domain"
	"github.com/coinverse/CoinverseBot_Go/internal/event"
	"github.com/coinverse/CoinverseBot_Go/internal/logger"
	"github.com/coinverse/CoinverseBot_Go/internal/repository"
	"github.com/coinverse/CoinverseBot_Go/internal/season"
)

// Status is one quest with the user's progress toward it today.
type Status struct {
	Quest     domain.Quest `json:"quest"`
	Progress  int          `json:"progress"`
	Completed bool         `json:"completed"`
}

// Service defines the interface for quest operations
type Service interface {
	// Bump advances every quest tracking the given counter by n.
	Bump(ctx context.Context, userID, counter string, n int) error
	List(ctx context.Context, userID string) ([]Status, error)
}

type service struct {
	repo      repository.Quest
	catalog   *catalog.Catalog
	season    season.Service
	locks     *concurrency.LockManager
	publisher *event.ResilientPublisher
	now       func() time.Time
}

// NewService creates a new quest service
func NewService(repo repository.Quest, cat *catalog.Catalog, seasonSvc season.Service, locks *concurrency.LockManager, publisher *event.ResilientPublisher) Service {
	return &service{
		repo:      repo,
		catalog:   cat,
		season:    seasonSvc,
		locks:     locks,
		publisher: publisher,
		now:       time.Now,
	}
}

// lockKey keeps quest bumps on a separate lock from the balance flows so that
// a bump can call into the season pass (which locks the plain user key)
// without nesting the same lock.
func lockKey(userID string) string {
	return "quest:" + userID
}

func (s *service) Bump(ctx context.Context, userID, counter string, n int) error {
	log := logger.FromContext(ctx)

	if n <= 0 {
		return fmt.Errorf("%w: bump must be positive", domain.ErrInvalidInput)
	}

	for _, q := range s.catalog.QuestsForCounter(counter) {
		var crossed bool
		err := s.locks.WithLock(lockKey(userID), func() error {
			today := s.now()

			p, err := s.repo.GetProgress(ctx, userID, q.ID)
			if err != nil {
				return fmt.Errorf("failed to get quest progress: %w", err)
			}
			if p == nil {
				p = &domain.QuestProgress{UserID: userID, QuestID: q.ID, ResetDate: today}
			} else if !domain.SameDate(p.ResetDate, today) {
				p.Progress = 0
				p.ResetDate = today
			}

			alreadyRewarded := p.CompletedToday(today)
			p.Progress += n
			if p.Progress >= q.Target && !alreadyRewarded {
				t := today
				p.CompletedOn = &t
				crossed = true
			}

			return s.repo.UpsertProgress(ctx, *p)
		})
		if err != nil {
			return err
		}

		if crossed {
			log.Info("Quest completed",
				"userID", userID,
				"questID", q.ID,
				"rewardXP", q.RewardXP)

			// The completion flag persisted above, so a failed XP grant is not
			// retried. Losing the reward beats granting it twice.
			if _, err := s.season.AddXP(ctx, userID, q.RewardXP, "quest:"+q.ID); err != nil {
				log.Error("Failed to grant quest reward", "userID", userID, "questID", q.ID, "error", err)
			}

			s.publisher.PublishWithRetry(ctx, event.Event{
				Version: "1.0",
				Type:    event.QuestCompleted,
				Payload: event.QuestCompletedPayloadV1{
					UserID:   userID,
					QuestID:  q.ID,
					RewardXP: q.RewardXP,
				},
			})
		}
	}
	return nil
}

func (s *service) List(ctx context.Context, userID string) ([]Status, error) {
	rows, err := s.repo.ListProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quest progress: %w", err)
	}

	byQuest := make(map[string]domain.QuestProgress, len(rows))
	for _, p := range rows {
		byQuest[p.QuestID] = p
	}

	today := s.now()
	statuses := make([]Status, 0)
	for _, q := range s.catalog.Quests() {
		st := Status{Quest: q}
		if p, ok := byQuest[q.ID]; ok && domain.SameDate(p.ResetDate, today) {
			st.Progress = p.Progress
			st.Completed = p.CompletedToday(today)
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
}

// RegisterSubscribers wires the quest counters to the domain events that feed
// them. The QuestCompleted event is informational for other subscribers; quest
// completion itself is decided inside Bump.
func RegisterSubscribers(bus event.Bus, svc Service) {
	bus.Subscribe(event.ContainerOpened, func(ctx context.Context, e event.Event) error {
		p, ok := e.Payload.(event.ContainerOpenedPayloadV1)
		if !ok {
			return fmt.Errorf("unexpected payload type for %s", e.Type)
		}
		return svc.Bump(ctx, p.UserID, domain.QuestCounterOpenContainers, 1)
	})
	bus.Subscribe(event.BetSettled, func(ctx context.Context, e event.Event) error {
		p, ok := e.Payload.(event.BetSettledPayloadV1)
		if !ok {
			return fmt.Errorf("unexpected payload type for %s", e.Type)
		}
		return svc.Bump(ctx, p.UserID, domain.QuestCounterPlaceBets, 1)
	})
	bus.Subscribe(event.ItemCrafted, func(ctx context.Context, e event.Event) error {
		p, ok := e.Payload.(event.ItemCraftedPayloadV1)
		if !ok {
			return fmt.Errorf("unexpected payload type for %s", e.Type)
		}
		return svc.Bump(ctx, p.UserID, domain.QuestCounterCraftItems, 1)
	})
}
