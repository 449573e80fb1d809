// Package lootbox implements container opening: the opening cost is consumed
// first, then a weighted draw over the container's prize table decides the
// outcome.
package lootbox

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/coinverse/CoinverseBot_Go/internal/catalog"
	"github.com/coinverse/CoinverseBot_Go/internal/concurrency"
	"github.com/coinverse/CoinverseBot_Go/internal/domain"
	"github.com/coinverse/CoinverseBot_Go/internal/economy"
	"github.com/coinverse/CoinverseBot_Go/internal/event"
	"github.com/coinverse/CoinverseBot_Go/internal/logger"
	"github.com/coinverse/CoinverseBot_Go/internal/metrics"
	"github.com/coinverse/CoinverseBot_Go/internal/repository"
)

// OpenResult contains the result of opening a container
type OpenResult struct {
	ContainerID string `json:"container_id"`
	Empty       bool   `json:"empty"`
	PrizeType   string `json:"prize_type,omitempty"`
	Amount      int64  `json:"amount,omitempty"`
	ItemID      string `json:"item_id,omitempty"`
	NewCoins    int64  `json:"new_coins"`
	NewStars    int64  `json:"new_stars"`
}

// Service defines the interface for container operations
type Service interface {
	// Open consumes the container's cost and performs the prize draw. The
	// cost stays consumed even when the draw lands in a prize table's
	// undeclared weight space and yields nothing.
	Open(ctx context.Context, userID, containerID string) (*OpenResult, error)
	ListContainers(ctx context.Context) []domain.Container
}

type service struct {
	economy   economy.Service
	inventory repository.Inventory
	users     repository.User
	catalog   *catalog.Catalog
	locks     *concurrency.LockManager
	publisher *event.ResilientPublisher
	rnd       func() float64 // For rolling RNG
}

// NewService creates a new lootbox service
func NewService(eco economy.Service, inventory repository.Inventory, users repository.User, cat *catalog.Catalog, locks *concurrency.LockManager, publisher *event.ResilientPublisher) Service {
	return &service{
		economy:   eco,
		inventory: inventory,
		users:     users,
		catalog:   cat,
		locks:     locks,
		publisher: publisher,
		rnd:       rand.Float64,
	}
}

func (s *service) ListContainers(ctx context.Context) []domain.Container {
	return s.catalog.Containers()
}

func (s *service) Open(ctx context.Context, userID, containerID string) (*OpenResult, error) {
	log := logger.FromContext(ctx)

	container, ok := s.catalog.Container(containerID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrContainerNotFound, containerID)
	}

	var result *OpenResult
	err := s.locks.WithLock(userID, func() error {
		if err := s.consumeCost(ctx, userID, &container); err != nil {
			return err
		}

		// Uniform sample over 1..100; the first prize whose cumulative weight
		// reaches the sample wins.
		sample := int(s.rnd()*100) + 1
		prize, won := drawPrize(container.Prizes, sample)

		result = &OpenResult{ContainerID: containerID, Empty: !won}
		if won {
			if err := s.materialize(ctx, userID, prize, result); err != nil {
				return err
			}
		}

		user, err := s.users.GetUserByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		if user != nil {
			result.NewCoins = user.Coins
			result.NewStars = user.Stars
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Container opened",
		"userID", userID,
		"containerID", containerID,
		"empty", result.Empty,
		"prizeType", result.PrizeType)
	metrics.ContainersOpened.WithLabelValues(containerID).Inc()

	s.publisher.PublishWithRetry(ctx, event.Event{
		Version: "1.0",
		Type:    event.ContainerOpened,
		Payload: event.ContainerOpenedPayloadV1{
			UserID:      userID,
			ContainerID: containerID,
			PrizeType:   result.PrizeType,
			ItemID:      result.ItemID,
			Amount:      result.Amount,
		},
	})

	return result, nil
}

// consumeCost debits the opening cost: one key item, or a currency amount.
func (s *service) consumeCost(ctx context.Context, userID string, container *domain.Container) error {
	if keyItem, ok := container.KeyCost(); ok {
		if err := s.inventory.RemoveItem(ctx, userID, keyItem, 1); err != nil {
			if errors.Is(err, domain.ErrInsufficientQuantity) {
				return fmt.Errorf("%w: %s", domain.ErrMissingKeyItem, keyItem)
			}
			return err
		}
		return nil
	}

	delta := repository.BalanceDelta{}
	if domain.Currency(container.CostCurrency) == domain.CurrencyStars {
		delta.Stars = -container.Cost
	} else {
		delta.Coins = -container.Cost
	}
	if _, err := s.economy.ApplyDelta(ctx, userID, delta); err != nil {
		return err
	}
	return nil
}

// drawPrize walks the prize table accumulating weights. Samples beyond the
// declared weight sum return no prize.
func drawPrize(prizes []domain.Prize, sample int) (domain.Prize, bool) {
	cumulative := 0
	for _, p := range prizes {
		cumulative += p.Weight
		if sample <= cumulative {
			return p, true
		}
	}
	return domain.Prize{}, false
}

func (s *service) materialize(ctx context.Context, userID string, prize domain.Prize, result *OpenResult) error {
	result.PrizeType = prize.Type

	switch prize.Type {
	case domain.PrizeCoins, domain.PrizeStars:
		amount := prize.Min
		if prize.Max > prize.Min {
			amount += int64(s.rnd() * float64(prize.Max-prize.Min+1))
			if amount > prize.Max {
				amount = prize.Max
			}
		}
		result.Amount = amount

		delta := repository.BalanceDelta{}
		if prize.Type == domain.PrizeCoins {
			delta.Coins = amount
			delta.CountEarned = true
		} else {
			delta.Stars = amount
		}
		if _, err := s.economy.ApplyDelta(ctx, userID, delta); err != nil {
			return fmt.Errorf("failed to credit prize: %w", err)
		}
	case domain.PrizeItem:
		result.ItemID = prize.ItemID
		if err := s.inventory.AddItem(ctx, userID, prize.ItemID, 1); err != nil {
			return fmt.Errorf("failed to grant prize item: %w", err)
		}
	default:
		return fmt.Errorf("%w: unknown prize type %q", domain.ErrInvalidInput, prize.Type)
	}
	return nil
}
