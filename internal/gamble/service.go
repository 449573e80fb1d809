// Package gamble settles the three bet games: dice, slots and the card duel.
// The stake is debited before the game rolls; wins credit the payout back as
// earned coins, and a tie refunds the stake without counting it as earned.
package gamble

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/coinverse/CoinverseBot_Go/internal/catalog"
	"github.com/coinverse/CoinverseBot_Go/internal/concurrency"
	"github.com/coinverse/CoinverseBot_Go/internal/config"
	"github.com/coinverse/CoinverseBot_Go/internal/domain"
	"github.com/coinverse/CoinverseBot_Go/internal/economy"
	"github.com/coinverse/CoinverseBot_Go/internal/event"
	"github.com/coinverse/CoinverseBot_Go/internal/logger"
	"github.com/coinverse/CoinverseBot_Go/internal/metrics"
	"github.com/coinverse/CoinverseBot_Go/internal/repository"
)

// Payout multipliers applied to the stake.
const (
	WinMultiplier         = 2
	SlotsTripleMultiplier = 5
)

const slotsReels = 3

// slotsSymbols are the reel faces. Three reels, uniform draw per reel.
var slotsSymbols = []string{"cherry", "lemon", "bell", "seven"}

// Service defines the interface for bet operations
type Service interface {
	PlaceBet(ctx context.Context, userID, game string, amount int64) (*domain.BetResult, error)
}

type service struct {
	economy   economy.Service
	inventory repository.Inventory
	catalog   *catalog.Catalog
	locks     *concurrency.LockManager
	publisher *event.ResilientPublisher
	cfg       config.EconomyConfig
	rnd       func() float64 // For rolling RNG
}

// NewService creates a new gamble service
func NewService(eco economy.Service, inventory repository.Inventory, cat *catalog.Catalog, locks *concurrency.LockManager, publisher *event.ResilientPublisher, cfg config.EconomyConfig) Service {
	return &service{
		economy:   eco,
		inventory: inventory,
		catalog:   cat,
		locks:     locks,
		publisher: publisher,
		cfg:       cfg,
		rnd:       rand.Float64,
	}
}

func (s *service) PlaceBet(ctx context.Context, userID, game string, amount int64) (*domain.BetResult, error) {
	log := logger.FromContext(ctx)

	if amount < s.cfg.MinBet {
		return nil, fmt.Errorf("%w: minimum bet is %d", domain.ErrBetBelowMinimum, s.cfg.MinBet)
	}

	var result *domain.BetResult
	err := s.locks.WithLock(userID, func() error {
		if _, err := s.economy.ApplyDelta(ctx, userID, repository.BalanceDelta{Coins: -amount}); err != nil {
			return err
		}

		var err error
		switch game {
		case domain.GameDice:
			result = s.playDice(amount)
		case domain.GameSlots:
			result = s.playSlots(amount)
		case domain.GameDuel:
			result, err = s.playDuel(ctx, userID, amount)
		default:
			err = fmt.Errorf("%w: %s", domain.ErrUnknownGame, game)
		}
		if err != nil {
			// The game never rolled; give the stake back.
			if _, refundErr := s.economy.ApplyDelta(ctx, userID, repository.BalanceDelta{Coins: amount}); refundErr != nil {
				log.Error("Failed to refund stake", "userID", userID, "error", refundErr)
			}
			return err
		}

		if result.Payout > 0 {
			delta := repository.BalanceDelta{Coins: result.Payout}
			// A push just returns the stake; only winnings count as earned.
			delta.CountEarned = result.Verdict == domain.BetWon
			if _, err := s.economy.ApplyDelta(ctx, userID, delta); err != nil {
				return fmt.Errorf("failed to credit payout: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Bet settled",
		"userID", userID,
		"game", game,
		"bet", amount,
		"verdict", result.Verdict,
		"payout", result.Payout)
	metrics.BetsSettled.WithLabelValues(game, result.Verdict).Inc()

	s.publisher.PublishWithRetry(ctx, event.Event{
		Version: "1.0",
		Type:    event.BetSettled,
		Payload: event.BetSettledPayloadV1{
			UserID:  userID,
			Game:    game,
			Bet:     amount,
			Verdict: result.Verdict,
			Payout:  result.Payout,
		},
	})

	return result, nil
}

// roll returns a uniform integer in [1, n].
func (s *service) roll(n int) int {
	return int(s.rnd()*float64(n)) + 1
}

func (s *service) playDice(amount int64) *domain.BetResult {
	player := s.roll(6)
	house := s.roll(6)

	result := &domain.BetResult{
		Game:   domain.GameDice,
		Bet:    amount,
		Detail: fmt.Sprintf("you rolled %d, house rolled %d", player, house),
	}
	switch {
	case player > house:
		result.Verdict = domain.BetWon
		result.Payout = amount * WinMultiplier
	case player == house:
		result.Verdict = domain.BetPush
		result.Payout = amount
	default:
		result.Verdict = domain.BetLost
	}
	return result
}

func (s *service) playSlots(amount int64) *domain.BetResult {
	reels := make([]string, slotsReels)
	for i := range reels {
		reels[i] = slotsSymbols[s.roll(len(slotsSymbols))-1]
	}

	result := &domain.BetResult{
		Game:    domain.GameSlots,
		Bet:     amount,
		Verdict: domain.BetLost,
		Detail:  fmt.Sprintf("%s | %s | %s", reels[0], reels[1], reels[2]),
	}
	switch {
	case reels[0] == reels[1] && reels[1] == reels[2]:
		result.Verdict = domain.BetWon
		result.Payout = amount * SlotsTripleMultiplier
	case reels[0] == reels[1] || reels[1] == reels[2] || reels[0] == reels[2]:
		result.Verdict = domain.BetWon
		result.Payout = amount * WinMultiplier
	}
	return result
}

// playDuel pits the player's strongest card against a random card from the
// catalog.
func (s *service) playDuel(ctx context.Context, userID string, amount int64) (*domain.BetResult, error) {
	best, err := s.strongestCard(ctx, userID)
	if err != nil {
		return nil, err
	}
	if best == nil {
		return nil, fmt.Errorf("%w: no cards to duel with", domain.ErrInsufficientQuantity)
	}

	cards := s.cards()
	house := cards[s.roll(len(cards))-1]

	result := &domain.BetResult{
		Game:   domain.GameDuel,
		Bet:    amount,
		Detail: fmt.Sprintf("%s (%d) vs %s (%d)", best.Name, best.Power, house.Name, house.Power),
	}
	switch {
	case best.Power > house.Power:
		result.Verdict = domain.BetWon
		result.Payout = amount * WinMultiplier
	case best.Power == house.Power:
		result.Verdict = domain.BetPush
		result.Payout = amount
	default:
		result.Verdict = domain.BetLost
	}
	return result, nil
}

func (s *service) strongestCard(ctx context.Context, userID string) (*domain.Item, error) {
	entries, err := s.inventory.GetInventory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}

	var best *domain.Item
	for _, e := range entries {
		item, ok := s.catalog.Item(e.ItemID)
		if !ok || item.Type != domain.ItemTypeCard {
			continue
		}
		if best == nil || item.Power > best.Power {
			it := item
			best = &it
		}
	}
	return best, nil
}

func (s *service) cards() []domain.Item {
	var cards []domain.Item
	for _, it := range s.catalog.Items() {
		if it.Type == domain.ItemTypeCard {
			cards = append(cards, it)
		}
	}
	return cards
}
