// Package user handles registration, referral bonuses and the read-side
// views: profile, inventory and the leaderboard.
package user

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/coinverse/CoinverseBot_Go/internal/catalog"
	"github.com/coinverse/CoinverseBot_Go/internal/concurrency"
	"github.com/coinverse/CoinverseBot_Go/internal/config"
	"github.com/coinverse/CoinverseBot_Go/internal/domain"
	"github.com/coinverse/CoinverseBot_Go/internal/economy"
	"github.com/coinverse/CoinverseBot_Go/internal/event"
	"github.com/coinverse/CoinverseBot_Go/internal/logger"
	"github.com/coinverse/CoinverseBot_Go/internal/notify"
	"github.com/coinverse/CoinverseBot_Go/internal/rank"
	"github.com/coinverse/CoinverseBot_Go/internal/repository"
)

// Read cache bounds. Profile reads tolerate slightly stale balances; every
// write path purges the entry.
const (
	cacheSize = 1024
	cacheTTL  = 30 * time.Second
)

// RegisterResult contains the result of a registration
type RegisterResult struct {
	User       *domain.User `json:"user"`
	StartCoins int64        `json:"start_coins"`
	Referred   bool         `json:"referred"`
}

// Profile is the user-facing account summary.
type Profile struct {
	UserID       string  `json:"user_id"`
	Username     string  `json:"username"`
	Coins        int64   `json:"coins"`
	Stars        int64   `json:"stars"`
	TotalEarned  int64   `json:"total_earned"`
	RankLevel    int     `json:"rank_level"`
	RankName     string  `json:"rank_name"`
	RankProgress float64 `json:"rank_progress"` // fraction toward the next tier, 1.0 at the top
	SeasonLevel  int     `json:"season_level"`
	SeasonXP     int64   `json:"season_xp"`
	DailyStreak  int     `json:"daily_streak"`
	HasPremium   bool    `json:"has_premium"`
}

// InventoryView groups held items by type, cards strongest rarity first.
type InventoryView struct {
	Cards []InventoryItem `json:"cards"`
	Items []InventoryItem `json:"items"`
}

// InventoryItem is one inventory line joined with its catalog definition.
type InventoryItem struct {
	Item     domain.Item `json:"item"`
	Quantity int         `json:"quantity"`
}

// ReferralInfo carries what a client needs to render a referral invite.
type ReferralInfo struct {
	Code          string `json:"code"`
	ReferredBonus int64  `json:"referred_bonus"`
	ReferralBonus int64  `json:"referral_bonus"`
}

// LeaderboardEntry is one row of the total-earned leaderboard.
type LeaderboardEntry struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	TotalEarned int64  `json:"total_earned"`
	RankLevel   int    `json:"rank_level"`
	RankName    string `json:"rank_name"`
}

// Service defines the interface for user operations
type Service interface {
	// Register creates the user's ledger record. A valid non-self referrer
	// raises the starting balance and credits the referrer once.
	Register(ctx context.Context, userID, username string, referrerID *string) (*RegisterResult, error)

	Profile(ctx context.Context, userID string) (*Profile, error)
	Inventory(ctx context.Context, userID string) (*InventoryView, error)
	ReferralInfo(ctx context.Context, userID string) (*ReferralInfo, error)
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)

	// InvalidateCache drops the cached record for userID. Registration calls
	// it after crediting a referrer; other write paths rely on the cache TTL,
	// so a profile read may lag a balance mutation by up to cacheTTL.
	InvalidateCache(userID string)
}

type service struct {
	repo      repository.User
	inventory repository.Inventory
	economy   economy.Service
	catalog   *catalog.Catalog
	locks     *concurrency.LockManager
	publisher *event.ResilientPublisher
	notifier  notify.Notifier
	cfg       config.EconomyConfig
	cache     *expirable.LRU[string, *domain.User]
}

// NewService creates a new user service
func NewService(repo repository.User, inventory repository.Inventory, eco economy.Service, cat *catalog.Catalog, locks *concurrency.LockManager, publisher *event.ResilientPublisher, notifier notify.Notifier, cfg config.EconomyConfig) Service {
	return &service{
		repo:      repo,
		inventory: inventory,
		economy:   eco,
		catalog:   cat,
		locks:     locks,
		publisher: publisher,
		notifier:  notifier,
		cfg:       cfg,
		cache:     expirable.NewLRU[string, *domain.User](cacheSize, nil, cacheTTL),
	}
}

func (s *service) Register(ctx context.Context, userID, username string, referrerID *string) (*RegisterResult, error) {
	log := logger.FromContext(ctx)

	var result *RegisterResult
	err := s.locks.WithLock(userID, func() error {
		referred := false
		if referrerID != nil {
			if *referrerID == userID {
				return fmt.Errorf("%w: cannot refer yourself", domain.ErrInvalidInput)
			}
			referrer, err := s.repo.GetUserByID(ctx, *referrerID)
			if err != nil {
				return fmt.Errorf("failed to get referrer: %w", err)
			}
			// An unknown referrer is ignored rather than rejected; the join
			// still succeeds at the base starting balance.
			referred = referrer != nil
		}

		start := s.cfg.StartCoins
		if referred {
			start = s.cfg.ReferredBonus
		}

		now := time.Now()
		u := &domain.User{
			ID:          userID,
			Username:    username,
			Coins:       start,
			TotalEarned: start,
			RankLevel:   rank.LevelFor(start, s.catalog.Ranks()),
			SeasonLevel: 1,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if referred {
			u.ReferrerID = referrerID
		}

		// CreateUser fails on duplicates, so the referrer bonus below cannot
		// be granted twice for the same new user.
		if err := s.repo.CreateUser(ctx, u); err != nil {
			return err
		}

		result = &RegisterResult{User: u, StartCoins: start, Referred: referred}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("User registered",
		"userID", userID,
		"username", username,
		"referred", result.Referred)

	if result.Referred {
		if _, err := s.economy.ApplyDelta(ctx, *referrerID, repository.BalanceDelta{Coins: s.cfg.ReferralBonus, CountEarned: true}); err != nil {
			log.Error("Failed to credit referrer", "referrerID", *referrerID, "error", err)
		} else {
			s.InvalidateCache(*referrerID)
			notify.Dispatch(ctx, s.notifier, *referrerID,
				fmt.Sprintf("%s joined through your link: +%d coins", username, s.cfg.ReferralBonus))
		}
	}

	s.publisher.PublishWithRetry(ctx, event.Event{
		Version: "1.0",
		Type:    event.UserRegistered,
		Payload: map[string]interface{}{
			"user_id":  userID,
			"username": username,
			"referred": result.Referred,
		},
	})

	return result, nil
}

func (s *service) getUser(ctx context.Context, userID string) (*domain.User, error) {
	if u, ok := s.cache.Get(userID); ok {
		return u, nil
	}
	u, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	s.cache.Add(userID, u)
	return u, nil
}

func (s *service) Profile(ctx context.Context, userID string) (*Profile, error) {
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := &Profile{
		UserID:       u.ID,
		Username:     u.Username,
		Coins:        u.Coins,
		Stars:        u.Stars,
		TotalEarned:  u.TotalEarned,
		RankLevel:    u.RankLevel,
		RankProgress: 1,
		SeasonLevel:  u.SeasonLevel,
		SeasonXP:     u.SeasonXP,
		DailyStreak:  u.DailyStreak,
		HasPremium:   u.HasPremium,
	}
	if tier, ok := s.catalog.Rank(u.RankLevel); ok {
		p.RankName = tier.Name
	}
	if next, ok := s.catalog.Rank(u.RankLevel + 1); ok && next.Threshold != nil {
		cur := int64(0)
		if tier, ok := s.catalog.Rank(u.RankLevel); ok && tier.Threshold != nil {
			cur = *tier.Threshold
		}
		if span := *next.Threshold - cur; span > 0 {
			p.RankProgress = float64(u.TotalEarned-cur) / float64(span)
		}
	}
	return p, nil
}

func (s *service) Inventory(ctx context.Context, userID string) (*InventoryView, error) {
	if _, err := s.getUser(ctx, userID); err != nil {
		return nil, err
	}

	entries, err := s.inventory.GetInventory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}

	view := &InventoryView{Cards: []InventoryItem{}, Items: []InventoryItem{}}
	for _, e := range entries {
		item, ok := s.catalog.Item(e.ItemID)
		if !ok {
			continue
		}
		line := InventoryItem{Item: item, Quantity: e.Quantity}
		if item.Type == domain.ItemTypeCard {
			view.Cards = append(view.Cards, line)
		} else {
			view.Items = append(view.Items, line)
		}
	}
	sort.SliceStable(view.Cards, func(i, j int) bool {
		return domain.RarityRank(view.Cards[i].Item.Rarity) > domain.RarityRank(view.Cards[j].Item.Rarity)
	})
	return view, nil
}

func (s *service) ReferralInfo(ctx context.Context, userID string) (*ReferralInfo, error) {
	if _, err := s.getUser(ctx, userID); err != nil {
		return nil, err
	}
	return &ReferralInfo{
		Code:          userID,
		ReferredBonus: s.cfg.ReferredBonus,
		ReferralBonus: s.cfg.ReferralBonus,
	}, nil
}

func (s *service) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	users, err := s.repo.TopByTotalEarned(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for _, u := range users {
		e := LeaderboardEntry{
			UserID:      u.ID,
			Username:    u.Username,
			TotalEarned: u.TotalEarned,
			RankLevel:   u.RankLevel,
		}
		if tier, ok := s.catalog.Rank(u.RankLevel); ok {
			e.RankName = tier.Name
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (s *service) InvalidateCache(userID string) {
	s.cache.Remove(userID)
}
