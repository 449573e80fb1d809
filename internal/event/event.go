package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/coinverse/CoinverseBot_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Event bus types for the economy engine. Payloads are the typed structs
// below; subscribers decode with a type assertion.
const (
	UserRegistered  Type = domain.EventTypeUserRegistered
	RankPromoted    Type = domain.EventTypeRankPromoted
	SeasonLevelUp   Type = domain.EventTypeSeasonLevelUp
	ContainerOpened Type = domain.EventTypeContainerOpened
	BetSettled      Type = domain.EventTypeBetSettled
	QuestCompleted  Type = domain.EventTypeQuestCompleted
	ItemCrafted     Type = domain.EventTypeItemCrafted
	BonusClaimed    Type = domain.EventTypeBonusClaimed
)

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// ContainerOpenedPayloadV1 is the typed payload for container-open events.
type ContainerOpenedPayloadV1 struct {
	UserID      string `json:"user_id"`
	ContainerID string `json:"container_id"`
	PrizeType   string `json:"prize_type"` // empty when the draw landed in the gap
	ItemID      string `json:"item_id,omitempty"`
	Amount      int64  `json:"amount,omitempty"`
}

// RankPromotedPayloadV1 is the typed payload for rank promotions.
type RankPromotedPayloadV1 struct {
	UserID   string `json:"user_id"`
	OldLevel int    `json:"old_level"`
	NewLevel int    `json:"new_level"`
	RankName string `json:"rank_name"`
}

// SeasonLevelUpPayloadV1 is the typed payload for season level-ups.
type SeasonLevelUpPayloadV1 struct {
	UserID       string `json:"user_id"`
	NewLevel     int    `json:"new_level"`
	LevelsGained int    `json:"levels_gained"`
}

// QuestCompletedPayloadV1 is the typed payload for quest completions.
type QuestCompletedPayloadV1 struct {
	UserID   string `json:"user_id"`
	QuestID  string `json:"quest_id"`
	RewardXP int64  `json:"reward_xp"`
}

// ItemCraftedPayloadV1 is the typed payload for crafted items.
type ItemCraftedPayloadV1 struct {
	UserID   string `json:"user_id"`
	RecipeID string `json:"recipe_id"`
	ItemID   string `json:"item_id"`
}

// BetSettledPayloadV1 is the typed payload for settled bets.
type BetSettledPayloadV1 struct {
	UserID  string `json:"user_id"`
	Game    string `json:"game"`
	Bet     int64  `json:"bet"`
	Verdict string `json:"verdict"`
	Payout  int64  `json:"payout"`
}

// Handler processes a published event.
type Handler func(ctx context.Context, event Event) error

// Bus is the pub/sub interface services publish through.
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously;
// callers that must not block on subscribers go through the ResilientPublisher.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d handler error(s) for %s: %v", len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe registers a handler for an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
