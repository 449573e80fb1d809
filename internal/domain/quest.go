package domain

import "time"

// Quest counter keys, bumped by the services that perform the counted action.
const (
	QuestCounterOpenContainers = "open_containers"
	QuestCounterPlaceBets      = "place_bets"
	QuestCounterCraftItems     = "craft_items"
)

// Quest is a repeatable daily task definition from the catalog.
type Quest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Counter  string `json:"counter"`
	Target   int    `json:"target"`
	RewardXP int64  `json:"reward_xp"`
}

// QuestProgress is the per-(user, quest) progress row. Progress resets lazily
// whenever ResetDate differs from the current date. CompletedOn marks the day
// the reward was granted; it guards against double-granting within a day.
type QuestProgress struct {
	UserID      string     `json:"user_id"`
	QuestID     string     `json:"quest_id"`
	Progress    int        `json:"progress"`
	ResetDate   time.Time  `json:"reset_date"`
	CompletedOn *time.Time `json:"completed_on,omitempty"`
}

// CompletedToday reports whether the reward was already granted on day.
func (p *QuestProgress) CompletedToday(day time.Time) bool {
	return p.CompletedOn != nil && SameDate(*p.CompletedOn, day)
}

// SameDate reports whether two instants fall on the same calendar date (UTC).
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
