package domain

import "time"

// Currency identifies one of the two ledger currencies.
type Currency string

const (
	CurrencyCoins Currency = "coins"
	CurrencyStars Currency = "stars"
)

// Valid reports whether c is a known currency.
func (c Currency) Valid() bool {
	return c == CurrencyCoins || c == CurrencyStars
}

// User is the per-user ledger record. RankLevel is always the highest tier
// whose threshold is <= TotalEarned; TotalEarned never decreases.
type User struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Coins       int64      `json:"coins"`
	Stars       int64      `json:"stars"`
	TotalEarned int64      `json:"total_earned"`
	RankLevel   int        `json:"rank_level"`
	SeasonLevel int        `json:"season_level"`
	SeasonXP    int64      `json:"season_xp"`
	DailyStreak int        `json:"daily_streak"`
	LastBonusAt *time.Time `json:"last_bonus_at,omitempty"`
	ReferrerID  *string    `json:"referrer_id,omitempty"`
	HasPremium  bool       `json:"has_premium"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Balance returns the user's balance in the given currency.
func (u *User) Balance(c Currency) int64 {
	if c == CurrencyStars {
		return u.Stars
	}
	return u.Coins
}

// InventoryEntry is the (user, item) ownership relation. Quantity is never
// negative.
type InventoryEntry struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}
