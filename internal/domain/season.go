package domain

// Reward is a grantable reward: a currency amount or a single item.
type Reward struct {
	Type   string `json:"type"`
	Amount int64  `json:"amount,omitempty"`
	ItemID string `json:"item_id,omitempty"`
}

// SeasonLevel defines one level of the season pass. XPRequired is the XP that
// must be accumulated at this level to advance past it. PremiumReward is only
// granted to users holding the premium track.
type SeasonLevel struct {
	Level         int     `json:"level"`
	XPRequired    int64   `json:"xp_required"`
	FreeReward    Reward  `json:"free_reward"`
	PremiumReward *Reward `json:"premium_reward,omitempty"`
}

// SeasonProgress is the outcome of applying XP to a user.
type SeasonProgress struct {
	Level        int      `json:"level"`
	XP           int64    `json:"xp"`
	LevelsGained int      `json:"levels_gained"`
	Rewards      []Reward `json:"rewards,omitempty"`
	ReachedCap   bool     `json:"reached_cap"`
}
