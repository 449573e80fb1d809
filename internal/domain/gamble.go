package domain

// Game identifiers accepted by the bet endpoint.
const (
	GameDice  = "dice"
	GameSlots = "slots"
	GameDuel  = "duel"
)

// Bet settlement verdicts.
const (
	BetWon  = "won"
	BetLost = "lost"
	BetPush = "push"
)

// BetResult describes a settled bet. Payout is the amount credited back to the
// user (stake included); zero on a loss.
type BetResult struct {
	Game    string `json:"game"`
	Bet     int64  `json:"bet"`
	Verdict string `json:"verdict"`
	Payout  int64  `json:"payout"`
	Detail  string `json:"detail,omitempty"`
}
