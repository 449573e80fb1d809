package domain

// RankTier is one rung of the rank ladder. Threshold is the lifetime earned
// total required to hold the tier; a nil threshold marks a tier that cannot be
// reached by earning (reserved for manual grants).
type RankTier struct {
	Level     int    `json:"level"`
	Threshold *int64 `json:"threshold"`
	Name      string `json:"name"`
}
