package domain

// Item type constants
const (
	ItemTypeCard = "card"
	ItemTypeItem = "item"
)

// Item is a static item definition from the catalog.
type Item struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Rarity string `json:"rarity"`
	Type   string `json:"type"`
	Power  int    `json:"power"`
}

// Rarity display order, weakest first. Used when rendering inventories.
var RarityOrder = []string{"common", "rare", "epic", "legendary", "mythic", "unique"}

// RarityRank returns the sort position of a rarity, unknown rarities last.
func RarityRank(rarity string) int {
	for i, r := range RarityOrder {
		if r == rarity {
			return i
		}
	}
	return len(RarityOrder)
}
