package domain

// Prize outcome types
const (
	PrizeCoins = "coins"
	PrizeStars = "stars"
	PrizeItem  = "item"
)

// Prize is one entry of a container's prize table. Weight is a percentage
// point share of the 1..100 draw space.
type Prize struct {
	Type   string `json:"type"`
	Min    int64  `json:"min,omitempty"`
	Max    int64  `json:"max,omitempty"`
	ItemID string `json:"item_id,omitempty"`
	Weight int    `json:"weight"`
}

// Container is a purchasable randomized reward unit. CostCurrency is either a
// Currency name or an item ID, in which case one unit of that item is consumed
// as the opening cost.
type Container struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Cost         int64   `json:"cost"`
	CostCurrency string  `json:"cost_currency"`
	Prizes       []Prize `json:"prizes"`
}

// KeyCost reports whether the container is opened with an item instead of
// currency, and which item.
func (c *Container) KeyCost() (itemID string, ok bool) {
	cur := Currency(c.CostCurrency)
	if cur.Valid() {
		return "", false
	}
	return c.CostCurrency, true
}

// WeightSum returns the total declared weight of the prize table. Tables may
// sum to less than 100; the residual draw space yields no prize.
func (c *Container) WeightSum() int {
	sum := 0
	for _, p := range c.Prizes {
		sum += p.Weight
	}
	return sum
}
