// Package catalog holds the immutable game data: item and container
// definitions, the rank ladder, season pass levels, quests and crafting
// recipes. Everything is loaded once at startup from JSON files and is
// read-only afterwards.
package catalog

import (
	"sort"

	"github.com/coinverse/CoinverseBot_Go/internal/domain"
)

// Catalog is the loaded, validated game data.
type Catalog struct {
	items        map[string]domain.Item
	containers   map[string]domain.Container
	ranks        []domain.RankTier // ascending by level
	seasonLevels []domain.SeasonLevel
	quests       map[string]domain.Quest
	recipes      map[string]domain.Recipe
}

// New builds a catalog from in-memory definitions without validation. Intended
// for tests; production code loads and validates through Load.
func New(items []domain.Item, containers []domain.Container, ranks []domain.RankTier, seasonLevels []domain.SeasonLevel, quests []domain.Quest, recipes []domain.Recipe) *Catalog {
	c := &Catalog{
		items:        make(map[string]domain.Item, len(items)),
		containers:   make(map[string]domain.Container, len(containers)),
		ranks:        ranks,
		seasonLevels: seasonLevels,
		quests:       make(map[string]domain.Quest, len(quests)),
		recipes:      make(map[string]domain.Recipe, len(recipes)),
	}
	for _, it := range items {
		c.items[it.ID] = it
	}
	for _, ct := range containers {
		c.containers[ct.ID] = ct
	}
	for _, q := range quests {
		c.quests[q.ID] = q
	}
	for _, r := range recipes {
		c.recipes[r.ID] = r
	}
	return c
}

// Item returns the item definition for id.
func (c *Catalog) Item(id string) (domain.Item, bool) {
	it, ok := c.items[id]
	return it, ok
}

// Items returns all item definitions.
func (c *Catalog) Items() []domain.Item {
	out := make([]domain.Item, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Container returns the container definition for id.
func (c *Catalog) Container(id string) (domain.Container, bool) {
	ct, ok := c.containers[id]
	return ct, ok
}

// Containers returns all container definitions.
func (c *Catalog) Containers() []domain.Container {
	out := make([]domain.Container, 0, len(c.containers))
	for _, ct := range c.containers {
		out = append(out, ct)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Ranks returns the rank ladder, ascending by level.
func (c *Catalog) Ranks() []domain.RankTier {
	return c.ranks
}

// Rank returns the tier for a level.
func (c *Catalog) Rank(level int) (domain.RankTier, bool) {
	for _, t := range c.ranks {
		if t.Level == level {
			return t, true
		}
	}
	return domain.RankTier{}, false
}

// SeasonLevels returns the season pass levels, ascending by level.
func (c *Catalog) SeasonLevels() []domain.SeasonLevel {
	return c.seasonLevels
}

// SeasonLevel returns the definition for a season level, if it exists. Levels
// past the table's end have no definition: XP keeps accumulating there but no
// further level-ups occur.
func (c *Catalog) SeasonLevel(level int) (domain.SeasonLevel, bool) {
	for _, l := range c.seasonLevels {
		if l.Level == level {
			return l, true
		}
	}
	return domain.SeasonLevel{}, false
}

// MaxSeasonLevel returns the highest defined season level.
func (c *Catalog) MaxSeasonLevel() int {
	if len(c.seasonLevels) == 0 {
		return 1
	}
	return c.seasonLevels[len(c.seasonLevels)-1].Level
}

// Quest returns the quest definition for id.
func (c *Catalog) Quest(id string) (domain.Quest, bool) {
	q, ok := c.quests[id]
	return q, ok
}

// Quests returns all quest definitions.
func (c *Catalog) Quests() []domain.Quest {
	out := make([]domain.Quest, 0, len(c.quests))
	for _, q := range c.quests {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// QuestsForCounter returns the quests tracking the given counter key.
func (c *Catalog) QuestsForCounter(counter string) []domain.Quest {
	var out []domain.Quest
	for _, q := range c.quests {
		if q.Counter == counter {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Recipe returns the recipe definition for id.
func (c *Catalog) Recipe(id string) (domain.Recipe, bool) {
	r, ok := c.recipes[id]
	return r, ok
}

// Recipes returns all recipe definitions.
func (c *Catalog) Recipes() []domain.Recipe {
	out := make([]domain.Recipe, 0, len(c.recipes))
	for _, r := range c.recipes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
