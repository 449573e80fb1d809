package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/coinverse/CoinverseBot_Go/internal/domain"
)

// Catalog file names, relative to the catalog directory.
const (
	FileItems        = "items.json"
	FileContainers   = "containers.json"
	FileRanks        = "ranks.json"
	FileSeasonLevels = "season_levels.json"
	FileQuests       = "quests.json"
	FileRecipes      = "recipes.json"
)

// Load reads and validates all catalog files from dir.
func Load(dir string) (*Catalog, error) {
	c := &Catalog{
		items:      make(map[string]domain.Item),
		containers: make(map[string]domain.Container),
		quests:     make(map[string]domain.Quest),
		recipes:    make(map[string]domain.Recipe),
	}

	var items []domain.Item
	if err := readJSON(filepath.Join(dir, FileItems), &items); err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.ID == "" {
			return nil, fmt.Errorf("catalog: item with empty id in %s", FileItems)
		}
		if _, dup := c.items[it.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate item id %q", it.ID)
		}
		c.items[it.ID] = it
	}

	var containers []domain.Container
	if err := readJSON(filepath.Join(dir, FileContainers), &containers); err != nil {
		return nil, err
	}
	for _, ct := range containers {
		if err := c.validateContainer(ct); err != nil {
			return nil, err
		}
		c.containers[ct.ID] = ct
	}

	if err := readJSON(filepath.Join(dir, FileRanks), &c.ranks); err != nil {
		return nil, err
	}
	if err := c.validateRanks(); err != nil {
		return nil, err
	}

	if err := readJSON(filepath.Join(dir, FileSeasonLevels), &c.seasonLevels); err != nil {
		return nil, err
	}
	if err := c.validateSeasonLevels(); err != nil {
		return nil, err
	}

	var quests []domain.Quest
	if err := readJSON(filepath.Join(dir, FileQuests), &quests); err != nil {
		return nil, err
	}
	for _, q := range quests {
		if q.Target <= 0 {
			return nil, fmt.Errorf("catalog: quest %q has non-positive target", q.ID)
		}
		c.quests[q.ID] = q
	}

	var recipes []domain.Recipe
	if err := readJSON(filepath.Join(dir, FileRecipes), &recipes); err != nil {
		return nil, err
	}
	for _, r := range recipes {
		if err := c.validateRecipe(r); err != nil {
			return nil, err
		}
		c.recipes[r.ID] = r
	}

	return c, nil
}

func readJSON(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("catalog: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("catalog: parse %s: %w", path, err)
	}
	return nil
}

func (c *Catalog) validateContainer(ct domain.Container) error {
	if ct.ID == "" {
		return fmt.Errorf("catalog: container with empty id")
	}
	if ct.Cost <= 0 {
		return fmt.Errorf("catalog: container %q has non-positive cost", ct.ID)
	}
	if keyItem, ok := ct.KeyCost(); ok {
		if _, exists := c.items[keyItem]; !exists {
			return fmt.Errorf("catalog: container %q costs unknown item %q", ct.ID, keyItem)
		}
	}
	// Weights may sum to less than 100 (the residual draw space is an explicit
	// no-prize outcome) but must never exceed it.
	if sum := ct.WeightSum(); sum > 100 {
		return fmt.Errorf("catalog: container %q prize weights sum to %d (>100)", ct.ID, sum)
	}
	for _, p := range ct.Prizes {
		if p.Weight <= 0 {
			return fmt.Errorf("catalog: container %q has non-positive prize weight", ct.ID)
		}
		switch p.Type {
		case domain.PrizeCoins, domain.PrizeStars:
			if p.Min <= 0 || p.Max < p.Min {
				return fmt.Errorf("catalog: container %q has invalid amount range [%d,%d]", ct.ID, p.Min, p.Max)
			}
		case domain.PrizeItem:
			if _, exists := c.items[p.ItemID]; !exists {
				return fmt.Errorf("catalog: container %q awards unknown item %q", ct.ID, p.ItemID)
			}
		default:
			return fmt.Errorf("catalog: container %q has unknown prize type %q", ct.ID, p.Type)
		}
	}
	return nil
}

func (c *Catalog) validateRanks() error {
	if len(c.ranks) == 0 {
		return fmt.Errorf("catalog: rank table is empty")
	}
	sort.Slice(c.ranks, func(i, j int) bool { return c.ranks[i].Level < c.ranks[j].Level })
	var prev *int64
	for _, t := range c.ranks {
		if t.Threshold == nil {
			continue
		}
		if prev != nil && *t.Threshold <= *prev {
			return fmt.Errorf("catalog: rank thresholds not strictly increasing at level %d", t.Level)
		}
		prev = t.Threshold
	}
	first := c.ranks[0]
	if first.Threshold == nil || *first.Threshold != 0 {
		return fmt.Errorf("catalog: first rank tier must have threshold 0")
	}
	return nil
}

func (c *Catalog) validateSeasonLevels() error {
	sort.Slice(c.seasonLevels, func(i, j int) bool { return c.seasonLevels[i].Level < c.seasonLevels[j].Level })
	for i, l := range c.seasonLevels {
		if l.Level != i+1 {
			return fmt.Errorf("catalog: season levels must be contiguous from 1, got %d at position %d", l.Level, i)
		}
		if l.XPRequired <= 0 {
			return fmt.Errorf("catalog: season level %d has non-positive xp requirement", l.Level)
		}
		if err := c.validateReward(l.FreeReward, l.Level); err != nil {
			return err
		}
		if l.PremiumReward != nil {
			if err := c.validateReward(*l.PremiumReward, l.Level); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Catalog) validateReward(r domain.Reward, level int) error {
	switch r.Type {
	case domain.PrizeCoins, domain.PrizeStars:
		if r.Amount <= 0 {
			return fmt.Errorf("catalog: season level %d reward has non-positive amount", level)
		}
	case domain.PrizeItem:
		if _, exists := c.items[r.ItemID]; !exists {
			return fmt.Errorf("catalog: season level %d rewards unknown item %q", level, r.ItemID)
		}
	default:
		return fmt.Errorf("catalog: season level %d has unknown reward type %q", level, r.Type)
	}
	return nil
}

func (c *Catalog) validateRecipe(r domain.Recipe) error {
	if r.MaterialQty <= 0 {
		return fmt.Errorf("catalog: recipe %q requires non-positive material quantity", r.ID)
	}
	if _, exists := c.items[r.MaterialID]; !exists {
		return fmt.Errorf("catalog: recipe %q consumes unknown item %q", r.ID, r.MaterialID)
	}
	if len(r.Outputs) == 0 {
		return fmt.Errorf("catalog: recipe %q has no outputs", r.ID)
	}
	for _, out := range r.Outputs {
		if _, exists := c.items[out]; !exists {
			return fmt.Errorf("catalog: recipe %q produces unknown item %q", r.ID, out)
		}
	}
	return nil
}
