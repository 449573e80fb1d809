// Package crafting converts stacks of material items into a random item from
// the recipe's output pool. Material removal and output grant commit together.
package crafting

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/coinverse/CoinverseBot_Go/internal/catalog"
	"github.com/coinverse/CoinverseBot_Go/internal/domain"
	"github.com/coinverse/CoinverseBot_Go/internal/event"
	"github.com/coinverse/CoinverseBot_Go/internal/logger"
	"github.com/coinverse/CoinverseBot_Go/internal/metrics"
	"github.com/coinverse/CoinverseBot_Go/internal/repository"
)

// CraftResult contains the result of a craft operation
type CraftResult struct {
	RecipeID string `json:"recipe_id"`
	ItemID   string `json:"item_id"`
}

// Service defines the interface for crafting operations
type Service interface {
	Craft(ctx context.Context, userID, recipeID string) (*CraftResult, error)
	ListRecipes(ctx context.Context) []domain.Recipe
}

type service struct {
	inventory repository.Inventory
	catalog   *catalog.Catalog
	publisher *event.ResilientPublisher
	rnd       func() float64 // For rolling RNG
}

// NewService creates a new crafting service
func NewService(inventory repository.Inventory, cat *catalog.Catalog, publisher *event.ResilientPublisher) Service {
	return &service{
		inventory: inventory,
		catalog:   cat,
		publisher: publisher,
		rnd:       rand.Float64,
	}
}

func (s *service) ListRecipes(ctx context.Context) []domain.Recipe {
	return s.catalog.Recipes()
}

func (s *service) Craft(ctx context.Context, userID, recipeID string) (*CraftResult, error) {
	log := logger.FromContext(ctx)

	recipe, ok := s.catalog.Recipe(recipeID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrRecipeNotFound, recipeID)
	}

	output := recipe.Outputs[int(s.rnd()*float64(len(recipe.Outputs)))%len(recipe.Outputs)]

	tx, err := s.inventory.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	if err := tx.RemoveItem(ctx, userID, recipe.MaterialID, recipe.MaterialQty); err != nil {
		if errors.Is(err, domain.ErrInsufficientQuantity) {
			return nil, fmt.Errorf("%w: need %d x %s", domain.ErrInsufficientMaterials, recipe.MaterialQty, recipe.MaterialID)
		}
		return nil, err
	}
	if err := tx.AddItem(ctx, userID, output, 1); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Info("Item crafted",
		"userID", userID,
		"recipeID", recipeID,
		"itemID", output)
	metrics.ItemsCrafted.WithLabelValues(recipeID).Inc()

	s.publisher.PublishWithRetry(ctx, event.Event{
		Version: "1.0",
		Type:    event.ItemCrafted,
		Payload: event.ItemCraftedPayloadV1{
			UserID:   userID,
			RecipeID: recipeID,
			ItemID:   output,
		},
	})

	return &CraftResult{RecipeID: recipeID, ItemID: output}, nil
}
