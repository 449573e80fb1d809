package repository

import (
	"context"

	"github.com/coinverse/CoinverseBot_Go/internal/domain"
)

// Inventory defines the interface for item ownership persistence. Quantities
// never go negative: removals beyond the held quantity fail with
// domain.ErrInsufficientQuantity and mutate nothing.
type Inventory interface {
	GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error)
	ItemCount(ctx context.Context, userID, itemID string) (int, error)
	AddItem(ctx context.Context, userID, itemID string, quantity int) error
	RemoveItem(ctx context.Context, userID, itemID string, quantity int) error

	BeginTx(ctx context.Context) (Tx, error)
}
