package repository

import (
	"context"

	"github.com/coinverse/CoinverseBot_Go/internal/logger"
)

// ErrMsgTxClosed matches the driver error raised when a commit already
// finished the transaction and rollback is a no-op.
const ErrMsgTxClosed = "tx is closed"

// Tx defines the interface for transactional inventory operations
type Tx interface {
	ItemCount(ctx context.Context, userID, itemID string) (int, error)
	AddItem(ctx context.Context, userID, itemID string, quantity int) error
	RemoveItem(ctx context.Context, userID, itemID string, quantity int) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// SafeRollback rolls back a transaction and logs any error
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil {
		// Check for common "closed" errors to avoid noise
		if err.Error() != ErrMsgTxClosed {
			logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
		}
	}
}
