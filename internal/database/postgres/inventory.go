package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coinverse/CoinverseBot_Go/internal/domain"
	"github.com/coinverse/CoinverseBot_Go/internal/repository"
)

// dbtx is the subset of pgx operations shared by *pgxpool.Pool and pgx.Tx,
// letting the inventory statements run inside or outside a transaction.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// InventoryRepository implements the inventory repository for PostgreSQL
type InventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// GetInventory returns the user's held items, skipping zeroed rows.
func (r *InventoryRepository) GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT item_id, quantity FROM inventory WHERE user_id = $1 AND quantity > 0 ORDER BY item_id`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}
	defer rows.Close()

	entries := []domain.InventoryEntry{}
	for rows.Next() {
		var e domain.InventoryEntry
		if err := rows.Scan(&e.ItemID, &e.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan inventory entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read inventory rows: %w", err)
	}
	return entries, nil
}

// ItemCount returns how many units of itemID the user holds.
func (r *InventoryRepository) ItemCount(ctx context.Context, userID, itemID string) (int, error) {
	return itemCount(ctx, r.db, userID, itemID)
}

// AddItem credits quantity units of itemID, creating the row if needed.
func (r *InventoryRepository) AddItem(ctx context.Context, userID, itemID string, quantity int) error {
	return addItem(ctx, r.db, userID, itemID, quantity)
}

// RemoveItem debits quantity units of itemID. The guard in the UPDATE keeps
// the quantity from going negative; no row mutates on failure.
func (r *InventoryRepository) RemoveItem(ctx context.Context, userID, itemID string, quantity int) error {
	return removeItem(ctx, r.db, userID, itemID, quantity)
}

// BeginTx starts an inventory transaction.
func (r *InventoryRepository) BeginTx(ctx context.Context) (repository.Tx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &inventoryTx{tx: tx}, nil
}

// inventoryTx implements repository.Tx over a pgx transaction.
type inventoryTx struct {
	tx pgx.Tx
}

func (t *inventoryTx) ItemCount(ctx context.Context, userID, itemID string) (int, error) {
	return itemCount(ctx, t.tx, userID, itemID)
}

func (t *inventoryTx) AddItem(ctx context.Context, userID, itemID string, quantity int) error {
	return addItem(ctx, t.tx, userID, itemID, quantity)
}

func (t *inventoryTx) RemoveItem(ctx context.Context, userID, itemID string, quantity int) error {
	return removeItem(ctx, t.tx, userID, itemID, quantity)
}

func (t *inventoryTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (t *inventoryTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func itemCount(ctx context.Context, q dbtx, userID, itemID string) (int, error) {
	var count int
	err := q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM inventory WHERE user_id = $1 AND item_id = $2`,
		userID, itemID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}

func addItem(ctx context.Context, q dbtx, userID, itemID string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}
	_, err := q.Exec(ctx, `
		INSERT INTO inventory (user_id, item_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, item_id) DO UPDATE
		SET quantity = inventory.quantity + EXCLUDED.quantity`,
		userID, itemID, quantity)
	if err != nil {
		return fmt.Errorf("failed to add item: %w", err)
	}
	return nil
}

func removeItem(ctx context.Context, q dbtx, userID, itemID string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}
	tag, err := q.Exec(ctx, `
		UPDATE inventory
		SET quantity = quantity - $3
		WHERE user_id = $1 AND item_id = $2 AND quantity >= $3`,
		userID, itemID, quantity)
	if err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrInsufficientQuantity, itemID)
	}
	return nil
}
