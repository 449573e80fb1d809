// Package admin implements the operator surface: global stats, item grants,
// broadcast messaging and user feedback relay.
package admin

import (
	"context"
	"fmt"

	"github.com/coinverse/CoinverseBot_Go/internal/catalog"
	"github.com/coinverse/CoinverseBot_Go/internal/domain"
	"github.com/coinverse/CoinverseBot_Go/internal/logger"
	"github.com/coinverse/CoinverseBot_Go/internal/notify"
	"github.com/coinverse/CoinverseBot_Go/internal/repository"
	"github.com/coinverse/CoinverseBot_Go/internal/worker"
)

// FeedbackTarget is the notification target feedback is relayed to. The
// submitter's identity is logged for abuse handling but not forwarded.
const FeedbackTarget = "admin"

// BroadcastResult contains the result of a broadcast
type BroadcastResult struct {
	Recipients int `json:"recipients"`
}

// Service defines the interface for admin operations
type Service interface {
	Stats(ctx context.Context) (*repository.GlobalStats, error)

	// GrantItem adjusts a user's holding of itemID by delta, negative to
	// remove.
	GrantItem(ctx context.Context, targetID, itemID string, delta int) error

	// Broadcast fans the message out to every user through the worker pool.
	// Delivery is best-effort; failures are counted and swallowed.
	Broadcast(ctx context.Context, message string) (*BroadcastResult, error)

	Feedback(ctx context.Context, userID, text string) error
}

type service struct {
	users     repository.User
	inventory repository.Inventory
	catalog   *catalog.Catalog
	notifier  notify.Notifier
	pool      *worker.Pool
}

// NewService creates a new admin service
func NewService(users repository.User, inventory repository.Inventory, cat *catalog.Catalog, notifier notify.Notifier, pool *worker.Pool) Service {
	return &service{
		users:     users,
		inventory: inventory,
		catalog:   cat,
		notifier:  notifier,
		pool:      pool,
	}
}

func (s *service) Stats(ctx context.Context) (*repository.GlobalStats, error) {
	stats, err := s.users.GetGlobalStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get global stats: %w", err)
	}
	return stats, nil
}

func (s *service) GrantItem(ctx context.Context, targetID, itemID string, delta int) error {
	log := logger.FromContext(ctx)

	if _, ok := s.catalog.Item(itemID); !ok {
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	if delta == 0 {
		return fmt.Errorf("%w: delta must be non-zero", domain.ErrInvalidInput)
	}

	user, err := s.users.GetUserByID(ctx, targetID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	if delta > 0 {
		err = s.inventory.AddItem(ctx, targetID, itemID, delta)
	} else {
		err = s.inventory.RemoveItem(ctx, targetID, itemID, -delta)
	}
	if err != nil {
		return err
	}

	log.Info("Item adjusted",
		"targetID", targetID,
		"itemID", itemID,
		"delta", delta)
	return nil
}

func (s *service) Broadcast(ctx context.Context, message string) (*BroadcastResult, error) {
	log := logger.FromContext(ctx)

	if message == "" {
		return nil, fmt.Errorf("%w: empty broadcast message", domain.ErrInvalidInput)
	}

	userIDs, err := s.users.ListUserIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	for _, id := range userIDs {
		userID := id
		s.pool.Enqueue(worker.JobFunc(func(jobCtx context.Context) error {
			notify.Dispatch(jobCtx, s.notifier, userID, message)
			return nil
		}))
	}

	log.Info("Broadcast enqueued", "recipients", len(userIDs))
	return &BroadcastResult{Recipients: len(userIDs)}, nil
}

func (s *service) Feedback(ctx context.Context, userID, text string) error {
	log := logger.FromContext(ctx)

	if text == "" {
		return fmt.Errorf("%w: empty feedback", domain.ErrInvalidInput)
	}

	log.Info("Feedback received", "userID", userID)
	notify.Dispatch(ctx, s.notifier, FeedbackTarget, fmt.Sprintf("Feedback: %s", text))
	return nil
}
