// Package notify defines the outbound notification port. The chat transport
// implements Notifier on its side of the boundary; the engine only ever calls
// it best-effort after state is committed.
package notify

import (
	"context"

	"github.com/coinverse/CoinverseBot_Go/internal/logger"
	"github.com/coinverse/CoinverseBot_Go/internal/metrics"
)

// Notifier delivers a message to a single user.
type Notifier interface {
	Notify(ctx context.Context, userID, message string) error
}

// Dispatch sends a notification without letting a delivery failure reach the
// caller. Failures are logged and counted, never propagated.
func Dispatch(ctx context.Context, n Notifier, userID, message string) {
	if n == nil {
		return
	}
	if err := n.Notify(ctx, userID, message); err != nil {
		logger.FromContext(ctx).Warn("Notification delivery failed",
			"user_id", userID,
			"error", err)
		metrics.NotificationsDropped.Inc()
	}
}

// DispatchAsync sends the notification from a fresh goroutine with a detached
// context, for callers inside a lock or a request lifecycle.
func DispatchAsync(n Notifier, userID, message string) {
	if n == nil {
		return
	}
	go Dispatch(context.Background(), n, userID, message)
}

// LogNotifier writes notifications to the service log. Used in development and
// as the default sink when no transport is attached.
type LogNotifier struct{}

// Notify implements Notifier.
func (LogNotifier) Notify(ctx context.Context, userID, message string) error {
	logger.FromContext(ctx).Info("notification", "user_id", userID, "message", message)
	return nil
}
