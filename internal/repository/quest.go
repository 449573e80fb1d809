package repository

import (
	"context"

	"github.com/coinverse/CoinverseBot_Go/internal/domain"
)

// Quest defines the interface for per-user quest progress persistence.
type Quest interface {
	// GetProgress returns the stored row for (user, quest), nil when none exists.
	GetProgress(ctx context.Context, userID, questID string) (*domain.QuestProgress, error)
	ListProgress(ctx context.Context, userID string) ([]domain.QuestProgress, error)
	UpsertProgress(ctx context.Context, progress domain.QuestProgress) error
}
