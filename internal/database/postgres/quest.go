package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coinverse/CoinverseBot_Go/internal/domain"
)

// QuestRepository implements the quest progress repository for PostgreSQL
type QuestRepository struct {
	db *pgxpool.Pool
}

// NewQuestRepository creates a new QuestRepository
func NewQuestRepository(db *pgxpool.Pool) *QuestRepository {
	return &QuestRepository{db: db}
}

// GetProgress returns the stored row for (user, quest), nil when none exists.
func (r *QuestRepository) GetProgress(ctx context.Context, userID, questID string) (*domain.QuestProgress, error) {
	var p domain.QuestProgress
	err := r.db.QueryRow(ctx, `
		SELECT user_id, quest_id, progress, reset_date, completed_on
		FROM quest_progress
		WHERE user_id = $1 AND quest_id = $2`,
		userID, questID).Scan(&p.UserID, &p.QuestID, &p.Progress, &p.ResetDate, &p.CompletedOn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quest progress: %w", err)
	}
	return &p, nil
}

// ListProgress returns every progress row the user has.
func (r *QuestRepository) ListProgress(ctx context.Context, userID string) ([]domain.QuestProgress, error) {
	rows, err := r.db.Query(ctx, `
		SELECT user_id, quest_id, progress, reset_date, completed_on
		FROM quest_progress
		WHERE user_id = $1
		ORDER BY quest_id`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quest progress: %w", err)
	}
	defer rows.Close()

	progress := []domain.QuestProgress{}
	for rows.Next() {
		var p domain.QuestProgress
		if err := rows.Scan(&p.UserID, &p.QuestID, &p.Progress, &p.ResetDate, &p.CompletedOn); err != nil {
			return nil, fmt.Errorf("failed to scan quest progress: %w", err)
		}
		progress = append(progress, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read quest progress rows: %w", err)
	}
	return progress, nil
}

// UpsertProgress writes the row for (user, quest), inserting on first touch.
func (r *QuestRepository) UpsertProgress(ctx context.Context, p domain.QuestProgress) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO quest_progress (user_id, quest_id, progress, reset_date, completed_on)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, quest_id) DO UPDATE
		SET progress = EXCLUDED.progress,
		    reset_date = EXCLUDED.reset_date,
		    completed_on = EXCLUDED.completed_on`,
		p.UserID, p.QuestID, p.Progress, p.ResetDate, p.CompletedOn)
	if err != nil {
		return fmt.Errorf("failed to upsert quest progress: %w", err)
	}
	return nil
}
