package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coinverse/CoinverseBot_Go/internal/domain"
	"github.com/coinverse/CoinverseBot_Go/internal/repository"
)

const userColumns = `user_id, username, coins, stars, total_earned, rank_level,
	season_level, season_xp, daily_streak, last_bonus_at, referrer_id,
	has_premium, created_at, updated_at`

// UserRepository implements the ledger repository for PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Coins, &u.Stars, &u.TotalEarned,
		&u.RankLevel, &u.SeasonLevel, &u.SeasonXP, &u.DailyStreak,
		&u.LastBonusAt, &u.ReferrerID, &u.HasPremium, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new ledger record. Returns domain.ErrUserAlreadyExists
// when the ID is taken.
func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (user_id, username, coins, stars, total_earned,
			rank_level, season_level, season_xp, daily_streak, referrer_id,
			has_premium, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING
	`
	tag, err := r.db.Exec(ctx, query, user.ID, user.Username, user.Coins,
		user.Stars, user.TotalEarned, user.RankLevel, user.SeasonLevel,
		user.SeasonXP, user.DailyStreak, user.ReferrerID, user.HasPremium)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrUserAlreadyExists, user.ID)
	}
	return nil
}

// GetUserByID returns the ledger record for userID, nil when absent.
func (r *UserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE user_id = $1`, userColumns)
	user, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ListUserIDs returns every registered user ID.
func (r *UserRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT user_id FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// TopByTotalEarned returns the highest lifetime earners, descending.
func (r *UserRepository) TopByTotalEarned(ctx context.Context, limit int) ([]domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY total_earned DESC, user_id LIMIT $1`, userColumns)
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// GetGlobalStats aggregates the whole economy.
func (r *UserRepository) GetGlobalStats(ctx context.Context) (*repository.GlobalStats, error) {
	var stats repository.GlobalStats
	query := `
		SELECT COUNT(*), COALESCE(SUM(coins), 0), COALESCE(SUM(stars), 0)
		FROM users
	`
	if err := r.db.QueryRow(ctx, query).Scan(&stats.TotalUsers, &stats.TotalCoins, &stats.TotalStars); err != nil {
		return nil, fmt.Errorf("failed to aggregate users: %w", err)
	}
	if err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(quantity), 0) FROM inventory`).Scan(&stats.TotalItems); err != nil {
		return nil, fmt.Errorf("failed to aggregate inventory: %w", err)
	}
	return &stats, nil
}

// ApplyBalanceDelta mutates balances in a single guarded UPDATE so concurrent
// operations for the same user cannot lose updates or go negative.
func (r *UserRepository) ApplyBalanceDelta(ctx context.Context, userID string, delta repository.BalanceDelta) (*domain.User, error) {
	query := fmt.Sprintf(`
		UPDATE users
		SET coins = coins + $2,
		    stars = stars + $3,
		    total_earned = total_earned + CASE WHEN $4 AND $2 > 0 THEN $2 ELSE 0 END,
		    updated_at = NOW()
		WHERE user_id = $1 AND coins + $2 >= 0 AND stars + $3 >= 0
		RETURNING %s
	`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, userID, delta.Coins, delta.Stars, delta.CountEarned))
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to apply balance delta: %w", err)
	}

	// No row matched: either the user is unknown or the guard refused a debit.
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE user_id = $1)`, userID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	return nil, domain.ErrInsufficientFunds
}

// ApplyBalanceDeltaAll credits every user in one statement.
func (r *UserRepository) ApplyBalanceDeltaAll(ctx context.Context, delta repository.BalanceDelta) (int64, error) {
	query := `
		UPDATE users
		SET coins = coins + $1,
		    stars = stars + $2,
		    total_earned = total_earned + CASE WHEN $3 AND $1 > 0 THEN $1 ELSE 0 END,
		    updated_at = NOW()
	`
	tag, err := r.db.Exec(ctx, query, delta.Coins, delta.Stars, delta.CountEarned)
	if err != nil {
		return 0, fmt.Errorf("failed to apply giveaway: %w", err)
	}
	return tag.RowsAffected(), nil
}

// UpdateRankLevel persists a promotion.
func (r *UserRepository) UpdateRankLevel(ctx context.Context, userID string, level int) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET rank_level = $2, updated_at = NOW() WHERE user_id = $1`,
		userID, level)
	if err != nil {
		return fmt.Errorf("failed to update rank level: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	return nil
}

// UpdateSeasonProgress persists the post-cascade season state.
func (r *UserRepository) UpdateSeasonProgress(ctx context.Context, userID string, level int, xp int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET season_level = $2, season_xp = $3, updated_at = NOW() WHERE user_id = $1`,
		userID, level, xp)
	if err != nil {
		return fmt.Errorf("failed to update season progress: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	return nil
}

// UpdateDailyBonus persists the streak and claim timestamp.
func (r *UserRepository) UpdateDailyBonus(ctx context.Context, userID string, streak int, claimedAt time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET daily_streak = $2, last_bonus_at = $3, updated_at = NOW() WHERE user_id = $1`,
		userID, streak, claimedAt)
	if err != nil {
		return fmt.Errorf("failed to update daily bonus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	return nil
}

// SetPremium toggles the premium season track entitlement.
func (r *UserRepository) SetPremium(ctx context.Context, userID string, premium bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET has_premium = $2, updated_at = NOW() WHERE user_id = $1`,
		userID, premium)
	if err != nil {
		return fmt.Errorf("failed to set premium: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	return nil
}
