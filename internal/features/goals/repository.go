// Package goals — repository.go works with the goals table. Goals are
// soft-deleted so recaps stay truthful about what was set mid-week.
package goals

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lgt-bot/internal/common"
)

// Repository stores weekly goals.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates the goals repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create inserts a new goal and returns it with its assigned ID.
func (r *Repository) Create(ctx context.Context, userID, title string, target int, week string) (Goal, error) {
	query := `
		INSERT INTO goals (user_id, title, target_count, week_identifier)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, title, target_count, completion_count, week_identifier, created_at, deleted_at
	`
	var g Goal
	err := r.db.QueryRow(ctx, query, userID, title, target, week).Scan(
		&g.ID, &g.UserID, &g.Title, &g.TargetCount, &g.CompletionCount,
		&g.WeekIdentifier, &g.CreatedAt, &g.DeletedAt,
	)
	if err != nil {
		return Goal{}, fmt.Errorf("failed to insert goal: %w", err)
	}
	return g, nil
}

// Get returns one non-deleted goal by ID.
func (r *Repository) Get(ctx context.Context, id int64) (Goal, error) {
	query := `
		SELECT id, user_id, title, target_count, completion_count, week_identifier, created_at, deleted_at
		FROM goals
		WHERE id = $1 AND deleted_at IS NULL
	`
	var g Goal
	err := r.db.QueryRow(ctx, query, id).Scan(
		&g.ID, &g.UserID, &g.Title, &g.TargetCount, &g.CompletionCount,
		&g.WeekIdentifier, &g.CreatedAt, &g.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Goal{}, common.ErrGoalNotFound
	}
	if err != nil {
		return Goal{}, fmt.Errorf("failed to query goal: %w", err)
	}
	return g, nil
}

// ListForUser returns a user's non-deleted goals for one week, oldest
// first.
func (r *Repository) ListForUser(ctx context.Context, userID, week string) ([]Goal, error) {
	query := `
		SELECT id, user_id, title, target_count, completion_count, week_identifier, created_at, deleted_at
		FROM goals
		WHERE user_id = $1 AND week_identifier = $2 AND deleted_at IS NULL
		ORDER BY created_at, id
	`
	return r.queryGoals(ctx, query, userID, week)
}

// ListForWeek returns every non-deleted goal for one week, grouped by
// user in a stable order.
func (r *Repository) ListForWeek(ctx context.Context, week string) ([]Goal, error) {
	query := `
		SELECT id, user_id, title, target_count, completion_count, week_identifier, created_at, deleted_at
		FROM goals
		WHERE week_identifier = $1 AND deleted_at IS NULL
		ORDER BY user_id, created_at, id
	`
	return r.queryGoals(ctx, query, week)
}

// IncrementCompletion bumps the completion count, never past the
// target. Returns the updated goal.
func (r *Repository) IncrementCompletion(ctx context.Context, id int64) (Goal, error) {
	query := `
		UPDATE goals
		SET completion_count = LEAST(completion_count + 1, target_count)
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id, user_id, title, target_count, completion_count, week_identifier, created_at, deleted_at
	`
	var g Goal
	err := r.db.QueryRow(ctx, query, id).Scan(
		&g.ID, &g.UserID, &g.Title, &g.TargetCount, &g.CompletionCount,
		&g.WeekIdentifier, &g.CreatedAt, &g.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Goal{}, common.ErrGoalNotFound
	}
	if err != nil {
		return Goal{}, fmt.Errorf("failed to update goal: %w", err)
	}
	return g, nil
}

// SoftDelete marks a goal deleted, reporting whether a row matched.
func (r *Repository) SoftDelete(ctx context.Context, id int64, userID string) (bool, error) {
	query := `
		UPDATE goals
		SET deleted_at = NOW()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
	`
	tag, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete goal: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) queryGoals(ctx context.Context, query string, args ...any) ([]Goal, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	var goals []Goal
	for rows.Next() {
		var g Goal
		err := rows.Scan(
			&g.ID, &g.UserID, &g.Title, &g.TargetCount, &g.CompletionCount,
			&g.WeekIdentifier, &g.CreatedAt, &g.DeletedAt,
		)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}
