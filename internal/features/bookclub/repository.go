// Package bookclub — repository.go works with the book_club_bans table.
// One row per (user, message); counts are derived, never stored.
package bookclub

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository stores ban facts.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates the book-club ban repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Add records a ban fact; duplicate (user, message) pairs are ignored.
func (r *Repository) Add(ctx context.Context, userID, messageID string) error {
	query := `
		INSERT INTO book_club_bans (user_id, message_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, message_id) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, query, userID, messageID); err != nil {
		return fmt.Errorf("failed to insert ban: %w", err)
	}
	return nil
}

// Remove deletes the matching ban fact, reporting whether it existed.
func (r *Repository) Remove(ctx context.Context, userID, messageID string) (bool, error) {
	query := `DELETE FROM book_club_bans WHERE user_id = $1 AND message_id = $2`
	tag, err := r.db.Exec(ctx, query, userID, messageID)
	if err != nil {
		return false, fmt.Errorf("failed to delete ban: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// CountForUser returns the user's current ban count.
func (r *Repository) CountForUser(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM book_club_bans WHERE user_id = $1`
	var count int
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}

// Leaderboard returns ban counts per user, most-banned first.
func (r *Repository) Leaderboard(ctx context.Context) ([]BanCount, error) {
	query := `
		SELECT user_id, COUNT(*) AS ban_count
		FROM book_club_bans
		GROUP BY user_id
		ORDER BY ban_count DESC, user_id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query ban leaderboard: %w", err)
	}
	defer rows.Close()

	var counts []BanCount
	for rows.Next() {
		var c BanCount
		if err := rows.Scan(&c.UserID, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
