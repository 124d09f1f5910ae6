// Package kudos — repository.go is the Postgres-backed Ledger.
package kudos

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository stores reaction facts in the kudos_reactions table.
type Repository struct {
	db *pgxpool.Pool
}

var _ Ledger = (*Repository)(nil)

// NewRepository creates the kudos fact repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Add inserts a reaction fact. Re-adding an existing (message, reactor)
// pair hits the unique index and is dropped silently. The caller's
// timestamp is stored as-is so both ledger backends age facts by the
// same clock; a zero value falls back to the insert time.
func (r *Repository) Add(ctx context.Context, fact Reaction) error {
	if fact.CreatedAt.IsZero() {
		fact.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO kudos_reactions (message_id, channel_id, author_id, reactor_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (message_id, reactor_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, fact.MessageID, fact.ChannelID, fact.AuthorID, fact.ReactorID, fact.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert kudos fact: %w", err)
	}
	return nil
}

// Remove deletes the matching fact; absent pairs are a no-op.
func (r *Repository) Remove(ctx context.Context, messageID, reactorID string) error {
	query := `DELETE FROM kudos_reactions WHERE message_id = $1 AND reactor_id = $2`
	if _, err := r.db.Exec(ctx, query, messageID, reactorID); err != nil {
		return fmt.Errorf("failed to delete kudos fact: %w", err)
	}
	return nil
}

// CountForMessage returns the number of reactor facts for one message.
func (r *Repository) CountForMessage(ctx context.Context, messageID string) (int, error) {
	query := `SELECT COUNT(*) FROM kudos_reactions WHERE message_id = $1`
	var count int
	err := r.db.QueryRow(ctx, query, messageID).Scan(&count)
	return count, err
}

// TallyForUser aggregates received facts (grouped so that distinct messages
// are visible) plus the user's given count in one round trip.
func (r *Repository) TallyForUser(ctx context.Context, userID string) (Tally, error) {
	query := `
		SELECT
			COUNT(DISTINCT message_id),
			COUNT(*),
			(SELECT COUNT(*) FROM kudos_reactions given WHERE given.reactor_id = $1)
		FROM kudos_reactions
		WHERE author_id = $1
	`
	t := Tally{UserID: userID}
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&t.UniqueMessages, &t.ReactionsReceived, &t.ReactionsGiven,
	)
	if err != nil {
		return Tally{}, fmt.Errorf("failed to tally kudos for user: %w", err)
	}
	return t, nil
}

// AllTallies aggregates over the union of everyone who appears as author or
// reactor. Conditional counts split one joined scan into the three totals.
func (r *Repository) AllTallies(ctx context.Context) ([]Tally, error) {
	query := `
		WITH users AS (
			SELECT author_id AS user_id FROM kudos_reactions
			UNION
			SELECT reactor_id FROM kudos_reactions
		)
		SELECT
			u.user_id,
			COUNT(DISTINCT CASE WHEN r.author_id = u.user_id THEN r.message_id END),
			COUNT(CASE WHEN r.author_id = u.user_id THEN 1 END),
			COUNT(CASE WHEN r.reactor_id = u.user_id THEN 1 END)
		FROM users u
		LEFT JOIN kudos_reactions r
			ON r.author_id = u.user_id OR r.reactor_id = u.user_id
		GROUP BY u.user_id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to tally kudos standings: %w", err)
	}
	defer rows.Close()

	var tallies []Tally
	for rows.Next() {
		var t Tally
		if err := rows.Scan(&t.UserID, &t.UniqueMessages, &t.ReactionsReceived, &t.ReactionsGiven); err != nil {
			return nil, err
		}
		tallies = append(tallies, t)
	}
	return tallies, rows.Err()
}

// TopMessages counts reactions per message within the window.
func (r *Repository) TopMessages(ctx context.Context, since time.Time, limit int) ([]TopMessage, error) {
	query := `
		SELECT message_id, MIN(channel_id), MIN(author_id), COUNT(*) AS reaction_count
		FROM kudos_reactions
		WHERE created_at >= $1
		GROUP BY message_id
		ORDER BY reaction_count DESC, message_id
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top messages: %w", err)
	}
	defer rows.Close()

	var top []TopMessage
	for rows.Next() {
		var m TopMessage
		if err := rows.Scan(&m.MessageID, &m.ChannelID, &m.AuthorID, &m.ReactionCount); err != nil {
			return nil, err
		}
		top = append(top, m)
	}
	return top, rows.Err()
}
