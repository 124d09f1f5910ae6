// Package kudos — service.go orchestrates the reaction lifecycle
// (validate → persist → detect level change) and serves the rank,
// leaderboard and top-messages queries. The service never touches Discord
// types; it consumes ReactionEvent records and returns plain result values
// for the adapter in handlers.go to render.
package kudos

import (
	"context"
	"hash/fnv"
	"sort"
	"sync"
	"time"

	"lgt-bot/internal/config"
)

// Rejection is a user-visible refusal decided before any ledger mutation.
type Rejection struct {
	Message string
	// RetractReaction asks the adapter to remove the offending reaction.
	RetractReaction bool
}

// LevelUp reports that the credited user crossed into a new level.
type LevelUp struct {
	UserID string
	Level  Level
}

// ReactionResult is the outcome of one reaction-add event. Both fields nil
// means silent success (or an ignored event) — only exceptional transitions
// produce visible output.
type ReactionResult struct {
	Rejection *Rejection
	LevelUp   *LevelUp
}

// Service runs the kudos engine.
type Service struct {
	ledger Ledger
	cfg    *config.Config
	now    func() time.Time

	// Discord dispatches gateway handlers on separate goroutines, so an
	// add and its matching remove could otherwise race. Stripe locks by
	// message id to keep per-message ordering.
	locks [64]sync.Mutex
}

// NewService creates the kudos service.
func NewService(ledger Ledger, cfg *config.Config) *Service {
	return &Service{ledger: ledger, cfg: cfg, now: time.Now}
}

// Matches reports whether the event carries the configured kudos emoji.
func (s *Service) Matches(emojiName string) bool {
	return emojiName == s.cfg.KudosEmoji
}

// OnReactionAdd handles one reaction-add event end to end.
//
// Validation failures terminate before any mutation. A duplicate
// (message, reactor) pair is an idempotent no-op. The before/after stats
// comparison emits at most one level-up per upward transition.
func (s *Service) OnReactionAdd(ctx context.Context, ev ReactionEvent) (ReactionResult, error) {
	if ev.ReactorIsBot || !s.Matches(ev.EmojiName) {
		return ReactionResult{}, nil
	}
	if ev.AuthorID == "" || ev.AuthorIsBot {
		return ReactionResult{}, nil
	}
	if ev.AuthorID == ev.ReactorID {
		return ReactionResult{Rejection: &Rejection{
			Message:         "You can't give kudos to yourself!",
			RetractReaction: true,
		}}, nil
	}

	unlock := s.lockMessage(ev.MessageID)
	defer unlock()

	before, err := s.ledger.TallyForUser(ctx, ev.AuthorID)
	if err != nil {
		return ReactionResult{}, err
	}

	err = s.ledger.Add(ctx, Reaction{
		MessageID: ev.MessageID,
		ChannelID: ev.ChannelID,
		AuthorID:  ev.AuthorID,
		ReactorID: ev.ReactorID,
		CreatedAt: s.now(),
	})
	if err != nil {
		return ReactionResult{}, err
	}

	after, err := s.ledger.TallyForUser(ctx, ev.AuthorID)
	if err != nil {
		return ReactionResult{}, err
	}

	beforeLevel := ResolveLevel(Points(before))
	afterLevel := ResolveLevel(Points(after))
	if afterLevel.Level > beforeLevel.Level {
		return ReactionResult{LevelUp: &LevelUp{UserID: ev.AuthorID, Level: afterLevel}}, nil
	}
	return ReactionResult{}, nil
}

// OnReactionRemove deletes the fact. Removal is intentionally silent: no
// stats comparison, no notification, no-op when the fact is absent.
func (s *Service) OnReactionRemove(ctx context.Context, ev ReactionEvent) error {
	if ev.ReactorIsBot || !s.Matches(ev.EmojiName) {
		return nil
	}

	unlock := s.lockMessage(ev.MessageID)
	defer unlock()

	return s.ledger.Remove(ctx, ev.MessageID, ev.ReactorID)
}

// Rank returns the derived stats for one user, recomputed from the ledger.
func (s *Service) Rank(ctx context.Context, userID string) (UserStats, error) {
	tally, err := s.ledger.TallyForUser(ctx, userID)
	if err != nil {
		return UserStats{}, err
	}
	return BuildStats(tally), nil
}

// Leaderboard ranks everyone who ever gave or received kudos: total points
// descending, user id ascending as the deterministic tie-break, top N.
func (s *Service) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	tallies, err := s.ledger.AllTallies(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(tallies))
	for _, t := range tallies {
		points := Points(t)
		entries = append(entries, LeaderboardEntry{
			UserID:            t.UserID,
			UniqueMessages:    t.UniqueMessages,
			ReactionsReceived: t.ReactionsReceived,
			ReactionsGiven:    t.ReactionsGiven,
			TotalPoints:       points,
			Level:             ResolveLevel(points),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		return entries[i].UserID < entries[j].UserID
	})

	if len(entries) > s.cfg.KudosLeaderboardSize {
		entries = entries[:s.cfg.KudosLeaderboardSize]
	}
	return entries, nil
}

// TopMessages returns the most-reacted messages within the trailing
// timeframe window. An empty timeframe falls back to the configured
// default; a malformed one is an error for this invocation.
func (s *Service) TopMessages(ctx context.Context, timeframe string) ([]TopMessage, error) {
	if timeframe == "" {
		timeframe = s.cfg.KudosDefaultTimeframe
	}
	cutoff, err := TimeframeCutoff(timeframe, s.now())
	if err != nil {
		return nil, err
	}
	return s.ledger.TopMessages(ctx, cutoff, s.cfg.KudosLeaderboardSize)
}

// ReactionCount exposes the per-message fact count.
func (s *Service) ReactionCount(ctx context.Context, messageID string) (int, error) {
	return s.ledger.CountForMessage(ctx, messageID)
}

func (s *Service) lockMessage(messageID string) func() {
	h := fnv.New32a()
	h.Write([]byte(messageID))
	lock := &s.locks[h.Sum32()%uint32(len(s.locks))]
	lock.Lock()
	return lock.Unlock
}
