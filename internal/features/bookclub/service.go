// Package bookclub — service.go holds the ban business logic and the
// announcement copy.
package bookclub

import (
	"context"
	"fmt"
	"math/rand"

	"lgt-bot/internal/common"
)

// BanResult describes one recorded ban.
type BanResult struct {
	Count int
	// Recorded is false when the (user, message) pair already existed,
	// e.g. a redelivered gateway event. Nothing to announce then.
	Recorded bool
	// First is true when this is the user's first ever ban.
	First       bool
	Achievement *Achievement
}

// LiftResult describes one lifted ban.
type LiftResult struct {
	// Found is false when the reaction never produced a ban row.
	Found     bool
	Remaining int
}

// Service manages book-club bans.
type Service struct {
	repo *Repository
}

// NewService creates the book-club service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// RecordBan persists a ban fact and reports the new standing.
func (s *Service) RecordBan(ctx context.Context, userID, messageID string) (BanResult, error) {
	before, err := s.repo.CountForUser(ctx, userID)
	if err != nil {
		return BanResult{}, err
	}
	if err := s.repo.Add(ctx, userID, messageID); err != nil {
		return BanResult{}, err
	}
	count, err := s.repo.CountForUser(ctx, userID)
	if err != nil {
		return BanResult{}, err
	}

	result := BanResult{Count: count, Recorded: count > before, First: before == 0 && count > 0}
	if a, ok := AchievementAt(count); ok && result.Recorded {
		result.Achievement = &a
	}
	return result, nil
}

// LiftBan removes the ban fact tied to one message.
func (s *Service) LiftBan(ctx context.Context, userID, messageID string) (LiftResult, error) {
	removed, err := s.repo.Remove(ctx, userID, messageID)
	if err != nil {
		return LiftResult{}, err
	}
	if !removed {
		return LiftResult{}, nil
	}
	remaining, err := s.repo.CountForUser(ctx, userID)
	if err != nil {
		return LiftResult{}, err
	}
	return LiftResult{Found: true, Remaining: remaining}, nil
}

// Leaderboard returns ban counts, most-banned first.
func (s *Service) Leaderboard(ctx context.Context) ([]BanCount, error) {
	return s.repo.Leaderboard(ctx)
}

// AchievementAt returns the milestone for an exact ban count.
func AchievementAt(count int) (Achievement, bool) {
	a, ok := achievements[count]
	return a, ok
}

// RandomModeratorTitle picks one of the rotating moderator titles.
func RandomModeratorTitle() string {
	return moderatorTitles[rand.Intn(len(moderatorTitles))]
}

// BanAnnouncement composes the channel message for a recorded ban.
func BanAnnouncement(userID string, result BanResult, moderatorTitle string) string {
	if result.First {
		return fmt.Sprintf(
			"<@%s> has been banned from LGT Book Club, by order of %s Mike",
			userID, moderatorTitle,
		)
	}
	msg := fmt.Sprintf(
		"<@%s> has received their %s ban from LGT Book Club, by order of %s Mike. Their crimes against literature continue to stack.",
		userID, common.Ordinal(result.Count), moderatorTitle,
	)
	if result.Achievement != nil {
		msg += fmt.Sprintf(
			"\n\n🏆 **Achievement unlocked:** %q\n*%s*",
			result.Achievement.Title, result.Achievement.Subtitle,
		)
	}
	return msg
}

// LiftAnnouncement composes the channel message for a lifted ban.
func LiftAnnouncement(userID string, result LiftResult, moderatorTitle string) string {
	if result.Remaining == 0 {
		return fmt.Sprintf(
			"<@%s> has been brought back into %s Mike's good graces.",
			userID, moderatorTitle,
		)
	}
	return fmt.Sprintf(
		"<@%s> is making their way back to being a valued citizen of the Book Club. %d %s remaining.",
		userID, result.Remaining, common.Plural(result.Remaining, "strike"),
	)
}
