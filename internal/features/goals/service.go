// Package goals — service.go holds goal validation, check-in rules and
// the recap text. The repository stays a dumb table wrapper.
package goals

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"lgt-bot/internal/common"
)

// Service manages weekly goals.
type Service struct {
	repo *Repository
	now  func() time.Time
}

// NewService creates the goals service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// SetGoal validates and creates a goal for the current week.
func (s *Service) SetGoal(ctx context.Context, userID, title string, target int) (Goal, error) {
	title = strings.TrimSpace(title)
	if err := ValidateTitle(title); err != nil {
		return Goal{}, err
	}
	if err := ValidateTarget(target); err != nil {
		return Goal{}, err
	}
	return s.repo.Create(ctx, userID, title, target, WeekIdentifier(s.now()))
}

// CheckIn bumps a goal's completion count. Only the owner may check in,
// and a completed goal rejects further check-ins.
func (s *Service) CheckIn(ctx context.Context, userID string, goalID int64) (Goal, error) {
	g, err := s.repo.Get(ctx, goalID)
	if err != nil {
		return Goal{}, err
	}
	if g.UserID != userID {
		return Goal{}, common.ErrGoalNotFound
	}
	if g.Completed() {
		return Goal{}, common.ErrGoalCompleted
	}
	return s.repo.IncrementCompletion(ctx, goalID)
}

// MyGoals returns the user's goals for the current week.
func (s *Service) MyGoals(ctx context.Context, userID string) ([]Goal, error) {
	return s.repo.ListForUser(ctx, userID, WeekIdentifier(s.now()))
}

// TeamGoals returns everyone's goals for the current week.
func (s *Service) TeamGoals(ctx context.Context) ([]Goal, error) {
	return s.repo.ListForWeek(ctx, WeekIdentifier(s.now()))
}

// DeleteGoal soft-deletes one of the user's goals.
func (s *Service) DeleteGoal(ctx context.Context, userID string, goalID int64) error {
	removed, err := s.repo.SoftDelete(ctx, goalID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return common.ErrGoalNotFound
	}
	return nil
}

// WeeklyRecap composes the Monday recap of the previous week's goals.
// Returns an empty string when there is nothing to report.
func (s *Service) WeeklyRecap(ctx context.Context) (string, error) {
	week := PreviousWeekIdentifier(s.now())
	goals, err := s.repo.ListForWeek(ctx, week)
	if err != nil {
		return "", err
	}
	return ComposeRecap(week, goals), nil
}

// ValidateTitle enforces the minimum title length.
func ValidateTitle(title string) error {
	if len(strings.TrimSpace(title)) < MinTitleLength {
		return fmt.Errorf("%w: need at least %d characters", common.ErrGoalTitleTooShort, MinTitleLength)
	}
	return nil
}

// ValidateTarget enforces the weekly target bounds.
func ValidateTarget(target int) error {
	if target < MinTarget || target > MaxTarget {
		return fmt.Errorf("%w: must be between %d and %d", common.ErrGoalTargetRange, MinTarget, MaxTarget)
	}
	return nil
}

// ProgressBar renders one segment per target unit, checked as completed.
func ProgressBar(g Goal) string {
	var b strings.Builder
	for i := 0; i < g.TargetCount; i++ {
		if i < g.CompletionCount {
			b.WriteString("✅")
		} else {
			b.WriteString("⬜")
		}
	}
	return b.String()
}

// FormatGoalLine renders one goal for /goal-me and /goal-team lists.
func FormatGoalLine(g Goal) string {
	return fmt.Sprintf("**#%d** %s — %s %d/%d", g.ID, g.Title, ProgressBar(g), g.CompletionCount, g.TargetCount)
}

// ComposeRecap renders the weekly recap grouped by user. Completed
// goals are celebrated, the rest are listed with their progress.
func ComposeRecap(week string, goals []Goal) string {
	if len(goals) == 0 {
		return ""
	}

	byUser := make(map[string][]Goal)
	for _, g := range goals {
		byUser[g.UserID] = append(byUser[g.UserID], g)
	}
	users := make([]string, 0, len(byUser))
	for userID := range byUser {
		users = append(users, userID)
	}
	sort.Strings(users)

	var b strings.Builder
	fmt.Fprintf(&b, "📋 **Weekly Goals Recap (%s)**\n", week)
	completed, total := 0, 0
	for _, userID := range users {
		fmt.Fprintf(&b, "\n<@%s>\n", userID)
		for _, g := range byUser[userID] {
			total++
			if g.Completed() {
				completed++
				fmt.Fprintf(&b, "🎯 %s — done! (%d/%d)\n", g.Title, g.CompletionCount, g.TargetCount)
			} else {
				fmt.Fprintf(&b, "▫️ %s — %d/%d\n", g.Title, g.CompletionCount, g.TargetCount)
			}
		}
	}
	fmt.Fprintf(&b, "\n%d of %s completed. New week, new goals — set yours with /goal-set!",
		completed, common.FormatCount(total, "goal"))
	return b.String()
}
