// Package kudos — scoring.go is the pure scoring engine. Everything here is
// a function of a Tally and the level table; no state, safe to call
// concurrently.
package kudos

import "fmt"

// Points computes total points from a raw tally:
//
//	uniqueMessages*10 + (received-unique)*3 + given*1
//
// The first reaction on each message earns the big award, every further
// reaction on the same message earns the small one, and each kudos given
// earns a token point.
func Points(t Tally) int {
	additional := t.ReactionsReceived - t.UniqueMessages
	return t.UniqueMessages*FirstReactionPoints +
		additional*AdditionalReactionPoints +
		t.ReactionsGiven*GivingReactionPoints
}

// ResolveLevel finds the level whose range contains points. With a valid
// level table every non-negative total matches exactly one level; the
// lowest level is the defensive fallback.
func ResolveLevel(points int) Level {
	for _, l := range Levels {
		if points >= l.MinPoints && (l.Unbounded() || points <= l.MaxPoints) {
			return l
		}
	}
	return Levels[0]
}

// NextLevel returns the level after l, or false at the top of the ladder.
func NextLevel(l Level) (Level, bool) {
	for _, candidate := range Levels {
		if candidate.Level == l.Level+1 {
			return candidate, true
		}
	}
	return Level{}, false
}

// BuildStats assembles the derived stats view for one user's tally.
func BuildStats(t Tally) UserStats {
	points := Points(t)
	level := ResolveLevel(points)

	stats := UserStats{
		UserID:            t.UserID,
		TotalPoints:       points,
		Level:             level,
		ReactionsReceived: t.ReactionsReceived,
		ReactionsGiven:    t.ReactionsGiven,
	}
	if next, ok := NextLevel(level); ok {
		needed := next.MinPoints - points
		stats.PointsToNextLevel = &needed
	}
	return stats
}

// ValidateLevels checks the level table invariant: ordered, starting at 0,
// contiguous ranges with no gaps or overlaps, unbounded only at the top.
func ValidateLevels(levels []Level) error {
	if len(levels) == 0 {
		return fmt.Errorf("level table is empty")
	}
	if levels[0].MinPoints != 0 {
		return fmt.Errorf("lowest level must start at 0, got %d", levels[0].MinPoints)
	}
	for i, l := range levels {
		last := i == len(levels)-1
		if l.Level != i+1 {
			return fmt.Errorf("level numbering broken at index %d: got %d", i, l.Level)
		}
		if l.Unbounded() && !last {
			return fmt.Errorf("level %d is unbounded but not the top tier", l.Level)
		}
		if last {
			if !l.Unbounded() {
				return fmt.Errorf("top level %d must be unbounded", l.Level)
			}
			continue
		}
		if l.MaxPoints < l.MinPoints {
			return fmt.Errorf("level %d has inverted range [%d, %d]", l.Level, l.MinPoints, l.MaxPoints)
		}
		if levels[i+1].MinPoints != l.MaxPoints+1 {
			return fmt.Errorf("gap or overlap between level %d and %d", l.Level, levels[i+1].Level)
		}
	}
	return nil
}
