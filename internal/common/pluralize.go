// Package common — pluralize.go holds small English formatting helpers
// used by announcement text across features.
package common

import "fmt"

// Plural returns the singular or "s"-suffixed form of word for n.
//
// Examples:
//
//	Plural(1, "ban")  → "ban"
//	Plural(3, "ban")  → "bans"
func Plural(n int, word string) string {
	if n == 1 || n == -1 {
		return word
	}
	return word + "s"
}

// FormatCount renders "<n> <word(s)>", e.g. FormatCount(2, "point") → "2 points".
func FormatCount(n int, word string) string {
	return fmt.Sprintf("%d %s", n, Plural(n, word))
}

// Ordinal returns n with its English ordinal suffix.
//
// Rules:
//   - 11–13 (and 111–113, ...) → "th"
//   - otherwise by last digit: 1 → "st", 2 → "nd", 3 → "rd", rest → "th"
func Ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
