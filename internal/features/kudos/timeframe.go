package kudos

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"lgt-bot/internal/common"
)

var timeframePattern = regexp.MustCompile(`(\d+)\s*days?`)

// ParseTimeframe turns a human timeframe like "7 days" or "1 day" into a
// day count. A string without a day count is an error, never a silent
// default — the caller decides what the default is.
func ParseTimeframe(timeframe string) (int, error) {
	match := timeframePattern.FindStringSubmatch(timeframe)
	if match == nil {
		return 0, fmt.Errorf("%w: %q", common.ErrInvalidTimeframe, timeframe)
	}
	days, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", common.ErrInvalidTimeframe, timeframe)
	}
	return days, nil
}

// TimeframeCutoff resolves a timeframe to the start of its trailing window.
func TimeframeCutoff(timeframe string, now time.Time) (time.Time, error) {
	days, err := ParseTimeframe(timeframe)
	if err != nil {
		return time.Time{}, err
	}
	return now.AddDate(0, 0, -days), nil
}
