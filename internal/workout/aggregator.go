package workout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// averageWindow is the number of most recent entries averaged once enough exist.
const averageWindow = 3

// Window picks the entries an average is computed over:
//   - len <= 1: nothing
//   - 2..3:     entries[1:]
//   - >= 4:     the last three
//
// Columns read from a sub-table carry the header at index 0, so the
// short-window case is what drops it.
func Window(entries []string) []string {
	switch n := len(entries); {
	case n <= 1:
		return nil
	case n <= averageWindow:
		return entries[1:]
	default:
		return entries[n-averageWindow:]
	}
}

// AverageDuration averages the windowed HH:MM:SS entries and formats the
// result as H:MM:SS. ok is false when there is nothing to average.
func AverageDuration(entries []string) (avg string, ok bool, err error) {
	window := Window(entries)
	if len(window) == 0 {
		return "", false, nil
	}

	var total float64
	for _, entry := range window {
		seconds, err := DurationSeconds(entry)
		if err != nil {
			return "", false, err
		}
		total += float64(seconds)
	}

	return FormatElapsed(total / float64(len(window))), true, nil
}

// AverageDistance averages the windowed DD.DD entries.
// ok is false when there is nothing to average.
func AverageDistance(entries []string) (avg float64, ok bool, err error) {
	window := Window(entries)
	if len(window) == 0 {
		return 0, false, nil
	}

	var total float64
	for _, entry := range window {
		distance, err := strconv.ParseFloat(strings.TrimSpace(entry), 64)
		if err != nil {
			return 0, false, fmt.Errorf("parse distance %q: %w", entry, err)
		}
		total += distance
	}

	return total / float64(len(window)), true, nil
}

// DurationSeconds converts HH:MM:SS to total seconds.
func DurationSeconds(duration string) (int, error) {
	duration = strings.TrimSpace(duration)
	if err := ValidateDuration(duration); err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", duration, err)
	}

	// validated above, Atoi cannot fail on two digits
	parts := strings.Split(duration, ":")
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	s, _ := strconv.Atoi(parts[2])

	return h*3600 + m*60 + s, nil
}

// FormatElapsed formats seconds as H:MM:SS, rounded to the nearest second,
// with no leading zero on hours.
func FormatElapsed(seconds float64) string {
	total := int64(math.Round(seconds))
	if total < 0 {
		total = 0
	}
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
