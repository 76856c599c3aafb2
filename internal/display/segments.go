package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/five82/pulse/internal/state"
)

const (
	stopwatchLimit = 24 * time.Hour
	dayStart       = 6 * time.Hour
	dayEnd         = 22 * time.Hour
)

// Stopwatch formats the time elapsed since epoch as MM:SS, or HH:MM:SS once an
// hour has passed. expired is true when epoch is nil or a day has elapsed.
func Stopwatch(epoch *time.Time, now time.Time) (value string, expired bool) {
	if epoch == nil {
		return "", true
	}
	elapsed := now.Sub(*epoch)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed >= stopwatchLimit {
		return "", true
	}
	return clock(elapsed), false
}

// DayProgress reports how far now is through the 06:00–22:00 waking window.
func DayProgress(now time.Time) string {
	h, m, s := now.Clock()
	since := time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second
	if since < dayStart || since >= dayEnd {
		return SleepGlyph
	}
	pct := 100 * float64(since-dayStart) / float64(dayEnd-dayStart)
	return fmt.Sprintf("%.2f%%", pct)
}

// YearProgress reports how far now is through its calendar year.
func YearProgress(now time.Time) string {
	loc := now.Location()
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)
	end := time.Date(now.Year()+1, time.January, 1, 0, 0, 0, 0, loc)
	pct := 100 * float64(now.Sub(start)) / float64(end.Sub(start))
	return fmt.Sprintf("%.1f%%", pct)
}

// DateComparison renders the distance between now and target. The direction is
// dropped; only magnitudes are shown.
func DateComparison(target, now time.Time, format state.DateFormat) string {
	if format == state.FormatDaysOnly {
		days := elapsedDays(naive(now).Sub(naive(target.In(now.Location()))))
		if days < 0 {
			days = -days
		}
		return fmt.Sprintf("%dD", days)
	}

	diff := Between(now, target)
	var parts []string
	if diff.Years != 0 {
		parts = append(parts, fmt.Sprintf("%dY", diff.Years))
	}
	if diff.Months != 0 {
		parts = append(parts, fmt.Sprintf("%dM", diff.Months))
	}
	if diff.Days != 0 {
		parts = append(parts, fmt.Sprintf("%dD", diff.Days))
	}
	if format == state.FormatFull {
		parts = append(parts, fmt.Sprintf("%02d:%02d:%02d", diff.Hours, diff.Minutes, diff.Seconds))
	}
	return strings.Join(parts, " ")
}

// Transit returns the cached arrival verbatim, or "" when none was fetched.
func Transit(last *string) string {
	if last == nil {
		return ""
	}
	return *last
}

// elapsedDays floors d to whole days, rounding toward negative infinity.
func elapsedDays(d time.Duration) int64 {
	const day = 24 * time.Hour
	n := int64(d / day)
	if d%day != 0 && d < 0 {
		n--
	}
	return n
}

func clock(d time.Duration) string {
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
