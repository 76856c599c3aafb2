package command

import (
	"fmt"
	"strings"
	"time"
)

// TargetLayout is how target dates are shown for editing.
const TargetLayout = "2006-01-02 15:04:05"

var targetLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTarget reads a user-entered date as YYYY-MM-DD with an optional
// HH:MM or HH:MM:SS, in loc. A nil loc means time.Local.
func ParseTarget(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range targetLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD [HH:MM[:SS]])", s)
}
