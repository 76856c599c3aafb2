package state

import "time"

// AppState is the persisted record behind the status line.
type AppState struct {
	StopwatchEnabled bool
	StopwatchEpoch   *time.Time

	DateComparisonEnabled bool
	TargetDate            *time.Time
	DaysOnly              bool
	YMD                   bool

	DayProgressEnabled  bool
	YearProgressEnabled bool

	BusStatusEnabled bool
	LastBusCheck     *string
}

// DateFormat selects how the target-date segment is rendered.
type DateFormat int

const (
	// FormatFull shows years, months, days and the HH:MM:SS remainder.
	FormatFull DateFormat = iota
	// FormatDaysOnly shows the absolute day count.
	FormatDaysOnly
	// FormatYMD shows years, months and days.
	FormatYMD
)

func (f DateFormat) String() string {
	switch f {
	case FormatDaysOnly:
		return "D"
	case FormatYMD:
		return "YMD"
	default:
		return "YMDHMS"
	}
}

// Next returns the following format in the DaysOnly → YMD → Full cycle.
func (f DateFormat) Next() DateFormat {
	switch f {
	case FormatDaysOnly:
		return FormatYMD
	case FormatYMD:
		return FormatFull
	default:
		return FormatDaysOnly
	}
}

// DateFormat derives the three-state format from the two stored flags.
func (s AppState) DateFormat() DateFormat {
	switch {
	case s.DaysOnly:
		return FormatDaysOnly
	case s.YMD:
		return FormatYMD
	default:
		return FormatFull
	}
}

// SetDateFormat stores f, keeping the flags mutually exclusive.
func (s *AppState) SetDateFormat(f DateFormat) {
	s.DaysOnly = f == FormatDaysOnly
	s.YMD = f == FormatYMD
}

// AnyEnabled reports whether at least one segment is switched on.
func (s AppState) AnyEnabled() bool {
	return s.StopwatchEnabled || s.DateComparisonEnabled || s.DayProgressEnabled ||
		s.YearProgressEnabled || s.BusStatusEnabled
}

// Clone returns a copy that shares no pointers with s.
func (s AppState) Clone() AppState {
	out := s
	out.StopwatchEpoch = cloneTime(s.StopwatchEpoch)
	out.TargetDate = cloneTime(s.TargetDate)
	if s.LastBusCheck != nil {
		v := *s.LastBusCheck
		out.LastBusCheck = &v
	}
	return out
}

// Equal compares two states, treating timestamps by instant.
func (s AppState) Equal(o AppState) bool {
	if s.StopwatchEnabled != o.StopwatchEnabled ||
		s.DateComparisonEnabled != o.DateComparisonEnabled ||
		s.DaysOnly != o.DaysOnly ||
		s.YMD != o.YMD ||
		s.DayProgressEnabled != o.DayProgressEnabled ||
		s.YearProgressEnabled != o.YearProgressEnabled ||
		s.BusStatusEnabled != o.BusStatusEnabled {
		return false
	}
	if !timeEqual(s.StopwatchEpoch, o.StopwatchEpoch) || !timeEqual(s.TargetDate, o.TargetDate) {
		return false
	}
	switch {
	case s.LastBusCheck == nil && o.LastBusCheck == nil:
		return true
	case s.LastBusCheck == nil || o.LastBusCheck == nil:
		return false
	default:
		return *s.LastBusCheck == *o.LastBusCheck
	}
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func timeEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
