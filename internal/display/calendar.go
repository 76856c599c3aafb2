package display

import "time"

// CalendarDiff is a calendar-aware distance. All fields are non-negative.
type CalendarDiff struct {
	Years   int
	Months  int
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// Between measures from from to to in whole months first, anchored at from,
// and expresses the rest as days and clock time. Month arithmetic clamps to
// the last day of shorter months, so Jan 31 plus one month is Feb 28/29.
// Wall-clock fields are compared in from's location, ignoring DST shifts.
func Between(from, to time.Time) CalendarDiff {
	a := naive(from)
	b := naive(to.In(from.Location()))

	months := (b.Year()-a.Year())*12 + int(b.Month()-a.Month())
	anchor := addMonths(a, months)
	if b.Before(a) {
		if anchor.Before(b) {
			months++
			anchor = addMonths(a, months)
		}
	} else if anchor.After(b) {
		months--
		anchor = addMonths(a, months)
	}

	rest := b.Sub(anchor)
	if rest < 0 {
		rest = -rest
	}
	if months < 0 {
		months = -months
	}

	total := int64(rest / time.Second)
	return CalendarDiff{
		Years:   months / 12,
		Months:  months % 12,
		Days:    int(total / 86400),
		Hours:   int(total % 86400 / 3600),
		Minutes: int(total % 3600 / 60),
		Seconds: int(total % 60),
	}
}

func naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func addMonths(t time.Time, n int) time.Time {
	idx := int(t.Month()) - 1 + n
	year := t.Year() + floorDiv(idx, 12)
	month := time.Month(idx - floorDiv(idx, 12)*12 + 1)
	day := t.Day()
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
