package display

import (
	"strings"
	"time"

	"github.com/five82/pulse/internal/state"
)

// Glyphs used in the composed line.
const (
	Placeholder = "⏱️"
	SleepGlyph  = "😴"
	Separator   = " | "
)

// Kind identifies a segment.
type Kind int

const (
	KindStopwatch Kind = iota
	KindDate
	KindDay
	KindYear
	KindTransit
)

var kindTags = map[Kind]string{
	KindStopwatch: "⏱️",
	KindDate:      "📅",
	KindDay:       "☀️",
	KindYear:      "🗓️",
	KindTransit:   "🚌",
}

var kindNames = map[Kind]string{
	KindStopwatch: "stopwatch",
	KindDate:      "date",
	KindDay:       "day",
	KindYear:      "year",
	KindTransit:   "transit",
}

// Tag returns the emoji prefix for k.
func (k Kind) Tag() string { return kindTags[k] }

func (k Kind) String() string { return kindNames[k] }

// Segment is one rendered piece of the status line.
type Segment struct {
	Kind  Kind
	Value string
}

func (s Segment) String() string {
	return s.Kind.Tag() + " " + s.Value
}

// Result is the outcome of one composition.
type Result struct {
	Text     string
	Segments []Segment

	// StopwatchExpired is set when the stopwatch is enabled but has no epoch
	// or has run for a day or more. The caller disables it.
	StopwatchExpired bool
}

// Compose renders st at now. Segments appear in fixed order: stopwatch,
// target date, day progress, year progress, transit.
func Compose(st state.AppState, now time.Time) Result {
	var res Result

	if st.StopwatchEnabled {
		value, expired := Stopwatch(st.StopwatchEpoch, now)
		if expired {
			res.StopwatchExpired = true
		} else {
			res.Segments = append(res.Segments, Segment{Kind: KindStopwatch, Value: value})
		}
	}
	if st.DateComparisonEnabled && st.TargetDate != nil {
		if value := DateComparison(*st.TargetDate, now, st.DateFormat()); value != "" {
			res.Segments = append(res.Segments, Segment{Kind: KindDate, Value: value})
		}
	}
	if st.DayProgressEnabled {
		res.Segments = append(res.Segments, Segment{Kind: KindDay, Value: DayProgress(now)})
	}
	if st.YearProgressEnabled {
		res.Segments = append(res.Segments, Segment{Kind: KindYear, Value: YearProgress(now)})
	}
	if st.BusStatusEnabled {
		if value := Transit(st.LastBusCheck); value != "" {
			res.Segments = append(res.Segments, Segment{Kind: KindTransit, Value: value})
		}
	}

	if len(res.Segments) == 0 {
		res.Text = Placeholder
		return res
	}
	parts := make([]string, len(res.Segments))
	for i, seg := range res.Segments {
		parts[i] = seg.String()
	}
	res.Text = strings.Join(parts, Separator)
	return res
}
