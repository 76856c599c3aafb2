// Package command defines the user actions that change pulse state and the
// single transition function that applies them.
package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/five82/pulse/internal/state"
)

// Kind enumerates the actions.
type Kind int

const (
	ToggleStopwatch Kind = iota
	ToggleDateComparison
	ToggleDayProgress
	ToggleYearProgress
	ToggleBusStatus
	CycleDateFormat
	SetTargetDate
)

var kindNames = map[Kind]string{
	ToggleStopwatch:      "stopwatch",
	ToggleDateComparison: "date",
	ToggleDayProgress:    "day",
	ToggleYearProgress:   "year",
	ToggleBusStatus:      "bus",
	CycleDateFormat:      "format",
	SetTargetDate:        "target",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Command is one action. Target is only meaningful for SetTargetDate.
type Command struct {
	Kind   Kind
	Target time.Time
}

// Of wraps a toggle kind.
func Of(k Kind) Command {
	return Command{Kind: k}
}

// Target returns a SetTargetDate command.
func Target(t time.Time) Command {
	return Command{Kind: SetTargetDate, Target: t}
}

// Menu lists the toggles in menu order.
func Menu() []Kind {
	return []Kind{
		ToggleStopwatch,
		ToggleDateComparison,
		ToggleDayProgress,
		ToggleYearProgress,
		ToggleBusStatus,
		CycleDateFormat,
	}
}

// Parse resolves a CLI name such as "stopwatch" or "format".
func Parse(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, k := range Menu() {
		if kindNames[k] == name {
			return k, nil
		}
	}
	names := make([]string, 0, len(Menu()))
	for _, k := range Menu() {
		names = append(names, kindNames[k])
	}
	return 0, fmt.Errorf("unknown toggle %q (want one of %s)", name, strings.Join(names, ", "))
}

// Outcome describes what Apply did.
type Outcome struct {
	// Changed is true when st was mutated and should be saved.
	Changed bool
	// PromptDate asks the caller to collect a target date and send it back as
	// a SetTargetDate command.
	PromptDate bool
}

// Apply mutates st according to cmd. Each toggle flips exactly one flag;
// the stopwatch also stamps or clears its epoch.
func Apply(st *state.AppState, cmd Command, now time.Time) Outcome {
	switch cmd.Kind {
	case ToggleStopwatch:
		st.StopwatchEnabled = !st.StopwatchEnabled
		if st.StopwatchEnabled {
			epoch := now.Truncate(state.TimestampPrecision)
			st.StopwatchEpoch = &epoch
		} else {
			st.StopwatchEpoch = nil
		}
		return Outcome{Changed: true}
	case ToggleDateComparison:
		st.DateComparisonEnabled = !st.DateComparisonEnabled
		return Outcome{Changed: true, PromptDate: st.DateComparisonEnabled}
	case ToggleDayProgress:
		st.DayProgressEnabled = !st.DayProgressEnabled
		return Outcome{Changed: true}
	case ToggleYearProgress:
		st.YearProgressEnabled = !st.YearProgressEnabled
		return Outcome{Changed: true}
	case ToggleBusStatus:
		st.BusStatusEnabled = !st.BusStatusEnabled
		return Outcome{Changed: true}
	case CycleDateFormat:
		st.SetDateFormat(st.DateFormat().Next())
		return Outcome{Changed: true}
	case SetTargetDate:
		if cmd.Target.IsZero() {
			return Outcome{}
		}
		target := cmd.Target.Truncate(state.TimestampPrecision)
		st.TargetDate = &target
		return Outcome{Changed: true}
	}
	return Outcome{}
}

var toggleTitles = map[Kind]string{
	ToggleStopwatch:      "Stopwatch",
	ToggleDateComparison: "Date Comparison",
	ToggleDayProgress:    "Day Progress",
	ToggleYearProgress:   "Year Progress",
	ToggleBusStatus:      "Bus Status",
}

// Label returns the menu text for k given the current state.
func Label(k Kind, st state.AppState) string {
	if k == CycleDateFormat {
		return fmt.Sprintf("Toggle Date Comparison Format (%s)", st.DateFormat())
	}
	title, ok := toggleTitles[k]
	if !ok {
		return k.String()
	}
	if Enabled(k, st) {
		return "Disable " + title
	}
	return "Enable " + title
}

// Enabled reports whether the feature behind toggle k is on.
func Enabled(k Kind, st state.AppState) bool {
	switch k {
	case ToggleStopwatch:
		return st.StopwatchEnabled
	case ToggleDateComparison:
		return st.DateComparisonEnabled
	case ToggleDayProgress:
		return st.DayProgressEnabled
	case ToggleYearProgress:
		return st.YearProgressEnabled
	case ToggleBusStatus:
		return st.BusStatusEnabled
	}
	return false
}
