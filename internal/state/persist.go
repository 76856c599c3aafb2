package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/five82/pulse/internal/fsutil"
)

// Keys of the persisted JSON object.
const (
	keyStopwatchEnabled      = "stopwatch_enabled"
	keyStopwatchEpoch        = "stopwatch_epoch"
	keyDateComparisonEnabled = "date_comparison_enabled"
	keyTargetDate            = "target_date"
	keyDaysOnly              = "days_only_date_comparison"
	keyYMD                   = "YMD_date_comparison"
	keyDayProgressEnabled    = "day_progress_enabled"
	keyYearProgressEnabled   = "year_progress_enabled"
	keyBusStatusEnabled      = "bus_status_enabled"
	keyLastBusCheck          = "last_bus_check"
)

// timestampLayout is a naive local ISO-8601 timestamp with microseconds.
const timestampLayout = "2006-01-02T15:04:05.000000"

// TimestampPrecision is the finest unit that survives Save. Times stored in
// AppState should be truncated to it so a reload compares Equal.
const TimestampPrecision = time.Microsecond

var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// LoadError reports a state file that could not be fully decoded. The state
// returned alongside it is still usable; affected fields hold defaults.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("state file %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads the state file at path. A missing or empty file yields the zero
// state with a nil error. Anything malformed yields defaults for the affected
// fields and a *LoadError.
func Load(path string) (AppState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return AppState{}, nil
		}
		return AppState{}, &LoadError{Path: path, Err: fmt.Errorf("read: %w", err)}
	}
	st, err := Decode(data)
	if err != nil {
		return st, &LoadError{Path: path, Err: err}
	}
	return st, nil
}

// Decode parses a persisted state object field by field.
func Decode(data []byte) (AppState, error) {
	var st AppState
	if len(bytes.TrimSpace(data)) == 0 {
		return st, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return AppState{}, fmt.Errorf("decode object: %w", err)
	}

	var errs []error
	decodeBool(raw, keyStopwatchEnabled, &st.StopwatchEnabled, &errs)
	decodeBool(raw, keyDateComparisonEnabled, &st.DateComparisonEnabled, &errs)
	decodeBool(raw, keyDaysOnly, &st.DaysOnly, &errs)
	decodeBool(raw, keyYMD, &st.YMD, &errs)
	decodeBool(raw, keyDayProgressEnabled, &st.DayProgressEnabled, &errs)
	decodeBool(raw, keyYearProgressEnabled, &st.YearProgressEnabled, &errs)
	decodeBool(raw, keyBusStatusEnabled, &st.BusStatusEnabled, &errs)
	st.StopwatchEpoch = decodeTime(raw, keyStopwatchEpoch, &errs)
	st.TargetDate = decodeTime(raw, keyTargetDate, &errs)
	st.LastBusCheck = decodeString(raw, keyLastBusCheck, &errs)

	if st.DaysOnly && st.YMD {
		st.YMD = false
	}
	return st, errors.Join(errs...)
}

// Encode renders st as the persisted JSON object.
func Encode(st AppState) ([]byte, error) {
	out := struct {
		StopwatchEnabled      bool    `json:"stopwatch_enabled"`
		StopwatchEpoch        *string `json:"stopwatch_epoch"`
		DateComparisonEnabled bool    `json:"date_comparison_enabled"`
		TargetDate            *string `json:"target_date"`
		DaysOnly              bool    `json:"days_only_date_comparison"`
		YMD                   bool    `json:"YMD_date_comparison"`
		DayProgressEnabled    bool    `json:"day_progress_enabled"`
		YearProgressEnabled   bool    `json:"year_progress_enabled"`
		BusStatusEnabled      bool    `json:"bus_status_enabled"`
		LastBusCheck          *string `json:"last_bus_check"`
	}{
		StopwatchEnabled:      st.StopwatchEnabled,
		StopwatchEpoch:        formatTime(st.StopwatchEpoch),
		DateComparisonEnabled: st.DateComparisonEnabled,
		TargetDate:            formatTime(st.TargetDate),
		DaysOnly:              st.DaysOnly,
		YMD:                   st.YMD,
		DayProgressEnabled:    st.DayProgressEnabled,
		YearProgressEnabled:   st.YearProgressEnabled,
		BusStatusEnabled:      st.BusStatusEnabled,
		LastBusCheck:          st.LastBusCheck,
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	return data, nil
}

// Save writes st to path atomically, creating parent directories.
func Save(path string, st AppState) error {
	data, err := Encode(st)
	if err != nil {
		return err
	}
	if err := fsutil.WriteAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

// ParseTimestamp accepts RFC 3339 and naive local ISO-8601 timestamps.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", value)
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.In(time.Local).Format(timestampLayout)
	return &s
}

func present(raw map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	v, ok := raw[key]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return nil, false
	}
	return v, true
}

func decodeBool(raw map[string]json.RawMessage, key string, dst *bool, errs *[]error) {
	v, ok := present(raw, key)
	if !ok {
		return
	}
	if err := json.Unmarshal(v, dst); err != nil {
		*dst = false
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
	}
}

func decodeString(raw map[string]json.RawMessage, key string, errs *[]error) *string {
	v, ok := present(raw, key)
	if !ok {
		return nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return nil
	}
	return &s
}

func decodeTime(raw map[string]json.RawMessage, key string, errs *[]error) *time.Time {
	s := decodeString(raw, key, errs)
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	t, err := ParseTimestamp(*s)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return nil
	}
	return &t
}
