package state

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrTime(t time.Time) *time.Time { return &t }
func ptrString(s string) *string     { return &s }

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	cases := []AppState{
		{},
		{
			StopwatchEnabled:      true,
			StopwatchEpoch:        ptrTime(time.Date(2026, 10, 17, 9, 30, 15, 123456000, time.Local)),
			DateComparisonEnabled: true,
			TargetDate:            ptrTime(time.Date(2027, 1, 1, 0, 0, 0, 0, time.Local)),
			YMD:                   true,
			DayProgressEnabled:    true,
			YearProgressEnabled:   true,
			BusStatusEnabled:      true,
			LastBusCheck:          ptrString("14:05"),
		},
		{DaysOnly: true, LastBusCheck: ptrString("")},
	}

	for i, want := range cases {
		require.NoError(t, Save(path, want), "case %d", i)
		got, err := Load(path)
		require.NoError(t, err, "case %d", i)
		assert.True(t, want.Equal(got), "case %d: got %#v want %#v", i, got, want)
	}
}

func TestLoad_MissingFileIsDisabled(t *testing.T) {
	st, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.False(t, st.AnyEnabled())
	assert.Nil(t, st.StopwatchEpoch)
	assert.Nil(t, st.LastBusCheck)
}

func TestLoad_EmptyFileIsDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))

	st, err := Load(path)
	require.NoError(t, err)
	assert.True(t, st.Equal(AppState{}))
}

func TestLoad_NotAnObjectFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("[1, 2"), 0o644))

	st, err := Load(path)
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, path, loadErr.Path)
	assert.True(t, st.Equal(AppState{}))
}

func TestLoad_BadFieldsOnlyResetThemselves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	body := `{
		"stopwatch_enabled": "yes",
		"stopwatch_epoch": "not a time",
		"day_progress_enabled": true,
		"target_date": "2027-01-01T00:00:00",
		"last_bus_check": 12,
		"unknown_key": {"nested": true}
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	st, err := Load(path)
	require.Error(t, err)
	msg := err.Error()
	assert.True(t, strings.Contains(msg, keyStopwatchEnabled))
	assert.True(t, strings.Contains(msg, keyStopwatchEpoch))
	assert.True(t, strings.Contains(msg, keyLastBusCheck))

	assert.False(t, st.StopwatchEnabled)
	assert.Nil(t, st.StopwatchEpoch)
	assert.Nil(t, st.LastBusCheck)
	assert.True(t, st.DayProgressEnabled)
	require.NotNil(t, st.TargetDate)
	assert.True(t, st.TargetDate.Equal(time.Date(2027, 1, 1, 0, 0, 0, 0, time.Local)))
}

func TestLoad_NullsAndPartialKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	body := `{"stopwatch_enabled": null, "stopwatch_epoch": null, "year_progress_enabled": true}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	st, err := Load(path)
	require.NoError(t, err)
	assert.False(t, st.StopwatchEnabled)
	assert.True(t, st.YearProgressEnabled)
	assert.False(t, st.BusStatusEnabled)
}

func TestDecode_BothFormatFlagsNormalizeToDaysOnly(t *testing.T) {
	st, err := Decode([]byte(`{"days_only_date_comparison": true, "YMD_date_comparison": true}`))
	require.NoError(t, err)
	assert.Equal(t, FormatDaysOnly, st.DateFormat())
	assert.False(t, st.YMD)
}

func TestEncode_WritesNaiveTimestampsAndNulls(t *testing.T) {
	epoch := time.Date(2026, 10, 17, 8, 0, 1, 500000000, time.Local)
	data, err := Encode(AppState{StopwatchEnabled: true, StopwatchEpoch: &epoch})
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"stopwatch_epoch":"2026-10-17T08:00:01.500000"`)
	assert.Contains(t, s, `"target_date":null`)
	assert.Contains(t, s, `"YMD_date_comparison":false`)
}

func TestParseTimestamp_Layouts(t *testing.T) {
	want := time.Date(2026, 10, 17, 8, 0, 1, 0, time.Local)

	for _, in := range []string{
		"2026-10-17T08:00:01",
		"2026-10-17T08:00:01.000000",
		"2026-10-17 08:00:01",
		want.Format(time.RFC3339),
	} {
		got, err := ParseTimestamp(in)
		require.NoError(t, err, in)
		assert.True(t, got.Equal(want), "%s parsed to %v", in, got)
	}

	_, err := ParseTimestamp("yesterday")
	assert.Error(t, err)
}

func TestStore_UsesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	s := NewStore(path)
	assert.Equal(t, path, s.Path())

	require.NoError(t, s.Save(AppState{BusStatusEnabled: true}))
	st, err := s.Load()
	require.NoError(t, err)
	assert.True(t, st.BusStatusEnabled)
}
