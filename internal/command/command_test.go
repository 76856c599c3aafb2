package command

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/pulse/internal/state"
)

var now = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

func TestApply_TogglesFlipExactlyOneFlag(t *testing.T) {
	flags := func(st state.AppState) []bool {
		return []bool{
			st.StopwatchEnabled, st.DateComparisonEnabled, st.DayProgressEnabled,
			st.YearProgressEnabled, st.BusStatusEnabled,
		}
	}
	toggles := []Kind{ToggleStopwatch, ToggleDateComparison, ToggleDayProgress, ToggleYearProgress, ToggleBusStatus}

	for i, k := range toggles {
		t.Run(k.String(), func(t *testing.T) {
			var st state.AppState
			out := Apply(&st, Of(k), now)
			assert.True(t, out.Changed)

			got := flags(st)
			for j, v := range got {
				assert.Equal(t, i == j, v, "flag %d after toggling %s", j, k)
			}

			Apply(&st, Of(k), now)
			assert.False(t, st.AnyEnabled())
		})
	}
}

func TestApply_StopwatchStampsAndClearsEpoch(t *testing.T) {
	var st state.AppState
	Apply(&st, Of(ToggleStopwatch), now)
	require.NotNil(t, st.StopwatchEpoch)
	assert.True(t, st.StopwatchEpoch.Equal(now))

	Apply(&st, Of(ToggleStopwatch), now.Add(time.Minute))
	assert.Nil(t, st.StopwatchEpoch)
}

func TestApply_TimestampsSurviveReload(t *testing.T) {
	precise := now.Add(123456789 * time.Nanosecond)

	var st state.AppState
	Apply(&st, Of(ToggleStopwatch), precise)
	Apply(&st, Target(precise.Add(48*time.Hour)), precise)

	data, err := state.Encode(st)
	require.NoError(t, err)
	reloaded, err := state.Decode(data)
	require.NoError(t, err)
	assert.True(t, reloaded.Equal(st), "saved %+v, reloaded %+v", st, reloaded)
}

func TestApply_DateComparisonPromptsOnlyWhenEnabling(t *testing.T) {
	var st state.AppState
	out := Apply(&st, Of(ToggleDateComparison), now)
	assert.True(t, out.PromptDate)

	out = Apply(&st, Of(ToggleDateComparison), now)
	assert.False(t, out.PromptDate)
}

func TestApply_SetTargetDate(t *testing.T) {
	var st state.AppState
	target := now.Add(72 * time.Hour)

	out := Apply(&st, Target(target), now)
	assert.True(t, out.Changed)
	require.NotNil(t, st.TargetDate)
	assert.True(t, st.TargetDate.Equal(target))

	out = Apply(&st, Target(time.Time{}), now)
	assert.False(t, out.Changed)
	assert.True(t, st.TargetDate.Equal(target))
}

func TestApply_FormatCycleIsThreeCycle(t *testing.T) {
	for _, start := range []state.DateFormat{state.FormatDaysOnly, state.FormatYMD, state.FormatFull} {
		var st state.AppState
		st.SetDateFormat(start)
		for i := 0; i < 3; i++ {
			Apply(&st, Of(CycleDateFormat), now)
			assert.False(t, st.DaysOnly && st.YMD, "flags must stay exclusive")
		}
		assert.Equal(t, start, st.DateFormat())
	}
}

func TestApply_FormatCycleOrder(t *testing.T) {
	var st state.AppState
	st.SetDateFormat(state.FormatDaysOnly)

	Apply(&st, Of(CycleDateFormat), now)
	assert.Equal(t, state.FormatYMD, st.DateFormat())
	Apply(&st, Of(CycleDateFormat), now)
	assert.Equal(t, state.FormatFull, st.DateFormat())
	Apply(&st, Of(CycleDateFormat), now)
	assert.Equal(t, state.FormatDaysOnly, st.DateFormat())
}

func TestLabel(t *testing.T) {
	var st state.AppState
	assert.Equal(t, "Enable Stopwatch", Label(ToggleStopwatch, st))
	assert.Equal(t, "Enable Bus Status", Label(ToggleBusStatus, st))
	assert.Equal(t, "Toggle Date Comparison Format (YMDHMS)", Label(CycleDateFormat, st))

	st.StopwatchEnabled = true
	st.DaysOnly = true
	assert.Equal(t, "Disable Stopwatch", Label(ToggleStopwatch, st))
	assert.Equal(t, "Toggle Date Comparison Format (D)", Label(CycleDateFormat, st))

	st.SetDateFormat(state.FormatYMD)
	assert.Equal(t, "Toggle Date Comparison Format (YMD)", Label(CycleDateFormat, st))
}

func TestParse(t *testing.T) {
	k, err := Parse(" Stopwatch ")
	require.NoError(t, err)
	assert.Equal(t, ToggleStopwatch, k)

	k, err = Parse("format")
	require.NoError(t, err)
	assert.Equal(t, CycleDateFormat, k)

	_, err = Parse("target")
	assert.Error(t, err)
	_, err = Parse("nope")
	assert.ErrorContains(t, err, "stopwatch")
}

func TestMenuOrder(t *testing.T) {
	assert.Equal(t, []Kind{
		ToggleStopwatch, ToggleDateComparison, ToggleDayProgress,
		ToggleYearProgress, ToggleBusStatus, CycleDateFormat,
	}, Menu())
}
