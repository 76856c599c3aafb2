package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/pulse/internal/state"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	toggleTarget = ""
	printSegments = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func testEnv(t *testing.T) (statePath string, base []string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	statePath = filepath.Join(home, "state.json")
	return statePath, []string{"--config", filepath.Join(home, "missing.toml"), "--state", statePath}
}

func TestPrint_EmptyState(t *testing.T) {
	_, base := testEnv(t)

	out, err := execute(t, append([]string{"print"}, base...)...)
	require.NoError(t, err)
	assert.Equal(t, "⏱️\n", out)
}

func TestToggle_StopwatchThenPrint(t *testing.T) {
	statePath, base := testEnv(t)

	out, err := execute(t, append([]string{"toggle", "stopwatch"}, base...)...)
	require.NoError(t, err)
	assert.Equal(t, "stopwatch: on\n", out)

	st, err := state.Load(statePath)
	require.NoError(t, err)
	assert.True(t, st.StopwatchEnabled)
	assert.NotNil(t, st.StopwatchEpoch)

	out, err = execute(t, append([]string{"print", "--segments"}, base...)...)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "stopwatch\t00:0"), "got %q", out)
}

func TestToggle_DateWithTarget(t *testing.T) {
	statePath, base := testEnv(t)

	_, err := execute(t, append([]string{"toggle", "format"}, base...)...)
	require.NoError(t, err)

	out, err := execute(t, append([]string{"toggle", "date", "--target", "2099-01-01"}, base...)...)
	require.NoError(t, err)
	assert.Equal(t, "date: on\n", out)

	st, err := state.Load(statePath)
	require.NoError(t, err)
	require.NotNil(t, st.TargetDate)
	assert.Equal(t, 2099, st.TargetDate.Year())
	assert.Equal(t, state.FormatDaysOnly, st.DateFormat())

	out, err = execute(t, append([]string{"print"}, base...)...)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "📅 "), "got %q", out)
	assert.True(t, strings.HasSuffix(out, "D\n"), "got %q", out)
}

func TestToggle_DateWithoutTargetWarns(t *testing.T) {
	_, base := testEnv(t)

	out, err := execute(t, append([]string{"toggle", "date"}, base...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "date: on")
	assert.Contains(t, out, "no target date set")
}

func TestToggle_FormatCycles(t *testing.T) {
	_, base := testEnv(t)

	var got []string
	for i := 0; i < 3; i++ {
		out, err := execute(t, append([]string{"toggle", "format"}, base...)...)
		require.NoError(t, err)
		got = append(got, strings.TrimSpace(out))
	}
	assert.Equal(t, []string{"format: D", "format: YMD", "format: YMDHMS"}, got)
}

func TestTarget(t *testing.T) {
	statePath, base := testEnv(t)

	out, err := execute(t, append([]string{"target", "2030-06-01", "12:00"}, base...)...)
	require.NoError(t, err)
	assert.Equal(t, "target: 2030-06-01 12:00:00\n", out)

	st, err := state.Load(statePath)
	require.NoError(t, err)
	require.NotNil(t, st.TargetDate)
	assert.False(t, st.DateComparisonEnabled)
}

func TestErrors(t *testing.T) {
	_, base := testEnv(t)

	_, err := execute(t, append([]string{"toggle", "nope"}, base...)...)
	assert.ErrorContains(t, err, "unknown toggle")

	_, err = execute(t, append([]string{"target", "someday"}, base...)...)
	assert.ErrorContains(t, err, "invalid date")

	_, err = execute(t, append([]string{"toggle", "date", "--target", "31/01/2025"}, base...)...)
	assert.ErrorContains(t, err, "invalid date")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "pulse dev\n"), "got %q", out)
}
