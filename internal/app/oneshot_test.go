package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/pulse/internal/command"
	"github.com/five82/pulse/internal/state"
)

func TestRender_ExpiresStopwatchOnDisk(t *testing.T) {
	store := state.NewStore(filepath.Join(t.TempDir(), "state.json"))
	epoch := base.Add(-25 * time.Hour)
	require.NoError(t, store.Save(state.AppState{StopwatchEnabled: true, StopwatchEpoch: &epoch, DayProgressEnabled: true}))

	res, err := Render(store, base)
	require.NoError(t, err)
	assert.True(t, res.StopwatchExpired)
	assert.Equal(t, "☀️ 50.00%", res.Text)

	st, err := store.Load()
	require.NoError(t, err)
	assert.False(t, st.StopwatchEnabled)
	assert.Nil(t, st.StopwatchEpoch)
}

func TestRender_MissingFile(t *testing.T) {
	store := state.NewStore(filepath.Join(t.TempDir(), "state.json"))
	res, err := Render(store, base)
	require.NoError(t, err)
	assert.Equal(t, "⏱️", res.Text)
}

func TestToggle_WithTarget(t *testing.T) {
	store := state.NewStore(filepath.Join(t.TempDir(), "state.json"))
	target := base.Add(72 * time.Hour)

	st, err := Toggle(store, command.ToggleDateComparison, target, base)
	require.NoError(t, err)
	assert.True(t, st.DateComparisonEnabled)
	require.NotNil(t, st.TargetDate)
	assert.True(t, st.TargetDate.Equal(target))

	// Disabling ignores the target.
	st, err = Toggle(store, command.ToggleDateComparison, base, base)
	require.NoError(t, err)
	assert.False(t, st.DateComparisonEnabled)
	assert.True(t, st.TargetDate.Equal(target))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.True(t, loaded.Equal(st))
}

func TestSetTarget(t *testing.T) {
	store := state.NewStore(filepath.Join(t.TempDir(), "state.json"))
	target := base.Add(time.Hour)

	st, err := SetTarget(store, target, base)
	require.NoError(t, err)
	require.NotNil(t, st.TargetDate)
	assert.True(t, st.TargetDate.Equal(target))
}
