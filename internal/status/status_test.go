package status

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/pulse/internal/command"
	"github.com/five82/pulse/internal/display"
)

func TestStorePublishAndSnapshotCopies(t *testing.T) {
	var store Store
	assert.False(t, store.Snapshot().Ready(), "empty store should not be ready")

	segs := []display.Segment{{Kind: display.KindDay, Value: "50.00%"}}
	menu := []MenuEntry{{Kind: command.ToggleDayProgress, Label: "Disable Day Progress", Enabled: true}}
	store.Publish(Snapshot{Text: "☀️ 50.00%", Segments: segs, Menu: menu, UpdatedAt: time.Now()})

	segs[0].Value = "mutated"
	menu[0].Label = "mutated"

	snap := store.Snapshot()
	require.True(t, snap.Ready())
	assert.Equal(t, "50.00%", snap.Segments[0].Value, "publish should copy segments")
	assert.Equal(t, "Disable Day Progress", snap.Menu[0].Label, "publish should copy menu")

	snap.Segments[0].Value = "changed"
	assert.Equal(t, "50.00%", store.Snapshot().Segments[0].Value, "snapshot aliases store data")
}

func TestStoreTransitSurvivesPublish(t *testing.T) {
	var store Store
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	store.RecordTransit(at, nil)
	store.Publish(Snapshot{Text: "x", UpdatedAt: at})
	assert.True(t, store.Snapshot().TransitAt.Equal(at))

	boom := errors.New("boom")
	store.RecordTransit(at.Add(time.Minute), boom)
	snap := store.Snapshot()
	assert.True(t, snap.TransitAt.Equal(at), "failed fetch moved TransitAt to %v", snap.TransitAt)
	assert.ErrorIs(t, snap.TransitErr, boom)

	store.RecordTransit(at.Add(2*time.Minute), nil)
	assert.NoError(t, store.Snapshot().TransitErr, "success should clear TransitErr")
}

func TestStoreChangedClosesOnPublish(t *testing.T) {
	var store Store
	ch := store.Changed()
	require.Equal(t, ch, store.Changed(), "same channel until the next publish")

	store.Publish(Snapshot{Text: "a", UpdatedAt: time.Now()})
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("Changed channel not closed by Publish")
	}

	assert.NotEqual(t, ch, store.Changed(), "expected a fresh channel after publish")
}
