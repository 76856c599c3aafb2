package ui

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/pulse/internal/command"
	"github.com/five82/pulse/internal/display"
	"github.com/five82/pulse/internal/prefs"
	"github.com/five82/pulse/internal/status"
)

type recorder struct {
	mu   sync.Mutex
	cmds []command.Command
}

func (r *recorder) dispatch(c command.Command) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cmds = append(r.cmds, c)
	return true
}

func (r *recorder) all() []command.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]command.Command(nil), r.cmds...)
}

func newTestModel(t *testing.T) (Model, *recorder, string) {
	t.Helper()
	rec := &recorder{}
	prefsPath := filepath.Join(t.TempDir(), "prefs.toml")
	m := New(Options{
		Status:    &status.Store{},
		Dispatch:  rec.dispatch,
		PrefsPath: prefsPath,
	})
	m.now = func() time.Time { return time.Date(2025, 1, 31, 9, 30, 0, 0, time.Local) }
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model), rec, prefsPath
}

func press(m Model, k string) (Model, tea.Cmd) {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func TestToggleKeysDispatch(t *testing.T) {
	m, rec, _ := newTestModel(t)

	want := map[string]command.Kind{
		"s": command.ToggleStopwatch,
		"d": command.ToggleDateComparison,
		"p": command.ToggleDayProgress,
		"y": command.ToggleYearProgress,
		"b": command.ToggleBusStatus,
		"f": command.CycleDateFormat,
	}
	for k, kind := range want {
		var cmd tea.Cmd
		m, cmd = press(m, k)
		require.NotNil(t, cmd, "key %q produced no command", k)
		cmd()
		got := rec.all()
		assert.Equal(t, kind, got[len(got)-1].Kind, "key %q", k)
	}
}

func TestSnapshotRendersInView(t *testing.T) {
	m, _, _ := newTestModel(t)

	snap := status.Snapshot{
		Text:      "☀️ 50.00%",
		Segments:  []display.Segment{{Kind: display.KindDay, Value: "50.00%"}},
		Menu:      []status.MenuEntry{{Kind: command.ToggleDayProgress, Label: "Disable Day Progress", Enabled: true}},
		UpdatedAt: time.Now(),
	}
	updated, cmd := m.Update(snapshotMsg{snapshot: snap})
	assert.Nil(t, cmd, "plain snapshot should not re-arm the watcher")

	view := updated.(Model).View()
	for _, want := range []string{"☀️ 50.00%", "Disable Day Progress", "[p]"} {
		assert.Contains(t, view, want)
	}
}

func TestPromptFlow(t *testing.T) {
	m, _, _ := newTestModel(t)

	var got time.Time
	initial := time.Date(2024, 12, 24, 18, 0, 0, 0, time.Local)
	updated, _ := m.Update(promptMsg{initial: initial, done: func(t time.Time) { got = t }})
	m = updated.(Model)
	require.NotNil(t, m.prompt, "promptMsg did not open the prompt")
	assert.Equal(t, "2024-12-24 18:00:00", m.prompt.input.Value())

	m.prompt.input.SetValue("not a date")
	m, _ = press(m, "enter")
	require.NotNil(t, m.prompt, "invalid input should keep the prompt open")
	assert.NotEmpty(t, m.prompt.err)

	m.prompt.input.SetValue("2025-02-01 08:15")
	m, cmd := press(m, "enter")
	assert.Nil(t, m.prompt, "prompt should close after a valid date")
	require.NotNil(t, cmd, "expected a command delivering the date")
	cmd()
	assert.True(t, got.Equal(time.Date(2025, 2, 1, 8, 15, 0, 0, time.Local)), "done got %v", got)
}

func TestPromptCancel(t *testing.T) {
	m, _, _ := newTestModel(t)

	called := false
	updated, _ := m.Update(promptMsg{initial: time.Now(), done: func(time.Time) { called = true }})
	m, cmd := press(updated.(Model), "esc")
	assert.Nil(t, m.prompt, "esc should close the prompt")
	if cmd != nil {
		cmd()
	}
	assert.False(t, called, "cancel must not call done")
}

func TestTargetKeyDispatchesSetTarget(t *testing.T) {
	m, rec, _ := newTestModel(t)

	m, _ = press(m, "t")
	require.NotNil(t, m.prompt, "t should open the prompt")
	assert.Equal(t, "2025-01-31 09:30:00", m.prompt.input.Value(), "prefilled with now")

	m.prompt.input.SetValue("2025-03-01")
	_, cmd := press(m, "enter")
	require.NotNil(t, cmd)
	cmd()

	got := rec.all()
	require.Len(t, got, 1)
	assert.Equal(t, command.SetTargetDate, got[0].Kind)
	assert.True(t, got[0].Target.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)), "target = %v", got[0].Target)
}

func TestThemeAndLogPanePersist(t *testing.T) {
	m, _, prefsPath := newTestModel(t)
	assert.Equal(t, "Nightfox", m.theme.Name)

	m, _ = press(m, "T")
	assert.Equal(t, "Kanagawa", m.theme.Name)
	m, _ = press(m, "L")
	assert.True(t, m.showLog, "L should show the log pane")

	p := prefs.Load(prefsPath)
	assert.Equal(t, prefs.Prefs{Theme: "Kanagawa", ShowLog: true}, p)
	assert.Contains(t, m.View(), "logging disabled")
}

func TestHelpOverlay(t *testing.T) {
	m, rec, _ := newTestModel(t)

	m, _ = press(m, "?")
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	m, cmd := press(m, "s")
	assert.False(t, m.showHelp, "any key should close help")
	assert.Nil(t, cmd, "closing help must not dispatch")
	assert.Empty(t, rec.all())
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t)
	_, cmd := press(m, "q")
	require.NotNil(t, cmd, "q should quit")
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
