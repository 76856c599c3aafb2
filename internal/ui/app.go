package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/pulse/internal/command"
	"github.com/five82/pulse/internal/logtail"
	"github.com/five82/pulse/internal/prefs"
	"github.com/five82/pulse/internal/status"
)

const logPaneLines = 200

// Options configures the UI.
type Options struct {
	Context   context.Context
	Status    *status.Store
	Dispatch  func(command.Command) bool
	Tick      time.Duration
	ThemeName string
	ShowLog   bool
	PrefsPath string
	LogPath   string
}

// datePrompt holds the state of an open target-date prompt.
type datePrompt struct {
	input textinput.Model
	done  func(time.Time)
	err   string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *status.Store
	dispatch  func(command.Command) bool
	prefsPath string
	logPath   string
	tick      time.Duration
	now       func() time.Time

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	width    int
	height   int
	ready    bool
	showHelp bool
	showLog  bool

	// Data state
	snapshot status.Snapshot
	logLines []string

	prompt *datePrompt
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	tick := opts.Tick
	if tick <= 0 {
		tick = time.Second
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	dispatch := opts.Dispatch
	if dispatch == nil {
		dispatch = func(command.Command) bool { return false }
	}

	theme := GetTheme(opts.ThemeName)
	h := help.New()
	h.Styles = theme.HelpStyles()

	return Model{
		ctx:       ctx,
		store:     opts.Status,
		dispatch:  dispatch,
		prefsPath: prefsPath,
		logPath:   opts.LogPath,
		tick:      tick,
		now:       time.Now,
		theme:     theme,
		keys:      DefaultKeyMap(),
		help:      h,
		showLog:   opts.ShowLog,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.tick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store), waitSnapshotCmd(m.ctx, m.store))
	}
	if m.showLog {
		cmds = append(cmds, readLogCmd(m.logPath))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = msg.snapshot
		if msg.watch && m.store != nil {
			return m, waitSnapshotCmd(m.ctx, m.store)
		}
		return m, nil

	case logLinesMsg:
		m.logLines = []string(msg)
		return m, nil

	case promptMsg:
		return m.openPrompt(msg.initial, msg.done)
	}

	if m.prompt != nil {
		var cmd tea.Cmd
		m.prompt.input, cmd = m.prompt.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompt != nil {
		return m.handlePromptKey(msg)
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.help.Styles = m.theme.HelpStyles()
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Log):
		m.showLog = !m.showLog
		m.savePrefs()
		if m.showLog {
			return m, readLogCmd(m.logPath)
		}
		return m, nil

	case key.Matches(msg, m.keys.Target):
		dispatch := m.dispatch
		return m.openPrompt(m.now(), func(t time.Time) {
			dispatch(command.Target(t))
		})
	}

	for _, kind := range command.Menu() {
		if key.Matches(msg, m.keys.toggleFor(kind)) {
			return m, dispatchCmd(m.dispatch, command.Of(kind))
		}
	}
	return m, nil
}

func (m Model) savePrefs() {
	_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, ShowLog: m.showLog})
}

// handleTick processes the refresh tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.tick)}
	if m.showLog {
		cmds = append(cmds, readLogCmd(m.logPath))
	}
	return m, tea.Batch(cmds...)
}

// Messages

type tickMsg time.Time

type snapshotMsg struct {
	snapshot status.Snapshot
	watch    bool // re-arm the change watcher
}

type logLinesMsg []string

type promptMsg struct {
	initial time.Time
	done    func(time.Time)
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *status.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg{snapshot: store.Snapshot()}
	}
}

// waitSnapshotCmd blocks until the controller publishes again.
func waitSnapshotCmd(ctx context.Context, store *status.Store) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case <-store.Changed():
			return snapshotMsg{snapshot: store.Snapshot(), watch: true}
		}
	}
}

func dispatchCmd(dispatch func(command.Command) bool, cmd command.Command) tea.Cmd {
	return func() tea.Msg {
		dispatch(cmd)
		return nil
	}
}

func readLogCmd(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		lines, err := logtail.Read(path, logPaneLines)
		if err != nil {
			return logLinesMsg{"log unavailable: " + err.Error()}
		}
		return logLinesMsg(lines)
	}
}

// Program runs the model and lets other goroutines open the date prompt.
type Program struct {
	ctx     context.Context
	program *tea.Program
}

// NewProgram wraps New in a Bubble Tea program bound to opts.Context.
func NewProgram(opts Options) *Program {
	m := New(opts)
	return &Program{
		ctx:     m.ctx,
		program: tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx)),
	}
}

// PromptDate opens the date prompt. It never blocks the caller.
func (p *Program) PromptDate(initial time.Time, done func(time.Time)) {
	go p.program.Send(promptMsg{initial: initial, done: done})
}

// Run starts the Bubble Tea program and blocks until it exits. Cancellation
// of the bound context is a clean exit.
func (p *Program) Run() error {
	_, err := p.program.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && p.ctx.Err() != nil {
		return nil
	}
	return err
}
