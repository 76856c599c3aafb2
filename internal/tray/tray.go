// Package tray shows the composed status line in the desktop menu bar and
// turns menu clicks into commands.
package tray

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/getlantern/systray"

	"github.com/five82/pulse/internal/command"
	"github.com/five82/pulse/internal/display"
	"github.com/five82/pulse/internal/status"
)

// Options configure the tray.
type Options struct {
	Status   *status.Store
	Dispatch func(command.Command) bool
	Logger   *slog.Logger
}

type menu struct {
	opts  Options
	ctx   context.Context
	items map[command.Kind]*systray.MenuItem
	quit  *systray.MenuItem
}

// Run starts the tray. It blocks the calling goroutine, which must be the
// main goroutine on macOS, until Quit is clicked or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.Status == nil || opts.Dispatch == nil {
		return fmt.Errorf("tray: status store and dispatch are required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	m := &menu{opts: opts, ctx: ctx, items: make(map[command.Kind]*systray.MenuItem)}
	systray.Run(m.onReady, func() { opts.Logger.Info("tray exited") })
	return nil
}

func (m *menu) onReady() {
	systray.SetTitle(display.Placeholder)
	systray.SetTooltip("pulse")

	snap := m.opts.Status.Snapshot()
	for _, entry := range entriesOrDefault(snap.Menu) {
		item := systray.AddMenuItemCheckbox(entry.Label, "", entry.Enabled)
		m.items[entry.Kind] = item
		go m.forward(entry.Kind, item)
	}
	systray.AddSeparator()
	m.quit = systray.AddMenuItem("Quit", "Quit pulse")

	go m.handleQuit()
	go m.refreshLoop()
}

func (m *menu) forward(kind command.Kind, item *systray.MenuItem) {
	for {
		select {
		case <-m.ctx.Done():
			return
		case <-item.ClickedCh:
			m.opts.Logger.Debug("menu click", "command", kind.String())
			if !m.opts.Dispatch(command.Of(kind)) {
				return
			}
		}
	}
}

func (m *menu) handleQuit() {
	select {
	case <-m.ctx.Done():
	case <-m.quit.ClickedCh:
	}
	systray.Quit()
}

func (m *menu) refreshLoop() {
	for {
		changed := m.opts.Status.Changed()
		m.render(m.opts.Status.Snapshot())
		select {
		case <-m.ctx.Done():
			return
		case <-changed:
		}
	}
}

func (m *menu) render(snap status.Snapshot) {
	if !snap.Ready() {
		return
	}
	systray.SetTitle(snap.Text)
	systray.SetTooltip(Tooltip(snap, time.Now()))
	for _, entry := range snap.Menu {
		item, ok := m.items[entry.Kind]
		if !ok {
			continue
		}
		item.SetTitle(entry.Label)
		if entry.Enabled {
			item.Check()
		} else {
			item.Uncheck()
		}
	}
}

// Tooltip summarises the snapshot for hovering over the title.
func Tooltip(snap status.Snapshot, now time.Time) string {
	tip := "pulse"
	if snap.TransitAt.IsZero() {
		if snap.TransitErr != nil {
			tip += fmt.Sprintf(" · transit error: %v", snap.TransitErr)
		}
		return tip
	}
	age := now.Sub(snap.TransitAt).Truncate(time.Second)
	if age < 0 {
		age = 0
	}
	tip += fmt.Sprintf(" · bus checked %s ago", age)
	if snap.TransitErr != nil {
		tip += " (last fetch failed)"
	}
	return tip
}

func entriesOrDefault(entries []status.MenuEntry) []status.MenuEntry {
	if len(entries) > 0 {
		return entries
	}
	kinds := command.Menu()
	out := make([]status.MenuEntry, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, status.MenuEntry{Kind: k, Label: k.String()})
	}
	return out
}
