package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/five82/pulse/internal/command"
)

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Toggles
	Stopwatch key.Binding
	Date      key.Binding
	Day       key.Binding
	Year      key.Binding
	Bus       key.Binding
	Format    key.Binding
	Target    key.Binding

	// Global
	Log        key.Binding
	CycleTheme key.Binding
	Help       key.Binding
	Quit       key.Binding

	// Prompt
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Stopwatch: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Stopwatch"),
		),
		Date: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Date comparison"),
		),
		Day: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Day progress"),
		),
		Year: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Year progress"),
		),
		Bus: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Bus status"),
		),
		Format: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Cycle date format"),
		),
		Target: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Set target date"),
		),

		Log: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Toggle log pane"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "h"),
			key.WithHelp("?", "Toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Set"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
	}
}

// toggleFor maps a menu command to its binding.
func (k keyMap) toggleFor(kind command.Kind) key.Binding {
	switch kind {
	case command.ToggleStopwatch:
		return k.Stopwatch
	case command.ToggleDateComparison:
		return k.Date
	case command.ToggleDayProgress:
		return k.Day
	case command.ToggleYearProgress:
		return k.Year
	case command.ToggleBusStatus:
		return k.Bus
	case command.CycleDateFormat:
		return k.Format
	}
	return key.Binding{}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Target, k.Log, k.CycleTheme, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Stopwatch, k.Date, k.Day, k.Year, k.Bus, k.Format},
		{k.Target, k.Confirm, k.Cancel},
		{k.Log, k.CycleTheme, k.Help, k.Quit},
	}
}

// PromptHelp returns the bindings shown while the date prompt is open.
func (k keyMap) PromptHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}
