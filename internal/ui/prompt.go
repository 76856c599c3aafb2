package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/pulse/internal/command"
)

// openPrompt shows the target-date input prefilled with initial. A prompt
// that is already open is replaced; its done is never called.
func (m Model) openPrompt(initial time.Time, done func(time.Time)) (tea.Model, tea.Cmd) {
	input := textinput.New()
	input.Prompt = "› "
	input.Placeholder = "YYYY-MM-DD HH:MM:SS"
	input.CharLimit = len(command.TargetLayout) + 4
	input.Width = len(command.TargetLayout) + 2
	if initial.IsZero() {
		initial = m.now()
	}
	input.SetValue(initial.Format(command.TargetLayout))
	input.CursorEnd()
	cmd := input.Focus()

	m.showHelp = false
	m.prompt = &datePrompt{input: input, done: done}
	return m, cmd
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.prompt = nil
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		target, err := command.ParseTarget(m.prompt.input.Value(), time.Local)
		if err != nil {
			p := *m.prompt
			p.err = err.Error()
			m.prompt = &p
			return m, nil
		}
		done := m.prompt.done
		m.prompt = nil
		if done == nil {
			return m, nil
		}
		return m, func() tea.Msg {
			done(target)
			return nil
		}

	case msg.String() == "ctrl+c":
		return m, tea.Quit
	}

	p := *m.prompt
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	p.err = ""
	m.prompt = &p
	return m, cmd
}
