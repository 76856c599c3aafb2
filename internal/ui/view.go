package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pulse/internal/display"
	"github.com/five82/pulse/internal/logtail"
)

// renderMain renders the full UI.
func (m Model) renderMain() string {
	sections := []string{
		m.renderHeader(),
		m.renderChips(),
		m.renderToggles(),
	}
	if m.prompt != nil {
		sections = append(sections, m.renderPrompt())
	}
	if m.showLog {
		sections = append(sections, m.renderLogPane())
	}
	sections = append(sections, m.renderFooter())
	return strings.Join(sections, "\n\n")
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	text := m.snapshot.Text
	if text == "" {
		text = display.Placeholder
	}
	left := styles.Logo.Render("pulse") + "  " + styles.Text.Bold(true).Render(text)

	right := ""
	if m.snapshot.Ready() {
		right = styles.MutedText.Render(m.snapshot.UpdatedAt.Format("15:04:05"))
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return styles.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderChips() string {
	styles := m.theme.Styles()
	if len(m.snapshot.Segments) == 0 {
		return styles.FaintText.Render("  nothing enabled")
	}
	chips := make([]string, 0, len(m.snapshot.Segments))
	for _, seg := range m.snapshot.Segments {
		label := fmt.Sprintf("%s %s", seg.Kind.String(), seg.Value)
		chips = append(chips, styles.SegmentStyle(seg.Kind).Render(label))
	}
	return "  " + strings.Join(chips, " ")
}

func (m Model) renderToggles() string {
	styles := m.theme.Styles()

	var b strings.Builder
	for i, entry := range m.snapshot.Menu {
		binding := m.keys.toggleFor(entry.Kind)
		b.WriteString(styles.WarningText.Render(fmt.Sprintf("[%s]", binding.Help().Key)))
		b.WriteString(" ")
		if entry.Enabled {
			b.WriteString(styles.SuccessText.Render("●"))
		} else {
			b.WriteString(styles.FaintText.Render("○"))
		}
		b.WriteString(" ")
		b.WriteString(styles.Text.Render(entry.Label))
		if i < len(m.snapshot.Menu)-1 {
			b.WriteString("\n")
		}
	}
	if line := m.transitLine(); line != "" {
		b.WriteString("\n\n")
		b.WriteString(line)
	}
	return styles.Panel.Render(b.String())
}

func (m Model) transitLine() string {
	styles := m.theme.Styles()
	snap := m.snapshot
	switch {
	case snap.TransitErr != nil && snap.TransitAt.IsZero():
		return styles.DangerText.Render("bus: ") + styles.MutedText.Render(snap.TransitErr.Error())
	case snap.TransitErr != nil:
		return styles.WarningText.Render("bus: ") +
			styles.MutedText.Render(fmt.Sprintf("last good check %s ago; latest failed: %v", m.age(snap.TransitAt), snap.TransitErr))
	case !snap.TransitAt.IsZero():
		return styles.InfoText.Render("bus: ") + styles.MutedText.Render(fmt.Sprintf("checked %s ago", m.age(snap.TransitAt)))
	}
	return ""
}

func (m Model) age(t time.Time) time.Duration {
	d := m.now().Sub(t).Truncate(time.Second)
	if d < 0 {
		return 0
	}
	return d
}

func (m Model) renderPrompt() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Set Target Date"))
	b.WriteString("\n")
	b.WriteString(m.prompt.input.View())
	if m.prompt.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.DangerText.Render(m.prompt.err))
	}
	return styles.FocusPanel.Render(b.String())
}

func (m Model) renderLogPane() string {
	styles := m.theme.Styles()

	height := m.height / 3
	if height < 3 {
		height = 3
	}
	lines := m.logLines
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}

	width := m.width - 4
	rendered := make([]string, 0, len(lines))
	for _, line := range lines {
		if width > 0 && lipgloss.Width(line) > width {
			line = truncate(line, width)
		}
		rendered = append(rendered, styles.LevelStyle(logtail.Level(line)).Render(line))
	}
	body := strings.Join(rendered, "\n")
	if body == "" {
		if m.logPath == "" {
			body = styles.FaintText.Render("logging disabled")
		} else {
			body = styles.FaintText.Render("no log output yet")
		}
	}
	return styles.Panel.Render(styles.AccentText.Render("log") + "\n" + body)
}

func (m Model) renderFooter() string {
	if m.prompt != nil {
		return m.renderShortHelp(m.keys.PromptHelp())
	}
	return m.renderShortHelp(m.keys.ShortHelp())
}

func truncate(s string, width int) string {
	if width <= 1 {
		return "…"
	}
	runes := []rune(s)
	if len(runes) > width {
		runes = runes[:width]
	}
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width-1 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
