package tray

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/five82/pulse/internal/command"
)

// DialogPrompter asks for a target date with a native dialog where one is
// available.
type DialogPrompter struct {
	logger *slog.Logger
	ask    func(initial time.Time) (string, bool, error)
}

// NewDialogPrompter returns the prompter for this platform.
func NewDialogPrompter(logger *slog.Logger) *DialogPrompter {
	if logger == nil {
		logger = slog.Default()
	}
	return &DialogPrompter{logger: logger, ask: askDate}
}

// PromptDate shows the dialog on its own goroutine. Cancelling, an
// unsupported platform, or unparseable input leave the target unchanged.
func (p *DialogPrompter) PromptDate(initial time.Time, done func(time.Time)) {
	go func() {
		text, ok, err := p.ask(initial)
		if err != nil {
			p.logger.Warn("date prompt failed", "error", err)
			return
		}
		if !ok {
			p.logger.Debug("date prompt cancelled")
			return
		}
		target, err := command.ParseTarget(text, time.Local)
		if err != nil {
			p.logger.Warn("date prompt input rejected", "error", err)
			return
		}
		done(target)
	}()
}

// parseDialogOutput extracts the typed text from osascript's
// "button returned:X, text returned:Y" result.
func parseDialogOutput(out string) (string, error) {
	const marker = "text returned:"
	idx := strings.Index(out, marker)
	if idx < 0 {
		return "", fmt.Errorf("unexpected dialog output %q", strings.TrimSpace(out))
	}
	return strings.TrimSpace(out[idx+len(marker):]), nil
}
