//go:build darwin

package tray

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/five82/pulse/internal/command"
)

// osascript exits 1 with error -128 when the user presses Cancel.
const userCancelled = "-128"

func askDate(initial time.Time) (string, bool, error) {
	script := fmt.Sprintf(
		`display dialog "Set target date (YYYY-MM-DD HH:MM:SS)" default answer %q with title "Set Target Date" buttons {"Cancel", "Set Time"} default button "Set Time"`,
		initial.Format(command.TargetLayout),
	)
	out, err := exec.Command("osascript", "-e", script).CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && strings.Contains(string(out), userCancelled) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("osascript: %w: %s", err, strings.TrimSpace(string(out)))
	}
	text, err := parseDialogOutput(string(out))
	if err != nil {
		return "", false, err
	}
	return text, true, nil
}
