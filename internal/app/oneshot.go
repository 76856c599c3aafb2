package app

import (
	"fmt"
	"time"

	"github.com/five82/pulse/internal/command"
	"github.com/five82/pulse/internal/display"
	"github.com/five82/pulse/internal/state"
)

// Render composes the stored state once. An expired stopwatch is disabled and
// saved, matching the live loop. Load problems are returned alongside a
// usable result.
func Render(store StateStore, now time.Time) (display.Result, error) {
	st, loadErr := store.Load()
	res := display.Compose(st, now)
	if res.StopwatchExpired {
		st.StopwatchEnabled = false
		st.StopwatchEpoch = nil
		if err := store.Save(st); err != nil {
			return res, fmt.Errorf("save state: %w", err)
		}
	}
	return res, loadErr
}

// Toggle applies one command to the stored state and saves it. When the
// command enables date comparison and target is non-zero, the target is set
// in the same write. It returns the new state.
func Toggle(store StateStore, kind command.Kind, target time.Time, now time.Time) (state.AppState, error) {
	// Load always yields a usable state; saving rewrites any bad fields.
	st, _ := store.Load()

	out := command.Apply(&st, command.Of(kind), now)
	if out.PromptDate && !target.IsZero() {
		command.Apply(&st, command.Target(target), now)
	}
	if !out.Changed {
		return st, nil
	}
	if err := store.Save(st); err != nil {
		return st, fmt.Errorf("save state: %w", err)
	}
	return st, nil
}

// SetTarget stores a new target date without toggling anything.
func SetTarget(store StateStore, target time.Time, now time.Time) (state.AppState, error) {
	// Load always yields a usable state; saving rewrites any bad fields.
	st, _ := store.Load()
	if !command.Apply(&st, command.Target(target), now).Changed {
		return st, nil
	}
	if err := store.Save(st); err != nil {
		return st, fmt.Errorf("save state: %w", err)
	}
	return st, nil
}
