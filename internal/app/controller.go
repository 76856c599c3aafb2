package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/five82/pulse/internal/command"
	"github.com/five82/pulse/internal/display"
	"github.com/five82/pulse/internal/state"
	"github.com/five82/pulse/internal/status"
	"github.com/five82/pulse/internal/transit"
)

const defaultRefresh = time.Second

// DatePrompter collects a target date from the user. done is called at most
// once, from any goroutine; a cancelled prompt never calls it.
type DatePrompter interface {
	PromptDate(initial time.Time, done func(time.Time))
}

// TransitPoller is the part of *transit.Poller the controller drives.
type TransitPoller interface {
	Results() <-chan transit.Result
	Sync(polling bool) error
}

// StateStore persists AppState.
type StateStore interface {
	Load() (state.AppState, error)
	Save(state.AppState) error
}

// ControllerOptions wire a Controller.
type ControllerOptions struct {
	Store   StateStore
	Status  *status.Store
	Poller  TransitPoller   // nil disables transit entirely
	Changes <-chan struct{} // state file changed on disk; may be nil
	Refresh time.Duration
	Logger  *slog.Logger
	Now     func() time.Time
}

// Controller owns the single AppState. All mutation happens on the goroutine
// running Run; frontends talk to it through Dispatch.
type Controller struct {
	store   StateStore
	status  *status.Store
	poller  TransitPoller
	changes <-chan struct{}
	refresh time.Duration
	logger  *slog.Logger
	now     func() time.Time

	commands chan command.Command
	done     chan struct{}

	promptMu sync.RWMutex
	prompter DatePrompter

	st state.AppState
}

// NewController builds a controller. Call Run to start it.
func NewController(opts ControllerOptions) *Controller {
	refresh := opts.Refresh
	if refresh <= 0 {
		refresh = defaultRefresh
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	statusStore := opts.Status
	if statusStore == nil {
		statusStore = &status.Store{}
	}
	return &Controller{
		store:    opts.Store,
		status:   statusStore,
		poller:   opts.Poller,
		changes:  opts.Changes,
		refresh:  refresh,
		logger:   logger,
		now:      now,
		commands: make(chan command.Command, 16),
		done:     make(chan struct{}),
	}
}

// Status returns the snapshot store frontends read from.
func (c *Controller) Status() *status.Store {
	return c.status
}

// SetPrompter installs the frontend's date prompt. A nil prompter means
// enabling date comparison keeps whatever target is stored.
func (c *Controller) SetPrompter(p DatePrompter) {
	c.promptMu.Lock()
	defer c.promptMu.Unlock()
	c.prompter = p
}

// Dispatch queues cmd for the controller goroutine. It returns false once the
// controller has stopped.
func (c *Controller) Dispatch(cmd command.Command) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.commands <- cmd:
		return true
	case <-c.done:
		return false
	}
}

// Run loads state and serves ticks, commands, transit results and file
// changes until ctx is cancelled.
func (c *Controller) Run(ctx context.Context) error {
	defer close(c.done)

	c.load()
	c.syncPoller()
	c.publish()

	ticker := time.NewTicker(c.refresh)
	defer ticker.Stop()

	var results <-chan transit.Result
	if c.poller != nil {
		results = c.poller.Results()
	}

	for {
		select {
		case <-ctx.Done():
			c.logger.Debug("controller stopping")
			return nil
		case <-ticker.C:
			c.publish()
		case cmd := <-c.commands:
			c.handle(cmd)
			c.publish()
		case res := <-results:
			if c.applyTransit(res) {
				c.publish()
			}
		case <-c.changes:
			if c.load() {
				c.syncPoller()
				c.publish()
			}
		}
	}
}

// load reads the state file and reports whether the in-memory state changed.
func (c *Controller) load() bool {
	st, err := c.store.Load()
	if err != nil {
		var lerr *state.LoadError
		if errors.As(err, &lerr) {
			c.logger.Warn("state file partially unreadable", "path", lerr.Path, "error", lerr.Err)
		} else {
			c.logger.Warn("load state", "error", err)
		}
	}
	if st.Equal(c.st) {
		return false
	}
	c.st = st
	c.logger.Debug("state loaded")
	return true
}

func (c *Controller) save() {
	if err := c.store.Save(c.st); err != nil {
		c.logger.Error("save state", "error", err)
	}
}

func (c *Controller) handle(cmd command.Command) {
	out := command.Apply(&c.st, cmd, c.now())
	c.logger.Info("command applied", "command", cmd.Kind.String(), "changed", out.Changed)
	if out.Changed {
		c.save()
	}
	if out.PromptDate {
		c.promptDate()
	}
	c.syncPoller()
}

func (c *Controller) promptDate() {
	c.promptMu.RLock()
	p := c.prompter
	c.promptMu.RUnlock()
	if p == nil {
		c.logger.Debug("no date prompt available; keeping stored target")
		return
	}

	initial := c.now()
	if c.st.TargetDate != nil {
		initial = *c.st.TargetDate
	}
	var once sync.Once
	p.PromptDate(initial, func(t time.Time) {
		once.Do(func() {
			// Dispatch may be reached from the controller goroutine itself
			// when a prompter answers synchronously.
			go c.Dispatch(command.Target(t))
		})
	})
}

func (c *Controller) syncPoller() {
	if c.poller == nil {
		return
	}
	if err := c.poller.Sync(c.st.BusStatusEnabled); err != nil {
		c.logger.Warn("sync transit poller", "error", err)
	}
}

// applyTransit folds a fetch result into state. Failures and results that
// arrive after bus status was disabled leave the cached arrival untouched.
func (c *Controller) applyTransit(res transit.Result) bool {
	if res.Err != nil {
		c.logger.Warn("transit fetch failed", "error", res.Err)
		c.status.RecordTransit(res.At, res.Err)
		return false
	}
	if !c.st.BusStatusEnabled {
		c.logger.Debug("dropping transit result; bus status disabled")
		return false
	}
	c.status.RecordTransit(res.At, nil)
	if c.st.LastBusCheck != nil && *c.st.LastBusCheck == res.Arrival {
		return false
	}
	arrival := res.Arrival
	c.st.LastBusCheck = &arrival
	c.save()
	return true
}

// publish composes the current state, handles stopwatch expiry and hands a
// snapshot to frontends.
func (c *Controller) publish() {
	now := c.now()
	res := display.Compose(c.st, now)
	if res.StopwatchExpired {
		c.logger.Info("stopwatch expired; disabling")
		c.st.StopwatchEnabled = false
		c.st.StopwatchEpoch = nil
		c.save()
	}
	c.status.Publish(status.Snapshot{
		Text:      res.Text,
		Segments:  res.Segments,
		Menu:      MenuEntries(c.st),
		UpdatedAt: now,
	})
}

// MenuEntries lists the toggles with labels for st.
func MenuEntries(st state.AppState) []status.MenuEntry {
	kinds := command.Menu()
	entries := make([]status.MenuEntry, 0, len(kinds))
	for _, k := range kinds {
		entries = append(entries, status.MenuEntry{
			Kind:    k,
			Label:   command.Label(k, st),
			Enabled: command.Enabled(k, st),
		})
	}
	return entries
}
