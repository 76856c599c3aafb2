// Package status holds the latest composed status line for frontends.
package status

import (
	"sync"
	"time"

	"github.com/five82/pulse/internal/command"
	"github.com/five82/pulse/internal/display"
)

// MenuEntry is one toggle as a frontend should show it.
type MenuEntry struct {
	Kind    command.Kind
	Label   string
	Enabled bool
}

// Snapshot represents the latest data available to frontends.
type Snapshot struct {
	Text      string
	Segments  []display.Segment
	Menu      []MenuEntry
	UpdatedAt time.Time

	// TransitAt is when the cached arrival was last replaced; zero if never
	// during this run.
	TransitAt time.Time
	// TransitErr is the most recent fetch failure, cleared by a success.
	TransitErr error
}

// Ready reports whether the controller has published at least once.
func (s Snapshot) Ready() bool {
	return !s.UpdatedAt.IsZero()
}

// Store coordinates concurrent access to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	notify   chan struct{}
}

// Publish replaces the stored snapshot. Transit fields are kept from the
// previous snapshot; use RecordTransit to change them.
func (s *Store) Publish(snap Snapshot) {
	s.mu.Lock()
	snap.Segments = cloneSegments(snap.Segments)
	snap.Menu = cloneMenu(snap.Menu)
	snap.TransitAt = s.snapshot.TransitAt
	snap.TransitErr = s.snapshot.TransitErr
	s.snapshot = snap
	ch := s.notify
	s.notify = nil
	s.mu.Unlock()

	if ch != nil {
		close(ch)
	}
}

// RecordTransit notes a fetch outcome. A nil err marks a fresh arrival at at.
func (s *Store) RecordTransit(at time.Time, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.snapshot.TransitErr = err
		return
	}
	s.snapshot.TransitAt = at
	s.snapshot.TransitErr = nil
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Segments = cloneSegments(s.snapshot.Segments)
	snap.Menu = cloneMenu(s.snapshot.Menu)
	return snap
}

// Changed returns a channel closed by the next Publish.
func (s *Store) Changed() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notify == nil {
		s.notify = make(chan struct{})
	}
	return s.notify
}

func cloneSegments(in []display.Segment) []display.Segment {
	if len(in) == 0 {
		return nil
	}
	dup := make([]display.Segment, len(in))
	copy(dup, in)
	return dup
}

func cloneMenu(in []MenuEntry) []MenuEntry {
	if len(in) == 0 {
		return nil
	}
	dup := make([]MenuEntry, len(in))
	copy(dup, in)
	return dup
}
