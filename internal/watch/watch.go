// Package watch reports changes to a single file by watching its directory.
// Editors and atomic writers replace files by rename, which a watch on the
// file itself would lose.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/five82/pulse/internal/fsutil"
)

const defaultDebounce = 200 * time.Millisecond

// FileWatcher coalesces bursts of events for one file into single
// notifications on Changes().
type FileWatcher struct {
	path     string
	base     string
	debounce time.Duration
	logger   *slog.Logger

	watcher *fsnotify.Watcher
	changes chan struct{}
	done    chan struct{}
}

// New watches path's parent directory, creating it if needed. A debounce of
// zero uses 200ms.
func New(path string, debounce time.Duration, logger *slog.Logger) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch path: %w", err)
	}
	abs = fsutil.ResolveLink(abs)
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}

	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create watch dir: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	return &FileWatcher{
		path:     abs,
		base:     filepath.Base(abs),
		debounce: debounce,
		logger:   logger,
		watcher:  w,
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}, nil
}

// Changes receives one value per settled burst of writes.
func (fw *FileWatcher) Changes() <-chan struct{} {
	return fw.changes
}

// Run processes events until ctx is cancelled or the watcher is closed.
func (fw *FileWatcher) Run(ctx context.Context) {
	defer close(fw.done)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != fw.base {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			fw.logger.Debug("state file event", "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(fw.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(fw.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			select {
			case fw.changes <- struct{}{}:
			default:
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("file watcher error", "error", err)
		}
	}
}

// Close stops watching. It is safe to call once, after or instead of Run.
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
