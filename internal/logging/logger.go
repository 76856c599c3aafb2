// Package logging provides a structured logger on top of log/slog that writes
// to a size-rotated file. Frontends own the terminal or have none, so logs
// never go to stdout/stderr.
package logging

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFormat represents the output format for logs.
type LogFormat string

const (
	// FormatText outputs human-readable key=value logs.
	FormatText LogFormat = "text"
	// FormatJSON outputs structured JSON logs.
	FormatJSON LogFormat = "json"
)

// Config holds configuration for logger initialization.
type Config struct {
	// FilePath is the log file; empty disables logging.
	FilePath   string
	Level      slog.Level
	Format     LogFormat
	MaxSizeMB  int
	MaxBackups int
}

var (
	mu      sync.RWMutex
	current = discard()
	closer  io.Closer
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Init installs the global logger and makes it the slog default. An empty
// FilePath installs a discard logger.
func Init(cfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	if closer != nil {
		_ = closer.Close()
		closer = nil
	}

	if strings.TrimSpace(cfg.FilePath) == "" {
		current = discard()
		slog.SetDefault(current)
		return nil
	}

	writer := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		Compress:   true,
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}
	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(writer, opts)
	default:
		handler = slog.NewTextHandler(writer, opts)
	}

	current = slog.New(handler)
	closer = writer
	slog.SetDefault(current)
	return nil
}

// Get returns the global logger. It is never nil.
func Get() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Component returns the global logger tagged with a component name.
func Component(name string) *slog.Logger {
	return Get().With("component", name)
}

// Shutdown closes the log file, if any, and reverts to discarding.
func Shutdown() error {
	mu.Lock()
	defer mu.Unlock()

	current = discard()
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	return err
}

// ParseLevel converts a string to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseFormat converts a string to LogFormat, defaulting to text.
func ParseFormat(format string) LogFormat {
	if strings.ToLower(strings.TrimSpace(format)) == "json" {
		return FormatJSON
	}
	return FormatText
}
