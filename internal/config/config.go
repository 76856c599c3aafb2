package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/pulse/internal/fsutil"
)

// Config captures everything pulse reads from config.toml.
type Config struct {
	StatePath string
	Refresh   time.Duration
	Transit   Transit
	Log       Log
}

// Transit configures the bus-arrival lookup.
type Transit struct {
	Endpoint  string
	StopParam string
	StopID    string
	Interval  time.Duration
	Timeout   time.Duration
}

// Configured reports whether an endpoint and stop have been set.
func (t Transit) Configured() bool {
	return t.Endpoint != "" && t.StopID != ""
}

// Log configures the rotating log file.
type Log struct {
	File       string
	Level      string
	Format     string
	MaxSizeMB  int
	MaxBackups int
}

const (
	defaultConfigPath     = "~/.config/pulse/config.toml"
	defaultStatePath      = "~/.stopwatch_state.json"
	defaultLogFile        = "~/.local/share/pulse/pulse.log"
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
	defaultStopParam      = "stop_id"
	defaultRefreshSeconds = 1
	defaultPollSeconds    = 30
	defaultTimeoutSeconds = 5
	defaultMaxSizeMB      = 5
	defaultMaxBackups     = 2
)

type rawConfig struct {
	StatePath      string `toml:"state_path"`
	RefreshSeconds int    `toml:"refresh_seconds"`
	Transit        struct {
		Endpoint       string `toml:"endpoint"`
		StopParam      string `toml:"stop_param"`
		StopID         string `toml:"stop_id"`
		PollSeconds    int    `toml:"poll_seconds"`
		TimeoutSeconds int    `toml:"timeout_seconds"`
	} `toml:"transit"`
	Log struct {
		File       string `toml:"file"`
		Level      string `toml:"level"`
		Format     string `toml:"format"`
		MaxSizeMB  int    `toml:"max_size_mb"`
		MaxBackups int    `toml:"max_backups"`
	} `toml:"log"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		StatePath: fsutil.MustExpand(defaultStatePath),
		Refresh:   defaultRefreshSeconds * time.Second,
		Transit: Transit{
			StopParam: defaultStopParam,
			Interval:  defaultPollSeconds * time.Second,
			Timeout:   defaultTimeoutSeconds * time.Second,
		},
		Log: Log{
			File:       fsutil.MustExpand(defaultLogFile),
			Level:      defaultLogLevel,
			Format:     defaultLogFormat,
			MaxSizeMB:  defaultMaxSizeMB,
			MaxBackups: defaultMaxBackups,
		},
	}
}

// DefaultPath returns the config path used when none is given.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the pulse config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if p := strings.TrimSpace(raw.StatePath); p != "" {
		cfg.StatePath = fsutil.MustExpand(p)
	}
	if raw.RefreshSeconds > 0 {
		cfg.Refresh = time.Duration(raw.RefreshSeconds) * time.Second
	}

	cfg.Transit.Endpoint = strings.TrimSpace(raw.Transit.Endpoint)
	cfg.Transit.StopID = strings.TrimSpace(raw.Transit.StopID)
	if param := strings.TrimSpace(raw.Transit.StopParam); param != "" {
		cfg.Transit.StopParam = param
	}
	if raw.Transit.PollSeconds > 0 {
		cfg.Transit.Interval = time.Duration(raw.Transit.PollSeconds) * time.Second
	}
	if raw.Transit.TimeoutSeconds > 0 {
		cfg.Transit.Timeout = time.Duration(raw.Transit.TimeoutSeconds) * time.Second
	}

	if file := strings.TrimSpace(raw.Log.File); file != "" {
		cfg.Log.File = fsutil.MustExpand(file)
	}
	if level := strings.ToLower(strings.TrimSpace(raw.Log.Level)); level != "" {
		cfg.Log.Level = level
	}
	if format := strings.ToLower(strings.TrimSpace(raw.Log.Format)); format != "" {
		cfg.Log.Format = format
	}
	if raw.Log.MaxSizeMB > 0 {
		cfg.Log.MaxSizeMB = raw.Log.MaxSizeMB
	}
	if raw.Log.MaxBackups > 0 {
		cfg.Log.MaxBackups = raw.Log.MaxBackups
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return fsutil.ExpandPath(defaultConfigPath)
	}
	return fsutil.ExpandPath(path)
}
