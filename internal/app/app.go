package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/five82/pulse/internal/config"
	"github.com/five82/pulse/internal/fsutil"
	"github.com/five82/pulse/internal/logging"
	"github.com/five82/pulse/internal/prefs"
	"github.com/five82/pulse/internal/state"
	"github.com/five82/pulse/internal/transit"
	"github.com/five82/pulse/internal/tray"
	"github.com/five82/pulse/internal/ui"
	"github.com/five82/pulse/internal/watch"
)

// Mode selects the frontend.
type Mode int

const (
	ModeTUI Mode = iota
	ModeTray
)

func (m Mode) String() string {
	if m == ModeTray {
		return "tray"
	}
	return "tui"
}

// Options configure a pulse run.
type Options struct {
	ConfigPath string
	StatePath  string // overrides config state_path
	LogLevel   string // overrides config [log] level
	PrefsPath  string // empty uses ~/.config/pulse/prefs.toml
	Mode       Mode
	Version    string
}

// LoadConfig reads the config file and applies command-line overrides.
func LoadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if path := strings.TrimSpace(opts.StatePath); path != "" {
		resolved, err := fsutil.ExpandPath(path)
		if err != nil {
			return cfg, fmt.Errorf("state path: %w", err)
		}
		cfg.StatePath = resolved
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Log.Level = level
	}
	return cfg, nil
}

// InitLogging installs the global logger described by cfg.
func InitLogging(cfg config.Config) error {
	return logging.Init(logging.Config{
		FilePath:   cfg.Log.File,
		Level:      logging.ParseLevel(cfg.Log.Level),
		Format:     logging.ParseFormat(cfg.Log.Format),
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
}

// Run boots the controller and the selected frontend until the frontend
// exits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}
	if err := InitLogging(cfg); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logging.Shutdown() }()

	logger := logging.Component("app")
	logger.Info("starting", "mode", opts.Mode.String(), "version", opts.Version, "state", cfg.StatePath)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fetcher, err := newFetcher(cfg, opts.Version)
	if err != nil {
		return fmt.Errorf("init transit client: %w", err)
	}
	poller, err := transit.NewPoller(ctx, fetcher, cfg.Transit.Interval, logging.Component("transit"))
	if err != nil {
		return err
	}
	defer func() { _ = poller.Close() }()

	var changes <-chan struct{}
	watcher, err := watch.New(cfg.StatePath, 0, logging.Component("watch"))
	if err != nil {
		logger.Warn("state file watching disabled", "error", err)
	} else {
		defer func() { _ = watcher.Close() }()
		go watcher.Run(ctx)
		changes = watcher.Changes()
	}

	ctl := NewController(ControllerOptions{
		Store:   state.NewStore(cfg.StatePath),
		Poller:  poller,
		Changes: changes,
		Refresh: cfg.Refresh,
		Logger:  logging.Component("controller"),
	})

	stopped := make(chan error, 1)
	go func() { stopped <- ctl.Run(ctx) }()

	switch opts.Mode {
	case ModeTray:
		ctl.SetPrompter(tray.NewDialogPrompter(logging.Component("tray")))
		err = tray.Run(ctx, tray.Options{
			Status:   ctl.Status(),
			Dispatch: ctl.Dispatch,
			Logger:   logging.Component("tray"),
		})
	default:
		userPrefs := prefs.Load(opts.PrefsPath)
		program := ui.NewProgram(ui.Options{
			Context:   ctx,
			Status:    ctl.Status(),
			Dispatch:  ctl.Dispatch,
			Tick:      cfg.Refresh,
			ThemeName: userPrefs.Theme,
			ShowLog:   userPrefs.ShowLog,
			PrefsPath: opts.PrefsPath,
			LogPath:   cfg.Log.File,
		})
		ctl.SetPrompter(program)
		err = program.Run()
	}

	cancel()
	<-stopped
	logger.Info("stopped", "error", err)
	return err
}

// newFetcher returns nil when transit is not configured; the poller then
// reports ErrNotConfigured on each run while bus status is enabled.
func newFetcher(cfg config.Config, version string) (transit.ArrivalFetcher, error) {
	if !cfg.Transit.Configured() {
		slog.Debug("transit not configured")
		return nil, nil
	}
	ua := "pulse"
	if version != "" {
		ua += "/" + version
	}
	client, err := transit.NewClient(transit.Options{
		Endpoint:  cfg.Transit.Endpoint,
		StopParam: cfg.Transit.StopParam,
		StopID:    cfg.Transit.StopID,
		Timeout:   cfg.Transit.Timeout,
		UserAgent: ua,
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}
