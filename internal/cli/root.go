// Package cli implements the pulse commands.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/five82/pulse/internal/app"
)

var (
	configPath string
	statePath  string
	logLevel   string
	prefsPath  string
)

var rootCmd = &cobra.Command{
	Use:   "pulse",
	Short: "Live status line: stopwatch, countdown, day and year progress, next bus",
	Long: `pulse composes a one-line status from a stopwatch, a target-date countdown,
day and year progress and the next bus arrival, and shows it in the terminal,
the menu bar, or once on stdout for status-bar plugins.

Running pulse without a subcommand starts the terminal UI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

// Execute runs the CLI until ctx is cancelled.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default ~/.config/pulse/config.toml)")
	flags.StringVar(&statePath, "state", "", "state file (default ~/.stopwatch_state.json)")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&prefsPath, "prefs", "", "preferences file (default ~/.config/pulse/prefs.toml)")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(targetCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(trayCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(versionCmd)
}

func appOptions(mode app.Mode) app.Options {
	return app.Options{
		ConfigPath: configPath,
		StatePath:  statePath,
		LogLevel:   logLevel,
		PrefsPath:  prefsPath,
		Mode:       mode,
		Version:    Version,
	}
}
