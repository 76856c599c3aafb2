package cli

import (
	"github.com/spf13/cobra"

	"github.com/five82/pulse/internal/app"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the terminal UI (default)",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

var trayCmd = &cobra.Command{
	Use:   "tray",
	Short: "Run in the desktop menu bar",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(cmd.Context(), appOptions(app.ModeTray))
	},
}

func runTUI(cmd *cobra.Command, args []string) error {
	return app.Run(cmd.Context(), appOptions(app.ModeTUI))
}
