package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/pulse/internal/app"
	"github.com/five82/pulse/internal/logging"
	"github.com/five82/pulse/internal/state"
)

var printSegments bool

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the status line once",
	Long: `Print composes the status line from the state file once and exits. The
transit segment shows the last cached arrival; nothing is fetched.

Suitable for xbar, SwiftBar, tmux status-right and similar.`,
	Args: cobra.NoArgs,
	RunE: runPrint,
}

func init() {
	printCmd.Flags().BoolVar(&printSegments, "segments", false, "print one segment per line")
}

func runPrint(cmd *cobra.Command, args []string) error {
	cfg, err := app.LoadConfig(appOptions(app.ModeTUI))
	if err != nil {
		return err
	}
	if err := app.InitLogging(cfg); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logging.Shutdown() }()

	res, err := app.Render(state.NewStore(cfg.StatePath), time.Now())
	if err != nil {
		logging.Component("print").Warn("render", "error", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "pulse: %v\n", err)
	}

	out := cmd.OutOrStdout()
	if !printSegments {
		fmt.Fprintln(out, res.Text)
		return nil
	}
	for _, seg := range res.Segments {
		fmt.Fprintf(out, "%s\t%s\n", seg.Kind, seg.Value)
	}
	return nil
}
