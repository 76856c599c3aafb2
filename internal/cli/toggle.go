package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/pulse/internal/app"
	"github.com/five82/pulse/internal/command"
	"github.com/five82/pulse/internal/logging"
	"github.com/five82/pulse/internal/state"
)

var toggleTarget string

var toggleCmd = &cobra.Command{
	Use:   "toggle <stopwatch|date|day|year|bus|format>",
	Short: "Flip one setting in the state file",
	Long: `Toggle applies one menu action to the state file and exits. A running
pulse picks the change up immediately.

When enabling date comparison, --target sets the target date in the same
write (YYYY-MM-DD [HH:MM[:SS]], local time).`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: menuNames(),
	RunE:      runToggle,
}

var targetCmd = &cobra.Command{
	Use:   "target <YYYY-MM-DD [HH:MM[:SS]]>",
	Short: "Set the date comparison target",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTarget,
}

func init() {
	toggleCmd.Flags().StringVar(&toggleTarget, "target", "", "target date when enabling date comparison")
}

func menuNames() []string {
	kinds := command.Menu()
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, k.String())
	}
	return names
}

func openStore() (*state.Store, func(), error) {
	cfg, err := app.LoadConfig(appOptions(app.ModeTUI))
	if err != nil {
		return nil, nil, err
	}
	if err := app.InitLogging(cfg); err != nil {
		return nil, nil, fmt.Errorf("init logging: %w", err)
	}
	return state.NewStore(cfg.StatePath), func() { _ = logging.Shutdown() }, nil
}

func runToggle(cmd *cobra.Command, args []string) error {
	kind, err := command.Parse(args[0])
	if err != nil {
		return err
	}
	var target time.Time
	if strings.TrimSpace(toggleTarget) != "" {
		if target, err = command.ParseTarget(toggleTarget, time.Local); err != nil {
			return err
		}
	}

	store, done, err := openStore()
	if err != nil {
		return err
	}
	defer done()

	st, err := app.Toggle(store, kind, target, time.Now())
	if err != nil {
		return err
	}
	logging.Component("cli").Info("toggled", "command", kind.String(), "path", store.Path())

	out := cmd.OutOrStdout()
	if kind == command.CycleDateFormat {
		fmt.Fprintf(out, "format: %s\n", st.DateFormat())
		return nil
	}
	fmt.Fprintf(out, "%s: %s\n", kind, onOff(command.Enabled(kind, st)))
	if kind == command.ToggleDateComparison && st.DateComparisonEnabled && st.TargetDate == nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "no target date set; use `pulse target <date>`")
	}
	return nil
}

func runTarget(cmd *cobra.Command, args []string) error {
	target, err := command.ParseTarget(strings.Join(args, " "), time.Local)
	if err != nil {
		return err
	}

	store, done, err := openStore()
	if err != nil {
		return err
	}
	defer done()

	st, err := app.SetTarget(store, target, time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "target: %s\n", st.TargetDate.Format(command.TargetLayout))
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
