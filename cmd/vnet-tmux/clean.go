package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vnet-tools/vnet-tmux/internal/network"
	"github.com/vnet-tools/vnet-tmux/internal/session"
	"github.com/vnet-tools/vnet-tmux/internal/tmux"
	"github.com/vnet-tools/vnet-tmux/internal/ui"
)

// cleanCmd kills every session this tool created.
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Kill all vnet sessions from earlier runs",
	Long: `Kill every tmux session whose name starts with the vnet session prefix
("vnet-" by default), together with the node processes running in it.

Failures to kill individual sessions are reported and skipped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		client := newTmuxClient(tmux.NewExecRunner(settings.TmuxBinary), verbose)
		cleanStaleSessions(cmd.Context(), client, settings.SessionPrefix)
		return nil
	},
}

func init() {
	cleanCmd.Flags().BoolP("verbose", "v", false, "Echo every tmux command before running it")
}

// cleanStaleSessions runs the cleaner and reports the outcome. It never fails:
// stale sessions that cannot be killed are warned about and left alone.
func cleanStaleSessions(ctx context.Context, killer session.SessionKiller, prefix string) session.Report {
	cleaner := session.NewCleaner(killer, network.SessionPrefix(prefix))
	report, err := cleaner.Cleanup(ctx)
	if err != nil {
		ui.PrintWarning("Could not list tmux sessions: %v", err)
		return report
	}

	switch {
	case report.Matched() == 0:
		ui.PrintDim("No stale %s sessions", prefix)
	case len(report.Failed) == 0:
		ui.PrintSuccess("Killed %d stale session(s)", len(report.Killed))
	default:
		ui.PrintWarning("Killed %d of %d stale session(s)", len(report.Killed), report.Matched())
		for _, f := range report.Failed {
			ui.PrintDim("  %s: %v", f.Session, f.Err)
		}
	}
	return report
}
