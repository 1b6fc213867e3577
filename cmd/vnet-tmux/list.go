package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vnet-tools/vnet-tmux/internal/network"
	"github.com/vnet-tools/vnet-tmux/internal/session"
	"github.com/vnet-tools/vnet-tmux/internal/tmux"
	"github.com/vnet-tools/vnet-tmux/internal/ui"
)

// listCmd lists running sessions created by this tool.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List running vnet sessions",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().Bool("json", false, "Output session names as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	client := newTmuxClient(tmux.NewExecRunner(settings.TmuxBinary), false)
	jsonOutput, _ := cmd.Flags().GetBool("json")
	return listSessions(cmd.Context(), client, settings.SessionPrefix, jsonOutput, cmd.OutOrStdout())
}

// sessionLister is the part of tmux list needs.
type sessionLister interface {
	ListSessions(ctx context.Context) ([]string, error)
}

// listSessions writes the running sessions that start with prefix to out,
// as a table or as a JSON array.
func listSessions(ctx context.Context, lister sessionLister, prefix string, jsonOutput bool, out io.Writer) error {
	names, err := lister.ListSessions(ctx)
	if err != nil {
		return err
	}
	matched := session.Matching(names, network.SessionPrefix(prefix))

	if jsonOutput {
		if matched == nil {
			matched = []string{}
		}
		data, err := json.MarshalIndent(matched, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(matched) == 0 {
		ui.PrintDim("No running %s sessions", prefix)
		return nil
	}
	table := ui.NewTable("SESSION")
	for _, name := range matched {
		table.AddRow(name)
	}
	table.Render(out)
	return nil
}
