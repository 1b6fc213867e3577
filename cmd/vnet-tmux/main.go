// Package main provides the entry point for the vnet-tmux CLI.
//
// vnet-tmux launches every node of a virtual IP network (hosts and routers)
// in one tmux session, one titled pane per node, and attaches the terminal
// to it so all nodes can be watched and driven at once.
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vnet-tools/vnet-tmux/internal/config"
	"github.com/vnet-tools/vnet-tmux/internal/ui"
)

// Version information set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// settings holds config-file and environment defaults, loaded before any
// command runs.
var settings config.Settings

// rootCmd launches a network when given a directory.
var rootCmd = &cobra.Command{
	Use:           "vnet-tmux <network-dir>",
	Short:         "Launch a virtual network in a tmux session, one pane per node",
	Long:          ui.GetHelpText(),
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		if debug {
			log.SetLevel(log.DebugLevel)
			log.Debug("Debug logging enabled")
		}

		quiet, _ := cmd.Flags().GetBool("quiet")
		ui.SetQuietMode(quiet)

		s, err := config.Load()
		if err != nil {
			return err
		}
		settings = s
		log.Debug("Loaded settings", "settings", settings)
		return nil
	},
	RunE: runLaunch,
}

// Execute runs the root command and exits with status 1 on any error.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func init() {
	log.SetOutput(os.Stderr)

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-essential output")

	addLaunchFlags(rootCmd)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(cleanCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		ui.PrintBanner(version)
		ui.PrintInfo("Version: %s", version)
		ui.PrintInfo("Commit: %s", commit)
		ui.PrintInfo("Built: %s", date)
	},
}

func main() {
	Execute()
}
