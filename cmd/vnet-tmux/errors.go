package main

import (
	"errors"
	"fmt"

	"github.com/vnet-tools/vnet-tmux/internal/config"
	"github.com/vnet-tools/vnet-tmux/internal/devices"
	"github.com/vnet-tools/vnet-tmux/internal/network"
	"github.com/vnet-tools/vnet-tmux/internal/tmux"
	"github.com/vnet-tools/vnet-tmux/internal/ui"
)

// printError prints a fatal error and, when one applies, a hint on how to fix it.
func printError(err error) {
	ui.PrintError("%v", err)
	if hint := errorHint(err); hint != "" {
		ui.PrintDim("  %s", hint)
	}
}

// errorHint returns operator guidance for the error kinds a run can end with.
func errorHint(err error) string {
	var (
		missingBinary *devices.MissingBinaryError
		notFound      *devices.NotFoundError
		invalid       *devices.ValidationError
		missingFile   *config.MissingFileError
		empty         *network.EmptyNetworkError
		opErr         *tmux.SessionOperationError
		exists        *tmux.SessionExistsError
	)

	switch {
	case errors.As(err, &missingBinary):
		return "Build the node binaries first, or point --host/--router (or --bin-config) at them."
	case errors.As(err, &notFound):
		return fmt.Sprintf("Add %q to the role file (or --bin-config file).", notFound.Node)
	case errors.As(err, &invalid):
		return `Each role file entry must be "host" or "router"; each --bin-config entry needs a binary_path.`
	case errors.As(err, &missingFile):
		if missingFile.Kind == "role file" {
			return `Create it as {"<node>": "host" | "router", ...}, or pass --bin-config.`
		}
		return ""
	case errors.As(err, &empty):
		return fmt.Sprintf("Each node needs a <name>%s config file in the network directory.", empty.Ext)
	case errors.As(err, &exists):
		return "A session for this network is already running; rerun with --clean to replace it."
	case errors.As(err, &opErr):
		if opErr.DuplicateSession() {
			return "A session for this network is already running; rerun with --clean to replace it."
		}
		return "The session was left as-is for inspection; run 'vnet-tmux clean' to remove it."
	}
	return ""
}
