// Package launch builds the shell command line that starts one node in a pane.
package launch

import (
	"strings"

	"github.com/vnet-tools/vnet-tmux/internal/devices"
)

// DefaultShell keeps a pane open after its node process exits.
const DefaultShell = "bash"

// Resolver looks up how to launch a node. *devices.DeviceMap implements it.
type Resolver interface {
	Get(name string) (devices.NodeLaunchInfo, error)
}

// Builder turns node names and config paths into pane commands.
//
// Arguments are passed through unquoted: paths or arguments containing shell
// metacharacters must be quoted by whoever supplies them.
type Builder struct {
	devices    Resolver
	globalArgs string
	shell      string
}

// NewBuilder creates a command builder.
//
// Parameters:
//   - devs: Node launch info lookup
//   - globalArgs: Arguments appended to every node's command, after its own extra args
//   - shell: Interactive shell run after the node exits (DefaultShell if empty)
//
// Returns:
//   - *Builder: A new Builder
func NewBuilder(devs Resolver, globalArgs, shell string) *Builder {
	if strings.TrimSpace(shell) == "" {
		shell = DefaultShell
	}
	return &Builder{
		devices:    devs,
		globalArgs: strings.TrimSpace(globalArgs),
		shell:      shell,
	}
}

// Build returns the command line for one node:
//
//	<binary> --config <configPath> [extraArgs] [globalArgs]; <shell>
//
// The trailing shell keeps the pane (and its output) alive after the node
// binary exits, whether it crashed or was stopped with Ctrl+C.
//
// Returns:
//   - string: The command line
//   - error: *devices.NotFoundError if the node has no launch info
func (b *Builder) Build(node, configPath string) (string, error) {
	info, err := b.devices.Get(node)
	if err != nil {
		return "", err
	}

	parts := []string{info.BinaryPath, "--config", configPath}
	if extra := strings.TrimSpace(info.ExtraArgs); extra != "" {
		parts = append(parts, extra)
	}
	if b.globalArgs != "" {
		parts = append(parts, b.globalArgs)
	}

	return strings.Join(parts, " ") + "; " + b.shell, nil
}
