package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/vnet-tools/vnet-tmux/internal/devices"
	"github.com/vnet-tools/vnet-tmux/internal/launch"
	"github.com/vnet-tools/vnet-tmux/internal/network"
	"github.com/vnet-tools/vnet-tmux/internal/session"
	"github.com/vnet-tools/vnet-tmux/internal/tmux"
	"github.com/vnet-tools/vnet-tmux/internal/ui"
)

// launchOptions is everything one run needs, merged from settings and flags.
type launchOptions struct {
	NetworkDir string

	// BinaryConfig selects explicit per-node resolution when non-empty;
	// otherwise RoleFile, HostBinary and RouterBinary are used.
	BinaryConfig string
	RoleFile     string
	HostBinary   string
	RouterBinary string

	ConfigExt     string
	GlobalArgs    string
	Shell         string
	SessionPrefix string
	WorkDir       string

	Clean   bool
	DryRun  bool
	Verbose bool
	Attach  bool
}

// deviceSource picks the resolution path for this run.
func (o launchOptions) deviceSource() devices.Source {
	if o.BinaryConfig != "" {
		return devices.ExplicitSource(o.BinaryConfig)
	}
	return devices.RoleSource(network.RoleFilePath(o.NetworkDir, o.RoleFile), o.HostBinary, o.RouterBinary)
}

func addLaunchFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("bin-config", "", "JSON/YAML file mapping each node to {binary_path, extra_args}")
	f.String("host", "", "Binary for host nodes (default ./vhost)")
	f.String("router", "", "Binary for router nodes (default ./vrouter)")
	f.String("role-file", "", "Role file inside the network directory (default nodes.json)")
	f.String("args", "", "Extra arguments appended to every node's command")
	f.String("shell", "", "Shell started in each pane after its node exits (default bash)")
	f.Bool("clean", false, "Kill vnet sessions from earlier runs before launching")
	f.BoolP("verbose", "v", false, "Echo every tmux command before running it")
	f.Bool("no-attach", false, "Build the session but do not attach to it")
	f.Bool("dry-run", false, "Print each node's command without starting tmux")

	cmd.MarkFlagsMutuallyExclusive("bin-config", "host")
	cmd.MarkFlagsMutuallyExclusive("bin-config", "router")
	cmd.MarkFlagsMutuallyExclusive("bin-config", "role-file")
}

// launchOptionsFromFlags merges command-line flags over the loaded settings.
func launchOptionsFromFlags(cmd *cobra.Command, dir string) (launchOptions, error) {
	wd, err := os.Getwd()
	if err != nil {
		return launchOptions{}, fmt.Errorf("failed to get working directory: %w", err)
	}

	opts := launchOptions{
		NetworkDir:    dir,
		RoleFile:      settings.RoleFile,
		HostBinary:    settings.HostBinary,
		RouterBinary:  settings.RouterBinary,
		ConfigExt:     settings.ConfigExt,
		Shell:         settings.Shell,
		SessionPrefix: settings.SessionPrefix,
		WorkDir:       wd,
	}

	f := cmd.Flags()
	stringFlag := func(name string, dst *string) {
		if f.Changed(name) {
			*dst, _ = f.GetString(name)
		}
	}
	stringFlag("bin-config", &opts.BinaryConfig)
	stringFlag("host", &opts.HostBinary)
	stringFlag("router", &opts.RouterBinary)
	stringFlag("role-file", &opts.RoleFile)
	stringFlag("args", &opts.GlobalArgs)
	stringFlag("shell", &opts.Shell)

	opts.Clean, _ = f.GetBool("clean")
	opts.DryRun, _ = f.GetBool("dry-run")
	opts.Verbose, _ = f.GetBool("verbose")
	noAttach, _ := f.GetBool("no-attach")
	opts.Attach = !noAttach && isInteractive()

	return opts, nil
}

// isInteractive reports whether stdin and stdout are terminals tmux can attach to.
func isInteractive() bool {
	tty := func(fd uintptr) bool { return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) }
	return tty(os.Stdin.Fd()) && tty(os.Stdout.Fd())
}

// runLaunch implements the root command.
func runLaunch(cmd *cobra.Command, args []string) error {
	opts, err := launchOptionsFromFlags(cmd, args[0])
	if err != nil {
		return err
	}

	runner := tmux.NewExecRunner(settings.TmuxBinary)
	if !opts.DryRun && !runner.Available() {
		return fmt.Errorf("%s not found on PATH", runner.Binary)
	}
	client := newTmuxClient(runner, opts.Verbose)

	return launchNetwork(cmd.Context(), opts, client, cmd.OutOrStdout())
}

// newTmuxClient wires a tmux client for this process.
func newTmuxClient(runner tmux.Runner, verbose bool) *tmux.Client {
	return tmux.NewClient(runner, tmux.Options{
		Verbose: verbose,
		Nested:  os.Getenv("TMUX") != "",
	})
}

// launchNetwork runs one launch: optional cleanup, node discovery, device
// resolution, session construction and attach.
//
// Parameters:
//   - ctx: Context for tmux invocations
//   - opts: Merged run options
//   - client: tmux client used for every session operation
//   - out: Destination for dry-run output
//
// Returns:
//   - error: The first fatal error; nothing is rolled back
func launchNetwork(ctx context.Context, opts launchOptions, client *tmux.Client, out io.Writer) error {
	if opts.Clean && !opts.DryRun {
		cleanStaleSessions(ctx, client, opts.SessionPrefix)
	}

	nodes, err := network.Discover(opts.NetworkDir, opts.ConfigExt)
	if err != nil {
		return err
	}
	log.Debug("Discovered nodes", "dir", opts.NetworkDir, "count", len(nodes))

	src := opts.deviceSource()
	devs, err := devices.Resolve(src)
	if err != nil {
		return err
	}
	log.Debug("Resolved devices", "source", src.Kind, "nodes", devs.Len())

	names := make([]string, len(nodes))
	for i, node := range nodes {
		names[i] = node.Name
	}
	if err := devs.CheckNodes(names); err != nil {
		return err
	}

	builder := launch.NewBuilder(devs, opts.GlobalArgs, opts.Shell)
	controller := session.NewController(client, builder, opts.WorkDir)
	name := network.SessionName(opts.SessionPrefix, opts.NetworkDir)

	plan, err := controller.Plan(nodes)
	if err != nil {
		return err
	}
	if opts.DryRun {
		printPlan(out, name, plan)
		return nil
	}

	exists, err := client.HasSession(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return &tmux.SessionExistsError{Name: name}
	}

	panes, err := controller.Build(ctx, name, nodes)
	if err != nil {
		return err
	}
	ui.PrintSuccess("Started %d node(s) in session %s", len(panes), ui.NodeStyle.Render(name))

	if !opts.Attach {
		ui.PrintInfo("Attach with: tmux attach -t %s", name)
		return nil
	}
	return controller.Attach(ctx, name)
}

// printPlan renders the dry-run table.
func printPlan(out io.Writer, name string, panes []session.Pane) {
	fmt.Fprintf(out, "%s (%d panes)\n\n", ui.TitleStyle.Render("Session "+name), len(panes))
	table := ui.NewTable("PANE", "NODE", "COMMAND")
	table.SetMaxWidth(1, 24)
	for i, pane := range panes {
		table.AddRow(fmt.Sprintf("%d", i), pane.Title, pane.Command)
	}
	table.Render(out)
}
