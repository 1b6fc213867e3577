package tmux

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vnet-tools/vnet-tmux/internal/ui"
)

// paneIDFormat makes new-session and split-window print the new pane's id.
const paneIDFormat = "#{pane_id}"

// Options configures a Client.
type Options struct {
	// Verbose echoes every tmux invocation to Echo before running it.
	Verbose bool

	// Echo receives verbose output (os.Stderr if nil).
	Echo io.Writer

	// Nested is true when running inside an existing tmux client, in which
	// case Attach switches that client instead of attaching a new one.
	Nested bool
}

// Client issues tmux commands through a Runner.
type Client struct {
	runner Runner
	opts   Options
}

// NewClient creates a tmux client.
//
// Parameters:
//   - runner: Executes tmux
//   - opts: Verbosity and attach behaviour
//
// Returns:
//   - *Client: A new Client
func NewClient(runner Runner, opts Options) *Client {
	if opts.Echo == nil {
		opts.Echo = os.Stderr
	}
	return &Client{runner: runner, opts: opts}
}

// NewSession creates a detached session whose first pane runs command.
//
// Returns:
//   - string: The new pane's id (e.g. "%0")
//   - error: *SessionOperationError on failure
func (c *Client) NewSession(ctx context.Context, name, dir, command string) (string, error) {
	args := []string{"new-session", "-d", "-s", name, "-P", "-F", paneIDFormat}
	if dir != "" {
		args = append(args, "-c", dir)
	}
	return c.run(ctx, "new-session", append(args, command)...)
}

// SetOption sets an option on session's current window. tmux picks the
// option's scope from its name.
func (c *Client) SetOption(ctx context.Context, session, option, value string) error {
	_, err := c.run(ctx, "set-option", "set-option", "-t", window(session), option, value)
	return err
}

// SplitWindow adds a pane to session's current window running command.
//
// Returns:
//   - string: The new pane's id
//   - error: *SessionOperationError on failure
func (c *Client) SplitWindow(ctx context.Context, session, dir, command string) (string, error) {
	args := []string{"split-window", "-t", window(session), "-P", "-F", paneIDFormat}
	if dir != "" {
		args = append(args, "-c", dir)
	}
	return c.run(ctx, "split-window", append(args, command)...)
}

// SetPaneTitle sets the title shown in the pane's border.
func (c *Client) SetPaneTitle(ctx context.Context, pane, title string) error {
	_, err := c.run(ctx, "select-pane", "select-pane", "-t", pane, "-T", title)
	return err
}

// SelectLayout applies a layout (e.g. "tiled") to session's current window.
func (c *Client) SelectLayout(ctx context.Context, session, layout string) error {
	_, err := c.run(ctx, "select-layout", "select-layout", "-t", window(session), layout)
	return err
}

// Attach hands the terminal to session name and blocks until the operator
// detaches. Inside tmux the current client is switched instead.
func (c *Client) Attach(ctx context.Context, name string) error {
	if c.opts.Nested {
		_, err := c.run(ctx, "switch-client", "switch-client", "-t", name)
		return err
	}

	args := []string{"attach-session", "-t", name}
	c.echo(args)
	if err := c.runner.Interactive(ctx, args...); err != nil {
		return &SessionOperationError{Step: "attach-session", Args: args, Err: err}
	}
	return nil
}

// ListSessions returns the names of all sessions on the default server.
// A machine with no tmux server running has no sessions.
func (c *Client) ListSessions(ctx context.Context) ([]string, error) {
	args := []string{"list-sessions", "-F", "#{session_name}"}
	c.echo(args)
	out, err := c.runner.Output(ctx, args...)
	if err != nil {
		if noServer(out) {
			return nil, nil
		}
		return nil, &SessionOperationError{Step: "list-sessions", Args: args, Output: out, Err: err}
	}

	var names []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			names = append(names, line)
		}
	}
	return names, nil
}

// HasSession reports whether a session called exactly name exists.
// No server running means no session.
func (c *Client) HasSession(ctx context.Context, name string) (bool, error) {
	args := []string{"has-session", "-t", exact(name)}
	c.echo(args)
	out, err := c.runner.Output(ctx, args...)
	if err == nil {
		return true, nil
	}
	if noServer(out) || strings.Contains(out, "can't find session") {
		return false, nil
	}
	return false, &SessionOperationError{Step: "has-session", Args: args, Output: out, Err: err}
}

// KillSession terminates session name and every process in it.
func (c *Client) KillSession(ctx context.Context, name string) error {
	_, err := c.run(ctx, "kill-session", "kill-session", "-t", exact(name))
	return err
}

func (c *Client) run(ctx context.Context, step string, args ...string) (string, error) {
	c.echo(args)
	out, err := c.runner.Output(ctx, args...)
	if err != nil {
		return out, &SessionOperationError{Step: step, Args: args, Output: out, Err: err}
	}
	return out, nil
}

func (c *Client) echo(args []string) {
	log.Debug("tmux", "args", args)
	if c.opts.Verbose {
		ui.PrintCommand(c.opts.Echo, CommandLine(args))
	}
}

// CommandLine renders a tmux invocation the way a shell user would type it.
func CommandLine(args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, "tmux")
	for _, arg := range args {
		parts = append(parts, shellQuote(arg))
	}
	return strings.Join(parts, " ")
}

func shellQuote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n'\"\\$;&|<>(){}*?#!`~") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// exact anchors a session target so "vnet-a" never matches "vnet-ab".
func exact(name string) string {
	return "=" + name
}

// window targets the current window of exactly session name. A bare name
// given as a target pane is first looked up as a window of the current session.
func window(name string) string {
	return exact(name) + ":"
}

func noServer(out string) bool {
	return strings.Contains(out, "no server running") ||
		strings.Contains(out, "error connecting to") ||
		strings.Contains(out, "no sessions")
}
