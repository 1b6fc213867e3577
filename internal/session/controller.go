// Package session builds and cleans up the multi-pane tmux sessions that
// hold one pane per virtual network node.
package session

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/vnet-tools/vnet-tmux/internal/network"
)

// ErrNoNodes is returned when a session would have no panes.
var ErrNoNodes = errors.New("session needs at least one node")

// Layout re-applied after every split so panes stay evenly sized.
const tiledLayout = "tiled"

// Multiplexer is the subset of tmux the controller drives.
// *tmux.Client implements it.
type Multiplexer interface {
	NewSession(ctx context.Context, name, dir, command string) (string, error)
	SetOption(ctx context.Context, target, option, value string) error
	SplitWindow(ctx context.Context, target, dir, command string) (string, error)
	SetPaneTitle(ctx context.Context, pane, title string) error
	SelectLayout(ctx context.Context, target, layout string) error
	Attach(ctx context.Context, name string) error
}

// CommandBuilder produces a node's pane command. *launch.Builder implements it.
type CommandBuilder interface {
	Build(node, configPath string) (string, error)
}

// Pane is one created pane.
type Pane struct {
	ID      string
	Title   string
	Command string
}

// Controller creates and populates node sessions.
type Controller struct {
	mux      Multiplexer
	commands CommandBuilder
	workDir  string
}

// NewController creates a session controller.
//
// Parameters:
//   - mux: The multiplexer to drive
//   - commands: Builds each node's pane command
//   - workDir: Start directory for every pane, so relative binary paths resolve
//
// Returns:
//   - *Controller: A new Controller
func NewController(mux Multiplexer, commands CommandBuilder, workDir string) *Controller {
	return &Controller{mux: mux, commands: commands, workDir: workDir}
}

// Plan builds every node's command without touching the multiplexer.
//
// Returns:
//   - []Pane: One pane per node, in input order, without IDs
//   - error: The first command build failure (e.g. *devices.NotFoundError)
func (c *Controller) Plan(nodes []network.Node) ([]Pane, error) {
	if len(nodes) == 0 {
		return nil, ErrNoNodes
	}

	panes := make([]Pane, 0, len(nodes))
	for _, node := range nodes {
		cmd, err := c.commands.Build(node.Name, node.ConfigPath)
		if err != nil {
			return nil, err
		}
		panes = append(panes, Pane{Title: node.Name, Command: cmd})
	}
	return panes, nil
}

// Build creates session name with one titled pane per node.
//
// All commands are planned before the session is created, so an
// unresolvable node aborts the run without leaving a partial session.
// Once creation starts, the first multiplexer failure aborts the build and
// the panes created so far are left in place for inspection.
//
// Returns:
//   - []Pane: The created panes in input order
//   - error: A planning error or *tmux.SessionOperationError
func (c *Controller) Build(ctx context.Context, name string, nodes []network.Node) ([]Pane, error) {
	panes, err := c.Plan(nodes)
	if err != nil {
		return nil, err
	}

	first := &panes[0]
	first.ID, err = c.mux.NewSession(ctx, name, c.workDir, first.Command)
	if err != nil {
		return nil, err
	}
	if err := c.mux.SetPaneTitle(ctx, first.ID, first.Title); err != nil {
		return panes[:1], err
	}
	log.Debug("Created session", "session", name, "node", first.Title, "pane", first.ID)

	if err := c.mux.SetOption(ctx, name, "pane-border-status", "top"); err != nil {
		return panes[:1], err
	}

	for i := 1; i < len(panes); i++ {
		pane := &panes[i]
		pane.ID, err = c.mux.SplitWindow(ctx, name, c.workDir, pane.Command)
		if err != nil {
			return panes[:i], err
		}
		if err := c.mux.SetPaneTitle(ctx, pane.ID, pane.Title); err != nil {
			return panes[:i+1], err
		}
		if err := c.mux.SelectLayout(ctx, name, tiledLayout); err != nil {
			return panes[:i+1], err
		}
		log.Debug("Added pane", "session", name, "node", pane.Title, "pane", pane.ID)
	}

	return panes, nil
}

// Attach hands the operator's terminal to the session and blocks until they
// detach. Node processes keep running afterwards.
func (c *Controller) Attach(ctx context.Context, name string) error {
	return c.mux.Attach(ctx, name)
}
