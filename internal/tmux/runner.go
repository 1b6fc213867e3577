// Package tmux drives the tmux terminal multiplexer.
//
// Every operation shells out to the tmux binary once and waits for it to
// finish. There are no retries and no timeouts: a hung tmux server hangs
// the caller.
package tmux

import (
	"context"
	"os"
	"os/exec"
	"strings"
)

// Runner executes tmux with the given arguments.
type Runner interface {
	// Output runs tmux and returns its combined stdout and stderr, trimmed.
	Output(ctx context.Context, args ...string) (string, error)

	// Interactive runs tmux connected to the current terminal and blocks
	// until it exits (e.g. attach-session until the operator detaches).
	Interactive(ctx context.Context, args ...string) error
}

// ExecRunner runs a real tmux binary.
type ExecRunner struct {
	// Binary is the tmux executable name or path.
	Binary string
}

// NewExecRunner creates a runner for binary ("tmux" if empty).
func NewExecRunner(binary string) *ExecRunner {
	if binary == "" {
		binary = "tmux"
	}
	return &ExecRunner{Binary: binary}
}

// Output implements Runner.
func (r *ExecRunner) Output(ctx context.Context, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, r.Binary, args...).CombinedOutput()
	return strings.TrimSpace(string(out)), err
}

// Interactive implements Runner.
func (r *ExecRunner) Interactive(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, r.Binary, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Available reports whether the tmux binary can be found on PATH.
func (r *ExecRunner) Available() bool {
	_, err := exec.LookPath(r.Binary)
	return err == nil
}
