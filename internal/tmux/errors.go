package tmux

import (
	"fmt"
	"strings"
)

// SessionOperationError reports a failed tmux invocation.
type SessionOperationError struct {
	// Step names the operation that failed (e.g. "split-window").
	Step string

	// Args are the arguments tmux was called with.
	Args []string

	// Output is what tmux printed.
	Output string

	// Err is the underlying exec error.
	Err error
}

// Error implements the error interface.
func (e *SessionOperationError) Error() string {
	msg := fmt.Sprintf("tmux %s failed", e.Step)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

// Unwrap returns the underlying exec error.
func (e *SessionOperationError) Unwrap() error {
	return e.Err
}

// DuplicateSession reports whether tmux refused to create a session because
// one with the same name already exists.
func (e *SessionOperationError) DuplicateSession() bool {
	return strings.Contains(e.Output, "duplicate session")
}

// SessionExistsError is returned when the session a launch would create is
// already running.
type SessionExistsError struct {
	Name string
}

// Error implements the error interface.
func (e *SessionExistsError) Error() string {
	return fmt.Sprintf("tmux session %s already exists", e.Name)
}
