package session

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
)

// SessionKiller lists and terminates sessions. *tmux.Client implements it.
type SessionKiller interface {
	ListSessions(ctx context.Context) ([]string, error)
	KillSession(ctx context.Context, name string) error
}

// Failure is one session that could not be terminated.
type Failure struct {
	Session string
	Err     error
}

// Report is the outcome of a cleanup pass.
type Report struct {
	// Killed are the sessions terminated, in listing order.
	Killed []string

	// Failed are the sessions whose termination failed.
	Failed []Failure
}

// Matched returns how many sessions matched the prefix.
func (r Report) Matched() int {
	return len(r.Killed) + len(r.Failed)
}

// Cleaner terminates sessions left over from earlier runs.
type Cleaner struct {
	mux    SessionKiller
	prefix string
}

// NewCleaner creates a cleaner for sessions whose names start with prefix.
//
// Parameters:
//   - mux: Lists and kills sessions
//   - prefix: Literal every matching session name starts with, separator included
//     (see network.SessionPrefix)
func NewCleaner(mux SessionKiller, prefix string) *Cleaner {
	return &Cleaner{mux: mux, prefix: prefix}
}

// Cleanup kills every matching session, attempting all of them even when
// some fail. Per-session failures are logged and collected in the report;
// the returned error is only set when the sessions could not be listed.
func (c *Cleaner) Cleanup(ctx context.Context) (Report, error) {
	var report Report

	names, err := c.mux.ListSessions(ctx)
	if err != nil {
		return report, err
	}

	for _, name := range Matching(names, c.prefix) {
		if err := c.mux.KillSession(ctx, name); err != nil {
			log.Warn("Failed to kill stale session", "session", name, "error", err)
			report.Failed = append(report.Failed, Failure{Session: name, Err: err})
			continue
		}
		log.Debug("Killed stale session", "session", name)
		report.Killed = append(report.Killed, name)
	}

	return report, nil
}

// Matching returns the names that start with prefix, in their original order.
func Matching(names []string, prefix string) []string {
	var matched []string
	for _, name := range names {
		if strings.HasPrefix(name, prefix) {
			matched = append(matched, name)
		}
	}
	return matched
}
