// Package util provides shared utility functions for the CLI.
package util

import (
	"regexp"
	"strings"
)

var (
	// disallowedSessionChars matches characters tmux rejects or rewrites in
	// session names (it treats '.' and ':' as target separators).
	disallowedSessionChars = regexp.MustCompile(`[.:\s]`)
	// multiUnderscore collapses consecutive underscores.
	multiUnderscore = regexp.MustCompile(`_{2,}`)
)

// SanitizeSessionName converts a string to a name tmux accepts verbatim.
//   - Replaces '.', ':' and whitespace with underscores
//   - Collapses consecutive underscores
//   - Trims leading/trailing underscores
//
// Case is preserved so that session names stay recognisable next to the
// directory they were derived from.
//
// Example: "ip.v4 net" → "ip_v4_net"
func SanitizeSessionName(name string) string {
	s := disallowedSessionChars.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	return s
}
