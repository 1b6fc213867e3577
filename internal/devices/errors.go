package devices

import "fmt"

// ValidationError reports a malformed entry in a role or binary-config file.
type ValidationError struct {
	// Source is the file the entry came from.
	Source string

	// Node is the offending node name, if any.
	Node string

	// Reason describes what is wrong with the entry.
	Reason string

	// Err is the underlying decode error, if any.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Node != "" {
		return fmt.Sprintf("invalid entry for node %q in %s: %s", e.Node, e.Source, e.Reason)
	}
	if e.Err != nil {
		return fmt.Sprintf("invalid %s: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid %s: %s", e.Source, e.Reason)
}

// Unwrap returns the underlying decode error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a node that has no entry in the DeviceMap.
type NotFoundError struct {
	Node string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no binary configured for node %q", e.Node)
}

// MissingBinaryError reports a node binary that does not exist on disk.
type MissingBinaryError struct {
	// Path is the binary path that was checked.
	Path string

	// Owner names what needed the binary: a role ("host", "router") or a node.
	Owner string
}

// Error implements the error interface.
func (e *MissingBinaryError) Error() string {
	if e.Owner != "" {
		return fmt.Sprintf("%s binary not found: %s", e.Owner, e.Path)
	}
	return fmt.Sprintf("binary not found: %s", e.Path)
}
