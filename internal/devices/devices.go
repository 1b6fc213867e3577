// Package devices resolves which executable launches each virtual network node.
//
// A DeviceMap is built once per run from one of two sources: an explicit
// per-node binary-config file, or a role file combined with one host binary
// and one router binary. It is read-only afterwards.
package devices

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/vnet-tools/vnet-tmux/internal/config"
)

// Role is a node's kind.
type Role string

const (
	// RoleHost nodes are launched with the host binary.
	RoleHost Role = "host"

	// RoleRouter nodes are launched with the router binary.
	RoleRouter Role = "router"
)

// NodeLaunchInfo describes how to start one node's process.
type NodeLaunchInfo struct {
	// BinaryPath is the executable to run.
	BinaryPath string `json:"binary_path" yaml:"binary_path"`

	// ExtraArgs are appended after the node's --config argument, verbatim.
	ExtraArgs string `json:"extra_args,omitempty" yaml:"extra_args,omitempty"`
}

// DeviceMap maps node names to launch info.
type DeviceMap struct {
	nodes map[string]NodeLaunchInfo
}

// Get returns the launch info for a node.
//
// Parameters:
//   - name: Node name (config file base name without extension)
//
// Returns:
//   - NodeLaunchInfo: The node's launch info
//   - error: *NotFoundError if the node is not in the map
func (m *DeviceMap) Get(name string) (NodeLaunchInfo, error) {
	info, ok := m.nodes[name]
	if !ok {
		return NodeLaunchInfo{}, &NotFoundError{Node: name}
	}
	return info, nil
}

// Len returns the number of nodes in the map.
func (m *DeviceMap) Len() int {
	return len(m.nodes)
}

// Names returns the node names in sorted order.
func (m *DeviceMap) Names() []string {
	names := make([]string, 0, len(m.nodes))
	for name := range m.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CheckNodes verifies the binary of every named node that is in the map.
// Names missing from the map are skipped; Get reports those.
//
// Returns:
//   - error: *MissingBinaryError for the first absent binary
func (m *DeviceMap) CheckNodes(names []string) error {
	for _, name := range names {
		info, ok := m.nodes[name]
		if !ok {
			continue
		}
		if err := CheckBinary(info.BinaryPath, name); err != nil {
			return err
		}
	}
	return nil
}

// SourceKind selects how a DeviceMap is built.
type SourceKind int

const (
	// SourceExplicit reads node → {binary_path, extra_args} from a file.
	SourceExplicit SourceKind = iota + 1

	// SourceRoles reads node → role from a file and picks one of two binaries.
	SourceRoles
)

// String returns the source kind name.
func (k SourceKind) String() string {
	switch k {
	case SourceExplicit:
		return "explicit"
	case SourceRoles:
		return "roles"
	default:
		return fmt.Sprintf("SourceKind(%d)", int(k))
	}
}

// Source describes where a DeviceMap comes from. Only the fields that belong
// to Kind are read.
type Source struct {
	Kind SourceKind

	// BinaryConfig is the explicit per-node file (SourceExplicit).
	BinaryConfig string

	// RoleFile, HostBinary and RouterBinary are used by SourceRoles.
	RoleFile     string
	HostBinary   string
	RouterBinary string
}

// ExplicitSource returns a Source reading per-node binaries from path.
func ExplicitSource(path string) Source {
	return Source{Kind: SourceExplicit, BinaryConfig: path}
}

// RoleSource returns a Source combining a role file with host and router binaries.
func RoleSource(roleFile, hostBinary, routerBinary string) Source {
	return Source{
		Kind:         SourceRoles,
		RoleFile:     roleFile,
		HostBinary:   hostBinary,
		RouterBinary: routerBinary,
	}
}

// Resolve builds a DeviceMap from src.
//
// Returns:
//   - *DeviceMap: The resolved map
//   - error: Any error from the selected constructor
func Resolve(src Source) (*DeviceMap, error) {
	switch src.Kind {
	case SourceExplicit:
		return FromBinaryConfig(src.BinaryConfig)
	case SourceRoles:
		return FromRoles(src.RoleFile, src.HostBinary, src.RouterBinary)
	default:
		return nil, fmt.Errorf("unknown device source %s", src.Kind)
	}
}

// FromBinaryConfig loads a DeviceMap from an explicit per-node file.
//
// Entries are used verbatim. Binaries are not checked here because one file
// may describe nodes of several networks; see CheckNodes.
//
// Parameters:
//   - path: JSON or YAML file mapping node name to {binary_path, extra_args}
//
// Returns:
//   - *DeviceMap: The resolved map
//   - error: *config.MissingFileError or *ValidationError
func FromBinaryConfig(path string) (*DeviceMap, error) {
	var entries map[string]NodeLaunchInfo
	if err := config.LoadStructured("binary config", path, &entries); err != nil {
		return nil, asValidation(path, err)
	}

	nodes := make(map[string]NodeLaunchInfo, len(entries))
	for _, name := range sortedKeys(entries) {
		info := entries[name]
		if name == "" {
			return nil, &ValidationError{Source: path, Reason: "empty node name"}
		}
		if info.BinaryPath == "" {
			return nil, &ValidationError{Source: path, Node: name, Reason: "binary_path is required"}
		}
		nodes[name] = info
	}

	log.Debug("Resolved devices from binary config", "path", path, "nodes", len(nodes))
	return &DeviceMap{nodes: nodes}, nil
}

// FromRoles builds a DeviceMap from a role file and two binaries.
//
// Both binaries are checked before the role file is read, so a missing
// binary is reported even when the role file is also broken.
//
// Parameters:
//   - roleFile: JSON or YAML file mapping node name to "host" or "router"
//   - hostBinary: Binary for host nodes
//   - routerBinary: Binary for router nodes
//
// Returns:
//   - *DeviceMap: The resolved map
//   - error: *MissingBinaryError, *config.MissingFileError or *ValidationError
func FromRoles(roleFile, hostBinary, routerBinary string) (*DeviceMap, error) {
	if err := CheckBinary(hostBinary, string(RoleHost)); err != nil {
		return nil, err
	}
	if err := CheckBinary(routerBinary, string(RoleRouter)); err != nil {
		return nil, err
	}

	var roles map[string]Role
	if err := config.LoadStructured("role file", roleFile, &roles); err != nil {
		return nil, asValidation(roleFile, err)
	}

	nodes := make(map[string]NodeLaunchInfo, len(roles))
	for _, name := range sortedKeys(roles) {
		if name == "" {
			return nil, &ValidationError{Source: roleFile, Reason: "empty node name"}
		}
		switch roles[name] {
		case RoleHost:
			nodes[name] = NodeLaunchInfo{BinaryPath: hostBinary}
		case RoleRouter:
			nodes[name] = NodeLaunchInfo{BinaryPath: routerBinary}
		default:
			return nil, &ValidationError{
				Source: roleFile,
				Node:   name,
				Reason: fmt.Sprintf("role %q is not %q or %q", roles[name], RoleHost, RoleRouter),
			}
		}
	}

	log.Debug("Resolved devices from role file", "path", roleFile, "nodes", len(nodes))
	return &DeviceMap{nodes: nodes}, nil
}

// CheckBinary verifies that path exists and is not a directory.
//
// Parameters:
//   - path: Binary path to check
//   - owner: Role or node name reported in the error
//
// Returns:
//   - error: *MissingBinaryError if the binary is absent
func CheckBinary(path, owner string) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return &MissingBinaryError{Path: path, Owner: owner}
	}
	return nil
}

// asValidation keeps missing-file errors as they are and turns decode
// failures into a ValidationError for the file.
func asValidation(path string, err error) error {
	var missing *config.MissingFileError
	if errors.As(err, &missing) {
		return err
	}
	return &ValidationError{Source: path, Reason: "malformed file", Err: err}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
