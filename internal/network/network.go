// Package network discovers the nodes of a virtual network directory.
//
// A network directory holds one configuration file per node (identified by
// extension, ".lnx" by default) and usually a role file mapping node names
// to "host" or "router".
package network

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vnet-tools/vnet-tmux/internal/config"
	"github.com/vnet-tools/vnet-tmux/internal/util"
)

// Node is one node discovered in a network directory.
type Node struct {
	// Name is the config file's base name without its extension.
	Name string

	// ConfigPath is the absolute path of the node's config file.
	ConfigPath string
}

// EmptyNetworkError reports a network directory with no node config files.
type EmptyNetworkError struct {
	Dir string
	Ext string
}

// Error implements the error interface.
func (e *EmptyNetworkError) Error() string {
	return fmt.Sprintf("no %s files found in %s", e.Ext, e.Dir)
}

// Discover lists the node config files in dir.
//
// Nodes are returned in directory iteration order (lexical by file name);
// the first one becomes the session's initial pane.
//
// Parameters:
//   - dir: Network directory
//   - ext: Config file extension, with or without the leading dot
//
// Returns:
//   - []Node: Discovered nodes, at least one
//   - error: *config.MissingFileError if dir is absent or not a directory,
//     *EmptyNetworkError if no config files exist
func Discover(dir, ext string) ([]Node, error) {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || isNotDir(abs) {
			return nil, &config.MissingFileError{Kind: "network directory", Path: dir}
		}
		return nil, fmt.Errorf("failed to read network directory %s: %w", dir, err)
	}

	var nodes []Node
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ext {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		if name == "" {
			continue
		}
		nodes = append(nodes, Node{
			Name:       name,
			ConfigPath: filepath.Join(abs, entry.Name()),
		})
	}

	if len(nodes) == 0 {
		return nil, &EmptyNetworkError{Dir: dir, Ext: ext}
	}
	return nodes, nil
}

func isNotDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// RoleFilePath returns the role file location inside a network directory.
func RoleFilePath(dir, roleFile string) string {
	if filepath.IsAbs(roleFile) {
		return roleFile
	}
	return filepath.Join(dir, roleFile)
}

// SessionName derives the tmux session name for a network directory.
//
// Runs over the same directory always produce the same name, so a stale
// session from an earlier run collides predictably and can be found by prefix.
//
// Parameters:
//   - prefix: Session prefix shared by every session this tool creates
//   - dir: Network directory
//
// Returns:
//   - string: "<prefix>-<directory stem>", sanitized for tmux
func SessionName(prefix, dir string) string {
	base := filepath.Base(filepath.Clean(dir))
	// "." and ".." name the directory they resolve to.
	if abs, err := filepath.Abs(dir); err == nil {
		base = filepath.Base(abs)
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	return SessionPrefix(prefix) + util.SanitizeSessionName(stem)
}

// SessionPrefix returns the literal every session name from prefix starts
// with. The prefix is sanitized like the stem so tmux keeps it verbatim.
func SessionPrefix(prefix string) string {
	return util.SanitizeSessionName(prefix) + "-"
}
