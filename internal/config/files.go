package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// MissingFileError reports a required file or directory that does not exist.
type MissingFileError struct {
	// Kind describes what the file is for (e.g. "role file", "network directory").
	Kind string

	// Path is the path that was looked up.
	Path string
}

// Error implements the error interface.
func (e *MissingFileError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Path)
}

// LoadStructured decodes a JSON or YAML file into out.
//
// YAML is used for .yaml and .yml files, JSON for everything else.
//
// Parameters:
//   - kind: Human-readable description used in errors
//   - path: File to read
//   - out: Pointer to decode into
//
// Returns:
//   - error: *MissingFileError when the file does not exist, otherwise a
//     wrapped read or decode error
func LoadStructured(kind, path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &MissingFileError{Kind: kind, Path: path}
		}
		return fmt.Errorf("failed to read %s %s: %w", kind, path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, out)
	default:
		err = json.Unmarshal(data, out)
	}
	if err != nil {
		return fmt.Errorf("failed to parse %s %s: %w", kind, path, err)
	}
	return nil
}
