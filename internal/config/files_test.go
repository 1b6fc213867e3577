package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadStructured_JSONAndYAML(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"nodes.json": `{"h1": "host", "r1": "router"}`,
		"nodes.yaml": "h1: host\nr1: router\n",
		"nodes.yml":  "h1: host\nr1: router\n",
	}

	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatalf("write %s: %v", name, err)
			}

			var got map[string]string
			if err := LoadStructured("role file", path, &got); err != nil {
				t.Fatalf("LoadStructured() error = %v", err)
			}
			if got["h1"] != "host" || got["r1"] != "router" || len(got) != 2 {
				t.Errorf("LoadStructured() = %v", got)
			}
		})
	}
}

func TestLoadStructured_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nodes.json")

	var got map[string]string
	err := LoadStructured("role file", path, &got)

	var missing *MissingFileError
	if !errors.As(err, &missing) {
		t.Fatalf("LoadStructured() error = %v, want *MissingFileError", err)
	}
	if missing.Path != path || missing.Kind != "role file" {
		t.Errorf("MissingFileError = %+v", missing)
	}
}

func TestLoadStructured_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nodes.json")
	if err := os.WriteFile(path, []byte(`{"h1": `), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var got map[string]string
	err := LoadStructured("role file", path, &got)
	if err == nil {
		t.Fatal("LoadStructured() error = nil, want parse error")
	}
	var missing *MissingFileError
	if errors.As(err, &missing) {
		t.Errorf("LoadStructured() = %v, want parse error not missing-file", err)
	}
}
