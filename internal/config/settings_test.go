package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile_Defaults(t *testing.T) {
	s, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	want := Settings{
		HostBinary:    "./vhost",
		RouterBinary:  "./vrouter",
		Shell:         "bash",
		SessionPrefix: "vnet",
		RoleFile:      "nodes.json",
		ConfigExt:     ".lnx",
		TmuxBinary:    "tmux",
	}
	if s != want {
		t.Errorf("LoadFile() = %+v, want %+v", s, want)
	}
}

func TestLoadFile_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "host_binary: /opt/ip/vhost\nshell: zsh\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if s.HostBinary != "/opt/ip/vhost" {
		t.Errorf("HostBinary = %q, want /opt/ip/vhost", s.HostBinary)
	}
	if s.Shell != "zsh" {
		t.Errorf("Shell = %q, want zsh", s.Shell)
	}
	if s.RouterBinary != "./vrouter" {
		t.Errorf("RouterBinary = %q, want default ./vrouter", s.RouterBinary)
	}
}

func TestLoadFile_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("session_prefix: lab\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("VNET_TMUX_SESSION_PREFIX", "ci")

	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if s.SessionPrefix != "ci" {
		t.Errorf("SessionPrefix = %q, want ci", s.SessionPrefix)
	}
}

func TestLoadFile_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("host_binary: [unclosed\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Fatal("LoadFile() error = nil, want parse error")
	}
}
