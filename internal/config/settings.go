// Package config provides vnet-tmux configuration management.
//
// Settings come from built-in defaults, an optional config file
// (~/.config/vnet-tmux/config.yaml, or the file named by VNET_TMUX_CONFIG)
// and VNET_TMUX_* environment variables, in increasing precedence.
// Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "VNET_TMUX"

// Settings holds the run-wide defaults for vnet-tmux.
type Settings struct {
	// HostBinary launches nodes whose role is "host".
	HostBinary string `mapstructure:"host_binary"`

	// RouterBinary launches nodes whose role is "router".
	RouterBinary string `mapstructure:"router_binary"`

	// Shell is started after each node binary exits so the pane stays open.
	Shell string `mapstructure:"shell"`

	// SessionPrefix starts every session name this tool creates.
	SessionPrefix string `mapstructure:"session_prefix"`

	// RoleFile is the file name, inside the network directory, that maps
	// node names to roles.
	RoleFile string `mapstructure:"role_file"`

	// ConfigExt identifies node configuration files.
	ConfigExt string `mapstructure:"config_ext"`

	// TmuxBinary is the multiplexer executable.
	TmuxBinary string `mapstructure:"tmux_binary"`
}

// Load reads settings from the default config location and environment.
//
// Returns:
//   - Settings: The merged settings
//   - error: Error if a config file exists but cannot be parsed
func Load() (Settings, error) {
	path := os.Getenv(EnvPrefix + "_CONFIG")
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".config", "vnet-tmux", "config.yaml")
		}
	}
	return LoadFile(path)
}

// LoadFile reads settings from path (which may not exist) and environment.
//
// Parameters:
//   - path: Config file path; empty or missing means defaults + env only
//
// Returns:
//   - Settings: The merged settings
//   - error: Error if the file exists but cannot be parsed
func LoadFile(path string) (Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
			return Settings{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return s, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host_binary", "./vhost")
	v.SetDefault("router_binary", "./vrouter")
	v.SetDefault("shell", "bash")
	v.SetDefault("session_prefix", "vnet")
	v.SetDefault("role_file", "nodes.json")
	v.SetDefault("config_ext", ".lnx")
	v.SetDefault("tmux_binary", "tmux")
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}
