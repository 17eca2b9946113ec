// Package config handles settings file loading and default paths.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// AppName names the configuration directory.
const AppName = "sway-displays"

// Default settings values.
const (
	DefaultIPCTimeout = 5 * time.Second
)

// Duration is a time.Duration that can be unmarshaled from human-readable strings.
// Supports formats like "500ms", "5s", "1m", or integer milliseconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '500ms', '5s', '1m' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config represents the sway-displays settings.
// This is separate from the saved display configurations, which live in
// the YAML document at Store.Path.
type Config struct {
	IPC    IPCConfig    `toml:"ipc"`
	Store  StoreConfig  `toml:"store"`
	Prompt PromptConfig `toml:"prompt"`
}

// IPCConfig holds compositor connection settings.
type IPCConfig struct {
	Socket  string   `toml:"socket"`  // Empty = $SWAYSOCK
	Timeout Duration `toml:"timeout"` // Per request, 0 = no timeout
}

// StoreConfig holds the saved-configurations document location.
type StoreConfig struct {
	Path string `toml:"path"` // Empty = ~/.config/sway-displays/config.yml
}

// PromptConfig holds interactive prompt settings.
type PromptConfig struct {
	Color bool `toml:"color"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		IPC: IPCConfig{
			Socket:  "",
			Timeout: Duration(DefaultIPCTimeout),
		},
		Store: StoreConfig{
			Path: "",
		},
		Prompt: PromptConfig{
			Color: true,
		},
	}
}

// ConfigDir returns the sway-displays configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, AppName)
}

// SettingsPath returns the path to the settings file.
func SettingsPath() string {
	return filepath.Join(ConfigDir(), "settings.toml")
}

// DocumentPath returns the default path to the saved configurations.
func DocumentPath() string {
	return filepath.Join(ConfigDir(), "config.yml")
}

// LoadConfig loads settings from the specified path.
// If path is empty, uses the default settings path.
// Returns default settings if the file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = SettingsPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return cfg, nil
}

// Validate checks if the settings are valid.
func (c *Config) Validate() error {
	if c.IPC.Timeout < 0 {
		return fmt.Errorf("ipc.timeout must not be negative, got %s", c.IPC.Timeout.Duration())
	}
	return nil
}

// StorePath returns the configured document path, or the default one.
func (c *Config) StorePath() string {
	if c.Store.Path != "" {
		return expandPath(c.Store.Path)
	}
	return DocumentPath()
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
