package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Empty(t, cfg.IPC.Socket)
	assert.Equal(t, 5*time.Second, cfg.IPC.Timeout.Duration())
	assert.Empty(t, cfg.Store.Path)
	assert.True(t, cfg.Prompt.Color)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/settings.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")

	content := `
[ipc]
socket = "/run/user/1000/sway-ipc.1000.1234.sock"
timeout = "2s"

[store]
path = "/etc/sway-displays/config.yml"

[prompt]
color = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/run/user/1000/sway-ipc.1000.1234.sock", cfg.IPC.Socket)
	assert.Equal(t, 2*time.Second, cfg.IPC.Timeout.Duration())
	assert.Equal(t, "/etc/sway-displays/config.yml", cfg.StorePath())
	assert.False(t, cfg.Prompt.Color)
}

func TestLoadConfig_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")

	content := `
[ipc]
timeout = 750
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// Integer timeouts are milliseconds
	assert.Equal(t, 750*time.Millisecond, cfg.IPC.Timeout.Duration())

	// Unchanged fields keep defaults
	assert.Empty(t, cfg.IPC.Socket)
	assert.True(t, cfg.Prompt.Color)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not toml", `this is not valid toml [`},
		{"bad duration", "[ipc]\ntimeout = \"soon\"\n"},
		{"negative timeout", "[ipc]\ntimeout = \"-1s\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/sway-displays", ConfigDir())
	assert.Equal(t, "/custom/config/sway-displays/settings.toml", SettingsPath())
	assert.Equal(t, "/custom/config/sway-displays/config.yml", DocumentPath())
}

func TestConfigDirDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	assert.Contains(t, ConfigDir(), filepath.Join(".config", "sway-displays"))
}

func TestConfig_StorePath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	cfg := DefaultConfig()
	assert.Equal(t, "/custom/config/sway-displays/config.yml", cfg.StorePath())

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	cfg.Store.Path = "~/displays.yml"
	assert.Equal(t, filepath.Join(home, "displays.yml"), cfg.StorePath())
}
