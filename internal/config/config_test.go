package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/quill/internal/platform"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotEmpty(t, cfg.PluginDir)
	assert.NotEmpty(t, cfg.SettingsDir)
	assert.True(t, cfg.WatchSettings)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quill.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level = "debug"
plugin_dir = "/opt/quill/plugins"
platform = "osx"
system_clipboard = true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/opt/quill/plugins", cfg.PluginDir)
	assert.Equal(t, Default().SettingsDir, cfg.SettingsDir)
	assert.True(t, cfg.SystemClipboard)

	p, err := cfg.ResolvePlatform()
	require.NoError(t, err)
	assert.Equal(t, platform.MacOS, p)
}

func TestLoad_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("log_level = \n"), 0o644))

	_, err := Load(path)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, path, pe.Path)
	assert.Contains(t, err.Error(), "parse error in")
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"QUILL_LOG_LEVEL":        "warn",
		"QUILL_SETTINGS_DIR":     "/tmp/s",
		"QUILL_SYSTEM_CLIPBOARD": "true",
		"QUILL_WATCH_SETTINGS":   "0",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.applyEnv(lookup))
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "/tmp/s", cfg.SettingsDir)
	assert.True(t, cfg.SystemClipboard)
	assert.False(t, cfg.WatchSettings)
	assert.Equal(t, Default().PluginDir, cfg.PluginDir)
}

func TestApplyEnv_BadBool(t *testing.T) {
	cfg := Default()
	err := cfg.applyEnv(func(k string) (string, bool) {
		if k == "QUILL_WATCH_SETTINGS" {
			return "maybe", true
		}
		return "", false
	})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestApplyEnv_Process(t *testing.T) {
	t.Setenv("QUILL_PLATFORM", "windows")
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "windows", cfg.Platform)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Platform = "plan9"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = Default()
	cfg.SettingsDir = ""
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}
