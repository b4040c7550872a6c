// Package config holds the process configuration of quill.
//
// Values come from three places, later ones overriding earlier ones:
//
//  1. Default()
//  2. a TOML file read by Load
//  3. QUILL_* environment variables applied by ApplyEnv
//
// Command line flags are applied by the caller on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/quill/internal/platform"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "QUILL_"

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the process configuration.
type Config struct {
	// LogLevel is a zerolog level name.
	LogLevel string `toml:"log_level"`

	// LogFile receives log output. Empty means stderr.
	LogFile string `toml:"log_file"`

	// PluginDir holds YAML plugin manifests.
	PluginDir string `toml:"plugin_dir"`

	// SettingsDir holds the settings namespaces.
	SettingsDir string `toml:"settings_dir"`

	// Platform overrides the detected platform. Empty means detect.
	Platform string `toml:"platform"`

	// SystemClipboard mirrors the application clipboard to the OS.
	SystemClipboard bool `toml:"system_clipboard"`

	// WatchSettings reloads settings edited on disk.
	WatchSettings bool `toml:"watch_settings"`
}

// Default returns the built-in configuration.
func Default() Config {
	base := ".quill"
	if dir, err := os.UserConfigDir(); err == nil {
		base = filepath.Join(dir, "quill")
	}
	return Config{
		LogLevel:      "info",
		PluginDir:     filepath.Join(base, "plugins"),
		SettingsDir:   filepath.Join(base, "settings"),
		WatchSettings: true,
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ParseError{Path: path, Err: err}
	}
	return cfg, nil
}

// ApplyEnv applies QUILL_* environment overrides.
func (c *Config) ApplyEnv() error {
	return c.applyEnv(os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"LOG_LEVEL":    &c.LogLevel,
		"LOG_FILE":     &c.LogFile,
		"PLUGIN_DIR":   &c.PluginDir,
		"SETTINGS_DIR": &c.SettingsDir,
		"PLATFORM":     &c.Platform,
	}
	for name, dst := range strs {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}

	bools := map[string]*bool{
		"SYSTEM_CLIPBOARD": &c.SystemClipboard,
		"WATCH_SETTINGS":   &c.WatchSettings,
	}
	for name, dst := range bools {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q is not a boolean", ErrInvalidConfig, EnvPrefix, name, v)
		}
		*dst = b
	}
	return nil
}

// Validate checks field values.
func (c Config) Validate() error {
	if c.SettingsDir == "" {
		return fmt.Errorf("%w: settings_dir is empty", ErrInvalidConfig)
	}
	if c.Platform != "" {
		if _, err := platform.Parse(c.Platform); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// ResolvePlatform returns the configured platform, or the detected one.
func (c Config) ResolvePlatform() (platform.Platform, error) {
	if c.Platform == "" {
		return platform.Current(), nil
	}
	return platform.Parse(c.Platform)
}

// ParseError reports a malformed configuration file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	var de *toml.DecodeError
	if errors.As(e.Err, &de) {
		row, col := de.Position()
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, row, col, de.Error())
	}
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
