package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	// PlaylistSource is the path or URL of the playlist document
	// published by the content backend.
	PlaylistSource string `koanf:"playlist_source"`

	// Device is the device class matched against the document's
	// visibility settings: "web" (default) or "mobile".
	Device string `koanf:"device"`

	// LogFile receives structured logs. Empty disables logging; the
	// terminal host cannot log to stdout without corrupting the UI.
	LogFile string `koanf:"log_file"`

	// ThemeAccent overrides the accent color (progress bar, active
	// dot). Any lipgloss color string; empty keeps the default.
	ThemeAccent string `koanf:"theme_accent"`

	ErrorSkip ErrorSkipConfig `koanf:"error_skip"`
}

// ErrorSkipConfig tunes the debounced skip past broken tracks. The
// defaults are tuning values, not invariants.
type ErrorSkipConfig struct {
	SuppressMS int `koanf:"suppress_ms"` // window with at most one skip (default: 1000)
	DelayMS    int `koanf:"delay_ms"`    // delay before the index advance (default: 500)
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.PlaylistSource != "" {
		cfg.PlaylistSource = expandPath(cfg.PlaylistSource)
	}
	if cfg.LogFile != "" {
		cfg.LogFile = expandPath(cfg.LogFile)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/bgm/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "bgm", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetErrorSkip returns the error-skip tuning with defaults applied.
func (c *Config) GetErrorSkip() (suppress, delay time.Duration) {
	s := c.ErrorSkip.SuppressMS
	if s <= 0 {
		s = 1000
	}
	d := c.ErrorSkip.DelayMS
	if d <= 0 {
		d = 500
	}
	return time.Duration(s) * time.Millisecond, time.Duration(d) * time.Millisecond
}

// GetDevice maps the configured device class string to a known value,
// defaulting to "web".
func (c *Config) GetDevice() string {
	if c.Device == "mobile" {
		return "mobile"
	}
	return "web"
}
