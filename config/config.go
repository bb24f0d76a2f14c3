// SPDX-License-Identifier: Unlicense OR MIT

// Package config holds the interaction settings supplied to the
// input router at construction: double-click timing, pan
// thresholds, the shortcut table and theme colors. Settings load
// from and save to a TOML file under the user configuration
// directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/BurntSushi/toml"

	"trellisui.org/unit"
)

// Config is the interaction configuration of a window.
type Config struct {
	// DoubleClickTimeout is the longest pause between two presses
	// of the same button still counted as one click chain.
	DoubleClickTimeout Duration `toml:"double_click_timeout"`
	// MenuDelay is the hover pause before a submenu opens.
	MenuDelay Duration `toml:"menu_delay"`
	// PanDistThreshold is the distance a contact must travel
	// before a pan gesture starts.
	PanDistThreshold unit.Dp `toml:"pan_dist_threshold"`
	// ScrollFlingSlop is the minimum drag distance that starts a
	// fling on release.
	ScrollFlingSlop unit.Dp `toml:"scroll_fling_slop"`
	// Shortcuts maps key presses to commands.
	Shortcuts Shortcuts `toml:"shortcuts"`
	// Theme names the colors the shell draws with.
	Theme Theme `toml:"theme"`
}

// Theme names colors by the SVG 1.1 color catalog.
type Theme struct {
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
	Accent     string `toml:"accent"`
}

// Duration wraps time.Duration for TOML round-trips in the
// "500ms" notation of time.ParseDuration.
type Duration time.Duration

const configFile = "config.toml"

// Default returns the built-in configuration for the current
// platform.
func Default() *Config {
	return &Config{
		DoubleClickTimeout: Duration(500 * time.Millisecond),
		MenuDelay:          Duration(250 * time.Millisecond),
		PanDistThreshold:   unit.Dp(3),
		ScrollFlingSlop:    unit.Dp(3),
		Shortcuts:          defaultShortcuts(runtime.GOOS),
		Theme: Theme{
			Foreground: "gainsboro",
			Background: "black",
			Accent:     "steelblue",
		},
	}
}

// Load reads the configuration file, returning Default if none
// exists yet.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	c := Default()
	if _, err := toml.DecodeFile(path, c); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("config: loading %s: %w", path, err)
	}
	return c, nil
}

// Save writes the configuration file, creating the directory if
// needed.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("config: encoding %s: %w", path, err)
	}
	return nil
}

func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: no user config directory: %w", err)
	}
	return filepath.Join(dir, "trellis", configFile), nil
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}
