// Package config loads the user configuration file.
//
// The file lives at $XDG_CONFIG_HOME/fathom/config.toml (falling back
// to ~/.config). A missing or malformed file is not an error condition
// the user has to deal with at startup: loading silently falls back to
// the defaults.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the user-tunable configuration.
type Config struct {
	// TabWidth is the display width of a tab character.
	TabWidth int `toml:"tab_width"`

	// Extensions maps file extensions (without the dot) to language
	// names, layered over the builtin table.
	Extensions map[string]string `toml:"extensions"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		TabWidth:   4,
		Extensions: map[string]string{},
	}
}

// Load parses the config file at path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.TabWidth <= 0 {
		cfg.TabWidth = 4
	}
	if cfg.Extensions == nil {
		cfg.Extensions = map[string]string{}
	}
	return cfg, nil
}

// LoadDefault loads the config from the standard location, falling back
// to defaults when the file is missing or unreadable. The returned path
// is where the file was looked for; the error is informational and only
// set for files that exist but failed to parse.
func LoadDefault() (*Config, string, error) {
	path, err := defaultPath()
	if err != nil {
		return Default(), "", nil
	}

	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), path, nil
		}
		return Default(), path, err
	}
	return cfg, path, nil
}

func defaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "fathom", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "fathom", "config.toml"), nil
}
