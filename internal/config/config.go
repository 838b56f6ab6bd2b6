// Package config loads calculator settings from .gocalc.kdl or .gocalc.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	KDLFile  = ".gocalc.kdl"
	TOMLFile = ".gocalc.toml"
)

type Config struct {
	Precision int     `toml:"precision"`
	AngleMode string  `toml:"angle_mode"`
	Theme     string  `toml:"theme"`
	History   History `toml:"history"`
	Server    Server  `toml:"server"`
	MCP       MCP     `toml:"mcp"`
}

type History struct {
	Limit int    `toml:"limit"`
	Path  string `toml:"path"` // storage file; empty means the user config dir
}

type Server struct {
	Port            int `toml:"port"`
	ReadTimeoutSec  int `toml:"read_timeout_sec"`
	WriteTimeoutSec int `toml:"write_timeout_sec"`
}

type MCP struct {
	Name string `toml:"name"`
}

func Default() *Config {
	return &Config{
		Precision: 10,
		AngleMode: "rad",
		Theme:     "light",
		History:   History{Limit: 50},
		Server:    Server{Port: 8080, ReadTimeoutSec: 10, WriteTimeoutSec: 10},
		MCP:       MCP{Name: "gocalc"},
	}
}

// ConfigError names the setting that failed validation.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string { return fmt.Sprintf("config %s: %v", e.Field, e.Err) }
func (e *ConfigError) Unwrap() error { return e.Err }

var ErrOutOfRange = errors.New("value out of range")

func (c *Config) Validate() error {
	if c.Precision < 0 || c.Precision > 20 {
		return &ConfigError{"precision", fmt.Errorf("%w: %d not in [0, 20]", ErrOutOfRange, c.Precision)}
	}
	switch c.AngleMode {
	case "rad", "deg":
	default:
		return &ConfigError{"angle_mode", fmt.Errorf("%q is not rad or deg", c.AngleMode)}
	}
	switch c.Theme {
	case "light", "dark":
	default:
		return &ConfigError{"theme", fmt.Errorf("%q is not light or dark", c.Theme)}
	}
	if c.History.Limit < 1 || c.History.Limit > 1000 {
		return &ConfigError{"history.limit", fmt.Errorf("%w: %d not in [1, 1000]", ErrOutOfRange, c.History.Limit)}
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return &ConfigError{"server.port", fmt.Errorf("%w: %d", ErrOutOfRange, c.Server.Port)}
	}
	if c.Server.ReadTimeoutSec < 0 || c.Server.WriteTimeoutSec < 0 {
		return &ConfigError{"server", fmt.Errorf("%w: negative timeout", ErrOutOfRange)}
	}
	return nil
}

// StoragePath resolves the history storage file, defaulting to
// <user config dir>/gocalc/storage.json.
func (c *Config) StoragePath() (string, error) {
	if c.History.Path != "" {
		if rest, ok := strings.CutPrefix(c.History.Path, "~/"); ok {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			return filepath.Join(home, rest), nil
		}
		return c.History.Path, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "gocalc", "storage.json"), nil
}

// Load reads path, picking the format from its extension. A missing file yields
// the defaults. An empty path looks for .gocalc.kdl then .gocalc.toml in dir ".".
func Load(path string) (*Config, error) {
	if path == "" {
		return LoadDir(".")
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg *Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".kdl":
		cfg, err = parseKDL(string(data))
	case ".toml":
		cfg, err = parseTOML(data)
	default:
		return nil, fmt.Errorf("config %s: unsupported format (want .kdl or .toml)", path)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDir loads the first of .gocalc.kdl and .gocalc.toml found in dir.
func LoadDir(dir string) (*Config, error) {
	for _, name := range []string{KDLFile, TOMLFile} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}
