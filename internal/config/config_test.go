package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKDL_Defaults(t *testing.T) {
	cfg, err := parseKDL("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestParseKDL_AllSections(t *testing.T) {
	content := `
precision 12
angle_mode "deg"
theme "dark"
history {
    limit 100
    path "/tmp/calc.json"
}
server {
    port 9090
    read_timeout_sec 5
    write_timeout_sec 7
}
mcp {
    name "calc-test"
}
`
	cfg, err := parseKDL(content)
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Precision)
	assert.Equal(t, "deg", cfg.AngleMode)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, 100, cfg.History.Limit)
	assert.Equal(t, "/tmp/calc.json", cfg.History.Path)
	assert.Equal(t, Server{Port: 9090, ReadTimeoutSec: 5, WriteTimeoutSec: 7}, cfg.Server)
	assert.Equal(t, "calc-test", cfg.MCP.Name)
}

func TestParseKDL_Malformed(t *testing.T) {
	_, err := parseKDL(`history { limit 5`)
	assert.Error(t, err)
}

func TestParseTOML(t *testing.T) {
	content := `
angle_mode = "deg"

[history]
limit = 20

[server]
port = 7000
`
	cfg, err := parseTOML([]byte(content))
	require.NoError(t, err)

	assert.Equal(t, "deg", cfg.AngleMode)
	assert.Equal(t, 20, cfg.History.Limit)
	assert.Equal(t, 7000, cfg.Server.Port)
	// untouched keys keep defaults
	assert.Equal(t, 10, cfg.Precision)
	assert.Equal(t, 10, cfg.Server.ReadTimeoutSec)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"precision", func(c *Config) { c.Precision = 30 }, "precision"},
		{"angle", func(c *Config) { c.AngleMode = "grad" }, "angle_mode"},
		{"theme", func(c *Config) { c.Theme = "neon" }, "theme"},
		{"history limit", func(c *Config) { c.History.Limit = 0 }, "history.limit"},
		{"port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"timeout", func(c *Config) { c.Server.ReadTimeoutSec = -1 }, "server"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			var ce *ConfigError
			require.True(t, errors.As(err, &ce), "want ConfigError, got %v", err)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file gives defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(dir, "absent.kdl"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("kdl", func(t *testing.T) {
		p := filepath.Join(dir, KDLFile)
		require.NoError(t, os.WriteFile(p, []byte(`precision 4`), 0o644))
		cfg, err := Load(p)
		require.NoError(t, err)
		assert.Equal(t, 4, cfg.Precision)
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		p := filepath.Join(dir, "bad.toml")
		require.NoError(t, os.WriteFile(p, []byte(`angle_mode = "grad"`), 0o644))
		_, err := Load(p)
		assert.Error(t, err)
	})

	t.Run("unknown extension", func(t *testing.T) {
		p := filepath.Join(dir, "calc.yaml")
		require.NoError(t, os.WriteFile(p, []byte(`precision: 4`), 0o644))
		_, err := Load(p)
		assert.Error(t, err)
	})

	t.Run("dir lookup prefers kdl", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, TOMLFile), []byte(`precision = 6`), 0o644))
		cfg, err := LoadDir(dir)
		require.NoError(t, err)
		assert.Equal(t, 4, cfg.Precision)
	})
}

func TestStoragePath(t *testing.T) {
	cfg := Default()
	cfg.History.Path = "/var/lib/calc.json"
	p, err := cfg.StoragePath()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/calc.json", p)
}
