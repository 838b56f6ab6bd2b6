package config

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// parseTOML overlays the file onto the defaults, so absent keys keep their
// default values.
func parseTOML(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML config: %w", err)
	}
	return cfg, nil
}
