// Package config loads tool-wide configuration: generator presets, preview
// server settings, and the archive backend.
package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the heightmap tools.
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Preview   PreviewConfig   `yaml:"preview"`
	Archive   ArchiveConfig   `yaml:"archive"`
}

// GeneratorConfig is the default generation preset used when a caller does
// not override individual parameters.
type GeneratorConfig struct {
	// Width and Height are the grid dimensions in cells.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// MinHeight and MaxHeight define the output height range that
	// normalized values map onto.
	MinHeight float64 `yaml:"min_height"`
	MaxHeight float64 `yaml:"max_height"`

	// Octaves is the number of refinement octaves beyond the base octave.
	Octaves int `yaml:"octaves"`

	// Noise selects the evaluator backend: "simplex" or "perlin".
	Noise string `yaml:"noise"`
}

// PreviewConfig holds settings for the browser preview server.
type PreviewConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `yaml:"addr"`

	// AllowedOrigins lists origins allowed to open the websocket.
	// Empty enforces same-origin; "*" allows all.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// MaxMessageSize is the maximum websocket message size in bytes.
	MaxMessageSize int64 `yaml:"max_message_size"`

	// MaxCells caps width*height for a single preview request so a
	// client cannot ask for an unbounded amount of work.
	MaxCells int `yaml:"max_cells"`
}

// ArchiveConfig selects the map archive backend.
type ArchiveConfig struct {
	// Dialect is "sqlite" or "postgres".
	Dialect string `yaml:"dialect"`

	// DSN is a file path for sqlite or a connection string for postgres.
	DSN string `yaml:"dsn"`
}

// DefaultConfig returns a Config with working defaults.
func DefaultConfig() *Config {
	return &Config{
		Generator: GeneratorConfig{
			Width:     64,
			Height:    64,
			MinHeight: 0,
			MaxHeight: 10,
			Octaves:   3,
			Noise:     "simplex",
		},
		Preview: PreviewConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{}, // Same-origin only by default
			MaxMessageSize: 4096,
			MaxCells:       1 << 20,
		},
		Archive: ArchiveConfig{
			Dialect: "sqlite",
			DSN:     "data/heightmaps.db",
		},
	}
}

// LoadConfig loads configuration from a YAML file. A missing file is not an
// error; defaults are returned.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), err
	}

	return config, nil
}

// IsOriginAllowed checks whether a websocket origin may connect.
// Returns true if AllowedOrigins contains "*" or the exact origin, or if
// AllowedOrigins is empty and the origin matches the request host.
func (c *PreviewConfig) IsOriginAllowed(origin, requestHost string) bool {
	if len(c.AllowedOrigins) == 0 {
		return isSameOrigin(origin, requestHost)
	}

	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}

	return false
}

// isSameOrigin checks if the origin matches the request host.
func isSameOrigin(origin, requestHost string) bool {
	if origin == "" {
		return true // No origin header means a non-browser client
	}

	originHost := origin
	if idx := strings.Index(origin, "://"); idx != -1 {
		originHost = origin[idx+3:]
	}
	originHost = strings.TrimSuffix(originHost, "/")

	return originHost == requestHost
}
