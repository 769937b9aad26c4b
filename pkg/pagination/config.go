// Package pagination provides types and helpers for paginated list queries.
package pagination

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds pagination settings including page size limits.
type Config struct {
	DefaultSize int `toml:"default_size"`
	MaxSize     int `toml:"max_size"`
}

// ConfigEnv maps environment variable names for pagination configuration.
type ConfigEnv struct {
	DefaultSize string
	MaxSize     string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *ConfigEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies non-zero values from the overlay configuration.
func (c *Config) Merge(overlay *Config) {
	if overlay.DefaultSize != 0 {
		c.DefaultSize = overlay.DefaultSize
	}
	if overlay.MaxSize != 0 {
		c.MaxSize = overlay.MaxSize
	}
}

func (c *Config) loadDefaults() {
	if c.DefaultSize <= 0 {
		c.DefaultSize = 20
	}
	if c.MaxSize <= 0 {
		c.MaxSize = 100
	}
}

func (c *Config) loadEnv(env *ConfigEnv) {
	if env.DefaultSize != "" {
		if v := os.Getenv(env.DefaultSize); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.DefaultSize = n
			}
		}
	}
	if env.MaxSize != "" {
		if v := os.Getenv(env.MaxSize); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.MaxSize = n
			}
		}
	}
}

func (c *Config) validate() error {
	if c.DefaultSize < 1 {
		return fmt.Errorf("default_size must be positive")
	}
	if c.MaxSize < 1 {
		return fmt.Errorf("max_size must be positive")
	}
	if c.DefaultSize > c.MaxSize {
		return fmt.Errorf("default_size cannot exceed max_size")
	}
	return nil
}
