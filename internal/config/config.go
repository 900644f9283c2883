// Package config loads the static key/value configuration that recipe
// arguments can reference through the `config` variable.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is an immutable set of static configuration values loaded once at
// startup.
type Config struct {
	values map[string]string
}

// Empty returns a configuration with no values.
func Empty() *Config {
	return &Config{values: make(map[string]string)}
}

// FromMap builds a configuration from an existing value map.
func FromMap(values map[string]string) *Config {
	cfg := Empty()
	for key, value := range values {
		cfg.values[key] = value
	}
	return cfg
}

// Load reads a YAML file of scalar key/value pairs.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML config content.
func Parse(data []byte) (*Config, error) {
	values := make(map[string]string)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &Config{values: values}, nil
}

// Get returns the value for key and whether it is present.
func (c *Config) Get(key string) (string, bool) {
	value, ok := c.values[key]
	return value, ok
}

// Values returns a copy of all configuration values.
func (c *Config) Values() map[string]string {
	out := make(map[string]string, len(c.values))
	for key, value := range c.values {
		out[key] = value
	}
	return out
}
