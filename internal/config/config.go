// Package config loads the top-level event-handler configuration from a
// YAML file and delegates defaults and validation to the subsystem
// configurations it aggregates.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bcwilsondotcom/nx-monorepo-template-sub001/internal/handlers"
	"github.com/bcwilsondotcom/nx-monorepo-template-sub001/internal/server"
)

// DefaultLogLevel is the default log level.
const DefaultLogLevel = "info"

// Config is the top-level configuration for the event-handler service.
// It aggregates all subsystem configurations and is populated from a
// YAML configuration file via Load.
type Config struct {
	// LogLevel is the log level: "debug", "info", "warn", "error".
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	Server   server.Config   `yaml:"server"`
	Handlers handlers.Config `yaml:"handlers"`
}

// ApplyDefaults sets default values for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	c.Server.ApplyDefaults()
	c.Handlers.ApplyDefaults()
}

// Validate checks that required fields are set and values are acceptable.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: invalid log_level %q (must be \"debug\", \"info\", \"warn\", or \"error\")", c.LogLevel)
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Handlers.Validate(); err != nil {
		return err
	}
	return nil
}

// Load reads a YAML configuration file and returns a Config.
// It applies defaults and validates the configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
