package server

import (
	"errors"
	"time"
)

// Config holds the configuration for the invocation boundary.
type Config struct {
	// Listen is the TCP listen address.
	// Default: :8080
	Listen string `yaml:"listen"`

	// FunctionName identifies this deployment; it is attached to the
	// invocation metadata of every dispatch.
	// Default: event-handler
	FunctionName string `yaml:"function_name"`

	// AllowedOrigins enables CORS for the given origins when non-empty.
	// Default: none (CORS disabled)
	AllowedOrigins []string `yaml:"allowed_origins"`

	// RequestTimeout bounds each event dispatch.
	// Default: 30s
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// ShutdownTimeout is the maximum time to wait for a graceful shutdown.
	// Default: 10s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DefaultListen is the default listen address.
const DefaultListen = ":8080"

// DefaultFunctionName is the default deployment name.
const DefaultFunctionName = "event-handler"

// DefaultRequestTimeout is the default per-dispatch timeout.
const DefaultRequestTimeout = 30 * time.Second

// DefaultShutdownTimeout is the default graceful shutdown timeout.
const DefaultShutdownTimeout = 10 * time.Second

// ApplyDefaults sets default values for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.FunctionName == "" {
		c.FunctionName = DefaultFunctionName
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
}

// Validate checks that values are acceptable.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return errors.New("server: config: Listen is required")
	}
	if c.FunctionName == "" {
		return errors.New("server: config: FunctionName is required")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("server: config: RequestTimeout must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("server: config: ShutdownTimeout must be positive")
	}
	return nil
}
