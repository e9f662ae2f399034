// Package handlers implements the domain event handlers registered on the
// router: configuration flags, the project registry, and system operations.
// Handlers keep their state in memory and are safe for concurrent dispatch.
package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/goccy/go-json"

	"github.com/bcwilsondotcom/nx-monorepo-template-sub001/eventrouter"
)

// Config controls behavior shared by the handlers.
type Config struct {
	// Latency is the simulated downstream I/O applied to each handled
	// event. Zero disables it.
	Latency time.Duration `yaml:"latency"`
}

// ApplyDefaults fills unset fields with defaults.
func (c *Config) ApplyDefaults() {}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Latency < 0 {
		return fmt.Errorf("handlers: latency must not be negative")
	}
	return nil
}

// Set bundles the domain handlers behind a single registration call.
type Set struct {
	Configuration *ConfigurationHandler
	Project       *ProjectHandler
	System        *SystemHandler
}

// NewSet constructs the handlers with component-scoped loggers.
func NewSet(logger *slog.Logger, cfg Config) *Set {
	return &Set{
		Configuration: NewConfigurationHandler(logger.With("component", "handlers.configuration"), cfg.Latency),
		Project:       NewProjectHandler(logger.With("component", "handlers.project"), cfg.Latency),
		System:        NewSystemHandler(logger.With("component", "handlers.system"), cfg.Latency),
	}
}

// Register binds each handler to its event-type prefix.
func (s *Set) Register(r *eventrouter.Router) {
	r.Register("configuration.*", s.Configuration)
	r.Register("project.*", s.Project)
	r.Register("system.*", s.System)
}

// Ack is the result for events a handler matched but deliberately did not
// act on. Unknown suffixes under an owned prefix are acknowledged, not
// failed, so that new producers can roll out ahead of handler support.
type Ack struct {
	Status    string `json:"status"`
	EventType string `json:"eventType"`
}

func ignored(eventType string) Ack {
	return Ack{Status: "ignored", EventType: eventType}
}

// validatable payloads are checked after decoding.
type validatable interface {
	Validate() error
}

// decode unmarshals an event payload and validates it when the payload
// type implements validatable on either the value or pointer receiver.
func decode[T any](data json.RawMessage) (T, error) {
	var payload T
	if len(data) > 0 {
		if err := json.Unmarshal(data, &payload); err != nil {
			var zero T
			return zero, fmt.Errorf("decode payload: %w", err)
		}
	}
	if v, ok := any(payload).(validatable); ok {
		if err := v.Validate(); err != nil {
			var zero T
			return zero, fmt.Errorf("invalid payload: %w", err)
		}
	} else if v, ok := any(&payload).(validatable); ok {
		if err := v.Validate(); err != nil {
			var zero T
			return zero, fmt.Errorf("invalid payload: %w", err)
		}
	}
	return payload, nil
}

// simulate stands in for the downstream I/O a real deployment performs,
// honoring cancellation.
func simulate(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
