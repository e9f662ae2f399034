package handlers

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// ConfigurationHandler applies configuration.* events to a versioned
// in-memory flag store. Every effective change bumps the store version.
type ConfigurationHandler struct {
	logger  *slog.Logger
	latency time.Duration

	mu      sync.Mutex
	version int
	flags   map[string]any
}

// NewConfigurationHandler creates an empty flag store at version zero.
func NewConfigurationHandler(logger *slog.Logger, latency time.Duration) *ConfigurationHandler {
	return &ConfigurationHandler{
		logger:  logger,
		latency: latency,
		flags:   make(map[string]any),
	}
}

// FlagUpdatePayload is the payload for configuration.updated events.
type FlagUpdatePayload struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

func (p *FlagUpdatePayload) Validate() error {
	if p.Key == "" {
		return errors.New("key is required")
	}
	return nil
}

// FlagDeletePayload is the payload for configuration.deleted events.
type FlagDeletePayload struct {
	Key string `json:"key"`
}

func (p *FlagDeletePayload) Validate() error {
	if p.Key == "" {
		return errors.New("key is required")
	}
	return nil
}

// FlagState reports the stored state of a flag after an update.
type FlagState struct {
	Key     string `json:"key"`
	Value   any    `json:"value"`
	Version int    `json:"version"`
}

// FlagRemoval reports the outcome of a delete. Removed is false when the
// flag was not present; deletes are idempotent and only effective ones
// bump the version.
type FlagRemoval struct {
	Key     string `json:"key"`
	Removed bool   `json:"removed"`
	Version int    `json:"version"`
}

// Handle implements eventrouter.Handler.
func (h *ConfigurationHandler) Handle(ctx context.Context, eventType string, data json.RawMessage) (any, error) {
	switch eventType {
	case "configuration.updated":
		payload, err := decode[FlagUpdatePayload](data)
		if err != nil {
			return nil, err
		}
		return h.update(ctx, payload)
	case "configuration.deleted":
		payload, err := decode[FlagDeletePayload](data)
		if err != nil {
			return nil, err
		}
		return h.delete(ctx, payload)
	default:
		h.logger.Debug("ignoring event", "event_type", eventType)
		return ignored(eventType), nil
	}
}

func (h *ConfigurationHandler) update(ctx context.Context, payload FlagUpdatePayload) (any, error) {
	if err := simulate(ctx, h.latency); err != nil {
		return nil, err
	}

	h.mu.Lock()
	h.version++
	h.flags[payload.Key] = payload.Value
	state := FlagState{Key: payload.Key, Value: payload.Value, Version: h.version}
	h.mu.Unlock()

	h.logger.Info("flag updated", "key", payload.Key, "version", state.Version)
	return state, nil
}

func (h *ConfigurationHandler) delete(ctx context.Context, payload FlagDeletePayload) (any, error) {
	if err := simulate(ctx, h.latency); err != nil {
		return nil, err
	}

	h.mu.Lock()
	_, existed := h.flags[payload.Key]
	if existed {
		delete(h.flags, payload.Key)
		h.version++
	}
	removal := FlagRemoval{Key: payload.Key, Removed: existed, Version: h.version}
	h.mu.Unlock()

	h.logger.Info("flag deleted", "key", payload.Key, "removed", existed, "version", removal.Version)
	return removal, nil
}

// Version returns the current store version.
func (h *ConfigurationHandler) Version() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.version
}
