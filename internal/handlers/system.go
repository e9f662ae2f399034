package handlers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/bcwilsondotcom/nx-monorepo-template-sub001/internal/invocation"
)

// SystemHandler answers system.* events: health checks and the
// maintenance-mode toggle reflected in them.
type SystemHandler struct {
	logger  *slog.Logger
	latency time.Duration
	started time.Time

	mu          sync.Mutex
	maintenance bool
}

// NewSystemHandler creates a handler whose uptime starts now.
func NewSystemHandler(logger *slog.Logger, latency time.Duration) *SystemHandler {
	return &SystemHandler{
		logger:  logger,
		latency: latency,
		started: time.Now(),
	}
}

// HealthStatus is the result of a system.health_check event. Service is
// taken from the invocation metadata when present.
type HealthStatus struct {
	Status    string  `json:"status"`
	Service   string  `json:"service"`
	Uptime    float64 `json:"uptime"`
	Timestamp string  `json:"timestamp"`
}

// MaintenanceState reports the maintenance flag after a toggle.
type MaintenanceState struct {
	Maintenance bool `json:"maintenance"`
}

// Handle implements eventrouter.Handler.
func (h *SystemHandler) Handle(ctx context.Context, eventType string, data json.RawMessage) (any, error) {
	switch eventType {
	case "system.health_check":
		return h.healthCheck(ctx)
	case "system.maintenance.started":
		return h.setMaintenance(ctx, true)
	case "system.maintenance.completed":
		return h.setMaintenance(ctx, false)
	default:
		h.logger.Debug("ignoring event", "event_type", eventType)
		return ignored(eventType), nil
	}
}

func (h *SystemHandler) healthCheck(ctx context.Context) (any, error) {
	if err := simulate(ctx, h.latency); err != nil {
		return nil, err
	}

	service := "unknown"
	if md, ok := invocation.FromContext(ctx); ok && md.FunctionName != "" {
		service = md.FunctionName
	}

	h.mu.Lock()
	status := "healthy"
	if h.maintenance {
		status = "maintenance"
	}
	h.mu.Unlock()

	return HealthStatus{
		Status:    status,
		Service:   service,
		Uptime:    time.Since(h.started).Seconds(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *SystemHandler) setMaintenance(ctx context.Context, on bool) (any, error) {
	if err := simulate(ctx, h.latency); err != nil {
		return nil, err
	}

	h.mu.Lock()
	h.maintenance = on
	h.mu.Unlock()

	h.logger.Info("maintenance mode changed", "maintenance", on)
	return MaintenanceState{Maintenance: on}, nil
}
