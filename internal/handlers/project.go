package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// ErrProjectNotFound is returned when an event references an unknown
// project ID.
var ErrProjectNotFound = errors.New("project not found")

// Project is a stored project record.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProjectHandler applies project.* events to an in-memory project
// registry keyed by generated UUIDs.
type ProjectHandler struct {
	logger  *slog.Logger
	latency time.Duration

	mu       sync.Mutex
	projects map[string]Project
}

// NewProjectHandler creates an empty registry.
func NewProjectHandler(logger *slog.Logger, latency time.Duration) *ProjectHandler {
	return &ProjectHandler{
		logger:   logger,
		latency:  latency,
		projects: make(map[string]Project),
	}
}

// ProjectCreatePayload is the payload for project.created events.
type ProjectCreatePayload struct {
	Name string `json:"name"`
}

func (p *ProjectCreatePayload) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

// ProjectUpdatePayload is the payload for project.updated events.
type ProjectUpdatePayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (p *ProjectUpdatePayload) Validate() error {
	if p.ID == "" {
		return errors.New("id is required")
	}
	if p.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

// ProjectDeletePayload is the payload for project.deleted events.
type ProjectDeletePayload struct {
	ID string `json:"id"`
}

func (p *ProjectDeletePayload) Validate() error {
	if p.ID == "" {
		return errors.New("id is required")
	}
	return nil
}

// ProjectRemoval reports a deleted project record.
type ProjectRemoval struct {
	Project Project `json:"project"`
	Removed bool    `json:"removed"`
}

// Handle implements eventrouter.Handler.
func (h *ProjectHandler) Handle(ctx context.Context, eventType string, data json.RawMessage) (any, error) {
	switch eventType {
	case "project.created":
		payload, err := decode[ProjectCreatePayload](data)
		if err != nil {
			return nil, err
		}
		return h.create(ctx, payload)
	case "project.updated":
		payload, err := decode[ProjectUpdatePayload](data)
		if err != nil {
			return nil, err
		}
		return h.update(ctx, payload)
	case "project.deleted":
		payload, err := decode[ProjectDeletePayload](data)
		if err != nil {
			return nil, err
		}
		return h.delete(ctx, payload)
	default:
		h.logger.Debug("ignoring event", "event_type", eventType)
		return ignored(eventType), nil
	}
}

func (h *ProjectHandler) create(ctx context.Context, payload ProjectCreatePayload) (any, error) {
	if err := simulate(ctx, h.latency); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	project := Project{
		ID:        uuid.NewString(),
		Name:      payload.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	h.mu.Lock()
	h.projects[project.ID] = project
	h.mu.Unlock()

	h.logger.Info("project created", "project_id", project.ID, "name", project.Name)
	return project, nil
}

func (h *ProjectHandler) update(ctx context.Context, payload ProjectUpdatePayload) (any, error) {
	if err := simulate(ctx, h.latency); err != nil {
		return nil, err
	}

	h.mu.Lock()
	project, ok := h.projects[payload.ID]
	if !ok {
		h.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, payload.ID)
	}
	project.Name = payload.Name
	project.UpdatedAt = time.Now().UTC()
	h.projects[payload.ID] = project
	h.mu.Unlock()

	h.logger.Info("project updated", "project_id", project.ID, "name", project.Name)
	return project, nil
}

func (h *ProjectHandler) delete(ctx context.Context, payload ProjectDeletePayload) (any, error) {
	if err := simulate(ctx, h.latency); err != nil {
		return nil, err
	}

	h.mu.Lock()
	project, ok := h.projects[payload.ID]
	if !ok {
		h.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, payload.ID)
	}
	delete(h.projects, payload.ID)
	h.mu.Unlock()

	h.logger.Info("project deleted", "project_id", project.ID)
	return ProjectRemoval{Project: project, Removed: true}, nil
}

// Get returns a stored project by ID.
func (h *ProjectHandler) Get(id string) (Project, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	project, ok := h.projects[id]
	return project, ok
}
