package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/oklog/ulid/v2"

	"github.com/bcwilsondotcom/nx-monorepo-template-sub001/eventrouter"
	"github.com/bcwilsondotcom/nx-monorepo-template-sub001/internal/envelope"
	"github.com/bcwilsondotcom/nx-monorepo-template-sub001/internal/invocation"
)

// RequestIDHeader carries the caller-supplied invocation ID; it is echoed
// on the response alongside the envelope's requestId field.
const RequestIDHeader = "X-Request-Id"

// maxEventBodyBytes is the maximum allowed event request body size (1 MiB).
// Prevents memory exhaustion from oversized payloads.
const maxEventBodyBytes = 1 << 20

// Handler serves the invocation boundary routes.
type Handler struct {
	router   *eventrouter.Router
	resolver *envelope.Resolver
	cfg      Config
	logger   *slog.Logger
	stats    Stats
}

// NewHandler creates a Handler dispatching to the given router. The
// resolver decides how request bodies and headers map to events.
func NewHandler(router *eventrouter.Router, resolver *envelope.Resolver, cfg Config, logger *slog.Logger) *Handler {
	cfg.ApplyDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		router:   router,
		resolver: resolver,
		cfg:      cfg,
		logger:   logger,
	}
}

// Mux returns a configured ServeMux with all boundary routes.
func (h *Handler) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /events", h.handleEvents)
	mux.HandleFunc("GET /healthz", h.handleHealthz)
	mux.HandleFunc("GET /stats", h.handleStats)
	return mux
}

// Stats returns a snapshot of the dispatch counters.
func (h *Handler) Stats() Snapshot {
	return h.stats.Snapshot()
}

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	h.stats.received.Add(1)

	requestID := r.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = ulid.Make().String()
	}
	w.Header().Set(RequestIDHeader, requestID)

	r.Body = http.MaxBytesReader(w, r.Body, maxEventBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.stats.rejected.Add(1)
		h.logger.Warn("unreadable request body", "request_id", requestID, "error", err)
		writeFailure(w, http.StatusBadRequest, requestID, msgRejected, err)
		return
	}

	ev, err := h.resolver.Resolve(envelope.Request{Header: r.Header, Body: body})
	if err != nil {
		h.stats.rejected.Add(1)
		h.logger.Warn("unresolvable event envelope", "request_id", requestID, "error", err)
		writeFailure(w, http.StatusBadRequest, requestID, msgRejected, err)
		return
	}

	ctx := invocation.NewContext(r.Context(), invocation.Metadata{
		FunctionName: h.cfg.FunctionName,
		RequestID:    requestID,
	})
	ctx, cancel := context.WithTimeout(ctx, h.cfg.RequestTimeout)
	defer cancel()

	result, err := h.router.Route(ctx, ev.Type, ev.Data)
	if err != nil {
		h.writeRouteError(w, requestID, ev, err)
		return
	}

	h.stats.succeeded.Add(1)
	h.logger.Info("event processed",
		"request_id", requestID,
		"event_type", ev.Type,
		"format", ev.Format,
	)
	writeSuccess(w, requestID, result)
}

func (h *Handler) writeRouteError(w http.ResponseWriter, requestID string, ev envelope.Event, err error) {
	var unhandled *eventrouter.UnhandledEventTypeError
	if errors.As(err, &unhandled) {
		h.stats.unhandled.Add(1)
		h.logger.Warn("unhandled event type", "request_id", requestID, "event_type", ev.Type)
		writeFailure(w, http.StatusBadRequest, requestID, msgUnhandled, err)
		return
	}

	h.stats.failed.Add(1)
	status := http.StatusInternalServerError
	message := msgFailed
	if errors.Is(err, context.DeadlineExceeded) {
		status = http.StatusGatewayTimeout
		message = msgTimeout
	}
	h.logger.Error("event handler failed",
		"request_id", requestID,
		"event_type", ev.Type,
		"error", err,
	)
	writeFailure(w, status, requestID, message, err)
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.stats.Snapshot())
}
