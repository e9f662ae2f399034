// Package server exposes the event router over HTTP. It resolves inbound
// requests into events, dispatches them, and translates dispatch outcomes
// into response envelopes and status codes.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/rs/cors"

	"github.com/bcwilsondotcom/nx-monorepo-template-sub001/eventrouter"
	"github.com/bcwilsondotcom/nx-monorepo-template-sub001/internal/envelope"
)

// Server runs the invocation boundary over TCP.
type Server struct {
	cfg     Config
	logger  *slog.Logger
	handler *Handler
}

// New creates a Server. Config defaults are applied automatically.
func New(cfg Config, router *eventrouter.Router, resolver *envelope.Resolver, logger *slog.Logger) *Server {
	cfg.ApplyDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	lg := logger.With("component", "server")
	return &Server{
		cfg:     cfg,
		logger:  lg,
		handler: NewHandler(router, resolver, cfg, lg),
	}
}

// Stats returns a snapshot of the dispatch counters.
func (s *Server) Stats() Snapshot {
	return s.handler.Stats()
}

// Run starts the listener and blocks until ctx is cancelled, then shuts
// down gracefully within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	if err := s.cfg.Validate(); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.cfg.Listen, err)
	}

	httpServer := &http.Server{Handler: s.routes()}

	s.logger.Info("server started",
		"listen", ln.Addr().String(),
		"function", s.cfg.FunctionName,
		"cors", len(s.cfg.AllowedOrigins) > 0,
	)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := httpServer.Serve(ln); err != http.ErrServerClosed {
			s.logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()

	s.logger.Info("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)

	wg.Wait()

	snap := s.handler.Stats()
	s.logger.Info("server stopped",
		"received", snap.Received,
		"succeeded", snap.Succeeded,
		"unhandled", snap.Unhandled,
		"failed", snap.Failed,
		"rejected", snap.Rejected,
	)

	return ctx.Err()
}

// routes composes the mux with the optional CORS layer.
func (s *Server) routes() http.Handler {
	mux := s.handler.Mux()
	if len(s.cfg.AllowedOrigins) == 0 {
		return mux
	}
	return newCORS(s.cfg.AllowedOrigins).Handler(mux)
}

func newCORS(origins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedHeaders: []string{"Content-Type", envelope.EventTypeHeader, RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
	})
}
