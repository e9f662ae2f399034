package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bcwilsondotcom/nx-monorepo-template-sub001/eventrouter"
	"github.com/bcwilsondotcom/nx-monorepo-template-sub001/internal/config"
	"github.com/bcwilsondotcom/nx-monorepo-template-sub001/internal/envelope"
	"github.com/bcwilsondotcom/nx-monorepo-template-sub001/internal/handlers"
	"github.com/bcwilsondotcom/nx-monorepo-template-sub001/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the event-handler service",
	Long: "Start the event-handler HTTP service. Accepts events on POST /events,\n" +
		"routes them to the registered handlers, and serves health and stats\n" +
		"endpoints until interrupted.",
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("event-handler serve: %w", err)
	}

	// Apply CLI flag overrides.
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if listen != "" {
		cfg.Server.Listen = listen
	}

	logger := setupLogger(cfg.LogLevel)

	logger.Info("starting event-handler",
		"version", buildVersion,
		"listen", cfg.Server.Listen,
	)

	router := newRouter(logger)

	set := handlers.NewSet(logger, cfg.Handlers)
	set.Register(router)
	logger.Info("handlers registered", "patterns", router.Patterns())

	resolver := envelope.NewResolver(envelope.DefaultFormats()...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	srv := server.New(cfg.Server, router, resolver, logger)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("event-handler serve: %w", err)
	}
	return nil
}

// loadConfig reads the configuration file at path, or returns a default
// configuration when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		var cfg config.Config
		cfg.ApplyDefaults()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return config.Load(path)
}

// newRouter builds the event router with logging hooks attached.
func newRouter(logger *slog.Logger) *eventrouter.Router {
	log := logger.With("component", "router")
	return eventrouter.New(
		eventrouter.WithOnDispatch(func(_ context.Context, eventType, pattern string) {
			log.Debug("dispatching event", "event_type", eventType, "pattern", pattern)
		}),
		eventrouter.WithOnSuccess(func(_ context.Context, eventType, pattern string, d time.Duration) {
			log.Debug("event handled", "event_type", eventType, "pattern", pattern, "duration", d)
		}),
		eventrouter.WithOnFailure(func(_ context.Context, eventType, pattern string, err error, d time.Duration) {
			log.Error("event handler failed",
				"event_type", eventType,
				"pattern", pattern,
				"error", err,
				"duration", d,
			)
		}),
		eventrouter.WithOnUnhandled(func(_ context.Context, eventType string) {
			log.Warn("no handler for event", "event_type", eventType)
		}),
	)
}

func setupLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
