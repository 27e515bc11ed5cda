// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/plantdesk/internal/api"
	"github.com/starford/plantdesk/internal/fixtures"
	"github.com/starford/plantdesk/internal/mcpserver"
	"github.com/starford/plantdesk/internal/metrics"
	"github.com/starford/plantdesk/internal/pageservice"
	"github.com/starford/plantdesk/internal/session"
	"github.com/starford/plantdesk/internal/sse"
)

// core is the part of the application shared by the HTTP and MCP front ends.
type core struct {
	source  *fixtures.Source
	broker  *sse.Broker
	metrics *metrics.Metrics
	reg     *session.Registry
	svc     *pageservice.Service
}

func newApplication(opts []Option) (*application, error) {
	app := &application{version: "dev", now: time.Now}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	return app, nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

func newCore(app *application, logger *slog.Logger) (*core, error) {
	cfg := app.config

	source, err := fixtures.NewSource(cfg.Fixtures.Path)
	if err != nil {
		return nil, fmt.Errorf("load fixtures: %w", err)
	}

	broker := sse.NewBroker(cfg.Events.StatsThrottle)
	m := metrics.New(broker.ClientCount)

	reg := session.NewRegistry(
		session.NewCatalog(source, app.now),
		cfg.Sessions.Capacity,
		cfg.Sessions.IdleTTL,
		session.WithOnOpen(func(s *session.Session) {
			m.SessionOpened(s.Route)
			broker.PublishSession(true, sse.SessionChange{Session: s.ID, Route: s.Route})
			logger.Debug("session opened", slog.String("session", s.ID), slog.String("route", s.Route))
		}),
		session.WithOnClose(func(s *session.Session) {
			m.SessionClosed()
			broker.PublishSession(false, sse.SessionChange{Session: s.ID, Route: s.Route})
			logger.Debug("session closed", slog.String("session", s.ID), slog.String("route", s.Route))
		}),
	)

	svc := pageservice.NewService(reg,
		pageservice.WithActionHook(m.Action),
		pageservice.WithChangeHook(func(kind, sid, route, id string) {
			broker.PublishRecord(kind, sse.RecordChange{Session: sid, Route: route, ID: id})
		}),
	)

	return &core{source: source, broker: broker, metrics: m, reg: reg, svc: svc}, nil
}

func (c *core) close() {
	c.reg.Purge()
	c.broker.Close()
}

// Run starts the HTTP application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	// Initialize structured JSON logger.
	logger := newLogger(os.Stdout, cfg.App.LogLevel)
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("fixtures_path", cfg.Fixtures.Path),
		slog.Int("session_capacity", cfg.Sessions.Capacity),
		slog.Duration("session_idle_ttl", cfg.Sessions.IdleTTL),
		slog.String("log_level", cfg.App.LogLevel.String()))

	c, err := newCore(app, logger)
	if err != nil {
		return err
	}
	defer c.close()

	logger.Info("Fixtures loaded", slog.String("checksum", c.source.Checksum()))

	apiRouter := api.NewRouter(c.svc, c.broker, cfg.App.RateLimit.RPS, cfg.App.RateLimit.Burst)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints.
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/metrics", c.metrics.Handler())

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Reload fixtures on change; new sessions pick up the new records.
	if cfg.Fixtures.Watch && cfg.Fixtures.Path != "" {
		g.Go(func() error {
			return c.source.Watch(gCtx, logger, func(sum string) {
				c.broker.Publish(sse.Event{Type: "fixtures.reloaded", Data: map[string]string{"checksum": sum}})
			})
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP serves the page tools over stdio. Logs go to stderr since stdout
// carries the protocol.
func RunMCP(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}

	logger := newLogger(os.Stderr, app.config.App.LogLevel)
	slog.SetDefault(logger)

	c, err := newCore(app, logger)
	if err != nil {
		return err
	}
	defer c.close()

	logger.Info("MCP server starting", slog.String("version", app.version))
	return mcpserver.New(c.svc, app.version).ServeStdio()
}
