package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/mindquest/internal/config"
	"github.com/gokatarajesh/mindquest/internal/game"
	"github.com/gokatarajesh/mindquest/internal/logging"
	"github.com/gokatarajesh/mindquest/internal/metrics"
	"github.com/gokatarajesh/mindquest/internal/question"
	"github.com/gokatarajesh/mindquest/internal/server"
	ws "github.com/gokatarajesh/mindquest/pkg/http/ws"
)

// Application aggregates shared infrastructure (hub, metrics, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	hub  *ws.Hub
	http *http.Server
}

// New bootstraps the logger, metrics, quiz gateway and HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)
	logger.Info().Msg("starting application bootstrap")

	// Sessions load their own copy; this only surfaces bad data early.
	if set, err := question.Load(); err != nil {
		logger.Error().Err(err).Msg("builtin question set failed to load; sessions will report it")
	} else {
		logger.Info().Int("questions", set.Len()).Msg("question set loaded")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	gameMetrics := metrics.New(reg)

	hub := ws.NewHub(logger)
	quizHandler := game.NewHandler(
		cfg.Quiz.Engine(),
		question.Load,
		hub,
		server.NewUpgrader(cfg.CORS.AllowedOrigins),
		gameMetrics,
		logger,
	)

	apiServer := server.NewHTTPServer(cfg, logger, reg, quizHandler)

	return &Application{
		cfg:    cfg,
		logger: logger,
		hub:    hub,
		http:   apiServer,
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	// Hijacked WebSocket connections are not tracked by Shutdown.
	a.hub.CloseAll()

	a.logger.Info().Msg("shutdown complete")
	return nil
}
