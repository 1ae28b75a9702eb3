package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/fakhrymubarak/weather-dashboard/internal/app"
	"github.com/fakhrymubarak/weather-dashboard/internal/config"
	"github.com/fakhrymubarak/weather-dashboard/internal/handler"
	"github.com/fakhrymubarak/weather-dashboard/internal/middleware"
	"github.com/fakhrymubarak/weather-dashboard/internal/service"
)

// newServer releases event streams on shutdown so Shutdown does not wait on them.
func newServer(d *service.Dashboard, logger *zap.SugaredLogger) *http.Server {
	mux := http.NewServeMux()
	handler.NewDashboardHandler(d, logger).Register(mux)

	srv := &http.Server{
		Addr:              ":" + config.GetServerPort(),
		Handler:           middleware.Chain(mux, middleware.RequestID, middleware.Logging(logger)),
		ReadHeaderTimeout: config.GetServerTimeoutDuration("read_header_timeout", 15*time.Second),
		ReadTimeout:       config.GetServerTimeoutDuration("read_timeout", 15*time.Second),
		// Event streams stay open, so writes are not bounded by default.
		WriteTimeout: config.GetServerTimeoutDuration("write_timeout", 0),
		IdleTimeout:  config.GetServerTimeoutDuration("idle_timeout", 30*time.Second),
	}
	srv.RegisterOnShutdown(d.Close)
	return srv
}

func main() {
	logger := config.GetLogger()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx)
	if err != nil {
		logger.Fatalw("Failed to start dashboard", "error", err)
	}

	srv := newServer(a.Dashboard, logger)
	serverErr := make(chan error, 1)
	go func() {
		logger.Infow("Weather dashboard running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Infow("Shutting down")
	case err := <-serverErr:
		logger.Errorw("Server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetServerTimeoutDuration("shutdown_timeout", 10*time.Second))
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("Graceful shutdown failed", "error", err)
	}
	if err := a.Close(); err != nil {
		logger.Errorw("Failed to close storage", "error", err)
	}
}
