// Package app wires the dashboard from configuration for both hosts.
package app

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/fakhrymubarak/weather-dashboard/internal/config"
	"github.com/fakhrymubarak/weather-dashboard/internal/directory"
	"github.com/fakhrymubarak/weather-dashboard/internal/geolocation"
	"github.com/fakhrymubarak/weather-dashboard/internal/repository"
	"github.com/fakhrymubarak/weather-dashboard/internal/scheduler"
	"github.com/fakhrymubarak/weather-dashboard/internal/service"
	"github.com/fakhrymubarak/weather-dashboard/internal/storage"
)

// App is a running dashboard and the resources it holds.
type App struct {
	Dashboard *service.Dashboard
	Scheduler *scheduler.Scheduler
	Logger    *zap.SugaredLogger
	store     storage.KV
}

// Options overrides parts of the wiring, mostly for tests.
type Options struct {
	Store      storage.KV
	HTTPClient *http.Client
	Locator    geolocation.Locator
	Logger     *zap.SugaredLogger
}

// New opens storage, builds the dashboard, bootstraps it and starts auto refresh.
func New(ctx context.Context, opts ...Options) (*App, error) {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Logger == nil {
		o.Logger = config.GetLogger()
	}

	store := o.Store
	if store == nil {
		var err error
		store, err = storage.Open(ctx)
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
	}

	locator := o.Locator
	if locator == nil {
		var err error
		locator, err = geolocation.FromConfig(o.HTTPClient)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
	}

	dashboard := service.NewDashboard(service.Options{
		Cities:    repository.NewCityRepository(store, o.Logger),
		Weather:   repository.NewWeatherRepository(o.HTTPClient),
		Locator:   locator,
		Directory: directory.Default(),
		Logger:    o.Logger,
	})
	dashboard.Bootstrap(ctx)

	sched := scheduler.New(dashboard, config.GetRefreshInterval(), o.Logger)
	if err := sched.Start(); err != nil {
		dashboard.Close()
		_ = store.Close()
		return nil, fmt.Errorf("start scheduler: %w", err)
	}

	return &App{
		Dashboard: dashboard,
		Scheduler: sched,
		Logger:    o.Logger,
		store:     store,
	}, nil
}

// Close stops background work and releases storage.
func (a *App) Close() error {
	a.Scheduler.Stop()
	a.Dashboard.Close()
	return a.store.Close()
}
