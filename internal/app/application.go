package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"forecast.app/internal/adapters/api"
	"forecast.app/internal/adapters/infrastructure"
	"forecast.app/internal/config"
	"forecast.app/internal/core/favorites"
	"forecast.app/internal/core/location"
	"forecast.app/internal/core/weather"
	"forecast.app/internal/ports"
	"forecast.app/scheduler"
)

type Application struct {
	config *config.Config
	deps   *DependencyContainer
	ports  *ports.ApplicationPorts
	logger ports.Logger

	// Use cases
	resolver     *location.Resolver
	weather      *weather.Client
	orchestrator *favorites.Orchestrator
	favorites    *favorites.Service

	// Adapters
	httpAdapter *api.HTTPServerAdapter
	httpServer  *http.Server
	scheduler   *scheduler.Scheduler
}

// Options controls how the application is assembled
type Options struct {
	Offline bool
}

func NewApplication(cfg *config.Config, opts Options) (*Application, error) {
	deps, err := NewDependencyContainer(cfg, DependencyOptions{Offline: opts.Offline})
	if err != nil {
		return nil, fmt.Errorf("create dependency container: %w", err)
	}

	app := &Application{
		config: cfg,
		deps:   deps,
		ports:  deps.ApplicationPorts(),
		logger: deps.ApplicationPorts().Logger,
	}

	if err := app.initializeUseCases(); err != nil {
		_ = deps.Cleanup()
		return nil, fmt.Errorf("initialize use cases: %w", err)
	}

	if err := app.initializeAdapters(); err != nil {
		_ = deps.Cleanup()
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return app, nil
}

func (a *Application) initializeUseCases() error {
	a.logger.Info("Initializing use cases...")

	resolver, err := location.NewResolver(location.ResolverDependencies{
		Geocoder: a.ports.Geocoder,
		Cache:    a.ports.GeocodeCache,
		Config:   a.ports.ConfigProvider,
		Logger:   a.logger,
		Metrics:  a.deps.CacheMetrics(),
	})
	if err != nil {
		return fmt.Errorf("create location resolver: %w", err)
	}
	a.resolver = resolver

	client, err := weather.NewClient(weather.ClientDependencies{
		Provider:     a.ports.WeatherProvider,
		Connectivity: a.ports.Connectivity,
		Config:       a.ports.ConfigProvider,
		Logger:       a.logger,
		Metrics:      a.deps.DataLayerMetrics(),
	})
	if err != nil {
		return fmt.Errorf("create weather client: %w", err)
	}
	a.weather = client

	orchestrator, err := favorites.NewOrchestrator(favorites.OrchestratorDependencies{
		Store:   a.ports.FavoritesRepository,
		Weather: client,
		Config:  a.ports.ConfigProvider,
		Logger:  a.logger,
		Metrics: a.deps.DataLayerMetrics(),
	})
	if err != nil {
		return fmt.Errorf("create favorites orchestrator: %w", err)
	}
	a.orchestrator = orchestrator

	service, err := favorites.NewService(favorites.ServiceDependencies{
		Store:        a.ports.FavoritesRepository,
		Resolver:     resolver,
		Weather:      client,
		Connectivity: a.ports.Connectivity,
		Orchestrator: orchestrator,
		Logger:       a.logger,
	})
	if err != nil {
		return fmt.Errorf("create favorites service: %w", err)
	}
	a.favorites = service

	a.logger.Info("Use cases initialized successfully")
	return nil
}

func (a *Application) initializeAdapters() error {
	a.logger.Info("Initializing adapters...")

	metricsCollector := infrastructure.NewMetricsCollectorAdapter(infrastructure.MetricsCollectorConfig{
		Provider:       a.ports.WeatherProvider,
		CacheMetrics:   a.deps.CacheMetrics(),
		ConfigProvider: a.ports.ConfigProvider,
	})

	systemHealthChecker := infrastructure.NewSystemHealthChecker(infrastructure.SystemHealthCheckerConfig{
		DatabaseChecker:     infrastructure.NewDatabaseHealthChecker(a.deps.Database()),
		WeatherChecker:      infrastructure.NewWeatherProviderHealthChecker(a.ports.WeatherProvider),
		GeocoderChecker:     infrastructure.NewGeocoderHealthChecker(a.deps.Geocoder()),
		ConnectivityChecker: infrastructure.NewConnectivityHealthChecker(a.ports.Connectivity),
		ConfigProvider:      a.ports.ConfigProvider,
	})

	httpAdapter, err := api.NewHTTPServerAdapter(api.ServerOptions{
		Config: api.ServerConfig{
			Port:            a.config.Server.Port,
			RateLimitPerMin: a.config.Server.RateLimitPerMin,
		},
		WeatherService:      a.weather,
		LocationService:     a.resolver,
		FavoritesService:    a.favorites,
		FavoritesRefresher:  a.orchestrator,
		MetricsCollector:    metricsCollector,
		SystemHealthChecker: systemHealthChecker,
		MetricsHandler:      promhttp.HandlerFor(a.deps.Registry(), promhttp.HandlerOpts{}),
		Logger:              a.logger,
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}
	a.httpAdapter = httpAdapter

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.config.Server.Port),
		Handler:      httpAdapter.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if interval := a.ports.ConfigProvider.GetFavoritesConfig().RefreshInterval; interval > 0 {
		s, err := scheduler.NewScheduler(scheduler.Dependencies{
			Refresher: a.orchestrator,
			Logger:    a.logger,
			Interval:  interval,
		})
		if err != nil {
			return fmt.Errorf("create scheduler: %w", err)
		}
		a.scheduler = s
	}

	a.logger.Info("Adapters initialized successfully")
	return nil
}

// Start runs the HTTP server and, when configured, the periodic favorites
// refresh. It blocks until the server stops.
func (a *Application) Start(ctx context.Context) error {
	a.logger.Info("Starting application...")

	if a.scheduler != nil {
		if err := a.scheduler.Start(ctx); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
	}

	a.logger.Info("Starting HTTP server", ports.F("port", a.config.Server.Port))
	if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}

// Shutdown stops the server and scheduler and releases resources
func (a *Application) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application...")

	if a.scheduler != nil {
		a.scheduler.Stop()
	}

	var shutdownErr error
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("Error shutting down HTTP server", ports.F("error", err))
		shutdownErr = fmt.Errorf("shutdown HTTP server: %w", err)
	}

	if err := a.Close(); err != nil && shutdownErr == nil {
		shutdownErr = err
	}

	a.logger.Info("Application shutdown complete")
	return shutdownErr
}

// Close releases the store and cache without touching the HTTP server
func (a *Application) Close() error {
	if err := a.deps.Cleanup(); err != nil {
		a.logger.Warn("Error releasing resources", ports.F("error", err))
		return err
	}
	return nil
}

// ClearCache drops every cached place lookup so the next search asks the
// geocoding service again
func (a *Application) ClearCache(ctx context.Context) error {
	if err := a.ports.CacheProvider.Clear(ctx); err != nil {
		a.logger.Warn("Failed to clear cache", ports.F("error", err))
		return err
	}
	a.logger.Info("Cache cleared", ports.F("type", a.config.Cache.Type.String()))
	return nil
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

// Handler returns the HTTP handler including middleware
func (a *Application) Handler() http.Handler {
	return a.httpAdapter.Handler()
}

func (a *Application) Weather() *weather.Client {
	return a.weather
}

func (a *Application) Locations() *location.Resolver {
	return a.resolver
}

func (a *Application) Favorites() *favorites.Service {
	return a.favorites
}

func (a *Application) Orchestrator() *favorites.Orchestrator {
	return a.orchestrator
}
