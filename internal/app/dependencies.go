package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"

	"forecast.app/internal/adapters/database"
	"forecast.app/internal/adapters/external"
	"forecast.app/internal/adapters/infrastructure"
	"forecast.app/internal/config"
	"forecast.app/internal/ports"
	"forecast.app/metrics"
	"forecast.app/pkg/logger"
)

// DependencyOptions adjusts how adapters are built
type DependencyOptions struct {
	// Offline replaces the dial probe with a gate that always reports no network
	Offline bool
}

type DependencyContainer struct {
	config   *config.Config
	options  DependencyOptions
	db       *gorm.DB
	cache    ports.CacheProvider
	registry *prometheus.Registry
	geocoder *external.OpenWeatherGeocoder

	cacheMetrics *metrics.CacheMetrics
	dataMetrics  *metrics.DataLayerMetrics

	ports *ports.ApplicationPorts
}

func NewDependencyContainer(cfg *config.Config, opts DependencyOptions) (*DependencyContainer, error) {
	container := &DependencyContainer{
		config:  cfg,
		options: opts,
	}

	log, err := container.initializeLogger()
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	if err := container.initializeDatabase(log); err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	if err := container.initializeMetrics(); err != nil {
		_ = container.Cleanup()
		return nil, fmt.Errorf("initialize metrics: %w", err)
	}

	if err := container.initializePorts(log); err != nil {
		_ = container.Cleanup()
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	return container, nil
}

func (c *DependencyContainer) initializeLogger() (ports.Logger, error) {
	if c.config.Log.FilePath != "" {
		fileLogger, err := infrastructure.NewFileLoggerAdapter(c.config.Log.FilePath, c.config.Log.Level)
		if err != nil {
			return nil, err
		}
		return fileLogger, nil
	}

	base := logger.NewWithOptions(os.Stderr, logger.ParseLevel(c.config.Log.Level), c.config.Log.Format)
	return infrastructure.NewSlogLoggerAdapter(base), nil
}

func (c *DependencyContainer) initializeDatabase(log ports.Logger) error {
	log.Info("Initializing database connection...", ports.F("driver", string(c.config.Database.Driver)))

	db, err := database.Open(database.Options{
		Driver: string(c.config.Database.Driver),
		DSN:    c.config.Database.GetDSN(),
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wiped, err := database.EnsureSchema(ctx, db, database.SchemaVersion)
	if err != nil {
		_ = database.Close(db)
		return err
	}
	if wiped {
		log.Warn("Favorites store schema changed; existing favorites were discarded",
			ports.F("version", database.SchemaVersion))
	}

	c.db = db
	log.Info("Database connection established successfully")
	return nil
}

func (c *DependencyContainer) initializeMetrics() error {
	c.registry = prometheus.NewRegistry()
	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	cacheMetrics, err := metrics.NewCacheMetrics(c.registry, c.config.Cache.Type.String())
	if err != nil {
		return err
	}
	dataMetrics, err := metrics.NewDataLayerMetrics(c.registry)
	if err != nil {
		return err
	}

	c.cacheMetrics = cacheMetrics
	c.dataMetrics = dataMetrics
	return nil
}

func (c *DependencyContainer) initializePorts(log ports.Logger) error {
	log.Info("Initializing ports...")

	provider, err := external.NewOpenWeatherMapProviderAdapter(external.OpenWeatherMapProviderParams{
		APIKey:  c.config.Weather.APIKey,
		BaseURL: c.config.Weather.BaseURL,
		Units:   c.config.Weather.Units,
		Exclude: c.config.Weather.Exclude,
		Logger:  log,
	})
	if err != nil {
		return fmt.Errorf("create weather provider: %w", err)
	}

	var weatherProvider ports.WeatherProvider = provider
	if c.config.Weather.EnableLogging {
		weatherProvider = external.NewWeatherProviderLoggingDecorator(provider, log)
	}

	geocoder, err := external.NewOpenWeatherGeocoder(external.OpenWeatherGeocoderParams{
		APIKey:  c.config.Weather.APIKey,
		BaseURL: c.config.Geocoding.BaseURL,
		Timeout: time.Duration(c.config.Weather.FetchTimeoutSeconds) * time.Second,
		Logger:  log,
	})
	if err != nil {
		return fmt.Errorf("create geocoder: %w", err)
	}
	c.geocoder = geocoder

	cacheProvider, err := external.CreateCacheProvider(&c.config.Cache)
	if err != nil {
		return fmt.Errorf("create cache provider: %w", err)
	}
	c.cache = cacheProvider
	log.Info("Cache provider initialized", ports.F("type", c.config.Cache.Type.String()))

	var connectivity ports.ConnectivityChecker
	if c.options.Offline {
		connectivity = infrastructure.NewStaticConnectivityGate(false)
		log.Info("Offline mode enabled; remote calls are disabled")
	} else {
		connectivity = infrastructure.NewDialConnectivityGate(
			c.config.Connectivity.ProbeAddr,
			time.Duration(c.config.Connectivity.ProbeTimeoutMS)*time.Millisecond,
			log)
	}

	c.ports = &ports.ApplicationPorts{
		WeatherProvider:     weatherProvider,
		Geocoder:            geocoder,
		GeocodeCache:        external.NewGeocodeCacheAdapter(cacheProvider),
		Connectivity:        connectivity,
		FavoritesRepository: database.NewFavoritesRepositoryAdapter(c.db),
		CacheProvider:       cacheProvider,
		ConfigProvider:      infrastructure.NewConfigProviderAdapter(c.config),
		Logger:              log,
		Database:            c.db,
	}

	log.Info("Ports initialized successfully")
	return nil
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

func (c *DependencyContainer) Database() *gorm.DB {
	return c.db
}

// Registry is the prometheus registry every collector of this container is registered on
func (c *DependencyContainer) Registry() *prometheus.Registry {
	return c.registry
}

func (c *DependencyContainer) Geocoder() *external.OpenWeatherGeocoder {
	return c.geocoder
}

func (c *DependencyContainer) CacheMetrics() *metrics.CacheMetrics {
	return c.cacheMetrics
}

func (c *DependencyContainer) DataLayerMetrics() *metrics.DataLayerMetrics {
	return c.dataMetrics
}

// Cleanup releases the database and cache connections
func (c *DependencyContainer) Cleanup() error {
	var firstErr error
	if closer, ok := c.cache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			firstErr = err
		}
	}
	if err := database.Close(c.db); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
