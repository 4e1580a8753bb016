package infrastructure

import (
	"time"

	"forecast.app/internal/config"
	"forecast.app/internal/ports"
)

// ConfigProviderAdapter implements the ConfigProvider port
type ConfigProviderAdapter struct {
	config *config.Config
}

// NewConfigProviderAdapter creates a new config provider adapter
func NewConfigProviderAdapter(cfg *config.Config) *ConfigProviderAdapter {
	return &ConfigProviderAdapter{
		config: cfg,
	}
}

// GetWeatherConfig returns weather fetch settings
func (c *ConfigProviderAdapter) GetWeatherConfig() ports.WeatherConfig {
	return ports.WeatherConfig{
		FetchTimeout: time.Duration(c.config.Weather.FetchTimeoutSeconds) * time.Second,
	}
}

// GetGeocodingConfig returns geocoding settings
func (c *ConfigProviderAdapter) GetGeocodingConfig() ports.GeocodingConfig {
	return ports.GeocodingConfig{
		ResultLimit: c.config.Geocoding.ResultLimit,
		CacheTTL:    time.Duration(c.config.Geocoding.CacheTTLMinutes) * time.Minute,
		Timeout:     time.Duration(c.config.Weather.FetchTimeoutSeconds) * time.Second,
	}
}

// GetFavoritesConfig returns favorites refresh settings
func (c *ConfigProviderAdapter) GetFavoritesConfig() ports.FavoritesConfig {
	return ports.FavoritesConfig{
		MaxConcurrentFetches: c.config.Favorites.MaxConcurrentFetches,
		RefreshInterval:      time.Duration(c.config.Favorites.RefreshIntervalMinutes) * time.Minute,
	}
}

// GetServerConfig returns server configuration
func (c *ConfigProviderAdapter) GetServerConfig() ports.ServerConfig {
	return ports.ServerConfig{
		Port: c.config.Server.Port,
	}
}
