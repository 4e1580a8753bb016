package ports

import (
	"time"
)

// WeatherConfig represents weather service configuration
type WeatherConfig struct {
	FetchTimeout time.Duration
}

// GeocodingConfig represents geocoding configuration
type GeocodingConfig struct {
	ResultLimit int
	CacheTTL    time.Duration
	// Timeout bounds one shared remote lookup
	Timeout time.Duration
}

// FavoritesConfig represents favorites refresh configuration
type FavoritesConfig struct {
	MaxConcurrentFetches int
	RefreshInterval      time.Duration
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port int
}

// ConfigProvider defines the contract for configuration management
type ConfigProvider interface {
	GetWeatherConfig() WeatherConfig
	GetGeocodingConfig() GeocodingConfig
	GetFavoritesConfig() FavoritesConfig
	GetServerConfig() ServerConfig
}

// Logger defines the contract for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a log field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}
