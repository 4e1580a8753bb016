package ports

import (
	"context"
	"time"
)

// WeatherData represents the current conditions returned by a weather provider
type WeatherData struct {
	Temperature   float64
	FeelsLike     float64
	Humidity      float64
	WindSpeed     float64
	ConditionCode string
	Description   string
	IconID        string
	PlaceName     string
	Timestamp     time.Time
}

// WeatherProvider defines the contract for the remote weather service.
// Implementations issue exactly one request per call and never retry.
type WeatherProvider interface {
	GetCurrentWeather(ctx context.Context, lat, lon float64) (*WeatherData, error)
	GetProviderName() string
}
