package infrastructure

import (
	"context"

	"forecast.app/internal/ports"
)

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// WeatherProviderHealthChecker reports which weather provider is wired.
// It never calls the remote service.
type WeatherProviderHealthChecker struct {
	provider ports.WeatherProvider
}

func NewWeatherProviderHealthChecker(provider ports.WeatherProvider) *WeatherProviderHealthChecker {
	return &WeatherProviderHealthChecker{provider: provider}
}

func (w *WeatherProviderHealthChecker) Check(context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "weatherProvider",
		Status:    StatusHealthy,
		Details:   map[string]interface{}{},
	}

	if w.provider == nil {
		status.Status = StatusUnhealthy
		status.Error = "weather provider is not available"
		return status
	}

	status.Details["provider"] = w.provider.GetProviderName()
	return status
}

// ConnectivityHealthChecker exposes the connectivity gate. Being offline
// degrades the service rather than breaking it: cached favorites still load.
type ConnectivityHealthChecker struct {
	gate ports.ConnectivityChecker
}

func NewConnectivityHealthChecker(gate ports.ConnectivityChecker) *ConnectivityHealthChecker {
	return &ConnectivityHealthChecker{gate: gate}
}

func (c *ConnectivityHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "connectivity",
		Status:    StatusHealthy,
		Details:   map[string]interface{}{"online": true},
	}

	if c.gate == nil || !c.gate.IsReachable(ctx) {
		status.Status = StatusDegraded
		status.Details["online"] = false
	}
	return status
}

// BreakerReporter is implemented by adapters guarded by a circuit breaker
type BreakerReporter interface {
	BreakerState() string
}

// GeocoderHealthChecker reports the geocoding circuit breaker state
type GeocoderHealthChecker struct {
	geocoder BreakerReporter
}

func NewGeocoderHealthChecker(geocoder BreakerReporter) *GeocoderHealthChecker {
	return &GeocoderHealthChecker{geocoder: geocoder}
}

func (g *GeocoderHealthChecker) Check(context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "geocoding",
		Status:    StatusHealthy,
		Details:   map[string]interface{}{},
	}

	if g.geocoder == nil {
		status.Status = StatusUnhealthy
		status.Error = "geocoder is not available"
		return status
	}

	state := g.geocoder.BreakerState()
	status.Details["breaker"] = state
	if state != "closed" {
		status.Status = StatusDegraded
	}
	return status
}
