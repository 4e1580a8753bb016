package infrastructure

import (
	"context"

	"forecast.app/internal/ports"
)

// MetricsCollectorAdapter aggregates the JSON metrics snapshot served next
// to the Prometheus endpoint
type MetricsCollectorAdapter struct {
	provider     ports.WeatherProvider
	cacheMetrics ports.CacheMetrics
	config       ports.ConfigProvider
}

// MetricsCollectorConfig holds configuration for creating the metrics collector
type MetricsCollectorConfig struct {
	Provider       ports.WeatherProvider
	CacheMetrics   ports.CacheMetrics
	ConfigProvider ports.ConfigProvider
}

func NewMetricsCollectorAdapter(config MetricsCollectorConfig) *MetricsCollectorAdapter {
	return &MetricsCollectorAdapter{
		provider:     config.Provider,
		cacheMetrics: config.CacheMetrics,
		config:       config.ConfigProvider,
	}
}

// GetMetrics returns provider info and geocode cache statistics
func (m *MetricsCollectorAdapter) GetMetrics(context.Context) (map[string]interface{}, error) {
	out := map[string]interface{}{}

	if m.provider != nil {
		weather := map[string]interface{}{"provider": m.provider.GetProviderName()}
		if m.config != nil {
			weather["fetch_timeout"] = m.config.GetWeatherConfig().FetchTimeout.String()
		}
		out["weather"] = weather
	}

	if m.cacheMetrics != nil {
		stats := m.cacheMetrics.GetStats()
		out["geocode_cache"] = map[string]interface{}{
			"hits":      stats.Hits,
			"misses":    stats.Misses,
			"total_ops": stats.TotalOps,
			"hit_ratio": stats.HitRatio,
			"updated":   stats.LastUpdated,
		}
	}

	return out, nil
}
