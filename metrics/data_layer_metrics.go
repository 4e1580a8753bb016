// Package metrics holds the Prometheus collectors of the forecast data layer.
// Collectors are registered on an injected Registerer so tests can use a
// fresh registry each.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DataLayerMetrics implements ports.DataLayerMetrics
type DataLayerMetrics struct {
	fetches       *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	refreshes     *prometheus.CounterVec
}

func NewDataLayerMetrics(reg prometheus.Registerer) (*DataLayerMetrics, error) {
	m := &DataLayerMetrics{
		fetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forecast_weather_fetches_total",
				Help: "Weather fetches by outcome",
			},
			[]string{"outcome"},
		),
		fetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "forecast_weather_fetch_duration_seconds",
				Help:    "Weather fetch duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		refreshes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forecast_favorite_refreshes_total",
				Help: "Favorite refresh tasks by outcome",
			},
			[]string{"outcome"},
		),
	}

	for _, c := range []prometheus.Collector{m.fetches, m.fetchDuration, m.refreshes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *DataLayerMetrics) ObserveWeatherFetch(outcome string, duration time.Duration) {
	m.fetches.WithLabelValues(outcome).Inc()
	m.fetchDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func (m *DataLayerMetrics) RecordFavoriteRefresh(outcome string) {
	m.refreshes.WithLabelValues(outcome).Inc()
}
