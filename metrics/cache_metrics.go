package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"forecast.app/internal/ports"
)

// CacheMetrics counts geocode cache hits and misses both in Prometheus and
// in memory for the JSON metrics endpoint. It implements ports.CacheMetrics.
type CacheMetrics struct {
	cacheType string
	hits      *prometheus.CounterVec
	misses    *prometheus.CounterVec
	hitRatio  *prometheus.GaugeVec

	mu          sync.RWMutex
	hitCount    int64
	missCount   int64
	lastUpdated time.Time
}

// NewCacheMetrics registers the cache collectors on reg
func NewCacheMetrics(reg prometheus.Registerer, cacheType string) (*CacheMetrics, error) {
	m := &CacheMetrics{
		cacheType: cacheType,
		hits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forecast_geocode_cache_hits_total",
				Help: "The total number of geocode cache hits",
			},
			[]string{"cache_type"},
		),
		misses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forecast_geocode_cache_misses_total",
				Help: "The total number of geocode cache misses",
			},
			[]string{"cache_type"},
		),
		hitRatio: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "forecast_geocode_cache_hit_ratio",
				Help: "Geocode cache hit ratio (hits/lookups)",
			},
			[]string{"cache_type"},
		),
	}

	for _, c := range []prometheus.Collector{m.hits, m.misses, m.hitRatio} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *CacheMetrics) RecordHit() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hitCount++
	m.hits.WithLabelValues(m.cacheType).Inc()
	m.updateHitRatio()
}

func (m *CacheMetrics) RecordMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.missCount++
	m.misses.WithLabelValues(m.cacheType).Inc()
	m.updateHitRatio()
}

// updateHitRatio must be called while holding the mutex
func (m *CacheMetrics) updateHitRatio() {
	m.lastUpdated = time.Now()
	total := m.hitCount + m.missCount
	if total > 0 {
		m.hitRatio.WithLabelValues(m.cacheType).Set(float64(m.hitCount) / float64(total))
	}
}

func (m *CacheMetrics) GetStats() ports.CacheStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := m.hitCount + m.missCount
	stats := ports.CacheStats{
		Hits:        m.hitCount,
		Misses:      m.missCount,
		TotalOps:    total,
		LastUpdated: m.lastUpdated,
	}
	if total > 0 {
		stats.HitRatio = float64(m.hitCount) / float64(total)
	}
	return stats
}
