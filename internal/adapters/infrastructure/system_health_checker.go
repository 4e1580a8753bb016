package infrastructure

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"forecast.app/internal/ports"
)

// SystemHealthChecker runs every component check concurrently
type SystemHealthChecker struct {
	checkers       map[string]ports.HealthChecker
	configProvider ports.ConfigProvider
}

// SystemHealthCheckerConfig holds the configuration for creating a system health checker
type SystemHealthCheckerConfig struct {
	DatabaseChecker     ports.HealthChecker
	WeatherChecker      ports.HealthChecker
	GeocoderChecker     ports.HealthChecker
	ConnectivityChecker ports.HealthChecker
	ConfigProvider      ports.ConfigProvider
}

func NewSystemHealthChecker(config SystemHealthCheckerConfig) *SystemHealthChecker {
	checkers := make(map[string]ports.HealthChecker)
	for name, checker := range map[string]ports.HealthChecker{
		"database":        config.DatabaseChecker,
		"weatherProvider": config.WeatherChecker,
		"geocoding":       config.GeocoderChecker,
		"connectivity":    config.ConnectivityChecker,
	} {
		if checker != nil {
			checkers[name] = checker
		}
	}

	return &SystemHealthChecker{
		checkers:       checkers,
		configProvider: config.ConfigProvider,
	}
}

// CheckAll performs health checks on all components
func (s *SystemHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	results := make(map[string]ports.HealthStatus, len(s.checkers)+1)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for name, checker := range s.checkers {
		name, checker := name, checker
		g.Go(func() error {
			status := checker.Check(gctx)
			mu.Lock()
			results[name] = status
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if s.configProvider != nil {
		fav := s.configProvider.GetFavoritesConfig()
		results["config"] = ports.HealthStatus{
			Component: "config",
			Status:    StatusHealthy,
			Details: map[string]interface{}{
				"fetchTimeout":         s.configProvider.GetWeatherConfig().FetchTimeout.String(),
				"maxConcurrentFetches": fav.MaxConcurrentFetches,
				"refreshInterval":      fav.RefreshInterval.String(),
			},
		}
	}

	return results
}

// Overall folds component statuses: any unhealthy wins, then degraded
func Overall(results map[string]ports.HealthStatus) string {
	overall := StatusHealthy
	for _, r := range results {
		switch r.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			overall = StatusDegraded
		}
	}
	return overall
}
