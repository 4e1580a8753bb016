package external

import (
	"context"
	"encoding/json"
	"time"

	"forecast.app/internal/ports"
	"forecast.app/pkg/errors"
)

// GeocodeCacheAdapter stores geocode candidates as JSON in a generic CacheProvider
type GeocodeCacheAdapter struct {
	cacheProvider ports.CacheProvider
}

// NewGeocodeCacheAdapter creates a geocode cache on top of cacheProvider
func NewGeocodeCacheAdapter(cacheProvider ports.CacheProvider) ports.GeocodeCache {
	return &GeocodeCacheAdapter{cacheProvider: cacheProvider}
}

type cachedCandidate struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Country   string  `json:"country,omitempty"`
	State     string  `json:"state,omitempty"`
}

func (g *GeocodeCacheAdapter) Get(ctx context.Context, key string) (*ports.GeocodeCandidate, error) {
	data, err := g.cacheProvider.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var c cachedCandidate
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, errors.NewParseError("failed to decode cached geocode result", err)
	}

	return &ports.GeocodeCandidate{
		Name:      c.Name,
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
		Country:   c.Country,
		State:     c.State,
	}, nil
}

func (g *GeocodeCacheAdapter) Set(ctx context.Context, key string, candidate *ports.GeocodeCandidate, ttl time.Duration) error {
	if candidate == nil {
		return errors.NewValidationError("geocode candidate cannot be nil")
	}

	data, err := json.Marshal(cachedCandidate{
		Name:      candidate.Name,
		Latitude:  candidate.Latitude,
		Longitude: candidate.Longitude,
		Country:   candidate.Country,
		State:     candidate.State,
	})
	if err != nil {
		return errors.NewParseError("failed to encode geocode result", err)
	}

	return g.cacheProvider.Set(ctx, key, data, ttl)
}
