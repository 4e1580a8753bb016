package ports

import (
	"context"
	"time"
)

// GeocodeCandidate is one match returned by the geocoding service
type GeocodeCandidate struct {
	Name      string
	Latitude  float64
	Longitude float64
	Country   string
	State     string
}

// Geocoder defines the contract for the external geocoding service
type Geocoder interface {
	Forward(ctx context.Context, query string, limit int) ([]GeocodeCandidate, error)
	Reverse(ctx context.Context, lat, lon float64, limit int) ([]GeocodeCandidate, error)
}

// GeocodeCache stores resolved forward lookups keyed by normalized place name
type GeocodeCache interface {
	Get(ctx context.Context, key string) (*GeocodeCandidate, error)
	Set(ctx context.Context, key string, candidate *GeocodeCandidate, ttl time.Duration) error
}
