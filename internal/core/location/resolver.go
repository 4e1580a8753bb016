package location

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"forecast.app/internal/ports"
	"forecast.app/pkg/errors"
	"forecast.app/pkg/validation"
)

const (
	geocodeCachePrefix   = "geocode:"
	defaultLookupTimeout = 10 * time.Second
)

// Place is a resolved forward lookup
type Place struct {
	Name       string     `json:"name"`
	Country    string     `json:"country,omitempty"`
	State      string     `json:"state,omitempty"`
	Coordinate Coordinate `json:"coordinate"`
}

// Resolver translates place names to coordinates and back. Every failure is
// reported as an absent result; raw faults are only logged.
type Resolver struct {
	geocoder ports.Geocoder
	cache    ports.GeocodeCache
	config   ports.ConfigProvider
	logger   ports.Logger
	metrics  ports.CacheMetrics
	lookups  singleflight.Group
}

type ResolverDependencies struct {
	Geocoder ports.Geocoder
	Cache    ports.GeocodeCache
	Config   ports.ConfigProvider
	Logger   ports.Logger
	Metrics  ports.CacheMetrics
}

func NewResolver(deps ResolverDependencies) (*Resolver, error) {
	if deps.Geocoder == nil {
		return nil, errors.NewValidationError("geocoder is required")
	}
	if deps.Cache == nil {
		return nil, errors.NewValidationError("geocode cache is required")
	}
	if deps.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	return &Resolver{
		geocoder: deps.Geocoder,
		cache:    deps.Cache,
		config:   deps.Config,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
	}, nil
}

// ResolveForward returns the coordinate of the best match for placeName.
// The second result is false when the name is blank, nothing matched or the
// lookup failed.
func (r *Resolver) ResolveForward(ctx context.Context, placeName string) (Coordinate, bool) {
	place, ok := r.Lookup(ctx, placeName)
	if !ok {
		return Coordinate{}, false
	}
	return place.Coordinate, true
}

// Lookup is ResolveForward that also returns the matched place details
func (r *Resolver) Lookup(ctx context.Context, placeName string) (Place, bool) {
	name, ok := validation.TrimAndValidate(placeName)
	if !ok {
		return Place{}, false
	}

	key := geocodeCachePrefix + validation.NormalizePlaceName(name)

	if cached, err := r.cache.Get(ctx, key); err == nil && cached != nil {
		if place, ok := toPlace(*cached); ok {
			r.metrics.RecordHit()
			r.logger.Debug("Geocode cache hit", ports.F("place", name))
			return place, true
		}
	}
	r.metrics.RecordMiss()

	// The shared lookup outlives any one caller; each caller stops waiting
	// on its own context below.
	ch := r.lookups.DoChan(key, func() (interface{}, error) {
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.lookupTimeout())
		defer cancel()
		return r.forwardRemote(lookupCtx, name, key)
	})

	select {
	case <-ctx.Done():
		r.logger.Debug("Forward lookup abandoned", ports.F("place", name), ports.F("error", ctx.Err()))
		return Place{}, false
	case res := <-ch:
		if res.Err != nil {
			r.logger.Warn("Forward lookup failed", ports.F("place", name), ports.F("error", res.Err))
			return Place{}, false
		}
		place, ok := res.Val.(*Place)
		if !ok || place == nil {
			r.logger.Debug("No geocoding match", ports.F("place", name))
			return Place{}, false
		}
		return *place, true
	}
}

func (r *Resolver) forwardRemote(ctx context.Context, name, key string) (*Place, error) {
	cfg := r.config.GetGeocodingConfig()

	candidates, err := r.geocoder.Forward(ctx, name, cfg.ResultLimit)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	place, ok := toPlace(candidates[0])
	if !ok {
		r.logger.Warn("Geocoder returned an invalid coordinate",
			ports.F("place", name),
			ports.F("latitude", candidates[0].Latitude),
			ports.F("longitude", candidates[0].Longitude))
		return nil, nil
	}

	if err := r.cache.Set(ctx, key, &candidates[0], cfg.CacheTTL); err != nil {
		r.logger.Warn("Failed to cache geocode result", ports.F("place", name), ports.F("error", err))
	}

	return &place, nil
}

func (r *Resolver) lookupTimeout() time.Duration {
	if t := r.config.GetGeocodingConfig().Timeout; t > 0 {
		return t
	}
	return defaultLookupTimeout
}

// ResolveReverse returns the locality name for c. It is best effort: any
// failure, including an unusable coordinate, yields ("", false).
func (r *Resolver) ResolveReverse(ctx context.Context, c Coordinate) (string, bool) {
	if err := c.Validate(); err != nil {
		return "", false
	}

	candidates, err := r.geocoder.Reverse(ctx, c.Latitude, c.Longitude, 1)
	if err != nil {
		r.logger.Debug("Reverse lookup failed", ports.F("coordinate", c.String()), ports.F("error", err))
		return "", false
	}
	if len(candidates) == 0 {
		return "", false
	}

	name := strings.TrimSpace(candidates[0].Name)
	if name == "" {
		return "", false
	}
	return name, true
}

func toPlace(c ports.GeocodeCandidate) (Place, bool) {
	coord, err := New(c.Latitude, c.Longitude)
	if err != nil {
		return Place{}, false
	}
	return Place{
		Name:       c.Name,
		Country:    c.Country,
		State:      c.State,
		Coordinate: coord,
	}, true
}
