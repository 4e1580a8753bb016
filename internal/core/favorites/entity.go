// Package favorites manages the persisted list of favorite locations and the
// per-favorite weather refreshes.
package favorites

import (
	"context"
	"strings"
	"time"

	"forecast.app/internal/core/location"
	"forecast.app/internal/core/result"
	"forecast.app/internal/core/weather"
	"forecast.app/internal/ports"
)

// Favorite is a saved place with the last snapshot fetched for it.
// ID is assigned by the store and grows with insertion order.
type Favorite struct {
	ID          uint                `json:"id"`
	DisplayName string              `json:"display_name"`
	Coordinate  location.Coordinate `json:"coordinate"`
	Snapshot    *weather.Snapshot   `json:"snapshot,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

// Entry pairs a favorite with the outcome of its latest refresh
type Entry struct {
	Favorite Favorite                          `json:"favorite"`
	Weather  result.Envelope[weather.Snapshot] `json:"weather"`
}

// WeatherFetcher fetches current conditions for a coordinate
type WeatherFetcher interface {
	FetchCurrent(ctx context.Context, coord location.Coordinate) result.Envelope[weather.Snapshot]
}

// ForwardResolver resolves a place name to a coordinate
type ForwardResolver interface {
	ResolveForward(ctx context.Context, placeName string) (location.Coordinate, bool)
}

func cleanName(name string) string {
	return strings.TrimSpace(name)
}

func fromData(d *ports.FavoriteData) Favorite {
	fav := Favorite{
		ID:          d.ID,
		DisplayName: d.DisplayName,
		Coordinate:  location.Coordinate{Latitude: d.Latitude, Longitude: d.Longitude},
		CreatedAt:   d.CreatedAt,
	}
	if d.Snapshot != nil {
		s := weather.Snapshot{
			Temperature:   d.Snapshot.Temperature,
			FeelsLike:     d.Snapshot.FeelsLike,
			Humidity:      d.Snapshot.Humidity,
			WindSpeed:     d.Snapshot.WindSpeed,
			ConditionCode: d.Snapshot.ConditionCode,
			Description:   d.Snapshot.Description,
			IconID:        d.Snapshot.IconID,
			PlaceName:     d.Snapshot.PlaceName,
			FetchedAt:     d.Snapshot.FetchedAt,
		}
		fav.Snapshot = &s
	}
	return fav
}

func toData(f Favorite) *ports.FavoriteData {
	d := &ports.FavoriteData{
		ID:          f.ID,
		DisplayName: f.DisplayName,
		Latitude:    f.Coordinate.Latitude,
		Longitude:   f.Coordinate.Longitude,
		CreatedAt:   f.CreatedAt,
	}
	if f.Snapshot != nil {
		d.Snapshot = snapshotData(*f.Snapshot)
	}
	return d
}

func snapshotData(s weather.Snapshot) *ports.SnapshotData {
	return &ports.SnapshotData{
		Temperature:   s.Temperature,
		FeelsLike:     s.FeelsLike,
		Humidity:      s.Humidity,
		WindSpeed:     s.WindSpeed,
		ConditionCode: s.ConditionCode,
		Description:   s.Description,
		IconID:        s.IconID,
		PlaceName:     s.PlaceName,
		FetchedAt:     s.FetchedAt,
	}
}
