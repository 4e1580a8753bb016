package ports

import (
	"context"
	"time"
)

// SnapshotData represents a cached weather snapshot for persistence
type SnapshotData struct {
	Temperature   float64
	FeelsLike     float64
	Humidity      float64
	WindSpeed     float64
	ConditionCode string
	Description   string
	IconID        string
	PlaceName     string
	FetchedAt     time.Time
}

// FavoriteData represents a favorite location row for persistence
type FavoriteData struct {
	ID          uint
	DisplayName string
	Latitude    float64
	Longitude   float64
	Snapshot    *SnapshotData
	CreatedAt   time.Time
}

// FavoritesRepository defines the contract for favorite location persistence.
// Writes are serialized by the underlying storage engine.
type FavoritesRepository interface {
	List(ctx context.Context) ([]*FavoriteData, error)
	FindByID(ctx context.Context, id uint) (*FavoriteData, error)
	Insert(ctx context.Context, fav *FavoriteData) error
	UpdateSnapshot(ctx context.Context, id uint, snapshot *SnapshotData) error
	Delete(ctx context.Context, id uint) error
}
