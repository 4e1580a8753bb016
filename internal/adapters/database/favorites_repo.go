package database

import (
	"context"
	stderrors "errors"
	"time"

	"gorm.io/gorm"

	"forecast.app/internal/ports"
	"forecast.app/pkg/errors"
)

// FavoriteModel represents the database model for favorite locations.
// Snapshot columns are NULL until the first successful refresh.
type FavoriteModel struct {
	ID                  uint    `gorm:"primaryKey;autoIncrement"`
	DisplayName         string  `gorm:"not null"`
	Latitude            float64 `gorm:"not null"`
	Longitude           float64 `gorm:"not null"`
	SnapshotTemperature *float64
	SnapshotFeelsLike   *float64
	SnapshotHumidity    *float64
	SnapshotWindSpeed   *float64
	SnapshotCondition   *string
	SnapshotDescription *string
	SnapshotIconID      *string
	SnapshotPlaceName   *string
	SnapshotFetchedAt   *time.Time
	CreatedAt           time.Time
}

func (FavoriteModel) TableName() string {
	return "favorites"
}

// FavoritesRepositoryAdapter implements the FavoritesRepository port using GORM
type FavoritesRepositoryAdapter struct {
	db *gorm.DB
}

// NewFavoritesRepositoryAdapter creates a new favorites repository adapter
func NewFavoritesRepositoryAdapter(db *gorm.DB) ports.FavoritesRepository {
	return &FavoritesRepositoryAdapter{db: db}
}

// List returns every favorite, most recently inserted first
func (r *FavoritesRepositoryAdapter) List(ctx context.Context) ([]*ports.FavoriteData, error) {
	var models []FavoriteModel
	result := r.db.WithContext(ctx).Order("id DESC").Find(&models)
	if result.Error != nil {
		return nil, errors.NewDatabaseError("failed to list favorites", result.Error)
	}

	favorites := make([]*ports.FavoriteData, len(models))
	for i := range models {
		favorites[i] = r.modelToData(&models[i])
	}
	return favorites, nil
}

// FindByID retrieves a favorite by its ID
func (r *FavoritesRepositoryAdapter) FindByID(ctx context.Context, id uint) (*ports.FavoriteData, error) {
	if id == 0 {
		return nil, errors.NewValidationError("favorite ID cannot be zero")
	}

	var model FavoriteModel
	result := r.db.WithContext(ctx).First(&model, id)
	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("favorite not found")
		}
		return nil, errors.NewDatabaseError("failed to find favorite by ID", result.Error)
	}

	return r.modelToData(&model), nil
}

// Insert always creates a new row and sets fav.ID and fav.CreatedAt
func (r *FavoritesRepositoryAdapter) Insert(ctx context.Context, fav *ports.FavoriteData) error {
	if fav == nil {
		return errors.NewValidationError("favorite cannot be nil")
	}

	model := r.dataToModel(fav)
	model.ID = 0
	if result := r.db.WithContext(ctx).Create(model); result.Error != nil {
		return errors.NewDatabaseError("failed to insert favorite", result.Error)
	}

	fav.ID = model.ID
	fav.CreatedAt = model.CreatedAt
	return nil
}

// UpdateSnapshot replaces only the snapshot columns of one favorite
func (r *FavoritesRepositoryAdapter) UpdateSnapshot(ctx context.Context, id uint, snapshot *ports.SnapshotData) error {
	if id == 0 {
		return errors.NewValidationError("favorite ID cannot be zero")
	}
	if snapshot == nil {
		return errors.NewValidationError("snapshot cannot be nil")
	}

	fetchedAt := snapshot.FetchedAt
	result := r.db.WithContext(ctx).
		Model(&FavoriteModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"snapshot_temperature": snapshot.Temperature,
			"snapshot_feels_like":  snapshot.FeelsLike,
			"snapshot_humidity":    snapshot.Humidity,
			"snapshot_wind_speed":  snapshot.WindSpeed,
			"snapshot_condition":   snapshot.ConditionCode,
			"snapshot_description": snapshot.Description,
			"snapshot_icon_id":     snapshot.IconID,
			"snapshot_place_name":  snapshot.PlaceName,
			"snapshot_fetched_at":  fetchedAt,
		})
	if result.Error != nil {
		return errors.NewDatabaseError("failed to update favorite snapshot", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("favorite not found")
	}

	return nil
}

// Delete permanently removes a favorite
func (r *FavoritesRepositoryAdapter) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.NewValidationError("favorite ID cannot be zero")
	}

	result := r.db.WithContext(ctx).Delete(&FavoriteModel{}, id)
	if result.Error != nil {
		return errors.NewDatabaseError("failed to delete favorite", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("favorite not found")
	}

	return nil
}

// dataToModel converts port data to database model
func (r *FavoritesRepositoryAdapter) dataToModel(data *ports.FavoriteData) *FavoriteModel {
	model := &FavoriteModel{
		ID:          data.ID,
		DisplayName: data.DisplayName,
		Latitude:    data.Latitude,
		Longitude:   data.Longitude,
		CreatedAt:   data.CreatedAt,
	}
	if s := data.Snapshot; s != nil {
		fetchedAt := s.FetchedAt
		model.SnapshotTemperature = &s.Temperature
		model.SnapshotFeelsLike = &s.FeelsLike
		model.SnapshotHumidity = &s.Humidity
		model.SnapshotWindSpeed = &s.WindSpeed
		model.SnapshotCondition = &s.ConditionCode
		model.SnapshotDescription = &s.Description
		model.SnapshotIconID = &s.IconID
		model.SnapshotPlaceName = &s.PlaceName
		model.SnapshotFetchedAt = &fetchedAt
	}
	return model
}

// modelToData converts database model to port data
func (r *FavoritesRepositoryAdapter) modelToData(model *FavoriteModel) *ports.FavoriteData {
	data := &ports.FavoriteData{
		ID:          model.ID,
		DisplayName: model.DisplayName,
		Latitude:    model.Latitude,
		Longitude:   model.Longitude,
		CreatedAt:   model.CreatedAt,
	}
	if model.SnapshotFetchedAt != nil {
		data.Snapshot = &ports.SnapshotData{
			Temperature:   deref(model.SnapshotTemperature),
			FeelsLike:     deref(model.SnapshotFeelsLike),
			Humidity:      deref(model.SnapshotHumidity),
			WindSpeed:     deref(model.SnapshotWindSpeed),
			ConditionCode: deref(model.SnapshotCondition),
			Description:   deref(model.SnapshotDescription),
			IconID:        deref(model.SnapshotIconID),
			PlaceName:     deref(model.SnapshotPlaceName),
			FetchedAt:     *model.SnapshotFetchedAt,
		}
	}
	return data
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
