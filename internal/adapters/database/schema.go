package database

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"forecast.app/pkg/errors"
)

// SchemaVersion is the layout of the favorites table this build expects.
// Bump it whenever FavoriteModel changes; stores at another version are wiped.
const SchemaVersion = 2

const schemaMetaID = 1

// SchemaMetaModel records the schema version the store was created with
type SchemaMetaModel struct {
	ID      uint `gorm:"primaryKey"`
	Version int  `gorm:"not null"`
}

func (SchemaMetaModel) TableName() string {
	return "schema_meta"
}

// EnsureSchema creates the favorites table on first run and drops and
// recreates it when the stored version differs from version. It reports
// whether existing data was discarded.
func EnsureSchema(ctx context.Context, db *gorm.DB, version int) (bool, error) {
	tx := db.WithContext(ctx)

	if err := tx.AutoMigrate(&SchemaMetaModel{}); err != nil {
		return false, errors.NewDatabaseError("failed to migrate schema metadata", err)
	}

	var meta SchemaMetaModel
	err := tx.First(&meta, schemaMetaID).Error
	switch {
	case err == nil && meta.Version == version:
		if err := tx.AutoMigrate(&FavoriteModel{}); err != nil {
			return false, errors.NewDatabaseError("failed to migrate favorites", err)
		}
		return false, nil
	case err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound):
		return false, errors.NewDatabaseError("failed to read schema version", err)
	}

	wiped := err == nil || tx.Migrator().HasTable(&FavoriteModel{})

	if err := tx.Migrator().DropTable(&FavoriteModel{}); err != nil {
		return false, errors.NewDatabaseError("failed to drop favorites", err)
	}
	if err := tx.AutoMigrate(&FavoriteModel{}); err != nil {
		return false, errors.NewDatabaseError("failed to create favorites", err)
	}
	if err := tx.Save(&SchemaMetaModel{ID: schemaMetaID, Version: version}).Error; err != nil {
		return false, errors.NewDatabaseError("failed to record schema version", err)
	}

	return wiped, nil
}
