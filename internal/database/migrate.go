package database

import (
	"gorm.io/gorm"

	"github.com/dealdish/backend/internal/models"
)

// Migrate brings the schema up to date via GORM auto-migration.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.UserPreferences{},
		&models.Recipe{},
	)
}
