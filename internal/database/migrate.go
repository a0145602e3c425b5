package database

import (
	"fmt"

	"gorm.io/gorm"

	"culturehub/internal/domain"
)

// Migrate creates or updates the registry tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.Facility{},
		&domain.Asset{},
		&domain.Booking{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
