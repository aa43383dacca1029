package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/dopebook-backend/internal/domain"
)

// AutoMigrateAll creates or widens every table. It never drops columns.
func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(domain.AllModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
