package migrations

import (
	"fmt"
	"time"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/actionitem"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/dailywork"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/objective"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/settings"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/user"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/infrastructure/persistence/postgres/connection"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrationRecord tracks the migration history
type MigrationRecord struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"not null;unique"`
	Version   int       `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for migration records
func (MigrationRecord) TableName() string {
	return "schema_migrations"
}

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *connection.Database, logger *zap.Logger) error {
	logger.Info("Starting automatic database migration...")

	// Enable UUID extension for PostgreSQL
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		logger.Error("Failed to create UUID extension", zap.Error(err))
		return fmt.Errorf("failed to create UUID extension: %v", err)
	}

	if err := db.AutoMigrate(&MigrationRecord{}); err != nil {
		logger.Error("Failed to create migrations table", zap.Error(err))
		return fmt.Errorf("failed to create migrations table: %v", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var lastVersion int
		if err := tx.Model(&MigrationRecord{}).Select("COALESCE(MAX(version), 0)").Scan(&lastVersion).Error; err != nil {
			return fmt.Errorf("failed to get last version: %v", err)
		}

		// Models in dependency order: parents before children
		models := []struct {
			name  string
			model interface{}
		}{
			{"profiles", &user.Profile{}},
			{"system_settings", &settings.Setting{}},
			{"component_permissions", &settings.ComponentPermission{}},
			{"objectives", &objective.Objective{}},
			{"objective_updates", &objective.ObjectiveUpdate{}},
			{"daily_work", &dailywork.Entry{}},
			{"action_items", &actionitem.ActionItem{}},
			{"action_item_closures", &actionitem.Closure{}},
			{"action_item_verifications", &actionitem.Verification{}},
		}

		for i, m := range models {
			version := i + 1
			if version <= lastVersion {
				continue
			}

			logger.Info("Migrating model",
				zap.String("table", m.name),
				zap.Int("version", version),
			)

			if err := tx.AutoMigrate(m.model); err != nil {
				logger.Error("Migration failed",
					zap.String("table", m.name),
					zap.Error(err),
				)
				return fmt.Errorf("failed to migrate %s: %v", m.name, err)
			}

			record := MigrationRecord{
				Name:      m.name,
				Version:   version,
				AppliedAt: time.Now().UTC(),
			}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("failed to record migration %s: %v", m.name, err)
			}
		}

		logger.Info("Database migration completed")
		return nil
	})
}
