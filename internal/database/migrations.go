package database

import (
	"errors"
	"time"

	"github.com/tutorhive/backend/internal/sessions"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const migrationBackfillSessionStatus = "2026-08-12_backfill_session_status"

type migrationRecord struct {
	Name             string `gorm:"column:name;primaryKey;size:190;not null"`
	AppliedAtSeconds int64  `gorm:"column:applied_at_s;not null"`
}

func (migrationRecord) TableName() string {
	return "db_migrations"
}

type migrationDefinition struct {
	name  string
	apply func(*gorm.DB) error
}

func applyMigrations(db *gorm.DB, logger *zap.Logger) error {
	migrations := []migrationDefinition{
		{name: migrationBackfillSessionStatus, apply: backfillSessionStatus},
	}

	for _, migration := range migrations {
		var record migrationRecord
		err := db.Where("name = ?", migration.name).Take(&record).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := migration.apply(db); err != nil {
			return err
		}
		appliedAt := time.Now().UTC().Unix()
		if err := db.Create(&migrationRecord{Name: migration.name, AppliedAtSeconds: appliedAt}).Error; err != nil {
			return err
		}
		if logger != nil {
			logger.Info("database migration applied", zap.String("migration", migration.name))
		}
	}
	return nil
}

// Sessions imported before the status column gained a default carry a blank
// status, which would sort alongside rejected leftovers. Pin them to pending.
func backfillSessionStatus(db *gorm.DB) error {
	return db.Model(&sessions.StudySession{}).
		Where("status = ''").
		Update("status", sessions.StatusPending).Error
}
