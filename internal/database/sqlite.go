package database

import (
	"fmt"

	sqlite "github.com/glebarez/sqlite"
	"github.com/tutorhive/backend/internal/bookings"
	"github.com/tutorhive/backend/internal/materials"
	"github.com/tutorhive/backend/internal/notes"
	"github.com/tutorhive/backend/internal/ratings"
	"github.com/tutorhive/backend/internal/sessions"
	"github.com/tutorhive/backend/internal/users"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OpenSQLite establishes a SQLite connection and performs schema migrations.
// The unique indexes created here (users.email and the booking student +
// session pair) are what make the registration and booking inserts atomic.
func OpenSQLite(path string, logger *zap.Logger) (*gorm.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&users.User{},
		&sessions.StudySession{},
		&materials.SessionMaterial{},
		&bookings.BookedSession{},
		&notes.Note{},
		&ratings.Rating{},
		&migrationRecord{},
	); err != nil {
		return nil, err
	}

	if err := applyMigrations(db, logger); err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Info("database initialized", zap.String("path", path))
	}

	return db, nil
}
