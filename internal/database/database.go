package database

import (
	"fmt"
	"os"

	"task-approval-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens the SQLite database at path (created if it doesn't exist)
// and runs migrations. Using glebarez/sqlite which is a pure Go
// implementation (no CGO required).
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates the schema if it doesn't exist.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Credential{},
		&models.TeamMember{},
		&models.Project{},
		&models.Task{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

// DefaultPath returns the database file path, overridable via DB_PATH.
func DefaultPath() string {
	if v := os.Getenv("DB_PATH"); v != "" {
		return v
	}
	return "task-approval.db"
}
