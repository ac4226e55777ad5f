// Package db provides database initialization and connection management.
package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations
var migrations embed.FS

// MigrationMode represents the database migration mode.
type MigrationMode string

const (
	// MigrationModeVersioned runs the embedded versioned migration files (default).
	MigrationModeVersioned MigrationMode = "versioned"
	// MigrationModeNone skips migrations entirely; the schema is managed externally.
	MigrationModeNone MigrationMode = "none"
)

// ParseMigrationMode parses a string to MigrationMode.
// Returns MigrationModeVersioned for unknown values.
func ParseMigrationMode(s string) MigrationMode {
	switch s {
	case "none":
		return MigrationModeNone
	default:
		return MigrationModeVersioned
	}
}

// migrateLogger implements migrate.Logger for golang-migrate.
type migrateLogger struct {
	environment string
}

// Printf logs migration messages.
func (l *migrateLogger) Printf(format string, v ...interface{}) {
	log().Info(fmt.Sprintf(format, v...))
}

// Verbose returns true if verbose logging is enabled.
func (l *migrateLogger) Verbose() bool {
	return l.environment == "development"
}

func newMigrate(db *sql.DB) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}

	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create database driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return m, nil
}

// Migrate executes database migrations from the embedded SQL files.
// The environment parameter controls logging verbosity only.
func Migrate(db *sql.DB, environment string) error {
	m, err := newMigrate(db)
	if err != nil {
		return err
	}

	m.Log = &migrateLogger{environment: environment}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log().Info("No pending migrations")
			return nil
		}
		return fmt.Errorf("migration failed: %w", err)
	}

	log().Info("Migrations completed successfully")
	return nil
}

// MigrationStatus represents the current migration status.
type MigrationStatus struct {
	Version uint // Current migration version
	Dirty   bool // Whether the database is in a dirty state
}

// GetMigrationStatus returns the current migration status.
func GetMigrationStatus(db *sql.DB) (*MigrationStatus, error) {
	m, err := newMigrate(db)
	if err != nil {
		return nil, err
	}

	version, dirty, err := m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			// No migrations have been applied yet.
			return &MigrationStatus{Version: 0, Dirty: false}, nil
		}
		return nil, fmt.Errorf("failed to get migration version: %w", err)
	}

	return &MigrationStatus{Version: version, Dirty: dirty}, nil
}

// LogMigrationStatus logs the current migration status.
func LogMigrationStatus(db *sql.DB) {
	status, err := GetMigrationStatus(db)
	if err != nil {
		log().Warn("Failed to get migration status", zap.Error(err))
		return
	}

	log().Info("Database migration status",
		zap.Uint("current_version", status.Version),
		zap.Bool("dirty", status.Dirty),
	)
}
