// Package db provides database initialization and connection management.
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver for database/sql
	"go.uber.org/zap"

	"github.com/mlukashov/usergraph/internal/core/logger"
)

// log returns a named logger for the db package.
func log() *zap.Logger {
	return logger.Named("core.db")
}

// InitDBOptions contains options for database initialization.
type InitDBOptions struct {
	DSN           string        // SQLite DSN connection string (e.g. "file:data.db?_fk=1")
	MigrationMode MigrationMode // Migration mode (versioned or none)
	Environment   string        // Application environment (for migration logging)
}

// InitDB opens the database connection and runs migrations.
func InitDB(opts InitDBOptions) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite3", opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed opening connection to sqlite: %w", err)
	}

	switch opts.MigrationMode {
	case MigrationModeNone:
		log().Info("Skipping migrations (mode none)")
	default:
		log().Info("Using versioned migration mode")
		if err := Migrate(sqlDB, opts.Environment); err != nil {
			if closeErr := sqlDB.Close(); closeErr != nil {
				log().Warn("Failed to close database after migration error", zap.Error(closeErr))
			}
			return nil, fmt.Errorf("failed to run versioned migrations: %w", err)
		}
		LogMigrationStatus(sqlDB)
	}

	return sqlDB, nil
}

// CloseDB closes the database connection.
func CloseDB(sqlDB *sql.DB) {
	if sqlDB != nil {
		_ = sqlDB.Close()
	}
}

// FileDSN constructs a SQLite DSN for a file-based database with common
// parameters. Shared cache is intentionally not used because it introduces
// table-level locking that busy_timeout cannot resolve; WAL mode gives each
// connection its own page cache with better concurrency.
func FileDSN(path string) string {
	return fmt.Sprintf("file:%s?_fk=1&_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path)
}

// InMemoryDSN returns the DSN for an in-memory SQLite database.
func InMemoryDSN() string {
	return "file:usergraph?mode=memory&cache=shared&_fk=1&_busy_timeout=5000"
}
