package migrations

import (
	"database/sql"
	"fmt"
)

// Migration represents a single database migration
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// AllMigrations contains all database migrations in order
var AllMigrations = []Migration{
	{
		Version: 1,
		Name:    "Add profile and request id indices",
		Up: `
			CREATE INDEX IF NOT EXISTS idx_history_profile ON history(profile_name);
			CREATE INDEX IF NOT EXISTS idx_history_request_id ON history(request_id);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_history_profile;
			DROP INDEX IF EXISTS idx_history_request_id;
		`,
	},
	{
		Version: 2,
		Name:    "Add composite index for profile listing",
		Up: `
			CREATE INDEX IF NOT EXISTS idx_history_profile_timestamp ON history(profile_name, timestamp DESC);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_history_profile_timestamp;
		`,
	},
}

// InitSchema creates all tables. It must run before migrations.
func InitSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		request_id TEXT NOT NULL,
		profile_name TEXT NOT NULL DEFAULT '',
		method TEXT NOT NULL,
		url TEXT NOT NULL,
		headers TEXT NOT NULL,
		body TEXT,
		response_status INTEGER NOT NULL,
		response_status_text TEXT NOT NULL,
		response_headers TEXT NOT NULL,
		response_body TEXT NOT NULL,
		duration_ms INTEGER NOT NULL,
		error TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_history_timestamp ON history(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_history_method ON history(method);
	CREATE INDEX IF NOT EXISTS idx_history_url ON history(url);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

// Run executes all pending migrations on the database
func Run(db *sql.DB) error {
	if err := InitSchema(db); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	currentVersion, err := GetCurrentVersion(db)
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	for _, migration := range AllMigrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", migration.Version, err)
		}
		if _, err := tx.Exec(migration.Up); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to apply migration %d (%s): %w", migration.Version, migration.Name, err)
		}
		if _, err := tx.Exec(
			"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
			migration.Version,
			migration.Name,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// GetCurrentVersion returns the current database schema version
func GetCurrentVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow(`
		SELECT COALESCE(MAX(version), 0)
		FROM schema_migrations
	`).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return 0, err
	}
	return version, nil
}
