package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the local database schema.
// The app only persists browser sessions; all sports data lives in the
// remote backend.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS session (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		token TEXT NOT NULL,
		locale TEXT NOT NULL DEFAULT 'en',
		created_at TEXT NOT NULL,
		expires_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_session_expires_at ON session(expires_at);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
