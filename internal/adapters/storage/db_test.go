package storage

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// openTestDB creates an in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestInitDB_Fresh verifies the schema applies cleanly to an empty database.
func TestInitDB_Fresh(t *testing.T) {
	db := openTestDB(t)

	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB failed on fresh db: %v", err)
	}

	var name string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='session'").Scan(&name)
	if err != nil {
		t.Fatalf("session table missing: %v", err)
	}
}

// TestInitDB_Idempotent verifies that running InitDB twice produces no errors
// and existing data survives.
func TestInitDB_Idempotent(t *testing.T) {
	db := openTestDB(t)

	if err := InitDB(db); err != nil {
		t.Fatalf("first InitDB failed: %v", err)
	}

	_, err := db.Exec(`INSERT INTO session (id, username, token, created_at, expires_at)
		VALUES ('s1', 'mira', 'tok', '2026-01-01T10:00:00Z', '2026-01-02T10:00:00Z')`)
	if err != nil {
		t.Fatalf("failed to insert test session: %v", err)
	}

	if err := InitDB(db); err != nil {
		t.Fatalf("second InitDB failed: %v", err)
	}

	var username string
	if err := db.QueryRow("SELECT username FROM session WHERE id = 's1'").Scan(&username); err != nil {
		t.Fatalf("session data lost after re-init: %v", err)
	}
	if username != "mira" {
		t.Errorf("username = %q, want %q", username, "mira")
	}
}
