package session

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"sportlink/internal/adapters/storage"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const sessionColumns = `id, username, token, locale, created_at, expires_at`

// GetByID retrieves a session by ID.
// PRE: id is non-empty
// POST: Returns the session or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM session WHERE id = ?`, id)

	var sess Session
	var createdAt, expiresAt string
	err := row.Scan(&sess.ID, &sess.Username, &sess.Token, &sess.Locale,
		&createdAt, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, err
	}

	sess.CreatedAt = parseTime(createdAt, "created_at", sess.ID)
	sess.ExpiresAt = parseTime(expiresAt, "expires_at", sess.ID)
	return sess, nil
}

// Save inserts or updates a session.
// PRE: value has a non-empty ID
// POST: Session is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, v Session) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session (id, username, token, locale, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   username=excluded.username, token=excluded.token, locale=excluded.locale,
		   created_at=excluded.created_at, expires_at=excluded.expires_at`,
		v.ID, v.Username, v.Token, v.Locale,
		v.CreatedAt.UTC().Format(timeLayout), v.ExpiresAt.UTC().Format(timeLayout))
	return err
}

// Delete removes a session by ID.
// PRE: id is non-empty
// POST: Session with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE id = ?`, id)
	return err
}

// DeleteExpired removes all sessions past their expiry.
// PRE: now is the current time
// POST: Returns the number of sessions removed
func (s *SQLiteStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM session WHERE expires_at < ?`, now.UTC().Format(timeLayout))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// parseTime parses a time string, logging a warning on failure.
func parseTime(raw, field, sessionID string) time.Time {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		slog.Warn("session: failed to parse time", "field", field, "session_id", sessionID, "raw", raw, "error", err)
	}
	return t
}
