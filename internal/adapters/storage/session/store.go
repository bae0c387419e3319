package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no session exists for the given id.
var ErrNotFound = errors.New("session not found")

// Session is a server-side browser session. The backend bearer token never
// leaves the server; the browser only carries the opaque session id.
type Session struct {
	ID        string
	Username  string
	Token     string
	Locale    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at the given time.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Store persists browser sessions.
type Store interface {
	GetByID(ctx context.Context, id string) (Session, error)
	Save(ctx context.Context, value Session) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
