package orchestrators

import (
	"context"
	"log/slog"
)

// SessionStoreForLogout defines the store interface needed by Logout.
type SessionStoreForLogout interface {
	Delete(ctx context.Context, id string) error
}

// LogoutDeps holds dependencies for Logout.
type LogoutDeps struct {
	Sessions SessionStoreForLogout
}

// ExecuteLogout removes the server-side session. The backend token dies
// with it; the backend itself keeps no session state.
// PRE: sessionID identifies the caller's session
// POST: The session no longer exists in the store
func ExecuteLogout(ctx context.Context, sessionID string, deps LogoutDeps) error {
	if sessionID == "" {
		return nil
	}
	if err := deps.Sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	slog.Info("auth_event", "event", "logout", "session_id", sessionID)
	return nil
}
