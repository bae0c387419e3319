package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"sportlink/internal/adapters/api"
	"sportlink/internal/adapters/storage/session"
	"sportlink/internal/domain/sessiontoken"
)

// BackendForLogin defines the backend calls needed by Login.
type BackendForLogin interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// SessionStoreForLogin defines the store interface needed by Login.
type SessionStoreForLogin interface {
	Save(ctx context.Context, value session.Session) error
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Username string
	Password string
	Locale   string
}

// LoginResult carries the session created by a successful login.
type LoginResult struct {
	Session session.Session
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	Backend    BackendForLogin
	Sessions   SessionStoreForLogin
	SessionTTL time.Duration
	Now        func() time.Time
}

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ExecuteLogin exchanges credentials for a backend token and creates a
// server-side session carrying it.
// PRE: Valid username and password provided
// POST: On success a session exists in the store and is returned
// INVARIANT: The bearer token is stored server-side only
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.Username == "" || input.Password == "" {
		return LoginResult{}, ErrMissingCredentials
	}

	token, err := deps.Backend.Login(ctx, input.Username, input.Password)
	if err != nil {
		if errors.Is(err, api.ErrUnauthenticated) || errors.Is(err, api.ErrInvalid) {
			slog.Info("auth_event", "event", "login_failed", "username", input.Username, "reason", "rejected")
			return LoginResult{}, ErrInvalidCredentials
		}
		slog.Info("auth_event", "event", "login_failed", "username", input.Username, "reason", "backend_error")
		return LoginResult{}, err
	}

	now := deps.Now()
	if claims, err := sessiontoken.ParseClaims(token); err == nil {
		slog.Debug("auth_event", "event", "token_claims",
			"username", input.Username,
			"subject", claims.Subject,
			"token_expires_at", claims.ExpiresAt,
			"token_expired", claims.Expired(now))
	}
	sess := session.Session{
		ID:        uuid.NewString(),
		Username:  input.Username,
		Token:     token,
		Locale:    input.Locale,
		CreatedAt: now,
		ExpiresAt: now.Add(deps.SessionTTL),
	}
	if err := deps.Sessions.Save(ctx, sess); err != nil {
		return LoginResult{}, err
	}

	slog.Info("auth_event", "event", "login_success", "username", input.Username)

	return LoginResult{Session: sess}, nil
}
