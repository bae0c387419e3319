package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"sportlink/internal/adapters/api"
)

// BackendForRegister defines the backend calls needed by Register.
type BackendForRegister interface {
	Register(ctx context.Context, username, email, password string) (string, error)
}

// RegisterInput carries input for the register orchestrator.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// RegisterResult carries the backend's confirmation message.
type RegisterResult struct {
	Message string
}

// RegisterDeps holds dependencies for Register.
type RegisterDeps struct {
	Backend BackendForRegister
}

const minPasswordLength = 6

var (
	ErrMissingFields    = errors.New("username, email and password are required")
	ErrInvalidEmail     = errors.New("email address is not valid")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrUserExists       = errors.New("an account with that name or email already exists")
)

// ExecuteRegister validates the form locally and creates the account on the
// backend. Registration does not log the user in; the caller redirects to
// the login page.
// PRE: none
// POST: On success the account exists on the backend
func ExecuteRegister(ctx context.Context, input RegisterInput, deps RegisterDeps) (RegisterResult, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	if username == "" || email == "" || input.Password == "" {
		return RegisterResult{}, ErrMissingFields
	}
	if !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		return RegisterResult{}, ErrInvalidEmail
	}
	if len(input.Password) < minPasswordLength {
		return RegisterResult{}, ErrPasswordTooShort
	}

	msg, err := deps.Backend.Register(ctx, username, email, input.Password)
	if err != nil {
		if api.ConflictCause(err) == api.CauseDuplicateUser {
			slog.Info("auth_event", "event", "register_failed", "username", username, "reason", "duplicate")
			return RegisterResult{}, ErrUserExists
		}
		slog.Info("auth_event", "event", "register_failed", "username", username, "reason", "backend_error")
		return RegisterResult{}, err
	}

	slog.Info("auth_event", "event", "register_success", "username", username)
	return RegisterResult{Message: msg}, nil
}
