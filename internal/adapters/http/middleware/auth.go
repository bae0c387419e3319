package middleware

import (
	"context"
	"net/http"
	"time"

	"sportlink/internal/adapters/storage/session"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const viewerContextKey contextKey = "viewer"

// Viewer is the authenticated browser session attached to a request.
// Token is the backend bearer token; it never reaches the browser.
type Viewer struct {
	SessionID string
	Username  string
	Token     string
	Locale    string
	ExpiresAt time.Time
}

const sessionCookieName = "sportlink_session"

// Auth returns middleware that resolves the session cookie against the
// store and sets the viewer in context. Expired sessions are treated as
// absent. It does NOT block unauthenticated requests; use RequireAuth
// for that.
func Auth(sessions session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err == nil && cookie.Value != "" {
				if sess, err := sessions.GetByID(r.Context(), cookie.Value); err == nil && !sess.Expired(time.Now()) {
					viewer := Viewer{
						SessionID: sess.ID,
						Username:  sess.Username,
						Token:     sess.Token,
						Locale:    sess.Locale,
						ExpiresAt: sess.ExpiresAt,
					}
					r = r.WithContext(context.WithValue(r.Context(), viewerContextKey, viewer))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth returns middleware that blocks unauthenticated requests.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetViewerFromContext(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetViewerFromContext extracts the viewer from the request context.
func GetViewerFromContext(ctx context.Context) (Viewer, bool) {
	viewer, ok := ctx.Value(viewerContextKey).(Viewer)
	return viewer, ok
}

// SetSessionCookie sets the session cookie on the response.
func SetSessionCookie(w http.ResponseWriter, sessionID string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		HttpOnly: true,
		Secure:   false, // Allow HTTP for local development
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

// ContextWithViewer returns a context with the given viewer set.
// Intended for use in tests.
func ContextWithViewer(ctx context.Context, v Viewer) context.Context {
	return context.WithValue(ctx, viewerContextKey, v)
}
