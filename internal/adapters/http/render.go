package web

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"sportlink/internal/adapters/api"
	"sportlink/internal/adapters/http/middleware"
	"sportlink/internal/adapters/i18n"
	"sportlink/internal/domain/event"
	"sportlink/internal/domain/rating"
)

// timeNow is a variable for testability.
var timeNow = time.Now

//go:embed templates/*.html
var templatesFS embed.FS

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// viewerLocale picks the locale for rendering: session first, default last.
func viewerLocale(r *http.Request) string {
	if v, ok := middleware.GetViewerFromContext(r.Context()); ok && v.Locale != "" {
		return v.Locale
	}
	return translator.DefaultLocale()
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	viewer, loggedIn := middleware.GetViewerFromContext(r.Context())
	locale := viewerLocale(r)

	funcMap := template.FuncMap{
		"T": func(key string, args ...any) string {
			if len(args) == 0 {
				return translator.T(locale, key, nil)
			}
			td := make(map[string]any, len(args)/2)
			for i := 0; i+1 < len(args); i += 2 {
				k, _ := args[i].(string)
				td[k] = args[i+1]
			}
			return translator.T(locale, key, td)
		},
		"currentUser": func() string { return viewer.Username },
		"isLoggedIn":  func() bool { return loggedIn },
		"locale":      func() string { return locale },
		"locales":     func() []string { return i18n.Locales },
		"csrfToken":   func() string { return csrf.Token(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"skillName":   func(code int) string { return event.SkillLevels[code] },
		"statusName":  func(code int) string { return event.StatusNames[code] },
		"ratingLabel": rating.Label,
		"sports":      func() []string { return event.Sports },
		"stars":       func() []int { return []int{1, 2, 3, 4, 5} },
		"fmtTime":     func(t time.Time) string { return t.Local().Format("Mon, 02 Jan 2006 15:04") },
		"fmtDate":     func(t time.Time) string { return t.Local().Format("02 Jan 2006") },
		"add":         func(a, b int) int { return a + b },
		"sub":         func(a, b int) int { return a - b },
	}

	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFS(templatesFS,
		"templates/layout.html", "templates/"+templateName)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// renderError shows the shared error page with a translated message.
func renderError(w http.ResponseWriter, r *http.Request, status int, messageKey string) {
	w.WriteHeader(status)
	renderTemplate(w, r, "error.html", map[string]any{
		"MessageKey": messageKey,
	})
}

// handleBackendError converts an upstream failure into the right page.
// An expired or revoked token sends the viewer back to login with a clean
// cookie; an unreachable backend gets the dedicated outage page.
func handleBackendError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, api.ErrUnauthenticated):
		if v, ok := middleware.GetViewerFromContext(r.Context()); ok {
			if delErr := sessions.Delete(r.Context(), v.SessionID); delErr != nil {
				slog.Warn("session_cleanup_failed", "session_id", v.SessionID, "error", delErr)
			}
		}
		middleware.ClearSessionCookie(w)
		http.Redirect(w, r, "/login?expired=1", http.StatusSeeOther)
	case errors.Is(err, api.ErrUnreachable):
		slog.Error("backend_unreachable", "path", r.URL.Path, "error", err)
		renderError(w, r, http.StatusBadGateway, "ErrorBackendDown")
	case errors.Is(err, api.ErrServer):
		slog.Error("backend_error", "path", r.URL.Path, "error", err)
		renderError(w, r, http.StatusBadGateway, "ErrorBackendFailed")
	case errors.Is(err, api.ErrNotPermitted):
		renderError(w, r, http.StatusForbidden, "ErrorNotAllowed")
	default:
		slog.Warn("backend_rejected", "path", r.URL.Path, "error", err)
		renderError(w, r, http.StatusBadRequest, "ErrorGeneric")
	}
}
