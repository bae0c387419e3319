package web

import (
	"errors"
	"net/http"

	"sportlink/internal/adapters/http/middleware"
	"sportlink/internal/adapters/i18n"
	"sportlink/internal/application/orchestrators"
)

// handleLoginForm handles GET /login
func handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetViewerFromContext(r.Context()); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	renderTemplate(w, r, "login.html", map[string]any{
		"Expired": r.URL.Query().Get("expired") == "1",
		"Created": r.URL.Query().Get("created") == "1",
	})
}

// handleLoginSubmit handles POST /login
func handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	locale := r.FormValue("Locale")
	if !validLocale(locale) {
		locale = translator.DefaultLocale()
	}

	input := orchestrators.LoginInput{
		Username: r.FormValue("Username"),
		Password: r.FormValue("Password"),
		Locale:   locale,
	}
	deps := orchestrators.LoginDeps{
		Backend:    backend,
		Sessions:   sessions,
		SessionTTL: sessionTTL,
		Now:        timeNow,
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), input, deps)
	if err != nil {
		if errors.Is(err, orchestrators.ErrMissingCredentials) || errors.Is(err, orchestrators.ErrInvalidCredentials) {
			renderTemplate(w, r, "login.html", map[string]any{
				"ErrorKey": "LoginFailed",
				"Username": input.Username,
			})
			return
		}
		handleBackendError(w, r, err)
		return
	}

	middleware.SetSessionCookie(w, result.Session.ID, sessionTTL)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleRegisterForm handles GET /register
func handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetViewerFromContext(r.Context()); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	renderTemplate(w, r, "register.html", map[string]any{})
}

// handleRegisterSubmit handles POST /register. A new account is not logged
// in automatically; the viewer lands on the login page with a confirmation.
func handleRegisterSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	input := orchestrators.RegisterInput{
		Username: r.FormValue("Username"),
		Email:    r.FormValue("Email"),
		Password: r.FormValue("Password"),
	}

	if confirm := r.FormValue("ConfirmPassword"); confirm != input.Password {
		renderTemplate(w, r, "register.html", map[string]any{
			"ErrorKey": "RegisterPasswordMismatch",
			"Username": input.Username,
			"Email":    input.Email,
		})
		return
	}

	_, err := orchestrators.ExecuteRegister(r.Context(), input, orchestrators.RegisterDeps{Backend: backend})
	if err != nil {
		key := registerErrorKey(err)
		if key == "" {
			handleBackendError(w, r, err)
			return
		}
		renderTemplate(w, r, "register.html", map[string]any{
			"ErrorKey": key,
			"Username": input.Username,
			"Email":    input.Email,
		})
		return
	}

	http.Redirect(w, r, "/login?created=1", http.StatusSeeOther)
}

// registerErrorKey maps validation failures to translation keys. Backend
// and transport failures return "" and take the error-page path instead.
func registerErrorKey(err error) string {
	switch {
	case errors.Is(err, orchestrators.ErrMissingFields):
		return "RegisterMissingFields"
	case errors.Is(err, orchestrators.ErrInvalidEmail):
		return "RegisterInvalidEmail"
	case errors.Is(err, orchestrators.ErrPasswordTooShort):
		return "RegisterPasswordTooShort"
	case errors.Is(err, orchestrators.ErrUserExists):
		return "RegisterUserExists"
	default:
		return ""
	}
}

// handleLogout handles POST /logout
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if v, ok := middleware.GetViewerFromContext(r.Context()); ok {
		if err := orchestrators.ExecuteLogout(r.Context(), v.SessionID, orchestrators.LogoutDeps{Sessions: sessions}); err != nil {
			internalError(w, err)
			return
		}
	}
	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func validLocale(locale string) bool {
	for _, l := range i18n.Locales {
		if l == locale {
			return true
		}
	}
	return false
}
