package web

import (
	"errors"
	"net/http"
	"strconv"

	"sportlink/internal/adapters/http/middleware"
	"sportlink/internal/application/orchestrators"
	"sportlink/internal/application/projections"
	"sportlink/internal/domain/profile"
)

// handleProfile handles GET /profile
func handleProfile(w http.ResponseWriter, r *http.Request) {
	viewer, _ := middleware.GetViewerFromContext(r.Context())

	result, err := projections.QueryGetProfile(r.Context(), projections.GetProfileQuery{
		Token: viewer.Token,
	}, projections.GetProfileDeps{Backend: backend})
	if err != nil {
		handleBackendError(w, r, err)
		return
	}

	renderTemplate(w, r, "profile.html", map[string]any{
		"Profile":        result.Profile,
		"HostedUpcoming": result.HostedUpcoming,
		"HostedPast":     result.HostedPast,
		"Attended":       result.Attended,
		"Degraded":       result.Degraded,
		"ErrorKey":       profileErrorKey(r),
	})
}

func profileErrorKey(r *http.Request) string {
	key := r.URL.Query().Get("error")
	switch key {
	case "ProfileEmptyAvatar", "ProfileUnknownSport", "ProfileInvalidSkill":
		return key
	}
	return ""
}

// handleUpdateAvatar handles POST /profile/avatar
func handleUpdateAvatar(w http.ResponseWriter, r *http.Request) {
	viewer, _ := middleware.GetViewerFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	err := orchestrators.ExecuteUpdateAvatar(r.Context(), viewer.Token, r.FormValue("Avatar"),
		orchestrators.ProfileDeps{Backend: backend})
	if err != nil {
		if errors.Is(err, orchestrators.ErrEmptyAvatar) {
			redirectWithError(w, r, "/profile", "ProfileEmptyAvatar")
			return
		}
		handleBackendError(w, r, err)
		return
	}

	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// handleAddSport handles POST /profile/sports
func handleAddSport(w http.ResponseWriter, r *http.Request) {
	viewer, _ := middleware.GetViewerFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	skill, _ := strconv.Atoi(r.FormValue("SkillLevel"))
	pref := profile.SportPreference{
		Sport:      r.FormValue("Sport"),
		SkillLevel: skill,
	}

	err := orchestrators.ExecuteAddSport(r.Context(), viewer.Token, pref,
		orchestrators.ProfileDeps{Backend: backend})
	if err != nil {
		switch {
		case errors.Is(err, profile.ErrUnknownSport):
			redirectWithError(w, r, "/profile", "ProfileUnknownSport")
		case errors.Is(err, profile.ErrInvalidSkill):
			redirectWithError(w, r, "/profile", "ProfileInvalidSkill")
		default:
			handleBackendError(w, r, err)
		}
		return
	}

	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// handleRemoveSport handles POST /profile/sports/remove
func handleRemoveSport(w http.ResponseWriter, r *http.Request) {
	viewer, _ := middleware.GetViewerFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	err := orchestrators.ExecuteRemoveSport(r.Context(), viewer.Token, r.FormValue("Sport"),
		orchestrators.ProfileDeps{Backend: backend})
	if err != nil {
		if errors.Is(err, profile.ErrUnknownSport) {
			redirectWithError(w, r, "/profile", "ProfileUnknownSport")
			return
		}
		handleBackendError(w, r, err)
		return
	}

	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// handleSetLocale handles POST /profile/locale. The choice lives on the
// server-side session, so it survives navigation but not logout.
func handleSetLocale(w http.ResponseWriter, r *http.Request) {
	viewer, _ := middleware.GetViewerFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	locale := r.FormValue("Locale")
	if !validLocale(locale) {
		redirectBack(w, r)
		return
	}

	sess, err := sessions.GetByID(r.Context(), viewer.SessionID)
	if err != nil {
		internalError(w, err)
		return
	}
	sess.Locale = locale
	if err := sessions.Save(r.Context(), sess); err != nil {
		internalError(w, err)
		return
	}

	redirectBack(w, r)
}

// redirectBack returns to the referring page, falling back to the dashboard.
func redirectBack(w http.ResponseWriter, r *http.Request) {
	target := r.FormValue("ReturnTo")
	if target == "" || target[0] != '/' {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
