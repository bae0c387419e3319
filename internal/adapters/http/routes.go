package web

import (
	"net/http"

	"sportlink/internal/adapters/http/middleware"
)

// registerRoutes wires every page and action onto the mux. Auth-only routes
// go through RequireAuth; the login and register pages stay open.
func registerRoutes(mux *http.ServeMux) {
	authed := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(middleware.SerializeWrites(h))
	}

	mux.HandleFunc("GET /login", handleLoginForm)
	mux.HandleFunc("POST /login", handleLoginSubmit)
	mux.HandleFunc("GET /register", handleRegisterForm)
	mux.HandleFunc("POST /register", handleRegisterSubmit)
	mux.Handle("POST /logout", authed(handleLogout))

	mux.Handle("GET /{$}", authed(handleDashboard))

	mux.Handle("GET /events", authed(handleCatalog))
	mux.Handle("GET /events/new", authed(handleCreateEventForm))
	mux.Handle("POST /events", authed(handleCreateEvent))
	mux.Handle("GET /events/{id}", authed(handleEventDetails))
	mux.Handle("POST /events/{id}/join", authed(handleJoinEvent))
	mux.Handle("POST /events/{id}/leave", authed(handleLeaveEvent))
	mux.Handle("GET /events/{id}/delete", authed(handleDeleteEventConfirm))
	mux.Handle("POST /events/{id}/delete", authed(handleDeleteEvent))

	mux.Handle("GET /events/{id}/rate", authed(handleRatingForm))
	mux.Handle("POST /events/{id}/rate", authed(handleRatingSubmit))

	mux.Handle("GET /notifications", authed(handleNotifications))
	mux.Handle("POST /notifications/{id}/read", authed(handleMarkNotificationRead))

	mux.Handle("GET /profile", authed(handleProfile))
	mux.Handle("POST /profile/avatar", authed(handleUpdateAvatar))
	mux.Handle("POST /profile/sports", authed(handleAddSport))
	mux.Handle("POST /profile/sports/remove", authed(handleRemoveSport))
	mux.Handle("POST /profile/locale", authed(handleSetLocale))

	mux.HandleFunc("GET /healthz", handleHealthz)
	mux.Handle("GET /internal/perf", authed(handlePerf))
	mux.Handle("GET /metrics", metricsHandler())
}
