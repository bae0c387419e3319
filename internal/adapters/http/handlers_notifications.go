package web

import (
	"net/http"
	"net/url"

	"sportlink/internal/adapters/http/middleware"
	"sportlink/internal/application/orchestrators"
	"sportlink/internal/application/projections"
	"sportlink/internal/domain/notification"
)

// handleNotifications handles GET /notifications
func handleNotifications(w http.ResponseWriter, r *http.Request) {
	viewer, _ := middleware.GetViewerFromContext(r.Context())

	result, err := projections.QueryGetNotifications(r.Context(), projections.GetNotificationsQuery{
		Token: viewer.Token,
	}, projections.GetNotificationsDeps{Backend: backend})
	if err != nil {
		handleBackendError(w, r, err)
		return
	}

	renderTemplate(w, r, "notifications.html", map[string]any{
		"Notifications": result.Notifications,
		"UnreadCount":   result.UnreadCount,
	})
}

// handleMarkNotificationRead handles POST /notifications/{id}/read.
// Marking read never blocks navigation: the viewer is forwarded to the
// notification's destination even when the write fails.
func handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	viewer, _ := middleware.GetViewerFromContext(r.Context())
	notificationID := r.PathValue("id")

	if err := orchestrators.ExecuteMarkNotificationRead(r.Context(), orchestrators.MarkNotificationReadInput{
		Token:          viewer.Token,
		NotificationID: notificationID,
	}, orchestrators.MarkNotificationReadDeps{Backend: backend}); err != nil {
		// Logged by the orchestrator; the item just stays unread.
		_ = err
	}

	http.Redirect(w, r, destinationPath(r), http.StatusSeeOther)
}

// destinationPath resolves where a selected notification navigates, using
// the type and event id the notification list rendered into the form.
func destinationPath(r *http.Request) string {
	if err := r.ParseForm(); err != nil {
		return "/"
	}
	kind := r.FormValue("Type")
	eventID := r.FormValue("EventID")

	n := notification.Notification{EventID: eventID}
	if kind == "rate" {
		n.Type = notification.TypeRateParticipants
	}

	dest := n.Route()
	switch dest.Kind {
	case notification.DestRateParticipants:
		return "/events/" + url.PathEscape(dest.EventID) + "/rate"
	case notification.DestEventDetail:
		return "/events/" + url.PathEscape(dest.EventID)
	default:
		return "/"
	}
}
