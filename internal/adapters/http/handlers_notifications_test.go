package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

// TestHandleNotifications_NewestFirst verifies the list renders sorted by
// creation time with unread items marked.
func TestHandleNotifications_NewestFirst(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /notifications/all", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []any{
			map[string]any{
				"id": "n-1", "title": "Older", "message": "first",
				"createdAt": time.Now().Add(-2 * time.Hour).UTC().Format(time.RFC3339),
				"isRead":    true,
			},
			map[string]any{
				"id": "n-2", "title": "Newer", "message": "second",
				"createdAt": time.Now().Add(-time.Hour).UTC().Format(time.RFC3339),
				"isRead":    false,
			},
		})
	})
	setupWeb(t, mux)

	rec := httptest.NewRecorder()
	handleNotifications(rec, viewerGet("/notifications"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	doc := parseDoc(t, rec)
	items := doc.Find(".notification-list > li")
	if items.Length() != 2 {
		t.Fatalf("items=%d, want 2", items.Length())
	}
	if first := items.First().Text(); !strings.Contains(first, "Newer") {
		t.Fatalf("first item=%q, want the newest notification", first)
	}
	if doc.Find(".notification-list .unread").Length() != 1 {
		t.Fatal("exactly one item must be marked unread")
	}
}

// TestHandleMarkNotificationRead_RoutesToRating verifies a rate-request
// notification forwards to the rating page after the read receipt.
func TestHandleMarkNotificationRead_RoutesToRating(t *testing.T) {
	readHit := false
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /notifications/read/n-1", func(w http.ResponseWriter, r *http.Request) {
		readHit = true
		w.Write([]byte("OK"))
	})
	setupWeb(t, mux)

	req := viewerPostForm("/notifications/n-1/read", url.Values{
		"Type":    {"rate"},
		"EventID": {"ev-9"},
	})
	req.SetPathValue("id", "n-1")

	rec := httptest.NewRecorder()
	handleMarkNotificationRead(rec, req)

	wantRedirect(t, rec, "/events/ev-9/rate")
	if !readHit {
		t.Fatal("the read receipt must reach the backend")
	}
}

// TestHandleMarkNotificationRead_EventNotification verifies a plain event
// notification forwards to the event page.
func TestHandleMarkNotificationRead_EventNotification(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /notifications/read/n-1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	setupWeb(t, mux)

	req := viewerPostForm("/notifications/n-1/read", url.Values{"EventID": {"ev-9"}})
	req.SetPathValue("id", "n-1")

	rec := httptest.NewRecorder()
	handleMarkNotificationRead(rec, req)

	wantRedirect(t, rec, "/events/ev-9")
}

// TestHandleMarkNotificationRead_FailedReceiptStillNavigates verifies a
// failed read write never strands the viewer.
func TestHandleMarkNotificationRead_FailedReceiptStillNavigates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /notifications/read/n-1", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	setupWeb(t, mux)

	req := viewerPostForm("/notifications/n-1/read", url.Values{"EventID": {"ev-9"}})
	req.SetPathValue("id", "n-1")

	rec := httptest.NewRecorder()
	handleMarkNotificationRead(rec, req)

	wantRedirect(t, rec, "/events/ev-9")
}

// TestHandleMarkNotificationRead_NoEvent verifies system notifications with
// no event link fall back to the dashboard.
func TestHandleMarkNotificationRead_NoEvent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /notifications/read/n-1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	setupWeb(t, mux)

	req := viewerPostForm("/notifications/n-1/read", url.Values{})
	req.SetPathValue("id", "n-1")

	rec := httptest.NewRecorder()
	handleMarkNotificationRead(rec, req)

	wantRedirect(t, rec, "/")
}
