package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"sportlink/internal/adapters/api"
	"sportlink/internal/adapters/http/middleware"
	"sportlink/internal/adapters/i18n"
	"sportlink/internal/adapters/storage/session"
)

// --- In-memory session store ---

type memSessions struct {
	mu    sync.Mutex
	items map[string]session.Session
}

func newMemSessions() *memSessions {
	return &memSessions{items: make(map[string]session.Session)}
}

func (m *memSessions) GetByID(_ context.Context, id string) (session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.items[id]
	if !ok {
		return session.Session{}, fmt.Errorf("session not found: %s", id)
	}
	return s, nil
}

func (m *memSessions) Save(_ context.Context, value session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[value.ID] = value
	return nil
}

func (m *memSessions) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

func (m *memSessions) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, s := range m.items {
		if s.Expired(now) {
			delete(m.items, id)
			n++
		}
	}
	return n, nil
}

// only returns the single stored session; fails the test otherwise.
func (m *memSessions) only(t *testing.T) session.Session {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.items) != 1 {
		t.Fatalf("expected exactly 1 session, got %d", len(m.items))
	}
	for _, s := range m.items {
		return s
	}
	return session.Session{}
}

// --- Test environment ---

// testViewer is the authenticated viewer injected into handler requests.
var testViewer = middleware.Viewer{
	SessionID: "sess-1",
	Username:  "maria",
	Token:     "token-1",
	Locale:    "en",
	ExpiresAt: time.Now().Add(time.Hour),
}

// setupWeb points the package globals at an in-memory session store and a
// stub backend served by httptest. Handlers under test hit real HTTP and
// exercise the full api.Client decode path.
func setupWeb(t *testing.T, backendMux http.Handler) *memSessions {
	t.Helper()
	srv := httptest.NewServer(backendMux)
	t.Cleanup(srv.Close)

	store := newMemSessions()
	store.items[testViewer.SessionID] = session.Session{
		ID:        testViewer.SessionID,
		Username:  testViewer.Username,
		Token:     testViewer.Token,
		Locale:    testViewer.Locale,
		CreatedAt: time.Now(),
		ExpiresAt: testViewer.ExpiresAt,
	}

	backend = api.NewClient(srv.URL, nil)
	sessions = store
	translator = i18n.NewTranslator("en")
	sessionTTL = 24 * time.Hour
	perfCollector = nil
	return store
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// eventDoc builds a backend event payload. sportCode indexes event.Sports.
func eventDoc(id, title string, sportCode int, overrides map[string]any) map[string]any {
	doc := map[string]any{
		"id":         id,
		"title":      title,
		"sport":      sportCode,
		"skillLevel": 0,
		"address":    "Main Hall 1",
		"startTime":  time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		"endTime":    time.Now().Add(50 * time.Hour).UTC().Format(time.RFC3339),
		"capacity":   10,
		"occupied":   2,
		"status":     0,
		"organizer":  map[string]any{"id": "u-9", "username": "peter"},
	}
	for k, v := range overrides {
		doc[k] = v
	}
	return doc
}

// --- Request helpers ---

func viewerGet(target string) *http.Request {
	req := httptest.NewRequest("GET", target, nil)
	return req.WithContext(middleware.ContextWithViewer(req.Context(), testViewer))
}

func viewerPostForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req.WithContext(middleware.ContextWithViewer(req.Context(), testViewer))
}

func anonPostForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// parseDoc parses the recorded HTML response for structural assertions.
func parseDoc(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	if err != nil {
		t.Fatalf("parse response HTML: %v", err)
	}
	return doc
}

func wantRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status=%d, want %d body=%s", rec.Code, http.StatusSeeOther, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != location {
		t.Fatalf("Location=%q, want %q", got, location)
	}
}
