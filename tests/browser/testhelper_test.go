package browser_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	_ "modernc.org/sqlite"

	"sportlink/internal/adapters/api"
	web "sportlink/internal/adapters/http"
	"sportlink/internal/adapters/http/middleware"
	"sportlink/internal/adapters/i18n"
	"sportlink/internal/adapters/storage"
	sessionStore "sportlink/internal/adapters/storage/session"
	"sportlink/internal/domain/event"
)

// fakeBackend is a scriptable stand-in for the remote sports API. It keeps
// just enough state for end-to-end flows: one account, a set of events and
// the viewer's joins.
type fakeBackend struct {
	mu            sync.Mutex
	token         string
	events        map[string]map[string]any
	joined        map[string]bool
	notifications []map[string]any
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		token:  "fake-token",
		events: make(map[string]map[string]any),
		joined: make(map[string]bool),
	}
}

// addEvent registers an upcoming event hosted by someone else.
func (f *fakeBackend) addEvent(id, title, sport string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events[id] = map[string]any{
		"id":         id,
		"title":      title,
		"sport":      event.SportCode(sport),
		"skillLevel": 0,
		"address":    "City Arena",
		"startTime":  time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		"endTime":    time.Now().Add(50 * time.Hour).UTC().Format(time.RFC3339),
		"capacity":   10,
		"occupied":   2,
		"status":     0,
		"organizer":  map[string]any{"id": "u-9", "username": "peter"},
	}
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ Username, Password string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Username != "maria" || body.Password != "TestPass123!" {
			http.Error(w, "bad credentials", http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"token": f.token})
	})
	mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("User registered successfully"))
	})

	mux.HandleFunc("GET /event/all", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		list := make([]any, 0, len(f.events))
		for _, ev := range f.events {
			list = append(list, ev)
		}
		_ = json.NewEncoder(w).Encode(list)
	})
	mux.HandleFunc("GET /event/details/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		ev, ok := f.events[r.PathValue("id")]
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(ev)
	})
	// ServeMux rejects "GET /event/{id}/participants" as conflicting with
	// "GET /event/details/{id}", so match the second segment by hand.
	mux.HandleFunc("GET /event/{id}/{action}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("action") != "participants" {
			http.NotFound(w, r)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		list := []any{}
		if f.joined[r.PathValue("id")] {
			list = append(list, map[string]any{"id": "u-1", "username": "maria"})
		}
		_ = json.NewEncoder(w).Encode(list)
	})
	mux.HandleFunc("GET /event/hosted/{when}", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]any{})
	})
	mux.HandleFunc("GET /event/attended/{when}", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]any{})
	})
	mux.HandleFunc("POST /user/event/join", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		id := r.URL.Query().Get("eventId")
		f.joined[id] = true
		if ev, ok := f.events[id]; ok {
			ev["occupied"] = ev["occupied"].(int) + 1
			ev["participants"] = []any{map[string]any{"id": "u-1", "username": "maria"}}
		}
		w.Write([]byte("OK"))
	})
	mux.HandleFunc("DELETE /user/event/leave", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		id := r.URL.Query().Get("eventId")
		delete(f.joined, id)
		if ev, ok := f.events[id]; ok {
			ev["occupied"] = ev["occupied"].(int) - 1
			ev["participants"] = []any{}
		}
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("GET /user/profile", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"username":   "maria",
			"email":      "maria@example.com",
			"trustScore": 4.2,
			"sports":     []any{map[string]any{"sport": 10, "skillLevel": 1}},
		})
	})

	mux.HandleFunc("GET /notifications/all", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		list := make([]any, 0, len(f.notifications))
		for _, n := range f.notifications {
			list = append(list, n)
		}
		_ = json.NewEncoder(w).Encode(list)
	})
	mux.HandleFunc("PUT /notifications/read/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	return mux
}

// testApp runs the real server against a fake backend for Playwright.
type testApp struct {
	BaseURL string
	Backend *fakeBackend
	PW      *playwright.Playwright
	Browser playwright.Browser
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	backend := newFakeBackend()
	backendSrv := httptest.NewServer(backend.handler())
	t.Cleanup(backendSrv.Close)

	dbPath := filepath.Join(t.TempDir(), "sessions.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatalf("failed to open session DB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to init session schema: %v", err)
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	// Add the ephemeral port to CSRF trusted origins before creating the mux.
	middleware.ExtraTrustedOrigins = append(middleware.ExtraTrustedOrigins,
		fmt.Sprintf("127.0.0.1:%d", port),
		fmt.Sprintf("localhost:%d", port),
	)

	web.RateLimitPerSecond = 1000
	mux := web.NewMux(web.Deps{
		Backend:    api.NewClient(backendSrv.URL, nil),
		Sessions:   sessionStore.NewSQLiteStore(storage.NewTimedDB(db, nil)),
		Translator: i18n.NewTranslator("en"),
		SessionTTL: time.Hour,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: mux,
	}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("test server error: %v", err)
		}
	}()
	t.Cleanup(func() { srv.Shutdown(context.Background()) })

	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/login")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}
	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
	})

	return &testApp{
		BaseURL: baseURL,
		Backend: backend,
		PW:      pw,
		Browser: browser,
	}
}

func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

// login signs in as the fake backend's only account.
func (a *testApp) login(t *testing.T, page playwright.Page) {
	t.Helper()
	if _, err := page.Goto(a.BaseURL + "/login"); err != nil {
		t.Fatalf("failed to navigate to login: %v", err)
	}
	if err := page.Locator("input[name=Username]").Fill("maria"); err != nil {
		t.Fatalf("failed to fill username: %v", err)
	}
	if err := page.Locator("input[name=Password]").Fill("TestPass123!"); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to click login: %v", err)
	}
	if err := page.WaitForURL(a.BaseURL+"/", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("login did not redirect to the dashboard: %v", err)
	}
}
