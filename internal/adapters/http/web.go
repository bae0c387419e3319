package web

import (
	"crypto/rand"
	"embed"
	"encoding/hex"
	"io/fs"
	"log"
	"net/http"
	"os"
	"time"

	"sportlink/internal/adapters/api"
	"sportlink/internal/adapters/http/middleware"
	"sportlink/internal/adapters/http/perf"
	"sportlink/internal/adapters/i18n"
	"sportlink/internal/adapters/storage/session"
)

//go:embed static/*
var staticFS embed.FS

// Deps holds everything the HTTP layer needs.
type Deps struct {
	Backend    *api.Client
	Sessions   session.Store
	Translator *i18n.Translator
	Collector  *perf.Collector
	SessionTTL time.Duration

	// CSRFKey is the hex-encoded 32-byte CSRF signing key. Empty falls
	// back to SPORTLINK_CSRF_KEY, then to a random per-process key.
	CSRFKey string
}

// Global dependencies (set by NewMux)
var (
	backend       *api.Client
	sessions      session.Store
	translator    *i18n.Translator
	perfCollector *perf.Collector
	sessionTTL    = 24 * time.Hour
)

// RateLimitPerSecond controls the per-client rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// loadCSRFKey resolves the CSRF secret: configured value first, then
// SPORTLINK_CSRF_KEY (hex-encoded, 32 bytes). In production, the key MUST be
// set. In development, a random key is generated per startup.
func loadCSRFKey(configured string) []byte {
	keyHex := configured
	if keyHex == "" {
		keyHex = os.Getenv("SPORTLINK_CSRF_KEY")
	}
	if keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("SPORTLINK_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("SPORTLINK_ENV") == "production" {
		log.Fatal("SPORTLINK_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set SPORTLINK_CSRF_KEY for production.")
	return key
}

// NewMux wires HTTP handlers for the app.
func NewMux(d Deps) http.Handler {
	backend = d.Backend
	sessions = d.Sessions
	translator = d.Translator
	perfCollector = d.Collector
	if d.SessionTTL > 0 {
		sessionTTL = d.SessionTTL
	}

	mux := http.NewServeMux()

	staticRoot, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Fatalf("static assets missing from binary: %v", err)
	}
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot))))

	registerRoutes(mux)

	csrfKey := loadCSRFKey(d.CSRFKey)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Applied inner to outer: the mux sees requests last, Timing first.
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Metrics,
		middleware.Timing(perfCollector),
	)
}
