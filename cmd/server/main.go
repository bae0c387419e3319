package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"sportlink/internal/adapters/api"
	web "sportlink/internal/adapters/http"
	"sportlink/internal/adapters/http/perf"
	"sportlink/internal/adapters/i18n"
	"sportlink/internal/adapters/storage"
	sessionStore "sportlink/internal/adapters/storage/session"
	"sportlink/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	setupLogging(cfg.LogLevel)

	// Local SQLite holds browser sessions only; all sports data lives in
	// the remote backend.
	dsn := cfg.SessionDBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open session database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("session database unreachable: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize session schema: %v", err)
	}

	// Performance instrumentation: one collector sees request handling,
	// session store queries and upstream API calls.
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)
	sessions := sessionStore.NewSQLiteStore(timedDB)

	// Expired sessions are reaped in the background so the table cannot
	// grow without bound.
	stopReaper := make(chan struct{})
	go reapSessions(sessions, stopReaper)
	defer close(stopReaper)

	upstreamTimeout := time.Duration(cfg.UpstreamTimeoutMS) * time.Millisecond
	httpClient := &http.Client{
		Transport: &perf.Transport{Collector: collector},
		Timeout:   upstreamTimeout,
	}
	backend := api.NewClient(cfg.APIBaseURL, httpClient)

	translator := i18n.NewTranslator(cfg.DefaultLocale)

	mux := web.NewMux(web.Deps{
		Backend:    backend,
		Sessions:   sessions,
		Translator: translator,
		Collector:  collector,
		SessionTTL: time.Duration(cfg.SessionTTLHours) * time.Hour,
		CSRFKey:    cfg.CSRFKey,
	})

	slog.Info("server_start",
		"version", version,
		"addr", cfg.Addr,
		"api_base_url", cfg.APIBaseURL,
		"default_locale", cfg.DefaultLocale,
	)

	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// setupLogging installs the process-wide slog handler at the configured level.
func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

// reapSessions deletes expired sessions hourly until stop closes.
func reapSessions(store sessionStore.Store, stop <-chan struct{}) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			n, err := store.DeleteExpired(context.Background(), time.Now())
			if err != nil {
				slog.Warn("session_reap_failed", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("session_reap", "deleted", n)
			}
		case <-stop:
			return
		}
	}
}
