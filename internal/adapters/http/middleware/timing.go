package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"sportlink/internal/adapters/http/perf"
)

// DefaultSlowRequestMs is the slow-page threshold. Pages here are bound by
// remote API calls, not local work: the dashboard alone fans out four
// backend reads. Local handlers finishing in microseconds make a lower
// threshold pure noise, while anything past half a second is a real
// upstream problem worth a warning.
const DefaultSlowRequestMs = 500

// SlowRequestMs is the active threshold. Tests may lower it to force the
// warn path.
var SlowRequestMs float64 = DefaultSlowRequestMs

// statusWriter captures the status code for the request log.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

// routeLabel collapses dynamic path segments so timings aggregate per page,
// not per event. "/events/ev-93/join" and "/events/ev-7/join" are the same
// page doing the same upstream work.
func routeLabel(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	switch {
	case len(parts) >= 2 && parts[0] == "events" && parts[1] != "new":
		parts[1] = "{id}"
	case len(parts) >= 2 && parts[0] == "notifications":
		parts[1] = "{id}"
	}
	return "/" + strings.Join(parts, "/")
}

// skipTiming filters endpoints whose timings would drown the signal:
// static assets and the health and metrics endpoints scraped on a schedule.
func skipTiming(path string) bool {
	return strings.HasPrefix(path, "/static/") ||
		path == "/healthz" || path == "/metrics"
}

// Timing returns middleware that logs per-page duration and records it for
// the perf snapshot. Normal pages log at DEBUG, slow pages at WARN.
func Timing(collector *perf.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skipTiming(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			label := routeLabel(r.URL.Path)
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			defer func() {
				durationMs := float64(time.Since(start).Microseconds()) / 1000.0

				if durationMs >= SlowRequestMs {
					slog.Warn("slow_page",
						"method", r.Method,
						"route", label,
						"status", sw.status,
						"duration_ms", durationMs,
					)
				} else {
					slog.Debug("page",
						"method", r.Method,
						"route", label,
						"status", sw.status,
						"duration_ms", durationMs,
					)
				}

				if collector != nil {
					collector.Record(perf.Entry{
						Kind:       perf.KindRequest,
						Path:       r.Method + " " + label,
						StatusCode: sw.status,
						DurationMs: durationMs,
						Timestamp:  start,
					})
				}
			}()

			next.ServeHTTP(sw, r)
		})
	}
}
