package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// handleHealthz handles GET /healthz. It reports the process alive, not the
// backend: the degrade paths keep pages rendering through backend outages,
// so backend reachability is not part of liveness.
func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// metricsHandler exposes the Prometheus registry.
func metricsHandler() http.Handler {
	return promhttp.Handler()
}

// handlePerf handles GET /internal/perf: a JSON snapshot of request,
// upstream and query timings from the ring buffer.
// Query params: window_minutes (default 15), top (default 10).
func handlePerf(w http.ResponseWriter, r *http.Request) {
	if perfCollector == nil {
		http.Error(w, "perf collection disabled", http.StatusNotFound)
		return
	}

	windowMinutes := 15
	if v, err := strconv.Atoi(r.URL.Query().Get("window_minutes")); err == nil && v > 0 {
		windowMinutes = v
	}
	topN := 10
	if v, err := strconv.Atoi(r.URL.Query().Get("top")); err == nil && v > 0 {
		topN = v
	}

	since := timeNow().Add(-time.Duration(windowMinutes) * time.Minute)
	snap := perfCollector.Snapshot(since, topN)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}
