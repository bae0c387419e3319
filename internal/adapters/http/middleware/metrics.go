package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sportlink_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sportlink_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Metrics returns middleware that records request counts and durations.
// Paths go through routeLabel so per-event URLs do not explode label
// cardinality. Static assets stay out of the series; /healthz is kept so
// scrape latency is visible.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/static/") {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		label := routeLabel(r.URL.Path)
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			httpRequests.WithLabelValues(r.Method, label, strconv.Itoa(sw.status)).Inc()
			httpRequestDuration.WithLabelValues(r.Method, label).Observe(time.Since(start).Seconds())
		}()

		next.ServeHTTP(sw, r)
	})
}
