package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/csrf"
)

// credentialCost is the token charge for login and registration attempts.
// A password-guessing loop burns through the bucket three times faster
// than normal browsing, without a separate limiter for those two routes.
const credentialCost = 3

// RateLimiter is a per-client token bucket. Buckets are keyed by client
// host, not the full RemoteAddr: one browser opens many connections to
// load a page, and each gets a fresh ephemeral port.
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	rate     int           // tokens per interval
	interval time.Duration // refill interval
}

type bucket struct {
	tokens   int
	lastSeen time.Time
}

// NewRateLimiter creates a limiter allowing rate requests per interval
// per client host.
func NewRateLimiter(rate int, interval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		interval: interval,
	}
	go rl.sweep()
	return rl
}

// sweep drops buckets idle for more than five minutes so the map does not
// grow with every client the server has ever seen.
func (rl *RateLimiter) sweep() {
	for {
		time.Sleep(time.Minute)
		rl.mu.Lock()
		for host, b := range rl.buckets {
			if time.Since(b.lastSeen) > 5*time.Minute {
				delete(rl.buckets, host)
			}
		}
		rl.mu.Unlock()
	}
}

// Allow charges cost tokens against the client's bucket.
// PRE: key is non-empty, cost >= 1
// POST: Returns true if the bucket held enough tokens, false if exhausted
func (rl *RateLimiter) Allow(key string, cost int) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]
	if !ok {
		rl.buckets[key] = &bucket{tokens: rl.rate - cost, lastSeen: time.Now()}
		return true
	}

	refill := int(time.Since(b.lastSeen)/rl.interval) * rl.rate
	b.tokens += refill
	if b.tokens > rl.rate {
		b.tokens = rl.rate
	}
	b.lastSeen = time.Now()

	if b.tokens < cost {
		slog.Warn("rate_limit_exceeded", "client", key, "cost", cost)
		return false
	}
	b.tokens -= cost
	return true
}

// clientKey reduces RemoteAddr to the host part.
func clientKey(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

// requestCost weights a request for the limiter. Credential submissions
// are the only endpoints worth brute-forcing, so they cost more.
func requestCost(r *http.Request) int {
	if r.Method == http.MethodPost && (r.URL.Path == "/login" || r.URL.Path == "/register") {
		return credentialCost
	}
	return 1
}

// RateLimit returns middleware that limits requests per client host.
func RateLimit(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientKey(r.RemoteAddr), requestCost(r)) {
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeaders sets the response headers every page carries. The app
// serves its own stylesheet and no scripts; avatars are user-supplied
// remote URLs, so img-src has to allow arbitrary https sources.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy",
			"default-src 'self'; style-src 'self'; script-src 'none'; img-src 'self' data: https:; form-action 'self'; frame-ancestors 'none'")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// ExtraTrustedOrigins lets tests add the origin of an ephemeral server
// before the middleware chain is built.
var ExtraTrustedOrigins []string

// CSRF returns double-submit protection for the form posts. Every state
// change in the app is a browser form submission, so nothing is exempted.
func CSRF(authKey []byte) func(http.Handler) http.Handler {
	origins := append([]string{"localhost:8090", "127.0.0.1:8090"}, ExtraTrustedOrigins...)
	return csrf.Protect(
		authKey,
		csrf.Secure(false), // local HTTP deployment
		csrf.Path("/"),
		csrf.TrustedOrigins(origins),
	)
}

// Chain applies middlewares in order (outer to inner).
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
