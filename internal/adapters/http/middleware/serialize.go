package middleware

import (
	"net/http"
	"sync"
)

// writeLocks holds one mutex per session with an active write request.
// Entries are removed once no request holds or waits on them, so the map
// stays bounded by concurrent writers, not by session count.
var writeLocks = keyedMutex{locks: map[string]*lockEntry{}}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	entry, ok := k.locks[key]
	if !ok {
		entry = &lockEntry{}
		k.locks[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		k.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

// SerializeWrites runs non-GET requests from the same session one at a
// time. A double-submitted form then executes its preflight checks against
// the outcome of the first submission instead of racing it, and the second
// attempt surfaces as a precise refusal (already joined, already rated)
// rather than a duplicate backend write.
func SerializeWrites(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}
		viewer, ok := GetViewerFromContext(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		unlock := writeLocks.lock(viewer.SessionID)
		defer unlock()
		next.ServeHTTP(w, r)
	})
}
