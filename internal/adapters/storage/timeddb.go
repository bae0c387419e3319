package storage

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"sportlink/internal/adapters/http/perf"
)

// SQLDB is the database surface the session store runs on. Both *sql.DB
// and *TimedDB satisfy it. The store never opens transactions: every
// session operation is a single keyed statement.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var _ SQLDB = (*sql.DB)(nil)
var _ SQLDB = (*TimedDB)(nil)

// DefaultSlowQueryMs is the slow-query threshold. The session lookup sits
// on the auth middleware path of every page view, so anything that is not
// near-instant for a primary-key read deserves a warning well before it
// would register on a page timing.
const DefaultSlowQueryMs = 20

// TimedDB wraps the session database with timing instrumentation: slow
// statements are logged by session operation and, when a collector is
// present, every statement is recorded for the perf snapshot.
type TimedDB struct {
	db        *sql.DB
	collector *perf.Collector
	threshold float64
}

// NewTimedDB wraps db. A nil collector disables recording but keeps the
// slow-query log.
func NewTimedDB(db *sql.DB, collector *perf.Collector) *TimedDB {
	return &TimedDB{
		db:        db,
		collector: collector,
		threshold: DefaultSlowQueryMs,
	}
}

// SetSlowThresholdMs overrides the slow-query threshold.
// PRE: ms > 0
func (t *TimedDB) SetSlowThresholdMs(ms float64) {
	if ms > 0 {
		t.threshold = ms
	}
}

// RawDB returns the underlying *sql.DB for pool configuration and schema
// setup.
func (t *TimedDB) RawDB() *sql.DB {
	return t.db
}

// sessionOp names a statement by what it does to the session table, so
// logs and the perf page read "session_get is slow", not "QueryRowContext
// is slow".
func sessionOp(query string) string {
	q := strings.ToUpper(strings.TrimSpace(query))
	switch {
	case strings.HasPrefix(q, "SELECT"):
		return "session_get"
	case strings.HasPrefix(q, "INSERT"):
		return "session_save"
	case strings.HasPrefix(q, "DELETE") && strings.Contains(q, "EXPIRES_AT <"):
		return "session_reap"
	case strings.HasPrefix(q, "DELETE"):
		return "session_delete"
	default:
		return "session_other"
	}
}

func (t *TimedDB) observe(query string, start time.Time) {
	op := sessionOp(query)
	durationMs := float64(time.Since(start).Microseconds()) / 1000.0

	if durationMs >= t.threshold {
		slog.Warn("slow_session_query", "op", op, "duration_ms", durationMs)
	} else {
		slog.Debug("session_query", "op", op, "duration_ms", durationMs)
	}

	if t.collector != nil {
		t.collector.Record(perf.Entry{
			Kind:       perf.KindQuery,
			Path:       op,
			DurationMs: durationMs,
			Timestamp:  start,
		})
	}
}

// ExecContext runs a write statement with timing.
// POST: statement executed, timing observed even on error
func (t *TimedDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	result, err := t.db.ExecContext(ctx, query, args...)
	t.observe(query, start)
	return result, err
}

// QueryContext runs a read statement with timing.
// POST: statement executed, timing observed even on error
func (t *TimedDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.db.QueryContext(ctx, query, args...)
	t.observe(query, start)
	return rows, err
}

// QueryRowContext runs a single-row read with timing.
// POST: statement executed, timing observed
func (t *TimedDB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := t.db.QueryRowContext(ctx, query, args...)
	t.observe(query, start)
	return row
}
