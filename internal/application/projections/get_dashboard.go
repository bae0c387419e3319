package projections

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"sportlink/internal/domain/event"
	"sportlink/internal/domain/profile"
)

// ErrDashboardUnavailable means every dashboard leg failed, which almost
// always means the backend itself is down.
var ErrDashboardUnavailable = errors.New("dashboard data is unavailable")

// DashboardBackend combines the reads the landing page fans out to.
type DashboardBackend interface {
	EventsBackend
	ProfileBackend
	MyEventsBackend
	NotificationsBackend
}

// GetDashboardQuery carries input for the dashboard projection.
type GetDashboardQuery struct {
	Token    string
	Username string
	Now      time.Time
	PreviewN int
}

// GetDashboardResult carries the landing page data. Every leg degrades
// independently: a failed leg leaves its slice empty and flips Degraded.
type GetDashboardResult struct {
	UpcomingPreview []event.Event
	HostedUpcoming  []event.Event
	UnreadCount     int
	Profile         profile.Profile
	HasProfile      bool
	Degraded        bool
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	Backend DashboardBackend
}

const defaultPreviewN = 5

// QueryGetDashboard loads the landing page with one concurrent fan-out:
// catalog preview, hosted events, unread notification count, and the
// viewer's profile. No single failed leg takes the page down; only the
// catalog preview leg is allowed to fail the whole query when every leg
// failed, which surfaces backend outage as one error instead of an
// empty page pretending to be healthy.
// PRE: Viewer is authenticated
// POST: Result legs are independent; Degraded marks partial data
func QueryGetDashboard(ctx context.Context, query GetDashboardQuery, deps GetDashboardDeps) (GetDashboardResult, error) {
	previewN := query.PreviewN
	if previewN <= 0 {
		previewN = defaultPreviewN
	}

	var (
		mu     sync.Mutex
		result GetDashboardResult
		errs   int
		legs   int
	)

	fail := func(leg string, err error) {
		mu.Lock()
		defer mu.Unlock()
		result.Degraded = true
		errs++
		slog.Info("dashboard_degraded", "leg", leg, "error", err)
	}

	var wg sync.WaitGroup
	run := func(leg string, fn func() error) {
		legs++
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				fail(leg, err)
			}
		}()
	}

	run("catalog", func() error {
		events, err := deps.Backend.AllEvents(ctx, query.Token)
		if err != nil {
			return err
		}
		events = event.FutureOnly(events, query.Now)
		event.SortByStart(events)
		if len(events) > previewN {
			events = events[:previewN]
		}
		mu.Lock()
		result.UpcomingPreview = events
		mu.Unlock()
		return nil
	})

	run("hosted", func() error {
		hosted, err := deps.Backend.HostedEvents(ctx, query.Token, "upcoming")
		if err != nil {
			return err
		}
		mu.Lock()
		result.HostedUpcoming = hosted
		mu.Unlock()
		return nil
	})

	run("notifications", func() error {
		items, err := deps.Backend.Notifications(ctx, query.Token)
		if err != nil {
			return err
		}
		unread := 0
		for _, n := range items {
			if !n.Read {
				unread++
			}
		}
		mu.Lock()
		result.UnreadCount = unread
		mu.Unlock()
		return nil
	})

	run("profile", func() error {
		prof, err := deps.Backend.Profile(ctx, query.Token)
		if err != nil {
			return err
		}
		mu.Lock()
		result.Profile = prof
		result.HasProfile = true
		mu.Unlock()
		return nil
	})

	wg.Wait()

	if errs == legs {
		return GetDashboardResult{}, ErrDashboardUnavailable
	}
	return result, nil
}
