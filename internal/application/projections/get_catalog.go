package projections

import (
	"context"
	"log/slog"
	"time"

	"sportlink/internal/domain/event"
)

// GetCatalogQuery carries input for the catalog projection.
type GetCatalogQuery struct {
	Token    string
	Criteria event.FilterCriteria
	Now      time.Time
}

// GetCatalogResult carries the ordered upcoming events for the catalog page.
// Degraded is set when the viewer's sport preferences could not be loaded
// and the list fell back to plain chronological order.
type GetCatalogResult struct {
	Events   []event.Event
	Filtered bool
	Degraded bool
}

// GetCatalogDeps holds dependencies for the catalog projection.
type GetCatalogDeps struct {
	Events  EventsBackend
	Profile ProfileBackend
}

// QueryGetCatalog builds the event catalog: upcoming events only, the
// viewer's favourite sports first, then by start time. A failed preference
// lookup degrades the ordering silently rather than failing the page.
// PRE: Viewer is authenticated
// POST: Returns future events sorted for the viewer
func QueryGetCatalog(ctx context.Context, query GetCatalogQuery, deps GetCatalogDeps) (GetCatalogResult, error) {
	var (
		events []event.Event
		err    error
	)
	filtered := query.Criteria.HasAny()
	if filtered {
		events, err = deps.Events.FilterEvents(ctx, query.Token, query.Criteria)
	} else {
		events, err = deps.Events.AllEvents(ctx, query.Token)
	}
	if err != nil {
		return GetCatalogResult{}, err
	}

	events = event.FutureOnly(events, query.Now)

	result := GetCatalogResult{Filtered: filtered}

	prof, err := deps.Profile.Profile(ctx, query.Token)
	if err != nil {
		slog.Info("catalog_degraded", "reason", "preferences_unavailable", "error", err)
		event.SortByStart(events)
		result.Degraded = true
	} else {
		event.SortForViewer(events, prof.PreferredSports())
	}

	result.Events = events
	return result, nil
}
