package event

import (
	"sort"
	"time"
)

// FutureOnly returns the events whose start time is strictly after now,
// preserving input order.
// POST: every returned event satisfies StartTime.After(now)
func FutureOnly(events []Event, now time.Time) []Event {
	future := make([]Event, 0, len(events))
	for _, e := range events {
		if e.IsFuture(now) {
			future = append(future, e)
		}
	}
	return future
}

// SortForViewer orders events in place: events whose sport is in the
// viewer's preferred set come first, then ascending start time within each
// partition. The sort is stable, so events with equal keys keep their
// relative input order.
// PRE: preferred may be nil or empty (no preference partitioning)
func SortForViewer(events []Event, preferred map[string]bool) {
	sort.SliceStable(events, func(i, j int) bool {
		pi, pj := preferred[events[i].Sport], preferred[events[j].Sport]
		if pi != pj {
			return pi
		}
		return events[i].StartTime.Before(events[j].StartTime)
	})
}

// SortByStart orders events in place by ascending start time. This is the
// degraded catalog order used when no preference set could be loaded.
func SortByStart(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartTime.Before(events[j].StartTime)
	})
}
