package event_test

import (
	"testing"
	"time"

	"sportlink/internal/domain/event"
)

func catalogEvent(id, sport string, start time.Time) event.Event {
	return event.Event{ID: id, Title: id, Sport: sport, StartTime: start}
}

// TestFutureOnly tests that only events starting strictly after now survive.
func TestFutureOnly(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	events := []event.Event{
		catalogEvent("past", "Soccer", now.Add(-time.Hour)),
		catalogEvent("exactly-now", "Soccer", now),
		catalogEvent("future", "Soccer", now.Add(time.Minute)),
	}

	got := event.FutureOnly(events, now)
	if len(got) != 1 || got[0].ID != "future" {
		t.Fatalf("FutureOnly() = %v, want only the future event", ids(got))
	}
}

// TestSortForViewer tests the two-key preferred-first comparator.
func TestSortForViewer(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		events    []event.Event
		preferred map[string]bool
		want      []string
	}{
		{
			name: "preferred sport sorts before earlier non-preferred",
			events: []event.Event{
				catalogEvent("A", "Tennis", now.Add(24*time.Hour)),
				catalogEvent("B", "Soccer", now.Add(time.Hour)),
			},
			preferred: map[string]bool{"Soccer": true},
			want:      []string{"B", "A"},
		},
		{
			name: "ascending start within the preferred partition",
			events: []event.Event{
				catalogEvent("late", "Soccer", now.Add(48*time.Hour)),
				catalogEvent("early", "Soccer", now.Add(time.Hour)),
				catalogEvent("other", "Golf", now.Add(time.Minute)),
			},
			preferred: map[string]bool{"Soccer": true},
			want:      []string{"early", "late", "other"},
		},
		{
			name: "no preferences keeps plain start order",
			events: []event.Event{
				catalogEvent("late", "Tennis", now.Add(2*time.Hour)),
				catalogEvent("early", "Soccer", now.Add(time.Hour)),
			},
			preferred: nil,
			want:      []string{"early", "late"},
		},
		{
			name: "identical keys keep relative input order",
			events: []event.Event{
				catalogEvent("first", "Soccer", now.Add(time.Hour)),
				catalogEvent("second", "Soccer", now.Add(time.Hour)),
				catalogEvent("third", "Soccer", now.Add(time.Hour)),
			},
			preferred: map[string]bool{"Soccer": true},
			want:      []string{"first", "second", "third"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := append([]event.Event(nil), tt.events...)
			event.SortForViewer(events, tt.preferred)
			got := ids(events)
			if len(got) != len(tt.want) {
				t.Fatalf("SortForViewer() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("SortForViewer() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

// TestSortByStart tests the degraded-mode order.
func TestSortByStart(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	events := []event.Event{
		catalogEvent("c", "Golf", now.Add(3*time.Hour)),
		catalogEvent("a", "Tennis", now.Add(time.Hour)),
		catalogEvent("b", "Soccer", now.Add(2*time.Hour)),
	}
	event.SortByStart(events)

	want := []string{"a", "b", "c"}
	for i, id := range ids(events) {
		if id != want[i] {
			t.Fatalf("SortByStart() = %v, want %v", ids(events), want)
		}
	}
}

func ids(events []event.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}
