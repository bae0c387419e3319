// Package projections holds the read-side queries. Each projection declares
// the narrow backend interface it needs, takes a Query and a Deps struct,
// and returns an explicit Result built for one page.
package projections

import (
	"context"

	"sportlink/internal/domain/event"
	"sportlink/internal/domain/notification"
	"sportlink/internal/domain/participant"
	"sportlink/internal/domain/profile"
)

// EventsBackend defines the event reads used by the catalog projection.
type EventsBackend interface {
	AllEvents(ctx context.Context, token string) ([]event.Event, error)
	FilterEvents(ctx context.Context, token string, criteria event.FilterCriteria) ([]event.Event, error)
}

// EventDetailsBackend defines the reads used by the detail projection.
type EventDetailsBackend interface {
	EventDetails(ctx context.Context, token, eventID string) (event.Event, error)
	Participants(ctx context.Context, token, eventID string) ([]participant.Participant, error)
}

// ProfileBackend defines the profile reads.
type ProfileBackend interface {
	Profile(ctx context.Context, token string) (profile.Profile, error)
}

// MyEventsBackend defines the hosted/attended event reads.
type MyEventsBackend interface {
	HostedEvents(ctx context.Context, token, when string) ([]event.Event, error)
	AttendedEvents(ctx context.Context, token, when string) ([]event.Event, error)
}

// NotificationsBackend defines the notification reads.
type NotificationsBackend interface {
	Notifications(ctx context.Context, token string) ([]notification.Notification, error)
}
