package orchestrators

import (
	"context"
	"log/slog"

	"sportlink/internal/domain/event"
)

// BackendForCreate defines the backend calls needed by CreateEvent.
type BackendForCreate interface {
	CreateEvent(ctx context.Context, token string, e event.Event) (string, error)
}

// CreateEventInput carries the new event's fields.
type CreateEventInput struct {
	Token       string
	Username    string
	Title       string
	Sport       string
	SkillLevel  int
	Address     string
	Latitude    float64
	Longitude   float64
	StartTime   string
	EndTime     string
	Capacity    int
	Description string
}

// CreateEventResult carries the backend's confirmation.
type CreateEventResult struct {
	Message string
}

// CreateEventDeps holds dependencies for CreateEvent.
type CreateEventDeps struct {
	Backend BackendForCreate
	Now     NowFunc
}

// ExecuteCreateEvent validates the form locally and publishes the event.
// The form sends times as RFC 3339 local strings; parsing happens in the
// handler so the orchestrator works with a populated domain event.
// PRE: Viewer is authenticated; times already parsed by the caller
// POST: On success the event exists on the backend with the viewer as
// organizer
func ExecuteCreateEvent(ctx context.Context, input CreateEventInput, times EventTimes, deps CreateEventDeps) (CreateEventResult, error) {
	ev := event.Event{
		Title:       input.Title,
		Sport:       input.Sport,
		SkillLevel:  input.SkillLevel,
		Address:     input.Address,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		StartTime:   times.Start,
		EndTime:     times.End,
		Capacity:    input.Capacity,
		Description: input.Description,
		Organizer:   event.Organizer{Username: input.Username},
	}

	if err := ev.Validate(deps.Now()); err != nil {
		return CreateEventResult{}, err
	}

	msg, err := deps.Backend.CreateEvent(ctx, input.Token, ev)
	if err != nil {
		return CreateEventResult{}, err
	}

	slog.Info("event_action", "action", "created", "title", input.Title, "sport", input.Sport, "username", input.Username)
	return CreateEventResult{Message: msg}, nil
}
