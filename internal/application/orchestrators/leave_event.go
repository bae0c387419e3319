package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"sportlink/internal/adapters/api"
	"sportlink/internal/domain/event"
)

// BackendForLeave defines the backend calls needed by LeaveEvent.
type BackendForLeave interface {
	LeaveEvent(ctx context.Context, token, eventID string) error
	EventDetails(ctx context.Context, token, eventID string) (event.Event, error)
}

// LeaveEventInput carries input for the leave orchestrator.
type LeaveEventInput struct {
	Token    string
	Username string
	EventID  string
}

// LeaveEventResult reports what remains after leaving. When the viewer was
// the sole participant the backend may remove the event entirely; the
// handler then navigates back to the catalog instead of the detail page.
type LeaveEventResult struct {
	EventRemoved bool
	Event        event.Event
}

// LeaveEventDeps holds dependencies for LeaveEvent.
type LeaveEventDeps struct {
	Backend BackendForLeave
}

// ExecuteLeaveEvent removes the viewer from an event's participant list.
// PRE: Viewer is authenticated
// POST: Viewer is no longer a participant; EventRemoved is set when the
// event no longer exists afterwards
func ExecuteLeaveEvent(ctx context.Context, input LeaveEventInput, deps LeaveEventDeps) (LeaveEventResult, error) {
	if err := deps.Backend.LeaveEvent(ctx, input.Token, input.EventID); err != nil {
		return LeaveEventResult{}, err
	}

	slog.Info("event_action", "action", "left", "event_id", input.EventID, "username", input.Username)

	refreshed, err := deps.Backend.EventDetails(ctx, input.Token, input.EventID)
	if err != nil {
		if errors.Is(err, api.ErrInvalid) || errors.Is(err, api.ErrNotPermitted) {
			// The event vanished with its last participant.
			return LeaveEventResult{EventRemoved: true}, nil
		}
		// The leave succeeded; a transient refresh failure says nothing
		// about the event's existence, so don't report it removed.
		slog.Info("event_action", "action", "leave_refresh_failed", "event_id", input.EventID, "error", err)
		return LeaveEventResult{}, nil
	}
	return LeaveEventResult{Event: refreshed}, nil
}
