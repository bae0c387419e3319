package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"sportlink/internal/domain/event"
)

// BackendForDelete defines the backend calls needed by DeleteEvent.
type BackendForDelete interface {
	EventDetails(ctx context.Context, token, eventID string) (event.Event, error)
	DeleteEvent(ctx context.Context, token, eventID string) error
}

// DeleteEventInput carries input for the delete orchestrator.
type DeleteEventInput struct {
	Token    string
	Username string
	EventID  string
}

// DeleteEventDeps holds dependencies for DeleteEvent.
type DeleteEventDeps struct {
	Backend BackendForDelete
}

var ErrNotOrganizer = errors.New("only the organizer can do this")

// ExecuteDeleteEvent removes an event the viewer organizes. The organizer
// check runs locally first; the backend enforces it authoritatively.
// PRE: Viewer is authenticated
// POST: The event no longer exists on the backend
func ExecuteDeleteEvent(ctx context.Context, input DeleteEventInput, deps DeleteEventDeps) error {
	ev, err := deps.Backend.EventDetails(ctx, input.Token, input.EventID)
	if err != nil {
		return err
	}
	if !ev.IsOrganizer(input.Username) {
		slog.Info("event_action", "action", "delete_refused", "event_id", input.EventID, "username", input.Username)
		return ErrNotOrganizer
	}

	if err := deps.Backend.DeleteEvent(ctx, input.Token, input.EventID); err != nil {
		return err
	}

	slog.Info("event_action", "action", "deleted", "event_id", input.EventID, "username", input.Username)
	return nil
}
