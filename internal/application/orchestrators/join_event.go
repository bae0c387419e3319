package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"sportlink/internal/adapters/api"
	"sportlink/internal/domain/event"
)

// BackendForJoin defines the backend calls needed by JoinEvent.
type BackendForJoin interface {
	EventDetails(ctx context.Context, token, eventID string) (event.Event, error)
	JoinEvent(ctx context.Context, token, eventID string) error
}

// JoinEventInput carries input for the join orchestrator.
type JoinEventInput struct {
	Token    string
	Username string
	EventID  string
}

// JoinEventResult carries the refreshed event after a successful join.
type JoinEventResult struct {
	Event event.Event
}

// JoinEventDeps holds dependencies for JoinEvent.
type JoinEventDeps struct {
	Backend BackendForJoin
	Now     NowFunc
}

var ErrAlreadyJoined = errors.New("you already joined this event")

// ExecuteJoinEvent adds the viewer to an event's participant list.
// A full or already-started event is refused locally before any write;
// the backend remains the authority and may still refuse a join that
// looked possible from stale local state.
// PRE: Viewer is authenticated
// POST: On success the viewer is a participant and the returned event
// reflects the new occupancy
func ExecuteJoinEvent(ctx context.Context, input JoinEventInput, deps JoinEventDeps) (JoinEventResult, error) {
	ev, err := deps.Backend.EventDetails(ctx, input.Token, input.EventID)
	if err != nil {
		return JoinEventResult{}, err
	}

	if ev.IsOrganizer(input.Username) {
		return JoinEventResult{}, event.ErrOrganizerCannotJoin
	}
	if ev.IsFull() {
		slog.Info("event_action", "action", "join_refused", "event_id", input.EventID, "reason", "full")
		return JoinEventResult{}, event.ErrEventFull
	}
	if !ev.IsJoinable(deps.Now()) {
		slog.Info("event_action", "action", "join_refused", "event_id", input.EventID, "reason", "not_joinable")
		return JoinEventResult{}, event.ErrEventNotJoinable
	}

	if err := deps.Backend.JoinEvent(ctx, input.Token, input.EventID); err != nil {
		switch api.ConflictCause(err) {
		case api.CauseEventFull:
			return JoinEventResult{}, event.ErrEventFull
		case api.CauseAlreadyJoined:
			return JoinEventResult{}, ErrAlreadyJoined
		}
		return JoinEventResult{}, err
	}

	slog.Info("event_action", "action", "joined", "event_id", input.EventID, "username", input.Username)

	// Refresh so the page shows the authoritative occupancy.
	refreshed, err := deps.Backend.EventDetails(ctx, input.Token, input.EventID)
	if err != nil {
		// The join itself succeeded; fall back to the pre-join snapshot.
		refreshed = ev
		refreshed.Occupied++
	}
	return JoinEventResult{Event: refreshed}, nil
}
