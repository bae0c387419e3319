package projections

import (
	"context"
	"log/slog"
	"time"

	"sportlink/internal/domain/event"
	"sportlink/internal/domain/participant"
)

// GetEventDetailsQuery carries input for the detail projection.
type GetEventDetailsQuery struct {
	Token    string
	Username string
	EventID  string
	Now      time.Time
}

// GetEventDetailsResult carries everything the detail page renders,
// including which actions the viewer may take.
type GetEventDetailsResult struct {
	Event        event.Event
	Participants []participant.Participant
	ViewerJoined bool
	CanJoin      bool
	CanLeave     bool
	CanDelete    bool
	CanRate      bool
}

// GetEventDetailsDeps holds dependencies for the detail projection.
type GetEventDetailsDeps struct {
	Backend EventDetailsBackend
}

// QueryGetEventDetails loads one event with its participant list and
// derives the viewer's available actions. A failed participant fetch
// degrades to an empty list; the event itself must load.
// PRE: Viewer is authenticated
// POST: Action flags are mutually consistent (a joiner cannot also join)
func QueryGetEventDetails(ctx context.Context, query GetEventDetailsQuery, deps GetEventDetailsDeps) (GetEventDetailsResult, error) {
	ev, err := deps.Backend.EventDetails(ctx, query.Token, query.EventID)
	if err != nil {
		return GetEventDetailsResult{}, err
	}

	participants, err := deps.Backend.Participants(ctx, query.Token, query.EventID)
	if err != nil {
		slog.Info("event_details_degraded", "event_id", query.EventID, "reason", "participants_unavailable", "error", err)
		participants = nil
	}

	result := GetEventDetailsResult{
		Event:        ev,
		Participants: participants,
	}

	for _, p := range participants {
		if p.Username == query.Username {
			result.ViewerJoined = true
			break
		}
	}

	isOrganizer := ev.IsOrganizer(query.Username)
	result.CanJoin = !isOrganizer && !result.ViewerJoined && ev.IsJoinable(query.Now)
	result.CanLeave = !isOrganizer && result.ViewerJoined && ev.Status != event.StatusPast
	result.CanDelete = isOrganizer
	result.CanRate = ev.CanRateParticipants(query.Username)

	return result, nil
}
