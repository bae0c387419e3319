package projections

import (
	"context"
	"errors"

	"sportlink/internal/domain/event"
	"sportlink/internal/domain/participant"
	"sportlink/internal/domain/rating"
)

// GetRateableParticipantsQuery carries input for the rating-sheet
// projection.
type GetRateableParticipantsQuery struct {
	Token    string
	Username string
	EventID  string
}

// GetRateableParticipantsResult carries the event and an empty rating
// sheet covering every rateable participant.
type GetRateableParticipantsResult struct {
	Event event.Event
	Sheet *rating.Sheet
}

// GetRateableParticipantsDeps holds dependencies for the projection.
type GetRateableParticipantsDeps struct {
	Backend EventDetailsBackend
}

var ErrNotRateable = errors.New("this event cannot be rated by you")

// QueryGetRateableParticipants prepares the rating page: only the
// organizer of a finished, not-yet-rated event gets a sheet; everyone
// else is turned away before any participant data loads.
// PRE: Viewer is authenticated
// POST: The sheet excludes the organizer and the viewer
func QueryGetRateableParticipants(ctx context.Context, query GetRateableParticipantsQuery, deps GetRateableParticipantsDeps) (GetRateableParticipantsResult, error) {
	ev, err := deps.Backend.EventDetails(ctx, query.Token, query.EventID)
	if err != nil {
		return GetRateableParticipantsResult{}, err
	}
	if !ev.CanRateParticipants(query.Username) {
		return GetRateableParticipantsResult{}, ErrNotRateable
	}

	participants, err := deps.Backend.Participants(ctx, query.Token, query.EventID)
	if err != nil {
		return GetRateableParticipantsResult{}, err
	}

	rateable := participant.RateableSet(participants, ev.Organizer.Username, query.Username)
	return GetRateableParticipantsResult{
		Event: ev,
		Sheet: rating.NewSheet(rateable),
	}, nil
}
