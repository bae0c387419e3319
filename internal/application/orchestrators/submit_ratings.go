package orchestrators

import (
	"context"
	"log/slog"

	"sportlink/internal/domain/event"
	"sportlink/internal/domain/rating"
)

// BackendForRatings defines the backend calls needed by SubmitRatings.
type BackendForRatings interface {
	EventDetails(ctx context.Context, token, eventID string) (event.Event, error)
	SubmitRatings(ctx context.Context, token, eventID string, ratings map[string]int) error
}

// SubmitRatingsInput carries the completed rating sheet for an event.
type SubmitRatingsInput struct {
	Token    string
	Username string
	EventID  string
	Sheet    *rating.Sheet
}

// SubmitRatingsDeps holds dependencies for SubmitRatings.
type SubmitRatingsDeps struct {
	Backend BackendForRatings
}

// ExecuteSubmitRatings sends the batched ratings for a finished event.
// Submission is all-or-nothing: every rateable participant must carry a
// star value, and the whole sheet goes out in one request. Ratings are
// final; there is no edit path afterwards.
// PRE: Viewer organized the event, the event is past and not yet rated
// POST: On success the backend marks the event rated
func ExecuteSubmitRatings(ctx context.Context, input SubmitRatingsInput, deps SubmitRatingsDeps) error {
	ev, err := deps.Backend.EventDetails(ctx, input.Token, input.EventID)
	if err != nil {
		return err
	}
	if !ev.CanRateParticipants(input.Username) {
		slog.Info("rating_event", "event", "submit_refused", "event_id", input.EventID, "username", input.Username)
		return ErrNotOrganizer
	}

	payload, err := input.Sheet.Payload()
	if err != nil {
		return err
	}

	if err := deps.Backend.SubmitRatings(ctx, input.Token, input.EventID, payload); err != nil {
		return err
	}

	slog.Info("rating_event", "event", "submitted", "event_id", input.EventID, "count", len(payload))
	return nil
}
