package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"sportlink/internal/domain/event"
	"sportlink/internal/domain/participant"
)

// AllEvents fetches the full event catalog.
// GET /event/all -> Event[]
func (c *Client) AllEvents(ctx context.Context, token string) ([]event.Event, error) {
	var payload []eventPayload
	if err := c.getJSON(ctx, "/event/all", token, nil, &payload); err != nil {
		return nil, err
	}
	return eventsToDomain(payload), nil
}

// FilterEvents fetches events matching the server-side filter criteria.
// GET /event/filter?sports=&skillLevels=&startTimeAfter=&endTimeBefore=&freeSlots=
func (c *Client) FilterEvents(ctx context.Context, token string, criteria event.FilterCriteria) ([]event.Event, error) {
	var payload []eventPayload
	if err := c.getJSON(ctx, "/event/filter", token, criteria.Query(), &payload); err != nil {
		return nil, err
	}
	return eventsToDomain(payload), nil
}

// EventDetails fetches one event with its embedded participants.
// GET /event/details/{id}
func (c *Client) EventDetails(ctx context.Context, token, eventID string) (event.Event, error) {
	var payload eventPayload
	if err := c.getJSON(ctx, "/event/details/"+url.PathEscape(eventID), token, nil, &payload); err != nil {
		return event.Event{}, err
	}
	return payload.toDomain(), nil
}

// HostedEvents fetches events the viewer organizes.
// GET /event/hosted/upcoming | /event/hosted/past
func (c *Client) HostedEvents(ctx context.Context, token, when string) ([]event.Event, error) {
	var payload []eventPayload
	if err := c.getJSON(ctx, "/event/hosted/"+when, token, nil, &payload); err != nil {
		return nil, err
	}
	return eventsToDomain(payload), nil
}

// AttendedEvents fetches events the viewer attends.
// GET /event/attended/upcoming | /event/attended/past
func (c *Client) AttendedEvents(ctx context.Context, token, when string) ([]event.Event, error) {
	var payload []eventPayload
	if err := c.getJSON(ctx, "/event/attended/"+when, token, nil, &payload); err != nil {
		return nil, err
	}
	return eventsToDomain(payload), nil
}

// CreateEvent submits a new event. The success body may be the created
// event or a plain-text confirmation; it is returned opaque either way and
// the caller reloads what it needs.
// POST /event/create
func (c *Client) CreateEvent(ctx context.Context, token string, e event.Event) (string, error) {
	body := map[string]any{
		"title":      e.Title,
		"sport":      event.SportCode(e.Sport),
		"address":    e.Address,
		"skillLevel": e.SkillLevel,
		"startTime":  e.StartTime.UTC().Format(time.RFC3339),
		"endTime":    e.EndTime.UTC().Format(time.RFC3339),
		"capacity":   e.Capacity,
		"latitude":   e.Latitude,
		"longitude":  e.Longitude,
	}
	return c.text(ctx, http.MethodPost, "/event/create", token, nil, body)
}

// DeleteEvent removes an event. The backend answers 403 for anyone but the
// organizer.
// DELETE /event/delete/{id} -> text
func (c *Client) DeleteEvent(ctx context.Context, token, eventID string) error {
	_, err := c.text(ctx, http.MethodDelete, "/event/delete/"+url.PathEscape(eventID), token, nil, nil)
	return err
}

// JoinEvent adds the viewer to an event's participant list.
// POST /user/event/join?eventId= -> text
func (c *Client) JoinEvent(ctx context.Context, token, eventID string) error {
	q := url.Values{"eventId": {eventID}}
	_, err := c.text(ctx, http.MethodPost, "/user/event/join", token, q, nil)
	return err
}

// LeaveEvent removes the viewer from an event's participant list.
// DELETE /user/event/leave?eventId= -> text
func (c *Client) LeaveEvent(ctx context.Context, token, eventID string) error {
	q := url.Values{"eventId": {eventID}}
	_, err := c.text(ctx, http.MethodDelete, "/user/event/leave", token, q, nil)
	return err
}

// Participants fetches the participant list of an event.
// GET /event/{id}/participants -> Participant[]
func (c *Client) Participants(ctx context.Context, token, eventID string) ([]participant.Participant, error) {
	var payload []participantPayload
	if err := c.getJSON(ctx, "/event/"+url.PathEscape(eventID)+"/participants", token, nil, &payload); err != nil {
		return nil, err
	}
	out := make([]participant.Participant, 0, len(payload))
	for _, p := range payload {
		out = append(out, p.toDomain())
	}
	return out, nil
}

func eventsToDomain(payload []eventPayload) []event.Event {
	out := make([]event.Event, 0, len(payload))
	for _, p := range payload {
		out = append(out, p.toDomain())
	}
	return out
}
