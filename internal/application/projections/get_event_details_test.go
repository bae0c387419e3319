package projections

import (
	"context"
	"errors"
	"testing"
	"time"

	"sportlink/internal/adapters/api"
	"sportlink/internal/domain/event"
	"sportlink/internal/domain/participant"
)

func detailsBackend(ev event.Event, parts ...participant.Participant) *mockBackend {
	return &mockBackend{
		details:      map[string]event.Event{ev.ID: ev},
		participants: map[string][]participant.Participant{ev.ID: parts},
	}
}

func TestQueryGetEventDetails_ViewerCanJoin(t *testing.T) {
	ev := upcoming("e1", "Soccer", 24*time.Hour)
	ev.Organizer.Username = "host"
	backend := detailsBackend(ev, participant.Participant{Username: "ana"})

	result, err := QueryGetEventDetails(context.Background(), GetEventDetailsQuery{
		Token: "tok", Username: "mira", EventID: "e1", Now: fixedTime,
	}, GetEventDetailsDeps{Backend: backend})
	if err != nil {
		t.Fatalf("QueryGetEventDetails failed: %v", err)
	}

	if !result.CanJoin || result.CanLeave || result.CanDelete || result.CanRate {
		t.Errorf("flags = %+v", result)
	}
	if result.ViewerJoined {
		t.Error("viewer has not joined")
	}
}

func TestQueryGetEventDetails_ViewerJoined(t *testing.T) {
	ev := upcoming("e1", "Soccer", 24*time.Hour)
	ev.Organizer.Username = "host"
	backend := detailsBackend(ev, participant.Participant{Username: "mira"})

	result, err := QueryGetEventDetails(context.Background(), GetEventDetailsQuery{
		Token: "tok", Username: "mira", EventID: "e1", Now: fixedTime,
	}, GetEventDetailsDeps{Backend: backend})
	if err != nil {
		t.Fatalf("QueryGetEventDetails failed: %v", err)
	}

	if result.CanJoin {
		t.Error("a participant cannot join twice")
	}
	if !result.CanLeave {
		t.Error("a participant of an upcoming event can leave")
	}
	if !result.ViewerJoined {
		t.Error("ViewerJoined should be set")
	}
}

func TestQueryGetEventDetails_OrganizerFlags(t *testing.T) {
	ev := upcoming("e1", "Soccer", 24*time.Hour)
	ev.Organizer.Username = "mira"
	backend := detailsBackend(ev)

	result, err := QueryGetEventDetails(context.Background(), GetEventDetailsQuery{
		Token: "tok", Username: "mira", EventID: "e1", Now: fixedTime,
	}, GetEventDetailsDeps{Backend: backend})
	if err != nil {
		t.Fatalf("QueryGetEventDetails failed: %v", err)
	}

	if result.CanJoin || result.CanLeave {
		t.Error("organizers neither join nor leave their own events")
	}
	if !result.CanDelete {
		t.Error("organizers can delete")
	}
	if result.CanRate {
		t.Error("an upcoming event cannot be rated")
	}
}

func TestQueryGetEventDetails_OrganizerCanRatePastEvent(t *testing.T) {
	ev := upcoming("e1", "Soccer", -48*time.Hour)
	ev.Status = event.StatusPast
	ev.Organizer.Username = "mira"
	backend := detailsBackend(ev, participant.Participant{Username: "ana"})

	result, err := QueryGetEventDetails(context.Background(), GetEventDetailsQuery{
		Token: "tok", Username: "mira", EventID: "e1", Now: fixedTime,
	}, GetEventDetailsDeps{Backend: backend})
	if err != nil {
		t.Fatalf("QueryGetEventDetails failed: %v", err)
	}
	if !result.CanRate {
		t.Error("organizer of a past unrated event can rate")
	}
}

func TestQueryGetEventDetails_ParticipantsDegrade(t *testing.T) {
	ev := upcoming("e1", "Soccer", 24*time.Hour)
	ev.Organizer.Username = "host"
	backend := detailsBackend(ev)
	backend.participantsErr = api.ErrServer

	result, err := QueryGetEventDetails(context.Background(), GetEventDetailsQuery{
		Token: "tok", Username: "mira", EventID: "e1", Now: fixedTime,
	}, GetEventDetailsDeps{Backend: backend})
	if err != nil {
		t.Fatalf("participant failure must not fail the page: %v", err)
	}
	if len(result.Participants) != 0 {
		t.Errorf("participants = %+v", result.Participants)
	}
}

func TestQueryGetEventDetails_EventNotFound(t *testing.T) {
	backend := &mockBackend{details: map[string]event.Event{}}

	_, err := QueryGetEventDetails(context.Background(), GetEventDetailsQuery{
		Token: "tok", Username: "mira", EventID: "gone", Now: fixedTime,
	}, GetEventDetailsDeps{Backend: backend})

	if !errors.Is(err, api.ErrInvalid) {
		t.Errorf("err = %v, want ErrInvalid", err)
	}
}
