package api

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"sportlink/internal/domain/event"
	"sportlink/internal/domain/notification"
)

// TestDecodeSport tests normalization of numeric and named sport fields.
func TestDecodeSport(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "numeric code", raw: `0`, want: "Soccer"},
		{name: "numeric code tennis", raw: `6`, want: "Tennis"},
		{name: "out of range code", raw: `99`, want: ""},
		{name: "canonical name", raw: `"Tennis"`, want: "Tennis"},
		{name: "name with odd casing", raw: `"ice hockey"`, want: "Ice Hockey"},
		{name: "unknown name passes through", raw: `"Korfball"`, want: "Korfball"},
		{name: "missing", raw: ``, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw json.RawMessage
			if tt.raw != "" {
				raw = json.RawMessage(tt.raw)
			}
			if got := decodeSport(raw); got != tt.want {
				t.Errorf("decodeSport(%s) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

// TestDecodeSkill tests normalization of skill level fields.
func TestDecodeSkill(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "numeric", raw: `2`, want: event.SkillAdvanced},
		{name: "name", raw: `"Intermediate"`, want: event.SkillIntermediate},
		{name: "lowercase name", raw: `"beginner"`, want: event.SkillBeginner},
		{name: "unknown name defaults", raw: `"ninja"`, want: event.SkillBeginner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decodeSkill(json.RawMessage(tt.raw)); got != tt.want {
				t.Errorf("decodeSkill(%s) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

// TestEventPayload_ToDomain tests full event normalization from a loose body.
func TestEventPayload_ToDomain(t *testing.T) {
	raw := `{
		"id": 17,
		"title": "Evening Pick-up Game",
		"sport": 1,
		"skillLevel": "Advanced",
		"address": "Community Court",
		"startTime": "2026-04-01T18:00:00Z",
		"endTime": "2026-04-01T20:00:00Z",
		"maxParticipants": 10,
		"statusOfEvent": 2,
		"rated": false,
		"organizer": {"id": "u1", "username": "marek"},
		"participants": [
			{"id": 3, "username": "alice", "trustScore": 4.5},
			{"id": 4, "username": "bob"}
		]
	}`

	var payload eventPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	e := payload.toDomain()

	if e.ID != "17" {
		t.Errorf("ID = %q, want 17", e.ID)
	}
	if e.Sport != "Basketball" {
		t.Errorf("Sport = %q, want Basketball", e.Sport)
	}
	if e.SkillLevel != event.SkillAdvanced {
		t.Errorf("SkillLevel = %d, want advanced", e.SkillLevel)
	}
	if e.Capacity != 10 {
		t.Errorf("Capacity = %d, want 10 (from maxParticipants)", e.Capacity)
	}
	if e.Occupied != 2 {
		t.Errorf("Occupied = %d, want 2 (from embedded participants)", e.Occupied)
	}
	if e.Status != event.StatusPast {
		t.Errorf("Status = %d, want past", e.Status)
	}
	if e.Organizer.Username != "marek" {
		t.Errorf("Organizer = %q, want marek", e.Organizer.Username)
	}
	want := time.Date(2026, 4, 1, 18, 0, 0, 0, time.UTC)
	if !e.StartTime.Equal(want) {
		t.Errorf("StartTime = %v, want %v", e.StartTime, want)
	}
	if e.FreeSlots() != 8 {
		t.Errorf("FreeSlots() = %d, want 8", e.FreeSlots())
	}
}

// TestNotificationPayload_ToDomain tests legacy field name normalization.
func TestNotificationPayload_ToDomain(t *testing.T) {
	raw := `{
		"id": "n1",
		"title": "Rate your teammates",
		"messageOfNotification": "The event has ended, rate the participants.",
		"typeOfNotification": 4,
		"isRead": false,
		"event": {"id": 42}
	}`

	var payload notificationPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	n := payload.toDomain()

	if n.Type != notification.TypeRateParticipants {
		t.Errorf("Type = %d, want rate_participants", n.Type)
	}
	if n.Message == "" {
		t.Error("Message should fall back to messageOfNotification")
	}
	if n.EventID != "42" {
		t.Errorf("EventID = %q, want 42", n.EventID)
	}

	dest := n.Route()
	if dest.Kind != notification.DestRateParticipants || dest.EventID != "42" {
		t.Errorf("Route() = %+v, want rating view for event 42", dest)
	}
}

// TestClassify tests the status-to-taxonomy mapping.
func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantKind  error
		wantCause string
	}{
		{name: "401", status: 401, wantKind: ErrUnauthenticated},
		{name: "403", status: 403, wantKind: ErrNotPermitted},
		{name: "409 already joined", status: 409, body: "User already joined this event", wantKind: ErrConflict, wantCause: CauseAlreadyJoined},
		{name: "400 event full", status: 400, body: "Event is full", wantKind: ErrConflict, wantCause: CauseEventFull},
		{name: "400 duplicate email", status: 400, body: "Email already in use", wantKind: ErrConflict, wantCause: CauseDuplicateUser},
		{name: "400 plain validation", status: 400, body: "Title is required", wantKind: ErrInvalid},
		{name: "500", status: 500, body: "boom", wantKind: ErrServer},
		{name: "503", status: 503, wantKind: ErrServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify(tt.status, tt.body)
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("classify() did not return *Error: %v", err)
			}
			if apiErr.kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", apiErr.kind, tt.wantKind)
			}
			if apiErr.Cause != tt.wantCause {
				t.Errorf("Cause = %q, want %q", apiErr.Cause, tt.wantCause)
			}
		})
	}
}

// TestError_UserMessage tests technical-payload sanitization.
func TestError_UserMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "plain sentence passes", body: "Event is full", want: "Event is full"},
		{name: "json object suppressed", body: `{"timestamp":"...","status":500}`, want: ""},
		{name: "stack trace suppressed", body: "java.lang.NullPointerException at ...", want: ""},
		{name: "html suppressed", body: "<html><body>502</body></html>", want: ""},
		{name: "empty body", body: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Error{Status: 500, Body: tt.body, kind: ErrServer}
			if got := e.UserMessage(); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
