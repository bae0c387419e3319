package api

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"sportlink/internal/domain/event"
	"sportlink/internal/domain/notification"
	"sportlink/internal/domain/participant"
	"sportlink/internal/domain/profile"
)

// The backend's payloads are loosely typed: sport and skill level arrive
// sometimes as numeric codes and sometimes as names, identifiers as strings
// or numbers, and several fields under legacy names (statusOfEvent,
// maxParticipants, messageOfNotification). Everything is normalized here so
// ambiguous shapes never leak into component logic.

type organizerPayload struct {
	ID       flexID `json:"id"`
	Username string `json:"username"`
}

type participantPayload struct {
	ID         flexID  `json:"id"`
	Username   string  `json:"username"`
	TrustScore float64 `json:"trustScore"`
	Avatar     string  `json:"avatar"`
}

type eventPayload struct {
	ID              flexID               `json:"id"`
	Title           string               `json:"title"`
	Sport           json.RawMessage      `json:"sport"`
	SkillLevel      json.RawMessage      `json:"skillLevel"`
	Address         string               `json:"address"`
	Location        string               `json:"location"`
	Description     string               `json:"description"`
	StartTime       string               `json:"startTime"`
	EndTime         string               `json:"endTime"`
	Capacity        int                  `json:"capacity"`
	MaxParticipants int                  `json:"maxParticipants"`
	Occupied        int                  `json:"occupied"`
	Status          json.RawMessage      `json:"status"`
	StatusOfEvent   *int                 `json:"statusOfEvent"`
	Rated           bool                 `json:"rated"`
	Latitude        float64              `json:"latitude"`
	Longitude       float64              `json:"longitude"`
	Organizer       *organizerPayload    `json:"organizer"`
	Participants    []participantPayload `json:"participants"`
}

type notificationPayload struct {
	ID                    flexID `json:"id"`
	Title                 string `json:"title"`
	Message               string `json:"message"`
	MessageOfNotification string `json:"messageOfNotification"`
	CreatedAt             string `json:"createdAt"`
	Type                  *int   `json:"type"`
	TypeOfNotification    *int   `json:"typeOfNotification"`
	IsRead                bool   `json:"isRead"`
	Event                 *struct {
		ID flexID `json:"id"`
	} `json:"event"`
}

type sportPreferencePayload struct {
	Sport      json.RawMessage `json:"sport"`
	SkillLevel json.RawMessage `json:"skillLevel"`
}

type profilePayload struct {
	Username   string                   `json:"username"`
	Email      string                   `json:"email"`
	Bio        string                   `json:"bio"`
	Avatar     string                   `json:"avatar"`
	TrustScore float64                  `json:"trustScore"`
	Verified   bool                     `json:"verified"`
	Sports     []sportPreferencePayload `json:"sports"`
	Events     []eventPayload           `json:"events"`
}

// flexID accepts a JSON string or number and normalizes to a string.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*f = flexID(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

// decodeSport normalizes a sport field that may be a numeric code or a name.
func decodeSport(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var code int
	if err := json.Unmarshal(raw, &code); err == nil {
		return event.SportByCode(code)
	}
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return ""
	}
	// Canonicalize known names; pass unknown ones through unchanged.
	if c := event.SportCode(name); c >= 0 {
		return event.Sports[c]
	}
	return name
}

// decodeSkill normalizes a skill level that may be a code or a name.
func decodeSkill(raw json.RawMessage) int {
	if len(raw) == 0 {
		return event.SkillBeginner
	}
	var code int
	if err := json.Unmarshal(raw, &code); err == nil {
		return code
	}
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return event.SkillBeginner
	}
	for code, display := range event.SkillLevels {
		if strings.EqualFold(display, name) {
			return code
		}
	}
	return event.SkillBeginner
}

// decodeStatus normalizes a status field that may be a code or a name.
func decodeStatus(raw json.RawMessage, statusOfEvent *int) int {
	if statusOfEvent != nil {
		return *statusOfEvent
	}
	if len(raw) == 0 {
		return event.StatusUpcoming
	}
	var code int
	if err := json.Unmarshal(raw, &code); err == nil {
		return code
	}
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return event.StatusUpcoming
	}
	for code, display := range event.StatusNames {
		if strings.EqualFold(display, name) {
			return code
		}
	}
	return event.StatusUpcoming
}

// parseTime accepts the timestamp layouts the backend has been seen to emit.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	// Epoch seconds as a last resort.
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(n, 0)
	}
	return time.Time{}
}

func (p eventPayload) toDomain() event.Event {
	e := event.Event{
		ID:          string(p.ID),
		Title:       p.Title,
		Sport:       decodeSport(p.Sport),
		SkillLevel:  decodeSkill(p.SkillLevel),
		Address:     p.Address,
		Location:    p.Location,
		Description: p.Description,
		StartTime:   parseTime(p.StartTime),
		EndTime:     parseTime(p.EndTime),
		Capacity:    p.Capacity,
		Occupied:    p.Occupied,
		Status:      decodeStatus(p.Status, p.StatusOfEvent),
		Rated:       p.Rated,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
	}
	if e.Capacity == 0 {
		e.Capacity = p.MaxParticipants
	}
	if p.Organizer != nil {
		e.Organizer = event.Organizer{ID: string(p.Organizer.ID), Username: p.Organizer.Username}
	}
	for _, pp := range p.Participants {
		e.Participants = append(e.Participants, event.ParticipantRef{
			ID:         string(pp.ID),
			Username:   pp.Username,
			TrustScore: pp.TrustScore,
			Avatar:     pp.Avatar,
		})
	}
	if e.Occupied == 0 && len(e.Participants) > 0 {
		e.Occupied = len(e.Participants)
	}
	return e
}

func (p participantPayload) toDomain() participant.Participant {
	return participant.Participant{
		ID:         string(p.ID),
		Username:   p.Username,
		TrustScore: p.TrustScore,
		Avatar:     p.Avatar,
	}
}

func (p notificationPayload) toDomain() notification.Notification {
	n := notification.Notification{
		ID:        string(p.ID),
		Title:     p.Title,
		Message:   p.Message,
		CreatedAt: parseTime(p.CreatedAt),
		Read:      p.IsRead,
	}
	if n.Message == "" {
		n.Message = p.MessageOfNotification
	}
	switch {
	case p.Type != nil:
		n.Type = *p.Type
	case p.TypeOfNotification != nil:
		n.Type = *p.TypeOfNotification
	}
	if p.Event != nil {
		n.EventID = string(p.Event.ID)
	}
	return n
}

func (p profilePayload) toDomain() profile.Profile {
	prof := profile.Profile{
		Username:   p.Username,
		Email:      p.Email,
		Bio:        p.Bio,
		Avatar:     p.Avatar,
		TrustScore: p.TrustScore,
		Verified:   p.Verified,
	}
	for _, s := range p.Sports {
		prof.Sports = append(prof.Sports, profile.SportPreference{
			Sport:      decodeSport(s.Sport),
			SkillLevel: decodeSkill(s.SkillLevel),
		})
	}
	for _, e := range p.Events {
		ev := e.toDomain()
		prof.Events = append(prof.Events, profile.EventRef{
			ID:        ev.ID,
			Title:     ev.Title,
			Sport:     ev.Sport,
			Status:    ev.Status,
			StartTime: e.StartTime,
		})
	}
	return prof
}
