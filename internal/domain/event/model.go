package event

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxTitleLength   = 120
	MaxAddressLength = 200
)

// Status codes for an event's lifecycle. The backend clock owns transitions;
// the client only reads them.
const (
	StatusUpcoming = 0
	StatusOngoing  = 1
	StatusPast     = 2
	StatusCanceled = 3
)

// SkillLevel codes.
const (
	SkillBeginner     = 0
	SkillIntermediate = 1
	SkillAdvanced     = 2
)

// Sports lists every sport code the platform knows, in canonical order.
// The index of a sport in this list is its numeric wire code.
var Sports = []string{
	"Soccer", "Basketball", "Futsal", "Florball", "Ice Hockey",
	"Volleyball", "Tennis", "Golf", "Table Tennis", "Badminton",
	"Running", "Swimming", "Handball", "Chess", "Cycling",
	"Frisbee", "Hiking", "Padel", "Foot Volley", "Bowling", "Darts",
}

// SkillLevels maps skill codes to display names.
var SkillLevels = map[int]string{
	SkillBeginner:     "Beginner",
	SkillIntermediate: "Intermediate",
	SkillAdvanced:     "Advanced",
}

// StatusNames maps status codes to display names.
var StatusNames = map[int]string{
	StatusUpcoming: "Upcoming",
	StatusOngoing:  "Ongoing",
	StatusPast:     "Past",
	StatusCanceled: "Canceled",
}

// Domain errors
var (
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrTitleTooLong     = errors.New("title cannot exceed 120 characters")
	ErrEmptyAddress     = errors.New("address cannot be empty")
	ErrUnknownSport     = errors.New("sport is not one of the supported sports")
	ErrInvalidSkill     = errors.New("skill level must be beginner, intermediate or advanced")
	ErrInvalidCapacity  = errors.New("capacity must be at least 1")
	ErrEndBeforeStart   = errors.New("end time must be after start time")
	ErrStartInPast      = errors.New("start time must be in the future")
	ErrEventFull        = errors.New("event has no free slots")
	ErrEventNotJoinable = errors.New("event can no longer be joined")

	ErrOrganizerCannotJoin = errors.New("organizers attend their own events implicitly")
)

// Organizer identifies the participant who created an event.
type Organizer struct {
	ID       string
	Username string
}

// ParticipantRef is the embedded participant shape carried on event details.
type ParticipantRef struct {
	ID         string
	Username   string
	TrustScore float64
	Avatar     string
}

// Event holds state for one sporting event as seen by the client.
type Event struct {
	ID           string
	Title        string
	Sport        string // canonical name from Sports
	SkillLevel   int
	Address      string
	Location     string // free-text location label
	StartTime    time.Time
	EndTime      time.Time
	Capacity     int
	Occupied     int
	Organizer    Organizer
	Status       int
	Rated        bool
	Latitude     float64
	Longitude    float64
	Description  string
	Participants []ParticipantRef
}

// FreeSlots returns capacity minus occupied count, never negative.
// A consistent backend keeps occupied <= capacity; a stale read must not
// produce a negative number in the UI.
func (e Event) FreeSlots() int {
	free := e.Capacity - e.Occupied
	if free < 0 {
		return 0
	}
	return free
}

// IsFull reports whether the event has no free slots.
func (e Event) IsFull() bool {
	return e.Occupied >= e.Capacity
}

// IsFuture reports whether the event starts strictly after now.
func (e Event) IsFuture(now time.Time) bool {
	return e.StartTime.After(now)
}

// IsJoinable reports whether a join attempt is worth sending at all.
// A full, started or canceled event is refused locally without a network call.
func (e Event) IsJoinable(now time.Time) bool {
	return !e.IsFull() && e.IsFuture(now) && e.Status == StatusUpcoming
}

// IsOrganizer reports whether the given username created this event.
func (e Event) IsOrganizer(username string) bool {
	return username != "" && e.Organizer.Username == username
}

// CanRateParticipants reports whether the given viewer may open the rating
// workflow for this event: organizer, event finished, not yet rated.
// Pure function of loaded state; re-evaluate after every reload.
func (e Event) CanRateParticipants(username string) bool {
	return e.IsOrganizer(username) && e.Status == StatusPast && !e.Rated
}

// SkillLevelName returns the display name for the event's skill level.
func (e Event) SkillLevelName() string {
	if name, ok := SkillLevels[e.SkillLevel]; ok {
		return name
	}
	return "Any"
}

// StatusName returns the display name for the event's status.
func (e Event) StatusName() string {
	if name, ok := StatusNames[e.Status]; ok {
		return name
	}
	return "Unknown"
}

// Validate checks a locally created event before it is sent to the backend.
// PRE: Event struct is populated from the create form
// POST: Returns nil if valid, first violated rule otherwise
func (e Event) Validate(now time.Time) error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if len(e.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if strings.TrimSpace(e.Address) == "" {
		return ErrEmptyAddress
	}
	if !IsKnownSport(e.Sport) {
		return ErrUnknownSport
	}
	if _, ok := SkillLevels[e.SkillLevel]; !ok {
		return ErrInvalidSkill
	}
	if e.Capacity < 1 {
		return ErrInvalidCapacity
	}
	if !e.StartTime.After(now) {
		return ErrStartInPast
	}
	if !e.EndTime.After(e.StartTime) {
		return ErrEndBeforeStart
	}
	return nil
}

// IsKnownSport reports whether name matches one of the supported sports.
// Matching is case-insensitive, like SportCode.
func IsKnownSport(name string) bool {
	return SportCode(name) >= 0
}

// SportByCode resolves a numeric wire code to its canonical sport name.
// Unknown codes resolve to the empty string.
func SportByCode(code int) string {
	if code < 0 || code >= len(Sports) {
		return ""
	}
	return Sports[code]
}

// SportCode resolves a canonical sport name to its numeric wire code.
// Matching is case-insensitive. Unknown names resolve to -1.
func SportCode(name string) int {
	for i, s := range Sports {
		if strings.EqualFold(s, name) {
			return i
		}
	}
	return -1
}
