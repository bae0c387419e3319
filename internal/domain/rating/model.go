package rating

import (
	"errors"

	"sportlink/internal/domain/participant"
)

// Rating bounds. Zero means "not yet rated".
const (
	MinRating = 1
	MaxRating = 5
)

// Domain errors
var (
	ErrOutOfRange         = errors.New("rating must be between 1 and 5")
	ErrUnknownParticipant = errors.New("participant is not in the rateable set")
	ErrIncomplete         = errors.New("every participant must be rated before submitting")
)

// labels describes each star value, shown next to the star picker.
var labels = map[int]string{
	1: "Unacceptable - No show or terrible behavior",
	2: "Poor - Major issues with attendance or behavior",
	3: "Average - Some behavioral concerns",
	4: "Good - Reliable participant with minor issues",
	5: "Excellent - Perfect participant, fair play",
}

// Label returns the description for a star value, empty for values outside 1-5.
func Label(value int) string {
	return labels[value]
}

// Sheet collects one rating per rateable participant for a single event.
// Ratings start at 0 (unrated) and submission is all-or-nothing.
type Sheet struct {
	participants []participant.Participant
	ratings      map[string]int
}

// NewSheet initializes a sheet with every rateable participant unrated.
// PRE: rateable is the output of participant.RateableSet
// POST: Rating(u) == 0 for every participant u in the set
func NewSheet(rateable []participant.Participant) *Sheet {
	s := &Sheet{
		participants: rateable,
		ratings:      make(map[string]int, len(rateable)),
	}
	for _, p := range rateable {
		s.ratings[p.Username] = 0
	}
	return s
}

// Participants returns the rateable set in its original order.
func (s *Sheet) Participants() []participant.Participant {
	return s.participants
}

// SetRating stores a star value for a participant.
// PRE: username is in the rateable set, value in [1,5]
// POST: Rating(username) == value
func (s *Sheet) SetRating(username string, value int) error {
	if value < MinRating || value > MaxRating {
		return ErrOutOfRange
	}
	if _, ok := s.ratings[username]; !ok {
		return ErrUnknownParticipant
	}
	s.ratings[username] = value
	return nil
}

// Rating returns the stored value for a participant, 0 when unrated or unknown.
func (s *Sheet) Rating(username string) int {
	return s.ratings[username]
}

// IsStarFilled reports whether star k should render filled for a participant:
// true iff the stored rating is at least k.
func (s *Sheet) IsStarFilled(username string, k int) bool {
	return s.ratings[username] >= k
}

// AllRated reports whether every rateable participant has a rating in [1,5].
func (s *Sheet) AllRated() bool {
	for _, p := range s.participants {
		v := s.ratings[p.Username]
		if v < MinRating || v > MaxRating {
			return false
		}
	}
	return true
}

// RatedCount returns how many participants have been rated so far.
func (s *Sheet) RatedCount() int {
	count := 0
	for _, p := range s.participants {
		if v := s.ratings[p.Username]; v >= MinRating && v <= MaxRating {
			count++
		}
	}
	return count
}

// Payload builds the batched submission body. It refuses an incomplete
// sheet and filters out any stray value outside [1,5] so an invalid entry
// can never reach the network.
// POST: on nil error, the map covers exactly the rateable set
func (s *Sheet) Payload() (map[string]int, error) {
	if !s.AllRated() {
		return nil, ErrIncomplete
	}
	out := make(map[string]int, len(s.ratings))
	for username, v := range s.ratings {
		if v >= MinRating && v <= MaxRating {
			out[username] = v
		}
	}
	return out, nil
}
