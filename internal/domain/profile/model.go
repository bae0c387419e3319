package profile

import (
	"errors"
	"strings"

	"sportlink/internal/domain/event"
)

// Domain errors
var (
	ErrUnknownSport   = errors.New("sport is not one of the supported sports")
	ErrInvalidSkill   = errors.New("skill level must be beginner, intermediate or advanced")
	ErrSportNotInList = errors.New("sport is not in the preference list")
)

// SportPreference is one (sport, skill level) pair in a user's profile.
// A sport appears at most once in the list.
type SportPreference struct {
	Sport      string
	SkillLevel int
}

// EventRef is a hosted or attended event summary on the profile.
type EventRef struct {
	ID        string
	Title     string
	Sport     string
	Status    int
	StartTime string
}

// Profile holds the viewer's user profile.
type Profile struct {
	Username   string
	Email      string
	Bio        string
	Avatar     string
	TrustScore float64
	Verified   bool
	Sports     []SportPreference // ordered, sport unique
	Events     []EventRef
}

// PreferredSports returns the set of sport codes in the preference list,
// used by the catalog comparator.
func (p Profile) PreferredSports() map[string]bool {
	set := make(map[string]bool, len(p.Sports))
	for _, s := range p.Sports {
		set[s.Sport] = true
	}
	return set
}

// AddSport appends or replaces a sport preference, keeping the
// unique-per-sport invariant and the list order.
// POST: exactly one entry for the sport exists, at its previous position
// when replacing
func (p *Profile) AddSport(sport string, skillLevel int) error {
	if !event.IsKnownSport(sport) {
		return ErrUnknownSport
	}
	if _, ok := event.SkillLevels[skillLevel]; !ok {
		return ErrInvalidSkill
	}
	// Store the canonical spelling regardless of how the form spelled it.
	sport = event.SportByCode(event.SportCode(sport))
	for i, s := range p.Sports {
		if strings.EqualFold(s.Sport, sport) {
			p.Sports[i].SkillLevel = skillLevel
			return nil
		}
	}
	p.Sports = append(p.Sports, SportPreference{Sport: sport, SkillLevel: skillLevel})
	return nil
}

// RemoveSport removes a sport from the preference list.
func (p *Profile) RemoveSport(sport string) error {
	for i, s := range p.Sports {
		if strings.EqualFold(s.Sport, sport) {
			p.Sports = append(p.Sports[:i], p.Sports[i+1:]...)
			return nil
		}
	}
	return ErrSportNotInList
}
