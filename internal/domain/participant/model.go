package participant

// Participant is one user attending an event.
type Participant struct {
	ID         string
	Username   string
	TrustScore float64
	Avatar     string
}

// RateableSet returns the participants eligible to receive a rating for an
// event: everyone except the organizer and the viewer, deduplicated by
// username, in input order. The backend usually excludes the organizer
// already; filtering again here keeps the invariant even when it does not.
func RateableSet(all []Participant, organizerUsername, viewerUsername string) []Participant {
	seen := make(map[string]bool, len(all))
	out := make([]Participant, 0, len(all))
	for _, p := range all {
		if p.Username == "" || p.Username == organizerUsername || p.Username == viewerUsername {
			continue
		}
		if seen[p.Username] {
			continue
		}
		seen[p.Username] = true
		out = append(out, p)
	}
	return out
}
