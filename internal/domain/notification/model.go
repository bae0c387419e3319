package notification

import "time"

// Type codes for notifications. The wire format carries these as integers.
const (
	TypeGeneric          = 0
	TypeEventUpdate      = 1
	TypeEventCanceled    = 2
	TypeEventReminder    = 3
	TypeRateParticipants = 4
)

// Notification is one entry in the user's notification list.
// The read flag is monotonic: once true it never reverts.
type Notification struct {
	ID        string
	Title     string
	Message   string
	CreatedAt time.Time
	Type      int
	Read      bool
	EventID   string // optional linked event
}

// DestinationKind identifies where a selected notification navigates to.
type DestinationKind int

const (
	// DestLanding is the default landing view when no event is linked.
	DestLanding DestinationKind = iota
	// DestEventDetail is the detail view of the linked event.
	DestEventDetail
	// DestRateParticipants is the rating workflow for the linked event.
	DestRateParticipants
)

// Destination is the routing result for a selected notification.
type Destination struct {
	Kind    DestinationKind
	EventID string
}

// Route decides where selecting this notification navigates. It is a pure
// dispatch on the type code with a final landing fallback; marking the
// notification read happens separately and never blocks navigation.
func (n Notification) Route() Destination {
	switch {
	case n.Type == TypeRateParticipants && n.EventID != "":
		return Destination{Kind: DestRateParticipants, EventID: n.EventID}
	case n.EventID != "":
		return Destination{Kind: DestEventDetail, EventID: n.EventID}
	default:
		return Destination{Kind: DestLanding}
	}
}
