package projections

import (
	"context"
	"log/slog"

	"sportlink/internal/domain/event"
	"sportlink/internal/domain/profile"
)

// ProfilePageBackend combines the reads the profile page needs.
type ProfilePageBackend interface {
	ProfileBackend
	MyEventsBackend
}

// GetProfileQuery carries input for the profile projection.
type GetProfileQuery struct {
	Token string
}

// GetProfileResult carries the profile page data. The event lists degrade
// to empty on failure; the profile itself must load.
type GetProfileResult struct {
	Profile        profile.Profile
	HostedUpcoming []event.Event
	HostedPast     []event.Event
	Attended       []event.Event
	Degraded       bool
}

// GetProfileDeps holds dependencies for the profile projection.
type GetProfileDeps struct {
	Backend ProfilePageBackend
}

// QueryGetProfile loads the viewer's profile together with the events they
// organize and attend.
// PRE: Viewer is authenticated
// POST: Returns the profile; event lists may be empty when degraded
func QueryGetProfile(ctx context.Context, query GetProfileQuery, deps GetProfileDeps) (GetProfileResult, error) {
	prof, err := deps.Backend.Profile(ctx, query.Token)
	if err != nil {
		return GetProfileResult{}, err
	}

	result := GetProfileResult{Profile: prof}

	if hosted, err := deps.Backend.HostedEvents(ctx, query.Token, "upcoming"); err == nil {
		result.HostedUpcoming = hosted
	} else {
		slog.Info("profile_degraded", "reason", "hosted_upcoming_unavailable", "error", err)
		result.Degraded = true
	}
	if hosted, err := deps.Backend.HostedEvents(ctx, query.Token, "past"); err == nil {
		result.HostedPast = hosted
	} else {
		slog.Info("profile_degraded", "reason", "hosted_past_unavailable", "error", err)
		result.Degraded = true
	}
	if attended, err := deps.Backend.AttendedEvents(ctx, query.Token, "upcoming"); err == nil {
		result.Attended = attended
	} else {
		slog.Info("profile_degraded", "reason", "attended_unavailable", "error", err)
		result.Degraded = true
	}

	return result, nil
}
