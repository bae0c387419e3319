package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"sportlink/internal/domain/event"
	"sportlink/internal/domain/profile"
)

// BackendForProfile defines the backend calls needed by the profile
// orchestrators.
type BackendForProfile interface {
	UpdateAvatar(ctx context.Context, token, avatar string) error
	AddSport(ctx context.Context, token string, pref profile.SportPreference) error
	RemoveSport(ctx context.Context, token, sport string) error
}

// ProfileDeps holds dependencies for the profile orchestrators.
type ProfileDeps struct {
	Backend BackendForProfile
}

var ErrEmptyAvatar = errors.New("avatar cannot be empty")

// ExecuteUpdateAvatar replaces the viewer's avatar on the backend.
// PRE: Viewer is authenticated
// POST: On success the backend stores the new avatar
func ExecuteUpdateAvatar(ctx context.Context, token, avatar string, deps ProfileDeps) error {
	avatar = strings.TrimSpace(avatar)
	if avatar == "" {
		return ErrEmptyAvatar
	}
	if err := deps.Backend.UpdateAvatar(ctx, token, avatar); err != nil {
		return err
	}
	slog.Info("profile_event", "event", "avatar_updated")
	return nil
}

// ExecuteAddSport adds or replaces a sport preference. At most one
// preference per sport exists; the backend replaces in place.
// PRE: Viewer is authenticated
// POST: On success the preference list contains the sport exactly once
func ExecuteAddSport(ctx context.Context, token string, pref profile.SportPreference, deps ProfileDeps) error {
	code := event.SportCode(pref.Sport)
	if code < 0 {
		return profile.ErrUnknownSport
	}
	pref.Sport = event.SportByCode(code)
	if pref.SkillLevel < event.SkillBeginner || pref.SkillLevel > event.SkillAdvanced {
		return profile.ErrInvalidSkill
	}

	if err := deps.Backend.AddSport(ctx, token, pref); err != nil {
		return err
	}
	slog.Info("profile_event", "event", "sport_added", "sport", pref.Sport, "skill", pref.SkillLevel)
	return nil
}

// ExecuteRemoveSport removes a sport preference.
// PRE: Viewer is authenticated
// POST: On success the preference list no longer contains the sport
func ExecuteRemoveSport(ctx context.Context, token, sport string, deps ProfileDeps) error {
	if !event.IsKnownSport(sport) {
		return profile.ErrUnknownSport
	}
	if err := deps.Backend.RemoveSport(ctx, token, sport); err != nil {
		return err
	}
	slog.Info("profile_event", "event", "sport_removed", "sport", sport)
	return nil
}
