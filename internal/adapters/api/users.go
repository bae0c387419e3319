package api

import (
	"context"
	"net/http"

	"sportlink/internal/domain/profile"
)

// Profile fetches the viewer's profile.
// GET /user/profile
func (c *Client) Profile(ctx context.Context, token string) (profile.Profile, error) {
	var payload profilePayload
	if err := c.getJSON(ctx, "/user/profile", token, nil, &payload); err != nil {
		return profile.Profile{}, err
	}
	return payload.toDomain(), nil
}

// UpdateAvatar replaces the viewer's avatar.
// PUT /user/avatar -> text
func (c *Client) UpdateAvatar(ctx context.Context, token, avatar string) error {
	body := map[string]string{"avatar": avatar}
	_, err := c.text(ctx, http.MethodPut, "/user/avatar", token, nil, body)
	return err
}

// AddSport adds or updates a sport preference on the viewer's profile.
// POST /user/sport/add -> text
func (c *Client) AddSport(ctx context.Context, token string, pref profile.SportPreference) error {
	body := map[string]any{"sport": pref.Sport, "skillLevel": pref.SkillLevel}
	_, err := c.text(ctx, http.MethodPost, "/user/sport/add", token, nil, body)
	return err
}

// RemoveSport removes a sport preference from the viewer's profile.
// POST /user/sport/remove -> text
func (c *Client) RemoveSport(ctx context.Context, token, sport string) error {
	body := map[string]string{"sport": sport}
	_, err := c.text(ctx, http.MethodPost, "/user/sport/remove", token, nil, body)
	return err
}
