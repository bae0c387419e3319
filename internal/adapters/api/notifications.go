package api

import (
	"context"
	"net/http"
	"net/url"

	"sportlink/internal/domain/notification"
)

// Notifications fetches the viewer's notification list. An empty list is a
// normal result, not an error.
// GET /notifications/all -> Notification[]
func (c *Client) Notifications(ctx context.Context, token string) ([]notification.Notification, error) {
	var payload []notificationPayload
	if err := c.getJSON(ctx, "/notifications/all", token, nil, &payload); err != nil {
		return nil, err
	}
	out := make([]notification.Notification, 0, len(payload))
	for _, p := range payload {
		out = append(out, p.toDomain())
	}
	return out, nil
}

// MarkNotificationRead flips the read flag on the backend. Writes are
// independent per notification; no ordering guarantee is needed.
// PUT /notifications/read/{id} -> text
func (c *Client) MarkNotificationRead(ctx context.Context, token, notificationID string) error {
	_, err := c.text(ctx, http.MethodPut, "/notifications/read/"+url.PathEscape(notificationID), token, nil, nil)
	return err
}
