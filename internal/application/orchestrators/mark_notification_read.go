package orchestrators

import (
	"context"
	"log/slog"
)

// BackendForNotifications defines the backend calls needed by
// MarkNotificationRead.
type BackendForNotifications interface {
	MarkNotificationRead(ctx context.Context, token, notificationID string) error
}

// MarkNotificationReadInput carries input for the mark-read orchestrator.
type MarkNotificationReadInput struct {
	Token          string
	NotificationID string
}

// MarkNotificationReadDeps holds dependencies for MarkNotificationRead.
type MarkNotificationReadDeps struct {
	Backend BackendForNotifications
}

// ExecuteMarkNotificationRead flips the read flag on the backend. Each
// notification is independent; a failure here only means the item shows
// as unread again on the next page load.
// PRE: Viewer is authenticated
// POST: On success the backend records the notification as read
func ExecuteMarkNotificationRead(ctx context.Context, input MarkNotificationReadInput, deps MarkNotificationReadDeps) error {
	if err := deps.Backend.MarkNotificationRead(ctx, input.Token, input.NotificationID); err != nil {
		slog.Info("notification_event", "event", "mark_read_failed", "notification_id", input.NotificationID)
		return err
	}
	return nil
}
