package projections

import (
	"context"
	"sort"

	"sportlink/internal/domain/notification"
)

// GetNotificationsQuery carries input for the notifications projection.
type GetNotificationsQuery struct {
	Token string
}

// GetNotificationsResult carries the viewer's notifications, newest first.
type GetNotificationsResult struct {
	Notifications []notification.Notification
	UnreadCount   int
}

// GetNotificationsDeps holds dependencies for the projection.
type GetNotificationsDeps struct {
	Backend NotificationsBackend
}

// QueryGetNotifications loads the notification list. An empty list is a
// normal page, not an error.
// PRE: Viewer is authenticated
// POST: Notifications are ordered newest first
func QueryGetNotifications(ctx context.Context, query GetNotificationsQuery, deps GetNotificationsDeps) (GetNotificationsResult, error) {
	items, err := deps.Backend.Notifications(ctx, query.Token)
	if err != nil {
		return GetNotificationsResult{}, err
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	unread := 0
	for _, n := range items {
		if !n.Read {
			unread++
		}
	}

	return GetNotificationsResult{
		Notifications: items,
		UnreadCount:   unread,
	}, nil
}
