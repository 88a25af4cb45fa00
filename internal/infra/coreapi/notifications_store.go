package coreapi

import (
	"context"
	"fmt"

	"github.com/noahops/console-bfa-go/internal/domain"
)

// NotificationsStore talks to /Notification. Implements
// port.NotificationStore.
type NotificationsStore struct {
	*resource[domain.Notification]
}

// NewNotificationsStore creates the notifications store.
func NewNotificationsStore(c *Client) *NotificationsStore {
	return &NotificationsStore{resource: newResource[domain.Notification](c, "/Notification", "notification")}
}

// MarkRead flags a notification as read for the calling user.
func (s *NotificationsStore) MarkRead(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "CoreAPI.MarkNotificationRead")
	defer span.End()

	_, err := s.c.post(ctx, fmt.Sprintf("/Notification/%s/read", id), nil)
	return wrapErr(err, s.service, s.name, id)
}
