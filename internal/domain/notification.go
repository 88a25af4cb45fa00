package domain

import "time"

// Notification types as rendered by the portals.
const (
	NotifyInfo    = "info"
	NotifyWarning = "warning"
	NotifyError   = "error"
	NotifySuccess = "success"
)

// Notification is a message fanned out to portal users. Broadcast
// notifications reach everyone in scope; otherwise only the explicit
// recipient list sees them. ScheduledFor delays visibility.
type Notification struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Message      string     `json:"message"`
	Type         string     `json:"type"`
	Broadcast    bool       `json:"broadcast"`
	RecipientIDs []string   `json:"recipientIds,omitempty"`
	Read         bool       `json:"read"`
	ScheduledFor *time.Time `json:"scheduledFor,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// VisibleTo reports whether the notification targets the given recipient at
// the given instant. Scheduled notifications stay hidden until due.
func (n Notification) VisibleTo(recipientID string, now time.Time) bool {
	if n.ScheduledFor != nil && n.ScheduledFor.After(now) {
		return false
	}
	if n.Broadcast {
		return true
	}
	for _, id := range n.RecipientIDs {
		if id == recipientID {
			return true
		}
	}
	return false
}

// NotificationRequest is the create form payload. Either Broadcast is set or
// at least one recipient is listed.
type NotificationRequest struct {
	Title        string     `json:"title" validate:"required"`
	Message      string     `json:"message" validate:"required"`
	Type         string     `json:"type" validate:"required,oneof=info warning error success"`
	Broadcast    bool       `json:"broadcast"`
	RecipientIDs []string   `json:"recipientIds,omitempty" validate:"required_if=Broadcast false,omitempty,min=1"`
	ScheduledFor *time.Time `json:"scheduledFor,omitempty"`
}
