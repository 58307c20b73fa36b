package models

import "time"

// Notification is one row of the in-app notification history. A row is
// written for every dispatched reminder, whether or not push or native
// delivery succeeded.
type Notification struct {
	NotificationID int64        `json:"notification_id"`
	UserID         int64        `json:"user_id"`
	Kind           ReminderKind `json:"kind"`
	EntityID       string       `json:"entity_id"`
	Title          string       `json:"title"`
	Message        string       `json:"message"`
	Read           bool         `json:"read"`
	CreatedAt      time.Time    `json:"created_at"`
}
