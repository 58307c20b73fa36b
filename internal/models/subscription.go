package models

import "time"

// PushSubscription is one registered Web Push endpoint. A user may have
// several (one per browser/device). Rows are upserted on (user,
// endpoint) and removed when the push service reports the endpoint gone.
type PushSubscription struct {
	SubscriptionID int64     `json:"subscription_id"`
	UserID         int64     `json:"user_id"`
	Endpoint       string    `json:"endpoint"`
	P256dh         string    `json:"p256dh"`
	Auth           string    `json:"auth"`
	CreatedAt      time.Time `json:"created_at"`
}
