package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/models"
)

// PushTransport delivers one payload to one endpoint and returns the
// HTTP status the push service answered with.
type PushTransport interface {
	Send(ctx context.Context, sub *models.PushSubscription, payload []byte) (int, error)
}

// WebPushTransport sends VAPID-signed Web Push messages.
type WebPushTransport struct {
	publicKey  string
	privateKey string
	subscriber string
}

func NewWebPushTransport(publicKey, privateKey, subscriber string) *WebPushTransport {
	return &WebPushTransport{
		publicKey:  publicKey,
		privateKey: privateKey,
		subscriber: subscriber,
	}
}

func (t *WebPushTransport) Send(ctx context.Context, sub *models.PushSubscription, payload []byte) (int, error) {
	resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      t.subscriber,
		VAPIDPublicKey:  t.publicKey,
		VAPIDPrivateKey: t.privateKey,
		TTL:             300,
	})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

// SubscriptionStore is the slice of the registry the fan-out needs.
type SubscriptionStore interface {
	GetByUserID(ctx context.Context, userID int64) ([]*models.PushSubscription, error)
	Delete(ctx context.Context, subscriptionID int64) error
}

type pushPayload struct {
	Title    string              `json:"title"`
	Body     string              `json:"body"`
	Kind     models.ReminderKind `json:"kind"`
	EntityID string              `json:"entity_id"`
}

// Fanout sends a reminder to every push endpoint a user registered.
type Fanout struct {
	subs      SubscriptionStore
	transport PushTransport
}

func NewFanout(subs SubscriptionStore, transport PushTransport) *Fanout {
	return &Fanout{subs: subs, transport: transport}
}

// FanOut delivers r to each of the user's endpoints sequentially.
// Endpoints the push service reports gone (404/410) are removed from
// the registry; any other failure is logged and the endpoint kept for
// the next occurrence. Returns how many endpoints accepted the message.
func (f *Fanout) FanOut(ctx context.Context, userID int64, r models.Reminder) (int, error) {
	subs, err := f.subs.GetByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("notify: list subscriptions: %w", err)
	}
	if len(subs) == 0 {
		return 0, nil
	}

	payload, err := json.Marshal(pushPayload{
		Title:    r.Title,
		Body:     r.Body,
		Kind:     r.Kind,
		EntityID: r.EntityID,
	})
	if err != nil {
		return 0, fmt.Errorf("notify: marshal push payload: %w", err)
	}

	sent := 0
	for _, sub := range subs {
		status, err := f.transport.Send(ctx, sub, payload)
		if err != nil {
			log.Printf("[push] delivery failed for user %d subscription %d: %v", userID, sub.SubscriptionID, err)
			continue
		}
		switch {
		case status == http.StatusNotFound || status == http.StatusGone:
			if err := f.subs.Delete(ctx, sub.SubscriptionID); err != nil {
				log.Printf("[push] failed to prune subscription %d: %v", sub.SubscriptionID, err)
			} else {
				log.Printf("[push] pruned gone endpoint for user %d (status %d)", userID, status)
			}
		case status >= http.StatusBadRequest:
			log.Printf("[push] delivery rejected for user %d subscription %d: status %d", userID, sub.SubscriptionID, status)
		default:
			sent++
		}
	}
	return sent, nil
}
