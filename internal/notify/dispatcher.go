package notify

import (
	"context"
	"log"

	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/ledger"
	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/models"
)

type Status string

const (
	StatusSent      Status = "sent"
	StatusDuplicate Status = "duplicate"
	StatusFailed    Status = "failed"
)

// HistoryStore records dispatched reminders for the in-app view.
type HistoryStore interface {
	Create(ctx context.Context, n *models.Notification) error
}

// SettingsStore resolves per-user delivery preferences.
type SettingsStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.NotificationSettings, error)
}

// PushFanout is the server-side delivery path.
type PushFanout interface {
	FanOut(ctx context.Context, userID int64, r models.Reminder) (int, error)
}

// TelegramSender is the optional linked-chat mirror.
type TelegramSender interface {
	Deliver(chatID int64, r models.Reminder) error
}

// Dispatcher delivers a due reminder exactly once per occurrence. It
// claims the dedup marker before any delivery attempt and never rolls
// it back: a failed best-effort delivery is not retried this cycle, the
// next occurrence produces a fresh marker.
//
// Channel wiring differs by context. A client-style evaluator sets
// native and leaves fanout nil (native first, in-app history as the
// fallback when permission is denied); the server sweep sets fanout and
// never native. The history row is written in both cases, whatever the
// delivery outcome.
type Dispatcher struct {
	ledger   *ledger.Ledger
	history  HistoryStore
	native   Notifier
	fanout   PushFanout
	telegram TelegramSender
	settings SettingsStore
}

func NewDispatcher(lg *ledger.Ledger, history HistoryStore, native Notifier, fanout PushFanout, telegram TelegramSender, settings SettingsStore) *Dispatcher {
	return &Dispatcher{
		ledger:   lg,
		history:  history,
		native:   native,
		fanout:   fanout,
		telegram: telegram,
		settings: settings,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, r models.Reminder) (Status, error) {
	if !d.ledger.TryClaim(ctx, r.MarkerKey()) {
		return StatusDuplicate, nil
	}

	if d.history != nil {
		n := &models.Notification{
			UserID:   r.UserID,
			Kind:     r.Kind,
			EntityID: r.EntityID,
			Title:    r.Title,
			Message:  r.Body,
		}
		if err := d.history.Create(ctx, n); err != nil {
			log.Printf("[dispatch] failed to record notification history for %s: %v", r.MarkerKey(), err)
		}
	}

	var firstErr error

	if d.native != nil {
		granted, err := d.native.RequestPermission(ctx)
		if err != nil {
			log.Printf("[dispatch] native permission check failed: %v", err)
		}
		if granted {
			if err := d.native.Show(r.Title, r.Body); err != nil {
				log.Printf("[dispatch] native notification failed: %v", err)
			}
		}
		// Denied permission is not an error: the history row above is
		// the in-app fallback.
	}

	if d.fanout != nil {
		if _, err := d.fanout.FanOut(ctx, r.UserID, r); err != nil {
			log.Printf("[dispatch] push fan-out failed for user %d: %v", r.UserID, err)
			firstErr = err
		}
	}

	if d.telegram != nil && d.settings != nil {
		settings, err := d.settings.GetByUserID(ctx, r.UserID)
		if err != nil {
			log.Printf("[dispatch] failed to load settings for user %d: %v", r.UserID, err)
		} else if settings.TelegramChatID != nil {
			if err := d.telegram.Deliver(*settings.TelegramChatID, r); err != nil {
				log.Printf("[dispatch] telegram delivery failed for user %d: %v", r.UserID, err)
			}
		}
	}

	if firstErr != nil {
		return StatusFailed, firstErr
	}
	return StatusSent, nil
}
