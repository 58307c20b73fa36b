// Package ledger tracks which reminder occurrences have already been
// dispatched. Two tiers must agree: an in-process set covering repeated
// ticks of one evaluator, and a durable keyed store covering concurrent
// evaluators (other processes, the cron sweep). The durable marker is
// written before the notification is sent, so the duplicate window
// under races is the claim-to-send gap, nothing more.
package ledger

import (
	"context"
	"log"
	"sync"
	"time"
)

// Retention bounds durable marker growth; anything older is pruned
// lazily on poll passes.
const Retention = 24 * time.Hour

// MarkerStore is the durable tier. Claim records the key and reports
// whether this caller was first; DeleteBefore drops expired markers.
type MarkerStore interface {
	Claim(ctx context.Context, key string, at time.Time) (bool, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type Ledger struct {
	mu    sync.Mutex
	seen  map[string]time.Time
	store MarkerStore
	now   func() time.Time
}

// New returns a ledger over the given durable store. A nil store yields
// an ephemeral-only ledger (single-process deduplication).
func New(store MarkerStore) *Ledger {
	return &Ledger{
		seen:  make(map[string]time.Time),
		store: store,
		now:   time.Now,
	}
}

// TryClaim returns true exactly once per distinct key until the marker
// expires. When the durable store is unreachable the claim still holds
// within this process; cross-process protection is lost for that key
// and the failure is logged, not returned.
func (l *Ledger) TryClaim(ctx context.Context, key string) bool {
	now := l.now()

	l.mu.Lock()
	if _, ok := l.seen[key]; ok {
		l.mu.Unlock()
		return false
	}
	l.seen[key] = now
	l.mu.Unlock()

	if l.store == nil {
		return true
	}

	claimed, err := l.store.Claim(ctx, key, now)
	if err != nil {
		log.Printf("[ledger] durable claim failed for %s, deduplicating in-process only: %v", key, err)
		return true
	}
	return claimed
}

// Prune drops markers older than Retention from both tiers. Called
// opportunistically from poll passes rather than on its own timer.
func (l *Ledger) Prune(ctx context.Context) {
	cutoff := l.now().Add(-Retention)

	l.mu.Lock()
	for key, at := range l.seen {
		if at.Before(cutoff) {
			delete(l.seen, key)
		}
	}
	l.mu.Unlock()

	if l.store == nil {
		return
	}
	if _, err := l.store.DeleteBefore(ctx, cutoff); err != nil {
		log.Printf("[ledger] failed to prune durable markers: %v", err)
	}
}
