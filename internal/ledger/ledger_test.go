package ledger

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeMarkerStore struct {
	claims    map[string]time.Time
	claimErr  error
	deleteErr error
}

func newFakeMarkerStore() *fakeMarkerStore {
	return &fakeMarkerStore{claims: map[string]time.Time{}}
}

func (s *fakeMarkerStore) Claim(_ context.Context, key string, at time.Time) (bool, error) {
	if s.claimErr != nil {
		return false, s.claimErr
	}
	if _, ok := s.claims[key]; ok {
		return false, nil
	}
	s.claims[key] = at
	return true, nil
}

func (s *fakeMarkerStore) DeleteBefore(_ context.Context, cutoff time.Time) (int64, error) {
	if s.deleteErr != nil {
		return 0, s.deleteErr
	}
	var n int64
	for key, at := range s.claims {
		if at.Before(cutoff) {
			delete(s.claims, key)
			n++
		}
	}
	return n, nil
}

func TestTryClaimReturnsTrueExactlyOnce(t *testing.T) {
	lg := New(newFakeMarkerStore())
	ctx := context.Background()

	if !lg.TryClaim(ctx, "task-1-1709280600000") {
		t.Fatal("first claim should succeed")
	}
	if lg.TryClaim(ctx, "task-1-1709280600000") {
		t.Fatal("second claim of the same key should fail")
	}
	if !lg.TryClaim(ctx, "task-2-1709280600000") {
		t.Fatal("a distinct key should claim independently")
	}
}

func TestTryClaimHonorsDurableMarkers(t *testing.T) {
	store := newFakeMarkerStore()
	store.claims["task-1-1"] = time.Now()

	// A fresh process (empty ephemeral set) must still see the durable
	// marker another evaluator wrote.
	lg := New(store)
	if lg.TryClaim(context.Background(), "task-1-1") {
		t.Fatal("claim should fail when the durable marker exists")
	}
}

func TestTryClaimDegradesWhenStoreUnavailable(t *testing.T) {
	store := newFakeMarkerStore()
	store.claimErr = errors.New("connection refused")

	lg := New(store)
	ctx := context.Background()
	if !lg.TryClaim(ctx, "k") {
		t.Fatal("claim should succeed on ephemeral tier when the store is down")
	}
	if lg.TryClaim(ctx, "k") {
		t.Fatal("ephemeral tier should still deduplicate within the process")
	}
}

func TestTryClaimEphemeralOnly(t *testing.T) {
	lg := New(nil)
	ctx := context.Background()
	if !lg.TryClaim(ctx, "k") {
		t.Fatal("first claim should succeed without a durable store")
	}
	if lg.TryClaim(ctx, "k") {
		t.Fatal("second claim should fail without a durable store")
	}
}

func TestPruneExpiresOldMarkers(t *testing.T) {
	store := newFakeMarkerStore()
	lg := New(store)

	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	lg.now = func() time.Time { return start }

	ctx := context.Background()
	if !lg.TryClaim(ctx, "k") {
		t.Fatal("first claim should succeed")
	}

	// Within retention nothing is pruned.
	lg.now = func() time.Time { return start.Add(23 * time.Hour) }
	lg.Prune(ctx)
	if lg.TryClaim(ctx, "k") {
		t.Fatal("marker should survive inside the retention window")
	}

	lg.now = func() time.Time { return start.Add(25 * time.Hour) }
	lg.Prune(ctx)
	if !lg.TryClaim(ctx, "k") {
		t.Fatal("marker should be reclaimable after pruning")
	}
	if len(store.claims) != 1 {
		t.Fatalf("store should hold only the fresh marker, has %d", len(store.claims))
	}
}

func TestPruneSurvivesStoreError(t *testing.T) {
	store := newFakeMarkerStore()
	store.deleteErr = errors.New("connection refused")

	lg := New(store)
	lg.Prune(context.Background()) // must not panic or block
}
