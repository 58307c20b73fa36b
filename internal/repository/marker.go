package repository

import (
	"context"
	"time"

	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/database"
)

// MarkerRepository is the durable tier of the dedup ledger. Keys are
// "<entity_id>-<trigger unix millis>".
type MarkerRepository struct {
	db *database.DB
}

func NewMarkerRepository(db *database.DB) *MarkerRepository {
	return &MarkerRepository{db: db}
}

// Claim inserts the marker and reports whether this caller won. The
// insert is atomic, so concurrent evaluators racing on the same
// occurrence see exactly one true.
func (r *MarkerRepository) Claim(ctx context.Context, key string, at time.Time) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`INSERT INTO reminder_markers (marker_key, sent_at) VALUES ($1, $2)
		 ON CONFLICT (marker_key) DO NOTHING`,
		key, at,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *MarkerRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`DELETE FROM reminder_markers WHERE sent_at < $1`,
		cutoff,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
