package repository

import (
	"context"
	"time"

	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/database"
)

type JournalRepository struct {
	db *database.DB
}

func NewJournalRepository(db *database.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// HasEntryOn reports whether the user already wrote a journal entry on
// the given calendar day. The mindset prompt is skipped when they have.
func (r *JournalRepository) HasEntryOn(ctx context.Context, userID int64, day time.Time) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM journal_entries WHERE user_id = $1 AND entry_date = $2)`,
		userID, day.Format("2006-01-02"),
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
