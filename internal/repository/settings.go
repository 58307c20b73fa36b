package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/database"
	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/models"
)

type SettingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetByUserID returns the user's notification settings, or defaults if
// the user never saved any.
func (r *SettingsRepository) GetByUserID(ctx context.Context, userID int64) (*models.NotificationSettings, error) {
	s := &models.NotificationSettings{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT user_id, mindset_enabled, mindset_prompt_time, mindset_notified_on, telegram_chat_id, updated_at
		 FROM notification_settings WHERE user_id = $1`,
		userID,
	).Scan(&s.UserID, &s.MindsetEnabled, &s.MindsetPromptTime, &s.MindsetNotifiedOn,
		&s.TelegramChatID, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.NewDefaultNotificationSettings(userID), nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListMindsetEnabled returns settings for every user with the mindset
// prompt switched on.
func (r *SettingsRepository) ListMindsetEnabled(ctx context.Context) ([]*models.NotificationSettings, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT user_id, mindset_enabled, mindset_prompt_time, mindset_notified_on, telegram_chat_id, updated_at
		 FROM notification_settings WHERE mindset_enabled = true`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []*models.NotificationSettings
	for rows.Next() {
		s := &models.NotificationSettings{}
		if err := rows.Scan(&s.UserID, &s.MindsetEnabled, &s.MindsetPromptTime,
			&s.MindsetNotifiedOn, &s.TelegramChatID, &s.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, nil
}

// SetMindsetNotifiedOn records the calendar day the prompt was last
// handled for the user.
func (r *SettingsRepository) SetMindsetNotifiedOn(ctx context.Context, userID int64, day time.Time) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE notification_settings SET mindset_notified_on = $1, updated_at = now()
		 WHERE user_id = $2`,
		day, userID,
	)
	return err
}
