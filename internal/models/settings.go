package models

import "time"

// NotificationSettings holds per-user delivery preferences plus the
// state of the daily mindset prompt.
type NotificationSettings struct {
	UserID            int64      `json:"user_id"`
	MindsetEnabled    bool       `json:"mindset_enabled"`
	MindsetPromptTime string     `json:"mindset_prompt_time"` // HH:MM
	MindsetNotifiedOn *time.Time `json:"mindset_notified_on"` // calendar day last handled
	TelegramChatID    *int64     `json:"telegram_chat_id"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func NewDefaultNotificationSettings(userID int64) *NotificationSettings {
	return &NotificationSettings{
		UserID:            userID,
		MindsetEnabled:    true,
		MindsetPromptTime: "20:00",
		UpdatedAt:         time.Now(),
	}
}

// ShouldPrompt reports whether the mindset prompt is due: enabled, not
// yet handled today, and past the configured time of day. Days are
// compared on the evaluator's local calendar.
func (s *NotificationSettings) ShouldPrompt(now time.Time) bool {
	if !s.MindsetEnabled {
		return false
	}

	if s.MindsetNotifiedOn != nil {
		last := s.MindsetNotifiedOn.In(now.Location())
		if last.Year() == now.Year() && last.YearDay() == now.YearDay() {
			return false
		}
	}

	hour, min := parseClock(s.MindsetPromptTime, 20, 0)
	promptAt := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
	return !now.Before(promptAt)
}

// PromptTrigger returns today's prompt instant in now's location.
func (s *NotificationSettings) PromptTrigger(now time.Time) time.Time {
	hour, min := parseClock(s.MindsetPromptTime, 20, 0)
	return time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
}

// parseClock parses "HH:MM", falling back to the given default.
func parseClock(value string, defHour, defMin int) (hour, min int) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return defHour, defMin
	}
	return t.Hour(), t.Minute()
}
