package models

import (
	"fmt"
	"time"
)

type ReminderKind string

const (
	ReminderTodo    ReminderKind = "todo"
	ReminderMindset ReminderKind = "mindset"
)

// Reminder is what the dispatcher delivers: a tagged variant over the
// things that can notify (a due task, the evening mindset prompt), so
// every channel works off the same shape.
type Reminder struct {
	Kind      ReminderKind `json:"kind"`
	EntityID  string       `json:"entity_id"`
	UserID    int64        `json:"user_id"`
	Title     string       `json:"title"`
	Body      string       `json:"body"`
	TriggerAt time.Time    `json:"trigger_at"`
}

// MarkerKey identifies one occurrence of one entity for deduplication.
func (r Reminder) MarkerKey() string {
	return fmt.Sprintf("%s-%d", r.EntityID, r.TriggerAt.UnixMilli())
}

func NewTaskReminder(t *Task, triggerAt time.Time) Reminder {
	body := t.Description
	if body == "" {
		body = "Your task is due soon."
	}
	return Reminder{
		Kind:      ReminderTodo,
		EntityID:  t.TaskID,
		UserID:    t.UserID,
		Title:     t.Title,
		Body:      body,
		TriggerAt: triggerAt,
	}
}

func NewMindsetReminder(userID int64, prompt string, triggerAt time.Time) Reminder {
	return Reminder{
		Kind:      ReminderMindset,
		EntityID:  fmt.Sprintf("mindset-%d", userID),
		UserID:    userID,
		Title:     "Mindset check-in",
		Body:      prompt,
		TriggerAt: triggerAt,
	}
}
