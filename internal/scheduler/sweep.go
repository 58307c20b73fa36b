package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/ledger"
	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/models"
	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/notify"
	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/schedule"
)

// TaskFlagStore is the task source plus the one-shot sent flag.
type TaskFlagStore interface {
	TaskSource
	SetNotificationSent(ctx context.Context, taskID string, sent bool) error
}

// MindsetStore exposes the per-user prompt configuration and its
// calendar-day flag.
type MindsetStore interface {
	ListMindsetEnabled(ctx context.Context) ([]*models.NotificationSettings, error)
	SetMindsetNotifiedOn(ctx context.Context, userID int64, day time.Time) error
}

// JournalStore answers whether the user already journaled today.
type JournalStore interface {
	HasEntryOn(ctx context.Context, userID int64, day time.Time) (bool, error)
}

// PromptSource produces the mindset prompt text.
type PromptSource interface {
	Evening(ctx context.Context, now time.Time) string
}

type ItemStatus struct {
	Kind     models.ReminderKind `json:"kind"`
	EntityID string              `json:"entity_id"`
	Status   string              `json:"status"`
}

type SweepResult struct {
	Processed int          `json:"processed"`
	Items     []ItemStatus `json:"items"`
}

// Sweep is the server-side evaluator, invoked by the hosted cron. It is
// stateless between runs: everything is recomputed from durable storage,
// and instead of a catch-up window it relies on monotonic flags — the
// notification_sent column for one-shot tasks, occurrence markers for
// recurring ones — so missed cycles are caught up reliably.
type Sweep struct {
	tasks      TaskFlagStore
	settings   MindsetStore
	journal    JournalStore
	prompts    PromptSource
	ledger     *ledger.Ledger
	dispatcher ReminderDispatcher
	now        func() time.Time
}

func NewSweep(tasks TaskFlagStore, settings MindsetStore, journal JournalStore, prompts PromptSource, lg *ledger.Ledger, dispatcher ReminderDispatcher) *Sweep {
	return &Sweep{
		tasks:      tasks,
		settings:   settings,
		journal:    journal,
		prompts:    prompts,
		ledger:     lg,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// Run evaluates all tasks and mindset prompts once. Flags committed
// before a failure stay committed; the next cycle resumes from durable
// state, which makes partial progress safe rather than a bug.
func (s *Sweep) Run(ctx context.Context) (*SweepResult, error) {
	now := s.now()
	result := &SweepResult{Items: []ItemStatus{}}

	s.ledger.Prune(ctx)

	tasks, err := s.tasks.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("sweep: list tasks: %w", err)
	}
	for _, task := range tasks {
		status := s.sweepTask(ctx, task, now)
		if status == "" {
			continue
		}
		result.Items = append(result.Items, ItemStatus{
			Kind:     models.ReminderTodo,
			EntityID: task.TaskID,
			Status:   status,
		})
		result.Processed++
	}

	s.sweepMindset(ctx, now, result)
	return result, nil
}

// sweepTask returns "" when the task produced nothing to report this
// run (not due yet, already flagged, or a duplicate another evaluator
// beat us to).
func (s *Sweep) sweepTask(ctx context.Context, task *models.Task, now time.Time) string {
	trigger, ok := schedule.ResolveTrigger(task, now)
	if !ok || now.Before(trigger) {
		return ""
	}

	if !task.Recurrence.IsRecurring() {
		// One occurrence ever, so the row flag is the ledger.
		if task.NotificationSent {
			return ""
		}
		status, err := s.dispatcher.Dispatch(ctx, models.NewTaskReminder(task, trigger))
		if err != nil {
			log.Printf("[sweep] dispatch failed for task %s: %v", task.TaskID, err)
			return string(notify.StatusFailed)
		}
		// A duplicate means another evaluator already fired this
		// occurrence; the flag must still flip or the task would be
		// re-examined forever.
		if err := s.tasks.SetNotificationSent(ctx, task.TaskID, true); err != nil {
			log.Printf("[sweep] failed to flag task %s as sent: %v", task.TaskID, err)
		}
		if status == notify.StatusDuplicate {
			return ""
		}
		return string(status)
	}

	status, err := s.dispatcher.Dispatch(ctx, models.NewTaskReminder(task, trigger))
	if err != nil {
		log.Printf("[sweep] dispatch failed for task %s: %v", task.TaskID, err)
		return string(notify.StatusFailed)
	}
	if status == notify.StatusDuplicate {
		return ""
	}
	return string(status)
}

func (s *Sweep) sweepMindset(ctx context.Context, now time.Time, result *SweepResult) {
	users, err := s.settings.ListMindsetEnabled(ctx)
	if err != nil {
		log.Printf("[sweep] failed to list mindset settings: %v", err)
		return
	}

	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for _, settings := range users {
		if !settings.ShouldPrompt(now) {
			continue
		}

		// Flag first, whatever happens next: the day is handled and
		// later sweeps stop re-checking this user until tomorrow.
		if err := s.settings.SetMindsetNotifiedOn(ctx, settings.UserID, day); err != nil {
			log.Printf("[sweep] failed to flag mindset prompt for user %d: %v", settings.UserID, err)
			continue
		}

		journaled, err := s.journal.HasEntryOn(ctx, settings.UserID, day)
		if err != nil {
			log.Printf("[sweep] journal lookup failed for user %d: %v", settings.UserID, err)
		}
		reminder := models.NewMindsetReminder(settings.UserID, "", settings.PromptTrigger(now))
		if journaled {
			// Already wrote today's entry before the prompt time:
			// nothing to send.
			result.Items = append(result.Items, ItemStatus{
				Kind:     models.ReminderMindset,
				EntityID: reminder.EntityID,
				Status:   "skipped_journaled",
			})
			result.Processed++
			continue
		}

		reminder.Body = s.prompts.Evening(ctx, now)
		status, err := s.dispatcher.Dispatch(ctx, reminder)
		if err != nil {
			log.Printf("[sweep] mindset dispatch failed for user %d: %v", settings.UserID, err)
		}
		result.Items = append(result.Items, ItemStatus{
			Kind:     models.ReminderMindset,
			EntityID: reminder.EntityID,
			Status:   string(status),
		})
		result.Processed++
	}
}
