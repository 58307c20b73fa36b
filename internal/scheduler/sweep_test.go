package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/ledger"
	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/models"
	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/notify"
)

type fakeTaskStore struct {
	fakeTaskSource
	flagged []string
}

func (s *fakeTaskStore) SetNotificationSent(_ context.Context, taskID string, sent bool) error {
	s.flagged = append(s.flagged, taskID)
	for _, t := range s.tasks {
		if t.TaskID == taskID {
			t.NotificationSent = sent
		}
	}
	return nil
}

type fakeMindsetStore struct {
	settings []*models.NotificationSettings
	flagged  map[int64]time.Time
}

func (s *fakeMindsetStore) ListMindsetEnabled(context.Context) ([]*models.NotificationSettings, error) {
	return s.settings, nil
}

func (s *fakeMindsetStore) SetMindsetNotifiedOn(_ context.Context, userID int64, day time.Time) error {
	if s.flagged == nil {
		s.flagged = make(map[int64]time.Time)
	}
	s.flagged[userID] = day
	for _, st := range s.settings {
		if st.UserID == userID {
			d := day
			st.MindsetNotifiedOn = &d
		}
	}
	return nil
}

type fakeJournal struct {
	entries map[int64]bool
}

func (j *fakeJournal) HasEntryOn(_ context.Context, userID int64, _ time.Time) (bool, error) {
	return j.entries[userID], nil
}

type fakePrompts struct{}

func (fakePrompts) Evening(context.Context, time.Time) string {
	return "How did today's training feel?"
}

func newTestSweep(tasks TaskFlagStore, mindset MindsetStore, now time.Time) (*Sweep, *fakeHistory) {
	lg := ledger.New(nil)
	history := &fakeHistory{}
	dispatcher := notify.NewDispatcher(lg, history, nil, nil, nil, nil)
	s := NewSweep(tasks, mindset, &fakeJournal{}, fakePrompts{}, lg, dispatcher)
	s.now = func() time.Time { return now }
	return s, history
}

func TestSweepOneShotFiresOnceAndFlipsFlag(t *testing.T) {
	// Well past the trigger: the sweep has no catch-up window.
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tasks := &fakeTaskStore{fakeTaskSource: fakeTaskSource{tasks: []*models.Task{dueTask()}}}
	s, history := newTestSweep(tasks, &fakeMindsetStore{}, now)

	result, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Processed != 1 || result.Items[0].Status != string(notify.StatusSent) {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(tasks.flagged) != 1 || tasks.flagged[0] != "t1" {
		t.Fatalf("flagged = %v, want [t1]", tasks.flagged)
	}

	// Second run sees notification_sent and reports nothing.
	result, err = s.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if result.Processed != 0 {
		t.Fatalf("second run processed = %d, want 0", result.Processed)
	}
	if len(history.rows) != 1 {
		t.Fatalf("history rows = %d, want 1", len(history.rows))
	}
}

func TestSweepOneShotNotDueYet(t *testing.T) {
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	tasks := &fakeTaskStore{fakeTaskSource: fakeTaskSource{tasks: []*models.Task{dueTask()}}}
	s, _ := newTestSweep(tasks, &fakeMindsetStore{}, now)

	result, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Processed != 0 || len(tasks.flagged) != 0 {
		t.Fatalf("early sweep should do nothing, got %+v flagged=%v", result, tasks.flagged)
	}
}

func TestSweepRecurringDedupedByMarker(t *testing.T) {
	task := dueTask()
	task.Recurrence = models.RecurrenceDaily
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tasks := &fakeTaskStore{fakeTaskSource: fakeTaskSource{tasks: []*models.Task{task}}}
	s, history := newTestSweep(tasks, &fakeMindsetStore{}, now)

	ctx := context.Background()
	result, err := s.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Processed != 1 {
		t.Fatalf("processed = %d, want 1", result.Processed)
	}
	// Recurring tasks never touch the one-shot flag.
	if len(tasks.flagged) != 0 {
		t.Fatalf("flagged = %v, want none for recurring task", tasks.flagged)
	}

	for i := 0; i < 5; i++ {
		if result, err = s.Run(ctx); err != nil {
			t.Fatalf("Run %d: %v", i, err)
		}
		if result.Processed != 0 {
			t.Fatalf("repeat run processed = %d, want 0", result.Processed)
		}
	}
	if len(history.rows) != 1 {
		t.Fatalf("history rows = %d, want 1", len(history.rows))
	}
}

func TestSweepMonthly31stSkipsShortMonth(t *testing.T) {
	task := dueTask()
	task.DueDate = "2024-01-31"
	task.Recurrence = models.RecurrenceMonthly
	now := time.Date(2024, 4, 30, 12, 0, 0, 0, time.UTC)
	tasks := &fakeTaskStore{fakeTaskSource: fakeTaskSource{tasks: []*models.Task{task}}}
	s, _ := newTestSweep(tasks, &fakeMindsetStore{}, now)

	result, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Processed != 0 {
		t.Fatalf("April has no 31st, processed = %d, want 0", result.Processed)
	}
}

func TestSweepTaskListError(t *testing.T) {
	tasks := &fakeTaskStore{fakeTaskSource: fakeTaskSource{err: errors.New("db down")}}
	s, _ := newTestSweep(tasks, &fakeMindsetStore{}, time.Now())

	if _, err := s.Run(context.Background()); err == nil {
		t.Fatal("expected error when the task list cannot be loaded")
	}
}

func TestSweepMindsetPromptDispatched(t *testing.T) {
	now := time.Date(2024, 3, 1, 20, 5, 0, 0, time.UTC)
	mindset := &fakeMindsetStore{settings: []*models.NotificationSettings{
		{UserID: 7, MindsetEnabled: true, MindsetPromptTime: "20:00"},
	}}
	s, history := newTestSweep(&fakeTaskStore{}, mindset, now)

	result, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Processed != 1 || result.Items[0].Kind != models.ReminderMindset {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Items[0].Status != string(notify.StatusSent) {
		t.Fatalf("status = %s, want sent", result.Items[0].Status)
	}
	if _, ok := mindset.flagged[7]; !ok {
		t.Fatal("calendar-day flag was not set")
	}
	if len(history.rows) != 1 || history.rows[0].Message != "How did today's training feel?" {
		t.Fatalf("unexpected history: %+v", history.rows)
	}

	// Flag is set now: the rest of the day stays quiet.
	result, err = s.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if result.Processed != 0 {
		t.Fatalf("second run processed = %d, want 0", result.Processed)
	}
}

func TestSweepMindsetBeforePromptTime(t *testing.T) {
	now := time.Date(2024, 3, 1, 19, 0, 0, 0, time.UTC)
	mindset := &fakeMindsetStore{settings: []*models.NotificationSettings{
		{UserID: 7, MindsetEnabled: true, MindsetPromptTime: "20:00"},
	}}
	s, _ := newTestSweep(&fakeTaskStore{}, mindset, now)

	result, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Processed != 0 || len(mindset.flagged) != 0 {
		t.Fatalf("prompt fired before its time: %+v flagged=%v", result, mindset.flagged)
	}
}

func TestSweepMindsetShortCircuitWhenJournaled(t *testing.T) {
	now := time.Date(2024, 3, 1, 20, 5, 0, 0, time.UTC)
	mindset := &fakeMindsetStore{settings: []*models.NotificationSettings{
		{UserID: 7, MindsetEnabled: true, MindsetPromptTime: "20:00"},
	}}
	lg := ledger.New(nil)
	history := &fakeHistory{}
	dispatcher := notify.NewDispatcher(lg, history, nil, nil, nil, nil)
	s := NewSweep(&fakeTaskStore{}, mindset, &fakeJournal{entries: map[int64]bool{7: true}}, fakePrompts{}, lg, dispatcher)
	s.now = func() time.Time { return now }

	result, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Processed != 1 || result.Items[0].Status != "skipped_journaled" {
		t.Fatalf("unexpected result: %+v", result)
	}
	// The day still counts as handled even though nothing was sent.
	if _, ok := mindset.flagged[7]; !ok {
		t.Fatal("calendar-day flag was not set")
	}
	if len(history.rows) != 0 {
		t.Fatalf("history rows = %d, want 0 when the user already journaled", len(history.rows))
	}
}
