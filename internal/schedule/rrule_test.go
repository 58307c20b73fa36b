package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/models"
)

func TestRuleForTaskRejectsOneShot(t *testing.T) {
	task := baseTask()
	if _, err := RuleForTask(task, time.UTC); !errors.Is(err, ErrNotRecurring) {
		t.Fatalf("expected ErrNotRecurring, got %v", err)
	}
}

func TestUpcomingOccurrencesDaily(t *testing.T) {
	task := baseTask()
	task.Recurrence = models.RecurrenceDaily

	after := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	got, err := UpcomingOccurrences(task, after, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []time.Time{
		time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 7, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 8, 9, 0, 0, 0, time.UTC),
	}
	if len(got) != len(want) {
		t.Fatalf("got %d occurrences, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Fatalf("occurrence %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestUpcomingOccurrencesMonthlySkipsShortMonths(t *testing.T) {
	task := baseTask()
	task.DueDate = "2024-01-31"
	task.Recurrence = models.RecurrenceMonthly

	after := time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)
	got, err := UpcomingOccurrences(task, after, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// February has no 31st, so the next hits land in March and May.
	want := []time.Time{
		time.Date(2024, 3, 31, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 31, 9, 0, 0, 0, time.UTC),
	}
	if len(got) != len(want) {
		t.Fatalf("got %d occurrences, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Fatalf("occurrence %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestUpcomingOccurrencesOneShot(t *testing.T) {
	task := baseTask()

	before := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	got, err := UpcomingOccurrences(task, before, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || !got[0].Equal(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("got %v, want the single due instant", got)
	}

	after := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	got, err = UpcomingOccurrences(task, after, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %v, want none once the due instant has passed", got)
	}
}

func TestUpcomingOccurrencesMalformedDate(t *testing.T) {
	task := baseTask()
	task.DueDate = "not-a-date"
	task.Recurrence = models.RecurrenceDaily

	if _, err := UpcomingOccurrences(task, time.Now(), 3); err == nil {
		t.Fatal("expected an error for a malformed due date")
	}
}
