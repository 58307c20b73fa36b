package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/models"
)

var ErrNotRecurring = errors.New("schedule: task has no recurrence")

// RuleForTask translates a task's recurrence mode into an RFC 5545 rule
// anchored at the task's due instant, in loc. Weekly and monthly rules
// inherit the weekday / day-of-month from the anchor, so a due day of
// 31 skips short months the same way ResolveTrigger does.
func RuleForTask(t *models.Task, loc *time.Location) (*rrule.RRule, error) {
	if !t.Recurrence.IsRecurring() {
		return nil, ErrNotRecurring
	}

	anchor, err := dueInstant(t, loc)
	if err != nil {
		return nil, err
	}

	opt := rrule.ROption{Dtstart: anchor}
	switch t.Recurrence {
	case models.RecurrenceDaily:
		opt.Freq = rrule.DAILY
	case models.RecurrenceWeekly:
		opt.Freq = rrule.WEEKLY
	case models.RecurrenceMonthly:
		opt.Freq = rrule.MONTHLY
	}

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("schedule: build rrule: %w", err)
	}
	return rule, nil
}

// UpcomingOccurrences returns up to count due instants strictly after
// the given time. One-shot tasks yield their single due instant while it
// is still ahead, then nothing.
func UpcomingOccurrences(t *models.Task, after time.Time, count int) ([]time.Time, error) {
	if count <= 0 {
		return []time.Time{}, nil
	}

	loc := after.Location()
	if !t.Recurrence.IsRecurring() {
		due, err := dueInstant(t, loc)
		if err != nil {
			return nil, err
		}
		if due.After(after) {
			return []time.Time{due}, nil
		}
		return []time.Time{}, nil
	}

	rule, err := RuleForTask(t, loc)
	if err != nil {
		return nil, err
	}

	iter := rule.Iterator()
	results := make([]time.Time, 0, count)
	for {
		next, ok := iter()
		if !ok {
			break
		}
		if next.After(after) {
			results = append(results, next)
			if len(results) >= count {
				break
			}
		}
	}
	return results, nil
}

func dueInstant(t *models.Task, loc *time.Location) (time.Time, error) {
	if t.DueDate == "" {
		return time.Time{}, errors.New("schedule: task has no due date")
	}
	due, err := time.ParseInLocation(dateLayout, t.DueDate, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("schedule: parse due date: %w", err)
	}
	hour, min := defaultHour, defaultMin
	if t.DueTime != "" {
		clock, err := time.Parse(clockLayout, t.DueTime)
		if err != nil {
			return time.Time{}, fmt.Errorf("schedule: parse due time: %w", err)
		}
		hour, min = clock.Hour(), clock.Minute()
	}
	return time.Date(due.Year(), due.Month(), due.Day(), hour, min, 0, 0, loc), nil
}
