// Package schedule computes when reminders fire. Resolution is a pure
// function of the entity and the reference instant; staleness and
// deduplication are the callers' concern.
package schedule

import (
	"time"

	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/models"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"

	// Tasks without an explicit due time notify at 09:00.
	defaultHour = 9
	defaultMin  = 0
)

// ResolveTrigger returns the trigger instant of the current occurrence
// of t, evaluated against now, and whether one exists for this tick.
//
// Dates and times are interpreted on now's wall clock. Recurrence picks
// the occurrence date: one-shot tasks keep their fixed due date, daily
// tasks use today, weekly/monthly tasks only match when today shares
// the due date's weekday or day-of-month. The lead-time offset is then
// subtracted from the occurrence instant.
//
// Malformed date or time strings resolve to no trigger rather than an
// error, so one bad row cannot halt a whole evaluation pass.
func ResolveTrigger(t *models.Task, now time.Time) (time.Time, bool) {
	if t == nil || !t.Notify || t.Completed || t.DueDate == "" {
		return time.Time{}, false
	}

	loc := now.Location()
	due, err := time.ParseInLocation(dateLayout, t.DueDate, loc)
	if err != nil {
		return time.Time{}, false
	}

	hour, min := defaultHour, defaultMin
	if t.DueTime != "" {
		clock, err := time.Parse(clockLayout, t.DueTime)
		if err != nil {
			return time.Time{}, false
		}
		hour, min = clock.Hour(), clock.Minute()
	}

	var occurrence time.Time
	switch t.Recurrence {
	case models.RecurrenceNone, "":
		occurrence = time.Date(due.Year(), due.Month(), due.Day(), hour, min, 0, 0, loc)
	case models.RecurrenceDaily:
		occurrence = time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, loc)
	case models.RecurrenceWeekly:
		if now.Weekday() != due.Weekday() {
			return time.Time{}, false
		}
		occurrence = time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, loc)
	case models.RecurrenceMonthly:
		// A due day of 29-31 never matches in shorter months; that
		// occurrence is skipped, not shifted.
		if now.Day() != due.Day() {
			return time.Time{}, false
		}
		occurrence = time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, loc)
	default:
		return time.Time{}, false
	}

	return occurrence.Add(-t.NotifyBefore.Offset()), true
}
