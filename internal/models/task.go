package models

import "time"

type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

func (r Recurrence) IsValid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	default:
		return false
	}
}

func (r Recurrence) IsRecurring() bool {
	return r.IsValid() && r != RecurrenceNone
}

// LeadTime selects how far ahead of the due instant a reminder fires.
type LeadTime string

const (
	LeadAtTime LeadTime = "at_time"
	Lead5Min   LeadTime = "5_min"
	Lead10Min  LeadTime = "10_min"
	Lead15Min  LeadTime = "15_min"
	Lead30Min  LeadTime = "30_min"
	Lead1Hour  LeadTime = "1_hour"
	Lead1Day   LeadTime = "1_day"
)

// Offset returns the lead time as a duration. Unknown selectors map to
// zero, which fires at the due instant itself.
func (l LeadTime) Offset() time.Duration {
	switch l {
	case Lead5Min:
		return 5 * time.Minute
	case Lead10Min:
		return 10 * time.Minute
	case Lead15Min:
		return 15 * time.Minute
	case Lead30Min:
		return 30 * time.Minute
	case Lead1Hour:
		return time.Hour
	case Lead1Day:
		return 24 * time.Hour
	default:
		return 0
	}
}

// Task is a reminder-bearing entity. Rows are created and edited by the
// web app; this service only reads them, except for NotificationSent
// which the server sweep flips after firing a one-shot task.
type Task struct {
	TaskID           string     `json:"task_id"`
	UserID           int64      `json:"user_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Notify           bool       `json:"notify"`
	DueDate          string     `json:"due_date"` // YYYY-MM-DD, empty when unset
	DueTime          string     `json:"due_time"` // HH:MM, empty means the default time
	Recurrence       Recurrence `json:"recurrence"`
	NotifyBefore     LeadTime   `json:"notify_before"`
	Completed        bool       `json:"completed"`
	NotificationSent bool       `json:"notification_sent"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
