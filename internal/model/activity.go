package model

import "time"

type ActivityType string

const (
	ActivityTimeEntry ActivityType = "time_entry"
	ActivityExpense   ActivityType = "expense"
	ActivityMilestone ActivityType = "milestone"
	ActivityNote      ActivityType = "note"
	ActivityTask      ActivityType = "task"
	ActivityMeeting   ActivityType = "meeting"
)

func (t ActivityType) Valid() bool {
	switch t {
	case ActivityTimeEntry, ActivityExpense, ActivityMilestone,
		ActivityNote, ActivityTask, ActivityMeeting:
		return true
	}
	return false
}

// Activity is a logged unit of project work or spending: a time entry, an
// expense, a milestone, a note, a task log, or a meeting.
type Activity struct {
	ID          int          `json:"id"`
	UserID      int          `json:"user_id"`
	ProjectID   int          `json:"project_id"`
	TaskID      *int         `json:"task_id,omitempty"`
	Type        ActivityType `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Hours       *float64     `json:"hours,omitempty"`
	HourlyRate  *float64     `json:"hourly_rate,omitempty"`
	Amount      *float64     `json:"amount,omitempty"`
	ActivityDate time.Time   `json:"activity_date"`
	CreatedAt   time.Time    `json:"created_at"`
}

func (a *Activity) Validate() map[string]string {
	errs := make(map[string]string)

	if a.Title == "" {
		errs["title"] = "title is required"
	}
	if a.ProjectID == 0 {
		errs["project_id"] = "project is required"
	}
	if !a.Type.Valid() {
		errs["type"] = "invalid activity type"
	}

	switch a.Type {
	case ActivityTimeEntry:
		if a.Hours == nil || *a.Hours <= 0 {
			errs["hours"] = "hours must be greater than zero"
		}
		if a.HourlyRate == nil || *a.HourlyRate <= 0 {
			errs["hourly_rate"] = "hourly rate must be greater than zero"
		}
	case ActivityExpense:
		if a.Amount == nil || *a.Amount <= 0 {
			errs["amount"] = "amount must be greater than zero"
		}
	}

	if a.Amount != nil && *a.Amount < 0 {
		errs["amount"] = "amount must not be negative"
	}

	return errs
}

// DeriveAmount recomputes the amount of a time entry as hours x rate when
// both are known, replacing any manually supplied amount for that case.
func (a *Activity) DeriveAmount() {
	if a.Type != ActivityTimeEntry {
		return
	}
	if a.Hours == nil || a.HourlyRate == nil {
		return
	}
	amount := *a.Hours * *a.HourlyRate
	a.Amount = &amount
}
