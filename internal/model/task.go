package model

import "time"

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskReview     TaskStatus = "review"
	TaskCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskReview, TaskCompleted:
		return true
	}
	return false
}

type Task struct {
	ID             int        `json:"id"`
	UserID         int        `json:"user_id"`
	ProjectID      int        `json:"project_id"`
	DeliverableID  *int       `json:"deliverable_id,omitempty"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	Status         TaskStatus `json:"status"`
	Priority       Priority   `json:"priority"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty"`
	Completed      bool       `json:"completed"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (t *Task) Validate() map[string]string {
	errs := make(map[string]string)

	if t.Name == "" {
		errs["name"] = "name is required"
	}
	if t.ProjectID == 0 {
		errs["project_id"] = "project is required"
	}
	if !t.Status.Valid() {
		errs["status"] = "invalid status"
	}
	if !t.Priority.Valid() {
		errs["priority"] = "invalid priority"
	}
	if t.EstimatedHours != nil && *t.EstimatedHours < 0 {
		errs["estimated_hours"] = "estimated hours must not be negative"
	}

	return errs
}

type Deliverable struct {
	ID          int       `json:"id"`
	ProjectID   int       `json:"project_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (d *Deliverable) Validate() map[string]string {
	errs := make(map[string]string)

	if d.Name == "" {
		errs["name"] = "name is required"
	}
	if d.ProjectID == 0 {
		errs["project_id"] = "project is required"
	}

	return errs
}
