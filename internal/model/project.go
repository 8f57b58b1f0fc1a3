package model

import "time"

type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectActive, ProjectOnHold, ProjectCompleted, ProjectCancelled:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Project struct {
	ID          int           `json:"id"`
	UserID      int           `json:"user_id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	Priority    Priority      `json:"priority"`
	ClientID    *int          `json:"client_id,omitempty"`
	Budget      *float64      `json:"budget,omitempty"`
	HourlyRate  *float64      `json:"hourly_rate,omitempty"`
	StartDate   *time.Time    `json:"start_date,omitempty"`
	EndDate     *time.Time    `json:"end_date,omitempty"`
	// Progress is a derived percentage (0-100), recomputed by the worker
	// from task completion. Never edited directly.
	Progress     int           `json:"progress"`
	Client       *Client       `json:"client,omitempty"`
	Tasks        []Task        `json:"tasks,omitempty"`
	Deliverables []Deliverable `json:"deliverables,omitempty"`
	Activities   []Activity    `json:"activities,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Validate checks user input for project creation/update and returns
// per-field error messages. An empty map means the input is valid.
func (p *Project) Validate() map[string]string {
	errs := make(map[string]string)

	if p.Name == "" {
		errs["name"] = "name is required"
	}
	if !p.Status.Valid() {
		errs["status"] = "invalid status"
	}
	if !p.Priority.Valid() {
		errs["priority"] = "invalid priority"
	}
	if p.Budget != nil && *p.Budget < 0 {
		errs["budget"] = "budget must not be negative"
	}
	if p.HourlyRate != nil && *p.HourlyRate < 0 {
		errs["hourly_rate"] = "hourly rate must not be negative"
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		errs["end_date"] = "end date must not be before start date"
	}

	return errs
}
