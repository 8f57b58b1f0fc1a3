package model

import (
	"testing"
	"time"
)

func f(v float64) *float64 { return &v }

func TestProjectValidate(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)

	tests := []struct {
		name      string
		project   Project
		wantField string
	}{
		{"valid", Project{Name: "Website", Status: ProjectActive, Priority: PriorityMedium}, ""},
		{"missing name", Project{Status: ProjectActive, Priority: PriorityLow}, "name"},
		{"bad status", Project{Name: "x", Status: "paused", Priority: PriorityLow}, "status"},
		{"bad priority", Project{Name: "x", Status: ProjectActive, Priority: "asap"}, "priority"},
		{"negative budget", Project{Name: "x", Status: ProjectActive, Priority: PriorityLow, Budget: f(-1)}, "budget"},
		{"end before start", Project{Name: "x", Status: ProjectActive, Priority: PriorityLow, StartDate: &start, EndDate: &end}, "end_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.project.Validate()
			if tt.wantField == "" {
				if len(errs) != 0 {
					t.Fatalf("Validate() = %v, want no errors", errs)
				}
				return
			}
			if _, ok := errs[tt.wantField]; !ok {
				t.Fatalf("Validate() = %v, want error on %q", errs, tt.wantField)
			}
		})
	}
}

func TestClientValidate(t *testing.T) {
	c := Client{Name: "Acme BV", Email: "billing@acme.nl"}
	if errs := c.Validate(); len(errs) != 0 {
		t.Fatalf("Validate() = %v, want no errors", errs)
	}

	c = Client{Name: "Acme BV", Email: "not-an-email"}
	if errs := c.Validate(); errs["email"] == "" {
		t.Fatal("expected email validation error")
	}

	c = Client{Email: "a@b.nl"}
	if errs := c.Validate(); errs["name"] == "" {
		t.Fatal("expected name validation error")
	}

	// email is optional
	c = Client{Name: "Acme BV"}
	if errs := c.Validate(); len(errs) != 0 {
		t.Fatalf("Validate() = %v, want no errors", errs)
	}
}

func TestTaskValidate(t *testing.T) {
	task := Task{Name: "Design homepage", ProjectID: 1, Status: TaskTodo, Priority: PriorityHigh}
	if errs := task.Validate(); len(errs) != 0 {
		t.Fatalf("Validate() = %v, want no errors", errs)
	}

	task = Task{Name: "Orphan", Status: TaskTodo, Priority: PriorityLow}
	if errs := task.Validate(); errs["project_id"] == "" {
		t.Fatal("expected project_id validation error")
	}

	task = Task{Name: "x", ProjectID: 1, Status: TaskTodo, Priority: PriorityLow, EstimatedHours: f(-2)}
	if errs := task.Validate(); errs["estimated_hours"] == "" {
		t.Fatal("expected estimated_hours validation error")
	}
}

func TestActivityValidatePerType(t *testing.T) {
	tests := []struct {
		name      string
		activity  Activity
		wantField string
	}{
		{
			"time entry needs hours",
			Activity{Title: "Dev work", ProjectID: 1, Type: ActivityTimeEntry, HourlyRate: f(80)},
			"hours",
		},
		{
			"time entry needs rate",
			Activity{Title: "Dev work", ProjectID: 1, Type: ActivityTimeEntry, Hours: f(2)},
			"hourly_rate",
		},
		{
			"expense needs amount",
			Activity{Title: "Train ticket", ProjectID: 1, Type: ActivityExpense},
			"amount",
		},
		{
			"expense zero amount rejected",
			Activity{Title: "Train ticket", ProjectID: 1, Type: ActivityExpense, Amount: f(0)},
			"amount",
		},
		{
			"note needs no numbers",
			Activity{Title: "Call notes", ProjectID: 1, Type: ActivityNote},
			"",
		},
		{
			"unknown type",
			Activity{Title: "x", ProjectID: 1, Type: "phone_call"},
			"type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.activity.Validate()
			if tt.wantField == "" {
				if len(errs) != 0 {
					t.Fatalf("Validate() = %v, want no errors", errs)
				}
				return
			}
			if _, ok := errs[tt.wantField]; !ok {
				t.Fatalf("Validate() = %v, want error on %q", errs, tt.wantField)
			}
		})
	}
}

func TestDeriveAmountOverridesManualEntry(t *testing.T) {
	a := Activity{
		Type:       ActivityTimeEntry,
		Hours:      f(3),
		HourlyRate: f(50),
		Amount:     f(10), // manual entry, must lose
	}
	a.DeriveAmount()
	if a.Amount == nil || *a.Amount != 150 {
		t.Fatalf("Amount = %v, want 150", a.Amount)
	}
}

func TestDeriveAmountKeepsManualWhenIncomplete(t *testing.T) {
	a := Activity{
		Type:   ActivityTimeEntry,
		Hours:  f(3),
		Amount: f(10),
	}
	a.DeriveAmount()
	if a.Amount == nil || *a.Amount != 10 {
		t.Fatalf("Amount = %v, want manual 10 to survive", a.Amount)
	}
}

func TestDeriveAmountIgnoresOtherTypes(t *testing.T) {
	a := Activity{
		Type:       ActivityExpense,
		Hours:      f(3),
		HourlyRate: f(50),
		Amount:     f(30),
	}
	a.DeriveAmount()
	if *a.Amount != 30 {
		t.Fatalf("Amount = %v, want 30", *a.Amount)
	}
}
