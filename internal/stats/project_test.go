package stats

import (
	"testing"
	"time"

	"zzpboard/internal/model"
)

func TestProjectMetricsBudget(t *testing.T) {
	p := model.Project{ID: 1, Budget: f(1000)}
	acts := []model.Activity{
		{ID: 1, ProjectID: 1, Type: model.ActivityTimeEntry, Amount: f(800)},
		{ID: 2, ProjectID: 1, Type: model.ActivityExpense, Amount: f(150)},
		{ID: 3, ProjectID: 2, Type: model.ActivityExpense, Amount: f(999)}, // other project
	}

	s := ProjectMetrics(p, acts, testNow)
	if s.BudgetSpent != 950 {
		t.Errorf("BudgetSpent = %v, want 950", s.BudgetSpent)
	}
	if s.BudgetPercentage != 95 {
		t.Errorf("BudgetPercentage = %v, want 95", s.BudgetPercentage)
	}
	if !s.OverBudget {
		t.Error("OverBudget = false, want true at 95%")
	}
}

func TestProjectMetricsNoBudget(t *testing.T) {
	p := model.Project{ID: 1}
	acts := []model.Activity{
		{ID: 1, ProjectID: 1, Type: model.ActivityExpense, Amount: f(5000)},
	}

	s := ProjectMetrics(p, acts, testNow)
	if s.BudgetPercentage != 0 {
		t.Errorf("BudgetPercentage = %v, want 0 for undefined budget", s.BudgetPercentage)
	}
	if s.OverBudget {
		t.Error("OverBudget = true, want false for undefined budget")
	}
	if s.BudgetSpent != 5000 {
		t.Errorf("BudgetSpent = %v, want 5000", s.BudgetSpent)
	}
}

func TestProjectMetricsTaskRatio(t *testing.T) {
	p := model.Project{ID: 1, Tasks: []model.Task{
		{ID: 1, Completed: true},
		{ID: 2, Completed: false},
		{ID: 3, Completed: true},
	}}

	s := ProjectMetrics(p, nil, testNow)
	if s.TasksCompleted != 2 || s.TasksTotal != 3 {
		t.Fatalf("ratio = %d/%d, want 2/3", s.TasksCompleted, s.TasksTotal)
	}
	if !s.ShowTaskRatio() {
		t.Error("ShowTaskRatio() = false, want true")
	}

	empty := ProjectMetrics(model.Project{ID: 2}, nil, testNow)
	if empty.ShowTaskRatio() {
		t.Error("ShowTaskRatio() = true for project without tasks, want suppressed")
	}
}

func deadline(days int) *time.Time {
	d := testNow.Add(time.Duration(days) * 24 * time.Hour)
	return &d
}

func TestUpcomingDeadlines(t *testing.T) {
	projects := []model.Project{
		{ID: 1, Name: "five days", Status: model.ProjectActive, EndDate: deadline(5)},
		{ID: 2, Name: "done", Status: model.ProjectCompleted, EndDate: deadline(5)},
		{ID: 3, Name: "far away", Status: model.ProjectActive, EndDate: deadline(45)},
		{ID: 4, Name: "overdue", Status: model.ProjectActive, EndDate: deadline(-2)},
		{ID: 5, Name: "today", Status: model.ProjectPlanning, EndDate: &testNow},
		{ID: 6, Name: "no deadline", Status: model.ProjectActive},
		{ID: 7, Name: "cancelled", Status: model.ProjectCancelled, EndDate: deadline(3)},
	}

	got := UpcomingDeadlines(projects, testNow)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (got %v)", len(got), got)
	}
	if got[0].Project.ID != 5 || got[0].DaysUntilDeadline != 0 || got[0].Label != "Today" {
		t.Errorf("first = %+v, want project 5 / 0 days / Today", got[0])
	}
	if got[1].Project.ID != 1 || got[1].DaysUntilDeadline != 5 || got[1].Label != "5 days" {
		t.Errorf("second = %+v, want project 1 / 5 days", got[1])
	}
}

func TestUpcomingDeadlinesAscending(t *testing.T) {
	projects := []model.Project{
		{ID: 1, Status: model.ProjectActive, EndDate: deadline(20)},
		{ID: 2, Status: model.ProjectActive, EndDate: deadline(1)},
		{ID: 3, Status: model.ProjectActive, EndDate: deadline(10)},
	}

	got := UpcomingDeadlines(projects, testNow)
	for i := 1; i < len(got); i++ {
		if got[i-1].DaysUntilDeadline > got[i].DaysUntilDeadline {
			t.Fatalf("not ascending: %v", got)
		}
	}
	if got[0].Label != "1 day" {
		t.Errorf("label = %q, want \"1 day\"", got[0].Label)
	}
}

func TestDeadlineLabel(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{0, "Today"},
		{1, "1 day"},
		{2, "2 days"},
		{30, "30 days"},
	}
	for _, tt := range tests {
		if got := DeadlineLabel(tt.days); got != tt.want {
			t.Errorf("DeadlineLabel(%d) = %q, want %q", tt.days, got, tt.want)
		}
	}
}

func TestDeadlineCeilingPartialDays(t *testing.T) {
	// 4 days and 6 hours away rounds up to 5
	end := testNow.Add(4*24*time.Hour + 6*time.Hour)
	p := model.Project{ID: 1, Status: model.ProjectActive, EndDate: &end}

	got := UpcomingDeadlines([]model.Project{p}, testNow)
	if len(got) != 1 || got[0].DaysUntilDeadline != 5 {
		t.Fatalf("got %v, want 5 days", got)
	}
}
