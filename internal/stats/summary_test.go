package stats

import (
	"testing"
	"time"

	"zzpboard/internal/model"
)

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalHours != 0 || s.TotalEarnings != 0 || s.TotalExpenses != 0 || s.ActivityCount != 0 {
		t.Fatalf("Summarize(nil) = %+v, want all zeros", s)
	}
}

func TestSummarizeTodayScenario(t *testing.T) {
	now := testNow
	acts := []model.Activity{
		{ID: 1, ProjectID: 1, Type: model.ActivityTimeEntry, Hours: f(2), Amount: f(100), CreatedAt: now.Add(-time.Hour)},
		{ID: 2, ProjectID: 1, Type: model.ActivityExpense, Amount: f(30), CreatedAt: now.Add(-2 * time.Hour)},
	}

	filtered := FilterActivities(acts, 0, TypeAll, RangeToday, now)
	s := Summarize(filtered)

	if s.TotalHours != 2 {
		t.Errorf("TotalHours = %v, want 2", s.TotalHours)
	}
	if s.TotalEarnings != 100 {
		t.Errorf("TotalEarnings = %v, want 100", s.TotalEarnings)
	}
	if s.TotalExpenses != 30 {
		t.Errorf("TotalExpenses = %v, want 30", s.TotalExpenses)
	}
	if s.ActivityCount != 2 {
		t.Errorf("ActivityCount = %d, want 2", s.ActivityCount)
	}
}

func TestSummarizeMissingFieldsCountAsZero(t *testing.T) {
	acts := []model.Activity{
		{ID: 1, Type: model.ActivityTimeEntry}, // no hours, no amount
		{ID: 2, Type: model.ActivityExpense},   // no amount
		{ID: 3, Type: model.ActivityMilestone, Amount: f(500)}, // neither earnings nor expenses
	}

	s := Summarize(acts)
	if s.TotalHours != 0 || s.TotalEarnings != 0 || s.TotalExpenses != 0 {
		t.Fatalf("Summarize() = %+v, want zero totals", s)
	}
	if s.ActivityCount != 3 {
		t.Fatalf("ActivityCount = %d, want 3", s.ActivityCount)
	}
}
