package stats

import (
	"testing"
	"time"

	"zzpboard/internal/model"
)

func f(v float64) *float64 { return &v }

var testNow = time.Date(2026, 8, 20, 15, 30, 0, 0, time.UTC)

func act(id, projectID int, typ model.ActivityType, createdAt time.Time) model.Activity {
	return model.Activity{
		ID:        id,
		ProjectID: projectID,
		Type:      typ,
		Title:     "activity",
		CreatedAt: createdAt,
	}
}

func testActivities() []model.Activity {
	return []model.Activity{
		act(1, 1, model.ActivityTimeEntry, testNow.Add(-1*time.Hour)),     // today
		act(2, 1, model.ActivityExpense, testNow.Add(-2*24*time.Hour)),    // this week
		act(3, 2, model.ActivityTimeEntry, testNow.Add(-10*24*time.Hour)), // this month
		act(4, 2, model.ActivityNote, testNow.Add(-60*24*time.Hour)),      // older
	}
}

func TestFilterActivitiesByProject(t *testing.T) {
	got := FilterActivities(testActivities(), 1, TypeAll, RangeAll, testNow)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for _, a := range got {
		if a.ProjectID != 1 {
			t.Errorf("activity %d has project %d", a.ID, a.ProjectID)
		}
	}
}

func TestFilterActivitiesByType(t *testing.T) {
	got := FilterActivities(testActivities(), 0, "time_entry", RangeAll, testNow)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}

	// "all" and empty string both disable the type predicate
	if n := len(FilterActivities(testActivities(), 0, TypeAll, RangeAll, testNow)); n != 4 {
		t.Errorf("type=all: len = %d, want 4", n)
	}
	if n := len(FilterActivities(testActivities(), 0, "", RangeAll, testNow)); n != 4 {
		t.Errorf("type empty: len = %d, want 4", n)
	}
}

func TestFilterActivitiesTimeWindows(t *testing.T) {
	acts := testActivities()

	if n := len(FilterActivities(acts, 0, TypeAll, RangeToday, testNow)); n != 1 {
		t.Errorf("today: len = %d, want 1", n)
	}
	if n := len(FilterActivities(acts, 0, TypeAll, RangeWeek, testNow)); n != 2 {
		t.Errorf("week: len = %d, want 2", n)
	}
	if n := len(FilterActivities(acts, 0, TypeAll, RangeMonth, testNow)); n != 3 {
		t.Errorf("month: len = %d, want 3", n)
	}
	if n := len(FilterActivities(acts, 0, TypeAll, RangeAll, testNow)); n != 4 {
		t.Errorf("all: len = %d, want 4", n)
	}
}

func TestFilterActivitiesTodayIsLocalMidnight(t *testing.T) {
	now := time.Date(2026, 8, 20, 0, 30, 0, 0, time.UTC)
	beforeMidnight := act(1, 1, model.ActivityNote, time.Date(2026, 8, 19, 23, 45, 0, 0, time.UTC))
	afterMidnight := act(2, 1, model.ActivityNote, time.Date(2026, 8, 20, 0, 10, 0, 0, time.UTC))

	got := FilterActivities([]model.Activity{beforeMidnight, afterMidnight}, 0, TypeAll, RangeToday, now)
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("got %v, want only activity 2", got)
	}
}

func TestFilterActivitiesWeekIsRollingWindow(t *testing.T) {
	// 167h ago is inside the 168h window even across calendar weeks
	inside := act(1, 1, model.ActivityNote, testNow.Add(-167*time.Hour))
	outside := act(2, 1, model.ActivityNote, testNow.Add(-169*time.Hour))

	got := FilterActivities([]model.Activity{inside, outside}, 0, TypeAll, RangeWeek, testNow)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("got %v, want only activity 1", got)
	}
}

func TestFilterActivitiesUnknownRangePassesThrough(t *testing.T) {
	acts := testActivities()
	got := FilterActivities(acts, 0, TypeAll, TimeRange("fortnight"), testNow)
	if len(got) != len(acts) {
		t.Fatalf("len = %d, want %d (unknown range is a pass-through)", len(got), len(acts))
	}
}

// Time filtering is monotonic: today ⊆ week ⊆ month ⊆ all for a fixed now.
func TestFilterActivitiesMonotonicWindows(t *testing.T) {
	acts := testActivities()
	ranges := []TimeRange{RangeToday, RangeWeek, RangeMonth, RangeAll}

	var prev []model.Activity
	for i, rng := range ranges {
		got := FilterActivities(acts, 0, TypeAll, rng, testNow)
		if i > 0 && !isSubsequence(prev, got) {
			t.Fatalf("%s result is not a subsequence of %s result", ranges[i-1], rng)
		}
		prev = got
	}
}

func isSubsequence(sub, full []model.Activity) bool {
	j := 0
	for _, a := range full {
		if j < len(sub) && sub[j].ID == a.ID {
			j++
		}
	}
	return j == len(sub)
}

func TestFilterActivitiesPreservesOrder(t *testing.T) {
	acts := testActivities()
	got := FilterActivities(acts, 0, TypeAll, RangeMonth, testNow)
	for i := 1; i < len(got); i++ {
		if got[i-1].ID >= got[i].ID {
			t.Fatalf("input order not preserved: %v", got)
		}
	}
}
