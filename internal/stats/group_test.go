package stats

import (
	"testing"
	"time"

	"zzpboard/internal/model"
)

func TestGroupByDayEmpty(t *testing.T) {
	groups := GroupByDay(nil, time.UTC)
	if len(groups) != 0 {
		t.Fatalf("len = %d, want 0", len(groups))
	}
}

func TestGroupByDayCountsAndOrder(t *testing.T) {
	day1 := time.Date(2026, 8, 18, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 19, 9, 0, 0, 0, time.UTC)

	acts := []model.Activity{
		act(1, 1, model.ActivityTimeEntry, day1),
		act(2, 1, model.ActivityExpense, day2.Add(time.Hour)),
		act(3, 1, model.ActivityNote, day1.Add(2*time.Hour)),
		act(4, 1, model.ActivityMeeting, day2),
	}

	groups := GroupByDay(acts, time.UTC)

	total := 0
	for _, g := range groups {
		total += len(g.Activities)
	}
	if total != len(acts) {
		t.Fatalf("grouped %d activities, want %d", total, len(acts))
	}

	// keys strictly descending
	for i := 1; i < len(groups); i++ {
		if groups[i-1].Day <= groups[i].Day {
			t.Fatalf("days not strictly descending: %s then %s", groups[i-1].Day, groups[i].Day)
		}
	}

	if groups[0].Day != "2026-08-19" {
		t.Fatalf("first day = %s, want 2026-08-19", groups[0].Day)
	}

	// within a day, input order survives
	if groups[0].Activities[0].ID != 2 || groups[0].Activities[1].ID != 4 {
		t.Fatalf("within-day order broken: %v", groups[0].Activities)
	}
	if groups[1].Activities[0].ID != 1 || groups[1].Activities[1].ID != 3 {
		t.Fatalf("within-day order broken: %v", groups[1].Activities)
	}
}

func TestGroupByDayUsesDisplayLocation(t *testing.T) {
	// 23:30 UTC on the 18th is already the 19th in UTC+2
	created := time.Date(2026, 8, 18, 23, 30, 0, 0, time.UTC)
	loc := time.FixedZone("CEST", 2*3600)

	groups := GroupByDay([]model.Activity{act(1, 1, model.ActivityNote, created)}, loc)
	if len(groups) != 1 || groups[0].Day != "2026-08-19" {
		t.Fatalf("groups = %v, want single day 2026-08-19", groups)
	}
}
