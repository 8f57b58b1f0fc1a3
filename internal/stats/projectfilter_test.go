package stats

import (
	"testing"

	"zzpboard/internal/model"
)

func intp(v int) *int { return &v }

func testProjects() []model.Project {
	return []model.Project{
		{
			ID: 1, Name: "Website redesign", Description: "New marketing site",
			Status: model.ProjectActive, Priority: model.PriorityHigh,
			ClientID: intp(10), Client: &model.Client{ID: 10, Name: "Acme BV"},
		},
		{
			ID: 2, Name: "Bookkeeping app", Description: "Internal tooling",
			Status: model.ProjectPlanning, Priority: model.PriorityLow,
			ClientID: intp(20), Client: &model.Client{ID: 20, Name: "Bakkerij Jansen"},
		},
		{
			ID: 3, Name: "Logo", Description: "",
			Status: model.ProjectCompleted, Priority: model.PriorityMedium,
		},
	}
}

func TestFilterProjectsNoFiltersReturnsAll(t *testing.T) {
	projects := testProjects()
	got := FilterProjects(projects, ProjectFilter{Search: "", Status: FilterAll, Priority: FilterAll})
	if len(got) != len(projects) {
		t.Fatalf("len = %d, want %d", len(got), len(projects))
	}
	for i := range got {
		if got[i].ID != projects[i].ID {
			t.Fatalf("order changed: %v", got)
		}
	}
}

func TestFilterProjectsSearch(t *testing.T) {
	tests := []struct {
		search  string
		wantIDs []int
	}{
		{"website", []int{1}},           // name
		{"tooling", []int{2}},           // description
		{"jansen", []int{2}},            // client name
		{"ACME", []int{1}},              // case-insensitive
		{"nonexistent", []int{}},
	}
	for _, tt := range tests {
		got := FilterProjects(testProjects(), ProjectFilter{Search: tt.search})
		if len(got) != len(tt.wantIDs) {
			t.Errorf("search %q: len = %d, want %d", tt.search, len(got), len(tt.wantIDs))
			continue
		}
		for i, id := range tt.wantIDs {
			if got[i].ID != id {
				t.Errorf("search %q: got project %d, want %d", tt.search, got[i].ID, id)
			}
		}
	}
}

func TestFilterProjectsStatusPriorityClient(t *testing.T) {
	got := FilterProjects(testProjects(), ProjectFilter{Status: "active"})
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("status filter: got %v, want project 1", got)
	}

	got = FilterProjects(testProjects(), ProjectFilter{Priority: "low"})
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("priority filter: got %v, want project 2", got)
	}

	got = FilterProjects(testProjects(), ProjectFilter{ClientID: 10})
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("client filter: got %v, want project 1", got)
	}
}

func TestFilterProjectsPredicatesAreANDed(t *testing.T) {
	got := FilterProjects(testProjects(), ProjectFilter{Search: "website", Status: "planning"})
	if len(got) != 0 {
		t.Fatalf("got %v, want no matches", got)
	}

	got = FilterProjects(testProjects(), ProjectFilter{Search: "website", Status: "active", Priority: "high", ClientID: 10})
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("got %v, want project 1", got)
	}
}

func TestFilterProjectsClientFilterSkipsProjectsWithoutClient(t *testing.T) {
	got := FilterProjects(testProjects(), ProjectFilter{ClientID: 99})
	if len(got) != 0 {
		t.Fatalf("got %v, want none", got)
	}
}
