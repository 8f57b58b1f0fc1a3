package stats

import (
	"strings"

	"zzpboard/internal/model"
)

// FilterAll disables a status/priority/client predicate.
const FilterAll = "all"

// ProjectFilter carries the dashboard's project list filters. Zero values
// (empty search, "" or "all" selectors, clientID 0) match everything.
type ProjectFilter struct {
	Search   string
	Status   string
	Priority string
	ClientID int
}

// FilterProjects returns the projects matching every active predicate, in
// input order. The search term is a case-insensitive substring match against
// project name, description, or the associated client's name.
func FilterProjects(projects []model.Project, filter ProjectFilter) []model.Project {
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	matched := []model.Project{}
	for _, p := range projects {
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if filter.Status != "" && filter.Status != FilterAll && string(p.Status) != filter.Status {
			continue
		}
		if filter.Priority != "" && filter.Priority != FilterAll && string(p.Priority) != filter.Priority {
			continue
		}
		if filter.ClientID != 0 && (p.ClientID == nil || *p.ClientID != filter.ClientID) {
			continue
		}
		matched = append(matched, p)
	}

	return matched
}

func matchesSearch(p model.Project, search string) bool {
	if strings.Contains(strings.ToLower(p.Name), search) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), search) {
		return true
	}
	if p.Client != nil && strings.Contains(strings.ToLower(p.Client.Name), search) {
		return true
	}
	return false
}
