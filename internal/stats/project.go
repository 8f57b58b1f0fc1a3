package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"zzpboard/internal/model"
)

// DeadlineHorizonDays bounds the upcoming-deadline window (inclusive).
const DeadlineHorizonDays = 30

// OverBudgetThreshold is the spent percentage at which the warning flag trips.
const OverBudgetThreshold = 90.0

// ProjectSummary holds the derived metrics shown on a project card.
type ProjectSummary struct {
	ProjectID        int     `json:"project_id"`
	BudgetSpent      float64 `json:"budget_spent"`
	BudgetPercentage float64 `json:"budget_percentage"`
	OverBudget       bool    `json:"over_budget_warning"`
	TasksCompleted   int     `json:"tasks_completed"`
	TasksTotal       int     `json:"tasks_total"`
	DaysUntilDeadline *int   `json:"days_until_deadline,omitempty"`
}

// ShowTaskRatio reports whether a completion ratio exists at all. Projects
// without tasks suppress the ratio outright rather than showing 0%.
func (s ProjectSummary) ShowTaskRatio() bool {
	return s.TasksTotal > 0
}

// ProjectMetrics derives the per-card numbers for a single project from the
// full activity collection. Budget spent is the type-agnostic sum of every
// activity amount attributed to the project, the one canonical definition,
// identical to the SQL SUM the budget service uses. Missing numbers default
// to zero; an unset budget reports 0% rather than dividing by zero.
func ProjectMetrics(p model.Project, activities []model.Activity, now time.Time) ProjectSummary {
	s := ProjectSummary{ProjectID: p.ID}

	for _, a := range activities {
		if a.ProjectID != p.ID {
			continue
		}
		if a.Amount != nil {
			s.BudgetSpent += *a.Amount
		}
	}

	if p.Budget != nil && *p.Budget > 0 {
		s.BudgetPercentage = s.BudgetSpent / *p.Budget * 100
		s.OverBudget = s.BudgetPercentage >= OverBudgetThreshold
	}

	s.TasksTotal = len(p.Tasks)
	for _, t := range p.Tasks {
		if t.Completed {
			s.TasksCompleted++
		}
	}

	if days, ok := daysUntilDeadline(p, now); ok {
		s.DaysUntilDeadline = &days
	}

	return s
}

// daysUntilDeadline returns ceil((end - now) / 24h) for projects that still
// have a deadline to meet. Completed and cancelled projects have none.
func daysUntilDeadline(p model.Project, now time.Time) (int, bool) {
	if p.EndDate == nil {
		return 0, false
	}
	if p.Status == model.ProjectCompleted || p.Status == model.ProjectCancelled {
		return 0, false
	}
	days := int(math.Ceil(p.EndDate.Sub(now).Hours() / 24))
	return days, true
}

// UpcomingDeadline pairs a project with how close its end date is.
type UpcomingDeadline struct {
	Project           model.Project `json:"project"`
	DaysUntilDeadline int           `json:"days_until_deadline"`
	Label             string        `json:"label"`
}

// UpcomingDeadlines returns projects whose deadline falls within the next
// DeadlineHorizonDays days (today included), soonest first. The input order
// breaks ties, keeping the sort stable across recomputations.
func UpcomingDeadlines(projects []model.Project, now time.Time) []UpcomingDeadline {
	upcoming := []UpcomingDeadline{}
	for _, p := range projects {
		days, ok := daysUntilDeadline(p, now)
		if !ok {
			continue
		}
		if days < 0 || days > DeadlineHorizonDays {
			continue
		}
		upcoming = append(upcoming, UpcomingDeadline{
			Project:           p,
			DaysUntilDeadline: days,
			Label:             DeadlineLabel(days),
		})
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DaysUntilDeadline < upcoming[j].DaysUntilDeadline
	})

	return upcoming
}

// DeadlineLabel buckets a deadline distance for display.
func DeadlineLabel(days int) string {
	switch days {
	case 0:
		return "Today"
	case 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", days)
	}
}
