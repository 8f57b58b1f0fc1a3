// Package stats holds the derived-view engines of the dashboard: activity
// filtering and grouping, summary totals, per-project metrics, and project
// search. Every function is pure (collections in, fresh values out) and
// takes the clock as a parameter so results are reproducible.
package stats

import (
	"time"

	"zzpboard/internal/model"
)

type TimeRange string

const (
	RangeToday TimeRange = "today"
	RangeWeek  TimeRange = "week"
	RangeMonth TimeRange = "month"
	RangeAll   TimeRange = "all"
)

// TypeAll matches every activity type in FilterActivities.
const TypeAll = "all"

// FilterActivities narrows activities by project, type and time window,
// preserving input order. projectID 0 means no project filter. The week and
// month windows are fixed rolling windows (168h / 720h), not calendar
// aligned. An unrecognized range filters nothing: the caller sees the full
// collection rather than an empty dashboard.
func FilterActivities(activities []model.Activity, projectID int, typ string, rng TimeRange, now time.Time) []model.Activity {
	var cutoff time.Time
	hasCutoff := false

	switch rng {
	case RangeToday:
		cutoff = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		hasCutoff = true
	case RangeWeek:
		cutoff = now.Add(-7 * 24 * time.Hour)
		hasCutoff = true
	case RangeMonth:
		cutoff = now.Add(-30 * 24 * time.Hour)
		hasCutoff = true
	}

	filtered := []model.Activity{}
	for _, a := range activities {
		if projectID != 0 && a.ProjectID != projectID {
			continue
		}
		if typ != "" && typ != TypeAll && string(a.Type) != typ {
			continue
		}
		if hasCutoff && a.CreatedAt.Before(cutoff) {
			continue
		}
		filtered = append(filtered, a)
	}

	return filtered
}
