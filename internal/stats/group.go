package stats

import (
	"sort"
	"time"

	"zzpboard/internal/model"
)

// DayGroup is one calendar day of activities, for the chronological feed.
type DayGroup struct {
	Day        string           `json:"day"` // 2006-01-02 in the display location
	Activities []model.Activity `json:"activities"`
}

// GroupByDay partitions activities by the calendar day of their creation
// timestamp in loc, most recent day first. Activities keep their relative
// order within a day.
func GroupByDay(activities []model.Activity, loc *time.Location) []DayGroup {
	if loc == nil {
		loc = time.Local
	}

	byDay := make(map[string][]model.Activity)
	for _, a := range activities {
		key := a.CreatedAt.In(loc).Format("2006-01-02")
		byDay[key] = append(byDay[key], a)
	}

	keys := make([]string, 0, len(byDay))
	for key := range byDay {
		keys = append(keys, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	groups := make([]DayGroup, 0, len(keys))
	for _, key := range keys {
		groups = append(groups, DayGroup{Day: key, Activities: byDay[key]})
	}

	return groups
}
