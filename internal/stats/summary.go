package stats

import "zzpboard/internal/model"

// Summary holds the headline totals for a filtered activity set. The
// accumulators are raw sums; rounding happens only at display time.
type Summary struct {
	TotalHours    float64 `json:"total_hours"`
	TotalEarnings float64 `json:"total_earnings"`
	TotalExpenses float64 `json:"total_expenses"`
	ActivityCount int     `json:"activity_count"`
}

// Summarize computes hour, earning and expense totals over activities.
// Missing numeric fields count as zero.
func Summarize(activities []model.Activity) Summary {
	var s Summary
	s.ActivityCount = len(activities)

	for _, a := range activities {
		switch a.Type {
		case model.ActivityTimeEntry:
			if a.Hours != nil {
				s.TotalHours += *a.Hours
			}
			if a.Amount != nil {
				s.TotalEarnings += *a.Amount
			}
		case model.ActivityExpense:
			if a.Amount != nil {
				s.TotalExpenses += *a.Amount
			}
		}
	}

	return s
}
