// Package format renders derived values for display: euro amounts in the
// Dutch locale, dashboard dates, and hour totals. Formatting is one-way:
// accumulators stay unrounded, only the rendered strings are shaped here.
package format

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Dutch)

// EUR renders a monetary amount with Dutch digit grouping and decimal comma.
func EUR(amount float64) string {
	return printer.Sprintf("€ %.2f", amount)
}

// Hours renders an hour total to one decimal place.
func Hours(hours float64) string {
	return fmt.Sprintf("%.1f", hours)
}

// Date renders a date the way the dashboard shows it.
func Date(t time.Time) string {
	return t.Format("02-01-2006")
}

// DayHeading renders a feed group day ("2006-01-02" keys) as a heading.
func DayHeading(day string) string {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return day
	}
	return t.Format("Monday, 02 Jan 2006")
}
