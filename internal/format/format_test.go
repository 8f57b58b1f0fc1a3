package format

import (
	"testing"
	"time"
)

func TestEUR(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{30, "€ 30,00"},
		{1234.5, "€ 1.234,50"},
		{0, "€ 0,00"},
	}
	for _, tt := range tests {
		if got := EUR(tt.amount); got != tt.want {
			t.Errorf("EUR(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestHours(t *testing.T) {
	if got := Hours(2); got != "2.0" {
		t.Errorf("Hours(2) = %q, want \"2.0\"", got)
	}
	if got := Hours(2.25); got != "2.2" {
		t.Errorf("Hours(2.25) = %q, want \"2.2\"", got)
	}
}

func TestDate(t *testing.T) {
	d := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	if got := Date(d); got != "20-08-2026" {
		t.Errorf("Date() = %q, want 20-08-2026", got)
	}
}

func TestDayHeading(t *testing.T) {
	if got := DayHeading("2026-08-20"); got != "Thursday, 20 Aug 2026" {
		t.Errorf("DayHeading() = %q", got)
	}
	// malformed keys fall back to the raw key
	if got := DayHeading("not-a-day"); got != "not-a-day" {
		t.Errorf("DayHeading() = %q, want passthrough", got)
	}
}
