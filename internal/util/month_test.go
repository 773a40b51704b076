package util

import (
	"testing"
	"time"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		want  int
	}{
		{"january", 2025, time.January, 31},
		{"april", 2025, time.April, 30},
		{"february common year", 2025, time.February, 28},
		{"february leap year", 2024, time.February, 29},
		{"february century non-leap", 1900, time.February, 28},
		{"february 400-year leap", 2000, time.February, 29},
		{"december", 2025, time.December, 31},
		{"november", 2025, time.November, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysInMonth(tt.year, tt.month); got != tt.want {
				t.Errorf("DaysInMonth(%d, %s) = %d, want %d", tt.year, tt.month, got, tt.want)
			}
		})
	}
}

func TestClampDay(t *testing.T) {
	tests := []struct {
		day, last, want int
	}{
		{31, 28, 28},
		{31, 30, 30},
		{15, 30, 15},
		{0, 31, 1},
		{-4, 31, 1},
		{29, 29, 29},
	}

	for _, tt := range tests {
		if got := ClampDay(tt.day, tt.last); got != tt.want {
			t.Errorf("ClampDay(%d, %d) = %d, want %d", tt.day, tt.last, got, tt.want)
		}
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     time.Month
		n         int
		wantYear  int
		wantMonth time.Month
	}{
		{"zero", 2025, time.March, 0, 2025, time.March},
		{"forward same year", 2025, time.March, 2, 2025, time.May},
		{"forward across year", 2025, time.November, 3, 2026, time.February},
		{"forward many years", 2023, time.June, 23, 2025, time.May},
		{"backward same year", 2025, time.March, -2, 2025, time.January},
		{"backward across year", 2025, time.January, -1, 2024, time.December},
		{"backward many", 2025, time.February, -14, 2023, time.December},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, m := AddMonths(tt.year, tt.month, tt.n)
			if y != tt.wantYear || m != tt.wantMonth {
				t.Errorf("AddMonths(%d, %s, %d) = (%d, %s), want (%d, %s)",
					tt.year, tt.month, tt.n, y, m, tt.wantYear, tt.wantMonth)
			}
		})
	}
}

func TestMonthsBetween(t *testing.T) {
	if got := MonthsBetween(2023, time.June, 2025, time.May); got != 23 {
		t.Errorf("expected 23, got %d", got)
	}
	if got := MonthsBetween(2023, time.June, 2023, time.May); got != -1 {
		t.Errorf("expected -1, got %d", got)
	}
	if got := MonthsBetween(2024, time.December, 2025, time.January); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
}

func TestCalculateActualDate(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     time.Month
		targetDay int
		wantDay   int
	}{
		{"day 31 in February non-leap", 2025, time.February, 31, 28},
		{"day 31 in February leap", 2024, time.February, 31, 29},
		{"day 31 in April", 2025, time.April, 31, 30},
		{"day 15 unchanged", 2025, time.April, 15, 15},
		{"day 31 in January", 2025, time.January, 31, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateActualDate(tt.year, tt.month, tt.targetDay)
			if got.Day() != tt.wantDay {
				t.Errorf("expected day %d, got %d", tt.wantDay, got.Day())
			}
			if got.Month() != tt.month || got.Year() != tt.year {
				t.Errorf("date rolled over into %s", got.Format("2006-01-02"))
			}
		})
	}
}

func TestShiftDate_ClampsInsteadOfRollingOver(t *testing.T) {
	ref := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)

	got := ShiftDate(ref, 1)
	want := time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ShiftDate(Jan 31, 1) = %s, want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}

	got = ShiftDate(ref, 2)
	want = time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ShiftDate(Jan 31, 2) = %s, want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestMonthLabelAndKey(t *testing.T) {
	if got := MonthLabel(2026, time.January); got != "January 2026" {
		t.Errorf("unexpected label %q", got)
	}
	if got := MonthKey(2026, time.March); got != "2026-03" {
		t.Errorf("unexpected key %q", got)
	}
}
