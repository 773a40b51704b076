package util

import (
	"fmt"
	"time"
)

// IsLeapYear reports whether year has a 29th of February
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in the given month
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// ClampDay limits day to [1, lastDay]
func ClampDay(day, lastDay int) int {
	if day < 1 {
		return 1
	}
	if day > lastDay {
		return lastDay
	}
	return day
}

// AddMonths moves (year, month) by n months, n may be negative
func AddMonths(year int, month time.Month, n int) (int, time.Month) {
	idx := year*12 + int(month) - 1 + n
	y := idx / 12
	m := idx % 12
	if m < 0 {
		m += 12
		y--
	}
	return y, time.Month(m + 1)
}

// MonthsBetween returns the number of whole calendar months from (fromYear, fromMonth)
// to (toYear, toMonth). Negative when the target precedes the origin.
func MonthsBetween(fromYear int, fromMonth time.Month, toYear int, toMonth time.Month) int {
	return (toYear-fromYear)*12 + int(toMonth) - int(fromMonth)
}

// CalculateActualDate returns the actual date for a target day in a given month,
// handling months with fewer days (e.g., day 31 in February returns Feb 28/29)
func CalculateActualDate(year int, month time.Month, targetDay int) time.Time {
	day := ClampDay(targetDay, DaysInMonth(year, month))
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ShiftDate moves ref by n calendar months, keeping its day where the target month allows it
func ShiftDate(ref time.Time, n int) time.Time {
	y, m := AddMonths(ref.Year(), ref.Month(), n)
	return CalculateActualDate(y, m, ref.Day())
}

// FirstOfMonth returns midnight UTC on the first day of the given month
func FirstOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

// MonthLabel formats a month as "January 2026"
func MonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month.String(), year)
}

// MonthKey formats a month as "2026-01"
func MonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}
