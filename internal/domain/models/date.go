package models

import "time"

// DateLayout is the calendar-date format used everywhere records and
// requests exchange dates.
const DateLayout = "2006-01-02"

// ValidDate reports whether s is a well-formed calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// MonthRange returns the first and last day of the given calendar month in
// the stored date format. Zero-padded range comparison on these bounds
// replaces prefix matching on the raw date strings.
func MonthRange(year, month int) (from, to string) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format(DateLayout), last.Format(DateLayout)
}
