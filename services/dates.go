package services

import (
	"fmt"
	"time"
)

// dateLayout is the canonical calendar-date format used across the prayer
// log, streak, and stats tables.
const dateLayout = "2006-01-02"

// MonthRange returns the inclusive string bounds for a month's prayer log
// rows. The end bound is a fixed day-31 string regardless of month length;
// dates are compared lexically in the store, so for shorter months the bound
// simply matches nothing past the real end of month.
func MonthRange(year, month int) (start, end string) {
	start = fmt.Sprintf("%04d-%02d-01", year, month)
	end = fmt.Sprintf("%04d-%02d-31", year, month)
	return start, end
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil && len(s) == len(dateLayout)
}

// ValidMonth reports whether s is a well-formed YYYY-MM month key.
func ValidMonth(s string) bool {
	_, err := time.Parse("2006-01", s)
	return err == nil && len(s) == len("2006-01")
}
