package util

import (
	"time"
)

// AddSecondsToDate returns midnight of date plus the given number of seconds.
// Service days can run past midnight so seconds may exceed 86400.
func AddSecondsToDate(date time.Time, seconds int64) time.Time {
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	return midnight.Add(time.Duration(seconds) * time.Second)
}

// WholeYearsBetween truncates the number of 365.25 day years between from and to
func WholeYearsBetween(from time.Time, to time.Time) int {
	days := to.Sub(from).Hours() / 24

	return int(days / 365.25)
}
