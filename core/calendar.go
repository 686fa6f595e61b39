package core

import (
	"time"

	"github.com/nel-office/attendance/config"
)

// MakeWorkdays enumerates the workdays of one month in ascending order.
// A date is a workday when it is whitelisted as an extra workday, or when it
// falls on Monday-Friday and is not a configured holiday. With maxDate set,
// dates after it are dropped (maxDate itself is kept).
func MakeWorkdays(year int, month time.Month, maxDate *time.Time, cfg *config.Configuration) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := make([]time.Time, 0, 23)
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		if !cfg.IsExtraWorkday(d) {
			if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
				continue
			}
			if cfg.IsHoliday(d) {
				continue
			}
		}
		if maxDate != nil && d.After(*maxDate) {
			continue
		}
		days = append(days, d)
	}
	return days
}

// NextWorkday advances from by n weekday steps. Unlike MakeWorkdays it
// ignores the holiday and extra-workday configuration on purpose: split
// continuation days land on plain weekdays.
func NextWorkday(from time.Time, n int) time.Time {
	d := from
	for i := 0; i < n; i++ {
		for {
			d = d.AddDate(0, 0, 1)
			if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
				break
			}
		}
	}
	return d
}
