package feed

import "time"

// ActiveServices computes the set of service IDs running on one
// calendar date (YYYYMMDD). A service is active if a calendar row's
// date range contains the date and its flag for the date's weekday is
// set. calendar_dates rows for the date then override: type 1 adds
// the service, type 2 removes it, applied in row order so the last
// entry wins on conflicts.
//
// The result is valid for that date only and must be recomputed for
// any other date.
func ActiveServices(calendars []Calendar, dates []CalendarDate, date string, weekday time.Weekday) map[string]bool {
	active := map[string]bool{}

	for _, c := range calendars {
		if c.StartDate <= date && date <= c.EndDate && c.Weekday&(1<<weekday) != 0 {
			active[c.ServiceID] = true
		}
	}

	for _, cd := range dates {
		if cd.Date != date {
			continue
		}
		switch cd.ExceptionType {
		case ExceptionAdded:
			active[cd.ServiceID] = true
		case ExceptionRemoved:
			delete(active, cd.ServiceID)
		}
	}

	return active
}
