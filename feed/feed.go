// Package feed parses static GTFS archives: a zip of CSV tables
// describing stops, routes, trips, per-stop schedule times and the
// service calendar.
package feed

// Calendar exception types, per calendar_dates.txt.
const (
	ExceptionAdded   int8 = 1
	ExceptionRemoved int8 = 2
)

type Stop struct {
	ID   string
	Name string
}

type Route struct {
	ID        string
	ShortName string
	LongName  string
}

type Trip struct {
	ID        string
	RouteID   string
	ServiceID string
	Headsign  string
}

// A recurring weekly service pattern, valid between StartDate and
// EndDate (both YYYYMMDD, inclusive). Weekday is a bitmask keyed by
// time.Weekday.
type Calendar struct {
	ServiceID string
	StartDate string
	EndDate   string
	Weekday   int8
}

// A single-date override of the weekly pattern.
type CalendarDate struct {
	ServiceID     string
	Date          string
	ExceptionType int8
}

// One scheduled stop of one trip. Arrival and Departure are
// normalized HHMMSS strings; the hour may exceed 23 for trips running
// past midnight on their operating day.
type StopTime struct {
	TripID       string
	StopID       string
	StopSequence uint32
	Arrival      string
	Departure    string
}
