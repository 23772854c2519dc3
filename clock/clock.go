// Package clock supplies the current date, weekday and time-of-day
// for a named timezone, so schedule computations stay pure functions
// of their inputs.
package clock

import (
	"fmt"
	"time"
)

// A calendar day as seen from the feed's timezone.
type Day struct {
	Date    string // YYYYMMDD
	Weekday time.Weekday
	Seconds int // since local midnight
}

type Clock interface {
	Now() time.Time
	Today() Day
}

// System reads the wall clock in a fixed location.
type System struct {
	location *time.Location
}

func NewSystem(timezone string) (*System, error) {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone: %w", err)
	}
	return &System{location: location}, nil
}

func (s *System) Now() time.Time {
	return time.Now().In(s.location)
}

func (s *System) Today() Day {
	return DayOf(s.Now())
}

// Fixed reports the same instant forever. For tests.
type Fixed struct {
	Time time.Time
}

func (f Fixed) Now() time.Time {
	return f.Time
}

func (f Fixed) Today() Day {
	return DayOf(f.Time)
}

func DayOf(t time.Time) Day {
	return Day{
		Date:    t.Format("20060102"),
		Weekday: t.Weekday(),
		Seconds: t.Hour()*3600 + t.Minute()*60 + t.Second(),
	}
}
