package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestActiveServices(t *testing.T) {
	weekdays := Calendar{
		ServiceID: "wd",
		StartDate: "20250101",
		EndDate:   "20251231",
		Weekday: 1<<time.Monday | 1<<time.Tuesday | 1<<time.Wednesday |
			1<<time.Thursday | 1<<time.Friday,
	}

	for _, tc := range []struct {
		name      string
		calendars []Calendar
		dates     []CalendarDate
		date      string
		weekday   time.Weekday
		expected  map[string]bool
	}{
		{
			"weekday match",
			[]Calendar{weekdays},
			nil,
			"20250602", time.Monday,
			map[string]bool{"wd": true},
		},
		{
			"weekday flag unset",
			[]Calendar{weekdays},
			nil,
			"20250601", time.Sunday,
			map[string]bool{},
		},
		{
			"date before range",
			[]Calendar{weekdays},
			nil,
			"20241230", time.Monday,
			map[string]bool{},
		},
		{
			"date after range",
			[]Calendar{weekdays},
			nil,
			"20260105", time.Monday,
			map[string]bool{},
		},
		{
			"range bounds inclusive",
			[]Calendar{{ServiceID: "s", StartDate: "20250602", EndDate: "20250602", Weekday: 1 << time.Monday}},
			nil,
			"20250602", time.Monday,
			map[string]bool{"s": true},
		},
		{
			"removal beats rule",
			[]Calendar{weekdays},
			[]CalendarDate{{ServiceID: "wd", Date: "20250602", ExceptionType: ExceptionRemoved}},
			"20250602", time.Monday,
			map[string]bool{},
		},
		{
			"addition without rule",
			nil,
			[]CalendarDate{{ServiceID: "extra", Date: "20250601", ExceptionType: ExceptionAdded}},
			"20250601", time.Sunday,
			map[string]bool{"extra": true},
		},
		{
			"exception for another date ignored",
			[]Calendar{weekdays},
			[]CalendarDate{{ServiceID: "wd", Date: "20250603", ExceptionType: ExceptionRemoved}},
			"20250602", time.Monday,
			map[string]bool{"wd": true},
		},
		{
			// Conflicting exceptions apply in row order; the
			// last row wins.
			"conflict add then remove",
			[]Calendar{weekdays},
			[]CalendarDate{
				{ServiceID: "wd", Date: "20250602", ExceptionType: ExceptionAdded},
				{ServiceID: "wd", Date: "20250602", ExceptionType: ExceptionRemoved},
			},
			"20250602", time.Monday,
			map[string]bool{},
		},
		{
			"conflict remove then add",
			[]Calendar{weekdays},
			[]CalendarDate{
				{ServiceID: "wd", Date: "20250602", ExceptionType: ExceptionRemoved},
				{ServiceID: "wd", Date: "20250602", ExceptionType: ExceptionAdded},
			},
			"20250602", time.Monday,
			map[string]bool{"wd": true},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			active := ActiveServices(tc.calendars, tc.dates, tc.date, tc.weekday)
			assert.Equal(t, tc.expected, active)
		})
	}
}
