package feed

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
)

type CalendarCSV struct {
	ServiceID string `csv:"service_id"`
	StartDate string `csv:"start_date"`
	EndDate   string `csv:"end_date"`
	Monday    int8   `csv:"monday"`
	Tuesday   int8   `csv:"tuesday"`
	Wednesday int8   `csv:"wednesday"`
	Thursday  int8   `csv:"thursday"`
	Friday    int8   `csv:"friday"`
	Saturday  int8   `csv:"saturday"`
	Sunday    int8   `csv:"sunday"`
}

func ParseCalendars(data io.Reader) ([]Calendar, error) {
	data, err := checkHeader(data, "calendar", "service_id", "start_date", "end_date",
		"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday")
	if err != nil {
		return nil, err
	}

	calendarCsv := []*CalendarCSV{}
	if err := gocsv.Unmarshal(data, &calendarCsv); err != nil {
		return nil, fmt.Errorf("unmarshaling calendar csv: %w", err)
	}

	seen := map[string]bool{}
	calendars := make([]Calendar, 0, len(calendarCsv))
	for _, c := range calendarCsv {
		if c.ServiceID == "" {
			return nil, fmt.Errorf("empty service_id")
		}
		if seen[c.ServiceID] {
			return nil, fmt.Errorf("repeated service_id '%s'", c.ServiceID)
		}
		seen[c.ServiceID] = true

		var weekday int8
		for day, flag := range map[time.Weekday]int8{
			time.Monday:    c.Monday,
			time.Tuesday:   c.Tuesday,
			time.Wednesday: c.Wednesday,
			time.Thursday:  c.Thursday,
			time.Friday:    c.Friday,
			time.Saturday:  c.Saturday,
			time.Sunday:    c.Sunday,
		} {
			if flag == 1 {
				weekday |= 1 << day
			}
		}

		if _, err := time.ParseInLocation("20060102", c.StartDate, time.UTC); err != nil {
			return nil, fmt.Errorf("parsing start_date: %w", err)
		}
		if _, err := time.ParseInLocation("20060102", c.EndDate, time.UTC); err != nil {
			return nil, fmt.Errorf("parsing end_date: %w", err)
		}

		calendars = append(calendars, Calendar{
			ServiceID: c.ServiceID,
			StartDate: c.StartDate,
			EndDate:   c.EndDate,
			Weekday:   weekday,
		})
	}

	return calendars, nil
}
