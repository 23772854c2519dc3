package feed

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
)

type CalendarDateCSV struct {
	ServiceID     string `csv:"service_id"`
	Date          string `csv:"date"`
	ExceptionType int8   `csv:"exception_type"`
}

// Row order is preserved: when a service has conflicting exceptions
// for one date, the last row wins during calendar resolution.
func ParseCalendarDates(data io.Reader) ([]CalendarDate, error) {
	data, err := checkHeader(data, "calendar_dates", "service_id", "date", "exception_type")
	if err != nil {
		return nil, err
	}

	calendarDateCsv := []*CalendarDateCSV{}
	if err := gocsv.Unmarshal(data, &calendarDateCsv); err != nil {
		return nil, fmt.Errorf("unmarshaling calendar_dates csv: %w", err)
	}

	dates := make([]CalendarDate, 0, len(calendarDateCsv))
	for _, cd := range calendarDateCsv {
		if cd.ServiceID == "" {
			return nil, fmt.Errorf("empty service_id")
		}
		if cd.ExceptionType != ExceptionAdded && cd.ExceptionType != ExceptionRemoved {
			return nil, fmt.Errorf("illegal exception_type: '%d'", cd.ExceptionType)
		}
		if _, err := time.ParseInLocation("20060102", cd.Date, time.UTC); err != nil {
			return nil, fmt.Errorf("parsing date '%s': %w", cd.Date, err)
		}

		dates = append(dates, CalendarDate{
			ServiceID:     cd.ServiceID,
			Date:          cd.Date,
			ExceptionType: cd.ExceptionType,
		})
	}

	return dates, nil
}
