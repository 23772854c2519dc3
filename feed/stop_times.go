package feed

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
)

type StopTimeCSV struct {
	TripID        string `csv:"trip_id"`
	StopID        string `csv:"stop_id"`
	StopSequence  uint32 `csv:"stop_sequence"`
	ArrivalTime   string `csv:"arrival_time"`
	DepartureTime string `csv:"departure_time"`
}

// Normalizes "H:MM:SS" or "HH:MM:SS" to "HHMMSS". Hours may exceed 23
// for service past midnight on its operating day.
func parseStopTimeTime(s string) (string, error) {
	split := strings.Split(s, ":")
	if len(split) != 3 {
		return "", fmt.Errorf("found %d parts in '%s'", len(split), s)
	}

	hms := [3]int{}
	for i, str := range split {
		j, err := strconv.Atoi(strings.TrimSpace(str))
		if err != nil {
			return "", fmt.Errorf("non-integer in '%s' pos %d", s, i)
		}
		hms[i] = j
	}

	if hms[0] < 0 || hms[0] > 99 {
		return "", fmt.Errorf("invalid hour in '%s'", s)
	}
	if hms[1] < 0 || hms[1] > 59 {
		return "", fmt.Errorf("invalid minute in '%s'", s)
	}
	if hms[2] < 0 || hms[2] > 59 {
		return "", fmt.Errorf("invalid second in '%s'", s)
	}

	return fmt.Sprintf("%02d%02d%02d", hms[0], hms[1], hms[2]), nil
}

// Seconds since midnight of the operating day for a normalized HHMMSS
// string. Values do not wrap at 24h: "253000" is 91800, not 5400.
func Seconds(hhmmss string) int {
	if len(hhmmss) != 6 {
		return 0
	}
	h, _ := strconv.Atoi(hhmmss[0:2])
	m, _ := strconv.Atoi(hhmmss[2:4])
	s, _ := strconv.Atoi(hhmmss[4:6])
	return h*3600 + m*60 + s
}

// Streams stop_times rows to fn in table order. The table can run to
// hundreds of thousands of rows, so it is never materialized here;
// callers keep only what they need.
func EachStopTime(data io.Reader, fn func(StopTime) error) error {
	data, err := checkHeader(data, "stop_times",
		"trip_id", "arrival_time", "departure_time", "stop_id", "stop_sequence")
	if err != nil {
		return err
	}

	i := 0
	err = gocsv.UnmarshalToCallbackWithError(data, func(st *StopTimeCSV) error {
		i++
		if st.TripID == "" {
			return fmt.Errorf("missing trip_id (row %d)", i)
		}
		if st.StopID == "" {
			return fmt.Errorf("missing stop_id (row %d)", i)
		}

		arrivalTime, err := parseStopTimeTime(st.ArrivalTime)
		if err != nil {
			return errors.Wrapf(err, "parsing arrival_time (row %d)", i)
		}
		departureTime, err := parseStopTimeTime(st.DepartureTime)
		if err != nil {
			return errors.Wrapf(err, "parsing departure_time (row %d)", i)
		}

		return fn(StopTime{
			TripID:       st.TripID,
			StopID:       st.StopID,
			StopSequence: st.StopSequence,
			Arrival:      arrivalTime,
			Departure:    departureTime,
		})
	})
	if err != nil {
		return errors.Wrap(err, "unmarshaling stop_times csv")
	}

	return nil
}
