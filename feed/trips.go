package feed

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

type TripCSV struct {
	ID        string `csv:"trip_id"`
	RouteID   string `csv:"route_id"`
	ServiceID string `csv:"service_id"`
	Headsign  string `csv:"trip_headsign"`
}

func ParseTrips(data io.Reader) (map[string]Trip, error) {
	data, err := checkHeader(data, "trips", "trip_id", "service_id", "trip_headsign", "route_id")
	if err != nil {
		return nil, err
	}

	tripCsv := []*TripCSV{}
	if err := gocsv.Unmarshal(data, &tripCsv); err != nil {
		return nil, fmt.Errorf("unmarshaling trips csv: %w", err)
	}

	trips := map[string]Trip{}
	for _, t := range tripCsv {
		if t.ID == "" {
			return nil, fmt.Errorf("empty trip_id")
		}
		if _, found := trips[t.ID]; found {
			return nil, fmt.Errorf("repeated trip_id '%s'", t.ID)
		}
		if t.ServiceID == "" {
			return nil, fmt.Errorf("trip '%s' has no service_id", t.ID)
		}

		trips[t.ID] = Trip{
			ID:        t.ID,
			RouteID:   t.RouteID,
			ServiceID: t.ServiceID,
			Headsign:  t.Headsign,
		}
	}

	return trips, nil
}
