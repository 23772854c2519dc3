// Package stationboard answers one question: when are the next
// trains from station A to station B, given today's service calendar.
// It refreshes a static transit feed on a TTL and serves sorted
// upcoming departures for the configured station pair.
package stationboard

import (
	"fmt"
	"strings"
	"time"

	"departures.dev/stationboard/clock"
	"departures.dev/stationboard/feed"
)

// One indexed trip touching both stations. Departure is the HHMMSS
// time at the origin stop, Arrival at the destination stop. The two
// sides are filled in independently while scanning stop_times;
// buildSnapshot prunes entries that never got both.
type Journey struct {
	TripID       string
	Departure    string
	DepartureSeq uint32
	Arrival      string
	ArrivalSeq   uint32
}

// An immutable, internally consistent bundle of feed data, tied to
// one service date. A Snapshot is replaced wholesale on refresh,
// never mutated, so readers can hold one without locking.
type Snapshot struct {
	OriginID      string
	DestinationID string
	ServiceDate   string // YYYYMMDD the active set was computed for
	Routes        map[string]feed.Route
	Trips         map[string]feed.Trip
	Active        map[string]bool
	Journeys      map[string]*Journey
	FetchedAt     time.Time
}

func buildSnapshot(
	archive *feed.Archive,
	origin string,
	destination string,
	day clock.Day,
	fetchedAt time.Time,
) (*Snapshot, error) {

	stops, err := archive.Stops()
	if err != nil {
		return nil, err
	}

	originID, err := resolveStop(stops, origin)
	if err != nil {
		return nil, err
	}
	destinationID, err := resolveStop(stops, destination)
	if err != nil {
		return nil, err
	}

	trips, err := archive.Trips()
	if err != nil {
		return nil, err
	}
	routes, err := archive.Routes()
	if err != nil {
		return nil, err
	}
	calendars, err := archive.Calendars()
	if err != nil {
		return nil, err
	}
	calendarDates, err := archive.CalendarDates()
	if err != nil {
		return nil, err
	}

	active := feed.ActiveServices(calendars, calendarDates, day.Date, day.Weekday)

	// Single pass over stop_times, keeping only rows touching the
	// two stations. The table can dwarf the rest of the feed; the
	// index stays proportional to the trips serving this pair.
	journeys := map[string]*Journey{}
	err = archive.EachStopTime(func(st feed.StopTime) error {
		if st.StopID != originID && st.StopID != destinationID {
			return nil
		}

		j := journeys[st.TripID]
		if j == nil {
			j = &Journey{TripID: st.TripID}
			journeys[st.TripID] = j
		}
		if st.StopID == originID {
			j.Departure = st.Departure
			j.DepartureSeq = st.StopSequence
		}
		if st.StopID == destinationID {
			j.Arrival = st.Arrival
			j.ArrivalSeq = st.StopSequence
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Trips touching only one of the two stops never become
	// departures.
	for tripID, j := range journeys {
		if j.Departure == "" || j.Arrival == "" {
			delete(journeys, tripID)
		}
	}

	return &Snapshot{
		OriginID:      originID,
		DestinationID: destinationID,
		ServiceDate:   day.Date,
		Routes:        routes,
		Trips:         trips,
		Active:        active,
		Journeys:      journeys,
		FetchedAt:     fetchedAt,
	}, nil
}

// Resolves a station display name to a stop ID by case-insensitive
// substring match, taking the first stop that matches in table order.
func resolveStop(stops []feed.Stop, name string) (string, error) {
	needle := strings.ToLower(name)
	for _, stop := range stops {
		if strings.Contains(strings.ToLower(stop.Name), needle) {
			return stop.ID, nil
		}
	}
	return "", fmt.Errorf("no stop matching station %q", name)
}
