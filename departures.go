package stationboard

import (
	"fmt"
	"sort"

	"departures.dev/stationboard/feed"
)

const (
	// Shown when a trip's route is unknown or carries no name.
	FallbackLine = "Train"

	// Shown when a trip has no headsign.
	FallbackHeadsign = "-"
)

// A single upcoming departure, ready for display.
type Departure struct {
	Dep      string `json:"dep"`
	Arr      string `json:"arr"`
	Line     string `json:"line"`
	Headsign string `json:"headsign"`
}

// Departures returns up to limit departures from the origin station
// leaving at or after now (seconds since local midnight), ordered by
// departure time. A negative limit means no limit.
//
// Post-midnight schedule times don't wrap: a trip at 25:10:00 counts
// as 90600 seconds and stays ahead of any time-of-day below that.
// The method only reads the snapshot; identical inputs yield
// identical output.
func (s *Snapshot) Departures(now int, limit int) []Departure {
	type upcoming struct {
		seconds int
		tripID  string
		dep     Departure
	}

	matches := []upcoming{}
	for _, j := range s.Journeys {
		// A destination stop earlier in the trip's stop order
		// means the trip travels the other way.
		if j.DepartureSeq >= j.ArrivalSeq {
			continue
		}

		trip, ok := s.Trips[j.TripID]
		if !ok || !s.Active[trip.ServiceID] {
			continue
		}

		seconds := feed.Seconds(j.Departure)
		if seconds < now {
			continue
		}

		line := FallbackLine
		if route, ok := s.Routes[trip.RouteID]; ok {
			if route.ShortName != "" {
				line = route.ShortName
			} else if route.LongName != "" {
				line = route.LongName
			}
		}

		headsign := trip.Headsign
		if headsign == "" {
			headsign = FallbackHeadsign
		}

		matches = append(matches, upcoming{
			seconds: seconds,
			tripID:  j.TripID,
			dep: Departure{
				Dep:      hhmm(seconds),
				Arr:      hhmm(feed.Seconds(j.Arrival)),
				Line:     line,
				Headsign: headsign,
			},
		})
	}

	// Trip ID breaks ties so the order is stable across the
	// random map iteration above.
	sort.Slice(matches, func(i, k int) bool {
		if matches[i].seconds != matches[k].seconds {
			return matches[i].seconds < matches[k].seconds
		}
		return matches[i].tripID < matches[k].tripID
	})

	if limit >= 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	departures := make([]Departure, 0, len(matches))
	for _, m := range matches {
		departures = append(departures, m.dep)
	}
	return departures
}

// Post-midnight hours wrap for display: 90600 seconds shows as 01:10.
func hhmm(seconds int) string {
	return fmt.Sprintf("%02d:%02d", (seconds/3600)%24, (seconds%3600)/60)
}
