package stationboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"departures.dev/stationboard/feed"
)

func boardSnapshot() *Snapshot {
	return &Snapshot{
		OriginID:      "a",
		DestinationID: "b",
		ServiceDate:   "20250602",
		Routes: map[string]feed.Route{
			"r1": {ID: "r1", ShortName: "L1", LongName: "Alpha Line"},
			"r2": {ID: "r2", LongName: "Beta Line"},
			"r3": {ID: "r3"},
		},
		Trips: map[string]feed.Trip{
			"t1": {ID: "t1", RouteID: "r1", ServiceID: "s1", Headsign: "Beta Square"},
		},
		Active: map[string]bool{"s1": true},
		Journeys: map[string]*Journey{
			"t1": {TripID: "t1", Departure: "081500", DepartureSeq: 3, Arrival: "084200", ArrivalSeq: 7},
		},
		FetchedAt: time.Now(),
	}
}

func TestDeparturesUpcoming(t *testing.T) {
	snap := boardSnapshot()

	departures := snap.Departures(8*3600, 3)
	assert.Equal(t, []Departure{
		{Dep: "08:15", Arr: "08:42", Line: "L1", Headsign: "Beta Square"},
	}, departures)
}

func TestDeparturesAlreadyDeparted(t *testing.T) {
	snap := boardSnapshot()

	assert.Empty(t, snap.Departures(8*3600+20*60, 3))

	// A trip departing exactly now is still listed.
	assert.Len(t, snap.Departures(8*3600+15*60, 3), 1)
}

func TestDeparturesInactiveService(t *testing.T) {
	snap := boardSnapshot()
	snap.Active = map[string]bool{}

	assert.Empty(t, snap.Departures(8*3600, 3))
}

func TestDeparturesWrongDirection(t *testing.T) {
	snap := boardSnapshot()
	snap.Journeys["t1"].DepartureSeq = 5
	snap.Journeys["t1"].ArrivalSeq = 2

	// Destination before origin in the stop order means the trip
	// runs the other way, no matter its times or service.
	assert.Empty(t, snap.Departures(0, 3))
}

func TestDeparturesPostMidnight(t *testing.T) {
	snap := boardSnapshot()
	snap.Journeys["t1"].Departure = "251000"
	snap.Journeys["t1"].Arrival = "253500"

	// 25:10 counts as 90600 seconds and never wraps to 01:10.
	departures := snap.Departures(86400+5*60, 3)
	assert.Equal(t, []Departure{
		{Dep: "01:10", Arr: "01:35", Line: "L1", Headsign: "Beta Square"},
	}, departures)

	assert.Empty(t, snap.Departures(25*3600+11*60, 3))
}

func TestDeparturesLineFallbacks(t *testing.T) {
	snap := boardSnapshot()
	snap.Trips["t1"] = feed.Trip{ID: "t1", RouteID: "r2", ServiceID: "s1", Headsign: "X"}
	assert.Equal(t, "Beta Line", snap.Departures(0, 3)[0].Line)

	snap.Trips["t1"] = feed.Trip{ID: "t1", RouteID: "r3", ServiceID: "s1", Headsign: "X"}
	assert.Equal(t, FallbackLine, snap.Departures(0, 3)[0].Line)

	snap.Trips["t1"] = feed.Trip{ID: "t1", RouteID: "missing", ServiceID: "s1", Headsign: "X"}
	assert.Equal(t, FallbackLine, snap.Departures(0, 3)[0].Line)
}

func TestDeparturesHeadsignFallback(t *testing.T) {
	snap := boardSnapshot()
	snap.Trips["t1"] = feed.Trip{ID: "t1", RouteID: "r1", ServiceID: "s1"}

	assert.Equal(t, FallbackHeadsign, snap.Departures(0, 3)[0].Headsign)
}

func TestDeparturesSortedAndLimited(t *testing.T) {
	snap := boardSnapshot()
	snap.Trips = map[string]feed.Trip{
		"t1": {ID: "t1", RouteID: "r1", ServiceID: "s1", Headsign: "A"},
		"t2": {ID: "t2", RouteID: "r1", ServiceID: "s1", Headsign: "B"},
		"t3": {ID: "t3", RouteID: "r1", ServiceID: "s1", Headsign: "C"},
		"t4": {ID: "t4", RouteID: "r1", ServiceID: "s1", Headsign: "D"},
	}
	snap.Journeys = map[string]*Journey{
		"t1": {TripID: "t1", Departure: "093000", DepartureSeq: 1, Arrival: "095500", ArrivalSeq: 5},
		"t2": {TripID: "t2", Departure: "081500", DepartureSeq: 1, Arrival: "084000", ArrivalSeq: 5},
		"t3": {TripID: "t3", Departure: "090000", DepartureSeq: 1, Arrival: "092500", ArrivalSeq: 5},
		"t4": {TripID: "t4", Departure: "101500", DepartureSeq: 1, Arrival: "104000", ArrivalSeq: 5},
	}

	departures := snap.Departures(8*3600, 3)
	assert.Len(t, departures, 3)
	assert.Equal(t, "08:15", departures[0].Dep)
	assert.Equal(t, "09:00", departures[1].Dep)
	assert.Equal(t, "09:30", departures[2].Dep)

	for i := 1; i < len(departures); i++ {
		assert.LessOrEqual(t, departures[i-1].Dep, departures[i].Dep)
	}
}

func TestDeparturesIdempotent(t *testing.T) {
	snap := boardSnapshot()

	first := snap.Departures(8*3600, 3)
	second := snap.Departures(8*3600, 3)
	assert.Equal(t, first, second)
}
