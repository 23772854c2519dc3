package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"departures.dev/stationboard"
	"departures.dev/stationboard/feed"
)

func testSnapshot() *stationboard.Snapshot {
	return &stationboard.Snapshot{
		OriginID:      "a",
		DestinationID: "b",
		ServiceDate:   "20250602",
		Routes: map[string]feed.Route{
			"r1": {ID: "r1", ShortName: "L1", LongName: "Alpha Line"},
		},
		Trips: map[string]feed.Trip{
			"t1": {ID: "t1", RouteID: "r1", ServiceID: "s1", Headsign: "Beta Square"},
		},
		Active: map[string]bool{"s1": true},
		Journeys: map[string]*stationboard.Journey{
			"t1": {TripID: "t1", Departure: "081500", DepartureSeq: 3, Arrival: "084200", ArrivalSeq: 7},
		},
		FetchedAt: time.Date(2025, 6, 2, 7, 55, 0, 0, time.UTC),
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	s, err := NewSQLite(":memory:")
	require.NoError(t, err)
	defer s.Close()

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	snap := testSnapshot()
	require.NoError(t, s.Save(snap))

	loaded, err = s.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, snap.OriginID, loaded.OriginID)
	assert.Equal(t, snap.DestinationID, loaded.DestinationID)
	assert.Equal(t, snap.ServiceDate, loaded.ServiceDate)
	assert.True(t, loaded.FetchedAt.Equal(snap.FetchedAt))
	assert.Equal(t, snap.Routes, loaded.Routes)
	assert.Equal(t, snap.Trips, loaded.Trips)
	assert.Equal(t, snap.Active, loaded.Active)
	assert.Equal(t, snap.Journeys, loaded.Journeys)
}

func TestSQLiteSaveReplaces(t *testing.T) {
	s, err := NewSQLite(":memory:")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Save(testSnapshot()))

	replacement := testSnapshot()
	replacement.ServiceDate = "20250603"
	replacement.Routes = map[string]feed.Route{}
	replacement.Active = map[string]bool{"s2": true}
	require.NoError(t, s.Save(replacement))

	loaded, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, "20250603", loaded.ServiceDate)
	assert.Empty(t, loaded.Routes)
	assert.Equal(t, map[string]bool{"s2": true}, loaded.Active)
}

func TestMemoryStore(t *testing.T) {
	m := NewMemory()

	loaded, err := m.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	snap := testSnapshot()
	require.NoError(t, m.Save(snap))

	loaded, err = m.Load()
	require.NoError(t, err)
	assert.Same(t, snap, loaded)
}
