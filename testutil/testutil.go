package testutil

// Helpers for building feed archives in tests.

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// BuildZip assembles an in-memory zip archive from a map of file
// name to contents.
func BuildZip(t testing.TB, files map[string]string) []byte {
	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)

	for name, content := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return buf.Bytes()
}

// A minimal feed serving two stations, usable as a starting point
// for cache and server tests. Trip t1 departs Alpha Central 08:15
// and reaches Beta Square 08:42 on weekday service s1.
func BasicFeed(t testing.TB) []byte {
	return BuildZip(t, map[string]string{
		"stops.txt": `stop_id,stop_name
a,Alpha Central
b,Beta Square
c,Gamma Halt`,
		"routes.txt": `route_id,route_short_name,route_long_name
r1,L1,Alpha Line`,
		"trips.txt": `trip_id,service_id,trip_headsign,route_id
t1,s1,Beta Square,r1`,
		"stop_times.txt": `trip_id,arrival_time,departure_time,stop_id,stop_sequence
t1,08:14:00,08:15:00,a,3
t1,08:30:00,08:30:30,c,5
t1,08:42:00,08:43:00,b,7`,
		"calendar.txt": `service_id,start_date,end_date,monday,tuesday,wednesday,thursday,friday,saturday,sunday
s1,20200101,20301231,1,1,1,1,1,1,1`,
	})
}
