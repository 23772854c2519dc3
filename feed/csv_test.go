package feed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStopsQuoting(t *testing.T) {
	// Quoted fields may contain the delimiter and doubled-quote
	// escapes; both must round-trip exactly.
	stops, err := ParseStops(strings.NewReader(
		`stop_id,stop_name
"s,1","Foo ""Central"" Station"
s2,Plain`))
	require.NoError(t, err)

	assert.Equal(t, []Stop{
		{ID: `s,1`, Name: `Foo "Central" Station`},
		{ID: "s2", Name: "Plain"},
	}, stops)
}

func TestParseStopsDropsMismatchedRows(t *testing.T) {
	// Rows with too few or too many fields are dropped, not
	// reported.
	stops, err := ParseStops(strings.NewReader(
		`stop_id,stop_name
s1,First
just_one_field
s2,Second,extra,fields
s3,Third`))
	require.NoError(t, err)

	assert.Equal(t, []Stop{
		{ID: "s1", Name: "First"},
		{ID: "s3", Name: "Third"},
	}, stops)
}

func TestParseStopsMissingColumn(t *testing.T) {
	_, err := ParseStops(strings.NewReader(
		`stop_id,stop_desc
s1,whatever`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column stop_name")
}

func TestParseStopsEmptyTable(t *testing.T) {
	_, err := ParseStops(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty table")
}

func TestParseStopsRepeatedID(t *testing.T) {
	_, err := ParseStops(strings.NewReader(
		`stop_id,stop_name
s1,First
s1,Again`))
	require.Error(t, err)
}

func TestCheckHeaderSkipsLeadingBlankLines(t *testing.T) {
	stops, err := ParseStops(strings.NewReader(
		"\n\nstop_id,stop_name\ns1,First\n"))
	require.NoError(t, err)
	assert.Len(t, stops, 1)
}
