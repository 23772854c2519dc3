package feed

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

type RouteCSV struct {
	ID        string `csv:"route_id"`
	ShortName string `csv:"route_short_name"`
	LongName  string `csv:"route_long_name"`
}

func ParseRoutes(data io.Reader) (map[string]Route, error) {
	data, err := checkHeader(data, "routes", "route_id", "route_short_name", "route_long_name")
	if err != nil {
		return nil, err
	}

	routeCsv := []*RouteCSV{}
	if err := gocsv.Unmarshal(data, &routeCsv); err != nil {
		return nil, fmt.Errorf("unmarshaling routes csv: %w", err)
	}

	routes := map[string]Route{}
	for _, r := range routeCsv {
		if r.ID == "" {
			return nil, fmt.Errorf("route has no route_id")
		}
		if _, found := routes[r.ID]; found {
			return nil, fmt.Errorf("repeated route_id '%s'", r.ID)
		}

		routes[r.ID] = Route{
			ID:        r.ID,
			ShortName: r.ShortName,
			LongName:  r.LongName,
		}
	}

	return routes, nil
}
