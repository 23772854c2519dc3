package feed

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

type StopCSV struct {
	ID   string `csv:"stop_id"`
	Name string `csv:"stop_name"`
}

func ParseStops(data io.Reader) ([]Stop, error) {
	data, err := checkHeader(data, "stops", "stop_id", "stop_name")
	if err != nil {
		return nil, err
	}

	stopCsv := []*StopCSV{}
	if err := gocsv.Unmarshal(data, &stopCsv); err != nil {
		return nil, fmt.Errorf("unmarshaling stops csv: %w", err)
	}

	seen := map[string]bool{}
	stops := make([]Stop, 0, len(stopCsv))
	for _, st := range stopCsv {
		if st.ID == "" {
			return nil, fmt.Errorf("empty stop_id")
		}
		if seen[st.ID] {
			return nil, fmt.Errorf("repeated stop_id '%s'", st.ID)
		}
		seen[st.ID] = true

		stops = append(stops, Stop{ID: st.ID, Name: st.Name})
	}

	return stops, nil
}
