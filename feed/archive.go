package feed

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// An opened static feed archive. Mandatory tables are guaranteed
// present; optional tables parse to empty when absent.
type Archive struct {
	files map[string]*zip.File
}

var (
	mandatoryTables = []string{"stops.txt", "trips.txt", "stop_times.txt"}
	optionalTables  = []string{"routes.txt", "calendar.txt", "calendar_dates.txt"}
)

func OpenArchive(buf []byte) (*Archive, error) {
	r, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return nil, fmt.Errorf("unzipping: %w", err)
	}

	known := map[string]bool{}
	for _, name := range mandatoryTables {
		known[name] = true
	}
	for _, name := range optionalTables {
		known[name] = true
	}

	files := map[string]*zip.File{}
	for _, f := range r.File {
		// There should not be any subdirectories. But, some
		// agencies don't care.
		if f.FileInfo().IsDir() {
			continue
		}
		path := strings.Split(f.Name, "/")
		fName := path[len(path)-1]

		if known[fName] {
			files[fName] = f
		}
	}

	for _, required := range mandatoryTables {
		if files[required] == nil {
			return nil, fmt.Errorf("missing %s", required)
		}
	}

	return &Archive{files: files}, nil
}

func (a *Archive) open(name string) (io.ReadCloser, error) {
	f := a.files[name]
	if f == nil {
		return nil, nil
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	return rc, nil
}

func (a *Archive) Stops() ([]Stop, error) {
	rc, err := a.open("stops.txt")
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	stops, err := ParseStops(rc)
	if err != nil {
		return nil, fmt.Errorf("parsing stops.txt: %w", err)
	}
	return stops, nil
}

func (a *Archive) Trips() (map[string]Trip, error) {
	rc, err := a.open("trips.txt")
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	trips, err := ParseTrips(rc)
	if err != nil {
		return nil, fmt.Errorf("parsing trips.txt: %w", err)
	}
	return trips, nil
}

func (a *Archive) Routes() (map[string]Route, error) {
	rc, err := a.open("routes.txt")
	if err != nil || rc == nil {
		return map[string]Route{}, err
	}
	defer rc.Close()

	routes, err := ParseRoutes(rc)
	if err != nil {
		return nil, fmt.Errorf("parsing routes.txt: %w", err)
	}
	return routes, nil
}

func (a *Archive) Calendars() ([]Calendar, error) {
	rc, err := a.open("calendar.txt")
	if err != nil || rc == nil {
		return []Calendar{}, err
	}
	defer rc.Close()

	calendars, err := ParseCalendars(rc)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar.txt: %w", err)
	}
	return calendars, nil
}

func (a *Archive) CalendarDates() ([]CalendarDate, error) {
	rc, err := a.open("calendar_dates.txt")
	if err != nil || rc == nil {
		return []CalendarDate{}, err
	}
	defer rc.Close()

	dates, err := ParseCalendarDates(rc)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar_dates.txt: %w", err)
	}
	return dates, nil
}

// Streams stop_times.txt through fn without materializing the table.
func (a *Archive) EachStopTime(fn func(StopTime) error) error {
	rc, err := a.open("stop_times.txt")
	if err != nil {
		return err
	}
	defer rc.Close()

	if err := EachStopTime(rc, fn); err != nil {
		return fmt.Errorf("parsing stop_times.txt: %w", err)
	}
	return nil
}
