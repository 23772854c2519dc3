package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"departures.dev/stationboard"
	"departures.dev/stationboard/feed"
)

// SQLite keeps the most recent snapshot on disk. Exactly one
// snapshot is stored; Save replaces it wholesale.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// A single connection keeps :memory: databases coherent.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS snapshot (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    fetched_at TIMESTAMP NOT NULL,
    service_date TEXT NOT NULL,
    origin_id TEXT NOT NULL,
    destination_id TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS route (
    route_id TEXT PRIMARY KEY,
    short_name TEXT NOT NULL,
    long_name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS trip (
    trip_id TEXT PRIMARY KEY,
    route_id TEXT NOT NULL,
    service_id TEXT NOT NULL,
    headsign TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS service (
    service_id TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS journey (
    trip_id TEXT PRIMARY KEY,
    departure TEXT NOT NULL,
    departure_seq INTEGER NOT NULL,
    arrival TEXT NOT NULL,
    arrival_seq INTEGER NOT NULL
);`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Save(snap *stationboard.Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"snapshot", "route", "trip", "service", "journey"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	_, err = tx.Exec(
		`INSERT INTO snapshot (id, fetched_at, service_date, origin_id, destination_id)
		 VALUES (1, ?, ?, ?, ?)`,
		snap.FetchedAt, snap.ServiceDate, snap.OriginID, snap.DestinationID,
	)
	if err != nil {
		return fmt.Errorf("writing snapshot row: %w", err)
	}

	for _, r := range snap.Routes {
		_, err = tx.Exec(
			"INSERT INTO route (route_id, short_name, long_name) VALUES (?, ?, ?)",
			r.ID, r.ShortName, r.LongName,
		)
		if err != nil {
			return fmt.Errorf("writing route '%s': %w", r.ID, err)
		}
	}

	for _, t := range snap.Trips {
		_, err = tx.Exec(
			"INSERT INTO trip (trip_id, route_id, service_id, headsign) VALUES (?, ?, ?, ?)",
			t.ID, t.RouteID, t.ServiceID, t.Headsign,
		)
		if err != nil {
			return fmt.Errorf("writing trip '%s': %w", t.ID, err)
		}
	}

	for serviceID := range snap.Active {
		if _, err = tx.Exec("INSERT INTO service (service_id) VALUES (?)", serviceID); err != nil {
			return fmt.Errorf("writing service '%s': %w", serviceID, err)
		}
	}

	for _, j := range snap.Journeys {
		_, err = tx.Exec(
			`INSERT INTO journey (trip_id, departure, departure_seq, arrival, arrival_seq)
			 VALUES (?, ?, ?, ?, ?)`,
			j.TripID, j.Departure, j.DepartureSeq, j.Arrival, j.ArrivalSeq,
		)
		if err != nil {
			return fmt.Errorf("writing journey '%s': %w", j.TripID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}

	return nil
}

// Load returns the stored snapshot, or nil if none has been saved.
func (s *SQLite) Load() (*stationboard.Snapshot, error) {
	snap := &stationboard.Snapshot{
		Routes:   map[string]feed.Route{},
		Trips:    map[string]feed.Trip{},
		Active:   map[string]bool{},
		Journeys: map[string]*stationboard.Journey{},
	}

	var fetchedAt time.Time
	err := s.db.QueryRow(
		"SELECT fetched_at, service_date, origin_id, destination_id FROM snapshot WHERE id = 1",
	).Scan(&fetchedAt, &snap.ServiceDate, &snap.OriginID, &snap.DestinationID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot row: %w", err)
	}
	snap.FetchedAt = fetchedAt

	err = s.each("SELECT route_id, short_name, long_name FROM route", func(rows *sql.Rows) error {
		var r feed.Route
		if err := rows.Scan(&r.ID, &r.ShortName, &r.LongName); err != nil {
			return err
		}
		snap.Routes[r.ID] = r
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading routes: %w", err)
	}

	err = s.each("SELECT trip_id, route_id, service_id, headsign FROM trip", func(rows *sql.Rows) error {
		var t feed.Trip
		if err := rows.Scan(&t.ID, &t.RouteID, &t.ServiceID, &t.Headsign); err != nil {
			return err
		}
		snap.Trips[t.ID] = t
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading trips: %w", err)
	}

	err = s.each("SELECT service_id FROM service", func(rows *sql.Rows) error {
		var serviceID string
		if err := rows.Scan(&serviceID); err != nil {
			return err
		}
		snap.Active[serviceID] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading services: %w", err)
	}

	err = s.each("SELECT trip_id, departure, departure_seq, arrival, arrival_seq FROM journey", func(rows *sql.Rows) error {
		j := &stationboard.Journey{}
		if err := rows.Scan(&j.TripID, &j.Departure, &j.DepartureSeq, &j.Arrival, &j.ArrivalSeq); err != nil {
			return err
		}
		snap.Journeys[j.TripID] = j
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading journeys: %w", err)
	}

	return snap, nil
}

func (s *SQLite) each(query string, scan func(*sql.Rows) error) error {
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}

	return rows.Err()
}
