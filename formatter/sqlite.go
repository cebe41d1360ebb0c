package formatter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteFileName is the name WriteSQLite uses, after the prefix.
const SQLiteFileName = "feed.db"

var schema = []string{
	`CREATE TABLE runs (
		run_id TEXT PRIMARY KEY,
		generated_at TEXT NOT NULL,
		agency TEXT NOT NULL,
		feed_name TEXT NOT NULL
	)`,
	`CREATE TABLE routes (
		route_id INTEGER PRIMARY KEY,
		raw_id TEXT NOT NULL,
		short_name TEXT NOT NULL,
		long_name TEXT NOT NULL,
		color TEXT
	)`,
	`CREATE TABLE stops (
		stop_id INTEGER PRIMARY KEY,
		raw_id TEXT NOT NULL UNIQUE,
		code TEXT NOT NULL,
		name TEXT NOT NULL,
		lat REAL NOT NULL,
		lon REAL NOT NULL
	)`,
	`CREATE TABLE trips (
		raw_id TEXT PRIMARY KEY,
		route_id INTEGER NOT NULL REFERENCES routes(route_id),
		service_id TEXT NOT NULL,
		direction_id INTEGER NOT NULL,
		headsign TEXT NOT NULL
	)`,
	`CREATE TABLE trip_stops (
		trip_id TEXT NOT NULL REFERENCES trips(raw_id),
		seq INTEGER NOT NULL,
		stop_id INTEGER NOT NULL REFERENCES stops(stop_id),
		PRIMARY KEY (trip_id, seq)
	)`,
	`CREATE TABLE calendars (
		service_id TEXT PRIMARY KEY,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		weekdays TEXT NOT NULL
	)`,
	`CREATE TABLE calendar_dates (
		service_id TEXT NOT NULL,
		date TEXT NOT NULL,
		added INTEGER NOT NULL,
		PRIMARY KEY (service_id, date)
	)`,
	`CREATE TABLE template_anchors (
		route_id INTEGER NOT NULL,
		direction_id INTEGER NOT NULL,
		headsign TEXT NOT NULL,
		seq INTEGER NOT NULL,
		stop_id INTEGER NOT NULL,
		PRIMARY KEY (route_id, direction_id, seq)
	)`,
}

// WriteSQLite writes env to a fresh <dir>/<prefix>feed.db and returns the
// path. An existing database of the same name is replaced.
func WriteSQLite(ctx context.Context, dir, prefix string, env Envelope) (string, error) {
	if env.Feed == nil {
		return "", errors.New("write sqlite: empty feed")
	}
	path := filepath.Join(dir, prefix+SQLiteFileName)

	err := withDirLock(ctx, dir, func() error {
		tmp := path + ".tmp"
		_ = os.Remove(tmp)
		if err := writeDatabase(ctx, tmp, env); err != nil {
			_ = os.Remove(tmp)
			return err
		}
		if err := os.Rename(tmp, path); err != nil {
			_ = os.Remove(tmp)
			return fmt.Errorf("rename %s: %w", tmp, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

func writeDatabase(ctx context.Context, path string, env Envelope) (err error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite db: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close sqlite db: %w", cerr)
		}
	}()

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("apply pragma: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	if err := insertFeed(ctx, tx, env); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func insertFeed(ctx context.Context, tx *sql.Tx, env Envelope) error {
	feed := env.Feed
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, generated_at, agency, feed_name) VALUES (?, ?, ?, ?)`,
		env.RunID, env.GeneratedAt, env.Agency, env.FeedName,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	err := insertRows(ctx, tx, "routes",
		`INSERT INTO routes (route_id, raw_id, short_name, long_name, color) VALUES (?, ?, ?, ?, ?)`,
		len(feed.Routes), func(i int) []any {
			r := feed.Routes[i]
			var color any
			if r.Color != nil {
				color = *r.Color
			}
			return []any{r.ID, r.RawID, r.ShortName, r.LongName, color}
		})
	if err != nil {
		return err
	}

	err = insertRows(ctx, tx, "stops",
		`INSERT INTO stops (stop_id, raw_id, code, name, lat, lon) VALUES (?, ?, ?, ?, ?, ?)`,
		len(feed.Stops), func(i int) []any {
			s := feed.Stops[i]
			return []any{int64(s.ID), s.RawID, s.Code, s.Name, s.Lat, s.Lon}
		})
	if err != nil {
		return err
	}

	err = insertRows(ctx, tx, "trips",
		`INSERT INTO trips (raw_id, route_id, service_id, direction_id, headsign) VALUES (?, ?, ?, ?, ?)`,
		len(feed.Trips), func(i int) []any {
			t := feed.Trips[i]
			return []any{t.RawID, t.RouteID, t.ServiceID, t.DirectionID, t.Headsign}
		})
	if err != nil {
		return err
	}

	type tripStop struct {
		trip string
		seq  int
		stop int64
	}
	var tripStops []tripStop
	for _, t := range feed.Trips {
		for seq, s := range t.StopIDs {
			tripStops = append(tripStops, tripStop{t.RawID, seq, int64(s)})
		}
	}
	err = insertRows(ctx, tx, "trip_stops",
		`INSERT INTO trip_stops (trip_id, seq, stop_id) VALUES (?, ?, ?)`,
		len(tripStops), func(i int) []any {
			ts := tripStops[i]
			return []any{ts.trip, ts.seq, ts.stop}
		})
	if err != nil {
		return err
	}

	err = insertRows(ctx, tx, "calendars",
		`INSERT INTO calendars (service_id, start_date, end_date, weekdays) VALUES (?, ?, ?, ?)`,
		len(feed.Calendars), func(i int) []any {
			c := feed.Calendars[i]
			return []any{c.ServiceID, c.StartDate, c.EndDate, weekdayMask(c.Weekdays)}
		})
	if err != nil {
		return err
	}

	err = insertRows(ctx, tx, "calendar_dates",
		`INSERT INTO calendar_dates (service_id, date, added) VALUES (?, ?, ?)`,
		len(feed.CalendarDates), func(i int) []any {
			d := feed.CalendarDates[i]
			return []any{d.ServiceID, d.Date, d.Added}
		})
	if err != nil {
		return err
	}

	type anchor struct {
		route     int64
		direction int
		headsign  string
		seq       int
		stop      int64
	}
	var anchors []anchor
	for _, tmpl := range feed.Templates {
		for _, d := range tmpl.Directions {
			for seq, s := range d.Anchors {
				anchors = append(anchors, anchor{tmpl.RouteID, d.ID, d.Headsign, seq, int64(s)})
			}
		}
	}
	return insertRows(ctx, tx, "template_anchors",
		`INSERT INTO template_anchors (route_id, direction_id, headsign, seq, stop_id) VALUES (?, ?, ?, ?, ?)`,
		len(anchors), func(i int) []any {
			a := anchors[i]
			return []any{a.route, a.direction, a.headsign, a.seq, a.stop}
		})
}

func insertRows(ctx context.Context, tx *sql.Tx, table, query string, n int, row func(int) []any) error {
	if n == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare %s insert: %w", table, err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, row(i)...); err != nil {
			return fmt.Errorf("insert %s row %d: %w", table, i, err)
		}
	}
	return nil
}

// weekdayMask renders Monday..Sunday as a 7 character 0/1 string.
func weekdayMask(days [7]bool) string {
	var b strings.Builder
	for _, on := range days {
		if on {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
