package gtfs

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"slices"
	"strings"
	"time"

	gtfsstatic "github.com/jamespfennell/gtfs"

	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/config"
)

const dateLayout = "20060102"

// NewFeedFromBytes decodes a GTFS static zip held in memory.
func NewFeedFromBytes(data []byte) (*Feed, error) {
	static, err := gtfsstatic.ParseStatic(data, gtfsstatic.ParseStaticOptions{})
	if err != nil {
		return nil, fmt.Errorf("parse gtfs zip: %w", err)
	}
	return fromStatic(static), nil
}

// NewFeedFromFile decodes a GTFS static zip on disk.
func NewFeedFromFile(path string) (*Feed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewFeedFromBytes(data)
}

// NewFeedFromURL downloads and decodes a GTFS static zip.
func NewFeedFromURL(ctx context.Context, url string, timeout time.Duration) (*Feed, error) {
	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return NewFeedFromBytes(data)
}

// NewFeedFromConfig loads the feed described by cfg. A readable gob snapshot
// at cfg.CachePath short-circuits decoding; a fresh decode refreshes it.
func NewFeedFromConfig(ctx context.Context, cfg config.GTFSConfig) (*Feed, error) {
	if cfg.CachePath != "" {
		if feed, err := DeserializeFeedFromFile(cfg.CachePath); err == nil {
			log.Printf("gtfs: loaded cached feed from %s", cfg.CachePath)
			return feed, nil
		}
	}

	var (
		feed *Feed
		err  error
	)
	switch {
	case cfg.Path != "":
		feed, err = NewFeedFromFile(cfg.Path)
	case cfg.StaticURL != "":
		feed, err = NewFeedFromURL(ctx, cfg.StaticURL, time.Duration(cfg.TimeoutMS)*time.Millisecond)
	default:
		return nil, fmt.Errorf("gtfs: neither path nor staticURL configured")
	}
	if err != nil {
		return nil, err
	}

	if cfg.CachePath != "" {
		if err := SerializeFeedToFile(feed, cfg.CachePath); err != nil {
			log.Printf("gtfs: cache write failed: %v", err)
		}
	}
	return feed, nil
}

func fromStatic(static *gtfsstatic.Static) *Feed {
	feed := &Feed{}
	if len(static.Agencies) > 0 {
		feed.AgencyTimezone = static.Agencies[0].Timezone
	}

	for _, r := range static.Routes {
		route := RawRoute{
			ID:        r.Id,
			ShortName: r.ShortName,
			LongName:  r.LongName,
			Color:     r.Color,
		}
		if r.Agency != nil {
			route.AgencyID = r.Agency.Id
			route.AgencyName = r.Agency.Name
		}
		feed.Routes = append(feed.Routes, route)
	}

	for _, s := range static.Stops {
		stop := RawStop{ID: s.Id, Code: s.Code, Name: s.Name}
		if s.Latitude != nil {
			stop.Lat = *s.Latitude
		}
		if s.Longitude != nil {
			stop.Lon = *s.Longitude
		}
		feed.Stops = append(feed.Stops, stop)
	}

	for _, t := range static.Trips {
		trip := RawTrip{
			ID:          t.ID,
			Headsign:    t.Headsign,
			DirectionID: directionID(int(t.DirectionId)),
		}
		if t.Route != nil {
			trip.RouteID = t.Route.Id
		}
		if t.Service != nil {
			trip.ServiceID = t.Service.Id
		}
		stopTimes := slices.Clone(t.StopTimes)
		slices.SortStableFunc(stopTimes, func(a, b gtfsstatic.ScheduledStopTime) int {
			return a.StopSequence - b.StopSequence
		})
		for _, st := range stopTimes {
			if st.Stop != nil {
				trip.StopIDs = append(trip.StopIDs, st.Stop.Id)
			}
		}
		feed.Trips = append(feed.Trips, trip)
	}

	for _, svc := range static.Services {
		days := [7]bool{svc.Monday, svc.Tuesday, svc.Wednesday, svc.Thursday, svc.Friday, svc.Saturday, svc.Sunday}
		// services known only from calendar_dates.txt carry no weekday pattern
		if days != [7]bool{} {
			feed.Calendars = append(feed.Calendars, RawCalendar{
				ServiceID: svc.Id,
				StartDate: svc.StartDate.Format(dateLayout),
				EndDate:   svc.EndDate.Format(dateLayout),
				Weekdays:  days,
			})
		}
		for _, d := range svc.AddedDates {
			feed.CalendarDates = append(feed.CalendarDates, RawCalendarDate{ServiceID: svc.Id, Date: d.Format(dateLayout), Added: true})
		}
		for _, d := range svc.RemovedDates {
			feed.CalendarDates = append(feed.CalendarDates, RawCalendarDate{ServiceID: svc.Id, Date: d.Format(dateLayout)})
		}
	}
	// the parser collects services from a map
	slices.SortFunc(feed.Calendars, func(a, b RawCalendar) int { return strings.Compare(a.ServiceID, b.ServiceID) })
	slices.SortStableFunc(feed.CalendarDates, func(a, b RawCalendarDate) int {
		if c := strings.Compare(a.ServiceID, b.ServiceID); c != 0 {
			return c
		}
		return strings.Compare(a.Date, b.Date)
	})
	return feed
}

// directionID maps the parser's tri-state direction (0 unspecified, 1 true,
// 2 false) onto the GTFS direction_id column.
func directionID(v int) int {
	if v == 1 {
		return 1
	}
	return 0
}
