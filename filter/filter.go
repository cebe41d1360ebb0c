package filter

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/config"
	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/gtfs"
)

// Options configures a Filter.
type Options struct {
	AgencySubstring      string
	ForeignRoutePrefixes []string
	IgnoreStopPattern    string
	// UsefulServiceIDs restricts trips and calendars; nil keeps every service.
	UsefulServiceIDs map[string]struct{}
}

// Filter holds the compiled predicates. It is read only after New.
type Filter struct {
	agencySubstring string
	foreignPrefixes []string
	ignoreStop      *regexp.Regexp
	services        map[string]struct{}
}

func New(opts Options) (*Filter, error) {
	f := &Filter{
		agencySubstring: opts.AgencySubstring,
		foreignPrefixes: slices.Clone(opts.ForeignRoutePrefixes),
		services:        opts.UsefulServiceIDs,
	}
	if opts.IgnoreStopPattern != "" {
		re, err := regexp.Compile(opts.IgnoreStopPattern)
		if err != nil {
			return nil, fmt.Errorf("ignore stop pattern: %w", err)
		}
		f.ignoreStop = re
	}
	return f, nil
}

// NewFromConfig builds a Filter from the agency section of the config.
func NewFromConfig(cfg config.AgencyConfig, services map[string]struct{}) (*Filter, error) {
	return New(Options{
		AgencySubstring:      cfg.AgencySubstring,
		ForeignRoutePrefixes: cfg.ForeignRoutePrefixes,
		IgnoreStopPattern:    cfg.IgnoreStopPattern,
		UsefulServiceIDs:     services,
	})
}

// ExcludeRoute drops routes of other agencies and the regional routes that
// share the raw feed.
func (f *Filter) ExcludeRoute(r gtfs.RawRoute) bool {
	if f.agencySubstring != "" && !strings.Contains(r.AgencyID, f.agencySubstring) {
		return true
	}
	for _, p := range f.foreignPrefixes {
		if strings.HasPrefix(r.LongName, p) {
			return true
		}
	}
	return false
}

// ExcludeStop drops stops whose id belongs to another operator on file.
func (f *Filter) ExcludeStop(s gtfs.RawStop) bool {
	return f.ignoreStop != nil && f.ignoreStop.MatchString(s.ID)
}

func (f *Filter) ExcludeTrip(t gtfs.RawTrip) bool {
	return !f.usefulService(t.ServiceID)
}

func (f *Filter) ExcludeCalendar(c gtfs.RawCalendar) bool {
	return !f.usefulService(c.ServiceID)
}

func (f *Filter) ExcludeCalendarDate(d gtfs.RawCalendarDate) bool {
	return !f.usefulService(d.ServiceID)
}

func (f *Filter) usefulService(id string) bool {
	if f.services == nil {
		return true
	}
	_, ok := f.services[id]
	return ok
}

// Counts tallies one record kind. Unreferenced records passed their own
// predicate but no kept trip uses them.
type Counts struct {
	Kept         int
	Excluded     int
	Unreferenced int
}

type Stats struct {
	Routes        Counts
	Trips         Counts
	Stops         Counts
	Calendars     Counts
	CalendarDates Counts
}

// Excluded lists the records dropped by their own predicate, for reporting.
type Excluded struct {
	Routes []gtfs.RawRoute
	Trips  []gtfs.RawTrip
	Stops  []gtfs.RawStop
}

type Result struct {
	Feed     *gtfs.Feed
	Excluded Excluded
}

// Apply runs the cascade route -> trip -> stop/calendar over feed and
// returns the surviving records. The input is not modified.
func (f *Filter) Apply(feed *gtfs.Feed) (Result, Stats) {
	var (
		stats Stats
		res   = Result{Feed: &gtfs.Feed{AgencyTimezone: feed.AgencyTimezone}}
		out   = res.Feed
	)

	keptRoutes := map[string]struct{}{}
	for _, r := range feed.Routes {
		if f.ExcludeRoute(r) {
			stats.Routes.Excluded++
			res.Excluded.Routes = append(res.Excluded.Routes, r)
			continue
		}
		keptRoutes[r.ID] = struct{}{}
		out.Routes = append(out.Routes, r)
		stats.Routes.Kept++
	}

	// stops are judged before trips so that foreign stops can be cut out of
	// the stop sequences of kept trips
	candidateStops := map[string]struct{}{}
	for _, s := range feed.Stops {
		if f.ExcludeStop(s) {
			stats.Stops.Excluded++
			res.Excluded.Stops = append(res.Excluded.Stops, s)
			continue
		}
		candidateStops[s.ID] = struct{}{}
	}

	usedStops := map[string]struct{}{}
	usedServices := map[string]struct{}{}
	for _, t := range feed.Trips {
		if _, ok := keptRoutes[t.RouteID]; !ok {
			stats.Trips.Unreferenced++
			continue
		}
		if f.ExcludeTrip(t) {
			stats.Trips.Excluded++
			res.Excluded.Trips = append(res.Excluded.Trips, t)
			continue
		}
		kept := t
		kept.StopIDs = make([]string, 0, len(t.StopIDs))
		for _, id := range t.StopIDs {
			if _, ok := candidateStops[id]; ok {
				kept.StopIDs = append(kept.StopIDs, id)
				usedStops[id] = struct{}{}
			}
		}
		usedServices[t.ServiceID] = struct{}{}
		out.Trips = append(out.Trips, kept)
		stats.Trips.Kept++
	}

	for _, s := range feed.Stops {
		if _, ok := candidateStops[s.ID]; !ok {
			continue
		}
		if _, ok := usedStops[s.ID]; !ok {
			stats.Stops.Unreferenced++
			continue
		}
		out.Stops = append(out.Stops, s)
		stats.Stops.Kept++
	}

	for _, c := range feed.Calendars {
		switch _, used := usedServices[c.ServiceID]; {
		case f.ExcludeCalendar(c):
			stats.Calendars.Excluded++
		case !used:
			stats.Calendars.Unreferenced++
		default:
			out.Calendars = append(out.Calendars, c)
			stats.Calendars.Kept++
		}
	}
	for _, d := range feed.CalendarDates {
		switch _, used := usedServices[d.ServiceID]; {
		case f.ExcludeCalendarDate(d):
			stats.CalendarDates.Excluded++
		case !used:
			stats.CalendarDates.Unreferenced++
		default:
			out.CalendarDates = append(out.CalendarDates, d)
			stats.CalendarDates.Kept++
		}
	}

	return res, stats
}
