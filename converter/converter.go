package converter

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/gtfs"
	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/label"
	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/overrides"
	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/stopid"
	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/tripspec"
)

// Converter turns one raw feed snapshot into a NormalizedFeed. The first
// record no table can classify aborts the run.
type Converter struct {
	opts     ConverterOptions
	warnings *WarningAggregator
}

func NewConverter(opts ConverterOptions) (*Converter, error) {
	switch {
	case opts.Filter == nil:
		return nil, errors.New("converter: filter is required")
	case opts.Assigner == nil:
		return nil, errors.New("converter: stop id assigner is required")
	case opts.Normalizer == nil:
		return nil, errors.New("converter: label normalizer is required")
	case opts.Colors == nil:
		return nil, errors.New("converter: color table is required")
	case opts.Headsigns == nil:
		return nil, errors.New("converter: headsign table is required")
	}
	return &Converter{opts: opts, warnings: NewWarningAggregator()}, nil
}

// Warnings returns the observations collected by Convert calls.
func (c *Converter) Warnings() *WarningAggregator {
	return c.warnings
}

// Convert filters feed and maps the surviving records to canonical ids and
// labels.
func (c *Converter) Convert(feed *gtfs.Feed) (*NormalizedFeed, error) {
	res, stats := c.opts.Filter.Apply(feed)
	for _, r := range res.Excluded.Routes {
		c.warnings.Add(WarningExcludedRoute, r.ID)
	}
	for _, s := range res.Excluded.Stops {
		c.warnings.Add(WarningExcludedStop, s.ID)
	}
	for _, t := range res.Excluded.Trips {
		c.warnings.Add(WarningExcludedTrip, t.ID)
	}
	kept := res.Feed

	stops, stopIDs, err := c.convertStops(kept.Stops)
	if err != nil {
		return nil, err
	}
	routes, routeIDs, err := c.convertRoutes(kept.Routes)
	if err != nil {
		return nil, err
	}
	trips, err := c.convertTrips(gtfs.NewIndex(kept), kept.Routes, routeIDs, stopIDs)
	if err != nil {
		return nil, err
	}

	out := &NormalizedFeed{
		Routes:        routes,
		Trips:         trips,
		Stops:         stops,
		ServiceIDs:    serviceIDs(trips),
		Calendars:     kept.Calendars,
		CalendarDates: kept.CalendarDates,
		Stats:         stats,
	}
	if lister, ok := c.opts.Templates.(interface{ All() []tripspec.Template }); ok {
		out.Templates = lister.All()
	}
	return out, nil
}

func (c *Converter) convertStops(raw []gtfs.RawStop) ([]Stop, map[string]stopid.ID, error) {
	in := make([]stopid.Stop, len(raw))
	for i, s := range raw {
		in[i] = stopid.Stop{ID: s.ID, Code: s.Code, Name: s.Name}
	}
	ids, err := c.opts.Assigner.AssignAll(in)
	if err != nil {
		return nil, nil, fmt.Errorf("assign stop ids: %w", err)
	}

	stops := make([]Stop, 0, len(raw))
	for _, s := range raw {
		stops = append(stops, Stop{
			ID:    ids[s.ID],
			RawID: s.ID,
			Code:  c.opts.Assigner.PublicCode(s.Code, s.ID),
			Name:  c.opts.Normalizer.Normalize(s.Name, label.StopName),
			Lat:   s.Lat,
			Lon:   s.Lon,
		})
	}
	slices.SortFunc(stops, func(a, b Stop) int { return cmp.Compare(a.ID, b.ID) })
	return stops, ids, nil
}

func (c *Converter) convertRoutes(raw []gtfs.RawRoute) ([]Route, map[string]int64, error) {
	var (
		routes []Route
		ids    = make(map[string]int64, len(raw))
		seen   = make(map[int64]struct{}, len(raw))
	)
	for _, r := range raw {
		id, err := ParseRouteID(r)
		if err != nil {
			return nil, nil, fmt.Errorf("convert routes: %w", err)
		}
		ids[r.ID] = id
		if _, dup := seen[id]; dup {
			c.warnings.Add(WarningDuplicateRouteID, r.ID)
			continue
		}
		seen[id] = struct{}{}

		color, err := c.opts.Colors.Resolve(id)
		if err != nil {
			return nil, nil, fmt.Errorf("convert routes: %w", err)
		}
		if strings.TrimSpace(r.LongName) == "" {
			c.warnings.Add(WarningNoRouteLongName, r.ID)
		}
		route := Route{
			ID:        id,
			RawID:     r.ID,
			ShortName: r.ShortName,
			LongName:  c.opts.Normalizer.Normalize(r.LongName, label.RouteName),
		}
		if color != overrides.Unknown {
			hex := string(color)
			route.Color = &hex
		}
		routes = append(routes, route)
	}
	slices.SortFunc(routes, func(a, b Route) int { return cmp.Compare(a.ID, b.ID) })
	return routes, ids, nil
}

// ParseRouteID returns the route number carried in the short name.
func ParseRouteID(r gtfs.RawRoute) (int64, error) {
	if r.ShortName == "" || strings.IndexFunc(r.ShortName, func(c rune) bool { return c < '0' || c > '9' }) >= 0 {
		return 0, &RouteIDFormatError{Route: r}
	}
	id, err := strconv.ParseInt(r.ShortName, 10, 64)
	if err != nil {
		return 0, &RouteIDFormatError{Route: r}
	}
	return id, nil
}

type routeDirection struct {
	route     int64
	direction int
}

// convertTrips walks the trips route by route. Trips of a duplicated route
// number join the first route with that number.
func (c *Converter) convertTrips(idx *gtfs.Index, routes []gtfs.RawRoute, routeIDs map[string]int64, stopIDs map[string]stopid.ID) ([]Trip, error) {
	var trips []Trip
	templated := map[int64]struct{}{}
	for _, r := range routes {
		routeID := routeIDs[r.ID]
		for _, t := range idx.TripsForRoute(r.ID) {
			trips = append(trips, c.convertTrip(idx, t, routeID, r.ShortName, stopIDs, templated))
		}
	}

	if err := c.mergeHeadsigns(trips, templated); err != nil {
		return nil, err
	}

	slices.SortFunc(trips, func(a, b Trip) int {
		if r := cmp.Compare(a.RouteID, b.RouteID); r != 0 {
			return r
		}
		return strings.Compare(a.RawID, b.RawID)
	})
	return trips, nil
}

func (c *Converter) convertTrip(idx *gtfs.Index, t gtfs.RawTrip, routeID int64, shortName string, stopIDs map[string]stopid.ID, templated map[int64]struct{}) Trip {
	trip := Trip{
		RawID:       t.ID,
		RouteID:     routeID,
		ServiceID:   t.ServiceID,
		DirectionID: t.DirectionID,
		StopIDs:     make([]stopid.ID, 0, len(t.StopIDs)),
	}
	for _, s := range t.StopIDs {
		if _, ok := idx.Stop(s); !ok {
			c.warnings.Add(WarningUnknownStop, t.ID+"/"+s)
			continue
		}
		trip.StopIDs = append(trip.StopIDs, stopIDs[s])
	}

	if tmpl, ok := c.template(routeID); ok {
		templated[routeID] = struct{}{}
		d, exact := tmpl.Orient(trip.StopIDs, t.DirectionID)
		if !exact {
			c.warnings.Add(WarningTemplateMiss, t.ID)
		}
		trip.DirectionID = d.ID
		trip.Headsign = d.Headsign
	} else {
		trip.Headsign = c.opts.Headsigns.Resolve(routeID, t.DirectionID, t.Headsign, shortName)
	}
	if trip.Headsign == "" {
		c.warnings.Add(WarningEmptyHeadsign, t.ID)
	}
	return trip
}

// template returns the anchor template of a route. Templated routes take
// direction and headsign from the template for every trip.
func (c *Converter) template(routeID int64) (tripspec.Template, bool) {
	if c.opts.Templates == nil {
		return tripspec.Template{}, false
	}
	return c.opts.Templates.Template(routeID)
}

// mergeHeadsigns gives every trip of one route direction the same label,
// folding distinct labels through the registered merge rules. Templated
// routes already carry one label per direction and are skipped.
func (c *Converter) mergeHeadsigns(trips []Trip, templated map[int64]struct{}) error {
	labels := map[routeDirection][]string{}
	for _, t := range trips {
		if _, ok := templated[t.RouteID]; ok {
			continue
		}
		key := routeDirection{t.RouteID, t.DirectionID}
		if !slices.Contains(labels[key], t.Headsign) {
			labels[key] = append(labels[key], t.Headsign)
		}
	}

	merged := make(map[routeDirection]string, len(labels))
	for key, ls := range labels {
		if len(ls) < 2 {
			continue
		}
		slices.Sort(ls)
		acc := ls[0]
		for _, l := range ls[1:] {
			m, err := c.opts.Headsigns.Merge(key.route, key.direction, acc, l)
			if err != nil {
				return fmt.Errorf("merge headsigns of route %d direction %d: %w", key.route, key.direction, err)
			}
			acc = m
		}
		merged[key] = acc
	}

	for i := range trips {
		if m, ok := merged[routeDirection{trips[i].RouteID, trips[i].DirectionID}]; ok {
			trips[i].Headsign = m
		}
	}
	return nil
}

func serviceIDs(trips []Trip) []string {
	seen := map[string]struct{}{}
	var ids []string
	for _, t := range trips {
		if _, ok := seen[t.ServiceID]; !ok {
			seen[t.ServiceID] = struct{}{}
			ids = append(ids, t.ServiceID)
		}
	}
	slices.Sort(ids)
	return ids
}
