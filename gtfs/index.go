package gtfs

// Index gives id lookups over a Feed. It is built once and read only.
type Index struct {
	routes       map[string]int   // route_id -> position in Feed.Routes
	stops        map[string]int   // stop_id -> position in Feed.Stops
	tripsByRoute map[string][]int // route_id -> positions in Feed.Trips
	feed         *Feed
}

// NewIndex indexes feed. Later duplicates of an id win, matching how the
// records would be read row by row.
func NewIndex(feed *Feed) *Index {
	idx := &Index{
		routes:       make(map[string]int, len(feed.Routes)),
		stops:        make(map[string]int, len(feed.Stops)),
		tripsByRoute: map[string][]int{},
		feed:         feed,
	}
	for i, r := range feed.Routes {
		idx.routes[r.ID] = i
	}
	for i, s := range feed.Stops {
		idx.stops[s.ID] = i
	}
	for i, t := range feed.Trips {
		idx.tripsByRoute[t.RouteID] = append(idx.tripsByRoute[t.RouteID], i)
	}
	return idx
}

func (x *Index) Route(id string) (RawRoute, bool) {
	i, ok := x.routes[id]
	if !ok {
		return RawRoute{}, false
	}
	return x.feed.Routes[i], true
}

func (x *Index) Stop(id string) (RawStop, bool) {
	i, ok := x.stops[id]
	if !ok {
		return RawStop{}, false
	}
	return x.feed.Stops[i], true
}

// TripsForRoute returns the trips of a route in feed order.
func (x *Index) TripsForRoute(routeID string) []RawTrip {
	positions := x.tripsByRoute[routeID]
	out := make([]RawTrip, 0, len(positions))
	for _, i := range positions {
		out = append(out, x.feed.Trips[i])
	}
	return out
}
