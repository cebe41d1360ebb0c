package converter

import (
	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/filter"
	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/gtfs"
	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/label"
	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/overrides"
	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/stopid"
	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/tripspec"
)

// LabelNormalizer is satisfied by label.Normalizer and label.CachedNormalizer.
type LabelNormalizer interface {
	Normalize(raw string, kind label.Kind) string
	NormalizeHeadsign(raw, routeShortName string) string
}

// ConverterOptions carries the tables a run is built from. Everything except
// Templates is required.
type ConverterOptions struct {
	Filter     *filter.Filter
	Assigner   *stopid.Assigner
	Normalizer LabelNormalizer
	Colors     *overrides.ColorTable
	Headsigns  *overrides.HeadsignTable

	// Templates labels and orients the trips of anchor-split routes.
	Templates tripspec.Registry
}

// Route is a canonical route. A nil Color means the agency color applies.
type Route struct {
	ID        int64   `json:"id"`
	RawID     string  `json:"rawId"`
	ShortName string  `json:"shortName"`
	LongName  string  `json:"longName"`
	Color     *string `json:"color"`
}

type Stop struct {
	ID    stopid.ID `json:"id"`
	RawID string    `json:"rawId"`
	Code  string    `json:"code"`
	Name  string    `json:"name"`
	Lat   float64   `json:"lat"`
	Lon   float64   `json:"lon"`
}

type Trip struct {
	RawID       string      `json:"rawId"`
	RouteID     int64       `json:"routeId"`
	ServiceID   string      `json:"serviceId"`
	DirectionID int         `json:"directionId"`
	Headsign    string      `json:"headsign"`
	StopIDs     []stopid.ID `json:"stopIds"`
}

// NormalizedFeed is the canonical output of one run.
type NormalizedFeed struct {
	Routes        []Route                `json:"routes"`
	Trips         []Trip                 `json:"trips"`
	Stops         []Stop                 `json:"stops"`
	ServiceIDs    []string               `json:"serviceIds"`
	Calendars     []gtfs.RawCalendar     `json:"calendars"`
	CalendarDates []gtfs.RawCalendarDate `json:"calendarDates"`
	Templates     []tripspec.Template    `json:"templates,omitempty"`
	Stats         filter.Stats           `json:"stats"`
}
