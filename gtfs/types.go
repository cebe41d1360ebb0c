package gtfs

// RawRoute is one routes.txt row as read from the feed.
type RawRoute struct {
	ID         string
	AgencyID   string
	AgencyName string
	ShortName  string
	LongName   string
	Color      string
}

// RawTrip is one trips.txt row. StopIDs holds the stop_times.txt stops of
// the trip ordered by stop_sequence.
type RawTrip struct {
	ID          string
	RouteID     string
	ServiceID   string
	Headsign    string
	DirectionID int // 0 or 1, unspecified reads as 0
	StopIDs     []string
}

// RawStop is one stops.txt row.
type RawStop struct {
	ID   string
	Code string
	Name string
	Lat  float64
	Lon  float64
}

// RawCalendar is one calendar.txt row. Dates are YYYYMMDD and Weekdays
// starts on Monday.
type RawCalendar struct {
	ServiceID string
	StartDate string
	EndDate   string
	Weekdays  [7]bool
}

// RawCalendarDate is one calendar_dates.txt row. Added is false for
// exception_type 2 (service removed).
type RawCalendarDate struct {
	ServiceID string
	Date      string
	Added     bool
}

// Feed is the raw snapshot handed to the filter and the converter.
type Feed struct {
	AgencyTimezone string
	Routes         []RawRoute
	Trips          []RawTrip
	Stops          []RawStop
	Calendars      []RawCalendar
	CalendarDates  []RawCalendarDate
}
