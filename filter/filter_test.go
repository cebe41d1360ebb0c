package filter

import (
	"slices"
	"testing"

	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/config"
	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/gtfs"
)

const stc = "St. Catharines Transit Commission"

func newDefaultFilter(t *testing.T, services map[string]struct{}) *Filter {
	t.Helper()
	f, err := NewFromConfig(config.Default().Agency, services)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	return f
}

func TestFilter_ExcludeRoute(t *testing.T) {
	f := newDefaultFilter(t, nil)

	tests := []struct {
		name  string
		route gtfs.RawRoute
		want  bool
	}{
		{"stc route", gtfs.RawRoute{AgencyID: stc, ShortName: "14", LongName: "Fairview Mall"}, false},
		{"agency id with suffix", gtfs.RawRoute{AgencyID: stc + " (2016)", LongName: "Brock"}, false},
		{"other agency", gtfs.RawRoute{AgencyID: "Welland Transit", LongName: "Downtown"}, true},
		{"regional route", gtfs.RawRoute{AgencyID: stc, LongName: "Niagara Region Transit 40"}, true},
		{"nrt route", gtfs.RawRoute{AgencyID: stc, LongName: "NRT 65 Welland"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.ExcludeRoute(tt.route); got != tt.want {
				t.Errorf("ExcludeRoute(%+v) = %v, want %v", tt.route, got, tt.want)
			}
		})
	}
}

func TestFilter_ExcludeStop(t *testing.T) {
	f := newDefaultFilter(t, nil)

	tests := []struct {
		id   string
		want bool
	}{
		{"STC_S_2016_Stop0218", false},
		{"S_FE_1234", true},
		{"nf_TERMINAL", true},
		{"PC0042", true},
		{"WE_Main", true},
		{"STC_S_2016_NF", false},
	}
	for _, tt := range tests {
		if got := f.ExcludeStop(gtfs.RawStop{ID: tt.id}); got != tt.want {
			t.Errorf("ExcludeStop(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestFilter_ServicePredicates(t *testing.T) {
	keepAll := newDefaultFilter(t, nil)
	if keepAll.ExcludeTrip(gtfs.RawTrip{ServiceID: "anything"}) {
		t.Error("nil service set must keep every trip")
	}

	f := newDefaultFilter(t, map[string]struct{}{"WKDY": {}})
	if f.ExcludeTrip(gtfs.RawTrip{ServiceID: "WKDY"}) || !f.ExcludeTrip(gtfs.RawTrip{ServiceID: "SAT"}) {
		t.Error("trip service predicate wrong")
	}
	if f.ExcludeCalendar(gtfs.RawCalendar{ServiceID: "WKDY"}) || !f.ExcludeCalendar(gtfs.RawCalendar{ServiceID: "SAT"}) {
		t.Error("calendar service predicate wrong")
	}
	if f.ExcludeCalendarDate(gtfs.RawCalendarDate{ServiceID: "WKDY"}) || !f.ExcludeCalendarDate(gtfs.RawCalendarDate{ServiceID: "SAT"}) {
		t.Error("calendar date service predicate wrong")
	}
}

func TestNew_BadPattern(t *testing.T) {
	if _, err := New(Options{IgnoreStopPattern: "(unclosed"}); err == nil {
		t.Error("expected an error for an invalid stop pattern")
	}
}

func TestFilter_ApplyCascade(t *testing.T) {
	feed := &gtfs.Feed{
		Routes: []gtfs.RawRoute{
			{ID: "14", AgencyID: stc, ShortName: "14", LongName: "Fairview Mall"},
			{ID: "40", AgencyID: stc, ShortName: "40", LongName: "Niagara Region Transit 40"},
		},
		Trips: []gtfs.RawTrip{
			{ID: "T1", RouteID: "14", ServiceID: "WKDY", StopIDs: []string{"A", "NF_X", "B"}},
			{ID: "T2", RouteID: "14", ServiceID: "SAT", StopIDs: []string{"C"}},
			{ID: "T3", RouteID: "40", ServiceID: "WKDY", StopIDs: []string{"D"}},
		},
		Stops: []gtfs.RawStop{
			{ID: "A"}, {ID: "B"}, {ID: "C"}, {ID: "D"}, {ID: "NF_X"}, {ID: "LONELY"},
		},
		Calendars: []gtfs.RawCalendar{
			{ServiceID: "WKDY"}, {ServiceID: "SAT"}, {ServiceID: "SUN"},
		},
		CalendarDates: []gtfs.RawCalendarDate{
			{ServiceID: "WKDY", Date: "20240102"}, {ServiceID: "SAT", Date: "20240106", Added: true},
		},
	}
	f := newDefaultFilter(t, map[string]struct{}{"WKDY": {}, "SUN": {}})

	res, stats := f.Apply(feed)
	out := res.Feed

	if len(out.Routes) != 1 || out.Routes[0].ID != "14" {
		t.Errorf("routes = %+v", out.Routes)
	}
	if len(out.Trips) != 1 || out.Trips[0].ID != "T1" {
		t.Fatalf("trips = %+v", out.Trips)
	}
	if want := []string{"A", "B"}; !slices.Equal(out.Trips[0].StopIDs, want) {
		t.Errorf("T1 stops = %v, want %v", out.Trips[0].StopIDs, want)
	}
	if len(feed.Trips[0].StopIDs) != 3 {
		t.Error("Apply modified the input feed")
	}

	var stopIDs []string
	for _, s := range out.Stops {
		stopIDs = append(stopIDs, s.ID)
	}
	if want := []string{"A", "B"}; !slices.Equal(stopIDs, want) {
		t.Errorf("stops = %v, want %v", stopIDs, want)
	}

	// SUN is useful but no kept trip runs on it
	if len(out.Calendars) != 1 || out.Calendars[0].ServiceID != "WKDY" {
		t.Errorf("calendars = %+v", out.Calendars)
	}
	if len(out.CalendarDates) != 1 || out.CalendarDates[0].ServiceID != "WKDY" {
		t.Errorf("calendar dates = %+v", out.CalendarDates)
	}

	want := Stats{
		Routes:        Counts{Kept: 1, Excluded: 1},
		Trips:         Counts{Kept: 1, Excluded: 1, Unreferenced: 1},
		Stops:         Counts{Kept: 2, Excluded: 1, Unreferenced: 3},
		Calendars:     Counts{Kept: 1, Excluded: 1, Unreferenced: 1},
		CalendarDates: Counts{Kept: 1, Excluded: 1},
	}
	if stats != want {
		t.Errorf("stats = %+v\nwant    %+v", stats, want)
	}
	if len(res.Excluded.Routes) != 1 || len(res.Excluded.Trips) != 1 || len(res.Excluded.Stops) != 1 {
		t.Errorf("excluded = %+v", res.Excluded)
	}

	t.Logf("✓ Cascade kept %d/%d trips", stats.Trips.Kept, len(feed.Trips))
}
