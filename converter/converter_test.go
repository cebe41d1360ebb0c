package converter

import (
	"errors"
	"testing"

	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/config"
	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/filter"
	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/gtfs"
	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/label"
	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/overrides"
	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/stopid"
	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/tripspec"
)

const stc = "St. Catharines Transit Commission"

func newTestConverter(t *testing.T) *Converter {
	t.Helper()
	assigner, err := stopid.NewAssigner(stopid.DefaultTables())
	if err != nil {
		t.Fatalf("NewAssigner: %v", err)
	}
	templates, err := tripspec.Build(assigner, tripspec.DefaultSpecs())
	if err != nil {
		t.Fatalf("tripspec.Build: %v", err)
	}
	f, err := filter.NewFromConfig(config.Default().Agency, nil)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	n := label.NewNormalizer(nil)
	conv, err := NewConverter(ConverterOptions{
		Filter:     f,
		Assigner:   assigner,
		Normalizer: n,
		Colors:     overrides.DefaultColorTable(),
		Headsigns:  overrides.DefaultHeadsignTable(n),
		Templates:  templates,
	})
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}
	return conv
}

func fixtureFeed() *gtfs.Feed {
	return &gtfs.Feed{
		Routes: []gtfs.RawRoute{
			{ID: "R1", AgencyID: stc, ShortName: "1", LongName: "Pelham"},
			{ID: "R3", AgencyID: stc, ShortName: "3", LongName: "Glenridge"},
			{ID: "R25", AgencyID: stc, ShortName: "25", LongName: "Brock - Downtown"},
			{ID: "R216", AgencyID: stc, ShortName: "216", LongName: "Brock Express"},
			{ID: "R40", AgencyID: stc, ShortName: "40", LongName: "Niagara Region Transit 40"},
		},
		Stops: []gtfs.RawStop{
			{ID: "STC_S_2016_DTT", Name: "Downtown Terminal"},
			{ID: "STC_S_2016_Stop0228", Code: "0228", Name: "Glenridge Ave. at Sir Isaac Brock Way"},
			{ID: "STC_S_2016_BRU", Name: "Brock University"},
			{ID: "STC_S_2016_Stop1206", Code: "1206", Name: "Sir Isaac Brock Way & Glenridge Ave."},
			{ID: "STC_S_2016_Stop0100", Code: "0100", Name: "Pelham Rd. near Louth St."},
			{ID: "NF_X", Name: "Falls Terminal"},
		},
		Trips: []gtfs.RawTrip{
			{ID: "T25a", RouteID: "R25", ServiceID: "WKDY", DirectionID: 1, Headsign: "25 Brock University",
				StopIDs: []string{"STC_S_2016_DTT", "STC_S_2016_Stop0228", "STC_S_2016_BRU"}},
			{ID: "T25b", RouteID: "R25", ServiceID: "WKDY", DirectionID: 0, Headsign: "25 Downtown",
				StopIDs: []string{"STC_S_2016_BRU", "STC_S_2016_Stop1206", "STC_S_2016_DTT"}},
			{ID: "T3a", RouteID: "R3", ServiceID: "WKDY", DirectionID: 1, Headsign: "3 Glenridge - Downtown Terminal",
				StopIDs: []string{"STC_S_2016_Stop0228", "STC_S_2016_DTT"}},
			{ID: "T3b", RouteID: "R3", ServiceID: "SAT", DirectionID: 1, Headsign: "Downtown",
				StopIDs: []string{"STC_S_2016_Stop0228", "STC_S_2016_DTT"}},
			{ID: "T1", RouteID: "R1", ServiceID: "WKDY", DirectionID: 0, Headsign: "1 Pelham",
				StopIDs: []string{"STC_S_2016_Stop0100", "NF_X"}},
			{ID: "T216", RouteID: "R216", ServiceID: "WKDY", DirectionID: 0, Headsign: "216 Brock",
				StopIDs: []string{"STC_S_2016_DTT", "STC_S_2016_BRU"}},
			{ID: "T40", RouteID: "R40", ServiceID: "WKDY", StopIDs: []string{"NF_X"}},
		},
	}
}

func TestConverter_Convert(t *testing.T) {
	conv := newTestConverter(t)
	out, err := conv.Convert(fixtureFeed())
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	t.Run("routes", func(t *testing.T) {
		if len(out.Routes) != 4 {
			t.Fatalf("routes = %+v", out.Routes)
		}
		byID := map[int64]Route{}
		for _, r := range out.Routes {
			byID[r.ID] = r
		}
		if c := byID[1].Color; c == nil || *c != "ED1B24" {
			t.Errorf("route 1 color = %v", c)
		}
		if c := byID[216].Color; c != nil {
			t.Errorf("route 216 color should be unknown, got %q", *c)
		}
		if _, ok := byID[40]; ok {
			t.Error("regional route 40 should be filtered")
		}
	})

	t.Run("stops", func(t *testing.T) {
		want := []stopid.ID{100, 228, 1206, 100000, 100006}
		if len(out.Stops) != len(want) {
			t.Fatalf("stops = %+v", out.Stops)
		}
		for i, s := range out.Stops {
			if s.ID != want[i] {
				t.Errorf("stop %d id = %d, want %d", i, s.ID, want[i])
			}
		}
		if s := out.Stops[1]; s.Code != "0228" || s.Name != "Glenridge Ave / Sir Isaac Brock Way" {
			t.Errorf("stop 228 = %+v", s)
		}
		if s := out.Stops[3]; s.Code != "" || s.RawID != "STC_S_2016_DTT" {
			t.Errorf("stop DTT = %+v", s)
		}
	})

	t.Run("trips", func(t *testing.T) {
		tests := []struct {
			rawID     string
			direction int
			headsign  string
			stops     int
		}{
			{"T1", 0, "Pelham", 1},
			{"T3a", 1, "Downtown", 2},
			{"T3b", 1, "Downtown", 2},
			{"T25a", 0, "Brock", 3},
			{"T25b", 1, "Downtown", 3},
			{"T216", 0, "Brock", 2},
		}
		got := map[string]Trip{}
		for _, tr := range out.Trips {
			got[tr.RawID] = tr
		}
		if len(got) != len(tests) {
			t.Fatalf("trips = %+v", out.Trips)
		}
		for _, tt := range tests {
			tr := got[tt.rawID]
			if tr.DirectionID != tt.direction || tr.Headsign != tt.headsign || len(tr.StopIDs) != tt.stops {
				t.Errorf("%s = {dir=%d headsign=%q stops=%v}, want {dir=%d headsign=%q stops=%d}",
					tt.rawID, tr.DirectionID, tr.Headsign, tr.StopIDs, tt.direction, tt.headsign, tt.stops)
			}
		}
	})

	if want := []string{"SAT", "WKDY"}; len(out.ServiceIDs) != 2 || out.ServiceIDs[0] != want[0] || out.ServiceIDs[1] != want[1] {
		t.Errorf("service ids = %v, want %v", out.ServiceIDs, want)
	}
	if len(out.Templates) != len(tripspec.DefaultSpecs()) {
		t.Errorf("templates = %d", len(out.Templates))
	}

	w := conv.Warnings()
	if w.Count(WarningExcludedRoute) != 1 || w.Count(WarningExcludedStop) != 1 {
		t.Errorf("warnings = %+v", w.Summaries())
	}
	// T216 skips the GrdgGlmr anchor
	if w.Count(WarningTemplateMiss) != 1 {
		t.Errorf("template misses = %d", w.Count(WarningTemplateMiss))
	}

	t.Logf("✓ Converted %d routes, %d stops, %d trips", len(out.Routes), len(out.Stops), len(out.Trips))
}

func TestConverter_FatalErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *gtfs.Feed)
		want   error
	}{
		{
			name:   "non numeric route",
			mutate: func(f *gtfs.Feed) { f.Routes[0].ShortName = "1A" },
			want:   ErrUnexpectedRouteIDFormat,
		},
		{
			name:   "route without color",
			mutate: func(f *gtfs.Feed) { f.Routes[0].ShortName = "9999" },
			want:   overrides.ErrUnexpectedRouteColor,
		},
		{
			name:   "unclassified stop",
			mutate: func(f *gtfs.Feed) { f.Stops[4].ID, f.Stops[4].Code = "STC_S_2016_Qqqq", ""; f.Trips[4].StopIDs[0] = "STC_S_2016_Qqqq" },
			want:   stopid.ErrUnclassifiedStopCode,
		},
		{
			name: "unregistered merge",
			mutate: func(f *gtfs.Feed) {
				f.Trips = append(f.Trips, gtfs.RawTrip{ID: "T1b", RouteID: "R1", ServiceID: "WKDY", Headsign: "Brock",
					StopIDs: []string{"STC_S_2016_Stop0100"}})
			},
			want: overrides.ErrUnexpectedHeadsignMerge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feed := fixtureFeed()
			tt.mutate(feed)
			out, err := newTestConverter(t).Convert(feed)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if out != nil {
				t.Error("no partial output on failure")
			}
		})
	}
}

func TestParseRouteID(t *testing.T) {
	tests := []struct {
		short string
		want  int64
		ok    bool
	}{
		{"14", 14, true},
		{"401", 401, true},
		{"", 0, false},
		{"14A", 0, false},
		{"-3", 0, false},
		{" 5", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseRouteID(gtfs.RawRoute{ID: "r", ShortName: tt.short})
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseRouteID(%q) = (%d, %v)", tt.short, got, err)
		}
		if err != nil && !errors.Is(err, ErrUnexpectedRouteIDFormat) {
			t.Errorf("ParseRouteID(%q) error should wrap ErrUnexpectedRouteIDFormat", tt.short)
		}
	}
}

func TestNewConverter_RequiresTables(t *testing.T) {
	if _, err := NewConverter(ConverterOptions{}); err == nil {
		t.Error("expected an error for missing tables")
	}
}

func TestWarningAggregator(t *testing.T) {
	w := NewWarningAggregator()
	for _, id := range []string{"a", "b", "c", "d"} {
		w.Add(WarningExcludedStop, id)
	}
	w.Add(WarningEmptyHeadsign, "t1")

	s := w.Summaries()
	if len(s) != 2 || s[0].Type != WarningEmptyHeadsign || s[1].Type != WarningExcludedStop {
		t.Fatalf("summaries = %+v", s)
	}
	if s[1].Count != 4 || len(s[1].Examples) != 3 {
		t.Errorf("excluded stops = %+v, want 4 occurrences and 3 examples", s[1])
	}
	if w.Count("nothing") != 0 {
		t.Error("unknown warning type should count 0")
	}
}

func TestConverter_TemplateMisses(t *testing.T) {
	feed := &gtfs.Feed{
		Routes: []gtfs.RawRoute{
			{ID: "R14", AgencyID: stc, ShortName: "14", LongName: "Fairview Mall - Dunkeld"},
			{ID: "R20", AgencyID: stc, ShortName: "20", LongName: "Thorold"},
		},
		Stops: []gtfs.RawStop{
			{ID: "STC_S_2016_Pen Cntr", Name: "Pen Centre"},
			{ID: "STC_S_2016_OrmdRich", Name: "Ormond St. at Richmond St."},
			{ID: "STC_S_2016_CrmtTowp", Name: "Towpath Terminal"},
			{ID: "STC_S_2016_Stop0500", Code: "0500", Name: "Ormond St. near Pine St."},
			{ID: "STC_S_2016_FVM", Name: "Fairview Mall"},
			{ID: "STC_S_2016_Stop0710", Code: "0710", Name: "Geneva St. at Scott St."},
			{ID: "STC_S_2016_DnklCrlt", Name: "Dunkeld Ave. at Carlton St."},
			{ID: "STC_S_2016_Stop0470", Code: "0470", Name: "Carlton St. at Niagara St."},
		},
		Trips: []gtfs.RawTrip{
			{ID: "T20full", RouteID: "R20", ServiceID: "WKDY", DirectionID: 0, Headsign: "20 Thorold - Towpath Terminal",
				StopIDs: []string{"STC_S_2016_Pen Cntr", "STC_S_2016_OrmdRich", "STC_S_2016_CrmtTowp"}},
			{ID: "T20short", RouteID: "R20", ServiceID: "WKDY", DirectionID: 0, Headsign: "20 Thorold - Ormond",
				StopIDs: []string{"STC_S_2016_Pen Cntr", "STC_S_2016_OrmdRich", "STC_S_2016_Stop0500"}},
			{ID: "T20back", RouteID: "R20", ServiceID: "WKDY", DirectionID: 1, Headsign: "20 Pen Centre",
				StopIDs: []string{"STC_S_2016_CrmtTowp", "STC_S_2016_Pen Cntr"}},
			{ID: "T14a", RouteID: "R14", ServiceID: "WKDY", DirectionID: 0, Headsign: "14 Dunkeld",
				StopIDs: []string{"STC_S_2016_FVM", "STC_S_2016_Stop0710", "STC_S_2016_DnklCrlt"}},
			{ID: "T14b", RouteID: "R14", ServiceID: "WKDY", DirectionID: 1, Headsign: "14 Carlton",
				StopIDs: []string{"STC_S_2016_DnklCrlt", "STC_S_2016_Stop0470"}},
		},
	}

	conv := newTestConverter(t)
	out, err := conv.Convert(feed)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	tests := []struct {
		rawID     string
		direction int
		headsign  string
	}{
		{"T20full", 0, "Thorold"},
		{"T20short", 0, "Thorold"},
		{"T20back", 1, "Pen Ctr"},
		{"T14a", tripspec.DirectionEast, "Dunkeld & Carlton"},
		{"T14b", tripspec.DirectionWest, "Fairview Mall"},
	}
	got := map[string]Trip{}
	for _, tr := range out.Trips {
		got[tr.RawID] = tr
	}
	for _, tt := range tests {
		t.Run(tt.rawID, func(t *testing.T) {
			tr, ok := got[tt.rawID]
			if !ok {
				t.Fatalf("trip %s missing", tt.rawID)
			}
			if tr.DirectionID != tt.direction || tr.Headsign != tt.headsign {
				t.Errorf("%s = {dir=%d headsign=%q}, want {dir=%d headsign=%q}",
					tt.rawID, tr.DirectionID, tr.Headsign, tt.direction, tt.headsign)
			}
		})
	}

	if n := conv.Warnings().Count(WarningTemplateMiss); n != 3 {
		t.Errorf("template misses = %d, want 3", n)
	}
	t.Logf("✓ Oriented %d trips of templated routes", len(out.Trips))
}

func TestConverter_UnknownTripStop(t *testing.T) {
	feed := &gtfs.Feed{
		Routes: []gtfs.RawRoute{
			{ID: "R1", AgencyID: stc, ShortName: "1", LongName: "Pelham"},
		},
		Stops: []gtfs.RawStop{
			{ID: "STC_S_2016_DTT", Name: "Downtown Terminal"},
		},
		Trips: []gtfs.RawTrip{
			{ID: "T1", RouteID: "R1", ServiceID: "WKDY", Headsign: "1 Pelham",
				StopIDs: []string{"STC_S_2016_DTT", "STC_S_2016_Gone"}},
		},
	}

	conv := newTestConverter(t)
	out, err := conv.Convert(feed)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(out.Trips) != 1 {
		t.Fatalf("trips = %d, want 1", len(out.Trips))
	}
	if n := len(out.Trips[0].StopIDs); n != 1 {
		t.Errorf("trip stops = %d, want 1", n)
	}
	if n := conv.Warnings().Count(WarningUnknownStop); n != 1 {
		t.Errorf("unknown stop warnings = %d, want 1", n)
	}
	t.Logf("✓ Dropped stop reference missing from stops.txt")
}
