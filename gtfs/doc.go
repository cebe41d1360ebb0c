/*
Package gtfs loads a GTFS static zip into the raw records the canonicalizer
works on.

Decoding is done by github.com/jamespfennell/gtfs; this package flattens the
parsed feed into plain rows (RawRoute, RawTrip, RawStop, RawCalendar,
RawCalendarDate) so the filter and converter never see parser types.

# Basic Usage

	feed, err := gtfs.NewFeedFromFile("input/gtfs.zip")
	if err != nil {
	    log.Fatal(err)
	}
	idx := gtfs.NewIndex(feed)
	route, ok := idx.Route("14")

Load from configuration, downloading when only staticURL is set and reusing a
gob snapshot when cachePath points at one:

	feed, err := gtfs.NewFeedFromConfig(ctx, cfg.SelectFeed(""))

# Useful Services

UsefulServiceIDs picks the services that run in the next lookahead window.
The filter package drops trips and calendars outside that set.

	ids := gtfs.UsefulServiceIDs(feed, time.Now(), 60)
*/
package gtfs
