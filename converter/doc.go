// Package converter runs one canonicalization pass over a raw GTFS feed.
//
// A run chains the record filter with the pure transforms of the other
// packages: stop ids from stopid, labels from label, colors and headsign
// exceptions from overrides, and anchor templates from tripspec. It returns
// a NormalizedFeed ready for the formatter.
//
// # Usage
//
//	assigner, _ := stopid.NewAssigner(stopid.DefaultTables())
//	n := label.NewNormalizer(nil)
//	templates, _ := tripspec.Build(assigner, tripspec.DefaultSpecs())
//	f, _ := filter.NewFromConfig(cfg.Agency, gtfs.UsefulServiceIDs(feed, time.Now(), 60))
//
//	conv, _ := converter.NewConverter(converter.ConverterOptions{
//	    Filter:     f,
//	    Assigner:   assigner,
//	    Normalizer: n,
//	    Colors:     overrides.DefaultColorTable(),
//	    Headsigns:  overrides.DefaultHeadsignTable(n),
//	    Templates:  templates,
//	})
//	out, err := conv.Convert(feed)
//	conv.Warnings().LogAll("stc", cfg.Agency.AgencySubstring)
//
// # Errors
//
// Convert stops at the first record no table classifies and returns the
// error wrapped with its stage. Callers test the kind with errors.Is:
//
//   - stopid.ErrUnclassifiedStopCode, stopid.ErrStopIDCollision
//   - ErrUnexpectedRouteIDFormat
//   - overrides.ErrUnexpectedRouteColor
//   - overrides.ErrUnexpectedHeadsignMerge
//
// Excluded records and other non-fatal observations are counted in the
// WarningAggregator returned by Warnings.
package converter
