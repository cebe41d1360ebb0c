// Package tripspec authors the per-route anchor sequences used to split and
// label trips of routes whose GTFS direction ids cannot be trusted.
//
// Anchors are written as raw stop ids of the 2016 feed and resolved through
// the stopid package, so a template only holds canonical ids:
//
//	a, _ := stopid.NewAssigner(stopid.DefaultTables())
//	reg, err := tripspec.Build(a, tripspec.DefaultSpecs())
//	tmpl, ok := reg.Template(20)
//	dir, ok := tmpl.Match(canonicalStopsOfTrip)
//
// Build fails on the first anchor the assigner cannot classify.
package tripspec
