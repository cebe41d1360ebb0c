package overrides

import (
	"errors"
	"fmt"
)

// Headsign labels shared by several routes.
const (
	Brock            = "Brock"
	Downtown         = "Downtown"
	DowntownTerminal = "Downtown Terminal"
	LinwellRd        = "Linwell Rd"
	PenCtr           = "Pen Ctr"
)

// ErrUnexpectedHeadsignMerge is returned when two headsigns of one route have
// no registered reconciliation.
var ErrUnexpectedHeadsignMerge = errors.New("unexpected headsign merge")

// UnexpectedHeadsignMergeError names the route and the two labels.
type UnexpectedHeadsignMergeError struct {
	Route int64
	A, B  string
}

func (e *UnexpectedHeadsignMergeError) Error() string {
	return fmt.Sprintf("unexpected trips to merge on route %d: %q & %q", e.Route, e.A, e.B)
}

func (e *UnexpectedHeadsignMergeError) Unwrap() error { return ErrUnexpectedHeadsignMerge }

// HeadsignOverride replaces the headsign of every trip of a route in one
// direction.
type HeadsignOverride struct {
	Route     int64
	Direction int
	Label     string
}

// DirectionMerge gives every trip of a route direction one label whenever
// their headsigns differ.
type DirectionMerge struct {
	Route     int64
	Direction int
	Merged    string
}

// MergeRule reconciles two headsigns seen on the same route. The pair is
// unordered.
type MergeRule struct {
	Route  int64
	A, B   string
	Merged string
}

// HeadsignNormalizer is the label stage used when no override applies.
type HeadsignNormalizer interface {
	NormalizeHeadsign(raw, routeShortName string) string
}

type routeDirection struct {
	route     int64
	direction int
}

type labelPair struct {
	a, b string
}

// HeadsignTable resolves trip headsigns: literal overrides first, the
// normalizer otherwise.
type HeadsignTable struct {
	normalizer HeadsignNormalizer
	overrides  map[routeDirection]string
	directions map[routeDirection]string
	merges     map[int64]map[labelPair]string
}

// NewHeadsignTable builds a table. Merge labels are stored normalized so that
// raw and already normalized headsigns both match.
func NewHeadsignTable(n HeadsignNormalizer, overrides []HeadsignOverride, directions []DirectionMerge, merges []MergeRule) *HeadsignTable {
	t := &HeadsignTable{
		normalizer: n,
		overrides:  make(map[routeDirection]string, len(overrides)),
		directions: make(map[routeDirection]string, len(directions)),
		merges:     make(map[int64]map[labelPair]string),
	}
	for _, o := range overrides {
		t.overrides[routeDirection{o.Route, o.Direction}] = o.Label
	}
	for _, d := range directions {
		t.directions[routeDirection{d.Route, d.Direction}] = d.Merged
	}
	for _, m := range merges {
		if t.merges[m.Route] == nil {
			t.merges[m.Route] = make(map[labelPair]string)
		}
		t.merges[m.Route][t.pair(m.A, m.B)] = m.Merged
	}
	return t
}

// DefaultHeadsignTable returns the St Catharines Transit exceptions.
func DefaultHeadsignTable(n HeadsignNormalizer) *HeadsignTable {
	return NewHeadsignTable(n,
		[]HeadsignOverride{
			{Route: 122, Direction: 0, Label: PenCtr},
			{Route: 122, Direction: 1, Label: Brock},
			{Route: 124, Direction: 0, Label: Brock},
			{Route: 124, Direction: 1, Label: PenCtr},
		},
		[]DirectionMerge{
			{Route: 3, Direction: 1, Merged: Downtown},
			{Route: 5, Direction: 0, Merged: LinwellRd},
			{Route: 5, Direction: 1, Merged: Downtown},
			{Route: 101, Direction: 1, Merged: Downtown},
			{Route: 102, Direction: 1, Merged: Downtown},
			{Route: 112, Direction: 1, Merged: Downtown},
		},
		[]MergeRule{
			{Route: 401, A: "Niagara Health System - St Cath", B: DowntownTerminal, Merged: DowntownTerminal},
		},
	)
}

// Override returns the literal headsign for route and direction, if any.
func (t *HeadsignTable) Override(route int64, direction int) (string, bool) {
	l, ok := t.overrides[routeDirection{route, direction}]
	return l, ok
}

// Resolve returns the display headsign of a trip.
func (t *HeadsignTable) Resolve(route int64, direction int, raw, routeShortName string) string {
	if l, ok := t.Override(route, direction); ok {
		return l
	}
	return t.normalizer.NormalizeHeadsign(raw, routeShortName)
}

// Merge reconciles two headsigns of one route direction. Labels equal after
// normalization merge to the first one; otherwise a direction rule, then a
// registered pair, must apply.
func (t *HeadsignTable) Merge(route int64, direction int, a, b string) (string, error) {
	if p := t.pair(a, b); p.a == p.b {
		return a, nil
	}
	if merged, ok := t.directions[routeDirection{route, direction}]; ok {
		return merged, nil
	}
	if merged, ok := t.merges[route][t.pair(a, b)]; ok {
		return merged, nil
	}
	return "", &UnexpectedHeadsignMergeError{Route: route, A: a, B: b}
}

func (t *HeadsignTable) pair(a, b string) labelPair {
	a = t.normalizer.NormalizeHeadsign(a, "")
	b = t.normalizer.NormalizeHeadsign(b, "")
	if b < a {
		a, b = b, a
	}
	return labelPair{a, b}
}
