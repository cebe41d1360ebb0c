package overrides

import (
	"errors"
	"fmt"
	"sort"
)

// Color is a route color as six hex digits without '#'. Unknown means the
// route is known but has no branded color yet; the consumer falls back to
// AgencyColor.
type Color string

const Unknown Color = ""

// AgencyColor is the agency green (from the agency web site CSS).
const AgencyColor Color = "008E1A"

// ErrUnexpectedRouteColor is returned for routes missing from the color table.
var ErrUnexpectedRouteColor = errors.New("unexpected route color")

// UnexpectedRouteColorError names the route that has no table entry.
type UnexpectedRouteColorError struct {
	Route int64
}

func (e *UnexpectedRouteColorError) Error() string {
	return fmt.Sprintf("unexpected route color for route %d", e.Route)
}

func (e *UnexpectedRouteColorError) Unwrap() error { return ErrUnexpectedRouteColor }

// ColorTable maps route numbers to colors. A route missing from the table is
// an error, so a new route cannot ship without someone choosing its color.
type ColorTable struct {
	colors map[int64]Color
}

// NewColorTable copies colors into a read-only table.
func NewColorTable(colors map[int64]Color) *ColorTable {
	m := make(map[int64]Color, len(colors))
	for k, v := range colors {
		m[k] = v
	}
	return &ColorTable{colors: m}
}

// DefaultColorTable returns the St Catharines Transit route colors.
func DefaultColorTable() *ColorTable {
	const (
		c005496 Color = "005496"
		c00823C Color = "00823C"
		c00A650 Color = "00A650"
		c00ADEF Color = "00ADEF"
		c00B050 Color = "00B050"
		c0A8ED8 Color = "0A8ED8"
		c166FC1 Color = "166FC1"
		c24528E Color = "24528E"
		c4594A9 Color = "4594A9"
		c485683 Color = "485683"
		c486762 Color = "486762"
		c48A1AF Color = "48A1AF"
		c4CC6F5 Color = "4CC6F5"
		c8E1890 Color = "8E1890"
		c92D050 Color = "92D050"
		cA4835A Color = "A4835A"
		cC81070 Color = "C81070"
		cE77B48 Color = "E77B48"
		cED008C Color = "ED008C"
		cED1B24 Color = "ED1B24"
		cF25373 Color = "F25373"
		cF68713 Color = "F68713"
	)
	return NewColorTable(map[int64]Color{
		1:   cED1B24,
		2:   c00A650,
		3:   cED008C,
		4:   cF68713,
		5:   c8E1890,
		6:   cED1B24,
		7:   c4CC6F5,
		8:   c48A1AF,
		9:   c48A1AF,
		10:  c24528E,
		11:  c0A8ED8,
		12:  c00A650,
		14:  cC81070,
		15:  c00823C,
		16:  cED1B24,
		17:  c8E1890,
		18:  c00823C,
		20:  c485683,
		21:  c486762,
		22:  cF25373,
		23:  c8E1890,
		25:  cED1B24,
		26:  cED1B24,
		27:  cED1B24,
		28:  c92D050,
		29:  c4594A9,
		30:  c005496,
		31:  c00B050,
		32:  c166FC1,
		33:  c166FC1,
		34:  Unknown,
		101: cED1B24,
		102: c166FC1,
		104: c00ADEF,
		106: cED1B24,
		108: c00A650,
		109: cA4835A,
		110: c24528E,
		112: c166FC1,
		114: cC81070,
		115: c00823C,
		116: cED1B24,
		117: cA4835A,
		118: c00823C,
		120: c485683,
		122: c48A1AF,
		124: cE77B48,
		128: cED1B24,
		216: Unknown,
		314: c00823C,
		401: Unknown,
	})
}

// Resolve returns the color of route, Unknown when the table says so, or an
// *UnexpectedRouteColorError when the route is not listed.
func (t *ColorTable) Resolve(route int64) (Color, error) {
	c, ok := t.colors[route]
	if !ok {
		return Unknown, &UnexpectedRouteColorError{Route: route}
	}
	return c, nil
}

// RouteColor pairs a route number with its resolved color.
type RouteColor struct {
	Route int64
	Color Color
}

// All lists the table sorted by route number.
func (t *ColorTable) All() []RouteColor {
	out := make([]RouteColor, 0, len(t.colors))
	for r, c := range t.colors {
		out = append(out, RouteColor{Route: r, Color: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Route < out[j].Route })
	return out
}
