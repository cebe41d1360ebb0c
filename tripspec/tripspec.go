package tripspec

import (
	"errors"
	"fmt"
	"slices"

	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/stopid"
)

// ErrUnresolvedAnchor is returned when an anchor stop id has no canonical id.
var ErrUnresolvedAnchor = errors.New("unresolved anchor stop")

// UnresolvedAnchorError names the anchor and wraps the assigner failure.
type UnresolvedAnchorError struct {
	Route     int64
	Direction int
	StopID    string
	Err       error
}

func (e *UnresolvedAnchorError) Error() string {
	return fmt.Sprintf("route %d direction %d: anchor %q: %v", e.Route, e.Direction, e.StopID, e.Err)
}

func (e *UnresolvedAnchorError) Unwrap() []error { return []error{ErrUnresolvedAnchor, e.Err} }

// Direction ids beyond the GTFS 0/1 pair, for templates split on compass
// direction rather than direction_id.
const (
	DirectionEast = 1
	DirectionWest = 2
)

// Direction is one side of a template with its ordered anchor stops.
type Direction struct {
	ID       int
	Headsign string
	Anchors  []stopid.ID
}

type Template struct {
	RouteID    int64
	Directions []Direction
}

// Direction looks a direction up by id.
func (t Template) Direction(id int) (Direction, bool) {
	for _, d := range t.Directions {
		if d.ID == id {
			return d, true
		}
	}
	return Direction{}, false
}

// Match returns the first direction whose anchors all appear in stops in
// order. Directions without anchors never match.
func (t Template) Match(stops []stopid.ID) (Direction, bool) {
	for _, d := range t.Directions {
		if len(d.Anchors) > 0 && isSubsequence(d.Anchors, stops) {
			return d, true
		}
	}
	return Direction{}, false
}

// Orient places a trip on one side of the template and reports whether the
// trip visits every anchor of that side in order. Trips that miss anchors,
// such as short turns, go to the side sharing the longest ordered run of
// anchors with them, ties going to the side they start or end on. Trips that
// visit no anchor keep rawDirection when the template has that side.
func (t Template) Orient(stops []stopid.ID, rawDirection int) (Direction, bool) {
	if d, ok := t.Match(stops); ok {
		return d, true
	}

	var (
		best      Direction
		bestScore = 0
	)
	for _, d := range t.Directions {
		if len(d.Anchors) == 0 {
			continue
		}
		common := commonRun(d.Anchors, stops)
		if common == 0 {
			continue
		}
		score := common * 4
		if len(stops) > 0 && stops[0] == d.Anchors[0] {
			score += 2
		}
		if len(stops) > 0 && stops[len(stops)-1] == d.Anchors[len(d.Anchors)-1] {
			score++
		}
		if score > bestScore {
			best, bestScore = d, score
		}
	}
	if bestScore > 0 {
		return best, false
	}

	if d, ok := t.Direction(rawDirection); ok && len(d.Anchors) > 0 {
		return d, false
	}
	for _, d := range t.Directions {
		if len(d.Anchors) > 0 {
			return d, false
		}
	}
	return Direction{ID: rawDirection}, false
}

// commonRun is the length of the longest common subsequence of anchors and
// stops.
func commonRun(anchors, stops []stopid.ID) int {
	prev := make([]int, len(stops)+1)
	cur := make([]int, len(stops)+1)
	for _, a := range anchors {
		for j, s := range stops {
			switch {
			case a == s:
				cur[j+1] = prev[j] + 1
			case prev[j+1] >= cur[j]:
				cur[j+1] = prev[j+1]
			default:
				cur[j+1] = cur[j]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(stops)]
}

func isSubsequence(want, in []stopid.ID) bool {
	i := 0
	for _, s := range in {
		if i < len(want) && s == want[i] {
			i++
		}
	}
	return i == len(want)
}

// Registry hands out templates by route number.
type Registry interface {
	Template(route int64) (Template, bool)
}

// DirectionSpec is a direction as authored, with raw anchor stop ids.
type DirectionSpec struct {
	ID            int
	Headsign      string
	AnchorStopIDs []string
}

type RouteSpec struct {
	RouteID    int64
	Directions []DirectionSpec
}

// Table is the Registry built from route specs.
type Table struct {
	templates map[int64]Template
}

// Build resolves every anchor of specs through a.
func Build(a *stopid.Assigner, specs []RouteSpec) (*Table, error) {
	t := &Table{templates: make(map[int64]Template, len(specs))}
	for _, rs := range specs {
		if _, dup := t.templates[rs.RouteID]; dup {
			return nil, fmt.Errorf("route %d: duplicate template", rs.RouteID)
		}
		tmpl := Template{RouteID: rs.RouteID}
		for _, ds := range rs.Directions {
			d := Direction{ID: ds.ID, Headsign: ds.Headsign}
			for _, raw := range ds.AnchorStopIDs {
				id, err := a.Assign("", raw, "")
				if err != nil {
					return nil, &UnresolvedAnchorError{Route: rs.RouteID, Direction: ds.ID, StopID: raw, Err: err}
				}
				d.Anchors = append(d.Anchors, id)
			}
			tmpl.Directions = append(tmpl.Directions, d)
		}
		t.templates[rs.RouteID] = tmpl
	}
	return t, nil
}

func (t *Table) Template(route int64) (Template, bool) {
	tmpl, ok := t.templates[route]
	return tmpl, ok
}

// All returns the templates ordered by route.
func (t *Table) All() []Template {
	out := make([]Template, 0, len(t.templates))
	for _, tmpl := range t.templates {
		out = append(out, tmpl)
	}
	slices.SortFunc(out, func(a, b Template) int {
		switch {
		case a.RouteID < b.RouteID:
			return -1
		case a.RouteID > b.RouteID:
			return 1
		}
		return 0
	})
	return out
}
