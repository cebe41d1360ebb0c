package converter

import (
	"fmt"
	"log"
	"sort"
	"strings"
)

// Warning type constants
const (
	// filter warnings
	WarningExcludedRoute = "excluded_route"
	WarningExcludedStop  = "excluded_stop"
	WarningExcludedTrip  = "excluded_trip"

	// route warnings
	WarningDuplicateRouteID = "duplicate_route_id"
	WarningNoRouteLongName  = "no_route_long_name"

	// trip warnings
	WarningTemplateMiss  = "template_miss"
	WarningEmptyHeadsign = "empty_headsign"
	WarningUnknownStop   = "unknown_trip_stop"
)

// warningInfo holds aggregated information about a specific warning type
type warningInfo struct {
	count    int
	examples []string
}

// WarningAggregator collects non-fatal observations of a run and logs one
// line per kind instead of one per record.
type WarningAggregator struct {
	warnings map[string]*warningInfo
}

func NewWarningAggregator() *WarningAggregator {
	return &WarningAggregator{
		warnings: make(map[string]*warningInfo),
	}
}

// Add records a warning occurrence with an example ID
func (w *WarningAggregator) Add(warningType, exampleID string) {
	if w.warnings[warningType] == nil {
		w.warnings[warningType] = &warningInfo{
			examples: make([]string, 0, 3),
		}
	}

	info := w.warnings[warningType]
	info.count++

	// Store up to 3 examples
	if len(info.examples) < 3 {
		info.examples = append(info.examples, exampleID)
	}
}

// Count returns how often warningType was added.
func (w *WarningAggregator) Count(warningType string) int {
	if info := w.warnings[warningType]; info != nil {
		return info.count
	}
	return 0
}

// WarningSummary is one aggregated warning kind.
type WarningSummary struct {
	Type        string
	Description string
	Count       int
	Examples    []string
}

// Summaries lists the collected warnings ordered by type.
func (w *WarningAggregator) Summaries() []WarningSummary {
	out := make([]WarningSummary, 0, len(w.warnings))
	for warningType, info := range w.warnings {
		description, _ := describeWarning(warningType)
		out = append(out, WarningSummary{
			Type:        warningType,
			Description: description,
			Count:       info.count,
			Examples:    append([]string(nil), info.examples...),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// LogAll outputs all collected warnings in consolidated format
func (w *WarningAggregator) LogAll(feedName, agency string) {
	for _, s := range w.Summaries() {
		_, action := describeWarning(s.Type)
		log.Printf("Feed %s for agency %s has %s (%d occurrences). %s. Examples: %s",
			feedName, agency, s.Description, s.Count, action, strings.Join(s.Examples, ", "))
	}
}

func describeWarning(warningType string) (description, action string) {
	switch warningType {
	case WarningExcludedRoute:
		return "routes of another agency or regional operator", "Dropping the routes and their trips"
	case WarningExcludedStop:
		return "stops owned by another operator", "Dropping the stops from every trip"
	case WarningExcludedTrip:
		return "trips outside the useful services", "Dropping the trips"
	case WarningDuplicateRouteID:
		return "routes sharing a route number", "Keeping the first route and merging trips into it"
	case WarningNoRouteLongName:
		return "routes with no route_long_name", "Writing an empty long name"
	case WarningTemplateMiss:
		return "trips of templated routes matching no anchor sequence", "Placing them on the closest template direction"
	case WarningEmptyHeadsign:
		return "trips with an empty headsign", "Writing an empty headsign"
	case WarningUnknownStop:
		return "trip stops missing from the stop list", "Skipping the stop in the trip"
	}
	return fmt.Sprintf("unknown issue %q", warningType), "Continuing"
}
