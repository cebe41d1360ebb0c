package label

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind selects the label family. Only trip headsigns get the route prefix
// stage.
type Kind int

const (
	StopName Kind = iota
	TripHeadsign
	RouteName
)

func (k Kind) String() string {
	switch k {
	case StopName:
		return "stop"
	case TripHeadsign:
		return "headsign"
	case RouteName:
		return "route"
	default:
		return "unknown"
	}
}

// ParseKind maps "stop", "headsign" and "route" to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stop", "stop_name":
		return StopName, true
	case "headsign", "trip_headsign":
		return TripHeadsign, true
	case "route", "route_name":
		return RouteName, true
	}
	return 0, false
}

var (
	// "20 Thorold - Towpath Terminal" -> "Towpath Terminal"
	headsignRouteNumber = regexp.MustCompile(`^[0-9]{1,3} `)
	headsignConnectors  = regexp.MustCompile(`^(?:(?:\w+\.? )+- )*`)
	headsignCentre      = regexp.MustCompile(`\b(?:centr|cent)\b`)

	andWord      = regexp.MustCompile(`\band\b`)
	locative     = regexp.MustCompile(`(^|\W)(?:across fr\.?|after|at|before|between both|between|east of|in front of|near|north of|opposite|opp\.?|south of|west of)(\W|$)`)
	ampersand    = regexp.MustCompile(`(^|\W)&(\W|$)`)
	initialism   = regexp.MustCompile(`\b(?:[a-z]\.){2,}`)
	innerPoint   = regexp.MustCompile(`(\w)\.(\w)`)
	trailingDot  = regexp.MustCompile(`(\w)\.(\s|$)`)
	stopNumberIn = regexp.MustCompile(`\(\s*(?:stop\s*)?#?\s*[0-9]+\s*\)`)
	hashNumber   = regexp.MustCompile(`(^|\s)#\s*[0-9]+\b`)
	stopNumberAt = regexp.MustCompile(`^(?:[0-9]{4,5}\s+-\s+)+`)
	ordinalWord  = regexp.MustCompile(`\b(?:first|second|third|fourth|fifth|sixth|seventh|eighth|ninth|tenth)\b`)
	leadingSep   = regexp.MustCompile(`^(?:\s*[&/\-])+\s*`)
	trailingSep  = regexp.MustCompile(`(?:\s*[&/\-])+[\W]*$`)
)

var ordinals = map[string]string{
	"first":   "1st",
	"second":  "2nd",
	"third":   "3rd",
	"fourth":  "4th",
	"fifth":   "5th",
	"sixth":   "6th",
	"seventh": "7th",
	"eighth":  "8th",
	"ninth":   "9th",
	"tenth":   "10th",
}

// Normalizer rewrites free-text labels into their display form. The stages
// run in a fixed order; later stages rely on the earlier ones. A Normalizer
// is not safe for concurrent use.
type Normalizer struct {
	style Style
	fold  cases.Caser
}

// NewNormalizer returns a Normalizer using style for street types and final
// casing. A nil style selects DefaultStyle.
func NewNormalizer(style Style) *Normalizer {
	if style == nil {
		style = DefaultStyle()
	}
	return &Normalizer{
		style: style,
		fold:  cases.Lower(language.English),
	}
}

// Normalize returns the display form of raw. It never fails; input no rule
// recognizes comes back cleaned but otherwise unchanged.
func (n *Normalizer) Normalize(raw string, kind Kind) string {
	return n.normalize(raw, kind, "")
}

// NormalizeHeadsign normalizes a trip headsign, also stripping a leading
// route short name such as "A " or "20 ".
func (n *Normalizer) NormalizeHeadsign(raw, routeShortName string) string {
	return n.normalize(raw, TripHeadsign, routeShortName)
}

func (n *Normalizer) normalize(raw string, kind Kind, routeShortName string) string {
	s := n.foldCase(raw)
	if kind == TripHeadsign {
		s = stripRoutePrefix(s, n.foldCase(routeShortName))
		s = headsignCentre.ReplaceAllString(s, "center")
	}
	s = canonicalAmpersands(s)
	s = replaceAll(locative, s, "${1}/${2}")
	s = replaceAll(ampersand, s, "${1}/${2}")
	s = removePoints(s)
	s = cleanNumbers(s)
	s = n.style.CleanStreetTypes(s)
	s = trimSeparators(s)
	return n.style.CleanLabel(s)
}

func (n *Normalizer) foldCase(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	return n.fold.String(strings.Join(strings.Fields(s), " "))
}

// replaceAll repeats re until the string stops changing. The boundary groups
// consume the separator, so "x at at y" needs two passes.
func replaceAll(re *regexp.Regexp, s, repl string) string {
	for i := 0; i < 8; i++ {
		next := re.ReplaceAllString(s, repl)
		if next == s {
			break
		}
		s = next
	}
	return s
}

// stripRoutePrefix removes route numbers and the connector words after them
// until the headsign no longer starts with one, so "20 Thorold - 406 Plaza"
// loses "406" as well.
func stripRoutePrefix(s, routeShortName string) string {
	for {
		var loc []int
		if loc = headsignRouteNumber.FindStringIndex(s); loc == nil && routeShortName != "" && strings.HasPrefix(s, routeShortName+" ") {
			loc = []int{0, len(routeShortName) + 1}
		}
		if loc == nil {
			return s
		}
		s = headsignConnectors.ReplaceAllString(s[loc[1]:], "")
	}
}

// canonicalAmpersands turns "&" into "and" (which also repairs words such as
// "alex&ra") and then every standalone "and" back into "&".
func canonicalAmpersands(s string) string {
	s = strings.ReplaceAll(s, "&", "and")
	return andWord.ReplaceAllString(s, "&")
}

func removePoints(s string) string {
	s = initialism.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ReplaceAll(m, ".", "")
	})
	// twice: matches cannot overlap, so "a.b.c" needs a second pass
	s = innerPoint.ReplaceAllString(s, "${1} ${2}")
	s = innerPoint.ReplaceAllString(s, "${1} ${2}")
	return trailingDot.ReplaceAllString(s, "${1}${2}")
}

func cleanNumbers(s string) string {
	s = stopNumberIn.ReplaceAllString(s, "")
	s = hashNumber.ReplaceAllString(s, "${1}")
	s = stopNumberAt.ReplaceAllString(strings.TrimSpace(s), "")
	return ordinalWord.ReplaceAllStringFunc(s, func(m string) string {
		return ordinals[m]
	})
}

func trimSeparators(s string) string {
	s = leadingSep.ReplaceAllString(s, "")
	return trailingSep.ReplaceAllString(s, "")
}
