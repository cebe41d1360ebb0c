package label

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Style owns the agency-independent cleanup: street type abbreviations and
// final casing. Both methods receive lower-case text.
type Style interface {
	CleanStreetTypes(s string) string
	CleanLabel(s string) string
}

type streetType struct {
	pattern *regexp.Regexp
	short   string
}

func street(short string, long ...string) streetType {
	return streetType{
		pattern: regexp.MustCompile(`\b(?:` + strings.Join(long, "|") + `)\b`),
		short:   short,
	}
}

var (
	whitespace   = regexp.MustCompile(`\s+`)
	slashSpacing = regexp.MustCompile(`\s*/\s*`)
	word         = regexp.MustCompile(`[\p{L}\p{N}']+`)
)

type defaultStyle struct {
	streetTypes []streetType
	upper       map[string]bool
	title       cases.Caser
}

// DefaultStyle abbreviates Canadian street types and capitalizes each word,
// keeping known acronyms upper case.
func DefaultStyle() Style {
	return &defaultStyle{
		streetTypes: []streetType{
			street("ave", "avenue", "av"),
			street("blvd", "boulevard"),
			street("ctr", "centre", "center", "cntr"),
			street("cir", "circle"),
			street("crt", "court"),
			street("cres", "crescent"),
			street("dr", "drive"),
			street("expy", "expressway"),
			street("gdns", "gardens"),
			street("hts", "heights"),
			street("hwy", "highway"),
			street("ln", "lane"),
			street("mt", "mount"),
			street("pkwy", "parkway"),
			street("pl", "place"),
			street("rd", "road"),
			street("sq", "square"),
			street("st", "street"),
			street("terr", "terrace"),
		},
		upper: map[string]bool{
			"go":   true,
			"ii":   true,
			"iii":  true,
			"nc":   true,
			"notl": true,
			"nrt":  true,
			"qew":  true,
			"ymca": true,
		},
		title: cases.Title(language.English),
	}
}

func (d *defaultStyle) CleanStreetTypes(s string) string {
	for _, st := range d.streetTypes {
		s = st.pattern.ReplaceAllString(s, st.short)
	}
	return s
}

func (d *defaultStyle) CleanLabel(s string) string {
	s = slashSpacing.ReplaceAllString(s, " / ")
	s = strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
	return word.ReplaceAllStringFunc(s, d.capitalize)
}

func (d *defaultStyle) capitalize(w string) string {
	lower := strings.ToLower(w)
	if d.upper[lower] {
		return strings.ToUpper(lower)
	}
	if r, _ := utf8.DecodeRuneInString(lower); !unicode.IsLetter(r) {
		return lower
	}
	return d.title.String(lower)
}
