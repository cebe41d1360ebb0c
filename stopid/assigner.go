package stopid

import (
	"regexp"
	"strconv"
	"strings"
)

// ID is a canonical stop identifier. It is stable across feed releases for
// the same physical stop.
type ID int

// Stop is the subset of a raw stop record the assigner reads.
type Stop struct {
	ID   string
	Code string
	Name string
}

const zeroCode = "0"

var digitRun = regexp.MustCompile(`[0-9]+`)

// Assigner maps raw stop codes to canonical ids.
type Assigner struct {
	tables *Tables
}

// NewAssigner validates the tables and returns an Assigner bound to them.
func NewAssigner(tables *Tables) (*Assigner, error) {
	if tables.literalIndex == nil {
		if err := tables.Validate(); err != nil {
			return nil, err
		}
	}
	return &Assigner{tables: tables}, nil
}

// EffectiveCode returns the code that feeds classification: the stop code,
// or the stop id when the code is missing or the literal "0".
func EffectiveCode(code, id string) string {
	if code == "" || code == zeroCode {
		return id
	}
	return code
}

// StripPrefix removes feed-generation prefixes, first match wins, until none
// applies. Stacked forms such as STC_F2015_Sto1234 lose both layers.
func (a *Assigner) StripPrefix(code string) string {
	for {
		stripped := false
		for _, p := range a.tables.Prefixes {
			if loc := p.Pattern.FindStringIndex(code); loc != nil && loc[1] > 0 {
				code = code[loc[1]:]
				stripped = true
				break
			}
		}
		if !stripped {
			return code
		}
	}
}

// Assign returns the canonical id for a stop. It never guesses: a code that
// no rule classifies yields an *UnclassifiedStopCodeError.
func (a *Assigner) Assign(code, id, name string) (ID, error) {
	raw := Stop{ID: id, Code: code, Name: name}
	c := a.StripPrefix(EffectiveCode(code, id))

	if isDigits(c) {
		n, err := strconv.Atoi(c)
		if err != nil {
			return 0, &UnclassifiedStopCodeError{Stop: raw, Code: c, Stage: StageNumeric}
		}
		return ID(n), nil
	}

	if v, ok := a.tables.literalIndex[c]; ok {
		return v, nil
	}

	if digits := digitRun.FindString(c); digits != "" {
		for _, l := range a.tables.Localities {
			if !strings.HasPrefix(c, l.Prefix) {
				continue
			}
			n, err := strconv.Atoi(digits)
			if err != nil || ID(n) >= localityBlockSize {
				return 0, &UnclassifiedStopCodeError{Stop: raw, Code: c, Stage: StageLocality}
			}
			return l.Offset + ID(n), nil
		}
	}

	base, ok := a.matchPrefix(c, name)
	if !ok {
		return 0, &UnclassifiedStopCodeError{Stop: raw, Code: c, Stage: StagePrefix}
	}
	offset, ok := a.matchSuffix(c)
	if !ok {
		return 0, &UnclassifiedStopCodeError{Stop: raw, Code: c, Stage: StageSuffix}
	}
	return base + offset, nil
}

// AssignStop is Assign over a Stop value.
func (a *Assigner) AssignStop(s Stop) (ID, error) {
	return a.Assign(s.Code, s.ID, s.Name)
}

// AssignAll assigns every stop of one snapshot and checks that no two raw
// stops share an id.
func (a *Assigner) AssignAll(stops []Stop) (map[string]ID, error) {
	out := make(map[string]ID, len(stops))
	owner := make(map[ID]string, len(stops))
	for _, s := range stops {
		v, err := a.AssignStop(s)
		if err != nil {
			return nil, err
		}
		if prev, taken := owner[v]; taken && prev != s.ID {
			return nil, &CollisionError{ID: v, First: prev, Second: s.ID}
		}
		owner[v] = s.ID
		out[s.ID] = v
	}
	return out, nil
}

func (a *Assigner) matchPrefix(code, name string) (ID, bool) {
	for _, r := range a.tables.StartsWith {
		if strings.HasPrefix(code, r.Token) {
			return r.Base, true
		}
		if r.NamePrefix != "" && strings.HasPrefix(name, r.NamePrefix) {
			return r.Base, true
		}
	}
	return 0, false
}

func (a *Assigner) matchSuffix(code string) (ID, bool) {
	for _, r := range a.tables.EndsWith {
		if strings.HasSuffix(code, r.Token) {
			return r.Offset, true
		}
	}
	return 0, false
}

// Stop code prefixes that precede the public number when the feed leaves
// stop_code as "0".
var publicCodeIDPrefixes = []string{"STC_F_Stop", "STC_F2015_Stop", "STC_F2015_Sto"}

// PublicCode returns the stop code shown to riders, or "" when the stop has
// no usable public number.
func (a *Assigner) PublicCode(code, id string) string {
	if code == zeroCode {
		for _, p := range publicCodeIDPrefixes {
			if strings.HasPrefix(id, p) {
				return id[len(p):]
			}
		}
		return ""
	}
	if strings.HasPrefix(code, "Sto") {
		return code[len("Sto"):]
	}
	if !isDigits(code) {
		return ""
	}
	return code
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
