package taxonomy

import "strings"

type Location struct {
	Key   string
	Label string
}

type District struct {
	Key       string
	Label     string
	Locations []Location
}

// LocationMatch is a resolved area together with its district.
type LocationMatch struct {
	Key      string
	District string
}

// LocationQuery is what the legacy location select exposes: the selected
// option's value and its visible text.
type LocationQuery struct {
	Code string
	Text string
}

func findLocation(key string) (Location, District, bool) {
	for _, d := range Districts {
		for _, l := range d.Locations {
			if l.Key == key {
				return l, d, true
			}
		}
	}
	return Location{}, District{}, false
}

func findDistrict(key string) (District, bool) {
	for _, d := range Districts {
		if d.Key == key {
			return d, true
		}
	}
	return District{}, false
}

// DistrictFor returns the district key owning a location key.
func DistrictFor(key string) (string, bool) {
	_, d, ok := findLocation(key)
	return d.Key, ok
}

// LocationLabel returns the display label for a location or district key.
func LocationLabel(key string) (string, bool) {
	if l, _, ok := findLocation(key); ok {
		return l.Label, true
	}
	if d, ok := findDistrict(key); ok {
		return d.Label, true
	}
	return "", false
}

func known(key string) (LocationMatch, bool) {
	_, d, ok := findLocation(key)
	if !ok {
		return LocationMatch{}, false
	}
	return LocationMatch{Key: key, District: d.Key}, true
}

// matchLegacyCode tries every key sharing the code and keeps the first one the
// canonical location list knows.
func matchLegacyCode(q LocationQuery) (LocationMatch, bool) {
	for _, key := range keysForCode(legacyLocationCodes, strings.TrimSpace(q.Code)) {
		if m, ok := known(key); ok {
			return m, true
		}
	}
	return LocationMatch{}, false
}

func matchExactKey(q LocationQuery) (LocationMatch, bool) {
	return known(strings.TrimSpace(q.Code))
}

func matchNormalizedKey(q LocationQuery) (LocationMatch, bool) {
	return known(NormalizeKey(q.Code))
}

func matchLabelText(q LocationQuery) (LocationMatch, bool) {
	text := Fold(q.Text)
	if text == "" {
		return LocationMatch{}, false
	}
	for _, d := range Districts {
		for _, l := range d.Locations {
			if Fold(l.Label) == text {
				return LocationMatch{Key: l.Key, District: d.Key}, true
			}
		}
	}
	for _, d := range Districts {
		for _, l := range d.Locations {
			label := Fold(l.Label)
			if strings.Contains(label, text) || strings.Contains(text, label) {
				return LocationMatch{Key: l.Key, District: d.Key}, true
			}
		}
	}
	return LocationMatch{}, false
}

func matchRawLabel(q LocationQuery) (LocationMatch, bool) {
	raw := Fold(q.Code)
	if raw == "" {
		return LocationMatch{}, false
	}
	for _, d := range Districts {
		for _, l := range d.Locations {
			if Fold(l.Label) == raw {
				return LocationMatch{Key: l.Key, District: d.Key}, true
			}
		}
	}
	return LocationMatch{}, false
}

// LocationMatchers is the resolution order for legacy locations. Exact lookups
// always run before label heuristics.
var LocationMatchers = []Matcher[LocationQuery, LocationMatch]{
	matchLegacyCode,
	matchExactKey,
	matchNormalizedKey,
	matchLabelText,
	matchRawLabel,
}

// ResolveLocation maps a legacy location option to a canonical area.
func ResolveLocation(q LocationQuery) (LocationMatch, bool) {
	return FirstMatch(q, LocationMatchers...)
}

// LegacyLocationCode maps a canonical location or district key to its legacy id.
func LegacyLocationCode(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	if code, ok := codeForKey(legacyLocationCodes, key); ok {
		return code, true
	}
	return codeForKey(legacyLocationCodes, NormalizeKey(key))
}

// LocationCandidates returns the values to try, most specific first, when
// selecting a location on the legacy form: the area's code (or its label when
// the area has no code) followed by the district's code or label.
func LocationCandidates(area, district string) []string {
	var out []string
	add := func(v string) {
		if v == "" {
			return
		}
		for _, existing := range out {
			if existing == v {
				return
			}
		}
		out = append(out, v)
	}

	if area != "" {
		if code, ok := LegacyLocationCode(area); ok {
			add(code)
		} else if label, ok := LocationLabel(area); ok {
			add(label)
		} else {
			add(area)
		}
	}
	if district != "" && district != area {
		if code, ok := LegacyLocationCode(district); ok {
			add(code)
		} else if label, ok := LocationLabel(district); ok {
			add(label)
		} else {
			add(district)
		}
	}
	return out
}
