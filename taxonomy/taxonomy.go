// Package taxonomy holds the static lookup tables that translate between
// canonical keys and the legacy CRM's numeric codes.
//
// Tables are ordered slices rather than maps: when several canonical keys share
// one legacy code, table order is the tie-break.
package taxonomy

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type codeEntry struct {
	key  string
	code string
}

// keysForCode returns every key mapped to code, in table order.
func keysForCode(table []codeEntry, code string) []string {
	var keys []string
	for _, e := range table {
		if e.code == code {
			keys = append(keys, e.key)
		}
	}
	return keys
}

func codeForKey(table []codeEntry, key string) (string, bool) {
	for _, e := range table {
		if e.key == key {
			return e.code, true
		}
	}
	return "", false
}

func keyForCode(table []codeEntry, code string) (string, bool) {
	for _, e := range table {
		if e.code == code {
			return e.key, true
		}
	}
	return "", false
}

// Matcher inspects an input and either returns a match or reports no opinion.
type Matcher[In, Out any] func(in In) (Out, bool)

// FirstMatch runs matchers in order and returns the first match.
func FirstMatch[In, Out any](in In, matchers ...Matcher[In, Out]) (Out, bool) {
	for _, m := range matchers {
		if out, ok := m(in); ok {
			return out, true
		}
	}
	var zero Out
	return zero, false
}

// Fold lowercases s, strips diacritics and collapses whitespace so labels like
// "Kato Páphos " and "kato paphos" compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return strings.Join(strings.Fields(cases.Fold().String(stripped)), " ")
}

// NormalizeKey turns a label or slug into snake_case key form.
func NormalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	return strings.ReplaceAll(s, " ", "_")
}
