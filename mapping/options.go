package mapping

import (
	"strings"

	"crm_bridge/taxonomy"
)

// Option is one entry of a select control.
type Option struct {
	Value string
	Text  string
}

type optionQuery struct {
	options   []Option
	candidate string
}

func byOptionValue(q optionQuery) (Option, bool) {
	for _, o := range q.options {
		if o.Value == q.candidate {
			return o, true
		}
	}
	return Option{}, false
}

func byOptionText(q optionQuery) (Option, bool) {
	want := taxonomy.Fold(q.candidate)
	for _, o := range q.options {
		if taxonomy.Fold(o.Text) == want {
			return o, true
		}
	}
	return Option{}, false
}

func byOptionContains(q optionQuery) (Option, bool) {
	want := taxonomy.Fold(q.candidate)
	if want == "" {
		return Option{}, false
	}
	for _, o := range q.options {
		text := taxonomy.Fold(o.Text)
		if text == "" {
			continue
		}
		if strings.Contains(text, want) || strings.Contains(want, text) {
			return o, true
		}
	}
	return Option{}, false
}

var optionMatchers = []taxonomy.Matcher[optionQuery, Option]{
	byOptionValue,
	byOptionText,
	byOptionContains,
}

// MatchOption tries each candidate in order against the live option list and
// returns the first option any matcher accepts.
func MatchOption(options []Option, candidates []string) (Option, bool) {
	for _, c := range candidates {
		if strings.TrimSpace(c) == "" {
			continue
		}
		if o, ok := taxonomy.FirstMatch(optionQuery{options: options, candidate: c}, optionMatchers...); ok {
			return o, true
		}
	}
	return Option{}, false
}

// Checkbox is one member of a checkbox group with its visible label.
type Checkbox struct {
	Index   int
	Label   string
	Checked bool
}

// MatchCheckboxes returns the indexes of unchecked boxes whose label matches one
// of labels. Exact label matches are preferred over containment.
func MatchCheckboxes(boxes []Checkbox, labels []string) []int {
	var out []int
	picked := make(map[int]bool)
	for _, label := range labels {
		want := taxonomy.Fold(label)
		if want == "" {
			continue
		}
		idx := -1
		for i, b := range boxes {
			if taxonomy.Fold(b.Label) == want {
				idx = i
				break
			}
		}
		if idx < 0 {
			for i, b := range boxes {
				if strings.Contains(taxonomy.Fold(b.Label), want) {
					idx = i
					break
				}
			}
		}
		if idx < 0 || boxes[idx].Checked || picked[boxes[idx].Index] {
			continue
		}
		picked[boxes[idx].Index] = true
		out = append(out, boxes[idx].Index)
	}
	return out
}
