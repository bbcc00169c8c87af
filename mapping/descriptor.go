// Package mapping declares how canonical record fields bind to controls on the
// legacy CRM's edit forms.
package mapping

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type ControlKind string

const (
	KindText          ControlKind = "text"
	KindTextarea      ControlKind = "textarea"
	KindRichText      ControlKind = "rich-text"
	KindSelect        ControlKind = "select"
	KindMultiSelect   ControlKind = "multi-select"
	KindCheckbox      ControlKind = "checkbox"
	KindCheckboxGroup ControlKind = "checkbox-group"
)

// CandidateSeparator joins alternative select values, most specific first.
const CandidateSeparator = "|||"

// ErrNoValue tells the caller to omit the field without a warning.
var ErrNoValue = errors.New("no value")

// MappingWarning reports a legacy code that no taxonomy table could resolve.
type MappingWarning struct {
	Field   string
	Raw     string
	Text    string
	Message string
}

func (w *MappingWarning) Error() string {
	return w.Message
}

// RawValue is a control's state as read from the page.
type RawValue struct {
	Value   string
	Text    string
	Values  []string
	Checked bool
}

// Empty reports whether nothing meaningful was read for a control of kind k.
func (v RawValue) Empty(k ControlKind) bool {
	switch k {
	case KindMultiSelect, KindCheckboxGroup:
		return len(v.Values) == 0
	case KindCheckbox:
		return false
	default:
		return strings.TrimSpace(v.Value) == ""
	}
}

// Record is a canonical record keyed by field name.
type Record map[string]any

// String renders a field the way a form input expects it.
func (r Record) String(field string) string {
	return FormatValue(r[field])
}

// Strings returns a list-valued field.
func (r Record) Strings(field string) []string {
	switch v := r[field].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s := FormatValue(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	}
	return nil
}

// FormatValue renders scalars for form inputs. Nil renders empty.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case *string:
		if t == nil {
			return ""
		}
		return *t
	case bool:
		if t {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	default:
		return fmt.Sprint(t)
	}
}

// ForwardFunc turns a raw control reading into a canonical value.
type ForwardFunc func(raw RawValue, rec Record) (any, error)

// ReverseFunc turns a canonical value into the raw value(s) to write. Select
// controls treat multiple values as ordered candidates.
type ReverseFunc func(value any, rec Record) ([]string, error)

// Descriptor binds one canonical field to one legacy form control.
type Descriptor struct {
	Field   string
	Locator string
	Kind    ControlKind
	Tab     string

	// Values maps raw control codes to canonical values.
	Values map[string]string

	Forward ForwardFunc
	Reverse ReverseFunc

	PullOnly bool
	PushOnly bool
}

// Extract converts a raw reading into the canonical value. ErrNoValue means
// the field should be skipped silently; any other error is a warning.
func (d Descriptor) Extract(raw RawValue, rec Record) (any, error) {
	if d.Forward != nil {
		return d.Forward(raw, rec)
	}

	switch d.Kind {
	case KindMultiSelect, KindCheckboxGroup:
		return raw.Values, nil
	case KindCheckbox:
		return raw.Checked, nil
	}

	if d.Values != nil {
		if mapped, ok := d.Values[raw.Value]; ok {
			return mapped, nil
		}
	}
	return raw.Value, nil
}

// Encode produces the raw values to write for rec. An empty result means the
// control is left untouched.
func (d Descriptor) Encode(rec Record) ([]string, error) {
	value := rec[d.Field]
	if d.Reverse != nil {
		return d.Reverse(value, rec)
	}

	switch d.Kind {
	case KindMultiSelect, KindCheckboxGroup:
		return rec.Strings(d.Field), nil
	}

	s := FormatValue(value)
	if s == "" {
		return nil, nil
	}
	if d.Values != nil {
		for code, canonical := range d.Values {
			if strings.EqualFold(canonical, s) {
				return []string{code}, nil
			}
		}
	}
	return SplitCandidates(s), nil
}

// SplitCandidates splits a CandidateSeparator-joined value.
func SplitCandidates(s string) []string {
	var out []string
	for _, part := range strings.Split(s, CandidateSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Tabs returns the distinct tab locators of a registry in first-use order.
func Tabs(fields []Descriptor) []string {
	var tabs []string
	seen := make(map[string]bool)
	for _, d := range fields {
		if d.Tab == "" || seen[d.Tab] {
			continue
		}
		seen[d.Tab] = true
		tabs = append(tabs, d.Tab)
	}
	return tabs
}
