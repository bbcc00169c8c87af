package mapping

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseAmount reads numbers that may carry thousands separators or a currency
// sign, e.g. "€ 1,250,000".
func ParseAmount(s string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			return r
		}
		return -1
	}, s)
	if cleaned == "" {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return f, nil
}

// ParseCount reads whole numbers such as bedrooms.
func ParseCount(s string) (int, error) {
	f, err := ParseAmount(s)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// ParseLegacyTimestamp converts "dd/mm/yyyy HH:MM" to RFC3339.
func ParseLegacyTimestamp(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrNoValue
	}
	datePart, timePart, _ := strings.Cut(s, " ")
	if timePart == "" {
		timePart = "00:00"
	}
	t, err := time.Parse("02/01/2006 15:04", datePart+" "+strings.TrimSpace(timePart))
	if err != nil {
		return "", fmt.Errorf("invalid timestamp %q", s)
	}
	return t.UTC().Format(time.RFC3339), nil
}

// ParseDashedDate converts "dd-mm-yyyy" to an ISO date.
func ParseDashedDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrNoValue
	}
	t, err := time.Parse("02-01-2006", s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q", s)
	}
	return t.Format("2006-01-02"), nil
}

// ISODate renders dates for the legacy date inputs.
func ISODate(v any) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	case string:
		t = strings.TrimSpace(t)
		if len(t) >= 10 {
			if parsed, err := time.Parse("2006-01-02", t[:10]); err == nil {
				return parsed.Format("2006-01-02")
			}
		}
		return t
	}
	return FormatValue(v)
}

// Capitalize upper-cases the first letter.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "1", "true", "yes", "on":
			return true
		}
	case int:
		return t != 0
	case float64:
		return t != 0
	}
	return false
}

func single(v string) []string {
	if v == "" {
		return nil
	}
	return []string{v}
}

func trimmed(raw RawValue, _ Record) (any, error) {
	v := strings.TrimSpace(raw.Value)
	if v == "" {
		return nil, ErrNoValue
	}
	return v, nil
}

func amount(raw RawValue, _ Record) (any, error) {
	return ParseAmount(raw.Value)
}

func count(raw RawValue, _ Record) (any, error) {
	return ParseCount(raw.Value)
}

func legacyTimestamp(raw RawValue, _ Record) (any, error) {
	return ParseLegacyTimestamp(raw.Value)
}

func dashedDate(raw RawValue, _ Record) (any, error) {
	return ParseDashedDate(raw.Value)
}
