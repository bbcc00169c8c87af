package taxonomy

import "strings"

const RentalPeriodNone = "n/a"

var rentalPeriodCodes = []codeEntry{
	{"/week", "0"},
	{"/day", "1"},
	{"/month", "2"},
	{"/year", "3"},
	{RentalPeriodNone, "4"},
}

// RentalPeriodFromCode maps the legacy price_type select.
func RentalPeriodFromCode(code string) string {
	if key, ok := keyForCode(rentalPeriodCodes, strings.TrimSpace(code)); ok {
		return key
	}
	return RentalPeriodNone
}

// RentalPeriodCode maps a canonical period such as "/month" to the legacy code.
func RentalPeriodCode(period string) string {
	p := strings.ToLower(period)
	switch {
	case strings.Contains(p, "month"):
		return "2"
	case strings.Contains(p, "week"):
		return "0"
	case strings.Contains(p, "day"):
		return "1"
	case strings.Contains(p, "year"):
		return "3"
	default:
		return "4"
	}
}
