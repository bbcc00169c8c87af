package identity

import (
	"regexp"
	"strings"
)

var (
	multiSpaceRegex = regexp.MustCompile(`\s+`)
	phoneCharsRegex = regexp.MustCompile(`[^\d+]`)
)

// NormalizePhone keeps digits and a leading plus, rewriting a 00 international
// prefix to +.
func NormalizePhone(phone string) string {
	p := phoneCharsRegex.ReplaceAllString(phone, "")
	if p == "" {
		return ""
	}
	plus := strings.HasPrefix(p, "+")
	p = strings.ReplaceAll(p, "+", "")
	if plus {
		return "+" + p
	}
	if strings.HasPrefix(p, "00") && len(p) > 2 {
		return "+" + p[2:]
	}
	return p
}

// PreferredPhone picks the mobile number over the landline.
func PreferredPhone(mobile, landline string) string {
	if p := NormalizePhone(mobile); p != "" {
		return p
	}
	return NormalizePhone(landline)
}

// PhoneCandidates lists the numbers a contact may be stored under, best first:
// the preferred normalized number, the raw preferred value, then the
// normalized mobile and landline. Empty and repeated values are dropped.
func PhoneCandidates(mobile, landline string) []string {
	raw := strings.TrimSpace(mobile)
	if NormalizePhone(mobile) == "" {
		raw = strings.TrimSpace(landline)
	}
	var out []string
	seen := map[string]bool{}
	for _, p := range []string{PreferredPhone(mobile, landline), raw, NormalizePhone(mobile), NormalizePhone(landline)} {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func NormalizeName(name string) string {
	return multiSpaceRegex.ReplaceAllString(strings.TrimSpace(name), " ")
}
