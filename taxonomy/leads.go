package taxonomy

import "strings"

var leadSources = []codeEntry{
	{"Website", "1"},
	{"Walk-in", "2"},
	{"Telephone", "3"},
	{"Email", "4"},
	{"Referral", "5"},
	{"Facebook", "6"},
	{"Instagram", "7"},
	{"Other", "8"},
}

var leadRequirementStatuses = []codeEntry{
	{"For Sale", "sale"},
	{"For Rent", "rent"},
	{"To Let", "let"},
	{"To Buy", "buy"},
	{"To List", "list"},
}

var leadConditions = []codeEntry{
	{"Any Condition", "0"},
	{"Off-Plan", "1"},
	{"Under Construction", "2"},
	{"New / Resale (Ready)", "3"},
	{"Resale", "4"},
}

func lookupOr(table []codeEntry, code, fallback string) string {
	code = strings.TrimSpace(code)
	if key, ok := keyForCode(table, code); ok {
		return key
	}
	if code != "" {
		return code
	}
	return fallback
}

// LeadSource maps the legacy source_id; unknown ids pass through unchanged.
func LeadSource(code string) string {
	return lookupOr(leadSources, code, "Unknown")
}

func LeadRequirementStatus(code string) string {
	return lookupOr(leadRequirementStatuses, code, "Any")
}

func LeadCondition(code string) string {
	return lookupOr(leadConditions, code, "Any Condition")
}
