package taxonomy

import "strings"

const (
	ConditionNone              = ""
	ConditionOffPlan           = "off-plan"
	ConditionUnderConstruction = "under-construction"
	ConditionNew               = "new"
	ConditionResale            = "resale"
)

var conditionCodes = []codeEntry{
	{ConditionNone, "0"},
	{ConditionOffPlan, "1"},
	{ConditionUnderConstruction, "2"},
	{ConditionNew, "3"},
	{ConditionResale, "4"},
}

// ConditionFromCode maps a legacy condition code. Code 0 (n/a) resolves to
// ConditionNone.
func ConditionFromCode(code string) (string, bool) {
	return keyForCode(conditionCodes, strings.TrimSpace(code))
}

// ConditionCode maps a canonical condition to its legacy code, "0" when unknown.
func ConditionCode(condition string) string {
	if code, ok := codeForKey(conditionCodes, strings.ToLower(strings.TrimSpace(condition))); ok {
		return code
	}
	return "0"
}
