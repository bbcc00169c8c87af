package mapping

import (
	"strings"

	"crm_bridge/taxonomy"
)

func selectField(field, name string) Descriptor {
	return Descriptor{Field: field, Locator: `select[name="` + name + `"]`, Kind: KindSelect}
}

func multiSelect(field, name string) Descriptor {
	return Descriptor{Field: field, Locator: `select[name="` + name + `"]`, Kind: KindMultiSelect}
}

func withForward(d Descriptor, fn ForwardFunc) Descriptor {
	d.Forward = fn
	return d
}

// LeadFields is the legacy requirement (lead) form. Leads are pull-only.
var LeadFields = []Descriptor{
	text("name", "contact_name", ""),
	text("email", "contact_email", ""),
	text("phone", "contact_tel", ""),
	text("preferredLang", "preferred_lang", ""),
	textarea("notes", "contact_other", ""),

	selectField("leadGoal", "goal_id"),
	selectField("leadPriority", "priority_id"),
	selectField("leadStage", "stage_id"),
	withForward(selectField("leadSource", "source_id"), func(raw RawValue, _ Record) (any, error) {
		return taxonomy.LeadSource(raw.Value), nil
	}),
	text("leadNextAction", "next_action", ""),
	withForward(text("leadFollowUpDate", "follow_up", ""), dashedDate),
	selectField("leadAssignedToAgent", "assigned_to_user_id"),

	withForward(selectField("requirementStatus", "requirements_status"), func(raw RawValue, _ Record) (any, error) {
		return taxonomy.LeadRequirementStatus(raw.Value), nil
	}),
	selectField("requirementDistrict", "requirements_district"),
	selectField("requirementBedrooms", "requirements_bedrooms"),
	selectField("requirementMinPrice", "requirements_price_min"),
	selectField("requirementMaxPrice", "requirements_price_max"),
	withForward(selectField("requirementCondition", "requirements_condition"), func(raw RawValue, _ Record) (any, error) {
		return taxonomy.LeadCondition(raw.Value), nil
	}),
	multiSelect("requirementPropertyTypes", "requirements_types[]"),
	multiSelect("requirementPropertyLocations", "requirements_locations[]"),
	textarea("requirementOtherDetails", "requirements_other_details", ""),

	selectField("matchingPropertiesToMatch", "match_existing_properties"),
	withForward(selectField("matchingEmailMatchedProperties", "match_notifications_auto"), func(raw RawValue, _ Record) (any, error) {
		if raw.Value == "1" {
			return "Yes - Automatic", nil
		}
		return "No", nil
	}),
	withForward(selectField("matchingNotificationFrequency", "match_notifications_freq"), func(raw RawValue, _ Record) (any, error) {
		if v := strings.TrimSpace(raw.Value); v != "" {
			return Capitalize(v), nil
		}
		return "Weekly", nil
	}),
	withForward(text("matchingLastMatchDate", "match_last_date", ""), dashedDate),

	multiSelect("propertiesInterested", "properties[interested][]"),
	multiSelect("propertiesInspected", "properties[inspected][]"),
	multiSelect("propertiesEmailed", "properties[emailed][]"),
	multiSelect("propertiesMatched", "properties[matched][]"),

	withForward(text("propertyWonValue", "won_value", ""), amount),
	withForward(text("wonCommission", "won_commission", ""), amount),
	text("propertyWonReference", "won_reference", ""),
	withForward(text("propertyWonDate", "won_date", ""), dashedDate),
}

// LeadContactFields are read after the main pass and folded into the contact's
// name and payload.
var LeadContactFields = []Descriptor{
	text("firstName", "first_name", ""),
	text("lastName", "last_name", ""),
	text("address", "address", ""),
	text("postcode", "postcode", ""),
	withForward(selectField("nationality", "nationality"), func(raw RawValue, _ Record) (any, error) {
		if raw.Text != "" {
			return raw.Text, nil
		}
		return raw.Value, nil
	}),
	text("idPassport", "id_passport", ""),
}
