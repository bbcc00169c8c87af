package mapping

import (
	"fmt"

	"crm_bridge/taxonomy"
)

// Legacy property form tabs.
const (
	TabGeneral  = `a[href="#tab_general"]`
	TabFeatures = `a[href="#tab_features"]`
	TabOwner    = `a[href="#tab_owner"]`
	TabNotes    = `a[href="#tab_notes"]`
	TabPublish  = `a[href="#tab_publish"]`
	TabImages   = `a[href="#tab_images"]`
)

// Identity-bearing controls. A blank create form has all three empty.
const (
	LocatorHiddenID  = `input[type="hidden"][name="id"]`
	LocatorReference = `input[name="reference"]`
	LocatorTitle     = `input[name="en[name]"]`
)

var viewingNotificationValues = map[string]string{
	"0": "No",
	"1": "Yes",
	"2": "Unsubscribed",
}

func text(field, name, tab string) Descriptor {
	return Descriptor{Field: field, Locator: fmt.Sprintf(`input[name="%s"]`, name), Kind: KindText, Tab: tab}
}

func textarea(field, name, tab string) Descriptor {
	return Descriptor{Field: field, Locator: fmt.Sprintf(`textarea[name="%s"]`, name), Kind: KindTextarea, Tab: tab}
}

func numeric(field, name, tab string, fn ForwardFunc) Descriptor {
	d := text(field, name, tab)
	d.Forward = fn
	return d
}

func resolveType(raw RawValue, _ Record) (any, error) {
	m, ok := taxonomy.ResolveType(raw.Value)
	if !ok {
		return nil, &MappingWarning{
			Field:   "type",
			Raw:     raw.Value,
			Text:    raw.Text,
			Message: fmt.Sprintf("Property Type '%s' could not be mapped to a known type", raw.Value),
		}
	}
	return m.Subtype, nil
}

func resolveCategory(raw RawValue, _ Record) (any, error) {
	m, ok := taxonomy.ResolveType(raw.Value)
	if !ok || m.Category == "" {
		return nil, ErrNoValue
	}
	return m.Category, nil
}

func resolveArea(raw RawValue, _ Record) (any, error) {
	m, ok := taxonomy.ResolveLocation(taxonomy.LocationQuery{Code: raw.Value, Text: raw.Text})
	if !ok {
		label := raw.Text
		if label == "" {
			label = "N/A"
		}
		return nil, &MappingWarning{
			Field:   "propertyArea",
			Raw:     raw.Value,
			Text:    raw.Text,
			Message: fmt.Sprintf("Location '%s' (Text: %s) could not be mapped to a known area", raw.Value, label),
		}
	}
	return m.Key, nil
}

func resolveDistrict(raw RawValue, _ Record) (any, error) {
	m, ok := taxonomy.ResolveLocation(taxonomy.LocationQuery{Code: raw.Value, Text: raw.Text})
	if !ok || m.District == "" {
		return nil, ErrNoValue
	}
	return m.District, nil
}

func resolveCondition(raw RawValue, _ Record) (any, error) {
	c, ok := taxonomy.ConditionFromCode(raw.Value)
	if !ok {
		return nil, &MappingWarning{
			Field:   "condition",
			Raw:     raw.Value,
			Message: fmt.Sprintf("Condition '%s' could not be mapped", raw.Value),
		}
	}
	if c == taxonomy.ConditionNone {
		return nil, ErrNoValue
	}
	return c, nil
}

func resolveFeatures(raw RawValue, _ Record) (any, error) {
	keys := make([]string, 0, len(raw.Values))
	for _, label := range raw.Values {
		if key, ok := taxonomy.FeatureKey(label); ok {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return nil, ErrNoValue
	}
	return keys, nil
}

func resolvePublication(raw RawValue, _ Record) (any, error) {
	status := taxonomy.PublicationStatus(raw.Value)
	if status == taxonomy.PublicationDraft && raw.Text != "" {
		status = taxonomy.PublicationStatus(raw.Text)
	}
	return status, nil
}

// PropertyFields is the property edit form, in the order the tabs are visited.
var PropertyFields = []Descriptor{
	{Field: "title", Locator: LocatorTitle, Kind: KindText, Tab: TabGeneral, Forward: trimmed},
	text("reference", "reference", TabGeneral),
	{Field: "description", Locator: `textarea[name="en[description]"]`, Kind: KindRichText, Tab: TabGeneral},
	{
		Field:   "status",
		Locator: `select[name="status"]`,
		Kind:    KindSelect,
		Tab:     TabGeneral,
		Forward: func(raw RawValue, _ Record) (any, error) {
			return taxonomy.ListingStatusFromCode(raw.Value), nil
		},
		Reverse: func(v any, rec Record) ([]string, error) {
			return single(taxonomy.ListingStatusCode(FormatValue(v), rec.String("goal"))), nil
		},
	},
	{
		Field:   "type",
		Locator: `select[name="type_id"]`,
		Kind:    KindSelect,
		Tab:     TabGeneral,
		Forward: resolveType,
		Reverse: func(v any, _ Record) ([]string, error) {
			return single(taxonomy.TypeCode(FormatValue(v))), nil
		},
	},
	{Field: "category", Locator: `select[name="type_id"]`, Kind: KindSelect, Tab: TabGeneral, Forward: resolveCategory, PullOnly: true},
	numeric("price", "price", TabGeneral, amount),
	{
		Field:   "rentalPeriod",
		Locator: `select[name="price_type"]`,
		Kind:    KindSelect,
		Tab:     TabGeneral,
		Forward: func(raw RawValue, _ Record) (any, error) {
			return taxonomy.RentalPeriodFromCode(raw.Value), nil
		},
		Reverse: func(v any, _ Record) ([]string, error) {
			return single(taxonomy.RentalPeriodCode(FormatValue(v))), nil
		},
	},
	numeric("communalFees", "communal_fees", TabGeneral, amount),
	{
		Field:   "propertyArea",
		Locator: `select[name="location_id"]`,
		Kind:    KindSelect,
		Tab:     TabGeneral,
		Forward: resolveArea,
		Reverse: func(v any, rec Record) ([]string, error) {
			return taxonomy.LocationCandidates(FormatValue(v), rec.String("propertyLocation")), nil
		},
	},
	{Field: "propertyLocation", Locator: `select[name="location_id"]`, Kind: KindSelect, Tab: TabGeneral, Forward: resolveDistrict, PullOnly: true},
	text("addressLine1", "address", TabGeneral),
	numeric("latitude", "map_latitude", TabGeneral, amount),
	numeric("longitude", "map_longitude", TabGeneral, amount),
	numeric("bedrooms", "bedrooms", TabGeneral, count),
	numeric("bathrooms", "bathrooms", TabGeneral, count),
	text("floor", "levels", TabGeneral),
	numeric("areaSqm", "area_covered", TabGeneral, amount),
	numeric("plotAreaSqm", "area_plot", TabGeneral, amount),
	numeric("coveredAreaSqm", "area_building_covered", TabGeneral, amount),
	numeric("coveredVerandaSqm", "area_veranda_covered", TabGeneral, amount),
	numeric("uncoveredVerandaSqm", "area_veranda_uncovered", TabGeneral, amount),
	numeric("basementSqm", "area_basement", TabGeneral, amount),
	numeric("buildYear", "build_date", TabGeneral, count),
	{
		Field:   "condition",
		Locator: `select[name="condition"]`,
		Kind:    KindSelect,
		Tab:     TabGeneral,
		Forward: resolveCondition,
		Reverse: func(v any, _ Record) ([]string, error) {
			return single(taxonomy.ConditionCode(FormatValue(v))), nil
		},
	},
	{
		Field:   "featured",
		Locator: `select[name="promote"]`,
		Kind:    KindSelect,
		Tab:     TabGeneral,
		Forward: func(raw RawValue, _ Record) (any, error) {
			return raw.Value == "1", nil
		},
		Reverse: func(v any, _ Record) ([]string, error) {
			if truthy(v) {
				return single("1"), nil
			}
			return single("0"), nil
		},
	},

	{
		Field:   "features",
		Locator: `input[name="features[]"]`,
		Kind:    KindCheckboxGroup,
		Tab:     TabFeatures,
		Forward: resolveFeatures,
		Reverse: func(_ any, rec Record) ([]string, error) {
			keys := rec.Strings("features")
			labels := make([]string, 0, len(keys))
			for _, key := range keys {
				if label, ok := taxonomy.FeatureLabel(key); ok {
					labels = append(labels, label)
				} else {
					labels = append(labels, key)
				}
			}
			return labels, nil
		},
	},

	{
		Field:   "publicationStatus",
		Locator: `select[name="active"]`,
		Kind:    KindSelect,
		Tab:     TabPublish,
		Forward: resolvePublication,
		Reverse: func(any, Record) ([]string, error) {
			return single(taxonomy.PublicationPendingCode), nil
		},
	},
	numeric("sortOrder", "sort", TabPublish, count),
	text("slug", "slug", TabPublish),
	text("metaTitle", "metatags[title]", TabPublish),
	textarea("metaKeywords", "metatags[keywords]", TabPublish),
	textarea("metaDescription", "metatags[description]", TabPublish),

	{
		Field:    "ownerId",
		Locator:  `#owner_id`,
		Kind:     KindSelect,
		Tab:      TabOwner,
		PushOnly: true,
		Reverse: func(_ any, rec Record) ([]string, error) {
			if rec.String("ownerName") == "" {
				return nil, nil
			}
			return single("add"), nil
		},
	},
	text("ownerName", "owner[name]", TabOwner),
	text("ownerPhone", "owner[tel]", TabOwner),
	text("ownerCompany", "owner[company]", TabOwner),
	text("ownerMobile", "owner[mob]", TabOwner),
	text("ownerFax", "owner[fax]", TabOwner),
	text("ownerBirthday", "owner[birthday]", TabOwner),
	text("ownerWebsite", "owner[website]", TabOwner),
	text("ownerAddress", "owner[address]", TabOwner),
	textarea("ownerNotes", "owner[notes]", TabOwner),
	{
		Field:   "ownerViewingNotification",
		Locator: `select[name="owner[notify_on_property_viewings]"]`,
		Kind:    KindSelect,
		Tab:     TabOwner,
		Values:  viewingNotificationValues,
	},
	text("ownerEmail", "owner[email]", TabOwner),

	text("agentRef", "agent_reference", TabNotes),
	text("agentUrl", "agent_url", TabNotes),
	text("projectName", "extra_fields[project_name]", TabNotes),
	text("unitNumber", "extra_fields[flat_no]", TabNotes),
	text("developerName", "extra_fields[developer_name]", TabNotes),
	text("managementCompany", "extra_fields[management_company]", TabNotes),
	text("keyHolder", "extra_fields[key_holder]", TabNotes),
	text("occupancyStatus", "extra_fields[property_occupied]", TabNotes),
	text("viewingContact", "extra_fields[viewings_contact]", TabNotes),
	text("viewingNotes", "extra_fields[viewings_notes]", TabNotes),
	textarea("viewingDirections", "extra_fields[viewings_directions]", TabNotes),
	text("lawyer", "extra_fields[property_lawyer]", TabNotes),
	text("loanDetails", "extra_fields[property_loan]", TabNotes),
	text("purchasePrice", "extra_fields[purchase_price]", TabNotes),
	text("lowestOffer", "extra_fields[lowest_offer]", TabNotes),
	text("landSurveyValue", "extra_fields[land_survey_value]", TabNotes),
	text("estimatedValue", "extra_fields[property_estimated_value]", TabNotes),
	text("agencyAgreement", "extra_fields[agency_agreement]", TabNotes),
	text("commission", "extra_fields[agreed_commission]", TabNotes),
	{
		Field:   "agreementDate",
		Locator: `input[name="extra_fields[agreement_date]"]`,
		Kind:    KindText,
		Tab:     TabNotes,
		Reverse: func(v any, _ Record) ([]string, error) {
			return single(ISODate(v)), nil
		},
	},
	textarea("internalNotes", "owner_notes", TabNotes),
	textarea("agreementNotes", "extra_fields[agreement_notes]", TabNotes),

	{Field: "originalCreatorName", Locator: `input[name="created_by"]`, Kind: KindText, Tab: TabGeneral, Forward: trimmed, PullOnly: true},
	{Field: "originalCreatedAt", Locator: `input[name="created_at"]`, Kind: KindText, Tab: TabGeneral, Forward: legacyTimestamp, PullOnly: true},
	{Field: "originalUpdatedAt", Locator: `input[name="updated_at"]`, Kind: KindText, Tab: TabGeneral, Forward: legacyTimestamp, PullOnly: true},
}
