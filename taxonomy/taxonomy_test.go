package taxonomy

import "testing"

func TestConditionRoundTrip(t *testing.T) {
	for _, code := range []string{"0", "1", "2", "3", "4"} {
		key, ok := ConditionFromCode(code)
		if !ok {
			t.Fatalf("condition code %s not resolved", code)
		}
		if got := ConditionCode(key); got != code {
			t.Fatalf("condition %s -> %q -> %s, want %s", code, key, got, code)
		}
	}
}

func TestConditionUnknown(t *testing.T) {
	if _, ok := ConditionFromCode("9"); ok {
		t.Fatalf("expected unknown condition code to miss")
	}
	if got := ConditionCode("refurbished"); got != "0" {
		t.Fatalf("expected neutral code 0, got %s", got)
	}
	if got := ConditionCode("Resale"); got != "4" {
		t.Fatalf("expected case-insensitive match to 4, got %s", got)
	}
}

func TestResolveType(t *testing.T) {
	tests := []struct {
		code     string
		subtype  string
		category string
	}{
		{"14", "detached_villa", "house"},
		{"17", "town_house", "house"},
		{"10", "apartment", "apartment"},
		{"6", "residential_land", "land"},
		{"32", "other_commercial", "commercial"},
	}
	for _, tt := range tests {
		m, ok := ResolveType(tt.code)
		if !ok {
			t.Fatalf("type code %s not resolved", tt.code)
		}
		if m.Subtype != tt.subtype || m.Category != tt.category {
			t.Fatalf("type code %s: got %s/%s, want %s/%s", tt.code, m.Subtype, m.Category, tt.subtype, tt.category)
		}
	}
	if _, ok := ResolveType("999"); ok {
		t.Fatalf("expected unknown type code to miss")
	}
}

func TestTypeCode(t *testing.T) {
	tests := map[string]string{
		"detached_villa":      "14",
		"semi-detached-villa": "33",
		"Town House":          "17",
		"villa":               "14",
		"castle":              DefaultTypeCode,
		"":                    DefaultTypeCode,
	}
	for in, want := range tests {
		if got := TypeCode(in); got != want {
			t.Fatalf("TypeCode(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestPublicationStatus(t *testing.T) {
	tests := map[string]string{
		"yes":      PublicationPublished,
		"1":        PublicationPublished,
		"Active":   PublicationPublished,
		"no":       PublicationUnlisted,
		"inactive": PublicationUnlisted,
		"pending":  PublicationPending,
		"2":        PublicationPending,
		"whatever": PublicationDraft,
		"":         PublicationDraft,
	}
	for in, want := range tests {
		if got := PublicationStatus(in); got != want {
			t.Fatalf("PublicationStatus(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestListingStatus(t *testing.T) {
	if got := ListingStatusFromCode("4"); got != StatusSold {
		t.Fatalf("expected SOLD, got %s", got)
	}
	if got := ListingStatusFromCode("2"); got != StatusRented {
		t.Fatalf("expected RENTED, got %s", got)
	}
	if got := ListingStatusFromCode("3"); got != StatusActive {
		t.Fatalf("expected ACTIVE, got %s", got)
	}
	if got := ListingStatusCode("ACTIVE", "RENT"); got != "1" {
		t.Fatalf("expected rent listing code 1, got %s", got)
	}
	if got := ListingStatusCode("ACTIVE", "SALE"); got != "3" {
		t.Fatalf("expected sale listing code 3, got %s", got)
	}
	if got := ListingStatusCode("sold", "RENT"); got != "4" {
		t.Fatalf("expected sold code 4, got %s", got)
	}
}

func TestRentalPeriod(t *testing.T) {
	for _, p := range []string{"/week", "/day", "/month", "/year"} {
		if got := RentalPeriodFromCode(RentalPeriodCode(p)); got != p {
			t.Fatalf("rental period %s round-tripped to %s", p, got)
		}
	}
	if got := RentalPeriodFromCode("7"); got != RentalPeriodNone {
		t.Fatalf("expected n/a for unknown code, got %s", got)
	}
	if got := RentalPeriodCode(""); got != "4" {
		t.Fatalf("expected code 4 for empty period, got %s", got)
	}
}

func TestResolveLocationByCode(t *testing.T) {
	m, ok := ResolveLocation(LocationQuery{Code: "924", Text: "Kato Paphos"})
	if !ok || m.Key != "kato_paphos" || m.District != "paphos" {
		t.Fatalf("unexpected match %+v (ok=%v)", m, ok)
	}

	// 861 is shared by "paphos" and "paphos_town"; only the latter is a known area.
	m, ok = ResolveLocation(LocationQuery{Code: "861"})
	if !ok || m.Key != "paphos_town" {
		t.Fatalf("expected paphos_town, got %+v (ok=%v)", m, ok)
	}
}

func TestResolveLocationExactKeyBeatsLabel(t *testing.T) {
	m, ok := ResolveLocation(LocationQuery{Code: "kato_paphos", Text: "Paphos Town"})
	if !ok {
		t.Fatalf("expected a match")
	}
	if m.Key != "kato_paphos" {
		t.Fatalf("exact key should win over label text, got %s", m.Key)
	}
}

func TestResolveLocationNormalizedKey(t *testing.T) {
	m, ok := ResolveLocation(LocationQuery{Code: "Coral-Bay"})
	if !ok || m.Key != "coral_bay" {
		t.Fatalf("expected coral_bay, got %+v (ok=%v)", m, ok)
	}
}

func TestResolveLocationFuzzyLabel(t *testing.T) {
	m, ok := ResolveLocation(LocationQuery{Code: "99999", Text: "  SEA CAVES "})
	if !ok || m.Key != "sea_caves" {
		t.Fatalf("expected sea_caves, got %+v (ok=%v)", m, ok)
	}

	m, ok = ResolveLocation(LocationQuery{Code: "99999", Text: "Coral Bay Area"})
	if !ok || m.Key != "coral_bay" {
		t.Fatalf("expected containment match on coral_bay, got %+v (ok=%v)", m, ok)
	}
}

func TestResolveLocationMiss(t *testing.T) {
	if m, ok := ResolveLocation(LocationQuery{Code: "99999", Text: ""}); ok {
		t.Fatalf("expected miss, got %+v", m)
	}
}

func TestLocationCandidates(t *testing.T) {
	got := LocationCandidates("kato_paphos", "paphos")
	if len(got) != 2 || got[0] != "924" || got[1] != "861" {
		t.Fatalf("unexpected candidates %v", got)
	}

	got = LocationCandidates("Mouttagiaka", "limassol")
	if len(got) != 2 || got[0] != "Mouttagiaka" || got[1] != "Limassol" {
		t.Fatalf("unexpected candidates %v", got)
	}

	if got := LocationCandidates("", ""); len(got) != 0 {
		t.Fatalf("expected no candidates, got %v", got)
	}
}

func TestFeatureLookup(t *testing.T) {
	key, ok := FeatureKey("swimming pool - PRIVATE")
	if !ok || key != "swimming_pool_private" {
		t.Fatalf("expected swimming_pool_private, got %q (ok=%v)", key, ok)
	}
	label, ok := FeatureLabel("sea_views")
	if !ok || label != "Sea views" {
		t.Fatalf("unexpected label %q", label)
	}
	if _, ok := FeatureKey("Helipad"); ok {
		t.Fatalf("expected unknown feature to miss")
	}
}

func TestLeadTables(t *testing.T) {
	if got := LeadSource("3"); got != "Telephone" {
		t.Fatalf("expected Telephone, got %s", got)
	}
	if got := LeadSource("42"); got != "42" {
		t.Fatalf("expected raw passthrough, got %s", got)
	}
	if got := LeadSource(""); got != "Unknown" {
		t.Fatalf("expected Unknown, got %s", got)
	}
	if got := LeadRequirementStatus("rent"); got != "For Rent" {
		t.Fatalf("expected For Rent, got %s", got)
	}
	if got := LeadCondition(""); got != "Any Condition" {
		t.Fatalf("expected Any Condition, got %s", got)
	}
}

func TestFold(t *testing.T) {
	if got := Fold("  Kato   Páphos "); got != "kato paphos" {
		t.Fatalf("unexpected fold %q", got)
	}
}
