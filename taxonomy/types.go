package taxonomy

// DefaultTypeCode is the legacy "Other" property type.
const DefaultTypeCode = "32"

type Subtype struct {
	Key   string
	Label string
}

type Category struct {
	Key      string
	Label    string
	Subtypes []Subtype
}

var Categories = []Category{
	{
		Key:   "house",
		Label: "House",
		Subtypes: []Subtype{
			{Key: "detached_villa", Label: "Detached Villa"},
			{Key: "semi_detached_villa", Label: "Semi Detached Villa"},
			{Key: "town_house", Label: "Town House"},
			{Key: "traditional_house", Label: "Traditional House"},
			{Key: "bungalow", Label: "Bungalow"},
		},
	},
	{
		Key:   "apartment",
		Label: "Apartment",
		Subtypes: []Subtype{
			{Key: "studio", Label: "Studio"},
			{Key: "apartment", Label: "Apartment"},
			{Key: "penthouse", Label: "Penthouse"},
			{Key: "ground_floor_apartment", Label: "Ground Floor Apartment"},
		},
	},
	{
		Key:   "commercial",
		Label: "Commercial",
		Subtypes: []Subtype{
			{Key: "shop", Label: "Shop"},
			{Key: "office", Label: "Office"},
			{Key: "business", Label: "Business"},
			{Key: "building", Label: "Building"},
			{Key: "project", Label: "Project"},
			{Key: "showroom", Label: "Showroom"},
			{Key: "hotel", Label: "Hotel"},
			{Key: "warehouse", Label: "Warehouse"},
			{Key: "other_commercial", Label: "Other"},
		},
	},
	{
		Key:   "land",
		Label: "Land",
		Subtypes: []Subtype{
			{Key: "residential_land", Label: "Residential Land"},
			{Key: "agricultural_land", Label: "Agricultural Land"},
			{Key: "industrial_land", Label: "Industrial Land"},
			{Key: "touristic_land", Label: "Touristic Land"},
			{Key: "commercial_land", Label: "Commercial Land"},
			{Key: "land_with_permits", Label: "Land with permits"},
		},
	},
}

// legacyTypeCodes ends with loose aliases (villa, house, land) that share a
// code with a real subtype but have no category of their own.
var legacyTypeCodes = []codeEntry{
	{"detached_villa", "14"},
	{"semi_detached_villa", "33"},
	{"town_house", "17"},
	{"traditional_house", "27"},
	{"bungalow", "18"},
	{"studio", "9"},
	{"apartment", "10"},
	{"penthouse", "12"},
	{"ground_floor_apartment", "11"},
	{"shop", "20"},
	{"office", "19"},
	{"business", "21"},
	{"building", "28"},
	{"project", "22"},
	{"showroom", "24"},
	{"hotel", "25"},
	{"warehouse", "29"},
	{"residential_land", "6"},
	{"agricultural_land", "7"},
	{"industrial_land", "8"},
	{"touristic_land", "30"},
	{"commercial_land", "31"},
	{"land_with_permits", "34"},
	{"other_commercial", DefaultTypeCode},
	{"villa", "14"},
	{"house", "14"},
	{"land", "6"},
}

// CategoryFor returns the category key owning subtype.
func CategoryFor(subtype string) (string, bool) {
	for _, c := range Categories {
		for _, s := range c.Subtypes {
			if s.Key == subtype {
				return c.Key, true
			}
		}
	}
	return "", false
}

type TypeMatch struct {
	Subtype  string
	Category string
}

// ResolveType maps a legacy type code to a subtype and its category. When the
// code is shared, the first candidate that belongs to a category wins.
func ResolveType(code string) (TypeMatch, bool) {
	candidates := keysForCode(legacyTypeCodes, code)
	if len(candidates) == 0 {
		return TypeMatch{}, false
	}
	for _, key := range candidates {
		if cat, ok := CategoryFor(key); ok {
			return TypeMatch{Subtype: key, Category: cat}, true
		}
	}
	return TypeMatch{Subtype: candidates[0]}, true
}

// TypeCode maps a subtype key, slug or label to its legacy code.
func TypeCode(subtype string) string {
	if subtype == "" {
		return DefaultTypeCode
	}
	if code, ok := codeForKey(legacyTypeCodes, NormalizeKey(subtype)); ok {
		return code
	}
	return DefaultTypeCode
}

// SubtypeLabel returns the display label for a subtype key.
func SubtypeLabel(key string) (string, bool) {
	for _, c := range Categories {
		for _, s := range c.Subtypes {
			if s.Key == key {
				return s.Label, true
			}
		}
	}
	return "", false
}
