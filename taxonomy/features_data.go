package taxonomy

// FeatureCategories is the canonical feature vocabulary grouped for display.
var FeatureCategories = []FeatureCategory{
	{
		Label: "Land Characteristics",
		Items: []Feature{
			{Key: "agricultural_road_access", Label: "Agricultural road access"},
			{Key: "attached_on_main_road", Label: "Attached on main road"},
			{Key: "electricity_available", Label: "Electricity available"},
			{Key: "road_access", Label: "Road access"},
			{Key: "telephone_line_available", Label: "Telephone line available"},
			{Key: "water_available", Label: "Water available"},
		},
	},
	{
		Label: "Energy Efficiency",
		Items: []Feature{
			{Key: "energy_efficiency_class_a", Label: "Energy Efficiency - Class A"},
			{Key: "energy_efficiency_class_b", Label: "Energy Efficiency - Class B"},
			{Key: "energy_efficiency_class_c", Label: "Energy Efficiency - Class C"},
			{Key: "energy_efficiency_class_d", Label: "Energy Efficiency - Class D"},
			{Key: "energy_efficiency_class_e", Label: "Energy Efficiency - Class E"},
			{Key: "energy_efficiency_class_f", Label: "Energy Efficiency - Class F"},
			{Key: "energy_efficiency_class_g", Label: "Energy Efficiency - Class G"},
		},
	},
	{
		Label: "Legal & Financial",
		Items: []Feature{
			{Key: "no_vat", Label: "No VAT"},
			{Key: "plus_vat", Label: "Plus VAT"},
			{Key: "reduced", Label: "Reduced"},
			{Key: "reserved", Label: "Reserved"},
			{Key: "title_deeds_available", Label: "Title Deeds - Available"},
			{Key: "title_deeds_fully_issued", Label: "Title Deeds - Fully Issued"},
		},
	},
	{
		Label: "Marketing",
		Items: []Feature{
			{Key: "aplaceinthesun_com", Label: "aplaceinthesun.com"},
			{Key: "bazaraki_com", Label: "bazaraki.com"},
		},
	},
	{
		Label: "Outdoor",
		Items: []Feature{
			{Key: "barbeque_area", Label: "Barbeque Area"},
			{Key: "car_port", Label: "Car Port"},
			{Key: "designated_parking", Label: "Designated Parking"},
			{Key: "first_floor", Label: "First Floor"},
			{Key: "garage", Label: "Garage"},
			{Key: "garden", Label: "Garden"},
			{Key: "gated_community", Label: "Gated Community"},
			{Key: "gym", Label: "Gym"},
			{Key: "irrigation_system", Label: "Irrigation System"},
			{Key: "jacuzzi", Label: "Jacuzzi"},
			{Key: "parking_covered", Label: "Parking - Covered"},
			{Key: "parking_uncovered", Label: "Parking - Uncovered"},
			{Key: "photovoltaic_system", Label: "Photovoltaic System"},
			{Key: "roof_garden", Label: "Roof garden"},
			{Key: "second_floor", Label: "Second Floor"},
			{Key: "security_alarm", Label: "Security Alarm"},
			{Key: "solar_heated_water_system", Label: "Solar Heated Water System"},
			{Key: "storage_room", Label: "Storage room"},
			{Key: "swimming_pool_communal", Label: "Swimming Pool - Communal"},
			{Key: "swimming_pool_heated", Label: "Swimming Pool - Heated"},
			{Key: "swimming_pool_private", Label: "Swimming Pool - Private"},
			{Key: "tennis_court", Label: "Tennis Court"},
			{Key: "top_floor", Label: "Top Floor"},
		},
	},
	{
		Label: "Views / Distances",
		Items: []Feature{
			{Key: "airport_10_min_drive", Label: "Airport: 10 min Drive"},
			{Key: "airport_15_min_drive", Label: "Airport: 15 min drive"},
			{Key: "airport_30_min_drive", Label: "Airport: 30 min drive"},
			{Key: "airport_5_min_drive", Label: "Airport: 5 min drive"},
			{Key: "airport_60_min_drive", Label: "Airport: 60 min drive"},
			{Key: "airport_walking_distance", Label: "Airport: Walking distance"},
			{Key: "beach_10_min_drive", Label: "Beach: 10 min Drive"},
			{Key: "beach_15_min_drive", Label: "Beach: 15 min Drive"},
			{Key: "beach_30_min_drive", Label: "Beach: 30 min Drive"},
			{Key: "beach_5_min_drive", Label: "Beach: 5 min Drive"},
			{Key: "beach_front_line", Label: "Beach: Front Line"},
			{Key: "beach_walking_distance", Label: "Beach: Walking distance"},
			{Key: "close_to_the_marina", Label: "Close to the marina"},
			{Key: "close_to_the_port", Label: "Close to the port"},
			{Key: "golf_10_min_drive", Label: "Golf: 10 min Drive"},
			{Key: "golf_15_min_drive", Label: "Golf: 15 min Drive"},
			{Key: "golf_30_min_drive", Label: "Golf: 30 min Drive"},
			{Key: "golf_5_min_drive", Label: "Golf: 5 min Drive"},
			{Key: "golf_walking_distance", Label: "Golf: Walking Distance"},
			{Key: "mountain_views", Label: "Mountain views"},
			{Key: "part_sea_views", Label: "Part Sea views"},
			{Key: "sea_views", Label: "Sea views"},
			{Key: "town_10_min_drive", Label: "Town: 10 min Drive"},
			{Key: "town_15_min_drive", Label: "Town: 15 min drive"},
			{Key: "town_30_min_drive", Label: "Town: 30 min drive"},
			{Key: "town_5_min_drive", Label: "Town: 5 min drive"},
			{Key: "town_walking_distance", Label: "Town: Walking distance"},
		},
	},
	{
		Label: "Indoor",
		Items: []Feature{
			{Key: "air_conditioning", Label: "Air Conditioning"},
			{Key: "basement", Label: "Basement"},
			{Key: "ceiling_fans", Label: "Ceiling fans"},
			{Key: "central_heating_diesel", Label: "Central Heating - Diesel"},
			{Key: "central_heating_gas", Label: "Central Heating - Gas"},
			{Key: "central_heating_provision", Label: "Central Heating - Provision"},
			{Key: "central_heating_underfloor", Label: "Central Heating - Underfloor"},
			{Key: "double_glazing", Label: "Double Glazing"},
			{Key: "elevator_lift", Label: "Elevator / Lift"},
			{Key: "en_suite_bathrooms", Label: "En suite bathrooms"},
			{Key: "en_suite_showers", Label: "En Suite Showers"},
			{Key: "family_bathroom", Label: "Family Bathroom"},
			{Key: "fire_place", Label: "Fire place"},
			{Key: "fly_screens", Label: "Fly Screens"},
			{Key: "furnished_fully", Label: "Furnished - Fully"},
			{Key: "furnished_none", Label: "Furnished - None"},
			{Key: "furnished_partly", Label: "Furnished - Partly"},
			{Key: "furnishing_negotiable", Label: "Furnishing - Negotiable"},
			{Key: "granite_kitchen_worktop", Label: "Granite Kitchen Worktop"},
			{Key: "guest_toilet", Label: "Guest Toilet"},
			{Key: "log_burner", Label: "Log Burner"},
			{Key: "open_kitchen", Label: "Open Kitchen"},
			{Key: "pets_allowed", Label: "Pets - Allowed"},
			{Key: "pets_not_allowed", Label: "Pets - Not Allowed"},
			{Key: "provision_for_air_condition", Label: "Provision for Air-Condition"},
			{Key: "separate_kitchen", Label: "Separate Kitchen"},
			{Key: "shutters", Label: "Shutters"},
			{Key: "utility_room", Label: "Utility Room"},
			{Key: "wheelchair_facilities", Label: "Wheelchair facilities"},
			{Key: "white_goods", Label: "White Goods"},
			{Key: "wi_fi", Label: "Wi-Fi"},
		},
	},
}
