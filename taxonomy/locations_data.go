package taxonomy

// Districts lists canonical locations grouped by district, in display order.
var Districts = []District{
	{
		Key:   "paphos",
		Label: "Paphos",
		Locations: []Location{
			{Key: "paphos_town", Label: "Paphos Town"},
			{Key: "kato_paphos", Label: "Kato Paphos"},
			{Key: "tombs_of_the_kings", Label: "Tombs of The Kings"},
			{Key: "universal", Label: "Universal"},
			{Key: "moutallos", Label: "Moutallos"},
			{Key: "anavargos", Label: "Anavargos"},
			{Key: "geroskipou", Label: "Geroskipou"},
			{Key: "konia", Label: "Konia"},
			{Key: "mesogi", Label: "Mesogi"},
			{Key: "mesa_chorio", Label: "Mesa Chorio"},
			{Key: "tremithousa", Label: "Tremithousa"},
			{Key: "tsada", Label: "Tsada"},
			{Key: "chlorakas", Label: "Chlorakas"},
			{Key: "emba", Label: "Emba"},
			{Key: "kissonerga", Label: "Kissonerga"},
			{Key: "lemba", Label: "Lemba"},
			{Key: "tala", Label: "Tala"},
			{Key: "kamares", Label: "Kamares (Tala)"},
			{Key: "episkopi_paphos", Label: "Episkopi (Paphos)"},
			{Key: "armou", Label: "Armou"},
			{Key: "marathounta", Label: "Marathounta"},
			{Key: "koili", Label: "Koili"},
			{Key: "acheleia", Label: "Acheleia"},
			{Key: "agia_varvara", Label: "Agia Varvara"},
			{Key: "timi", Label: "Timi"},
			{Key: "anarita", Label: "Anarita"},
			{Key: "mandria_paphos", Label: "Mandria (Paphos)"},
			{Key: "nikokleia", Label: "Nikokleia"},
			{Key: "kouklia", Label: "Kouklia"},
			{Key: "secret_valley", Label: "Secret Valley"},
			{Key: "aphrodite_hills", Label: "Aphrodite Hills"},
			{Key: "choletria", Label: "Choletria"},
			{Key: "nata", Label: "Nata"},
			{Key: "peyia", Label: "Peyia"},
			{Key: "coral_bay", Label: "Coral Bay"},
			{Key: "sea_caves", Label: "Sea Caves"},
			{Key: "st_george_peyia", Label: "St George (Peyia)"},
			{Key: "akoursos", Label: "Akoursos"},
			{Key: "kathikas", Label: "Kathikas"},
			{Key: "arodes_kato", Label: "Kato Arodes"},
			{Key: "arodes_pano", Label: "Pano Arodes"},
			{Key: "ineia", Label: "Ineia"},
			{Key: "drouseia", Label: "Drouseia"},
			{Key: "polis", Label: "Polis Chrysochous"},
			{Key: "prodromi", Label: "Prodromi"},
			{Key: "latchi", Label: "Latchi"},
			{Key: "neo_chorio", Label: "Neo Chorio"},
			{Key: "argaka", Label: "Argaka"},
			{Key: "gialia", Label: "Gialia"},
			{Key: "agia_marina_chrysochous", Label: "Agia Marina Chrysochous"},
			{Key: "nea_dimmata", Label: "Nea Dimmata"},
			{Key: "pomos", Label: "Pomos"},
			{Key: "androlikou", Label: "Androlikou"},
			{Key: "steni", Label: "Steni"},
			{Key: "peristerona", Label: "Peristerona"},
			{Key: "lysos", Label: "Lysos"},
			{Key: "skoulli", Label: "Skoulli"},
			{Key: "polemi", Label: "Polemi"},
			{Key: "stroumbi", Label: "Stroumbi"},
			{Key: "yiolou", Label: "Giolou"},
			{Key: "goudi", Label: "Goudi"},
			{Key: "kallepia", Label: "Kallepia"},
			{Key: "letymvou", Label: "Letymvou"},
			{Key: "simou", Label: "Simou"},
			{Key: "fyti", Label: "Fyti"},
			{Key: "amargeti", Label: "Amargeti"},
			{Key: "panagia", Label: "Panagia"},
			{Key: "statos_agios_fotios", Label: "Statos-Agios Fotios"},
			{Key: "agia_marina_kelokedaron", Label: "Agia Marina Kelokedaron"},
			{Key: "agia_marinouda", Label: "Agia Marinouda"},
			{Key: "agios_dimitrianos", Label: "Agios Dimitrianos"},
			{Key: "agios_ioannis", Label: "Agios Ioannis"},
			{Key: "agios_isidoros", Label: "Agios Isidoros"},
			{Key: "agios_nikolaos", Label: "Agios Nikolaos"},
			{Key: "akourdaleia_kato", Label: "Kato Akourdaleia"},
			{Key: "akourdaleia_pano", Label: "Pano Akourdaleia"},
			{Key: "anadiou", Label: "Anadiou"},
			{Key: "archimandrita", Label: "Archimandrita"},
			{Key: "arminou", Label: "Arminou"},
			{Key: "asprogia", Label: "Asprogia"},
			{Key: "axylou", Label: "Axylou"},
			{Key: "choli", Label: "Choli"},
			{Key: "choulou", Label: "Choulou"},
			{Key: "chrysochou_village", Label: "Chrysochou (village)"},
			{Key: "drymou", Label: "Drymou"},
			{Key: "eledio", Label: "Eledio"},
			{Key: "evretou", Label: "Evretou"},
			{Key: "falia", Label: "Falia"},
			{Key: "fasli", Label: "Fasli"},
			{Key: "fasoula", Label: "Fasoula"},
			{Key: "filousa_chrysochou", Label: "Filousa Chrysochou"},
			{Key: "filousa_kelokedaron", Label: "Filousa Kelokedaron"},
			{Key: "foinikas", Label: "Foinikas"},
			{Key: "galataria", Label: "Galataria"},
			{Key: "galia", Label: "Galia"},
			{Key: "kannaviou", Label: "Kannaviou"},
			{Key: "karamoullides", Label: "Karamoullides"},
			{Key: "kedares", Label: "Kedares"},
			{Key: "kelokedara", Label: "Kelokedara"},
			{Key: "kidasi", Label: "Kidasi"},
			{Key: "kios", Label: "Kios"},
			{Key: "koilineia", Label: "Koilineia"},
			{Key: "koloni", Label: "Koloni"},
			{Key: "kourdaka", Label: "Kourdaka"},
			{Key: "kritou_marottou", Label: "Kritou Marottou"},
			{Key: "kritou_tera", Label: "Kritou Tera"},
			{Key: "kynousa", Label: "Kynousa"},
			{Key: "lapithiou", Label: "Lapithiou"},
			{Key: "lasa", Label: "Lasa"},
			{Key: "lemona", Label: "Lemona"},
			{Key: "loukrounou", Label: "Loukrounou"},
			{Key: "makounta", Label: "Makounta"},
			{Key: "mamonia", Label: "Mamonia"},
			{Key: "mamountali", Label: "Mamountali"},
			{Key: "maronas", Label: "Maronas"},
			{Key: "meladeia", Label: "Meladeia"},
			{Key: "melandra", Label: "Melandra"},
			{Key: "mesaana", Label: "Mesaana"},
			{Key: "mesana", Label: "Mesana"},
			{Key: "milia", Label: "Milia"},
			{Key: "milikouri", Label: "Milikouri"},
			{Key: "miliou", Label: "Miliou"},
			{Key: "mousere", Label: "Mousere"},
			{Key: "pelathousa", Label: "Pelathousa"},
			{Key: "pentalia", Label: "Pentalia"},
			{Key: "pitargou", Label: "Pitargou"},
			{Key: "praitori", Label: "Praitori"},
			{Key: "prastio", Label: "Prastio"},
			{Key: "psathi", Label: "Psathi"},
			{Key: "salamiou", Label: "Salamiou"},
			{Key: "sarama", Label: "Sarama"},
			{Key: "souskiou", Label: "Souskiou"},
			{Key: "stavrokonnou", Label: "Stavrokonnou"},
			{Key: "tera", Label: "Tera"},
			{Key: "theletra", Label: "Theletra"},
			{Key: "thrinia", Label: "Thrinia"},
			{Key: "trachypedoula", Label: "Trachypedoula"},
			{Key: "trimithousa", Label: "Trimithousa"},
			{Key: "vrestia", Label: "Vrestia"},
			{Key: "zacharia", Label: "Zacharia"},
		},
	},
	{
		Key:   "limassol",
		Label: "Limassol",
		Locations: []Location{
			{Key: "limassol_city", Label: "Limassol City"},
			{Key: "germasogeia", Label: "Germasogeia"},
			{Key: "agios_athanasios", Label: "Agios Athanasios"},
			{Key: "mesa_geitonia", Label: "Mesa Geitonia"},
			{Key: "kato_polemidia", Label: "Kato Polemidia"},
			{Key: "ypsonas", Label: "Ypsonas"},
			{Key: "kolossi", Label: "Kolossi"},
			{Key: "erimi", Label: "Erimi"},
			{Key: "episkopi_limassol", Label: "Episkopi (Limassol)"},
			{Key: "akrotiri", Label: "Akrotiri"},
			{Key: "parekklisia", Label: "Parekklisia"},
			{Key: "pyrgos_limassol", Label: "Pyrgos (Limassol)"},
			{Key: "monagroulli", Label: "Monagroulli"},
			{Key: "moni", Label: "Moni"},
			{Key: "pissouri", Label: "Pissouri"},
			{Key: "agros", Label: "Agros"},
			{Key: "platres_kato", Label: "Kato Platres"},
			{Key: "platres_pano", Label: "Pano Platres"},
			{Key: "troodos_resort", Label: "Troodos Resort Area"},
		},
	},
	{
		Key:   "larnaca",
		Label: "Larnaca",
		Locations: []Location{
			{Key: "larnaca_city", Label: "Larnaca City"},
			{Key: "aradippou", Label: "Aradippou"},
			{Key: "athienou", Label: "Athienou"},
			{Key: "dromolaxia_meneou", Label: "Dromolaxia–Meneou"},
			{Key: "livadia", Label: "Livadia"},
			{Key: "lefkara_pano", Label: "Pano Lefkara"},
			{Key: "lefkara_kato", Label: "Kato Lefkara"},
			{Key: "voroklini_oroklini", Label: "Oroklini (Voroklini)"},
			{Key: "pyla", Label: "Pyla"},
			{Key: "xylotymbou", Label: "Xylotymbou"},
			{Key: "kiti", Label: "Kiti"},
			{Key: "pervolia", Label: "Pervolia"},
			{Key: "mazotos", Label: "Mazotos"},
			{Key: "kofinou", Label: "Kofinou"},
			{Key: "kornokipos", Label: "Kornos"},
		},
	},
	{
		Key:   "nicosia",
		Label: "Nicosia",
		Locations: []Location{
			{Key: "nicosia_city", Label: "Nicosia City"},
			{Key: "strovolos", Label: "Strovolos"},
			{Key: "lakatamia", Label: "Lakatamia"},
			{Key: "latsia", Label: "Latsia"},
			{Key: "aglandjia", Label: "Aglantzia"},
			{Key: "agios_dometios", Label: "Agios Dometios"},
			{Key: "engomi", Label: "Engomi"},
			{Key: "tseri", Label: "Tseri"},
			{Key: "geri", Label: "Geri"},
			{Key: "dali", Label: "Dali"},
			{Key: "kokkinotrimithia", Label: "Kokkinotrimithia"},
			{Key: "lathrodontas", Label: "Lythrodontas"},
			{Key: "peristerona_nicosia", Label: "Peristerona (Nicosia)"},
		},
	},
	{
		Key:   "famagusta",
		Label: "Famagusta (Ammochostos)",
		Locations: []Location{
			{Key: "paralimni", Label: "Paralimni"},
			{Key: "protaras", Label: "Protaras"},
			{Key: "kapparis", Label: "Kapparis"},
			{Key: "ayia_napa", Label: "Ayia Napa"},
			{Key: "deryneia", Label: "Deryneia"},
			{Key: "sotira_famagusta", Label: "Sotira"},
			{Key: "liopetri", Label: "Liopetri"},
			{Key: "avgorou", Label: "Avgorou"},
			{Key: "frenaros", Label: "Frenaros"},
		},
	},
}

// legacyLocationCodes maps canonical location keys to legacy location ids.
// Several keys may share one id; table order is the forward tie-break.
var legacyLocationCodes = []codeEntry{
	{"paphos", "861"},
	{"paphos_town", "861"},
	{"kato_paphos", "924"},
	{"tombs_of_the_kings", "926"},
	{"universal", "925"},
	{"moutallos", "933"},
	{"anavargos", "932"},
	{"geroskipou", "892"},
	{"konia", "827"},
	{"mesogi", "851"},
	{"mesa_chorio", "849"},
	{"tremithousa", "888"},
	{"tsada", "890"},
	{"chlorakas", "791"},
	{"emba", "799"},
	{"kissonerga", "823"},
	{"lemba", "837"},
	{"tala", "882"},
	{"kamares", "1426"},
	{"episkopi_paphos", "800"},
	{"armou", "787"},
	{"marathounta", "845"},
	{"koili", "824"},
	{"acheleia", "769"},
	{"agia_varvara", "773"},
	{"timi", "886"},
	{"anarita", "782"},
	{"mandria_paphos", "844"},
	{"nikokleia", "858"},
	{"kouklia", "828"},
	{"secret_valley", "930"},
	{"aphrodite_hills", "929"},
	{"choletria", "792"},
	{"nata", "855"},
	{"peyia", "865"},
	{"coral_bay", "907"},
	{"sea_caves", "927"},
	{"st_george_peyia", "775"},
	{"akoursos", "779"},
	{"kathikas", "817"},
	{"arodes_pano", "788"},
	{"ineia", "813"},
	{"drouseia", "796"},
	{"polis", "868"},
	{"prodromi", "931"},
	{"latchi", "835"},
	{"neo_chorio", "857"},
	{"argaka", "785"},
	{"gialia", "810"},
	{"agia_marina_chrysochous", "770"},
	{"nea_dimmata", "856"},
	{"pomos", "869"},
	{"androlikou", "783"},
	{"steni", "880"},
	{"peristerona", "864"},
	{"lysos", "840"},
	{"skoulli", "876"},
	{"polemi", "867"},
	{"stroumbi", "881"},
	{"yiolou", "811"},
	{"goudi", "812"},
	{"kallepia", "814"},
	{"letymvou", "838"},
	{"simou", "875"},
	{"fyti", "808"},
	{"amargeti", "780"},
	{"panagia", "859"},
	{"statos_agios_fotios", "878"},
	{"agia_marina_kelokedaron", "771"},
	{"agia_marinouda", "772"},
	{"agios_dimitrianos", "774"},
	{"agios_ioannis", "776"},
	{"agios_isidoros", "777"},
	{"agios_nikolaos", "778"},
	{"akourdaleia_kato", "818"},
	{"akourdaleia_pano", "860"},
	{"anadiou", "781"},
	{"archimandrita", "784"},
	{"arminou", "786"},
	{"asprogia", "789"},
	{"axylou", "790"},
	{"choli", "793"},
	{"choulou", "794"},
	{"chrysochou_village", "795"},
	{"drymou", "797"},
	{"eledio", "798"},
	{"evretou", "801"},
	{"falia", "802"},
	{"fasli", "803"},
	{"fasoula", "804"},
	{"filousa_chrysochou", "805"},
	{"filousa_kelokedaron", "806"},
	{"foinikas", "807"},
	{"galataria", "809"},
	{"kannaviou", "815"},
	{"karamoullides", "816"},
	{"kedares", "819"},
	{"kelokedara", "820"},
	{"kidasi", "821"},
	{"kios", "822"},
	{"koilineia", "825"},
	{"koloni", "826"},
	{"kourdaka", "829"},
	{"kritou_marottou", "830"},
	{"kritou_tera", "831"},
	{"kynousa", "832"},
	{"lapithiou", "833"},
	{"lasa", "834"},
	{"lemona", "836"},
	{"loukrounou", "839"},
	{"makounta", "841"},
	{"mamonia", "842"},
	{"mamountali", "843"},
	{"maronas", "846"},
	{"meladeia", "847"},
	{"melandra", "848"},
	{"mesana", "850"},
	{"milia", "852"},
	{"milikouri", "894"},
	{"miliou", "853"},
	{"mousere", "854"},
	{"pelathousa", "862"},
	{"pentalia", "863"},
	{"pitargou", "866"},
	{"praitori", "870"},
	{"prastio", "871"},
	{"psathi", "872"},
	{"salamiou", "873"},
	{"sarama", "874"},
	{"souskiou", "877"},
	{"stavrokonnou", "879"},
	{"tera", "883"},
	{"theletra", "884"},
	{"thrinia", "885"},
	{"trachypedoula", "887"},
	{"trimithousa", "889"},
	{"vrestia", "891"},
	{"zacharia", "893"},
}
