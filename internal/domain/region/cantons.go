package region

// Canton language membership. BE, FR and VS are bilingual, GR is trilingual.
var cantonLanguages = map[Code][]Language{
	"ZH": {German},
	"BE": {German, French},
	"LU": {German},
	"UR": {German},
	"SZ": {German},
	"OW": {German},
	"NW": {German},
	"GL": {German},
	"ZG": {German},
	"FR": {French, German},
	"SO": {German},
	"BS": {German},
	"BL": {German},
	"SH": {German},
	"AR": {German},
	"AI": {German},
	"SG": {German},
	"GR": {German, Romansh, Italian},
	"AG": {German},
	"TG": {German},
	"TI": {Italian},
	"VD": {French},
	"VS": {French, German},
	"NE": {French},
	"GE": {French},
	"JU": {French},
}

// Shared canton borders, each listed once.
var cantonBorders = []Edge{
	{"ZH", "SH"}, {"ZH", "TG"}, {"ZH", "SG"}, {"ZH", "SZ"}, {"ZH", "ZG"}, {"ZH", "AG"},
	{"BE", "SO"}, {"BE", "JU"}, {"BE", "NE"}, {"BE", "FR"}, {"BE", "VD"}, {"BE", "VS"},
	{"BE", "UR"}, {"BE", "OW"}, {"BE", "LU"}, {"BE", "AG"},
	{"LU", "AG"}, {"LU", "ZG"}, {"LU", "SZ"}, {"LU", "NW"}, {"LU", "OW"},
	{"UR", "SZ"}, {"UR", "NW"}, {"UR", "OW"}, {"UR", "VS"}, {"UR", "TI"}, {"UR", "GR"}, {"UR", "GL"},
	{"SZ", "ZG"}, {"SZ", "NW"}, {"SZ", "GL"}, {"SZ", "SG"},
	{"OW", "NW"},
	{"GL", "SG"}, {"GL", "GR"},
	{"ZG", "AG"},
	{"FR", "VD"}, {"FR", "NE"},
	{"SO", "JU"}, {"SO", "BL"}, {"SO", "AG"},
	{"BS", "BL"},
	{"BL", "AG"}, {"BL", "JU"},
	{"SH", "TG"},
	{"AR", "AI"}, {"AR", "SG"},
	{"AI", "SG"},
	{"SG", "TG"}, {"SG", "GR"},
	{"GR", "TI"},
	{"VD", "GE"}, {"VD", "VS"}, {"VD", "NE"},
	{"VS", "TI"},
	{"NE", "JU"},
}

// Switzerland returns the built-in graph of the 26 Swiss cantons.
func Switzerland(tiers Tiers) (*Graph, error) {
	return NewGraph(cantonLanguages, cantonBorders, tiers)
}

// MustSwitzerland is Switzerland with default tiers; it panics on error.
func MustSwitzerland() *Graph {
	g, err := Switzerland(DefaultTiers())
	if err != nil {
		panic(err)
	}
	return g
}
