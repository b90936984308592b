package genre

// canonicalAliases maps slugified variations to the slug of the catalog
// genre they mean. English names map to the Turkish labels the curated
// data carries.
var canonicalAliases = map[string]string{
	// Science fiction variations -> bilim-kurgu
	"science-fiction": "bilim-kurgu",
	"sci-fi":          "bilim-kurgu",
	"scifi":           "bilim-kurgu",
	"sf":              "bilim-kurgu",
	"bilimkurgu":      "bilim-kurgu",

	// Fantasy variations
	"fantasy":      "fantastik",
	"high-fantasy": "fantastik",
	"fantezi":      "fantastik",

	// Thriller variations
	"thriller": "gerilim",
	"suspense": "gerilim",

	// Comedy
	"comedy": "komedi",
	"humor":  "komedi",

	// Action
	"action":    "aksiyon",
	"adventure": "aksiyon",
	"macera":    "aksiyon",

	// Romance
	"romance":  "romantik",
	"romantic": "romantik",
	"ask":      "romantik",

	// Fiction / novels
	"novel":    "roman",
	"fiction":  "roman",
	"edebiyat": "roman",

	// Self-help
	"self-help":            "kisisel-gelisim",
	"selfhelp":             "kisisel-gelisim",
	"personal-development": "kisisel-gelisim",

	// Music
	"electronic":       "elektronik",
	"edm":              "elektronik",
	"hip-hop":          "rap",
	"hiphop":           "rap",
	"rnb":              "r-b",
	"rhythm-and-blues": "r-b",
}

// Normalize takes a raw genre string and returns its canonical slug.
// Returns the slugified input when no alias applies, so exact catalog
// labels always match themselves.
func Normalize(raw string) string {
	slug := Slugify(raw)

	if canonical, ok := canonicalAliases[slug]; ok {
		return canonical
	}

	return slug
}
