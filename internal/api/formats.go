package api

// Format is a Showdown format code with its display name.
type Format struct {
	Code string
	Name string
}

// Category groups related formats.
type Category struct {
	Key     string
	Name    string
	Formats []Format
}

// Catalog is the list of formats offered by default, grouped for menus.
var Catalog = []Category{
	{Key: "vgc", Name: "VGC (Official Doubles)", Formats: []Format{
		{"gen9vgc2025regh", "[Gen 9] VGC 2025 Reg H"},
		{"gen9vgc2025reggbo3", "[Gen 9] VGC 2025 Reg G Bo3"},
		{"gen9vgc2026regg", "[Gen 9] VGC 2026 Reg G"},
		{"gen9vgc2026reggbo3", "[Gen 9] VGC 2026 Reg G Bo3"},
	}},
	{Key: "singles", Name: "Smogon Singles", Formats: []Format{
		{"gen9ou", "[Gen 9] OverUsed"},
		{"gen9ubers", "[Gen 9] Ubers"},
		{"gen9uu", "[Gen 9] UnderUsed"},
		{"gen9ru", "[Gen 9] RarelyUsed"},
		{"gen9nu", "[Gen 9] NeverUsed"},
		{"gen9pu", "[Gen 9] PU"},
		{"gen9lc", "[Gen 9] Little Cup"},
		{"gen9monotype", "[Gen 9] Monotype"},
	}},
	{Key: "doubles", Name: "Smogon Doubles", Formats: []Format{
		{"gen9doublesou", "[Gen 9] Doubles OU"},
		{"gen9doublesubers", "[Gen 9] Doubles Ubers"},
		{"gen9doublesuu", "[Gen 9] Doubles UU"},
	}},
	{Key: "nationaldex", Name: "National Dex", Formats: []Format{
		{"gen9nationaldex", "[Gen 9] National Dex"},
		{"gen9nationaldexubers", "[Gen 9] National Dex Ubers"},
		{"gen9nationaldexmonotype", "[Gen 9] National Dex Monotype"},
	}},
	{Key: "other", Name: "Other Formats", Formats: []Format{
		{"gen9anythinggoes", "[Gen 9] Anything Goes"},
		{"gen9randombattle", "[Gen 9] Random Battle"},
		{"gen9balancedhackmons", "[Gen 9] Balanced Hackmons"},
		{"gen91v1", "[Gen 9] 1v1"},
	}},
	{Key: "legacy", Name: "Past Generations", Formats: []Format{
		{"gen8ou", "[Gen 8] OverUsed"},
		{"gen7ou", "[Gen 7] OverUsed"},
		{"gen6ou", "[Gen 6] OverUsed"},
		{"gen5ou", "[Gen 5] OverUsed"},
	}},
}

var ratingCutoffs = map[string][]int{
	"gen9ou":        {0, 1500, 1695, 1825},
	"gen9doublesou": {0, 1500, 1695, 1825},
}

var defaultCutoffs = []int{0, 1500, 1630, 1760}

// Ratings returns the rating cut-offs published for code.
func Ratings(code string) []int {
	r, ok := ratingCutoffs[code]
	if !ok {
		r = defaultCutoffs
	}
	return append([]int(nil), r...)
}

// TopRating is the highest published cut-off for code.
func TopRating(code string) int {
	r := Ratings(code)
	return r[len(r)-1]
}

// FormatName returns the display name for code, or code itself when
// the format is not in the catalog.
func FormatName(code string) string {
	for _, c := range Catalog {
		for _, f := range c.Formats {
			if f.Code == code {
				return f.Name
			}
		}
	}
	return code
}

// AllFormats flattens the catalog in display order.
func AllFormats() []Format {
	var out []Format
	for _, c := range Catalog {
		out = append(out, c.Formats...)
	}
	return out
}
