package utils

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	showdownSpriteURL = "https://play.pokemonshowdown.com/sprites/gen5/%s.png"
	pokeAPISpriteURL  = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/%s.png"
)

var (
	nonAlnum       = regexp.MustCompile(`[^a-z0-9]`)
	nonAlnumHyphen = regexp.MustCompile(`[^a-z0-9-]+`)
	hyphenRun      = regexp.MustCompile(`-+`)
)

// spriteFixes maps names whose Showdown sprite id is not the plain
// normalised form.
var spriteFixes = map[string]string{
	"Urshifu-Rapid-Strike": "urshifu-rapid-strike",
	"Urshifu":              "urshifu",
	"Ogerpon-Hearthflame":  "ogerpon-hearthflame",
	"Ogerpon-Wellspring":   "ogerpon-wellspring",
	"Ogerpon-Cornerstone":  "ogerpon-cornerstone",
	"Terapagos-Stellar":    "terapagos-stellar",
	"Indeedee-F":           "indeedee-f",
	"Basculegion-F":        "basculegion-f",
	"Oinkologne-F":         "oinkologne-f",
	"Meowstic-F":           "meowstic-f",
	"Tornadus-Therian":     "tornadus-therian",
	"Thundurus-Therian":    "thundurus-therian",
	"Landorus-Therian":     "landorus-therian",
	"Enamorus-Therian":     "enamorus-therian",
}

// ShowdownName lower-cases name and drops everything outside [a-z0-9].
func ShowdownName(name string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(name), "")
}

// ShowdownSprite returns the gen5 Showdown sprite URL for name.
// "Mr. Mime" -> .../gen5/mrmime.png
func ShowdownSprite(name string) string {
	return fmt.Sprintf(showdownSpriteURL, ShowdownName(name))
}

// PokeAPIName lower-cases name, turns every run of characters outside
// [a-z0-9-] into one hyphen and trims hyphens from both ends.
func PokeAPIName(name string) string {
	s := nonAlnumHyphen.ReplaceAllString(strings.ToLower(name), "-")
	s = hyphenRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// PokemonSprite returns the PokeAPI sprite URL for name. Used when the
// Showdown sprite fails to load.
func PokemonSprite(name string) string {
	return fmt.Sprintf(pokeAPISpriteURL, PokeAPIName(name))
}

// SpriteName is the sprite id stored alongside processed stats.
func SpriteName(name string) string {
	if fixed, ok := spriteFixes[name]; ok {
		return fixed
	}
	return ShowdownName(name)
}
