// Package typecolor maps Pokémon (Tera) type names to display colours.
package typecolor

import (
	"github.com/charmbracelet/lipgloss"
)

// Color is a "#RRGGBB" hex string.
type Color string

var names = []string{
	"Normal", "Fire", "Water", "Electric", "Grass", "Ice",
	"Fighting", "Poison", "Ground", "Flying", "Psychic", "Bug",
	"Rock", "Ghost", "Dragon", "Dark", "Steel", "Fairy", "Stellar",
}

var table = map[string]Color{
	"Normal":   "#A8A878",
	"Fire":     "#F08030",
	"Water":    "#6890F0",
	"Electric": "#F8D030",
	"Grass":    "#78C850",
	"Ice":      "#98D8D8",
	"Fighting": "#C03028",
	"Poison":   "#A040A0",
	"Ground":   "#E0C068",
	"Flying":   "#A890F0",
	"Psychic":  "#F85888",
	"Bug":      "#A8B820",
	"Rock":     "#B8A038",
	"Ghost":    "#705898",
	"Dragon":   "#7038F8",
	"Dark":     "#705848",
	"Steel":    "#B8B8D0",
	"Fairy":    "#EE99AC",
	"Stellar":  "#44AACC",
}

// Lookup returns the colour for a type name. Names are case sensitive;
// unknown names report false.
func Lookup(name string) (Color, bool) {
	c, ok := table[name]
	return c, ok
}

// Names returns the type names in canonical order.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// All returns a copy of the whole table.
func All() map[string]Color {
	out := make(map[string]Color, len(table))
	for k, v := range table {
		out[k] = v
	}
	return out
}

var (
	badgeStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	plainStyle = lipgloss.NewStyle().Padding(0, 1)
)

// Badge renders name on its type colour. Unknown names are rendered
// without a background.
func Badge(name string) string {
	c, ok := Lookup(name)
	if !ok {
		return plainStyle.Render(name)
	}
	return badgeStyle.Background(lipgloss.Color(string(c))).Render(name)
}
