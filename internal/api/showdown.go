package api

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/idilsaglam/pokestats/internal/model"
)

// StatLine holds one value per stat, in HP/Atk/Def/SpA/SpD/Spe order.
type StatLine [6]int

var statLabels = [6]string{"HP", "Atk", "Def", "SpA", "SpD", "Spe"}

// MaxIV is the IV Showdown assumes when none is given.
const MaxIV = 31

// ParseStatLine reads six slash-separated values, e.g. "252/0/4/0/0/252".
func ParseStatLine(s string) (StatLine, error) {
	var out StatLine
	parts := strings.Split(s, "/")
	if len(parts) != len(out) {
		return out, fmt.Errorf("stat line %q: want 6 values separated by /", s)
	}
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return out, fmt.Errorf("stat line %q: bad value %q", s, p)
		}
		out[i] = n
	}
	return out, nil
}

// SetOptions overrides parts of the most common build. Empty fields
// keep the usage data; Moves replaces the whole move list.
type SetOptions struct {
	Item     string
	Ability  string
	TeraType string
	Nature   string
	EVs      *StatLine
	IVs      *StatLine
	Moves    []string
}

// IsZero reports whether o changes nothing.
func (o SetOptions) IsZero() bool {
	return o.Item == "" && o.Ability == "" && o.TeraType == "" && o.Nature == "" &&
		o.EVs == nil && o.IVs == nil && len(o.Moves) == 0
}

// ShowdownSet renders the most common build of p in Showdown's team
// import format.
func ShowdownSet(p model.Pokemon) string {
	return BuildSet(p, SetOptions{})
}

// BuildSet renders p with o applied on top of its most common build.
// Only EVs above 0 and IVs below 31 are printed; at most four moves.
func BuildSet(p model.Pokemon, o SetOptions) string {
	item, ability, tera, nature := o.Item, o.Ability, o.TeraType, o.Nature
	if item == "" && len(p.Items) > 0 {
		item = p.Items[0].Name
	}
	if ability == "" && len(p.Abilities) > 0 {
		ability = p.Abilities[0].Name
	}
	if tera == "" && len(p.TeraTypes) > 0 {
		tera = p.TeraTypes[0].Name
	}
	var evs *StatLine
	if len(p.Spreads) > 0 {
		sp := p.Spreads[0]
		evs = &StatLine{sp.HP, sp.Atk, sp.Def, sp.SpA, sp.SpD, sp.Spe}
		if nature == "" {
			nature = sp.Nature
		}
	}
	if o.EVs != nil {
		evs = o.EVs
	}
	moves := o.Moves
	if len(moves) == 0 {
		for _, m := range p.Moves {
			moves = append(moves, m.Name)
		}
	}

	var b strings.Builder
	b.WriteString(p.Name)
	if item != "" {
		b.WriteString(" @ " + item)
	}
	if ability != "" {
		b.WriteString("\nAbility: " + ability)
	}
	if tera != "" {
		b.WriteString("\nTera Type: " + tera)
	}
	if evs != nil {
		if line := statLine(*evs, func(v int) bool { return v > 0 }); line != "" {
			b.WriteString("\nEVs: " + line)
		}
	}
	if o.IVs != nil {
		if line := statLine(*o.IVs, func(v int) bool { return v < MaxIV }); line != "" {
			b.WriteString("\nIVs: " + line)
		}
	}
	if nature != "" {
		b.WriteString("\n" + nature + " Nature")
	}
	n := 0
	for _, m := range moves {
		if n == 4 {
			break
		}
		if m = strings.TrimSpace(m); m == "" {
			continue
		}
		b.WriteString("\n- " + m)
		n++
	}
	return b.String()
}

func statLine(v StatLine, keep func(int) bool) string {
	var parts []string
	for i, n := range v {
		if keep(n) {
			parts = append(parts, fmt.Sprintf("%d %s", n, statLabels[i]))
		}
	}
	return strings.Join(parts, " / ")
}
