package api

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/idilsaglam/pokestats/internal/model"
	"github.com/idilsaglam/pokestats/internal/utils"
)

const (
	topItems     = 15
	topMoves     = 15
	topSpreads   = 10
	topTeammates = 10
)

// Process turns a raw chaos document into ranked, percentage-based stats.
func Process(raw *model.ChaosStats, q model.StatsQuery) (*model.Stats, error) {
	if raw == nil || raw.Data == nil {
		return nil, ErrNoData
	}

	st := &model.Stats{
		Info:    raw.Info,
		Pokemon: make(map[string]model.Pokemon, len(raw.Data)),
		Meta:    model.Meta{Format: q.Format, Rating: model.Rating(q.Rating), Month: q.Month},
	}
	for name, e := range raw.Data {
		st.Pokemon[name] = model.Pokemon{
			Name:       name,
			SpriteName: utils.SpriteName(name),
			Usage:      round2(e.Usage * 100),
			RawCount:   e.RawCount,
			Viability:  e.ViabilityCeiling,
			Abilities:  percentages(e.Abilities, 0),
			Items:      percentages(e.Items, topItems),
			Moves:      percentages(e.Moves, topMoves),
			Spreads:    spreads(e.Spreads),
			Teammates:  teammates(e.Teammates),
			TeraTypes:  percentages(e.TeraTypes, 0),
		}
	}

	names := make([]string, 0, len(st.Pokemon))
	for n := range st.Pokemon {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := st.Pokemon[names[i]], st.Pokemon[names[j]]
		if a.Usage != b.Usage {
			return a.Usage > b.Usage
		}
		return a.Name < b.Name
	})

	st.Ranked = make([]model.RankedEntry, 0, len(names))
	for i, n := range names {
		p := st.Pokemon[n]
		p.Rank = i + 1
		st.Pokemon[n] = p
		st.Ranked = append(st.Ranked, model.RankedEntry{
			Name:       p.Name,
			Usage:      p.Usage,
			Rank:       p.Rank,
			SpriteName: p.SpriteName,
		})
	}
	return st, nil
}

// PokemonFrom picks name out of st (case-insensitive) and attaches the
// default Showdown set and the query meta.
func PokemonFrom(st *model.Stats, name string) (*model.Pokemon, error) {
	for n, p := range st.Pokemon {
		if strings.EqualFold(n, name) {
			p.ShowdownSet = ShowdownSet(p)
			meta := st.Meta
			p.Meta = &meta
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%s in %s: %w", name, st.Meta.Format, ErrPokemonNotFound)
}

type weighted struct {
	name  string
	value float64
}

func sortedDesc(m map[string]float64) []weighted {
	out := make([]weighted, 0, len(m))
	for k, v := range m {
		out = append(out, weighted{k, v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].value != out[j].value {
			return out[i].value > out[j].value
		}
		return out[i].name < out[j].name
	})
	return out
}

// percentages normalises counts to percentages of their sum, sorted
// descending. top <= 0 keeps everything.
func percentages(m map[string]float64, top int) []model.Share {
	var total float64
	for _, v := range m {
		total += v
	}
	if total == 0 {
		return []model.Share{}
	}
	ws := sortedDesc(m)
	if top > 0 && len(ws) > top {
		ws = ws[:top]
	}
	out := make([]model.Share, 0, len(ws))
	for _, w := range ws {
		out = append(out, model.Share{Name: w.name, Percentage: round2(w.value / total * 100)})
	}
	return out
}

func spreads(m map[string]float64) []model.Spread {
	var total float64
	for _, v := range m {
		total += v
	}
	ws := sortedDesc(m)
	if len(ws) > topSpreads {
		ws = ws[:topSpreads]
	}
	out := make([]model.Spread, 0, len(ws))
	for _, w := range ws {
		sp, ok := ParseSpread(w.name)
		if !ok {
			continue
		}
		if total > 0 {
			sp.Percentage = round2(w.value / total * 100)
		}
		out = append(out, sp)
	}
	return out
}

// ParseSpread reads "Nature:hp/atk/def/spa/spd/spe".
func ParseSpread(s string) (model.Spread, bool) {
	nature, evs, ok := strings.Cut(s, ":")
	if !ok {
		return model.Spread{}, false
	}
	parts := strings.Split(evs, "/")
	if len(parts) != 6 {
		return model.Spread{}, false
	}
	var v [6]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return model.Spread{}, false
		}
		v[i] = n
	}
	return model.Spread{
		Nature: nature,
		HP:     v[0], Atk: v[1], Def: v[2], SpA: v[3], SpD: v[4], Spe: v[5],
		Raw: s,
	}, true
}

// teammates keeps the ten highest scores, dropping non-positive ones.
func teammates(m map[string]float64) []model.Teammate {
	ws := sortedDesc(m)
	if len(ws) > topTeammates {
		ws = ws[:topTeammates]
	}
	out := make([]model.Teammate, 0, len(ws))
	for _, w := range ws {
		if w.value <= 0 {
			continue
		}
		out = append(out, model.Teammate{Name: w.name, Score: round2(w.value * 100)})
	}
	return out
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
