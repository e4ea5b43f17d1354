package model

import (
	"fmt"
	"strconv"
	"strings"
)

// StatsQuery selects one usage snapshot. An empty Month means the
// latest month available.
type StatsQuery struct {
	Format string `json:"format"`
	Rating int    `json:"rating"`
	Month  string `json:"month,omitempty"`
}

func (q StatsQuery) String() string {
	m := q.Month
	if m == "" {
		m = "latest"
	}
	return fmt.Sprintf("%s-%d@%s", q.Format, q.Rating, m)
}

// Rating accepts both 1760 and "1760" on the wire; the first-party API
// echoes the query parameter back as a string.
type Rating int

func (r *Rating) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*r = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("rating %s: %w", b, err)
	}
	*r = Rating(n)
	return nil
}

// Meta echoes the query that produced a response.
type Meta struct {
	Format string `json:"format"`
	Rating Rating `json:"rating"`
	Month  string `json:"month"`
}

// Share is one entry of a usage distribution (items, moves, ...).
type Share struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
}

// Spread is a nature plus EV distribution, e.g. "Jolly:0/252/0/0/4/252".
type Spread struct {
	Nature     string  `json:"nature"`
	HP         int     `json:"hp"`
	Atk        int     `json:"atk"`
	Def        int     `json:"def"`
	SpA        int     `json:"spa"`
	SpD        int     `json:"spd"`
	Spe        int     `json:"spe"`
	Percentage float64 `json:"percentage"`
	Raw        string  `json:"raw"`
}

// Teammate is a partner Pokémon with its co-occurrence score.
type Teammate struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Pokemon is the processed usage profile of one species.
type Pokemon struct {
	Name        string     `json:"name"`
	SpriteName  string     `json:"sprite_name"`
	Usage       float64    `json:"usage"`
	RawCount    int64      `json:"raw_count"`
	Viability   []int      `json:"viability,omitempty"`
	Abilities   []Share    `json:"abilities"`
	Items       []Share    `json:"items"`
	Moves       []Share    `json:"moves"`
	Spreads     []Spread   `json:"spreads"`
	Teammates   []Teammate `json:"teammates"`
	TeraTypes   []Share    `json:"tera_types"`
	Rank        int        `json:"rank"`
	ShowdownSet string     `json:"showdown_set,omitempty"`
	Meta        *Meta      `json:"meta,omitempty"`
}

// RankedEntry is one line of the usage ranking.
type RankedEntry struct {
	Name       string  `json:"name"`
	Usage      float64 `json:"usage"`
	Rank       int     `json:"rank"`
	SpriteName string  `json:"sprite_name"`
}

// Stats is the processed snapshot for a format/rating/month.
type Stats struct {
	Info    Info               `json:"info"`
	Pokemon map[string]Pokemon `json:"pokemon"`
	Ranked  []RankedEntry      `json:"ranked_list"`
	Meta    Meta               `json:"meta"`
}

// Info is the header Smogon puts on every chaos file.
type Info struct {
	Metagame        string  `json:"metagame"`
	Cutoff          float64 `json:"cutoff"`
	CutoffDeviation float64 `json:"cutoff deviation"`
	TeamType        *string `json:"team type"`
	NumberOfBattles int64   `json:"number of battles"`
}

// ChaosStats is the raw Smogon "chaos" JSON document.
type ChaosStats struct {
	Info Info                  `json:"info"`
	Data map[string]ChaosEntry `json:"data"`
}

// ChaosEntry is the raw per-species block of a chaos document. Counts
// are weighted, hence float.
type ChaosEntry struct {
	RawCount         int64                `json:"Raw count"`
	Usage            float64              `json:"usage"`
	ViabilityCeiling []int                `json:"Viability Ceiling"`
	Abilities        map[string]float64   `json:"Abilities"`
	Items            map[string]float64   `json:"Items"`
	Moves            map[string]float64   `json:"Moves"`
	Spreads          map[string]float64   `json:"Spreads"`
	Teammates        map[string]float64   `json:"Teammates"`
	TeraTypes        map[string]float64   `json:"Tera Types"`
	ChecksAndCounter map[string][]float64 `json:"Checks and Counters,omitempty"`
}

// Months is the body of GET /api/months.
type Months struct {
	Months []string `json:"months"`
}

// Formats is the body of GET /api/formats/{month}.
type Formats struct {
	Formats []string `json:"formats"`
}
