package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/pokestats/internal/api"
	"github.com/idilsaglam/pokestats/internal/model"
	"github.com/idilsaglam/pokestats/internal/utils"
)

type statsLoadedMsg struct {
	query model.StatsQuery
	stats *model.Stats
	err   error
}

type pokemonLoadedMsg struct {
	pokemon *model.Pokemon
	err     error
}

type monthsLoadedMsg struct {
	months []string
	err    error
}

type copiedMsg struct {
	what string
	ok   bool
}

// searchMsg carries the debounced search box value.
type searchMsg struct{ query string }

// toastChangedMsg asks for a repaint after a toast moved.
type toastChangedMsg struct{}

func loadStats(ctx context.Context, c api.Client, q model.StatsQuery) tea.Cmd {
	return func() tea.Msg {
		st, err := c.Stats(ctx, q)
		return statsLoadedMsg{query: q, stats: st, err: err}
	}
}

func loadPokemon(ctx context.Context, c api.Client, q model.StatsQuery, name string) tea.Cmd {
	return func() tea.Msg {
		p, err := c.Pokemon(ctx, q, name)
		return pokemonLoadedMsg{pokemon: p, err: err}
	}
}

func loadMonths(ctx context.Context, c api.Client) tea.Cmd {
	return func() tea.Msg {
		months, err := c.Months(ctx)
		return monthsLoadedMsg{months: months, err: err}
	}
}

func copyText(ctx context.Context, cb *utils.Clipboard, what, text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{what: what, ok: cb.Copy(ctx, text)}
	}
}
