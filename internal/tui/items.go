package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/pokestats/internal/api"
	"github.com/idilsaglam/pokestats/internal/model"
	"github.com/idilsaglam/pokestats/internal/ui"
	"github.com/idilsaglam/pokestats/internal/utils"
)

// formatItem adapts api.Format to bubbles/list.Item
type formatItem struct {
	api.Format
	Category string
}

func (i formatItem) FilterValue() string { return i.Code + " " + i.Name }

// rankItem adapts a ranking row to bubbles/list.Item
type rankItem struct {
	model.RankedEntry
}

func (i rankItem) FilterValue() string { return i.Name }

// monthItem is one entry of the month picker.
type monthItem string

func (i monthItem) FilterValue() string { return string(i) }

// Custom delegate to control how rows render (single line)
type rowDelegate struct{}

func (d rowDelegate) Height() int                               { return 1 }
func (d rowDelegate) Spacing() int                              { return 0 }
func (d rowDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	t := ui.Current()
	var line string
	switch it := item.(type) {
	case formatItem:
		line = fmt.Sprintf("%-26s %s", it.Code, t.Muted.Render(it.Name))
	case rankItem:
		name := it.Name
		if len(name) > 24 {
			name = name[:21] + "..."
		}
		line = fmt.Sprintf("%s %-24s %8s  %s",
			t.Muted.Render(fmt.Sprintf("%3d.", it.Rank)),
			name,
			utils.FormatPercent(it.Usage),
			t.Accent.Render(ui.ProgressBar(it.Usage, 100, 20)))
	case monthItem:
		line = string(it)
	default:
		line = item.FilterValue()
	}

	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	fmt.Fprintln(w, prefix+strings.TrimRight(line, " "))
}

func formatItems() []list.Item {
	var out []list.Item
	for _, c := range api.Catalog {
		for _, f := range c.Formats {
			out = append(out, formatItem{Format: f, Category: c.Name})
		}
	}
	return out
}

// rankItems filters the ranking by a case-insensitive substring.
func rankItems(st *model.Stats, query string) []list.Item {
	if st == nil {
		return nil
	}
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]list.Item, 0, len(st.Ranked))
	for _, r := range st.Ranked {
		if q != "" && !strings.Contains(strings.ToLower(r.Name), q) {
			continue
		}
		out = append(out, rankItem{r})
	}
	return out
}

func monthItems(months []string) []list.Item {
	out := make([]list.Item, 0, len(months))
	for _, m := range months {
		out = append(out, monthItem(m))
	}
	return out
}
