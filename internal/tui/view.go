package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/pokestats/internal/menu"
	"github.com/idilsaglam/pokestats/internal/model"
	"github.com/idilsaglam/pokestats/internal/typecolor"
	"github.com/idilsaglam/pokestats/internal/ui"
	"github.com/idilsaglam/pokestats/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	helpStyle  = lipgloss.NewStyle().Faint(true)
)

const (
	headerRows  = 1
	menuLabel   = "Menu"
	menuWidth   = 16
	detailShare = 6
)

// menuButtonRect is the "☰ Menu" label at the top-left corner.
func menuButtonRect() menu.Rect {
	return menu.Rect{X: 0, Y: 0, W: lipgloss.Width(ui.Current().SymMenu + " " + menuLabel), H: 1}
}

// menuPanelRect covers the bordered overlay drawn under the header.
func menuPanelRect() menu.Rect {
	return menu.Rect{X: 0, Y: headerRows, W: menuWidth, H: len(menuEntries) + 2}
}

// menuEntryAt maps a screen row inside the open panel to an entry.
func menuEntryAt(y int) (int, bool) {
	i := y - headerRows - 1
	if i < 0 || i >= len(menuEntries) {
		return 0, false
	}
	return i, true
}

func (m modelTUI) View() string {
	t := ui.Current()

	header := t.Accent.Render(t.SymMenu+" "+menuLabel) + "  " + t.Title.Render("pokestats")
	if m.query.Format != "" {
		header += t.Muted.Render(fmt.Sprintf("  %s · %d", m.query.Format, m.query.Rating))
		if m.query.Month != "" {
			header += t.Muted.Render(" · " + m.query.Month)
		}
	}
	if m.loading {
		header += "  " + m.spin.View() + t.Muted.Render(" loading")
	}

	var body string
	switch m.screen {
	case screenDetail:
		body = m.detailView()
	default:
		body = m.list.View()
		if m.searching {
			box := lipgloss.NewStyle().Border(t.Border).BorderForeground(t.BorderColor).Padding(0, 1)
			body += "\n" + box.Render(t.Title.Render("Search")+"\n"+m.ti.View())
		}
	}

	if m.menu.IsOpen() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.menuView(), " ", body)
	}

	out := header + "\n" + body
	if toasts := m.app.Notifier.View(); toasts != "" {
		out += "\n" + lipgloss.PlaceHorizontal(m.width, lipgloss.Right, toasts)
	}
	return out
}

func (m modelTUI) menuView() string {
	t := ui.Current()
	lines := make([]string, len(menuEntries))
	for i, e := range menuEntries {
		lines[i] = t.Accent.Render(strconv.Itoa(i+1)) + " " + e
	}
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Width(menuWidth - 2).
		Render(strings.Join(lines, "\n"))
}

func (m modelTUI) detailView() string {
	p := m.pokemon
	if p == nil {
		return ""
	}
	t := ui.Current()

	head := []string{
		t.Title.Render(fmt.Sprintf("#%d %s", p.Rank, p.Name)) + "  " + teraBadges(p.TeraTypes),
		fmt.Sprintf("Usage %s  %s  Raw %s",
			utils.FormatPercent(p.Usage),
			t.Accent.Render(ui.ProgressBar(p.Usage, 100, 20)),
			utils.FormatNumber(p.RawCount)),
		t.Muted.Render(utils.ShowdownSprite(p.Name)),
	}

	left := strings.Join([]string{
		shareBlock("Abilities", p.Abilities),
		shareBlock("Items", p.Items),
		shareBlock("Moves", p.Moves),
	}, "\n\n")

	right := []string{spreadBlock(p.Spreads), teammateBlock(p.Teammates)}
	if p.ShowdownSet != "" {
		right = append(right, ui.PanelString(p.ShowdownSet))
	}

	cols := lipgloss.JoinHorizontal(lipgloss.Top,
		ui.PanelString(left), " ", strings.Join(right, "\n\n"))
	help := helpStyle.Render("c copy set • s copy sprite • esc back • m menu")
	return strings.Join(head, "\n") + "\n\n" + cols + "\n" + help
}

func teraBadges(shares []model.Share) string {
	if len(shares) == 0 {
		return ""
	}
	n := min(len(shares), 3)
	badges := make([]string, 0, n)
	for _, s := range shares[:n] {
		badges = append(badges, typecolor.Badge(s.Name))
	}
	return strings.Join(badges, " ")
}

func shareBlock(title string, shares []model.Share) string {
	t := ui.Current()
	lines := []string{t.Title.Render(title)}
	for i, s := range shares {
		if i == detailShare {
			break
		}
		lines = append(lines, fmt.Sprintf("%-20s %7s", truncate(s.Name, 20), utils.FormatPercent(s.Percentage)))
	}
	if len(shares) == 0 {
		lines = append(lines, t.Muted.Render("none"))
	}
	return strings.Join(lines, "\n")
}

func spreadBlock(spreads []model.Spread) string {
	t := ui.Current()
	lines := []string{t.Title.Render("Spreads")}
	for i, s := range spreads {
		if i == detailShare {
			break
		}
		lines = append(lines, fmt.Sprintf("%-8s %d/%d/%d/%d/%d/%d %7s",
			s.Nature, s.HP, s.Atk, s.Def, s.SpA, s.SpD, s.Spe, utils.FormatPercent(s.Percentage)))
	}
	return strings.Join(lines, "\n")
}

func teammateBlock(mates []model.Teammate) string {
	t := ui.Current()
	lines := []string{t.Title.Render("Teammates")}
	for i, mt := range mates {
		if i == detailShare {
			break
		}
		lines = append(lines, fmt.Sprintf("%-20s %s", truncate(mt.Name, 20), utils.FormatFloat(mt.Score, 2)))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
