// Package tui is the interactive browser: pick a format, scroll the
// usage ranking, open a Pokémon and copy its set.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/pokestats/internal/api"
	"github.com/idilsaglam/pokestats/internal/app"
	"github.com/idilsaglam/pokestats/internal/menu"
	"github.com/idilsaglam/pokestats/internal/model"
	"github.com/idilsaglam/pokestats/internal/store/jsonstore"
	"github.com/idilsaglam/pokestats/internal/toast"
	"github.com/idilsaglam/pokestats/internal/utils"
)

type screen int

const (
	screenFormats screen = iota
	screenRanking
	screenDetail
	screenMonths
)

// menuEntries are the rows of the overlay menu, top to bottom.
var menuEntries = []string{"Formats", "Months", "Refresh", "Quit"}

// bridge forwards messages produced outside the event loop (timers,
// debouncer) into the running program. Sends never block the caller.
type bridge struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (b *bridge) set(fn func(tea.Msg)) {
	b.mu.Lock()
	b.send = fn
	b.mu.Unlock()
}

func (b *bridge) Send(msg tea.Msg) {
	b.mu.Lock()
	fn := b.send
	b.mu.Unlock()
	if fn != nil {
		go fn(msg)
	}
}

type modelTUI struct {
	app *app.App
	ctx context.Context

	screen  screen
	list    list.Model
	spin    spinner.Model
	loading bool
	width   int
	height  int

	query   model.StatsQuery
	stats   *model.Stats
	pokemon *model.Pokemon

	// search box over the ranking
	searching bool
	ti        textinput.Model
	filter    string
	search    *utils.Debouncer[string]

	menu *menu.Controller
	out  *bridge
}

var (
	searchBind = key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search"))
	ratingBind = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rating"))
	menuBind   = key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu"))
	copyBind   = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy set"))
	spriteBind = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "copy sprite"))
)

func newModel(ctx context.Context, a *app.App) modelTUI {
	l := list.New(formatItems(), rowDelegate{}, 0, 0)
	l.Title = "Formats"
	l.SetShowHelp(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("format", "formats")
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{searchBind, ratingBind, menuBind}
	}

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search Pokémon..."
	ti.CharLimit = 40

	m := modelTUI{
		app:    a,
		ctx:    ctx,
		list:   l,
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		ti:     ti,
		menu:   menu.New(),
		out:    &bridge{},
		width:  80,
		height: 24,
	}
	m.search = utils.NewDebouncer(a.Clock, a.Config.Debounce, func(q string) {
		m.out.Send(searchMsg{query: q})
	})
	a.Notifier.OnChange(func() { m.out.Send(toastChangedMsg{}) })
	m.layout()
	return m
}

// Run starts the full-screen browser and blocks until it quits.
func Run(ctx context.Context, a *app.App) error {
	m := newModel(ctx, a)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	m.out.set(p.Send)
	defer m.out.set(nil)
	defer m.search.Cancel()

	_, err := p.Run()
	return err
}

func (m modelTUI) Init() tea.Cmd { return nil }

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case toastChangedMsg:
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case statsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.app.Logger.Error("load stats", "query", msg.query.String(), "error", msg.err)
			m.app.Notify(errorText("stats", msg.err), toast.KindError)
			return m, nil
		}
		m.stats = msg.stats
		m.query = msg.query
		m.query.Month = msg.stats.Meta.Month
		m.filter = ""
		m.showRanking()
		return m, nil

	case pokemonLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.app.Notify(errorText("pokemon", msg.err), toast.KindError)
			return m, nil
		}
		m.pokemon = msg.pokemon
		m.screen = screenDetail
		return m, nil

	case monthsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.app.Notify(errorText("months", msg.err), toast.KindError)
			return m, nil
		}
		m.screen = screenMonths
		m.list.Title = "Months"
		m.list.SetStatusBarItemName("month", "months")
		cmd := m.list.SetItems(monthItems(msg.months))
		m.list.Select(0)
		return m, cmd

	case copiedMsg:
		if msg.ok {
			m.app.Notify(msg.what+" copied to clipboard", toast.KindSuccess)
		} else {
			m.app.Notify("could not copy "+msg.what, toast.KindError)
		}
		return m, nil

	case searchMsg:
		if m.screen == screenRanking {
			m.filter = msg.query
			cmd := m.list.SetItems(rankItems(m.stats, m.filter))
			m.list.Select(0)
			return m, cmd
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m modelTUI) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.search.Cancel()
		m.searching = false
		m.ti.Blur()
		m.filter = m.ti.Value()
		m.layout()
		cmd := m.list.SetItems(rankItems(m.stats, m.filter))
		m.list.Select(0)
		return m, cmd
	case "esc":
		m.search.Cancel()
		m.searching = false
		m.ti.SetValue("")
		m.ti.Blur()
		m.filter = ""
		m.layout()
		cmd := m.list.SetItems(rankItems(m.stats, ""))
		return m, cmd
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	m.search.Call(m.ti.Value())
	return m, cmd
}

func (m modelTUI) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.menu.IsOpen() {
		switch msg.String() {
		case "esc", "m":
			m.menu.Close()
			return m, nil
		}
		if i, err := strconv.Atoi(msg.String()); err == nil && i >= 1 && i <= len(menuEntries) {
			m.menu.Close()
			return m.menuAction(i - 1)
		}
		return m, nil
	}

	switch msg.String() {
	case "m":
		m.menu.Toggle()
		return m, nil
	case "q":
		if m.screen == screenFormats {
			return m, tea.Quit
		}
		return m.back()
	case "esc":
		return m.back()
	}

	switch m.screen {
	case screenFormats:
		if msg.String() == "enter" {
			if it, ok := m.list.SelectedItem().(formatItem); ok {
				return m.startStats(m.app.Query(it.Code, 0, m.query.Month))
			}
		}
	case screenRanking:
		switch msg.String() {
		case "/":
			m.searching = true
			m.ti.SetValue(m.filter)
			m.ti.CursorEnd()
			m.layout()
			return m, m.ti.Focus()
		case "r":
			q := m.query
			q.Rating = nextRating(m.ratings(q), q.Rating)
			return m.startStats(q)
		case "enter":
			if it, ok := m.list.SelectedItem().(rankItem); ok {
				m.loading = true
				return m, tea.Batch(loadPokemon(m.ctx, m.app.Client, m.query, it.Name), m.spin.Tick)
			}
		}
	case screenDetail:
		if m.pokemon == nil {
			break
		}
		switch msg.String() {
		case "c":
			return m, copyText(m.ctx, m.app.Clipboard, "Showdown set", m.pokemon.ShowdownSet)
		case "s":
			return m, copyText(m.ctx, m.app.Clipboard, "sprite URL", utils.ShowdownSprite(m.pokemon.Name))
		}
		return m, nil
	case screenMonths:
		if msg.String() == "enter" {
			if it, ok := m.list.SelectedItem().(monthItem); ok {
				m.query.Month = string(it)
				if m.query.Format == "" {
					m.app.Notify("month set to "+string(it), toast.KindInfo)
					m.showFormats()
					return m, nil
				}
				return m.startStats(m.query)
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m modelTUI) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	wasOpen := m.menu.IsOpen()
	m.menu.Click(msg.X, msg.Y)
	if wasOpen && m.menu.IsOpen() {
		if i, ok := menuEntryAt(msg.Y); ok {
			m.menu.Close()
			return m.menuAction(i)
		}
	}
	return m, nil
}

func (m modelTUI) menuAction(i int) (tea.Model, tea.Cmd) {
	switch menuEntries[i] {
	case "Formats":
		m.showFormats()
	case "Months":
		m.loading = true
		return m, tea.Batch(loadMonths(m.ctx, m.app.Client), m.spin.Tick)
	case "Refresh":
		if m.query.Format != "" {
			return m.startStats(m.query)
		}
	case "Quit":
		return m, tea.Quit
	}
	return m, nil
}

func (m modelTUI) back() (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenDetail:
		m.screen = screenRanking
	case screenRanking, screenMonths:
		m.showFormats()
	}
	return m, nil
}

func (m modelTUI) startStats(q model.StatsQuery) (tea.Model, tea.Cmd) {
	m.loading = true
	m.app.Notify(fmt.Sprintf("loading %s (%d)", api.FormatName(q.Format), q.Rating), toast.KindInfo)
	return m, tea.Batch(loadStats(m.ctx, m.app.Client, q), m.spin.Tick)
}

func (m *modelTUI) showFormats() {
	m.screen = screenFormats
	m.list.Title = "Formats"
	m.list.SetStatusBarItemName("format", "formats")
	m.list.SetItems(formatItems())
}

func (m *modelTUI) showRanking() {
	m.screen = screenRanking
	m.list.Title = fmt.Sprintf("%s · %d · %s", api.FormatName(m.query.Format), m.query.Rating, m.query.Month)
	m.list.SetStatusBarItemName("pokémon", "pokémon")
	m.list.SetItems(rankItems(m.stats, m.filter))
	m.list.Select(0)
}

// layout sizes the list and rebinds the menu hit areas.
func (m *modelTUI) layout() {
	h := m.height - headerRows - 2
	if m.searching {
		h -= 3
	}
	if h < 3 {
		h = 3
	}
	m.list.SetSize(m.width-4, h)
	m.menu.Bind(menuButtonRect(), menuPanelRect())
}

// ratings lists the cut-offs the r key cycles through. The cache client
// only offers what has been synced for the query's month.
func (m modelTUI) ratings(q model.StatsQuery) []int {
	if store, ok := m.app.Client.(*jsonstore.Store); ok && q.Month != "" {
		r, err := store.Ratings(q.Month, q.Format)
		if err == nil && len(r) > 0 {
			return r
		}
		m.app.Logger.Debug("no cached ratings, using catalog", "query", q.String(), "error", err)
	}
	return api.Ratings(q.Format)
}

// nextRating returns the cut-off after current, wrapping around.
func nextRating(r []int, current int) int {
	if len(r) == 0 {
		return current
	}
	for i, v := range r {
		if v == current {
			return r[(i+1)%len(r)]
		}
	}
	return r[0]
}

func errorText(what string, err error) string {
	switch {
	case api.IsNotFound(err):
		return what + ": not found"
	case api.StatusCode(err) != 0:
		return fmt.Sprintf("%s: HTTP %d", what, api.StatusCode(err))
	default:
		return what + ": " + err.Error()
	}
}
