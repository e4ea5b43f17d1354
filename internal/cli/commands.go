package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/pokestats/internal/api"
	"github.com/idilsaglam/pokestats/internal/model"
	"github.com/idilsaglam/pokestats/internal/typecolor"
	"github.com/idilsaglam/pokestats/internal/ui"
	"github.com/idilsaglam/pokestats/internal/utils"
)

func monthsCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "months",
		Short: "List months with published stats, newest first",
		Args:  exactArgs(0, "months"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			months, err := r.app.Client.Months(cmd.Context())
			if err != nil {
				return fmt.Errorf("months: %w", err)
			}
			if len(months) == 0 {
				ui.Info("no months published")
				return nil
			}
			out := cmd.OutOrStdout()
			for _, m := range months {
				fmt.Fprintln(out, m)
			}
			return nil
		},
	}
}

func formatsCmd(r *runner) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "formats [month]",
		Short: "List formats published for a month (default latest)",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 1 {
				return usagef("usage: pokestats formats [month]")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if all {
				for _, c := range api.Catalog {
					fmt.Fprintln(out, ui.Current().Title.Render(c.Name))
					for _, f := range c.Formats {
						fmt.Fprintf(out, "  %-24s %s\n", f.Code, f.Name)
					}
				}
				return nil
			}

			month := r.app.Config.Month
			if len(args) == 1 {
				month = args[0]
			}
			if month == "" {
				latest, err := latestMonth(cmd, r)
				if err != nil {
					return err
				}
				month = latest
			}
			formats, err := r.app.Client.Formats(cmd.Context(), month)
			if err != nil {
				return fmt.Errorf("formats %s: %w", month, err)
			}
			for _, f := range formats {
				fmt.Fprintf(out, "%-24s %s\n", f, api.FormatName(f))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "catalog", false, "show the built-in format catalog instead")
	return cmd
}

func statsCmd(r *runner) *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "stats <format>",
		Short: "Show the usage ranking of a format",
		Args:  exactArgs(1, "stats <format>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := r.app.Query(args[0], 0, "")
			st, err := r.app.Client.Stats(cmd.Context(), q)
			if err != nil {
				return fmt.Errorf("stats %s: %w", q, err)
			}
			renderStats(cmd.OutOrStdout(), st, q, top)
			return nil
		},
	}
	cmd.Flags().IntVarP(&top, "top", "n", 20, "rows to show (0 = all)")
	return cmd
}

func renderStats(w io.Writer, st *model.Stats, q model.StatsQuery, top int) {
	month := st.Meta.Month
	if month == "" {
		month = q.Month
	}
	fmt.Fprintf(w, "%s  %s\n",
		ui.Current().Title.Render(api.FormatName(q.Format)),
		ui.Current().Muted.Render(fmt.Sprintf("%d · %s · %s battles", q.Rating, month, utils.FormatNumber(st.Info.NumberOfBattles))))

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Footer = text.FormatDefault
	t.AppendHeader(table.Row{"#", "Pokémon", "Usage", "Raw", ""})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	for i, e := range st.Ranked {
		if top > 0 && i == top {
			break
		}
		raw := ""
		if p, ok := st.Pokemon[e.Name]; ok && p.RawCount > 0 {
			raw = utils.FormatNumber(p.RawCount)
		}
		t.AppendRow(table.Row{e.Rank, e.Name, utils.FormatPercent(e.Usage), raw, ui.ProgressBar(e.Usage, 100, 16)})
	}
	if top > 0 && len(st.Ranked) > top {
		t.AppendFooter(table.Row{"", fmt.Sprintf("+%d more", len(st.Ranked)-top)})
	}
	t.Render()
}

func pokemonCmd(r *runner) *cobra.Command {
	var (
		copySet  bool
		set      api.SetOptions
		evs, ivs string
	)
	cmd := &cobra.Command{
		Use:   "pokemon <format> <name>",
		Short: "Show the usage profile of one Pokémon",
		Long: `Show the usage profile of one Pokémon and its most common set.

The set flags override parts of that set, for example
  pokestats pokemon gen9ou "Great Tusk" --item Leftovers --evs 252/0/4/0/0/252 --ivs 31/0/31/31/31/31`,
		Args: exactArgs(2, "pokemon <format> <name>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := parseStatFlags(&set, evs, ivs); err != nil {
				return err
			}
			q := r.app.Query(args[0], 0, "")
			p, err := r.app.Client.Pokemon(cmd.Context(), q, args[1])
			if err != nil {
				return fmt.Errorf("pokemon %s: %w", args[1], err)
			}
			if !set.IsZero() {
				p.ShowdownSet = api.BuildSet(*p, set)
			}
			ui.Panel(cmd.OutOrStdout(), pokemonLines(p))

			if copySet {
				if r.app.Clipboard.Copy(cmd.Context(), p.ShowdownSet) {
					ui.OK("Showdown set copied to clipboard")
				} else {
					ui.Fail("could not copy the Showdown set")
				}
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.BoolVarP(&copySet, "copy", "c", false, "copy the Showdown set to the clipboard")
	f.StringVar(&set.Item, "item", "", "set item")
	f.StringVar(&set.Ability, "ability", "", "set ability")
	f.StringVar(&set.TeraType, "tera", "", "set Tera type")
	f.StringVar(&set.Nature, "nature", "", "set nature")
	f.StringVar(&evs, "evs", "", "EVs as hp/atk/def/spa/spd/spe")
	f.StringVar(&ivs, "ivs", "", "IVs as hp/atk/def/spa/spd/spe")
	f.StringArrayVar(&set.Moves, "move", nil, "set move, repeatable (max 4)")
	return cmd
}

func parseStatFlags(set *api.SetOptions, evs, ivs string) error {
	if evs != "" {
		v, err := api.ParseStatLine(evs)
		if err != nil {
			return usagef("--evs: %v", err)
		}
		set.EVs = &v
	}
	if ivs != "" {
		v, err := api.ParseStatLine(ivs)
		if err != nil {
			return usagef("--ivs: %v", err)
		}
		set.IVs = &v
	}
	return nil
}

func pokemonLines(p *model.Pokemon) []string {
	t := ui.Current()
	var tera []string
	for i, s := range p.TeraTypes {
		if i == 3 {
			break
		}
		tera = append(tera, typecolor.Badge(s.Name))
	}

	lines := []string{
		t.Title.Render(fmt.Sprintf("#%d %s", p.Rank, p.Name)) + "  " + strings.Join(tera, " "),
		fmt.Sprintf("Usage %s  Raw %s", utils.FormatPercent(p.Usage), utils.FormatNumber(p.RawCount)),
		t.Accent.Render(ui.ProgressBar(p.Usage, 100, 28)),
		t.Muted.Render(utils.ShowdownSprite(p.Name)),
		"",
	}
	section := func(title string, shares []model.Share) {
		lines = append(lines, t.Title.Render(title))
		for i, s := range shares {
			if i == 6 {
				break
			}
			lines = append(lines, fmt.Sprintf("  %s %-22s %7s", t.SymBullet, s.Name, utils.FormatPercent(s.Percentage)))
		}
	}
	section("Abilities", p.Abilities)
	section("Items", p.Items)
	section("Moves", p.Moves)

	if len(p.Teammates) > 0 {
		lines = append(lines, t.Title.Render("Teammates"))
		for i, mt := range p.Teammates {
			if i == 6 {
				break
			}
			lines = append(lines, fmt.Sprintf("  %s %s", t.SymBullet, mt.Name))
		}
	}
	if p.ShowdownSet != "" {
		lines = append(lines, "", t.Title.Render("Showdown set"), p.ShowdownSet)
	}
	return lines
}

func spriteCmd(r *runner) *cobra.Command {
	var copyURL bool
	cmd := &cobra.Command{
		Use:   "sprite <name>",
		Short: "Print sprite URLs for a Pokémon",
		Args:  exactArgs(1, "sprite <name>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			showdown := utils.ShowdownSprite(args[0])
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, showdown)
			fmt.Fprintln(out, utils.PokemonSprite(args[0]))
			if copyURL {
				if !r.app.Clipboard.Copy(cmd.Context(), showdown) {
					return fmt.Errorf("sprite: %w", utils.ErrClipboardUnavailable)
				}
				ui.OK("copied")
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&copyURL, "copy", "c", false, "copy the Showdown sprite URL")
	return cmd
}

func colorsCmd(_ *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "colors",
		Short: "Print the type colour table",
		Args:  exactArgs(0, "colors"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Type", "Colour", "Badge"})
			for _, name := range typecolor.Names() {
				c, _ := typecolor.Lookup(name)
				t.AppendRow(table.Row{name, string(c), typecolor.Badge(name)})
			}
			t.Render()
			return nil
		},
	}
}

func latestMonth(cmd *cobra.Command, r *runner) (string, error) {
	months, err := r.app.Client.Months(cmd.Context())
	if err != nil {
		return "", fmt.Errorf("months: %w", err)
	}
	if len(months) == 0 {
		return "", api.ErrNoMonths
	}
	return months[0], nil
}
