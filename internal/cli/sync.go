package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/idilsaglam/pokestats/internal/api"
	"github.com/idilsaglam/pokestats/internal/model"
	"github.com/idilsaglam/pokestats/internal/store/jsonstore"
	"github.com/idilsaglam/pokestats/internal/ui"
)

// Reporter receives sync progress.
type Reporter interface {
	Start(total int)
	Update(current int, message string)
	Finish()
}

// NewReporter returns a progress bar when w is a terminal, and plain
// lines otherwise (pipes, buffers, CI). Quiet reports nothing.
func NewReporter(w io.Writer, quiet bool) Reporter {
	if quiet || os.Getenv("CI") != "" || !isTerminal(w) {
		return &lineReporter{w: w, quiet: quiet}
	}
	return &barReporter{w: w}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type barReporter struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func (r *barReporter) Start(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetDescription("Syncing stats"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *barReporter) Update(current int, message string) {
	if r.bar != nil {
		r.bar.Describe(message)
		_ = r.bar.Set(current)
	}
}

func (r *barReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

type lineReporter struct {
	w     io.Writer
	quiet bool
	total int
}

func (r *lineReporter) Start(total int) { r.total = total }

func (r *lineReporter) Update(current int, message string) {
	if !r.quiet {
		fmt.Fprintf(r.w, "[%d/%d] %s\n", current, r.total, message)
	}
}

func (r *lineReporter) Finish() {}

// SyncResult counts what a sync run did.
type SyncResult struct {
	Saved   int
	Skipped int
}

// Syncer downloads snapshots from a remote client into the JSON cache.
type Syncer struct {
	Client      api.Client
	Store       *jsonstore.Store
	Concurrency int
	Reporter    Reporter
}

// Run fetches every query and saves it. A 404 means the snapshot was
// never published and is skipped; any other failure aborts the run.
func (s *Syncer) Run(ctx context.Context, queries []model.StatsQuery) (SyncResult, error) {
	var (
		res  SyncResult
		mu   sync.Mutex
		done atomic.Int64
	)
	limit, report := s.Concurrency, s.Reporter
	if limit < 1 {
		limit = 1
	}
	if report == nil {
		report = &lineReporter{quiet: true}
	}

	report.Start(len(queries))
	defer report.Finish()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, q := range queries {
		g.Go(func() error {
			st, err := s.Client.Stats(ctx, q)
			saved := err == nil
			switch {
			case api.IsNotFound(err):
			case err != nil:
				return fmt.Errorf("sync %s: %w", q, err)
			default:
				fillMeta(st, q)
				if err := s.Store.Save(st); err != nil {
					return fmt.Errorf("sync %s: %w", q, err)
				}
			}

			mu.Lock()
			if saved {
				res.Saved++
			} else {
				res.Skipped++
			}
			mu.Unlock()
			report.Update(int(done.Add(1)), q.String())
			return nil
		})
	}
	err := g.Wait()
	return res, err
}

// fillMeta stamps the query on snapshots whose backend left meta empty.
func fillMeta(st *model.Stats, q model.StatsQuery) {
	if st.Meta.Format == "" {
		st.Meta.Format = q.Format
	}
	if st.Meta.Rating == 0 {
		st.Meta.Rating = model.Rating(q.Rating)
	}
	if st.Meta.Month == "" {
		st.Meta.Month = q.Month
	}
}

// expandFormats resolves glob patterns against the catalog. Plain codes
// pass through unchanged so formats outside the catalog can be synced.
func expandFormats(patterns []string) ([]string, error) {
	all := api.AllFormats()
	if len(patterns) == 0 {
		patterns = []string{"*"}
	}

	var out []string
	seen := make(map[string]bool)
	add := func(code string) {
		if !seen[code] {
			seen[code] = true
			out = append(out, code)
		}
	}
	for _, p := range patterns {
		if !strings.ContainsAny(p, "*?[{") {
			add(p)
			continue
		}
		n := len(out)
		for _, f := range all {
			ok, err := doublestar.Match(p, f.Code)
			if err != nil {
				return nil, usagef("bad format pattern %q: %v", p, err)
			}
			if ok {
				add(f.Code)
			}
		}
		if len(out) == n {
			return nil, usagef("no catalog format matches %q", p)
		}
	}
	return out, nil
}

// syncQueries expands formats x ratings for one month. An empty
// ratings list means every published cut-off of each format.
func syncQueries(month string, formats []string, ratings []int) []model.StatsQuery {
	var out []model.StatsQuery
	for _, f := range formats {
		rs := ratings
		if len(rs) == 0 {
			rs = api.Ratings(f)
		}
		for _, r := range rs {
			out = append(out, model.StatsQuery{Format: f, Rating: r, Month: month})
		}
	}
	return out
}

func syncCmd(r *runner) *cobra.Command {
	var (
		formats []string
		ratings []int
		quiet   bool
	)
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Download stats into the local JSON cache",
		Args:  exactArgs(0, "sync [--format f]... [--ratings r,...]"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := r.app
			if _, ok := a.Client.(*jsonstore.Store); ok {
				return usagef("sync needs a remote client, not %q", a.Config.Client)
			}

			month := a.Config.Month
			if month == "" {
				latest, err := latestMonth(cmd, r)
				if err != nil {
					return err
				}
				month = latest
			}
			codes, err := expandFormats(formats)
			if err != nil {
				return err
			}

			s := &Syncer{
				Client:      a.Client,
				Store:       a.Store,
				Concurrency: a.Config.Concurrency,
				Reporter:    NewReporter(cmd.ErrOrStderr(), quiet),
			}
			res, err := s.Run(cmd.Context(), syncQueries(month, codes, ratings))
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return fmt.Errorf("sync interrupted after %d snapshots", res.Saved)
				}
				return err
			}
			ui.OK(fmt.Sprintf("synced %s: %d saved, %d not published (cache %s)",
				month, res.Saved, res.Skipped, a.Config.CacheDir))
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&formats, "format", "f", nil, "formats or globs like 'gen9*' (default the whole catalog)")
	cmd.Flags().IntSliceVar(&ratings, "ratings", nil, "rating cut-offs (default each format's published ones)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "no progress output")
	cmd.Flags().Int("concurrency", 0, "parallel downloads")
	return cmd
}
