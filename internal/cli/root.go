// Package cli wires the pokestats subcommands onto a cobra root.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/idilsaglam/pokestats/internal/app"
	"github.com/idilsaglam/pokestats/internal/config"
	"github.com/idilsaglam/pokestats/internal/ui"
)

// Exit codes: 0 ok, 1 error, 2 usage.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// usageError marks bad arguments or flags.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

// tuiAnnotation marks commands that take over the terminal; their logs
// go to log_file instead of stderr.
const tuiAnnotation = "tui"

type runner struct {
	cfgPath    string
	forceColor bool
	noColor    bool

	appOpts []app.Option
	app     *app.App
	closer  io.Closer
}

// Run executes args and returns a process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer, opts ...app.Option) int {
	root, r := newRoot(opts...)
	defer r.close()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	ui.SetOutput(stdout, stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}
	ui.Fail(err.Error())
	var ue usageError
	if errors.As(err, &ue) {
		fmt.Fprintln(stderr, "Run 'pokestats --help' for usage.")
		return ExitUsage
	}
	return ExitError
}

func newRoot(opts ...app.Option) (*cobra.Command, *runner) {
	r := &runner{appOpts: opts}

	root := &cobra.Command{
		Use:   "pokestats",
		Short: "Browse Pokémon Showdown usage statistics",
		Long: `pokestats - Smogon usage stats in the terminal

Data comes from the Smogon stats archive (through a CORS proxy), from a
pokestats REST backend, or from the local JSON cache filled by 'sync'.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: r.setup,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("unknown command %q", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
			return usagef("missing command")
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&r.cfgPath, "config", "", "config file (default ./"+config.DefaultFileName+")")
	pf.String("client", "", "data source: smogon, rest or cache")
	pf.String("api-base", "", "REST backend base URL")
	pf.String("api-token", "", "bearer token for the REST backend")
	pf.String("stats-base", "", "Smogon stats base URL")
	pf.String("proxy-url", "", "CORS proxy prefix, empty for direct requests")
	pf.Duration("http-timeout", 0, "HTTP timeout (0 = none)")
	pf.IntP("rating", "r", 0, "rating cut-off (0 = highest for the format)")
	pf.StringP("month", "m", "", "stats month YYYY-MM (default latest)")
	pf.String("theme", "", "colour theme: classic, neon or mono")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-file", "", "write logs to this file")
	pf.String("cache-dir", "", "directory of the JSON cache")
	pf.BoolVar(&r.forceColor, "color", false, "force coloured output")
	pf.BoolVar(&r.noColor, "no-color", false, "disable colours")

	root.AddCommand(
		monthsCmd(r),
		formatsCmd(r),
		statsCmd(r),
		pokemonCmd(r),
		spriteCmd(r),
		colorsCmd(r),
		syncCmd(r),
		browseCmd(r),
		configCmd(r),
	)
	return root, r
}

// setup loads the configuration and builds the App once per run.
func (r *runner) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(r.cfgPath, configFlags(cmd))
	if err != nil {
		return usageError{err}
	}
	ui.SetTheme(cfg.Theme)
	ui.SetColorForcing(r.forceColor, r.noColor)

	logger := app.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if cmd.Annotations[tuiAnnotation] != "" || cfg.LogFile != "" {
		var closer io.Closer
		logger, closer, err = app.OpenLog(cfg)
		if err != nil {
			return err
		}
		r.closer = closer
	}

	a, err := app.New(cfg, logger, r.appOpts...)
	if err != nil {
		return usageError{err}
	}
	r.app = a
	return nil
}

func (r *runner) close() {
	if r.closer != nil {
		_ = r.closer.Close()
		r.closer = nil
	}
}

// configFlags keeps only flags that map onto configuration keys.
func configFlags(cmd *cobra.Command) *pflag.FlagSet {
	fs := pflag.NewFlagSet("config", pflag.ContinueOnError)
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		switch f.Name {
		case "config", "color", "no-color", "help", "write":
			return
		}
		fs.AddFlag(f)
	})
	return fs
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("usage: pokestats %s", usage)
		}
		return nil
	}
}
