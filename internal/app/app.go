// Package app builds the shared object graph once at start-up: the
// data client, toast notifier, clipboard and logger. Commands and the
// TUI receive the *App by reference instead of reaching for globals.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/idilsaglam/pokestats/internal/api"
	"github.com/idilsaglam/pokestats/internal/config"
	"github.com/idilsaglam/pokestats/internal/model"
	"github.com/idilsaglam/pokestats/internal/sched"
	"github.com/idilsaglam/pokestats/internal/store/jsonstore"
	"github.com/idilsaglam/pokestats/internal/toast"
	"github.com/idilsaglam/pokestats/internal/utils"
)

type App struct {
	Config    *config.Config
	Client    api.Client
	Store     *jsonstore.Store
	Notifier  *toast.Notifier
	Clipboard *utils.Clipboard
	Clock     sched.Clock
	Logger    *slog.Logger
}

// Option tweaks New; tests use it to swap the clock or HTTP client.
type Option func(*options)

type options struct {
	clock sched.Clock
	http  *http.Client
	term  io.Writer
	clip  *utils.Clipboard
}

func WithClock(c sched.Clock) Option       { return func(o *options) { o.clock = c } }
func WithHTTPClient(hc *http.Client) Option { return func(o *options) { o.http = hc } }
func WithTerminal(w io.Writer) Option       { return func(o *options) { o.term = w } }

// WithClipboard replaces the system clipboard.
func WithClipboard(c *utils.Clipboard) Option { return func(o *options) { o.clip = c } }

func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*App, error) {
	o := options{clock: sched.Real(), term: os.Stderr}
	for _, fn := range opts {
		fn(&o)
	}
	if o.http == nil {
		o.http = &http.Client{Timeout: cfg.HTTPTimeout}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if o.clip == nil {
		o.clip = utils.NewClipboard(o.term, logger)
	}

	store := jsonstore.New(cfg.CacheDir)
	client, err := NewClient(cfg, store, o.http, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:    cfg,
		Client:    client,
		Store:     store,
		Notifier:  toast.New(o.clock),
		Clipboard: o.clip,
		Clock:     o.clock,
		Logger:    logger,
	}, nil
}

// NewClient picks the data client named by cfg.Client.
func NewClient(cfg *config.Config, store *jsonstore.Store, hc *http.Client, logger *slog.Logger) (api.Client, error) {
	if strings.EqualFold(cfg.Client, "cache") {
		return store, nil
	}
	return api.New(api.Variant(cfg.Client), api.Endpoints{
		APIBase:   cfg.APIBase,
		StatsBase: cfg.StatsBase,
		ProxyURL:  cfg.ProxyURL,
		APIToken:  cfg.APIToken,
	}, hc, logger)
}

// Query fills rating and month from the configuration when unset.
// A zero configured rating means the highest cut-off of the format.
func (a *App) Query(format string, rating int, month string) model.StatsQuery {
	if rating <= 0 {
		rating = a.Config.Rating
	}
	if rating <= 0 {
		rating = api.TopRating(format)
	}
	if month == "" {
		month = a.Config.Month
	}
	return model.StatsQuery{Format: format, Rating: rating, Month: month}
}

// Notify shows a toast with the configured duration.
func (a *App) Notify(text string, kind toast.Kind) string {
	return a.Notifier.Show(text, kind, a.Config.ToastDuration)
}

// NewLogger returns a text logger at level writing to w.
func NewLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// OpenLog opens cfg.LogFile for appending. Without a log file it
// returns a discarding logger, so a full-screen UI is never drawn over.
func OpenLog(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	if cfg.LogFile == "" {
		return slog.New(slog.DiscardHandler), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return NewLogger(f, cfg.LogLevel), f, nil
}
