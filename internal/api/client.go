// Package api wraps the two usage-statistics sources behind one Client:
// the Smogon stats mirror reached through a CORS proxy, and the
// first-party /api backend.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/idilsaglam/pokestats/internal/model"
)

// Client is the data-access contract the CLI and TUI depend on.
type Client interface {
	Months(ctx context.Context) ([]string, error)
	Formats(ctx context.Context, month string) ([]string, error)
	Stats(ctx context.Context, q model.StatsQuery) (*model.Stats, error)
	Pokemon(ctx context.Context, q model.StatsQuery, name string) (*model.Pokemon, error)
}

// Variant names a Client implementation.
type Variant string

const (
	VariantREST   Variant = "rest"
	VariantSmogon Variant = "smogon"
)

// Endpoints are the base URLs both variants build requests from.
type Endpoints struct {
	APIBase   string
	StatsBase string
	ProxyURL  string
	// APIToken is sent as a bearer token to the REST backend only.
	APIToken  string
}

// Default endpoints.
const (
	DefaultAPIBase   = "/api"
	DefaultStatsBase = "https://www.smogon.com/stats"
	DefaultProxyURL  = "https://api.allorigins.win/raw?url="
)

// New builds the Client for v. A nil hc uses a client without timeout.
func New(v Variant, ep Endpoints, hc *http.Client, log *slog.Logger) (Client, error) {
	switch Variant(strings.ToLower(string(v))) {
	case VariantREST, "":
		hc, log = orDefaults(hc, log)
		return NewREST(ep.APIBase, WithBearer(hc, ep.APIToken), log), nil
	case VariantSmogon:
		return NewSmogon(ep.StatsBase, ep.ProxyURL, hc, log), nil
	default:
		return nil, fmt.Errorf("unknown client variant %q (want rest or smogon)", v)
	}
}

func orDefaults(hc *http.Client, log *slog.Logger) (*http.Client, *slog.Logger) {
	if hc == nil {
		hc = &http.Client{}
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return hc, log
}
