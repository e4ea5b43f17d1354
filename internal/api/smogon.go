package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/idilsaglam/pokestats/internal/model"
)

// SmogonClient reads chaos files from the Smogon stats mirror. When
// ProxyURL is set every request is relayed through it.
type SmogonClient struct {
	BaseURL  string
	ProxyURL string

	http *http.Client
	log  *slog.Logger
}

func NewSmogon(baseURL, proxyURL string, hc *http.Client, log *slog.Logger) *SmogonClient {
	hc, log = orDefaults(hc, log)
	if baseURL == "" {
		baseURL = DefaultStatsBase
	}
	return &SmogonClient{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		ProxyURL: proxyURL,
		http:     hc,
		log:      log.With("client", "smogon"),
	}
}

// StatsURL is the chaos file location for a format/rating/month.
func (c *SmogonClient) StatsURL(format string, rating int, month string) string {
	return fmt.Sprintf("%s/%s/chaos/%s-%d.json", c.BaseURL, month, format, rating)
}

// proxied wraps target in the proxy URL, escaping it as one query value.
func (c *SmogonClient) proxied(target string) string {
	if c.ProxyURL == "" {
		return target
	}
	return c.ProxyURL + url.QueryEscape(target)
}

// FetchStats downloads one raw chaos document.
func (c *SmogonClient) FetchStats(ctx context.Context, format string, rating int, month string) (*model.ChaosStats, error) {
	var cs model.ChaosStats
	if err := getJSON(ctx, c.http, c.proxied(c.StatsURL(format, rating, month)), &cs); err != nil {
		return nil, err
	}
	return &cs, nil
}

// Months lists the YYYY-MM directories of the stats index, newest first.
func (c *SmogonClient) Months(ctx context.Context) ([]string, error) {
	body, err := getBody(ctx, c.http, c.proxied(c.BaseURL+"/"))
	if err != nil {
		return nil, err
	}
	months, err := parseMonths(body)
	if err != nil {
		return nil, err
	}
	c.log.Debug("months listed", "count", len(months))
	return months, nil
}

// Formats lists the format codes that have chaos files in month.
func (c *SmogonClient) Formats(ctx context.Context, month string) ([]string, error) {
	body, err := getBody(ctx, c.http, c.proxied(fmt.Sprintf("%s/%s/chaos/", c.BaseURL, month)))
	if err != nil {
		return nil, err
	}
	return parseFormats(body)
}

// Stats fetches and processes one snapshot. An empty month resolves to
// the latest listed month.
func (c *SmogonClient) Stats(ctx context.Context, q model.StatsQuery) (*model.Stats, error) {
	month, err := c.resolveMonth(ctx, q.Month)
	if err != nil {
		return nil, err
	}
	raw, err := c.FetchStats(ctx, q.Format, q.Rating, month)
	if err != nil {
		return nil, err
	}
	q.Month = month
	return Process(raw, q)
}

// Pokemon returns one species from a snapshot, matched case-insensitively.
func (c *SmogonClient) Pokemon(ctx context.Context, q model.StatsQuery, name string) (*model.Pokemon, error) {
	st, err := c.Stats(ctx, q)
	if err != nil {
		return nil, err
	}
	return PokemonFrom(st, name)
}

func (c *SmogonClient) resolveMonth(ctx context.Context, month string) (string, error) {
	if month != "" {
		return month, nil
	}
	months, err := c.Months(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve latest month: %w", err)
	}
	if len(months) == 0 {
		return "", ErrNoMonths
	}
	return months[0], nil
}
