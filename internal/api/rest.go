package api

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/idilsaglam/pokestats/internal/model"
)

// RESTClient talks to the first-party /api backend.
type RESTClient struct {
	BaseURL string

	http *http.Client
	log  *slog.Logger
}

func NewREST(baseURL string, hc *http.Client, log *slog.Logger) *RESTClient {
	hc, log = orDefaults(hc, log)
	if baseURL == "" {
		baseURL = DefaultAPIBase
	}
	return &RESTClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		log:     log.With("client", "rest"),
	}
}

// Get decodes the JSON body of GET {BaseURL}{endpoint} into out.
// Failures are logged and then returned.
func (c *RESTClient) Get(ctx context.Context, endpoint string, out any) error {
	u := c.BaseURL + endpoint
	if err := getJSON(ctx, c.http, u, out); err != nil {
		c.log.Error("api request failed", "endpoint", endpoint, "status", StatusCode(err), "error", err)
		return err
	}
	return nil
}

func (c *RESTClient) GetMonths(ctx context.Context) ([]string, error) {
	var m model.Months
	if err := c.Get(ctx, "/months", &m); err != nil {
		return nil, err
	}
	return m.Months, nil
}

func (c *RESTClient) GetFormats(ctx context.Context, month string) ([]string, error) {
	var f model.Formats
	if err := c.Get(ctx, "/formats/"+url.PathEscape(month), &f); err != nil {
		return nil, err
	}
	return f.Formats, nil
}

func (c *RESTClient) GetStats(ctx context.Context, format string, rating int, month string) (*model.Stats, error) {
	var st model.Stats
	if err := c.Get(ctx, "/stats/"+url.PathEscape(format)+"?"+ratingQuery(rating, month), &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (c *RESTClient) GetPokemon(ctx context.Context, format, name string, rating int, month string) (*model.Pokemon, error) {
	var p model.Pokemon
	endpoint := "/pokemon/" + url.PathEscape(format) + "/" + url.PathEscape(name) + "?" + ratingQuery(rating, month)
	if err := c.Get(ctx, endpoint, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *RESTClient) Months(ctx context.Context) ([]string, error) { return c.GetMonths(ctx) }

func (c *RESTClient) Formats(ctx context.Context, month string) ([]string, error) {
	return c.GetFormats(ctx, month)
}

func (c *RESTClient) Stats(ctx context.Context, q model.StatsQuery) (*model.Stats, error) {
	return c.GetStats(ctx, q.Format, q.Rating, q.Month)
}

func (c *RESTClient) Pokemon(ctx context.Context, q model.StatsQuery, name string) (*model.Pokemon, error) {
	return c.GetPokemon(ctx, q.Format, name, q.Rating, q.Month)
}

// ratingQuery encodes rating and, when set, month.
func ratingQuery(rating int, month string) string {
	v := url.Values{}
	v.Set("rating", strconv.Itoa(rating))
	if month != "" {
		v.Set("month", month)
	}
	return v.Encode()
}
