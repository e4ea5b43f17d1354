package api

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/idilsaglam/pokestats/internal/model"
	"github.com/idilsaglam/pokestats/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI mimics the first-party backend and records the raw queries.
func fakeAPI(t *testing.T, queries *[]string) string {
	t.Helper()
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/months", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, `{"months":["2025-01","2024-12"]}`)
		})
		r.Get("/formats/{month}", func(w http.ResponseWriter, req *http.Request) {
			if chi.URLParam(req, "month") != "2025-01" {
				writeJSON(w, http.StatusOK, `{"formats":[]}`)
				return
			}
			writeJSON(w, http.StatusOK, `{"formats":["gen9ou","gen9uu"]}`)
		})
		r.Get("/stats/{format}", func(w http.ResponseWriter, req *http.Request) {
			*queries = append(*queries, req.URL.RawQuery)
			if chi.URLParam(req, "format") == "gen1ou" {
				writeJSON(w, http.StatusNotFound, `{"error":"not found"}`)
				return
			}
			writeJSON(w, http.StatusOK, `{
			  "info": {"metagame": "gen9ou"},
			  "pokemon": {"Great Tusk": {"name": "Great Tusk", "usage": 35.12, "rank": 1}},
			  "ranked_list": [{"name": "Great Tusk", "usage": 35.12, "rank": 1, "sprite_name": "greattusk"}],
			  "meta": {"format": "gen9ou", "rating": "1825", "month": "2025-01"}
			}`)
		})
		r.Get("/pokemon/{format}/{name}", func(w http.ResponseWriter, req *http.Request) {
			*queries = append(*queries, req.URL.RawQuery)
			if chi.URLParam(req, "name") != "Great Tusk" {
				writeJSON(w, http.StatusNotFound, `{"error":"not found"}`)
				return
			}
			writeJSON(w, http.StatusOK, `{"name": "Great Tusk", "rank": 1, "showdown_set": "Great Tusk @ Booster Energy",
			  "meta": {"format": "gen9ou", "rating": "1760", "month": "2025-01"}}`)
		})
		r.Get("/broken", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusInternalServerError, `{"error":"boom"}`)
		})
	})
	return newServer(t, r).URL + "/api"
}

func TestREST_GetMonthsAndFormats(t *testing.T) {
	var q []string
	c := NewREST(fakeAPI(t, &q), nil, testutil.NewTestLogger(t))

	months, err := c.GetMonths(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01", "2024-12"}, months)

	formats, err := c.Formats(context.Background(), "2025-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"gen9ou", "gen9uu"}, formats)
}

func TestREST_GetStats_Query(t *testing.T) {
	var q []string
	c := NewREST(fakeAPI(t, &q), nil, testutil.NewTestLogger(t))

	st, err := c.GetStats(context.Background(), "gen9ou", 1825, "")
	require.NoError(t, err)
	assert.Equal(t, model.Rating(1825), st.Meta.Rating)
	require.Len(t, st.Ranked, 1)
	assert.Equal(t, "greattusk", st.Ranked[0].SpriteName)

	_, err = c.Stats(context.Background(), model.StatsQuery{Format: "gen9ou", Rating: 1500, Month: "2024-12"})
	require.NoError(t, err)

	assert.Equal(t, []string{"rating=1825", "month=2024-12&rating=1500"}, q)
}

func TestREST_GetPokemon_EscapesName(t *testing.T) {
	var q []string
	c := NewREST(fakeAPI(t, &q), nil, testutil.NewTestLogger(t))

	p, err := c.Pokemon(context.Background(), model.StatsQuery{Format: "gen9ou", Rating: 1760}, "Great Tusk")
	require.NoError(t, err)
	assert.Equal(t, "Great Tusk @ Booster Energy", p.ShowdownSet)
	require.NotNil(t, p.Meta)
	assert.Equal(t, model.Rating(1760), p.Meta.Rating)
	assert.Equal(t, []string{"rating=1760"}, q)

	_, err = c.GetPokemon(context.Background(), "gen9ou", "Missingno", 1760, "")
	assert.True(t, IsNotFound(err))
}

func TestREST_ErrorsAreLoggedThenReturned(t *testing.T) {
	var q []string
	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, nil))
	c := NewREST(fakeAPI(t, &q), nil, log)

	var out map[string]any
	err := c.Get(context.Background(), "/broken", &out)
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
	assert.Contains(t, logs.String(), "api request failed")
	assert.Contains(t, logs.String(), "endpoint=/broken")
	assert.Contains(t, logs.String(), "status=500")

	_, err = c.GetStats(context.Background(), "gen1ou", 0, "")
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
}

func TestREST_DecodeError(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/months", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `not json`)
	})
	c := NewREST(newServer(t, r).URL+"/api/", nil, testutil.NewTestLogger(t))

	_, err := c.GetMonths(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestNew_SelectsVariant(t *testing.T) {
	ep := Endpoints{APIBase: "/api", StatsBase: DefaultStatsBase, ProxyURL: DefaultProxyURL}

	c, err := New(VariantREST, ep, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &RESTClient{}, c)

	c, err = New("SMOGON", ep, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &SmogonClient{}, c)

	c, err = New("", ep, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &RESTClient{}, c)

	_, err = New("graphql", ep, nil, nil)
	assert.Error(t, err)
}
