package api

import (
	"context"
	"net/http"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/idilsaglam/pokestats/internal/model"
	"github.com/idilsaglam/pokestats/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmogon_StatsURLAndProxy(t *testing.T) {
	c := NewSmogon("", DefaultProxyURL, nil, nil)

	target := c.StatsURL("gen9ou", 1825, "2025-01")
	assert.Equal(t, "https://www.smogon.com/stats/2025-01/chaos/gen9ou-1825.json", target)
	assert.Equal(t,
		"https://api.allorigins.win/raw?url=https%3A%2F%2Fwww.smogon.com%2Fstats%2F2025-01%2Fchaos%2Fgen9ou-1825.json",
		c.proxied(target))

	direct := NewSmogon("https://mirror.example/stats/", "", nil, nil)
	assert.Equal(t, "https://mirror.example/stats/2025-01/chaos/gen9ou-0.json", direct.proxied(direct.StatsURL("gen9ou", 0, "2025-01")))
}

// fakeProxy serves the stats tree behind /raw?url=..., like allorigins.
func fakeProxy(t *testing.T, hits *atomic.Int32) (string, string) {
	t.Helper()
	const statsBase = "https://stats.test/stats"
	upstream := map[string]string{
		statsBase + "/":                               indexFixture,
		statsBase + "/2025-01/chaos/":                 chaosIndexFixture,
		statsBase + "/2025-01/chaos/gen9ou-1825.json": chaosFixture,
	}

	r := chi.NewRouter()
	r.Get("/raw", func(w http.ResponseWriter, req *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		target := req.URL.Query().Get("url")
		body, ok := upstream[target]
		if !ok {
			http.NotFound(w, req)
			return
		}
		_, _ = w.Write([]byte(body))
	})
	srv := newServer(t, r)
	return statsBase, srv.URL + "/raw?url="
}

func TestSmogon_FetchStats(t *testing.T) {
	base, proxy := fakeProxy(t, nil)
	c := NewSmogon(base, proxy, nil, testutil.NewTestLogger(t))

	cs, err := c.FetchStats(context.Background(), "gen9ou", 1825, "2025-01")
	require.NoError(t, err)
	assert.Equal(t, "gen9ou", cs.Info.Metagame)
	assert.Len(t, cs.Data, 3)
}

func TestSmogon_FetchStats_HTTPError(t *testing.T) {
	base, proxy := fakeProxy(t, nil)
	c := NewSmogon(base, proxy, nil, testutil.NewTestLogger(t))

	_, err := c.FetchStats(context.Background(), "gen9ou", 9999, "2025-01")
	require.Error(t, err)

	var he *HTTPStatusError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.StatusCode)
	assert.Contains(t, err.Error(), "HTTP 404")
	assert.True(t, IsNotFound(err))
}

func TestSmogon_NetworkError(t *testing.T) {
	c := NewSmogon("http://127.0.0.1:1/stats", "", nil, testutil.NewTestLogger(t))

	_, err := c.FetchStats(context.Background(), "gen9ou", 0, "2025-01")
	var ne *NetworkError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, 0, StatusCode(err))
}

func TestSmogon_MonthsAndFormats(t *testing.T) {
	base, proxy := fakeProxy(t, nil)
	c := NewSmogon(base, proxy, nil, testutil.NewTestLogger(t))

	months, err := c.Months(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01", "2024-12", "2024-11"}, months)

	formats, err := c.Formats(context.Background(), "2025-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"gen9ou", "gen9uu"}, formats)
}

func TestSmogon_StatsResolvesLatestMonth(t *testing.T) {
	var hits atomic.Int32
	base, proxy := fakeProxy(t, &hits)
	c := NewSmogon(base, proxy, nil, testutil.NewTestLogger(t))

	st, err := c.Stats(context.Background(), model.StatsQuery{Format: "gen9ou", Rating: 1825})
	require.NoError(t, err)
	assert.Equal(t, "2025-01", st.Meta.Month)
	assert.Equal(t, int32(2), hits.Load(), "index + chaos file")

	p, err := c.Pokemon(context.Background(), model.StatsQuery{Format: "gen9ou", Rating: 1825, Month: "2025-01"}, "KINGAMBIT")
	require.NoError(t, err)
	assert.Equal(t, "Kingambit", p.Name)
	assert.Equal(t, 3, p.Rank)
}

func TestSmogon_NoMonths(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/*", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body>empty</body></html>"))
	})
	srv := newServer(t, r)
	c := NewSmogon(srv.URL, "", nil, testutil.NewTestLogger(t))

	_, err := c.Stats(context.Background(), model.StatsQuery{Format: "gen9ou"})
	assert.ErrorIs(t, err, ErrNoMonths)
}

func TestProxyEscapesWholeTarget(t *testing.T) {
	c := NewSmogon("https://x.test/s", "https://p.test/raw?url=", nil, nil)
	u, err := url.Parse(c.proxied(c.StatsURL("gen9ou", 1500, "2025-01")))
	require.NoError(t, err)
	assert.Equal(t, "https://x.test/s/2025-01/chaos/gen9ou-1500.json", u.Query().Get("url"))
}
