package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

const chaosFixture = `{
  "info": {"metagame": "gen9ou", "cutoff": 1825, "number of battles": 5000},
  "data": {
    "Great Tusk": {
      "Raw count": 4000, "usage": 0.3512,
      "Abilities": {"protosynthesis": 3},
      "Items": {"booster energy": 60, "leftovers": 30, "rocky helmet": 10},
      "Moves": {"headlongrush": 90, "rapidspin": 80, "icespinner": 50, "knockoff": 40, "bulkup": 5},
      "Spreads": {"Jolly:0/252/4/0/0/252": 75, "Impish:252/0/252/0/4/0": 25, "broken": 1},
      "Teammates": {"Kingambit": 0.12, "Gholdengo": 0.08, "Pikachu": -0.01},
      "Tera Types": {"Steel": 50, "Water": 50}
    },
    "Kingambit": {
      "Raw count": 3800, "usage": 0.29,
      "Abilities": {"supremeoverlord": 1},
      "Items": {"leftovers": 1},
      "Moves": {"kowtowcleave": 1},
      "Spreads": {"Adamant:252/252/0/0/4/0": 1},
      "Teammates": {},
      "Tera Types": {"Dark": 1}
    },
    "Gholdengo": {"Raw count": 3000, "usage": 0.29}
  }
}`

const indexFixture = `<html><body><pre>
<a href="../">../</a>
<a href="2024-11/">2024-11/</a>
<a href="2025-01/">2025-01/</a>
<a href="2024-12/">2024-12/</a>
<a href="2025-01/">2025-01/</a>
<a href="README.txt">README.txt</a>
</pre></body></html>`

const chaosIndexFixture = `<html><body><pre>
<a href="gen9ou-0.json">gen9ou-0.json</a>
<a href="gen9ou-1825.json">gen9ou-1825.json</a>
<a href="gen9uu-1500.json">gen9uu-1500.json</a>
<a href="notes.txt">notes.txt</a>
</pre></body></html>`

func newServer(t *testing.T, r chi.Router) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
