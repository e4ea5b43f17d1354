package api

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/idilsaglam/pokestats/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T) *model.ChaosStats {
	t.Helper()
	var cs model.ChaosStats
	require.NoError(t, json.Unmarshal([]byte(chaosFixture), &cs))
	return &cs
}

func TestProcess_RanksByUsage(t *testing.T) {
	st, err := Process(loadFixture(t), model.StatsQuery{Format: "gen9ou", Rating: 1825, Month: "2025-01"})
	require.NoError(t, err)

	require.Len(t, st.Ranked, 3)
	assert.Equal(t, "Great Tusk", st.Ranked[0].Name)
	assert.Equal(t, 35.12, st.Ranked[0].Usage)
	// ties broken by name
	assert.Equal(t, "Gholdengo", st.Ranked[1].Name)
	assert.Equal(t, "Kingambit", st.Ranked[2].Name)
	for i, r := range st.Ranked {
		assert.Equal(t, i+1, r.Rank)
		assert.Equal(t, r.Rank, st.Pokemon[r.Name].Rank)
	}
	assert.Equal(t, "greattusk", st.Pokemon["Great Tusk"].SpriteName)
	assert.Equal(t, model.Meta{Format: "gen9ou", Rating: 1825, Month: "2025-01"}, st.Meta)
	assert.Equal(t, int64(5000), st.Info.NumberOfBattles)
}

func TestProcess_Distributions(t *testing.T) {
	st, err := Process(loadFixture(t), model.StatsQuery{Format: "gen9ou"})
	require.NoError(t, err)
	gt := st.Pokemon["Great Tusk"]

	assert.Equal(t, []model.Share{
		{Name: "booster energy", Percentage: 60},
		{Name: "leftovers", Percentage: 30},
		{Name: "rocky helmet", Percentage: 10},
	}, gt.Items)
	assert.Equal(t, "headlongrush", gt.Moves[0].Name)
	assert.Equal(t, []model.Share{{Name: "Steel", Percentage: 50}, {Name: "Water", Percentage: 50}}, gt.TeraTypes)

	require.Len(t, gt.Spreads, 2, "unparseable spread dropped")
	assert.Equal(t, "Jolly", gt.Spreads[0].Nature)
	assert.Equal(t, 252, gt.Spreads[0].Spe)
	assert.Equal(t, 74.26, gt.Spreads[0].Percentage)

	assert.Equal(t, []model.Teammate{{Name: "Kingambit", Score: 12}, {Name: "Gholdengo", Score: 8}}, gt.Teammates)

	empty := st.Pokemon["Gholdengo"]
	assert.Empty(t, empty.Items)
	assert.Empty(t, empty.Spreads)
}

func TestProcess_NoData(t *testing.T) {
	_, err := Process(&model.ChaosStats{}, model.StatsQuery{})
	assert.ErrorIs(t, err, ErrNoData)
	_, err = Process(nil, model.StatsQuery{})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestPokemonFrom(t *testing.T) {
	st, err := Process(loadFixture(t), model.StatsQuery{Format: "gen9ou", Rating: 1825, Month: "2025-01"})
	require.NoError(t, err)

	p, err := PokemonFrom(st, "great tusk")
	require.NoError(t, err)
	assert.Equal(t, "Great Tusk", p.Name)
	assert.NotEmpty(t, p.ShowdownSet)
	require.NotNil(t, p.Meta)
	assert.Equal(t, "2025-01", p.Meta.Month)

	_, err = PokemonFrom(st, "Missingno")
	assert.True(t, errors.Is(err, ErrPokemonNotFound))
	assert.True(t, IsNotFound(err))
}

func TestParseSpread(t *testing.T) {
	sp, ok := ParseSpread("Timid:0/0/4/252/0/252")
	require.True(t, ok)
	assert.Equal(t, model.Spread{Nature: "Timid", Def: 4, SpA: 252, Spe: 252, Raw: "Timid:0/0/4/252/0/252"}, sp)

	for _, bad := range []string{"", "Timid", "Timid:1/2/3", "Timid:a/0/0/0/0/0"} {
		_, ok := ParseSpread(bad)
		assert.False(t, ok, bad)
	}
}
