package standings

import (
	"math/rand"
	"testing"

	"github.com/Dosada05/mcr-results/matches"
	"github.com/Dosada05/mcr-results/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func final(a, b string, sa, sb int) models.CanonicalMatchResult {
	return models.CanonicalMatchResult{TeamA: a, TeamB: b, ScoreA: sa, ScoreB: sb, Status: models.StatusFinal}
}

func TestCompute_EndToEnd(t *testing.T) {
	var raw matches.RawMatch
	require.NoError(t, raw.UnmarshalJSON([]byte(`{"zapas": "Sokol A - TJ B", "skore": "55:40", "stav": "FINAL", "skupina": "A"}`)))
	c, ok := matches.Normalize(raw)
	require.True(t, ok)

	table := Compute(nil, []models.CanonicalMatchResult{*c})
	row := table.Stats["Sokol A"]
	assert.Equal(t, 1, row.Played)
	assert.Equal(t, 1, row.Wins)
	assert.Equal(t, 3, row.Points)
	assert.Equal(t, 15, row.Diff)
	assert.Equal(t, "+15", FormatDiff(row.Diff))
	assert.Equal(t, []string{"Sokol A", "TJ B"}, table.Order)
}

func TestCompute_DrawAndIgnoredRecords(t *testing.T) {
	live := final("A", "B", 10, 2)
	live.Status = models.StatusLive
	table := Compute([]string{"A", "B", "C"}, []models.CanonicalMatchResult{
		final("A", "B", 40, 40),
		live,
		final("C", "C", 10, 0),
	})

	assert.Equal(t, models.StandingsRow{Team: "A", Played: 1, Draws: 1, PointsFor: 40, PointsAgainst: 40, Points: 1}, table.Stats["A"])
	assert.Equal(t, 1, table.Stats["B"].Points)
	assert.Equal(t, 0, table.Stats["C"].Played)
	assert.Equal(t, "C", table.Order[2])
}

func TestCompute_OrderIndependent(t *testing.T) {
	games := []models.CanonicalMatchResult{
		final("Sokol A", "TJ B", 55, 40),
		final("TJ B", "BK C", 61, 59),
		final("BK C", "Sokol A", 48, 47),
		final("Lvi D", "Sokol A", 30, 70),
		final("TJ B", "Lvi D", 44, 44),
		final("BK C", "Lvi D", 52, 50),
	}
	teams := []string{"Sokol A", "TJ B", "BK C", "Lvi D"}
	want := Compute(teams, games)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 25; i++ {
		shuffled := make([]models.CanonicalMatchResult, len(games))
		copy(shuffled, games)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := Compute(teams, shuffled)
		assert.Equal(t, want.Stats, got.Stats)
		assert.Equal(t, want.Order, got.Order)
	}
}

func TestCompute_HeadToHeadCycle(t *testing.T) {
	// T1 > T2 > T3 > T1, all three beat T4. T2 has the best global diff,
	// T1 the best diff in the mutual games.
	games := []models.CanonicalMatchResult{
		final("T1", "T2", 80, 50),
		final("T2", "T3", 60, 55),
		final("T3", "T1", 62, 60),
		final("T1", "T4", 50, 49),
		final("T2", "T4", 120, 20),
		final("T3", "T4", 51, 50),
	}
	table := Compute([]string{"T1", "T2", "T3", "T4"}, games)

	for _, team := range []string{"T1", "T2", "T3"} {
		require.Equal(t, 6, table.Stats[team].Points, team)
	}
	assert.Greater(t, table.Stats["T2"].Diff, table.Stats["T1"].Diff)
	assert.Equal(t, []string{"T1", "T3", "T2", "T4"}, table.Order)
	assert.Equal(t, 1, table.Position("T1"))
	assert.Equal(t, 0, table.Position("nobody"))
}

func TestCompute_FallbackToGlobalThenName(t *testing.T) {
	// A and B never met: the mini-table is empty, so global diff decides.
	games := []models.CanonicalMatchResult{
		final("A", "C", 50, 40),
		final("B", "C", 70, 40),
	}
	table := Compute([]string{"A", "B", "C"}, games)
	assert.Equal(t, []string{"B", "A", "C"}, table.Order)

	// Identical records fall back to Czech collation: Č follows C, ch follows h.
	table = Compute([]string{"Cheb", "Hodonín", "Čáslav", "Brno"}, nil)
	assert.Equal(t, []string{"Brno", "Čáslav", "Hodonín", "Cheb"}, table.Order)
}

func TestFormatDiff(t *testing.T) {
	assert.Equal(t, "+15", FormatDiff(15))
	assert.Equal(t, "0", FormatDiff(0))
	assert.Equal(t, "-3", FormatDiff(-3))
}
