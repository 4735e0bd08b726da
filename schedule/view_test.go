package schedule

import (
	"testing"

	"github.com/Dosada05/mcr-results/matches"
	"github.com/Dosada05/mcr-results/teams"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const viewSchedule = `{
	"patek": [
		{"id": "1", "cas": "09:00", "hala": "Hala 1", "zapas": "Sokol Kolín - BK Děčín", "skupina": "A"},
		{"id": "2", "cas": "10:30", "hala": "Hala 1", "zapas": "TJ Slavoj - Sokol Kolín"},
		{"id": "3", "cas": "", "hala": "", "zapas": "neplatný zápis"}
	],
	"sobota": [],
	"nedele": [],
	"playoff": [{"id": "QF1", "cas": "09:00", "hala": "Hala 1", "zapas": "1A - 4B", "faze": "QF"}]
}`

const viewResults = `{"games": {
	"1": {"quarters": ["12:10", "30:22", "44:35", "61:50"], "skore": "60:50", "stav": "FIN"},
	"2": {"skore": "20:18", "stav": "LIVE"}
}}`

func newBuilder(t *testing.T) *Builder {
	t.Helper()
	list, err := teams.Parse([]byte(`[
		{"id": 1, "name": "Sokol Kolín", "seed": "A1", "group": "A"},
		{"id": 2, "name": "BK Děčín", "seed": "A2", "group": "A"}
	]`))
	require.NoError(t, err)
	res, err := matches.ParseResults([]byte(viewResults))
	require.NoError(t, err)
	return &Builder{
		Directory: teams.NewDirectory(list),
		Results:   res,
		DayDates:  map[string]string{"patek": "2026-04-24"},
	}
}

func TestBuild_Rows(t *testing.T) {
	view := newBuilder(t).Build(parseSchedule(t, viewSchedule), ViewContext{ActiveDay: "patek"})

	require.Len(t, view.Days, 3)
	friday := view.Days[0]
	assert.True(t, friday.Active)
	assert.Equal(t, "2026-04-24", friday.Date)
	require.Len(t, friday.Rows, 3)

	first := friday.Rows[0]
	assert.Equal(t, "61:50", first.Score, "final quarter tally wins over the score field")
	assert.Equal(t, "FIN", first.Status)
	assert.Equal(t, "tymy.html#team-1", first.TeamAHref)
	assert.Equal(t, "tymy.html#team-2", first.TeamBHref)

	second := friday.Rows[1]
	assert.Equal(t, "20:18", second.Score)
	assert.True(t, second.Live)
	assert.Empty(t, second.TeamAHref, "unknown team is plain text")
	assert.Equal(t, "tymy.html#team-1", second.TeamBHref)

	broken := friday.Rows[2]
	assert.Equal(t, Placeholder, broken.TeamA)
	assert.Equal(t, Placeholder, broken.TeamB)
	assert.Equal(t, Placeholder, broken.Time)
	assert.Equal(t, Placeholder, broken.Hall)
	assert.Equal(t, Placeholder, broken.Score)
	assert.Equal(t, "SCHEDULED", broken.Status)

	require.Len(t, view.Playoff, 1)
	assert.Empty(t, view.Playoff[0].TeamAHref, "seed placeholders are never links")
	assert.Equal(t, "1A", view.Playoff[0].TeamA)
}

func TestBuild_FilterAndFocus(t *testing.T) {
	view := newBuilder(t).Build(parseSchedule(t, viewSchedule), ViewContext{TeamFilter: "sokol kolin", FocusMatchID: "2"})

	rows := view.Days[0].Rows
	require.Len(t, rows, 2)
	assert.False(t, rows[0].Focus)
	assert.True(t, rows[1].Focus)
	assert.Empty(t, view.Playoff)
	assert.False(t, view.Days[0].Active)
}

func TestRow_GuessesGroupAndDerivesKey(t *testing.T) {
	s := parseSchedule(t, `{"patek": [{"cas": "09:00", "hala": "Hala 2", "zapas": "A1 - A3", "faze": "Skupina"}], "sobota": [], "nedele": []}`)
	b := &Builder{DayDates: map[string]string{"patek": "2026-04-24"}}

	row := b.Row(s.Days["patek"][0])
	assert.Equal(t, "A", row.Group)
	assert.Equal(t, "2026-04-24_09-00_hala2_skupina", row.Key)
	assert.Empty(t, row.TeamAHref)
}
