package matches

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractScore_Strategies(t *testing.T) {
	cases := []struct {
		name     string
		doc      string
		want     Score
		strategy string
	}{
		{"quarter pairs use last cumulative entry", `{"quarters": [[12, 10], [25, 30], [50, 49]]}`, Score{50, 49}, "quarters"},
		{"quarter strings", `{"quarters": ["12:10", "10:12", "50 : 49"]}`, Score{50, 49}, "quarters"},
		{"quarter objects a/b", `{"quarters": [{"a": 1, "b": 2}, {"a": 44, "b": 40}]}`, Score{44, 40}, "quarters"},
		{"quarter objects home/away", `{"quarters": [{"home": 60, "away": 58}]}`, Score{60, 58}, "quarters"},
		{"quarter objects numeric strings", `{"quarters": [{"scoreA": "33", "scoreB": "31"}]}`, Score{33, 31}, "quarters"},
		{"quarter object with text value", `{"quarters": [{"label": "Q4", "stav": "70:66"}]}`, Score{70, 66}, "quarters"},
		{"quarters as string", `{"quarters": "51-47"}`, Score{51, 47}, "quarters"},
		{"skore field", `{"skore": "55:40"}`, Score{55, 40}, "score-field"},
		{"result field with dash", `{"result": "61 - 59"}`, Score{61, 59}, "score-field"},
		{"nested score text", `{"score": {"text": "48:50"}}`, Score{48, 50}, "nested"},
		{"nested final text", `{"final": {"text": "12:3"}}`, Score{12, 3}, "nested"},
		{"quarters win over score field", `{"quarters": [[20, 10]], "skore": "1:1"}`, Score{20, 10}, "quarters"},
		{"broken quarters fall through", `{"quarters": [[20]], "skore": "3:1"}`, Score{3, 1}, "score-field"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, strategy, ok := ExtractScore(rawFrom(t, tc.doc))
			require.True(t, ok)
			assert.Equal(t, tc.want, s)
			assert.Equal(t, tc.strategy, strategy)
		})
	}
}

func TestExtractScore_NoScore(t *testing.T) {
	for _, doc := range []string{
		`{}`,
		`{"quarters": []}`,
		`{"quarters": [[-1, 4]]}`,
		`{"quarters": [[10.5, 4]]}`,
		`{"skore": "—"}`,
		`{"skore": 55}`,
	} {
		_, _, ok := ExtractScore(rawFrom(t, doc))
		assert.False(t, ok, doc)
	}
}

func TestParseScoreString_DigitBoundaries(t *testing.T) {
	s, ok := ParseScoreString("konečný stav 72:68")
	require.True(t, ok)
	assert.Equal(t, Score{72, 68}, s)

	s, ok = ParseScoreString("(55-40)")
	require.True(t, ok)
	assert.Equal(t, Score{55, 40}, s)

	_, ok = ParseScoreString("1000:50")
	assert.False(t, ok, "four-digit tallies are not truncated")

	_, ok = ParseScoreString("50:1000")
	assert.False(t, ok)
}
