package matches

import (
	"encoding/json"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var scoreRe = regexp.MustCompile(`(?:^|\D)(\d{1,3})\s*[:\-]\s*(\d{1,3})(?:\D|$)`)

// Score is a final tally for the two sides of a match.
type Score struct {
	A int
	B int
}

func (s Score) String() string {
	return strconv.Itoa(s.A) + ":" + strconv.Itoa(s.B)
}

// ScoreStrategy extracts a score from one known place in a raw record.
type ScoreStrategy struct {
	Name    string
	Extract func(RawMatch) (Score, bool)
}

// ScoreStrategies are tried in this order; the first one that yields a score wins.
var ScoreStrategies = []ScoreStrategy{
	{Name: "quarters", Extract: scoreFromQuarters},
	{Name: "score-field", Extract: scoreFromFields},
	{Name: "nested", Extract: scoreFromNested},
}

// ExtractScore runs the strategies in priority order and reports which one matched.
func ExtractScore(r RawMatch) (Score, string, bool) {
	for _, st := range ScoreStrategies {
		if s, ok := st.Extract(r); ok {
			return s, st.Name, true
		}
	}
	return Score{}, "", false
}

// ParseScoreString finds a "NN:NN" or "NN-NN" tally anywhere in s.
func ParseScoreString(s string) (Score, bool) {
	m := scoreRe.FindStringSubmatch(s)
	if m == nil {
		return Score{}, false
	}
	a, errA := strconv.Atoi(m[1])
	b, errB := strconv.Atoi(m[2])
	if errA != nil || errB != nil {
		return Score{}, false
	}
	return Score{A: a, B: b}, true
}

var quarterKeyPairs = [][2]string{
	{"a", "b"},
	{"A", "B"},
	{"home", "away"},
	{"h", "a"},
	{"scoreA", "scoreB"},
	{"pf", "pa"},
}

// scoreFromQuarters reads the last element of a quarter series. The series is
// cumulative, so its last entry is the final tally.
func scoreFromQuarters(r RawMatch) (Score, bool) {
	q := r.Quarters
	if len(q) == 0 || string(q) == "null" {
		return Score{}, false
	}

	var s string
	if err := json.Unmarshal(q, &s); err == nil {
		return ParseScoreString(s)
	}

	var series []json.RawMessage
	if err := json.Unmarshal(q, &series); err != nil || len(series) == 0 {
		return Score{}, false
	}
	last := series[len(series)-1]

	if err := json.Unmarshal(last, &s); err == nil {
		return ParseScoreString(s)
	}

	var pair []json.RawMessage
	if err := json.Unmarshal(last, &pair); err == nil {
		if len(pair) < 2 {
			return Score{}, false
		}
		a, okA := scoreNumber(pair[0])
		b, okB := scoreNumber(pair[1])
		if okA && okB {
			return Score{A: a, B: b}, true
		}
		return Score{}, false
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(last, &obj); err != nil {
		return Score{}, false
	}
	for _, kp := range quarterKeyPairs {
		a, okA := scoreNumber(obj[kp[0]])
		b, okB := scoreNumber(obj[kp[1]])
		if okA && okB {
			return Score{A: a, B: b}, true
		}
	}
	// any "X:Y" string value, keys visited in sorted order
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := json.Unmarshal(obj[k], &s); err == nil {
			if sc, ok := ParseScoreString(s); ok {
				return sc, true
			}
		}
	}
	return Score{}, false
}

var scoreFieldKeys = []string{"score", "skore", "vysledek", "result", "finalScore", "fulltime", "ft"}

func scoreFromFields(r RawMatch) (Score, bool) {
	for _, k := range scoreFieldKeys {
		var s string
		if err := json.Unmarshal(r.Fields[k], &s); err != nil {
			continue
		}
		if sc, ok := ParseScoreString(s); ok {
			return sc, true
		}
	}
	return Score{}, false
}

var nestedScorePaths = [][2]string{
	{"score", "text"},
	{"score", "final"},
	{"result", "text"},
	{"final", "text"},
}

func scoreFromNested(r RawMatch) (Score, bool) {
	for _, p := range nestedScorePaths {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(r.Fields[p[0]], &obj); err != nil {
			continue
		}
		var s string
		if err := json.Unmarshal(obj[p[1]], &s); err != nil {
			continue
		}
		if sc, ok := ParseScoreString(s); ok {
			return sc, true
		}
	}
	return Score{}, false
}

// scoreNumber accepts a non-negative integer given as a JSON number or numeric string.
func scoreNumber(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false
		}
		if f, err = strconv.ParseFloat(s, 64); err != nil {
			return 0, false
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
