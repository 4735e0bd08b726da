package matches

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Dosada05/mcr-results/models"
)

// NormalizeStatus maps a free-text status onto the four known states.
// FIN and FINAL are terminal, LIVE is in progress, POSTPONED is its own
// non-terminal state and anything else counts as scheduled.
func NormalizeStatus(s string) models.MatchStatus {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FIN", "FINAL":
		return models.StatusFinal
	case "LIVE":
		return models.StatusLive
	case "POSTPONED":
		return models.StatusPostponed
	default:
		return models.StatusScheduled
	}
}

// Normalize turns a raw record into its canonical form. It returns false when the
// label does not split into exactly two teams or no strategy finds a score; such
// records stay out of standings and brackets.
func Normalize(r RawMatch) (*models.CanonicalMatchResult, bool) {
	pair, ok := ParseTeams(r.Label)
	if !ok {
		return nil, false
	}
	score, _, ok := ExtractScore(r)
	if !ok {
		return nil, false
	}
	return &models.CanonicalMatchResult{
		MatchID: r.ID,
		TeamA:   pair.TeamA,
		TeamB:   pair.TeamB,
		ScoreA:  score.A,
		ScoreB:  score.B,
		Status:  NormalizeStatus(r.Status),
		Group:   strings.ToUpper(strings.TrimSpace(r.Group)),
	}, true
}

// Canonicalize renders a canonical result back into the raw feed shape, so that
// Normalize(Canonicalize(c)) yields c again.
func Canonicalize(c models.CanonicalMatchResult) RawMatch {
	skore, _ := json.Marshal(fmt.Sprintf("%d:%d", c.ScoreA, c.ScoreB))
	return RawMatch{
		ID:     c.MatchID,
		Label:  c.TeamA + " - " + c.TeamB,
		Group:  c.Group,
		Status: statusText(c.Status),
		Fields: map[string]json.RawMessage{"skore": skore},
	}
}

func statusText(s models.MatchStatus) string {
	switch s {
	case models.StatusFinal:
		return "FINAL"
	case models.StatusLive:
		return "LIVE"
	case models.StatusPostponed:
		return "POSTPONED"
	default:
		return "SCHEDULED"
	}
}

// FinalsOnly keeps the results whose status is terminal.
func FinalsOnly(results []models.CanonicalMatchResult) []models.CanonicalMatchResult {
	out := make([]models.CanonicalMatchResult, 0, len(results))
	for _, r := range results {
		if r.Status.IsTerminal() {
			out = append(out, r)
		}
	}
	return out
}
