package models

import (
	"encoding/json"
	"strings"
)

type MatchStatus string

const (
	StatusScheduled MatchStatus = "Scheduled"
	StatusLive      MatchStatus = "Live"
	StatusFinal     MatchStatus = "Final"
	StatusPostponed MatchStatus = "Postponed"
)

// IsTerminal reports whether the result is official and complete.
func (s MatchStatus) IsTerminal() bool {
	return s == StatusFinal
}

// Badge returns the short label shown next to a match row.
func (s MatchStatus) Badge() string {
	switch s {
	case StatusFinal:
		return "FIN"
	case StatusLive:
		return "LIVE"
	case StatusPostponed:
		return "POSTPONED"
	default:
		return "SCHEDULED"
	}
}

// CanonicalMatchResult is a match result normalized into one shape regardless of the
// source feed. Present only when a team pair was parsed and both scores are known.
type CanonicalMatchResult struct {
	MatchID string      `json:"match_id,omitempty"`
	TeamA   string      `json:"team_a"`
	TeamB   string      `json:"team_b"`
	ScoreA  int         `json:"score_a"`
	ScoreB  int         `json:"score_b"`
	Status  MatchStatus `json:"status"`
	Group   string      `json:"group,omitempty"`
}

// ScheduledMatch is one row of the schedule (rozpis.json).
type ScheduledMatch struct {
	ID               string `json:"id,omitempty"`
	Day              string `json:"day"`
	Time             string `json:"time"`
	Hall             string `json:"hall"`
	Group            string `json:"group,omitempty"`
	Phase            string `json:"phase,omitempty"`
	ParticipantsText string `json:"participants_text"`
}

// UnmarshalJSON reads both the Czech field names used by the published data files
// (cas, hala, zapas, skupina, faze) and their English equivalents.
func (m *ScheduledMatch) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	pick := func(keys ...string) string {
		for _, k := range keys {
			if v, ok := raw[k]; ok {
				if s, err := flexibleString(v); err == nil && s != "" {
					return s
				}
			}
		}
		return ""
	}
	m.ID = pick("id")
	m.Day = pick("day", "den")
	m.Time = pick("cas", "time")
	m.Hall = pick("hala", "hall")
	m.Group = strings.ToUpper(pick("skupina", "group"))
	m.Phase = pick("faze", "phase")
	m.ParticipantsText = pick("zapas", "match", "title", "participants_text")
	return nil
}
