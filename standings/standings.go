// Package standings aggregates final results into group tables.
package standings

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Dosada05/mcr-results/models"
)

const (
	PointsWin  = 3
	PointsDraw = 1
	PointsLoss = 0
)

// Table is a ranked group table.
type Table struct {
	Order []string                        `json:"order"`
	Stats map[string]models.StandingsRow `json:"stats"`
}

// Rows returns the stats in ranking order.
func (t Table) Rows() []models.StandingsRow {
	rows := make([]models.StandingsRow, 0, len(t.Order))
	for _, name := range t.Order {
		rows = append(rows, t.Stats[name])
	}
	return rows
}

// Position returns the 1-based rank of team, or 0.
func (t Table) Position(team string) int {
	for i, name := range t.Order {
		if name == team {
			return i + 1
		}
	}
	return 0
}

// Compute replays every final once and ranks the teams. Teams seen only in
// finals are added to the table. Non-final or scoreless records are ignored.
func Compute(teams []string, finals []models.CanonicalMatchResult) Table {
	played := make([]models.CanonicalMatchResult, 0, len(finals))
	for _, m := range finals {
		if m.Status.IsTerminal() && m.TeamA != "" && m.TeamB != "" && m.TeamA != m.TeamB {
			played = append(played, m)
		}
	}

	names := make([]string, 0, len(teams))
	seen := make(map[string]bool, len(teams))
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, name := range teams {
		add(name)
	}
	for _, m := range played {
		add(m.TeamA)
		add(m.TeamB)
	}

	stats := aggregate(names, played)
	return Table{Order: rank(names, stats, played), Stats: stats}
}

func aggregate(names []string, games []models.CanonicalMatchResult) map[string]models.StandingsRow {
	stats := make(map[string]models.StandingsRow, len(names))
	for _, name := range names {
		stats[name] = models.StandingsRow{Team: name}
	}
	for _, m := range games {
		a, okA := stats[m.TeamA]
		b, okB := stats[m.TeamB]
		if !okA || !okB {
			continue
		}
		apply(&a, m.ScoreA, m.ScoreB)
		apply(&b, m.ScoreB, m.ScoreA)
		stats[m.TeamA] = a
		stats[m.TeamB] = b
	}
	return stats
}

func apply(row *models.StandingsRow, scored, conceded int) {
	row.Played++
	row.PointsFor += scored
	row.PointsAgainst += conceded
	switch {
	case scored > conceded:
		row.Wins++
		row.Points += PointsWin
	case scored < conceded:
		row.Losses++
		row.Points += PointsLoss
	default:
		row.Draws++
		row.Points += PointsDraw
	}
	row.Diff = row.PointsFor - row.PointsAgainst
}

// rank sorts by points, then breaks each tie with a mini-table built only
// from the games among the tied teams.
func rank(names []string, stats map[string]models.StandingsRow, games []models.CanonicalMatchResult) []string {
	order := make([]string, len(names))
	copy(order, names)
	sort.SliceStable(order, func(i, j int) bool {
		return stats[order[i]].Points > stats[order[j]].Points
	})

	cmp := collate.New(language.Czech)
	result := make([]string, 0, len(order))
	for start := 0; start < len(order); {
		end := start + 1
		for end < len(order) && stats[order[end]].Points == stats[order[start]].Points {
			end++
		}
		tied := order[start:end]
		if len(tied) > 1 {
			tied = breakTie(tied, stats, games, cmp)
		}
		result = append(result, tied...)
		start = end
	}
	return result
}

func breakTie(tied []string, global map[string]models.StandingsRow, games []models.CanonicalMatchResult, cmp *collate.Collator) []string {
	in := make(map[string]bool, len(tied))
	for _, name := range tied {
		in[name] = true
	}
	mutual := make([]models.CanonicalMatchResult, 0)
	for _, m := range games {
		if in[m.TeamA] && in[m.TeamB] {
			mutual = append(mutual, m)
		}
	}
	mini := aggregate(tied, mutual)

	out := make([]string, len(tied))
	copy(out, tied)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		ma, mb := mini[a], mini[b]
		if ma.Points != mb.Points {
			return ma.Points > mb.Points
		}
		if ma.Diff != mb.Diff {
			return ma.Diff > mb.Diff
		}
		if ma.PointsFor != mb.PointsFor {
			return ma.PointsFor > mb.PointsFor
		}
		ga, gb := global[a], global[b]
		if ga.Diff != gb.Diff {
			return ga.Diff > gb.Diff
		}
		if ga.PointsFor != gb.PointsFor {
			return ga.PointsFor > gb.PointsFor
		}
		return cmp.CompareString(a, b) < 0
	})
	return out
}
