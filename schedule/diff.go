// Package schedule compares schedule snapshots and builds the per-day view.
package schedule

import (
	"strings"

	"github.com/Dosada05/mcr-results/models"
	"github.com/Dosada05/mcr-results/teams"
)

// Key identifies a match across snapshots: its id, or a content key built from
// day, hall and participants. Time is left out so that a moved match keeps its key.
func Key(m models.ScheduledMatch) string {
	if id := strings.TrimSpace(m.ID); id != "" {
		return id
	}
	hall := strings.Join(strings.Fields(strings.ToLower(m.Hall)), "")
	return m.Day + "|" + hall + "|" + teams.NormalizeName(strings.Join(strings.Fields(m.ParticipantsText), " "))
}

func rows(s *models.Schedule) []models.ScheduledMatch {
	if s == nil {
		return nil
	}
	return append(s.All(), s.Playoff...)
}

// Diff reports matches present in both snapshots whose time differs. Added or
// removed matches are ignored. Output follows the order of next.
func Diff(prev, next *models.Schedule) []models.TimeChange {
	before := make(map[string]string)
	for _, m := range rows(prev) {
		before[Key(m)] = strings.TrimSpace(m.Time)
	}

	changes := make([]models.TimeChange, 0)
	seen := make(map[string]bool)
	for _, m := range rows(next) {
		key := Key(m)
		if seen[key] {
			continue
		}
		seen[key] = true

		old, ok := before[key]
		now := strings.TrimSpace(m.Time)
		if !ok || old == now {
			continue
		}
		changes = append(changes, models.TimeChange{
			MatchKey:     key,
			Label:        m.ParticipantsText,
			PreviousTime: old,
			NewTime:      now,
		})
	}
	return changes
}
