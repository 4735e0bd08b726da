// Package brackets resolves the fixed play-off template and the group
// round-robin pairings.
package brackets

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Dosada05/mcr-results/matches"
	"github.com/Dosada05/mcr-results/models"
)

const (
	RoundQF = "QF"
	RoundSF = "SF"
	RoundF  = "F"
)

// Rounds is the resolution order. Every reference points to an earlier round.
var Rounds = []string{RoundQF, RoundSF, RoundF}

type SlotTemplate struct {
	ID      string `json:"id"`
	Round   string `json:"round"`
	HomeRef string `json:"home_ref"`
	AwayRef string `json:"away_ref"`
}

type Template []SlotTemplate

// DefaultTemplate is the 8-team play-off: 1A-4B, 2A-3B, 1B-4A, 2B-3A.
func DefaultTemplate() Template {
	return Template{
		{ID: "QF1", Round: RoundQF, HomeRef: "1A", AwayRef: "4B"},
		{ID: "QF2", Round: RoundQF, HomeRef: "2A", AwayRef: "3B"},
		{ID: "QF3", Round: RoundQF, HomeRef: "1B", AwayRef: "4A"},
		{ID: "QF4", Round: RoundQF, HomeRef: "2B", AwayRef: "3A"},
		{ID: "SF1", Round: RoundSF, HomeRef: "W QF1", AwayRef: "W QF2"},
		{ID: "SF2", Round: RoundSF, HomeRef: "W QF3", AwayRef: "W QF4"},
		{ID: "F", Round: RoundF, HomeRef: "W SF1", AwayRef: "W SF2"},
	}
}

// SeedingPairs lists the quarter-final seed references.
func (t Template) SeedingPairs() [][2]string {
	pairs := make([][2]string, 0, 4)
	for _, s := range t {
		if s.Round == RoundQF {
			pairs = append(pairs, [2]string{s.HomeRef, s.AwayRef})
		}
	}
	return pairs
}

// SlotResult is a recorded play-off score.
type SlotResult struct {
	SlotID string
	ScoreA int
	ScoreB int
}

type ResolvedBracket struct {
	Slots []models.BracketSlot `json:"slots"`
}

// Slot returns the resolved slot by id.
func (b *ResolvedBracket) Slot(id string) (models.BracketSlot, bool) {
	for _, s := range b.Slots {
		if s.ID == id {
			return s, true
		}
	}
	return models.BracketSlot{}, false
}

// Round returns the slots of one round in template order.
func (b *ResolvedBracket) Round(round string) []models.BracketSlot {
	out := make([]models.BracketSlot, 0)
	for _, s := range b.Slots {
		if s.Round == round {
			out = append(out, s)
		}
	}
	return out
}

// Champion is the winner of the final, if recorded.
func (b *ResolvedBracket) Champion() (string, bool) {
	f, ok := b.Slot("F")
	if !ok || f.WinnerSide == nil {
		return "", false
	}
	return f.WinnerResolved, true
}

var refRe = regexp.MustCompile(`^([WL])\s+(QF\d|SF\d|F)$`)

// Build resolves the template round by round. A slot whose source has no
// winner keeps the literal reference. Ties record the score but no winner.
func Build(t Template, results []SlotResult, seeds map[string]string) *ResolvedBracket {
	byID := make(map[string]SlotResult, len(results))
	for _, r := range results {
		byID[strings.ToUpper(strings.TrimSpace(r.SlotID))] = r
	}
	winners := make(map[string]string)
	losers := make(map[string]string)

	out := &ResolvedBracket{Slots: make([]models.BracketSlot, 0, len(t))}
	for _, round := range Rounds {
		for _, tpl := range t {
			if tpl.Round != round {
				continue
			}
			slot := models.BracketSlot{
				ID:           tpl.ID,
				Round:        tpl.Round,
				HomeRef:      tpl.HomeRef,
				AwayRef:      tpl.AwayRef,
				HomeResolved: resolveRef(tpl.HomeRef, winners, losers, seeds),
				AwayResolved: resolveRef(tpl.AwayRef, winners, losers, seeds),
			}
			if r, ok := byID[strings.ToUpper(tpl.ID)]; ok {
				home, away := r.ScoreA, r.ScoreB
				slot.HomePts = &home
				slot.AwayPts = &away
				slot.Score = fmt.Sprintf("%d:%d", home, away)

				var side models.Side
				switch {
				case home > away:
					side = models.SideHome
					winners[tpl.ID], losers[tpl.ID] = slot.HomeResolved, slot.AwayResolved
				case home < away:
					side = models.SideAway
					winners[tpl.ID], losers[tpl.ID] = slot.AwayResolved, slot.HomeResolved
				}
				if side != "" {
					slot.WinnerSide = &side
					slot.WinnerResolved = winners[tpl.ID]
				}
			}
			out.Slots = append(out.Slots, slot)
		}
	}
	return out
}

func resolveRef(ref string, winners, losers map[string]string, seeds map[string]string) string {
	ref = strings.TrimSpace(ref)
	if m := refRe.FindStringSubmatch(ref); m != nil {
		src := winners
		if m[1] == "L" {
			src = losers
		}
		if name, ok := src[m[2]]; ok && name != "" {
			return name
		}
		return ref
	}
	if name := strings.TrimSpace(seeds[ref]); name != "" {
		return name
	}
	return ref
}

// SeedsFromOrders maps "1A".."nA" and "1B".."nB" to the group standings order.
func SeedsFromOrders(orderA, orderB []string) map[string]string {
	seeds := make(map[string]string, len(orderA)+len(orderB))
	for i, name := range orderA {
		seeds[fmt.Sprintf("%dA", i+1)] = name
	}
	for i, name := range orderB {
		seeds[fmt.Sprintf("%dB", i+1)] = name
	}
	return seeds
}

// ResultsFromRecords picks the final play-off scores out of raw records.
// Records without an id, a final status or a score are skipped.
func ResultsFromRecords(records []matches.RawMatch) []SlotResult {
	out := make([]SlotResult, 0, len(records))
	for _, r := range records {
		id := strings.ToUpper(strings.TrimSpace(r.ID))
		if id == "" || !matches.NormalizeStatus(r.Status).IsTerminal() {
			continue
		}
		score, _, ok := matches.ExtractScore(r)
		if !ok {
			continue
		}
		out = append(out, SlotResult{SlotID: id, ScoreA: score.A, ScoreB: score.B})
	}
	return out
}
