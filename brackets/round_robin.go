package brackets

import (
	"fmt"

	"github.com/Dosada05/mcr-results/models"
)

// Pairing is one group game between two teams.
type Pairing struct {
	Home string `json:"home"`
	Away string `json:"away"`
}

// RoundRobin pairs every team with every other team once per leg.
// The second leg swaps home and away.
func RoundRobin(teams []string, legs int) ([]Pairing, error) {
	if len(teams) < 2 {
		return nil, fmt.Errorf("round robin: not enough teams (found %d, min 2 required)", len(teams))
	}
	if legs != 1 && legs != 2 {
		legs = 1 // по умолчанию один круг
	}

	n := len(teams)
	pairings := make([]Pairing, 0, legs*n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairings = append(pairings, Pairing{Home: teams[i], Away: teams[j]})
		}
	}
	if legs == 2 {
		first := len(pairings)
		for k := 0; k < first; k++ {
			pairings = append(pairings, Pairing{Home: pairings[k].Away, Away: pairings[k].Home})
		}
	}
	return pairings, nil
}

// Pending returns the pairings still without a final result. With one leg a
// result in either orientation counts; with two legs each leg needs its own
// result, home side first.
func Pending(teams []string, finals []models.CanonicalMatchResult, legs int) []Pairing {
	all, err := RoundRobin(teams, legs)
	if err != nil {
		return []Pairing{}
	}
	double := len(all) > len(teams)*(len(teams)-1)/2
	played := make(map[[2]string]bool, len(finals))
	for _, m := range finals {
		if !m.Status.IsTerminal() {
			continue
		}
		played[[2]string{m.TeamA, m.TeamB}] = true
		if !double {
			played[[2]string{m.TeamB, m.TeamA}] = true
		}
	}
	pending := make([]Pairing, 0, len(all))
	for _, p := range all {
		if !played[[2]string{p.Home, p.Away}] {
			pending = append(pending, p)
		}
	}
	return pending
}
