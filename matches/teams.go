package matches

import (
	"regexp"
	"strings"
)

var (
	dashReplacer   = strings.NewReplacer("–", "-", "—", "-")
	whitespaceRe   = regexp.MustCompile(`\s+`)
	spacedDashRe   = regexp.MustCompile(`\s+-\s+`)
	seedRefRe      = regexp.MustCompile(`^\d[AB]$`)
	forwardRefRe   = regexp.MustCompile(`^[WL]\s`)
	ignorePrefixes = []string{"winner", "loser", "vítěz", "poražený"}
)

// TeamPair is the two sides parsed from a free-text match label.
type TeamPair struct {
	TeamA string
	TeamB string
}

// ParseTeams splits a label such as "Sokol A - TJ B" into its two sides.
// En and em dashes count as hyphens. A whitespace-surrounded dash is preferred as the
// separator so hyphenated club names survive; otherwise a bare dash is used. Exactly
// two non-empty segments are required.
func ParseTeams(label string) (TeamPair, bool) {
	s := dashReplacer.Replace(label)
	s = strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
	if s == "" {
		return TeamPair{}, false
	}

	if parts := spacedDashRe.Split(s, -1); len(parts) > 1 {
		return pairOf(parts)
	}
	return pairOf(strings.Split(s, "-"))
}

func pairOf(parts []string) (TeamPair, bool) {
	if len(parts) != 2 {
		return TeamPair{}, false
	}
	a, b := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if a == "" || b == "" {
		return TeamPair{}, false
	}
	return TeamPair{TeamA: a, TeamB: b}, true
}

// IsPlaceholder reports whether name is a seed code ("1A"), a forward reference
// ("W QF1") or starts with one of the winner/loser prefixes. Placeholders never
// enter standings and are never linked to a team page.
func IsPlaceholder(name string) bool {
	n := strings.TrimSpace(name)
	if n == "" {
		return true
	}
	if seedRefRe.MatchString(strings.ToUpper(n)) || forwardRefRe.MatchString(n) {
		return true
	}
	lower := strings.ToLower(n)
	for _, p := range ignorePrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

// ExtractTeams returns the distinct real team names found in records, in order of
// first appearance.
func ExtractTeams(pairs []TeamPair) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	add := func(name string) {
		if IsPlaceholder(name) {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	for _, p := range pairs {
		add(p.TeamA)
		add(p.TeamB)
	}
	return out
}

// GuessGroup derives the group from labels like "A1 - A3" when the row carries no
// explicit group. Returns "" when the two sides disagree.
func GuessGroup(teamA, teamB string) string {
	a := strings.ToUpper(strings.TrimSpace(teamA))
	b := strings.ToUpper(strings.TrimSpace(teamB))
	if a == "" || b == "" {
		return ""
	}
	switch {
	case a[0] == 'A' && b[0] == 'A':
		return "A"
	case a[0] == 'B' && b[0] == 'B':
		return "B"
	}
	return ""
}
