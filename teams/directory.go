// Package teams loads and indexes the canonical team list.
package teams

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/Dosada05/mcr-results/models"
)

// ErrLoad is returned when the team list cannot be fetched or an entry is incomplete.
var ErrLoad = errors.New("failed to load team list")

// Fetcher returns the raw bytes of the team list resource.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Load fetches and validates the team list.
func Load(ctx context.Context, src Fetcher) ([]models.Team, error) {
	body, err := src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return Parse(body)
}

// Parse decodes a team list and validates every entry. The document is either a
// bare array or an object with a "teams" array.
func Parse(body []byte) ([]models.Team, error) {
	var list []models.Team
	if err := json.Unmarshal(body, &list); err != nil {
		var wrapped struct {
			Teams []models.Team `json:"teams"`
		}
		if err2 := json.Unmarshal(body, &wrapped); err2 != nil || wrapped.Teams == nil {
			return nil, fmt.Errorf("%w: decode: %w", ErrLoad, err)
		}
		list = wrapped.Teams
	}
	if err := Validate(list); err != nil {
		return nil, err
	}
	return list, nil
}

// Validate checks that every team has id, name, seed and group.
func Validate(list []models.Team) error {
	for i, t := range list {
		var missing []string
		if strings.TrimSpace(t.ID) == "" {
			missing = append(missing, "id")
		}
		if strings.TrimSpace(t.Name) == "" {
			missing = append(missing, "name")
		}
		if strings.TrimSpace(t.Seed) == "" {
			missing = append(missing, "seed")
		}
		if strings.TrimSpace(t.Group) == "" {
			missing = append(missing, "group")
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: team #%d missing %s", ErrLoad, i, strings.Join(missing, ", "))
		}
	}
	return nil
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName lower-cases, trims and strips diacritics. It is the only
// name-matching rule: two names match when their normalized forms are equal.
func NormalizeName(name string) string {
	s, _, err := transform.String(stripMarks, name)
	if err != nil {
		s = name
	}
	return strings.ToLower(strings.TrimSpace(s))
}

// IndexByName maps normalized team names to their records.
func IndexByName(list []models.Team) map[string]models.Team {
	idx := make(map[string]models.Team, len(list))
	for _, t := range list {
		idx[NormalizeName(t.Name)] = t
	}
	return idx
}

// Directory is a read-only view over a loaded team list.
type Directory struct {
	teams  []models.Team
	byName map[string]models.Team
}

func NewDirectory(list []models.Team) *Directory {
	cp := make([]models.Team, len(list))
	copy(cp, list)
	return &Directory{teams: cp, byName: IndexByName(cp)}
}

// Teams returns the teams ordered by group, then seed.
func (d *Directory) Teams() []models.Team {
	if d == nil {
		return nil
	}
	out := make([]models.Team, len(d.teams))
	copy(out, d.teams)
	c := collate.New(language.Czech)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return c.CompareString(out[i].Group, out[j].Group) < 0
		}
		return c.CompareString(out[i].Seed, out[j].Seed) < 0
	})
	return out
}

// Grouped returns the teams split per group, each sorted by seed.
func (d *Directory) Grouped() map[string][]models.Team {
	out := make(map[string][]models.Team)
	for _, t := range d.Teams() {
		out[t.Group] = append(out[t.Group], t)
	}
	return out
}

// Lookup finds a team by exact normalized name.
func (d *Directory) Lookup(name string) (models.Team, bool) {
	if d == nil {
		return models.Team{}, false
	}
	t, ok := d.byName[NormalizeName(name)]
	return t, ok
}

// BySeed returns the team holding seed (e.g. "A1").
func (d *Directory) BySeed(seed string) (models.Team, bool) {
	if d == nil {
		return models.Team{}, false
	}
	for _, t := range d.teams {
		if strings.EqualFold(t.Seed, seed) {
			return t, true
		}
	}
	return models.Team{}, false
}

// Anchor is the page fragment of a team card.
func Anchor(t models.Team) string {
	return "team-" + t.ID
}

// Href returns the team page link for name, or "" when name is not a known team.
func (d *Directory) Href(name string) string {
	t, ok := d.Lookup(name)
	if !ok {
		return ""
	}
	return "tymy.html#" + Anchor(t)
}
