package services

import (
	"time"

	"github.com/Dosada05/mcr-results/brackets"
	"github.com/Dosada05/mcr-results/feed"
	"github.com/Dosada05/mcr-results/models"
)

type ResourceStatus struct {
	Name      string              `json:"name"`
	Source    feed.Tier           `json:"source,omitempty"`
	FetchedAt *time.Time          `json:"fetched_at,omitempty"`
	Banner    models.StatusBanner `json:"banner"`
	Error     string              `json:"error,omitempty"`
}

func (s ResourceStatus) Available() bool {
	return s.Source != ""
}

type Status struct {
	RefreshedAt time.Time           `json:"refreshed_at"`
	Banner      models.StatusBanner `json:"banner"`
	Resources   []ResourceStatus    `json:"resources"`
}

type TeamEntry struct {
	models.Team
	Anchor string `json:"anchor"`
	Href   string `json:"href"`
}

type TeamsView struct {
	Groups map[string][]TeamEntry `json:"groups"`
	Status ResourceStatus         `json:"status"`
}

type StandingsEntry struct {
	Rank int `json:"rank"`
	models.StandingsRow
	DiffText string `json:"diff_text"`
	Href     string `json:"href,omitempty"`
}

type GroupStandings struct {
	Group    string             `json:"group"`
	Rows     []StandingsEntry   `json:"rows"`
	Pending  []brackets.Pairing `json:"pending"`
	Complete bool               `json:"complete"`
}

type StandingsView struct {
	Groups []GroupStandings `json:"groups"`
	Status ResourceStatus   `json:"status"`
}

type BracketRound struct {
	Round string               `json:"round"`
	Slots []models.BracketSlot `json:"slots"`
}

type BracketView struct {
	Rounds       []BracketRound `json:"rounds"`
	SeedingPairs [][2]string    `json:"seeding_pairs"`
	Champion     string         `json:"champion,omitempty"`
	Status       ResourceStatus `json:"status"`
}

type ChangesView struct {
	Changes    []models.TimeChange `json:"changes"`
	DetectedAt *time.Time          `json:"detected_at,omitempty"`
}
