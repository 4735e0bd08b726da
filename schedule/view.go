package schedule

import (
	"strings"

	"github.com/Dosada05/mcr-results/matches"
	"github.com/Dosada05/mcr-results/models"
	"github.com/Dosada05/mcr-results/teams"
)

const Placeholder = "—"

// ViewContext carries the per-request view state into the builder.
type ViewContext struct {
	TeamFilter   string
	FocusMatchID string
	ActiveDay    string
}

type Row struct {
	ID        string `json:"id,omitempty"`
	Key       string `json:"key"`
	Day       string `json:"day"`
	Time      string `json:"time"`
	Hall      string `json:"hall"`
	Group     string `json:"group"`
	Phase     string `json:"phase,omitempty"`
	Label     string `json:"label"`
	TeamA     string `json:"team_a"`
	TeamB     string `json:"team_b"`
	TeamAHref string `json:"team_a_href,omitempty"`
	TeamBHref string `json:"team_b_href,omitempty"`
	Score     string `json:"score"`
	Status    string `json:"status"`
	Live      bool   `json:"live"`
	Focus     bool   `json:"focus"`
}

type DayView struct {
	Day    string `json:"day"`
	Date   string `json:"date,omitempty"`
	Active bool   `json:"active"`
	Rows   []Row  `json:"rows"`
}

type View struct {
	ActiveDay  string    `json:"active_day,omitempty"`
	TeamFilter string    `json:"team_filter,omitempty"`
	Days       []DayView `json:"days"`
	Playoff    []Row     `json:"playoff"`
}

// Builder joins schedule rows with results and the team directory.
type Builder struct {
	Directory *teams.Directory
	Results   *matches.Results
	DayDates  map[string]string
}

func (b *Builder) Build(s *models.Schedule, vc ViewContext) View {
	view := View{ActiveDay: vc.ActiveDay, TeamFilter: vc.TeamFilter, Days: make([]DayView, 0, len(models.Days))}
	for _, day := range models.Days {
		dv := DayView{Day: day, Date: b.DayDates[day], Active: day == vc.ActiveDay, Rows: make([]Row, 0)}
		if s != nil {
			dv.Rows = b.rows(s.Days[day], vc)
		}
		view.Days = append(view.Days, dv)
	}
	view.Playoff = make([]Row, 0)
	if s != nil {
		view.Playoff = b.rows(s.Playoff, vc)
	}
	return view
}

func (b *Builder) rows(in []models.ScheduledMatch, vc ViewContext) []Row {
	filter := teams.NormalizeName(vc.TeamFilter)
	out := make([]Row, 0, len(in))
	for _, m := range in {
		row := b.Row(m)
		if filter != "" && teams.NormalizeName(row.TeamA) != filter && teams.NormalizeName(row.TeamB) != filter {
			continue
		}
		focus := strings.TrimSpace(vc.FocusMatchID)
		row.Focus = focus != "" && (row.ID == focus || row.Key == focus)
		out = append(out, row)
	}
	return out
}

// Row renders one schedule entry. Missing fields become "—".
func (b *Builder) Row(m models.ScheduledMatch) Row {
	row := Row{
		ID:     m.ID,
		Key:    m.ID,
		Day:    m.Day,
		Time:   orPlaceholder(m.Time),
		Hall:   orPlaceholder(m.Hall),
		Group:  m.Group,
		Phase:  m.Phase,
		Label:  orPlaceholder(m.ParticipantsText),
		TeamA:  Placeholder,
		TeamB:  Placeholder,
		Score:  Placeholder,
		Status: models.StatusScheduled.Badge(),
	}
	if row.Key == "" {
		row.Key = matches.MatchID(matches.IDParts{DayKey: m.Day, Time: m.Time, Hall: m.Hall, Phase: m.Phase}, b.DayDates)
	}

	if pair, ok := matches.ParseTeams(m.ParticipantsText); ok {
		row.TeamA, row.TeamB = pair.TeamA, pair.TeamB
		row.TeamAHref = b.href(pair.TeamA)
		row.TeamBHref = b.href(pair.TeamB)
		if row.Group == "" {
			row.Group = matches.GuessGroup(pair.TeamA, pair.TeamB)
		}
	}
	if row.Group == "" {
		row.Group = Placeholder
	}

	if res, ok := b.Results.Lookup(m.ID); ok {
		if score, _, ok := matches.ExtractScore(res); ok {
			row.Score = score.String()
		}
		status := matches.NormalizeStatus(res.Status)
		row.Status = status.Badge()
		row.Live = status == models.StatusLive
	}
	return row
}

func (b *Builder) href(name string) string {
	if matches.IsPlaceholder(name) || b.Directory == nil {
		return ""
	}
	return b.Directory.Href(name)
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}
