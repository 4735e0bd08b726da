package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/mcr-results/brackets"
	"github.com/Dosada05/mcr-results/feed"
	"github.com/Dosada05/mcr-results/matches"
	"github.com/Dosada05/mcr-results/models"
	"github.com/Dosada05/mcr-results/repositories"
	"github.com/Dosada05/mcr-results/schedule"
	"github.com/Dosada05/mcr-results/standings"
	"github.com/Dosada05/mcr-results/storage"
	"github.com/Dosada05/mcr-results/teams"
)

// Groups of the group stage, in display order.
var Groups = []string{"A", "B"}

type TournamentService interface {
	Refresh(ctx context.Context) error
	Status(ctx context.Context) (*Status, error)
	Teams(ctx context.Context) (*TeamsView, error)
	Schedule(ctx context.Context, vc schedule.ViewContext) (*schedule.View, error)
	Standings(ctx context.Context) (*StandingsView, error)
	Bracket(ctx context.Context) (*BracketView, error)
	Changes(ctx context.Context) (*ChangesView, error)
	TeamFilter(ctx context.Context) (string, error)
	SetTeamFilter(ctx context.Context, name string) (string, error)
	PublishBackup(ctx context.Context, resource string) (*storage.UploadResult, error)
	CacheKeys(ctx context.Context) ([]string, error)
	PurgeCache(ctx context.Context, resource string) error
}

type TournamentDeps struct {
	Loader    *feed.Loader
	Resources []Resource
	Cache     repositories.CacheRepository
	Store     storage.ObjectStore // nil when backups are not published
	DayDates  map[string]string
	Location  *time.Location
	GroupLegs int // 1 or 2 round-robin legs per group
	Now       func() time.Time
}

// snapshot is immutable once published. Refresh builds a new one.
type snapshot struct {
	refreshedAt time.Time
	status      map[string]ResourceStatus
	digests     map[string]string

	directory *teams.Directory
	schedule  *models.Schedule
	results   *matches.Results
	playoff   []matches.RawMatch
	finals    []models.CanonicalMatchResult
}

type tournamentService struct {
	deps   TournamentDeps
	logger *slog.Logger

	refreshMu sync.Mutex // one refresh at a time
	mu        sync.RWMutex
	current   *snapshot
}

func NewTournamentService(deps TournamentDeps, logger *slog.Logger) TournamentService {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	if deps.GroupLegs != 2 {
		deps.GroupLegs = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &tournamentService{deps: deps, logger: logger}
}

func (s *tournamentService) snapshot() (*snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, ErrNotLoaded
	}
	return s.current, nil
}

// Refresh loads every resource concurrently and swaps in a new snapshot. Each
// resource falls through its own tiers; a resource that exhausts all of them is
// marked unavailable and the error wraps ErrDataUnavailable.
func (s *tournamentService) Refresh(ctx context.Context) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	prev, _ := s.snapshot()
	prevSchedule := s.previousSchedule(ctx, prev)

	loaded := make([]*feed.Result, len(s.deps.Resources))
	failures := make([]error, len(s.deps.Resources))

	g, gCtx := errgroup.WithContext(ctx)
	for i, res := range s.deps.Resources {
		g.Go(func() error {
			r, err := s.deps.Loader.Load(gCtx, res.Resource)
			if err != nil {
				if ctxErr := gCtx.Err(); ctxErr != nil {
					return ctxErr
				}
				failures[i] = err
				return nil
			}
			loaded[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("refresh cancelled: %w", err)
	}

	next := &snapshot{
		refreshedAt: s.deps.Now(),
		status:      make(map[string]ResourceStatus, len(s.deps.Resources)),
		digests:     make(map[string]string, len(s.deps.Resources)),
	}
	var errs []error
	for i, res := range s.deps.Resources {
		name := res.Name
		st := ResourceStatus{Name: name}
		if failures[i] != nil {
			st.Banner = models.StatusBanner{Severity: models.SeverityError, Message: name + ": data unavailable"}
			st.Error = failures[i].Error()
			next.status[name] = st
			errs = append(errs, fmt.Errorf("%w: %s: %w", ErrDataUnavailable, name, failures[i]))
			continue
		}
		r := loaded[i]
		if err := next.apply(name, r.Data); err != nil {
			// validated payloads should always decode
			st.Banner = models.StatusBanner{Severity: models.SeverityError, Message: name + ": data unavailable"}
			st.Error = err.Error()
			next.status[name] = st
			errs = append(errs, fmt.Errorf("%w: %s: %w", ErrDataUnavailable, name, err))
			continue
		}
		fetched := r.FetchedAt
		st.Source = r.Source
		st.FetchedAt = &fetched
		st.Banner = r.Source.Banner(r.FetchedAt)
		next.status[name] = st
		next.digests[name] = r.Digest

		if prev != nil && prev.digests[name] == r.Digest {
			s.logger.Debug("resource unchanged", slog.String("resource", name))
		} else {
			s.logger.Info("resource updated", slog.String("resource", name), slog.String("source", string(r.Source)))
		}
	}
	next.finals = next.normalizeResults()

	if next.schedule != nil && prevSchedule != nil {
		if changes := schedule.Diff(prevSchedule, next.schedule); len(changes) > 0 {
			s.logger.Info("schedule time changes detected", slog.Int("count", len(changes)))
			if err := s.putJSON(ctx, repositories.KeyTimeChanges, changes); err != nil {
				s.logger.Warn("failed to persist time changes", slog.Any("error", err))
			}
		}
	}

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	return errors.Join(errs...)
}

// previousSchedule is the schedule to diff against: the in-memory one, or the
// cached payload from before this refresh writes the cache.
func (s *tournamentService) previousSchedule(ctx context.Context, prev *snapshot) *models.Schedule {
	if prev != nil && prev.schedule != nil {
		return prev.schedule
	}
	if s.deps.Cache == nil {
		return nil
	}
	entry, err := s.deps.Cache.Get(ctx, repositories.KeyScheduleCache)
	if err != nil {
		return nil
	}
	var sched models.Schedule
	if err := json.Unmarshal(entry.Data, &sched); err != nil {
		return nil
	}
	return &sched
}

func (sn *snapshot) apply(name string, data []byte) error {
	switch name {
	case ResourceSchedule:
		var sched models.Schedule
		if err := json.Unmarshal(data, &sched); err != nil {
			return fmt.Errorf("decode schedule: %w", err)
		}
		sn.schedule = &sched
	case ResourceResults:
		res, err := matches.ParseResults(data)
		if err != nil {
			return err
		}
		playoff, err := matches.PlayoffRecords(data)
		if err != nil {
			return err
		}
		sn.results = res
		sn.playoff = playoff
	case ResourceTeams:
		list, err := teams.Parse(data)
		if err != nil {
			return err
		}
		sn.directory = teams.NewDirectory(list)
	}
	return nil
}

// normalizeResults turns every result record into a canonical result. Records
// keyed only by id borrow the label and group from their schedule row.
// Team names are matched with teams.NormalizeName. Malformed records are skipped.
func (sn *snapshot) normalizeResults() []models.CanonicalMatchResult {
	if sn.results == nil {
		return nil
	}
	rows := make(map[string]models.ScheduledMatch)
	if sn.schedule != nil {
		for _, m := range append(sn.schedule.All(), sn.schedule.Playoff...) {
			if m.ID != "" {
				rows[m.ID] = m
			}
		}
	}

	// Free-text names resolve to the directory spelling, or to the first
	// spelling seen when the directory has no such team.
	spelling := make(map[string]string)
	canonical := func(name string) string {
		if matches.IsPlaceholder(name) {
			return name
		}
		if t, ok := sn.directory.Lookup(name); ok {
			return t.Name
		}
		key := teams.NormalizeName(name)
		if first, ok := spelling[key]; ok {
			return first
		}
		spelling[key] = name
		return name
	}

	out := make([]models.CanonicalMatchResult, 0)
	for _, r := range sn.results.All() {
		row, hasRow := rows[r.ID]
		if hasRow {
			r = r.WithLabel(row.ParticipantsText)
			if r.Group == "" {
				r.Group = row.Group
			}
		}
		c, ok := matches.Normalize(r)
		if !ok {
			continue
		}
		c.TeamA, c.TeamB = canonical(c.TeamA), canonical(c.TeamB)
		if c.Group == "" {
			c.Group = matches.GuessGroup(c.TeamA, c.TeamB)
		}
		out = append(out, *c)
	}
	return out
}

func (sn *snapshot) require(name string) (ResourceStatus, error) {
	st, ok := sn.status[name]
	if !ok || !st.Available() {
		return st, fmt.Errorf("%w: %s", ErrDataUnavailable, name)
	}
	return st, nil
}

func (s *tournamentService) Status(ctx context.Context) (*Status, error) {
	sn, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	out := &Status{RefreshedAt: sn.refreshedAt, Banner: models.StatusBanner{Severity: models.SeverityOK, Message: "live data"}}
	for _, name := range resourceOrder {
		st, ok := sn.status[name]
		if !ok {
			continue
		}
		out.Resources = append(out.Resources, st)
		if severityRank(st.Banner.Severity) > severityRank(out.Banner.Severity) {
			out.Banner = st.Banner
		}
	}
	return out, nil
}

func severityRank(s models.Severity) int {
	switch s {
	case models.SeverityInfo:
		return 1
	case models.SeverityWarn:
		return 2
	case models.SeverityError:
		return 3
	}
	return 0
}

func (s *tournamentService) Teams(ctx context.Context) (*TeamsView, error) {
	sn, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	st, err := sn.require(ResourceTeams)
	if err != nil {
		return nil, err
	}
	view := &TeamsView{Groups: make(map[string][]TeamEntry), Status: st}
	for group, list := range sn.directory.Grouped() {
		entries := make([]TeamEntry, 0, len(list))
		for _, t := range list {
			entries = append(entries, TeamEntry{Team: t, Anchor: teams.Anchor(t), Href: sn.directory.Href(t.Name)})
		}
		view.Groups[group] = entries
	}
	return view, nil
}

func (s *tournamentService) Schedule(ctx context.Context, vc schedule.ViewContext) (*schedule.View, error) {
	sn, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	if _, err := sn.require(ResourceSchedule); err != nil {
		return nil, err
	}

	vc.TeamFilter = strings.TrimSpace(vc.TeamFilter)
	if vc.TeamFilter != "" && sn.directory != nil {
		team, ok := sn.directory.Lookup(vc.TeamFilter)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTeamFilter, vc.TeamFilter)
		}
		vc.TeamFilter = team.Name
	}
	if vc.FocusMatchID != "" && !sn.hasMatch(vc.FocusMatchID, s.deps.DayDates) {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, vc.FocusMatchID)
	}
	if vc.ActiveDay == "" {
		vc.ActiveDay = schedule.ActiveDay(s.deps.Now(), s.deps.DayDates, s.deps.Location)
	}

	b := &schedule.Builder{Directory: sn.directory, Results: sn.results, DayDates: s.deps.DayDates}
	view := b.Build(sn.schedule, vc)
	return &view, nil
}

func (sn *snapshot) hasMatch(id string, dayDates map[string]string) bool {
	b := &schedule.Builder{DayDates: dayDates}
	for _, m := range append(sn.schedule.All(), sn.schedule.Playoff...) {
		if m.ID == id || b.Row(m).Key == id {
			return true
		}
	}
	return false
}

// groupTables computes the standings of every group.
func (sn *snapshot) groupTables() map[string]standings.Table {
	tables := make(map[string]standings.Table, len(Groups))
	for _, group := range Groups {
		tables[group] = standings.Compute(sn.groupTeams(group), sn.groupFinals(group))
	}
	return tables
}

func (sn *snapshot) groupTeams(group string) []string {
	if sn.directory != nil {
		names := make([]string, 0)
		for _, t := range sn.directory.Grouped()[group] {
			names = append(names, t.Name)
		}
		return names
	}
	pairs := make([]matches.TeamPair, 0)
	for _, c := range sn.groupFinals(group) {
		pairs = append(pairs, matches.TeamPair{TeamA: c.TeamA, TeamB: c.TeamB})
	}
	return matches.ExtractTeams(pairs)
}

func (sn *snapshot) groupFinals(group string) []models.CanonicalMatchResult {
	out := make([]models.CanonicalMatchResult, 0)
	for _, c := range sn.finals {
		if c.Group == group && !matches.IsPlaceholder(c.TeamA) && !matches.IsPlaceholder(c.TeamB) {
			out = append(out, c)
		}
	}
	return out
}

func (s *tournamentService) Standings(ctx context.Context) (*StandingsView, error) {
	sn, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	st, err := sn.require(ResourceResults)
	if err != nil {
		return nil, err
	}

	tables := sn.groupTables()
	view := &StandingsView{Groups: make([]GroupStandings, 0, len(Groups)), Status: st}
	for _, group := range Groups {
		table := tables[group]
		gs := GroupStandings{Group: group, Rows: make([]StandingsEntry, 0, len(table.Order))}
		for _, row := range table.Rows() {
			entry := StandingsEntry{Rank: table.Position(row.Team), StandingsRow: row, DiffText: standings.FormatDiff(row.Diff)}
			if sn.directory != nil {
				entry.Href = sn.directory.Href(row.Team)
			}
			gs.Rows = append(gs.Rows, entry)
		}
		gs.Pending = brackets.Pending(sn.groupTeams(group), sn.groupFinals(group), s.deps.GroupLegs)
		gs.Complete = len(table.Order) > 1 && len(gs.Pending) == 0
		view.Groups = append(view.Groups, gs)
	}
	return view, nil
}

func (s *tournamentService) Bracket(ctx context.Context) (*BracketView, error) {
	sn, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	st, err := sn.require(ResourceResults)
	if err != nil {
		return nil, err
	}

	tpl := brackets.DefaultTemplate()
	tables := sn.groupTables()
	var orderA, orderB []string
	if sn.groupComplete(tables, "A", s.deps.GroupLegs) {
		orderA = tables["A"].Order
	}
	if sn.groupComplete(tables, "B", s.deps.GroupLegs) {
		orderB = tables["B"].Order
	}

	bracket := brackets.Build(tpl, brackets.ResultsFromRecords(sn.playoffRecords(tpl)), brackets.SeedsFromOrders(orderA, orderB))
	view := &BracketView{SeedingPairs: tpl.SeedingPairs(), Status: st, Rounds: make([]BracketRound, 0, len(brackets.Rounds))}
	for _, round := range brackets.Rounds {
		view.Rounds = append(view.Rounds, BracketRound{Round: round, Slots: bracket.Round(round)})
	}
	if champ, ok := bracket.Champion(); ok {
		view.Champion = champ
	}
	return view, nil
}

// Seeds are substituted only once every group game is final.
func (sn *snapshot) groupComplete(tables map[string]standings.Table, group string, legs int) bool {
	return len(tables[group].Order) > 1 && len(brackets.Pending(sn.groupTeams(group), sn.groupFinals(group), legs)) == 0
}

// playoffRecords collects play-off results marked by skupina and those keyed
// by slot id.
func (sn *snapshot) playoffRecords(tpl brackets.Template) []matches.RawMatch {
	out := make([]matches.RawMatch, 0, len(sn.playoff)+len(tpl))
	seen := make(map[string]bool)
	for _, r := range sn.playoff {
		out = append(out, r)
		seen[strings.ToUpper(r.ID)] = true
	}
	for _, slot := range tpl {
		if seen[slot.ID] {
			continue
		}
		if r, ok := sn.results.Lookup(slot.ID); ok {
			out = append(out, r)
		}
	}
	return out
}

func (s *tournamentService) Changes(ctx context.Context) (*ChangesView, error) {
	view := &ChangesView{Changes: make([]models.TimeChange, 0)}
	entry, err := s.deps.Cache.Get(ctx, repositories.KeyTimeChanges)
	if errors.Is(err, repositories.ErrCacheEntryNotFound) {
		return view, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read time changes: %w", err)
	}
	if err := json.Unmarshal(entry.Data, &view.Changes); err != nil {
		return nil, fmt.Errorf("failed to decode time changes: %w", err)
	}
	at := entry.SavedAt
	view.DetectedAt = &at
	return view, nil
}

func (s *tournamentService) TeamFilter(ctx context.Context) (string, error) {
	entry, err := s.deps.Cache.Get(ctx, repositories.KeyTeamFilter)
	if errors.Is(err, repositories.ErrCacheEntryNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read team filter: %w", err)
	}
	var name string
	if err := json.Unmarshal(entry.Data, &name); err != nil {
		return "", fmt.Errorf("failed to decode team filter: %w", err)
	}
	return name, nil
}

// SetTeamFilter persists the last applied filter. An empty name clears it.
func (s *tournamentService) SetTeamFilter(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name != "" {
		sn, err := s.snapshot()
		if err != nil {
			return "", err
		}
		if _, err := sn.require(ResourceTeams); err != nil {
			return "", err
		}
		team, ok := sn.directory.Lookup(name)
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrInvalidTeamFilter, name)
		}
		name = team.Name
	}
	if err := s.putJSON(ctx, repositories.KeyTeamFilter, name); err != nil {
		return "", fmt.Errorf("failed to save team filter: %w", err)
	}
	return name, nil
}

// PublishBackup uploads the cached live payload of a resource as its static backup.
func (s *tournamentService) PublishBackup(ctx context.Context, resource string) (*storage.UploadResult, error) {
	if s.deps.Store == nil {
		return nil, ErrBackupStoreDisabled
	}
	var res *Resource
	for i := range s.deps.Resources {
		if s.deps.Resources[i].Name == resource {
			res = &s.deps.Resources[i]
			break
		}
	}
	if res == nil || res.BackupKey == "" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownResource, resource)
	}

	entry, err := s.deps.Cache.Get(ctx, res.CacheKey)
	if errors.Is(err, repositories.ErrCacheEntryNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNothingToPublish, resource)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached %s: %w", resource, err)
	}
	if res.Validate != nil {
		if err := res.Validate(entry.Data); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrNothingToPublish, resource, err)
		}
	}

	result, err := s.deps.Store.Upload(ctx, res.BackupKey, "application/json", bytes.NewReader(entry.Data))
	if err != nil {
		return nil, err
	}
	s.logger.Info("backup published", slog.String("resource", resource), slog.String("key", result.Key))
	return result, nil
}

// CacheKeys lists every key held by the cache.
func (s *tournamentService) CacheKeys(ctx context.Context) ([]string, error) {
	keys, err := s.deps.Cache.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cache keys: %w", err)
	}
	return keys, nil
}

// PurgeCache drops the last-known-good payload of a resource, so the next
// refresh that misses the live tier goes straight to the backup.
func (s *tournamentService) PurgeCache(ctx context.Context, resource string) error {
	key := CacheKeyFor(resource)
	if key == "" {
		return fmt.Errorf("%w: %q", ErrUnknownResource, resource)
	}
	err := s.deps.Cache.Delete(ctx, key)
	if errors.Is(err, repositories.ErrCacheEntryNotFound) {
		return fmt.Errorf("%w: %s", ErrNotCached, resource)
	}
	if err != nil {
		return fmt.Errorf("failed to purge cached %s: %w", resource, err)
	}
	s.logger.Info("cache purged", slog.String("resource", resource), slog.String("key", key))
	return nil
}

func (s *tournamentService) putJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.deps.Cache.Put(ctx, &models.CacheEntry{Key: key, SavedAt: s.deps.Now(), Data: data})
}

// ResourceNames lists the known resource names in display order.
func ResourceNames() []string {
	out := make([]string, len(resourceOrder))
	copy(out, resourceOrder)
	return out
}
