package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Dosada05/mcr-results/db"
	"github.com/Dosada05/mcr-results/feed"
	"github.com/Dosada05/mcr-results/models"
	"github.com/Dosada05/mcr-results/repositories"
	"github.com/Dosada05/mcr-results/schedule"
	"github.com/Dosada05/mcr-results/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	teamsJSON = `[
		{"id": 1, "name": "Sokol A", "seed": "A1", "group": "A"},
		{"id": 2, "name": "TJ B", "seed": "A2", "group": "A"},
		{"id": 3, "name": "Orli C", "seed": "B1", "group": "B"},
		{"id": 4, "name": "Lvi D", "seed": "B2", "group": "B"}
	]`
	scheduleJSON = `{
		"patek": [
			{"id": "1", "cas": "09:00", "hala": "Hala 1", "zapas": "Sokol A - TJ B", "skupina": "A"},
			{"id": "2", "cas": "10:00", "hala": "Hala 1", "zapas": "Orli C - Lvi D", "skupina": "B"}
		],
		"sobota": [],
		"nedele": [],
		"playoff": [{"id": "QF1", "cas": "09:00", "hala": "Hala 1", "zapas": "1A - 4B", "faze": "QF"}]
	}`
	resultsJSON = `{
		"zapasy": [
			{"id": "1", "zapas": "Sokol A - TJ B", "skore": "55:40", "stav": "FINAL", "skupina": "A"},
			{"id": "QF1", "zapas": "1A - 4B", "skore": "70:20", "stav": "FIN", "skupina": "Play-off"}
		],
		"games": {"2": {"skore": "50:52", "stav": "FIN"}}
	}`
)

// feedServer serves the data files from a mutable map. Missing files are 404,
// files mapped to "" are 500.
type feedServer struct {
	mu    sync.Mutex
	files map[string]string
	srv   *httptest.Server
}

func newFeedServer(t *testing.T) *feedServer {
	t.Helper()
	fs := &feedServer{files: map[string]string{
		"/rozpis.json":   scheduleJSON,
		"/vysledky.json": resultsJSON,
		"/tymy.json":     teamsJSON,
	}}
	fs.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.mu.Lock()
		body, ok := fs.files[r.URL.Path]
		fs.mu.Unlock()
		switch {
		case !ok:
			http.NotFound(w, r)
		case body == "":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			_, _ = io.WriteString(w, body)
		}
	}))
	t.Cleanup(fs.srv.Close)
	return fs
}

func (fs *feedServer) set(path, body string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.files[path] = body
}

type fakeStore struct {
	mu      sync.Mutex
	uploads map[string][]byte
}

func (f *fakeStore) Upload(_ context.Context, key, _ string, r io.Reader) (*storage.UploadResult, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploads == nil {
		f.uploads = make(map[string][]byte)
	}
	f.uploads[key] = b
	return &storage.UploadResult{Key: key, Location: "https://cdn.example.cz/" + key}, nil
}

func (f *fakeStore) Download(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.uploads[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return b, nil
}

func (f *fakeStore) Delete(context.Context, string) error { return nil }
func (f *fakeStore) GetPublicURL(key string) string      { return "https://cdn.example.cz/" + key }

type fixture struct {
	svc   TournamentService
	feed  *feedServer
	cache repositories.CacheRepository
	store *fakeStore
}

func newFixture(t *testing.T, opts ...func(*TournamentDeps)) *fixture {
	t.Helper()
	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "cache.db"), 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	cache := repositories.NewSQLiteCacheRepository(conn)
	require.NoError(t, cache.EnsureSchema(context.Background()))

	fs := newFeedServer(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	resources := make([]Resource, 0, 3)
	for _, name := range ResourceNames() {
		resources = append(resources, Resource{
			Resource: feed.Resource{
				Name:     name,
				Primary:  feed.NewHTTPSource(fs.srv.URL+"/"+name+".json", nil),
				Backup:   feed.NewHTTPSource(fs.srv.URL+"/"+name+".backup.json", nil),
				CacheKey: CacheKeyFor(name),
				Validate: ValidatorFor(name),
			},
			BackupKey: name + ".backup.json",
		})
	}
	store := &fakeStore{}
	now := time.Date(2026, 4, 24, 8, 0, 0, 0, time.UTC)
	deps := TournamentDeps{
		Loader:    feed.NewLoader(NewFeedCache(cache), logger),
		Resources: resources,
		Cache:     cache,
		Store:     store,
		DayDates:  map[string]string{"patek": "2026-04-24", "sobota": "2026-04-25", "nedele": "2026-04-26"},
		Location:  time.UTC,
		Now:       func() time.Time { return now },
	}
	for _, opt := range opts {
		opt(&deps)
	}
	svc := NewTournamentService(deps, logger)
	return &fixture{svc: svc, feed: fs, cache: cache, store: store}
}

func TestTournamentService_NotLoaded(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Standings(context.Background())
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, err = f.svc.Status(context.Background())
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestTournamentService_StandingsAndBracket(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.Refresh(ctx))

	st, err := f.svc.Standings(ctx)
	require.NoError(t, err)
	require.Len(t, st.Groups, 2)

	groupA := st.Groups[0]
	assert.Equal(t, "A", groupA.Group)
	require.Len(t, groupA.Rows, 2)
	top := groupA.Rows[0]
	assert.Equal(t, 1, top.Rank)
	assert.Equal(t, "Sokol A", top.Team)
	assert.Equal(t, 1, top.Played)
	assert.Equal(t, 1, top.Wins)
	assert.Equal(t, 3, top.Points)
	assert.Equal(t, "+15", top.DiffText)
	assert.Equal(t, "tymy.html#team-1", top.Href)
	assert.True(t, groupA.Complete)
	assert.Empty(t, groupA.Pending)

	groupB := st.Groups[1]
	require.Len(t, groupB.Rows, 2)
	assert.Equal(t, "Lvi D", groupB.Rows[0].Team, "id-keyed result borrows its label from the schedule")

	br, err := f.svc.Bracket(ctx)
	require.NoError(t, err)
	require.Len(t, br.Rounds, 3)
	qf1 := br.Rounds[0].Slots[0]
	assert.Equal(t, "Sokol A", qf1.HomeResolved)
	assert.Equal(t, "4B", qf1.AwayResolved)
	assert.Equal(t, "70:20", qf1.Score)
	sf1 := br.Rounds[1].Slots[0]
	assert.Equal(t, "Sokol A", sf1.HomeResolved)
	assert.Equal(t, "W QF2", sf1.AwayResolved)
	assert.Len(t, br.SeedingPairs, 4)
	assert.Empty(t, br.Champion)

	status, err := f.svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SeverityOK, status.Banner.Severity)
	require.Len(t, status.Resources, 3)
	for _, r := range status.Resources {
		assert.Equal(t, feed.TierLive, r.Source, r.Name)
	}
}

func TestTournamentService_IncompleteGroupKeepsSeedCodes(t *testing.T) {
	f := newFixture(t)
	f.feed.set("/tymy.json", `[
		{"id": 1, "name": "Sokol A", "seed": "A1", "group": "A"},
		{"id": 2, "name": "TJ B", "seed": "A2", "group": "A"},
		{"id": 5, "name": "BK E", "seed": "A3", "group": "A"}
	]`)
	ctx := context.Background()
	require.NoError(t, f.svc.Refresh(ctx))

	st, err := f.svc.Standings(ctx)
	require.NoError(t, err)
	assert.False(t, st.Groups[0].Complete)
	assert.Len(t, st.Groups[0].Pending, 2)

	br, err := f.svc.Bracket(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1A", br.Rounds[0].Slots[0].HomeResolved)
}

func TestTournamentService_ResultNamesMatchDirectory(t *testing.T) {
	f := newFixture(t)
	f.feed.set("/tymy.json", `[
		{"id": 1, "name": "Sokol Tábor", "seed": "A1", "group": "A"},
		{"id": 2, "name": "TJ B", "seed": "A2", "group": "A"},
		{"id": 3, "name": "Orli C", "seed": "B1", "group": "B"},
		{"id": 4, "name": "Lvi D", "seed": "B2", "group": "B"}
	]`)
	f.feed.set("/vysledky.json", `{
		"zapasy": [{"id": "9", "zapas": "sokol tabor - TJ B", "skore": "55:40", "stav": "FINAL", "skupina": "A"}],
		"games": {"2": {"skore": "50:52", "stav": "FIN"}}
	}`)
	ctx := context.Background()
	require.NoError(t, f.svc.Refresh(ctx))

	st, err := f.svc.Standings(ctx)
	require.NoError(t, err)
	groupA := st.Groups[0]
	require.Len(t, groupA.Rows, 2)
	assert.Equal(t, "Sokol Tábor", groupA.Rows[0].Team)
	assert.Equal(t, 1, groupA.Rows[0].Played)
	assert.Equal(t, 3, groupA.Rows[0].Points)
	assert.Equal(t, "tymy.html#team-1", groupA.Rows[0].Href)
	assert.Empty(t, groupA.Pending)
	assert.True(t, groupA.Complete)

	br, err := f.svc.Bracket(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sokol Tábor", br.Rounds[0].Slots[0].HomeResolved)
}

func TestTournamentService_StrayEntriesDoNotBreakResources(t *testing.T) {
	f := newFixture(t)
	f.feed.set("/vysledky.json", `{
		"zapasy": [
			{"id": "1", "zapas": "Sokol A - TJ B", "skore": "55:40", "stav": "FINAL", "skupina": "A"},
			"poznamka: QF posunuto"
		],
		"games": {"2": {"skore": "50:52", "stav": "FIN"}}
	}`)
	f.feed.set("/rozpis.json", `{
		"patek": [
			{"id": "1", "cas": "09:00", "hala": "Hala 1", "zapas": "Sokol A - TJ B", "skupina": "A"},
			"obědová pauza",
			{"id": "2", "cas": "10:00", "hala": "Hala 1", "zapas": "Orli C - Lvi D", "skupina": "B"}
		],
		"sobota": [],
		"nedele": []
	}`)
	ctx := context.Background()
	require.NoError(t, f.svc.Refresh(ctx))

	status, err := f.svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SeverityOK, status.Banner.Severity)

	st, err := f.svc.Standings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sokol A", st.Groups[0].Rows[0].Team)
	assert.Equal(t, "Lvi D", st.Groups[1].Rows[0].Team)

	view, err := f.svc.Schedule(ctx, schedule.ViewContext{})
	require.NoError(t, err)
	assert.Len(t, view.Days[0].Rows, 2)
}

func TestValidatorFor_AcceptsWhatTheSnapshotDecodes(t *testing.T) {
	results := ValidatorFor(ResourceResults)
	assert.NoError(t, results([]byte(`{"zapasy": [{"id": "1"}, "poznamka"]}`)))
	assert.ErrorIs(t, results([]byte(`{"zapasy": "poznamka"}`)), feed.ErrValidation)

	sched := ValidatorFor(ResourceSchedule)
	assert.NoError(t, sched([]byte(`{"patek": ["pauza"], "sobota": [], "nedele": [], "playoff": "tbd"}`)))
	assert.ErrorIs(t, sched([]byte(`{"patek": {}, "sobota": [], "nedele": []}`)), feed.ErrValidation)
}

func TestTournamentService_FallsBackToCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.Refresh(ctx))

	f.feed.set("/vysledky.json", "")
	require.NoError(t, f.svc.Refresh(ctx))

	status, err := f.svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SeverityInfo, status.Banner.Severity)
	for _, r := range status.Resources {
		if r.Name == ResourceResults {
			assert.Equal(t, feed.TierCache, r.Source)
		}
	}

	st, err := f.svc.Standings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sokol A", st.Groups[0].Rows[0].Team)
}

func TestTournamentService_ExhaustedResourceIsUnavailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.feed.set("/tymy.json", "")

	err := f.svc.Refresh(ctx)
	require.ErrorIs(t, err, ErrDataUnavailable)
	assert.ErrorIs(t, err, feed.ErrAllSourcesExhausted)

	_, err = f.svc.Teams(ctx)
	assert.ErrorIs(t, err, ErrDataUnavailable)

	status, err := f.svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SeverityError, status.Banner.Severity)

	// Schedule still renders; names are just not linked.
	view, err := f.svc.Schedule(ctx, schedule.ViewContext{})
	require.NoError(t, err)
	assert.Empty(t, view.Days[0].Rows[0].TeamAHref)
}

func TestTournamentService_BackupTier(t *testing.T) {
	f := newFixture(t)
	f.feed.set("/tymy.json", "")
	f.feed.set("/tymy.backup.json", teamsJSON)

	require.NoError(t, f.svc.Refresh(context.Background()))
	tv, err := f.svc.Teams(context.Background())
	require.NoError(t, err)
	assert.Equal(t, feed.TierBackup, tv.Status.Source)
	assert.Equal(t, models.SeverityWarn, tv.Status.Banner.Severity)
	assert.Len(t, tv.Groups["A"], 2)
	assert.Equal(t, "team-1", tv.Groups["A"][0].Anchor)

	_, err = f.cache.Get(context.Background(), repositories.KeyTeamsCache)
	assert.ErrorIs(t, err, repositories.ErrCacheEntryNotFound, "backup hits must not be cached")
}

func TestTournamentService_ScheduleViewAndFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.Refresh(ctx))

	view, err := f.svc.Schedule(ctx, schedule.ViewContext{TeamFilter: "sokol a", FocusMatchID: "1"})
	require.NoError(t, err)
	assert.Equal(t, "patek", view.ActiveDay)
	assert.Equal(t, "Sokol A", view.TeamFilter)
	require.Len(t, view.Days[0].Rows, 1)
	row := view.Days[0].Rows[0]
	assert.True(t, row.Focus)
	assert.Equal(t, "55:40", row.Score)
	assert.Equal(t, "FIN", row.Status)

	_, err = f.svc.Schedule(ctx, schedule.ViewContext{TeamFilter: "Sokol"})
	assert.ErrorIs(t, err, ErrInvalidTeamFilter)
	_, err = f.svc.Schedule(ctx, schedule.ViewContext{FocusMatchID: "99"})
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestTournamentService_TeamFilterPersistence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.Refresh(ctx))

	name, err := f.svc.TeamFilter(ctx)
	require.NoError(t, err)
	assert.Empty(t, name)

	name, err = f.svc.SetTeamFilter(ctx, "  tj b ")
	require.NoError(t, err)
	assert.Equal(t, "TJ B", name)

	name, err = f.svc.TeamFilter(ctx)
	require.NoError(t, err)
	assert.Equal(t, "TJ B", name)

	_, err = f.svc.SetTeamFilter(ctx, "W QF1")
	assert.ErrorIs(t, err, ErrInvalidTeamFilter)

	name, err = f.svc.SetTeamFilter(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, name)
}

func TestTournamentService_TimeChanges(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.Refresh(ctx))

	changes, err := f.svc.Changes(ctx)
	require.NoError(t, err)
	assert.Empty(t, changes.Changes)

	f.feed.set("/rozpis.json", strings.Replace(scheduleJSON, `"cas": "10:00"`, `"cas": "10:45"`, 1))
	require.NoError(t, f.svc.Refresh(ctx))

	changes, err = f.svc.Changes(ctx)
	require.NoError(t, err)
	require.Len(t, changes.Changes, 1)
	assert.Equal(t, models.TimeChange{MatchKey: "2", Label: "Orli C - Lvi D", PreviousTime: "10:00", NewTime: "10:45"}, changes.Changes[0])
	assert.NotNil(t, changes.DetectedAt)
}

func TestTournamentService_TimeChangesAgainstCachedSchedule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.cache.Put(ctx, &models.CacheEntry{
		Key:  repositories.KeyScheduleCache,
		Data: []byte(strings.Replace(scheduleJSON, `"cas": "09:00", "hala": "Hala 1", "zapas": "Sokol`, `"cas": "08:30", "hala": "Hala 1", "zapas": "Sokol`, 1)),
	}))

	require.NoError(t, f.svc.Refresh(ctx))
	changes, err := f.svc.Changes(ctx)
	require.NoError(t, err)
	require.Len(t, changes.Changes, 1)
	assert.Equal(t, "08:30", changes.Changes[0].PreviousTime)
	assert.Equal(t, "09:00", changes.Changes[0].NewTime)
}

func TestTournamentService_PublishBackup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.PublishBackup(ctx, ResourceSchedule)
	assert.ErrorIs(t, err, ErrNothingToPublish)

	require.NoError(t, f.svc.Refresh(ctx))
	res, err := f.svc.PublishBackup(ctx, ResourceSchedule)
	require.NoError(t, err)
	assert.Equal(t, "rozpis.backup.json", res.Key)
	assert.JSONEq(t, scheduleJSON, string(f.store.uploads["rozpis.backup.json"]))

	_, err = f.svc.PublishBackup(ctx, "venue")
	assert.ErrorIs(t, err, ErrUnknownResource)
}

func TestTournamentService_PublishBackupDisabled(t *testing.T) {
	svc := NewTournamentService(TournamentDeps{}, nil)
	_, err := svc.PublishBackup(context.Background(), ResourceSchedule)
	assert.True(t, errors.Is(err, ErrBackupStoreDisabled))
}

func TestTournamentService_CorruptTeamFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.cache.Put(ctx, &models.CacheEntry{Key: repositories.KeyTeamFilter, SavedAt: time.Now(), Data: []byte(`{"team": 1}`)}))

	_, err := f.svc.TeamFilter(ctx)
	assert.ErrorContains(t, err, "decode team filter")
}

func TestTournamentService_CacheAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.Refresh(ctx))

	keys, err := f.svc.CacheKeys(ctx)
	require.NoError(t, err)
	assert.Contains(t, keys, repositories.KeyScheduleCache)
	assert.Contains(t, keys, repositories.KeyResultsCache)
	assert.Contains(t, keys, repositories.KeyTeamsCache)

	require.NoError(t, f.svc.PurgeCache(ctx, ResourceResults))
	_, err = f.cache.Get(ctx, repositories.KeyResultsCache)
	assert.ErrorIs(t, err, repositories.ErrCacheEntryNotFound)

	assert.ErrorIs(t, f.svc.PurgeCache(ctx, ResourceResults), ErrNotCached)
	assert.ErrorIs(t, f.svc.PurgeCache(ctx, "filtr"), ErrUnknownResource)

	// With the cache purged and live down, the backup tier answers.
	f.feed.set("/vysledky.json", "")
	f.feed.set("/vysledky.backup.json", resultsJSON)
	require.NoError(t, f.svc.Refresh(ctx))
	st, err := f.svc.Standings(ctx)
	require.NoError(t, err)
	assert.Equal(t, feed.TierBackup, st.Status.Source)
}

func TestTournamentService_TwoLegGroups(t *testing.T) {
	f := newFixture(t, func(d *TournamentDeps) { d.GroupLegs = 2 })
	ctx := context.Background()
	require.NoError(t, f.svc.Refresh(ctx))

	st, err := f.svc.Standings(ctx)
	require.NoError(t, err)
	groupA := st.Groups[0]
	assert.False(t, groupA.Complete)
	require.Len(t, groupA.Pending, 1)
	assert.Equal(t, "TJ B", groupA.Pending[0].Home)
	assert.Equal(t, 1, groupA.Rows[0].Rank)
	assert.Equal(t, 2, groupA.Rows[1].Rank)

	br, err := f.svc.Bracket(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1A", br.Rounds[0].Slots[0].HomeResolved)
}
