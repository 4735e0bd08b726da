package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/mcr-results/models"
	"github.com/lib/pq"
)

// Stable cache keys. Values are {timestamp, data} envelopes.
const (
	KeyScheduleCache = "mcr_u15_rozpis_cache_v1"
	KeyResultsCache  = "mcr_u15_vysledky_cache_v1"
	KeyTeamsCache    = "mcr_u15_tymy_cache_v1"
	KeyTeamFilter    = "mcr_u15_team_filter_v1"
	KeyTimeChanges   = "mcr_u15_time_changes_v1"
)

var (
	ErrCacheEntryNotFound = errors.New("cache entry not found")
	ErrCacheSchemaMissing = errors.New("cache table does not exist")
	ErrCacheKeyRequired   = errors.New("cache key is required")
)

type CacheRepository interface {
	EnsureSchema(ctx context.Context) error
	Get(ctx context.Context, key string) (*models.CacheEntry, error)
	Put(ctx context.Context, entry *models.CacheEntry) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// cacheDialect holds the driver-specific statements. Both Postgres and SQLite
// accept ON CONFLICT ... DO UPDATE with the excluded pseudo-table.
type cacheDialect struct {
	name      string
	createSQL string
	getSQL    string
	putSQL    string
	deleteSQL string
	keysSQL   string
	mapErr    func(error) error
}

var postgresCacheDialect = cacheDialect{
	name: "postgres",
	createSQL: `
		CREATE TABLE IF NOT EXISTS cache_entries (
			key      TEXT PRIMARY KEY,
			saved_at BIGINT NOT NULL,
			data     TEXT NOT NULL
		)`,
	getSQL: `SELECT key, saved_at, data FROM cache_entries WHERE key = $1`,
	putSQL: `
		INSERT INTO cache_entries (key, saved_at, data) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET saved_at = EXCLUDED.saved_at, data = EXCLUDED.data`,
	deleteSQL: `DELETE FROM cache_entries WHERE key = $1`,
	keysSQL:   `SELECT key FROM cache_entries ORDER BY key`,
	mapErr: func(err error) error {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "42P01" { // undefined_table
			return fmt.Errorf("%w: %w", ErrCacheSchemaMissing, err)
		}
		return err
	},
}

var sqliteCacheDialect = cacheDialect{
	name: "sqlite",
	createSQL: `
		CREATE TABLE IF NOT EXISTS cache_entries (
			key      TEXT PRIMARY KEY,
			saved_at INTEGER NOT NULL,
			data     TEXT NOT NULL
		)`,
	getSQL: `SELECT key, saved_at, data FROM cache_entries WHERE key = ?`,
	putSQL: `
		INSERT INTO cache_entries (key, saved_at, data) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET saved_at = excluded.saved_at, data = excluded.data`,
	deleteSQL: `DELETE FROM cache_entries WHERE key = ?`,
	keysSQL:   `SELECT key FROM cache_entries ORDER BY key`,
	mapErr:    func(err error) error { return err },
}

type sqlCacheRepository struct {
	db      SQLExecutor
	dialect cacheDialect
}

func NewPostgresCacheRepository(db SQLExecutor) CacheRepository {
	return &sqlCacheRepository{db: db, dialect: postgresCacheDialect}
}

func NewSQLiteCacheRepository(db SQLExecutor) CacheRepository {
	return &sqlCacheRepository{db: db, dialect: sqliteCacheDialect}
}

func (r *sqlCacheRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, r.dialect.createSQL); err != nil {
		return fmt.Errorf("failed to create %s cache table: %w", r.dialect.name, err)
	}
	return nil
}

func (r *sqlCacheRepository) Get(ctx context.Context, key string) (*models.CacheEntry, error) {
	if key == "" {
		return nil, ErrCacheKeyRequired
	}
	var (
		entry   models.CacheEntry
		savedAt int64
		data    string
	)
	err := r.db.QueryRowContext(ctx, r.dialect.getSQL, key).Scan(&entry.Key, &savedAt, &data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCacheEntryNotFound
		}
		return nil, r.dialect.mapErr(err)
	}
	entry.SavedAt = time.UnixMilli(savedAt).UTC()
	entry.Data = json.RawMessage(data)
	return &entry, nil
}

func (r *sqlCacheRepository) Put(ctx context.Context, entry *models.CacheEntry) error {
	if entry == nil || entry.Key == "" {
		return ErrCacheKeyRequired
	}
	if entry.SavedAt.IsZero() {
		entry.SavedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, r.dialect.putSQL, entry.Key, entry.SavedAt.UnixMilli(), string(entry.Data))
	if err != nil {
		return fmt.Errorf("failed to save cache entry %q: %w", entry.Key, r.dialect.mapErr(err))
	}
	return nil
}

func (r *sqlCacheRepository) Delete(ctx context.Context, key string) error {
	result, err := r.db.ExecContext(ctx, r.dialect.deleteSQL, key)
	if err != nil {
		return r.dialect.mapErr(err)
	}
	return checkAffectedRows(result, ErrCacheEntryNotFound)
}

func (r *sqlCacheRepository) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.keysSQL)
	if err != nil {
		return nil, r.dialect.mapErr(err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
