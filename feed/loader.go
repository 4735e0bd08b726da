// Package feed loads JSON resources through the live, cache and backup tiers.
package feed

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/mcr-results/models"
)

type Tier string

const (
	TierLive   Tier = "live"
	TierCache  Tier = "cache"
	TierBackup Tier = "backup"
)

// Banner maps the serving tier to the status banner shown to users.
func (t Tier) Banner(fetchedAt time.Time) models.StatusBanner {
	switch t {
	case TierLive:
		return models.StatusBanner{Severity: models.SeverityOK, Message: "live data"}
	case TierCache:
		return models.StatusBanner{
			Severity: models.SeverityInfo,
			Message:  "data from cache, saved " + fetchedAt.Local().Format("2.1. 15:04"),
		}
	case TierBackup:
		return models.StatusBanner{Severity: models.SeverityWarn, Message: "live data unavailable, showing backup"}
	default:
		return models.StatusBanner{Severity: models.SeverityError, Message: "data unavailable"}
	}
}

// Cache is the durable key-value store for last-known-good payloads.
// Get returns nil, nil on a miss.
type Cache interface {
	Get(ctx context.Context, key string) (*models.CacheEntry, error)
	Put(ctx context.Context, entry *models.CacheEntry) error
}

// Resource describes one named JSON document and its fallbacks.
type Resource struct {
	Name     string
	Primary  Source
	Backup   Source
	CacheKey string
	Validate Validator
}

type Result struct {
	Data      json.RawMessage
	Source    Tier
	FetchedAt time.Time
	// Digest is the SHA-256 of Data, used to detect unchanged payloads.
	Digest string
}

type Loader struct {
	Cache  Cache
	Logger *slog.Logger
	Now    func() time.Time
}

func NewLoader(cache Cache, logger *slog.Logger) *Loader {
	return &Loader{Cache: cache, Logger: logger, Now: time.Now}
}

// Load tries each tier in strict order. Only a live success writes the cache.
func (l *Loader) Load(ctx context.Context, res Resource) (*Result, error) {
	validate := res.Validate
	if validate == nil {
		validate = ValidJSON
	}
	log := l.logger().With("resource", res.Name)

	var causes []error

	// 1. live
	if res.Primary != nil {
		data, err := fetchValid(ctx, res.Primary, validate)
		if err == nil {
			now := l.now()
			if l.Cache != nil && res.CacheKey != "" {
				entry := &models.CacheEntry{Key: res.CacheKey, SavedAt: now, Data: data}
				if perr := l.Cache.Put(ctx, entry); perr != nil {
					log.Warn("failed to persist live payload to cache", "error", perr)
				}
			}
			log.Debug("resource loaded", "source", TierLive)
			return newResult(data, TierLive, now), nil
		}
		log.Warn("live fetch failed, falling back to cache", "error", err)
		causes = append(causes, fmt.Errorf("live: %w", err))
	}

	// 2. cache
	if l.Cache != nil && res.CacheKey != "" {
		entry, err := l.Cache.Get(ctx, res.CacheKey)
		switch {
		case err != nil:
			log.Warn("cache read failed", "error", err)
			causes = append(causes, fmt.Errorf("cache: %w", err))
		case entry == nil:
			causes = append(causes, errors.New("cache: miss"))
		default:
			if verr := validate(entry.Data); verr != nil {
				log.Warn("cached payload is invalid", "error", verr)
				causes = append(causes, fmt.Errorf("cache: %w", verr))
			} else {
				log.Info("resource served from cache", "saved_at", entry.SavedAt)
				return newResult(entry.Data, TierCache, entry.SavedAt), nil
			}
		}
	}

	// 3. backup
	if res.Backup != nil {
		data, err := fetchValid(ctx, res.Backup, validate)
		if err == nil {
			log.Warn("resource served from backup")
			return newResult(data, TierBackup, l.now()), nil
		}
		log.Warn("backup fetch failed", "error", err)
		causes = append(causes, fmt.Errorf("backup: %w", err))
	}

	if len(causes) == 0 {
		causes = append(causes, errors.New("no sources configured"))
	}
	log.Error("all sources exhausted")
	return nil, fmt.Errorf("%w: %s: %w", ErrAllSourcesExhausted, res.Name, errors.Join(causes...))
}

func fetchValid(ctx context.Context, src Source, validate Validator) (json.RawMessage, error) {
	data, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate(data); err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

func newResult(data json.RawMessage, tier Tier, at time.Time) *Result {
	sum := sha256.Sum256(data)
	return &Result{Data: data, Source: tier, FetchedAt: at, Digest: hex.EncodeToString(sum[:])}
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

func (l *Loader) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}
