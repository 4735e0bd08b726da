package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/mcr-results/feed"
	"github.com/Dosada05/mcr-results/matches"
	"github.com/Dosada05/mcr-results/models"
	"github.com/Dosada05/mcr-results/repositories"
	"github.com/Dosada05/mcr-results/teams"
)

// Resource names, as served by /api/status and /api/admin/backups/{resource}.
const (
	ResourceSchedule = "rozpis"
	ResourceResults  = "vysledky"
	ResourceTeams    = "tymy"
)

var resourceOrder = []string{ResourceSchedule, ResourceResults, ResourceTeams}

// Resource is a loader resource plus the object key of its published backup.
type Resource struct {
	feed.Resource
	BackupKey string
}

// CacheKeyFor returns the stable cache key of a resource.
func CacheKeyFor(name string) string {
	switch name {
	case ResourceSchedule:
		return repositories.KeyScheduleCache
	case ResourceResults:
		return repositories.KeyResultsCache
	case ResourceTeams:
		return repositories.KeyTeamsCache
	}
	return ""
}

// ValidatorFor returns the shape check of a resource.
func ValidatorFor(name string) feed.Validator {
	switch name {
	case ResourceSchedule:
		return decodes(feed.ValidSchedule, func(data []byte) error {
			var sched models.Schedule
			return json.Unmarshal(data, &sched)
		})
	case ResourceResults:
		return decodes(feed.ValidResults, func(data []byte) error {
			_, err := matches.ParseResults(data)
			return err
		})
	case ResourceTeams:
		return ValidTeams
	}
	return feed.ValidJSON
}

// decodes chains a shape check with the decoder the snapshot uses, so a
// payload that cannot be applied is never cached as last-known-good.
func decodes(shape feed.Validator, decode func([]byte) error) feed.Validator {
	return func(data []byte) error {
		if err := shape(data); err != nil {
			return err
		}
		if err := decode(data); err != nil {
			return fmt.Errorf("%w: %w", feed.ErrValidation, err)
		}
		return nil
	}
}

// ValidTeams accepts a team list in which every entry has id, name, seed and group.
func ValidTeams(data []byte) error {
	if _, err := teams.Parse(data); err != nil {
		return fmt.Errorf("%w: %w", feed.ErrValidation, err)
	}
	return nil
}

type feedCache struct {
	repo repositories.CacheRepository
}

// NewFeedCache adapts a cache repository to the loader's cache interface.
func NewFeedCache(repo repositories.CacheRepository) feed.Cache {
	return &feedCache{repo: repo}
}

func (c *feedCache) Get(ctx context.Context, key string) (*models.CacheEntry, error) {
	entry, err := c.repo.Get(ctx, key)
	if errors.Is(err, repositories.ErrCacheEntryNotFound) {
		return nil, nil
	}
	return entry, err
}

func (c *feedCache) Put(ctx context.Context, entry *models.CacheEntry) error {
	return c.repo.Put(ctx, entry)
}
