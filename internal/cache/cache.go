// Package cache stores short-lived JSON values for one console session.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/yz4230/asgard-console/internal/entity"
	"github.com/yz4230/asgard-console/internal/repository"
)

type Cache struct {
	repo repository.CacheRepository
	log  zerolog.Logger
	now  func() time.Time
}

func New(repo repository.CacheRepository, log zerolog.Logger) *Cache {
	return &Cache{repo: repo, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// Get decodes the value stored under key into v. It reports false when the key is
// missing or expired.
func (c *Cache) Get(ctx context.Context, key string, v any) (bool, error) {
	entry, err := c.repo.Get(ctx, key, c.now())
	if errors.Is(err, entity.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(entry.Value, v); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

// Set stores v under key for ttl.
func (c *Cache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("cache set %s: %w: ttl must be positive", key, entity.ErrInvalid)
	}
	value, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	now := c.now()
	entry := &repository.CacheEntry{Key: key, Value: value, ExpiresAt: now.Add(ttl), UpdatedAt: now}
	if err := c.repo.Put(ctx, entry); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.repo.Delete(ctx, key); err != nil {
		return fmt.Errorf("cache delete %s: %w", key, err)
	}
	return nil
}

// Shutdown purges expired entries. The injector calls it when the server stops.
func (c *Cache) Shutdown() error {
	n, err := c.repo.DeleteExpired(context.Background(), c.now())
	if err != nil {
		return fmt.Errorf("cache purge: %w", err)
	}
	c.log.Debug().Int("purged", n).Msg("cache purged")
	return nil
}
