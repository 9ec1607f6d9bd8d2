package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CacheRepository interface {
	// Get returns the entry for key, ErrNotFound when it is missing or expired.
	Get(ctx context.Context, key string, now time.Time) (*CacheEntry, error)
	Put(ctx context.Context, entry *CacheEntry) error
	Delete(ctx context.Context, key string) error
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

type cacheRepositoryImpl struct {
	db *gorm.DB
}

func NewCacheRepository(db *gorm.DB) CacheRepository {
	return &cacheRepositoryImpl{db: db}
}

// Get implements CacheRepository.
func (r *cacheRepositoryImpl) Get(ctx context.Context, key string, now time.Time) (*CacheEntry, error) {
	found, err := gorm.G[CacheEntry](r.db).Where("cache_key = ? AND expires_at > ?", key, now).First(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return &found, nil
}

// Put implements CacheRepository, replacing an existing entry with the same key.
func (r *cacheRepositoryImpl) Put(ctx context.Context, entry *CacheEntry) error {
	upsert := clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}
	return translate(gorm.G[CacheEntry](r.db, upsert).Create(ctx, entry))
}

// Delete implements CacheRepository. Deleting a missing key is not an error.
func (r *cacheRepositoryImpl) Delete(ctx context.Context, key string) error {
	_, err := gorm.G[CacheEntry](r.db).Where("cache_key = ?", key).Delete(ctx)
	return translate(err)
}

// DeleteExpired implements CacheRepository.
func (r *cacheRepositoryImpl) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	n, err := gorm.G[CacheEntry](r.db).Where("expires_at <= ?", now).Delete(ctx)
	return n, translate(err)
}
