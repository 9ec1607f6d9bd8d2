package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/yz4230/asgard-console/internal/entity"
	"github.com/yz4230/asgard-console/internal/repository"
)

func newCache(t *testing.T) (*Cache, *time.Time) {
	t.Helper()
	db, err := repository.NewSQLiteDB("")
	if err != nil {
		t.Fatalf("NewSQLiteDB() error = %v", err)
	}
	t.Cleanup(func() { _ = repository.CloseDB(db) })

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := New(repository.NewCacheRepository(db), zerolog.Nop())
	c.now = func() time.Time { return now }
	return c, &now
}

func TestCacheSetGet(t *testing.T) {
	ctx := context.Background()
	c, now := newCache(t)

	images := []entity.Image{{ImageID: "ami-1", Name: "base"}}
	if err := c.Set(ctx, "images", images, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got []entity.Image
	ok, err := c.Get(ctx, "images", &got)
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v; want hit", ok, err)
	}
	if diff := cmp.Diff(images, got); diff != "" {
		t.Errorf("Get() mismatch (-want +got):\n%s", diff)
	}

	*now = now.Add(2 * time.Minute)
	ok, err = c.Get(ctx, "images", &got)
	if err != nil || ok {
		t.Errorf("Get() after expiry = %v, %v; want miss", ok, err)
	}
}

func TestCacheDelete(t *testing.T) {
	ctx := context.Background()
	c, _ := newCache(t)

	if err := c.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	var s string
	if ok, _ := c.Get(ctx, "k", &s); ok {
		t.Errorf("Get() after Delete() hit")
	}
}

func TestCacheSetRejectsZeroTTL(t *testing.T) {
	c, _ := newCache(t)
	if err := c.Set(context.Background(), "k", 1, 0); !errors.Is(err, entity.ErrInvalid) {
		t.Errorf("Set() error = %v, want ErrInvalid", err)
	}
}

func TestCacheShutdownPurgesExpired(t *testing.T) {
	ctx := context.Background()
	c, now := newCache(t)

	if err := c.Set(ctx, "short", 1, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Set(ctx, "long", 2, time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	*now = now.Add(10 * time.Minute)
	if err := c.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	n, err := c.repo.DeleteExpired(ctx, now.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("DeleteExpired() error = %v", err)
	}
	if n != 1 {
		t.Errorf("entries left to purge = %d, want 1 (only long)", n)
	}
}
