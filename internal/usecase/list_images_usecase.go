package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/do"
	"github.com/samber/lo"
	"github.com/yz4230/asgard-console/internal/asgard"
	"github.com/yz4230/asgard-console/internal/cache"
	"github.com/yz4230/asgard-console/internal/entity"
)

const imagesCacheKey = "images"

type ListImagesUsecase interface {
	Execute(ctx context.Context) ([]entity.Image, error)
}

type listImagesUsecaseImpl struct {
	client asgard.Client
	cache  *cache.Cache
	ttl    time.Duration
}

// Execute implements ListImagesUsecase. The list is served from the cache while fresh.
func (l *listImagesUsecaseImpl) Execute(ctx context.Context) ([]entity.Image, error) {
	logger := zerolog.Ctx(ctx)

	var images []entity.Image
	hit, err := l.cache.Get(ctx, imagesCacheKey, &images)
	if err != nil {
		logger.Warn().Err(err).Msg("image cache read failed")
	}
	if hit {
		return images, nil
	}

	images, err = l.client.ListImages(ctx)
	if err != nil {
		return nil, err
	}
	if err := l.cache.Set(ctx, imagesCacheKey, images, l.ttl); err != nil {
		logger.Warn().Err(err).Msg("image cache write failed")
	}
	return images, nil
}

func NewListImagesUsecase(injector *do.Injector) (ListImagesUsecase, error) {
	cfg := do.MustInvoke[Config](injector)
	return &listImagesUsecaseImpl{
		client: do.MustInvoke[asgard.Client](injector),
		cache:  do.MustInvoke[*cache.Cache](injector),
		ttl:    lo.Ternary(cfg.ImageCacheTTL > 0, cfg.ImageCacheTTL, DefaultImageCacheTTL),
	}, nil
}
