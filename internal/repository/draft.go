package repository

import (
	"context"

	"github.com/samber/lo"
	"github.com/yz4230/asgard-console/internal/entity"
	"gorm.io/gorm"
)

type DraftRepository interface {
	Create(ctx context.Context, draft *entity.Draft) (*entity.Draft, error)
	GetByID(ctx context.Context, id entity.ID) (*entity.Draft, error)
	List(ctx context.Context) ([]*entity.Draft, error)
	ListByCluster(ctx context.Context, clusterName string) ([]*entity.Draft, error)
	Update(ctx context.Context, draft *entity.Draft) (*entity.Draft, error)
	Delete(ctx context.Context, id entity.ID) error
}

type draftRepositoryImpl struct {
	db *gorm.DB
}

func NewDraftRepository(db *gorm.DB) DraftRepository {
	return &draftRepositoryImpl{db: db}
}

// Create implements DraftRepository.
func (r *draftRepositoryImpl) Create(ctx context.Context, draft *entity.Draft) (*entity.Draft, error) {
	var model Draft
	model.FromEntity(draft)
	if err := gorm.G[Draft](r.db).Create(ctx, &model); err != nil {
		return nil, translate(err)
	}
	return model.ToEntity(), nil
}

// GetByID implements DraftRepository.
func (r *draftRepositoryImpl) GetByID(ctx context.Context, id entity.ID) (*entity.Draft, error) {
	found, err := gorm.G[Draft](r.db).Where("id = ?", id.Uint()).First(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return found.ToEntity(), nil
}

// List implements DraftRepository. Recently edited drafts come first.
func (r *draftRepositoryImpl) List(ctx context.Context) ([]*entity.Draft, error) {
	founds, err := gorm.G[Draft](r.db).Order("updated_at desc, id desc").Find(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return lo.Map(founds, func(f Draft, _ int) *entity.Draft { return f.ToEntity() }), nil
}

// ListByCluster implements DraftRepository.
func (r *draftRepositoryImpl) ListByCluster(ctx context.Context, clusterName string) ([]*entity.Draft, error) {
	founds, err := gorm.G[Draft](r.db).Where("cluster_name = ?", clusterName).Order("updated_at desc, id desc").Find(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return lo.Map(founds, func(f Draft, _ int) *entity.Draft { return f.ToEntity() }), nil
}

// Update implements DraftRepository.
func (r *draftRepositoryImpl) Update(ctx context.Context, draft *entity.Draft) (*entity.Draft, error) {
	var model Draft
	model.FromEntity(draft)
	n, err := gorm.G[Draft](r.db).
		Where("id = ?", draft.ID.Uint()).
		Select("cluster_name", "template_name", "display").
		Updates(ctx, model)
	if err != nil {
		return nil, translate(err)
	}
	if n == 0 {
		return nil, translate(ErrNotFound)
	}
	return r.GetByID(ctx, draft.ID)
}

// Delete implements DraftRepository.
func (r *draftRepositoryImpl) Delete(ctx context.Context, id entity.ID) error {
	n, err := gorm.G[Draft](r.db).Where("id = ?", id.Uint()).Delete(ctx)
	if err != nil {
		return translate(err)
	}
	if n == 0 {
		return translate(ErrNotFound)
	}
	return nil
}
