package usecase

import (
	"context"

	"github.com/samber/do"
	"github.com/yz4230/asgard-console/internal/entity"
	"github.com/yz4230/asgard-console/internal/repository"
)

type ListDraftsUsecase interface {
	Execute(ctx context.Context, clusterName string) ([]*entity.Draft, error)
}

type listDraftsUsecaseImpl struct {
	draftRepository repository.DraftRepository
}

// Execute implements ListDraftsUsecase.
func (l *listDraftsUsecaseImpl) Execute(ctx context.Context, clusterName string) ([]*entity.Draft, error) {
	if clusterName == "" {
		return l.draftRepository.List(ctx)
	}
	return l.draftRepository.ListByCluster(ctx, clusterName)
}

func NewListDraftsUsecase(injector *do.Injector) (ListDraftsUsecase, error) {
	return &listDraftsUsecaseImpl{
		draftRepository: do.MustInvoke[repository.DraftRepository](injector),
	}, nil
}
