package usecase

import (
	"context"

	"github.com/samber/do"
	"github.com/yz4230/asgard-console/internal/entity"
	"github.com/yz4230/asgard-console/internal/repository"
)

type DeleteDraftUsecase interface {
	Execute(ctx context.Context, id entity.ID) error
}

type deleteDraftUsecaseImpl struct {
	draftRepository repository.DraftRepository
}

// Execute implements DeleteDraftUsecase.
func (d *deleteDraftUsecaseImpl) Execute(ctx context.Context, id entity.ID) error {
	return d.draftRepository.Delete(ctx, id)
}

func NewDeleteDraftUsecase(injector *do.Injector) (DeleteDraftUsecase, error) {
	return &deleteDraftUsecaseImpl{
		draftRepository: do.MustInvoke[repository.DraftRepository](injector),
	}, nil
}
