package usecase

import (
	"context"

	"github.com/samber/do"
	"github.com/yz4230/asgard-console/internal/entity"
	"github.com/yz4230/asgard-console/internal/repository"
)

type GetDraftUsecase interface {
	Execute(ctx context.Context, id entity.ID) (*DraftView, error)
}

type getDraftUsecaseImpl struct {
	draftRepository repository.DraftRepository
}

// Execute implements GetDraftUsecase.
func (g *getDraftUsecaseImpl) Execute(ctx context.Context, id entity.ID) (*DraftView, error) {
	draft, err := g.draftRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ed, err := openEditor(draft)
	if err != nil {
		return nil, err
	}
	return newDraftView(draft, ed), nil
}

func NewGetDraftUsecase(injector *do.Injector) (GetDraftUsecase, error) {
	return &getDraftUsecaseImpl{
		draftRepository: do.MustInvoke[repository.DraftRepository](injector),
	}, nil
}
