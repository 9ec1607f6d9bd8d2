package usecase

import (
	"context"
	"errors"

	"github.com/samber/do"
	"github.com/yz4230/asgard-console/internal/entity"
	"github.com/yz4230/asgard-console/internal/repository"
	"github.com/yz4230/asgard-console/internal/stepeditor"
)

type EditDraftUsecase interface {
	// Execute applies ev to the draft and stores the result. When the event carries
	// malformed JSON the stored draft is unchanged, and the returned view holds the
	// parse error next to the returned *stepeditor.ParseError.
	Execute(ctx context.Context, id entity.ID, ev stepeditor.Event) (*DraftView, error)
}

type editDraftUsecaseImpl struct {
	draftRepository repository.DraftRepository
}

// Execute implements EditDraftUsecase.
func (e *editDraftUsecaseImpl) Execute(ctx context.Context, id entity.ID, ev stepeditor.Event) (*DraftView, error) {
	draft, err := e.draftRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ed, err := openEditor(draft)
	if err != nil {
		return nil, err
	}

	if err := ed.Dispatch(ev); err != nil {
		var pe *stepeditor.ParseError
		if errors.As(err, &pe) {
			return newDraftView(draft, ed), err
		}
		return nil, err
	}

	draft.Display, err = encodeDisplay(ed)
	if err != nil {
		return nil, err
	}
	updated, err := e.draftRepository.Update(ctx, draft)
	if err != nil {
		return nil, err
	}
	return newDraftView(updated, ed), nil
}

func NewEditDraftUsecase(injector *do.Injector) (EditDraftUsecase, error) {
	return &editDraftUsecaseImpl{
		draftRepository: do.MustInvoke[repository.DraftRepository](injector),
	}, nil
}
