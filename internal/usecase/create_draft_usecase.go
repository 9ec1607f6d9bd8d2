package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/samber/do"
	"github.com/yz4230/asgard-console/internal/entity"
	"github.com/yz4230/asgard-console/internal/repository"
	"github.com/yz4230/asgard-console/internal/stepeditor"
)

type CreateDraftInput struct {
	ClusterName  string
	TemplateName string
	// Steps seeds the draft. When nil the steps of the prepared deployment are used.
	Steps []entity.Step
}

type CreateDraftUsecase interface {
	Execute(ctx context.Context, in *CreateDraftInput) (*DraftView, error)
}

type createDraftUsecaseImpl struct {
	prepare         PrepareDeploymentUsecase
	draftRepository repository.DraftRepository
}

// Execute implements CreateDraftUsecase.
func (c *createDraftUsecaseImpl) Execute(ctx context.Context, in *CreateDraftInput) (*DraftView, error) {
	if in.ClusterName == "" {
		return nil, fmt.Errorf("%w: empty cluster name", entity.ErrInvalid)
	}
	template := templateOrDefault(in.TemplateName)

	steps := in.Steps
	if steps == nil {
		prepared, err := c.prepare.Execute(ctx, in.ClusterName, template)
		if err != nil {
			return nil, err
		}
		steps = prepared.DeploymentOptions.Steps
	}

	ed := stepeditor.New(steps)
	display, err := encodeDisplay(ed)
	if err != nil {
		return nil, err
	}
	draft, err := c.draftRepository.Create(ctx, &entity.Draft{
		ClusterName:  in.ClusterName,
		TemplateName: template,
		Display:      display,
	})
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().Str("draft", draft.ID.String()).Str("cluster", in.ClusterName).Msg("draft created")
	return newDraftView(draft, ed), nil
}

func NewCreateDraftUsecase(injector *do.Injector) (CreateDraftUsecase, error) {
	return &createDraftUsecaseImpl{
		prepare:         do.MustInvoke[PrepareDeploymentUsecase](injector),
		draftRepository: do.MustInvoke[repository.DraftRepository](injector),
	}, nil
}
