package usecase

import (
	"context"
	"fmt"

	"github.com/samber/do"
	"github.com/yz4230/asgard-console/internal/asgard"
	"github.com/yz4230/asgard-console/internal/entity"
)

type PrepareDeploymentUsecase interface {
	Execute(ctx context.Context, clusterName, templateName string) (*entity.PreparedDeployment, error)
}

type prepareDeploymentUsecaseImpl struct {
	client asgard.Client
}

// Execute implements PrepareDeploymentUsecase. An empty template name selects the default template.
func (p *prepareDeploymentUsecaseImpl) Execute(ctx context.Context, clusterName, templateName string) (*entity.PreparedDeployment, error) {
	if clusterName == "" {
		return nil, fmt.Errorf("%w: empty cluster name", entity.ErrInvalid)
	}
	return p.client.PrepareDeployment(ctx, clusterName, templateOrDefault(templateName))
}

func NewPrepareDeploymentUsecase(injector *do.Injector) (PrepareDeploymentUsecase, error) {
	return &prepareDeploymentUsecaseImpl{
		client: do.MustInvoke[asgard.Client](injector),
	}, nil
}
