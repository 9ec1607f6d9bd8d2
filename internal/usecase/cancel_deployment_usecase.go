package usecase

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/samber/do"
	"github.com/yz4230/asgard-console/internal/asgard"
	"github.com/yz4230/asgard-console/internal/monitor"
)

type CancelDeploymentUsecase interface {
	Execute(ctx context.Context, id string) error
}

type cancelDeploymentUsecaseImpl struct {
	client asgard.Client
}

// Execute implements CancelDeploymentUsecase.
func (c *cancelDeploymentUsecaseImpl) Execute(ctx context.Context, id string) error {
	return monitor.New(c.client, id, monitor.Options{Logger: *zerolog.Ctx(ctx)}).Cancel(ctx)
}

func NewCancelDeploymentUsecase(injector *do.Injector) (CancelDeploymentUsecase, error) {
	return &cancelDeploymentUsecaseImpl{
		client: do.MustInvoke[asgard.Client](injector),
	}, nil
}
