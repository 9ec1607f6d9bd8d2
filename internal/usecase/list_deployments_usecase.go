package usecase

import (
	"context"

	"github.com/samber/do"
	"github.com/yz4230/asgard-console/internal/entity"
	"github.com/yz4230/asgard-console/internal/repository"
)

type ListDeploymentsUsecase interface {
	// Execute lists the local history, restricted to one cluster unless clusterName is empty.
	Execute(ctx context.Context, clusterName string) ([]*entity.DeploymentRecord, error)
}

type listDeploymentsUsecaseImpl struct {
	deploymentRepository repository.DeploymentRepository
}

// Execute implements ListDeploymentsUsecase.
func (l *listDeploymentsUsecaseImpl) Execute(ctx context.Context, clusterName string) ([]*entity.DeploymentRecord, error) {
	if clusterName == "" {
		return l.deploymentRepository.List(ctx)
	}
	return l.deploymentRepository.ListByCluster(ctx, clusterName)
}

func NewListDeploymentsUsecase(injector *do.Injector) (ListDeploymentsUsecase, error) {
	return &listDeploymentsUsecaseImpl{
		deploymentRepository: do.MustInvoke[repository.DeploymentRepository](injector),
	}, nil
}
