package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/samber/do"
	"github.com/yz4230/asgard-console/internal/asgard"
	"github.com/yz4230/asgard-console/internal/entity"
	"github.com/yz4230/asgard-console/internal/monitor"
	"github.com/yz4230/asgard-console/internal/repository"
)

// DeploymentView is a snapshot together with what the monitor derives from it.
type DeploymentView struct {
	Deployment         *entity.Deployment  `json:"deployment"`
	LogText            string              `json:"logText"`
	CurrentStep        int                 `json:"currentStep"`
	StepStatuses       []entity.StepStatus `json:"stepStatuses"`
	ExecutionReference string              `json:"executionReference"`
}

func newDeploymentView(d *entity.Deployment) *DeploymentView {
	return &DeploymentView{
		Deployment:         d,
		LogText:            monitor.LogText(d),
		CurrentStep:        monitor.CurrentStep(d),
		StepStatuses:       monitor.StepStatuses(d),
		ExecutionReference: monitor.ExecutionReference(d.WorkflowExecution),
	}
}

type GetDeploymentUsecase interface {
	Execute(ctx context.Context, id string) (*DeploymentView, error)
}

type getDeploymentUsecaseImpl struct {
	client               asgard.Client
	deploymentRepository repository.DeploymentRepository
}

// Execute implements GetDeploymentUsecase. The local history record, if any, is
// brought up to date with the snapshot.
func (g *getDeploymentUsecaseImpl) Execute(ctx context.Context, id string) (*DeploymentView, error) {
	m := monitor.New(g.client, id, monitor.Options{Logger: *zerolog.Ctx(ctx)})
	d, err := m.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	g.syncRecord(ctx, d)
	return newDeploymentView(d), nil
}

func (g *getDeploymentUsecaseImpl) syncRecord(ctx context.Context, d *entity.Deployment) {
	logger := zerolog.Ctx(ctx)
	rec, err := g.deploymentRepository.GetByDeploymentID(ctx, d.ID)
	if errors.Is(err, entity.ErrNotFound) {
		return
	}
	if err != nil {
		logger.Warn().Err(err).Str("id", d.ID).Msg("failed to load deployment record")
		return
	}
	if rec.Status == d.Status && rec.Done == d.Done {
		return
	}
	rec.Status, rec.Done = d.Status, d.Done
	if _, err := g.deploymentRepository.Update(ctx, rec); err != nil {
		logger.Warn().Err(err).Str("id", d.ID).Msg("failed to update deployment record")
	}
}

func NewGetDeploymentUsecase(injector *do.Injector) (GetDeploymentUsecase, error) {
	return &getDeploymentUsecaseImpl{
		client:               do.MustInvoke[asgard.Client](injector),
		deploymentRepository: do.MustInvoke[repository.DeploymentRepository](injector),
	}, nil
}
