package usecase

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"github.com/samber/do"
	"github.com/samber/lo"
	"github.com/yz4230/asgard-console/internal/asgard"
	"github.com/yz4230/asgard-console/internal/entity"
	"github.com/yz4230/asgard-console/internal/repository"
	"github.com/yz4230/asgard-console/internal/stepeditor"
)

type StartDeploymentInput struct {
	ClusterName  string
	TemplateName string
	// Steps replaces the steps of the template. Nil keeps them.
	Steps []entity.Step
	// SubnetPurpose overrides the purpose of the prepared ASG options when set.
	SubnetPurpose string
	// SuspendedProcesses turns the listed processes on or off.
	SuspendedProcesses map[string]bool
}

type StartDeploymentUsecase interface {
	// Execute prepares, customizes and starts a deployment and returns the id the
	// server assigned to it. A rejection is returned as *entity.ValidationError.
	Execute(ctx context.Context, in *StartDeploymentInput) (string, error)
}

type startDeploymentUsecaseImpl struct {
	client               asgard.Client
	prepare              PrepareDeploymentUsecase
	deploymentRepository repository.DeploymentRepository
}

// Execute implements StartDeploymentUsecase.
func (s *startDeploymentUsecaseImpl) Execute(ctx context.Context, in *StartDeploymentInput) (string, error) {
	template := templateOrDefault(in.TemplateName)
	prepared, err := s.prepare.Execute(ctx, in.ClusterName, template)
	if err != nil {
		return "", err
	}
	request, err := customize(prepared, in)
	if err != nil {
		return "", err
	}
	if err := stepeditor.Validate(request.DeploymentOptions.Steps); err != nil {
		return "", err
	}

	id, err := s.client.StartDeployment(ctx, request)
	if err != nil {
		return "", err
	}

	logger := zerolog.Ctx(ctx)
	logger.Info().Str("id", id).Str("cluster", in.ClusterName).Msg("deployment started")
	_, err = s.deploymentRepository.Create(ctx, &entity.DeploymentRecord{
		DeploymentID: id,
		ClusterName:  in.ClusterName,
		TemplateName: template,
		Status:       entity.DeploymentStatusRunning,
	})
	if err != nil {
		// the deployment runs regardless, only the local history misses it
		logger.Warn().Err(err).Str("id", id).Msg("failed to record deployment")
	}
	return id, nil
}

func customize(prepared *entity.PreparedDeployment, in *StartDeploymentInput) (*entity.DeploymentRequest, error) {
	request := prepared.Request()
	if in.Steps != nil {
		request.DeploymentOptions.Steps = slices.Clone(in.Steps)
	}
	if request.AsgOptions == nil {
		request.AsgOptions = entity.Options{}
	}
	if in.SubnetPurpose != "" {
		if prepared.Environment.VpcID(in.SubnetPurpose) == "" {
			return nil, fmt.Errorf("%w: unknown subnet purpose %q", entity.ErrInvalid, in.SubnetPurpose)
		}
		if err := request.AsgOptions.Set("subnetPurpose", in.SubnetPurpose); err != nil {
			return nil, err
		}
	}
	processes := lo.Keys(in.SuspendedProcesses)
	slices.Sort(processes)
	for _, process := range processes {
		if err := request.AsgOptions.SetProcessSuspended(process, in.SuspendedProcesses[process]); err != nil {
			return nil, err
		}
	}
	return request, nil
}

func NewStartDeploymentUsecase(injector *do.Injector) (StartDeploymentUsecase, error) {
	return &startDeploymentUsecaseImpl{
		client:               do.MustInvoke[asgard.Client](injector),
		prepare:              do.MustInvoke[PrepareDeploymentUsecase](injector),
		deploymentRepository: do.MustInvoke[repository.DeploymentRepository](injector),
	}, nil
}
