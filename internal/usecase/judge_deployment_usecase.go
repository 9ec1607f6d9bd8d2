package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/samber/do"
	"github.com/yz4230/asgard-console/internal/asgard"
	"github.com/yz4230/asgard-console/internal/entity"
	"github.com/yz4230/asgard-console/internal/monitor"
)

type JudgeDeploymentUsecase interface {
	Execute(ctx context.Context, id string, judgment entity.Judgment) error
}

type judgeDeploymentUsecaseImpl struct {
	client asgard.Client
}

// Execute implements JudgeDeploymentUsecase. It reads the current token first and
// leaves it to the server to refuse a stale one.
func (j *judgeDeploymentUsecaseImpl) Execute(ctx context.Context, id string, judgment entity.Judgment) error {
	m := monitor.New(j.client, id, monitor.Options{Logger: *zerolog.Ctx(ctx)})
	if _, err := m.Refresh(ctx); err != nil {
		return err
	}
	switch judgment {
	case entity.JudgmentProceed:
		return m.Proceed(ctx)
	case entity.JudgmentRollback:
		return m.Rollback(ctx)
	}
	return fmt.Errorf("%w: judgment %q", entity.ErrInvalid, judgment)
}

func NewJudgeDeploymentUsecase(injector *do.Injector) (JudgeDeploymentUsecase, error) {
	return &judgeDeploymentUsecaseImpl{
		client: do.MustInvoke[asgard.Client](injector),
	}, nil
}
