package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/do"
	"github.com/samber/lo"
	"github.com/yz4230/asgard-console/internal/asgard"
	"github.com/yz4230/asgard-console/internal/entity"
	"github.com/yz4230/asgard-console/internal/monitor"
)

type WatchDeploymentOptions struct {
	// MaxFailures ends the watch after that many consecutive failed polls. Zero never gives up.
	MaxFailures int
	OnUpdate    func(*DeploymentView)
}

type WatchDeploymentUsecase interface {
	// Execute polls the deployment until it is done or ctx ends and returns the last
	// snapshot seen, which may be nil.
	Execute(ctx context.Context, id string, opts WatchDeploymentOptions) (*DeploymentView, error)
}

type watchDeploymentUsecaseImpl struct {
	client   asgard.Client
	interval time.Duration
}

// Execute implements WatchDeploymentUsecase.
func (w *watchDeploymentUsecaseImpl) Execute(ctx context.Context, id string, opts WatchDeploymentOptions) (*DeploymentView, error) {
	m := monitor.New(w.client, id, monitor.Options{
		Interval:    w.interval,
		MaxFailures: opts.MaxFailures,
		Logger:      *zerolog.Ctx(ctx),
		OnUpdate: func(d *entity.Deployment) {
			if opts.OnUpdate != nil {
				opts.OnUpdate(newDeploymentView(d))
			}
		},
	})
	err := m.Run(ctx)
	if d := m.Deployment(); d != nil {
		return newDeploymentView(d), err
	}
	return nil, err
}

func NewWatchDeploymentUsecase(injector *do.Injector) (WatchDeploymentUsecase, error) {
	cfg := do.MustInvoke[Config](injector)
	return &watchDeploymentUsecaseImpl{
		client:   do.MustInvoke[asgard.Client](injector),
		interval: lo.Ternary(cfg.PollInterval > 0, cfg.PollInterval, DefaultPollInterval),
	}, nil
}
