package deployment

import (
	"context"
	"fmt"

	"github.com/samber/do"
	"github.com/spf13/cobra"
	"github.com/yz4230/asgard-console/internal/entity"
	"github.com/yz4230/asgard-console/internal/usecase"
)

var watchFlags struct {
	maxFailures int
}

var watchCmd = &cobra.Command{
	Use:   "watch <id>",
	Short: "Follow a deployment until it is done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withInjector(cmd, func(ctx context.Context, injector *do.Injector) error {
			return watchDeployment(ctx, cmd, injector, args[0])
		})
	},
}

func init() {
	watchCmd.Flags().IntVar(&watchFlags.maxFailures, "max-failures", 0, "Give up after this many consecutive failed polls, 0 never gives up")
}

// watchDeployment prints the log of the deployment as it grows and a step table once
// it is done. A deployment that does not complete is reported as an error.
func watchDeployment(ctx context.Context, cmd *cobra.Command, injector *do.Injector, id string) error {
	watch := do.MustInvoke[usecase.WatchDeploymentUsecase](injector)
	printer := &logPrinter{w: cmd.OutOrStdout()}
	view, err := watch.Execute(ctx, id, usecase.WatchDeploymentOptions{
		MaxFailures: watchFlags.maxFailures,
		OnUpdate:    printer.update,
	})
	if view != nil {
		printStepTable(cmd.OutOrStdout(), view)
	}
	if err != nil {
		return err
	}
	if view.Deployment.Status != entity.DeploymentStatusCompleted {
		return fmt.Errorf("deployment %s ended with status %s", id, view.Deployment.Status)
	}
	return nil
}
