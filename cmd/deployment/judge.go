package deployment

import (
	"context"
	"fmt"

	"github.com/samber/do"
	"github.com/spf13/cobra"
	"github.com/yz4230/asgard-console/internal/entity"
	"github.com/yz4230/asgard-console/internal/usecase"
)

var proceedCmd = newJudgeCmd(entity.JudgmentProceed, "Let a deployment waiting for judgment continue")

var rollbackCmd = newJudgeCmd(entity.JudgmentRollback, "Roll back a deployment waiting for judgment")

func newJudgeCmd(judgment entity.Judgment, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(judgment) + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInjector(cmd, func(ctx context.Context, injector *do.Injector) error {
				usecase := do.MustInvoke[usecase.JudgeDeploymentUsecase](injector)
				if err := usecase.Execute(ctx, args[0], judgment); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deployment %s: %s sent\n", args[0], judgment)
				return nil
			})
		},
	}
}

var cancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel a running deployment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withInjector(cmd, func(ctx context.Context, injector *do.Injector) error {
			usecase := do.MustInvoke[usecase.CancelDeploymentUsecase](injector)
			if err := usecase.Execute(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deployment %s: cancel requested\n", args[0])
			return nil
		})
	},
}
