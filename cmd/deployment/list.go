package deployment

import (
	"context"
	"time"

	"github.com/samber/do"
	"github.com/spf13/cobra"
	"github.com/yz4230/asgard-console/internal/usecase"
)

var listFlags struct {
	cluster string
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List deployments started from this console",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withInjector(cmd, func(ctx context.Context, injector *do.Injector) error {
			usecase := do.MustInvoke[usecase.ListDeploymentsUsecase](injector)
			records, err := usecase.Execute(ctx, listFlags.cluster)
			if err != nil {
				return err
			}
			table := newTable(cmd.OutOrStdout(), "ID", "CLUSTER", "TEMPLATE", "STATUS", "STARTED")
			for _, r := range records {
				table.Append([]string{
					idString("%s", r.DeploymentID),
					r.ClusterName,
					r.TemplateName,
					deploymentStatusFormatter(r.Status)("%s", r.Status),
					r.CreatedAt.Local().Format(time.DateTime),
				})
			}
			table.Render()
			return nil
		})
	},
}

func init() {
	listCmd.Flags().StringVarP(&listFlags.cluster, "cluster", "c", "", "Only list deployments of this cluster")
}
