package deployment

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/samber/do"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yz4230/asgard-console/internal/config"
	"github.com/yz4230/asgard-console/internal/server"
)

// DeploymentCmd represents the deployment command
var DeploymentCmd = &cobra.Command{
	Use:     "deployment",
	Aliases: []string{"deploy"},
	Short:   "Start, watch and judge deployments",
}

func init() {
	DeploymentCmd.AddCommand(watchCmd)
	DeploymentCmd.AddCommand(proceedCmd)
	DeploymentCmd.AddCommand(rollbackCmd)
	DeploymentCmd.AddCommand(cancelCmd)
	DeploymentCmd.AddCommand(startCmd)
	DeploymentCmd.AddCommand(imagesCmd)
	DeploymentCmd.AddCommand(listCmd)
}

// withInjector runs fn with the console services wired from the current settings and
// shuts them down afterwards.
func withInjector(cmd *cobra.Command, fn func(ctx context.Context, injector *do.Injector) error) error {
	cfg, err := config.ServerConfig(viper.GetViper(), log.Logger)
	if err != nil {
		return err
	}
	injector := server.NewInjector(cfg)
	defer func() {
		if err := server.ShutdownInjector(injector); err != nil {
			log.Warn().Err(err).Msg("failed to shut down services")
		}
	}()
	ctx := cfg.Logger.WithContext(cmd.Context())
	return fn(ctx, injector)
}
