package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yz4230/asgard-console/cmd/deployment"
	"github.com/yz4230/asgard-console/cmd/steps"
	"github.com/yz4230/asgard-console/internal/config"
)

var rootFlags struct {
	configFile string
}

var rootCmd = &cobra.Command{
	Use:           "asgard-console",
	Short:         "Monitor Asgard deployments and edit their steps",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		if err := config.Init(viper.GetViper(), cmd.Flags(), rootFlags.configFile); err != nil {
			return err
		}
		if viper.GetBool(config.KeyVerbose) {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
		return nil
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		log.Error().Err(err).Msg(rootCmd.Name() + " failed")
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP(config.KeyVerbose, "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().String(config.KeyAsgardURL, "", "Base URL of the Asgard server")
	rootCmd.PersistentFlags().String(config.KeyDataDir, "./data", "Directory holding the console database")
	rootCmd.PersistentFlags().StringVar(&rootFlags.configFile, "config", "", "YAML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(deployment.DeploymentCmd)
	rootCmd.AddCommand(steps.StepsCmd)
}
