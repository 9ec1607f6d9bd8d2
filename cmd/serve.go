package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yz4230/asgard-console/internal/config"
	"github.com/yz4230/asgard-console/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the console backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.ServerConfig(viper.GetViper(), log.Logger)
		if err != nil {
			return err
		}
		srv := server.New(cfg)
		chSignal := make(chan os.Signal, 1)
		signal.Notify(chSignal, os.Interrupt, syscall.SIGTERM)

		wg := &sync.WaitGroup{}
		wg.Go(func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				cfg.Logger.Fatal().Err(err).Msg("server error")
			}
		})

		sig := <-chSignal
		cfg.Logger.Info().Str("signal", sig.String()).Msg("shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Stop(ctx); err != nil {
			cfg.Logger.Error().Err(err).Msg("error during server shutdown")
		}

		wg.Wait()
		cfg.Logger.Info().Msg("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().IntP(config.KeyPort, "p", 8080, "Port to listen on")
	serveCmd.Flags().Duration(config.KeyPollInterval, time.Second, "Interval between deployment polls")
	serveCmd.Flags().Duration(config.KeyImageCacheTTL, 5*time.Minute, "How long the image list is cached")
}
