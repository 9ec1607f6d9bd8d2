package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/samber/do"
	"github.com/samber/lo"
	"github.com/yz4230/asgard-console/internal/asgard"
	"github.com/yz4230/asgard-console/internal/cache"
	"github.com/yz4230/asgard-console/internal/repository"
	"github.com/yz4230/asgard-console/internal/server/routes"
	"github.com/yz4230/asgard-console/internal/usecase"
	"gorm.io/gorm"
)

// dbServiceName is the name samber/do registers *gorm.DB under.
var dbServiceName = fmt.Sprintf("%T", (*gorm.DB)(nil))

type Config struct {
	// DataDir holds console.db. Empty keeps everything in memory.
	DataDir       string
	Port          int
	AsgardURL     string
	AsgardTimeout time.Duration
	PollInterval  time.Duration
	ImageCacheTTL time.Duration
	Logger        zerolog.Logger
}

type Server struct {
	e        *echo.Echo
	config   *Config
	injector *do.Injector
}

func New(config *Config) *Server {
	e := echo.New()
	e.HidePort = true
	e.HideBanner = true
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogRemoteIP:  true,
		LogHost:      true,
		LogMethod:    true,
		LogURI:       true,
		LogUserAgent: true,
		LogStatus:    true,
		LogLatency:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			config.Logger.Info().
				Str("remote_ip", v.RemoteIP).
				Str("host", v.Host).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("user_agent", v.UserAgent).
				Int("status", v.Status).
				Int64("latency_ms", v.Latency.Milliseconds()).
				Msg("handled request")
			return nil
		},
	}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			config.Logger.Error().Err(err).Bytes("stack", stack).Send()
			return err
		},
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := config.Logger.WithContext(req.Context())
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	})

	s := &Server{e: e, config: config, injector: NewInjector(config)}
	s.registerRoutes()
	return s
}

// NewInjector wires the console services. The CLI uses it for commands that run
// without the HTTP server.
func NewInjector(config *Config) *do.Injector {
	injector := do.New()
	do.ProvideValue(injector, usecase.Config{
		ImageCacheTTL: config.ImageCacheTTL,
		PollInterval:  config.PollInterval,
	})
	do.Provide(injector, func(i *do.Injector) (*gorm.DB, error) {
		return repository.NewSQLiteDB(config.DataDir)
	})
	do.Provide(injector, func(i *do.Injector) (repository.DraftRepository, error) {
		return repository.NewDraftRepository(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(injector, func(i *do.Injector) (repository.DeploymentRepository, error) {
		return repository.NewDeploymentRepository(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(injector, func(i *do.Injector) (repository.CacheRepository, error) {
		return repository.NewCacheRepository(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(injector, func(i *do.Injector) (*cache.Cache, error) {
		return cache.New(do.MustInvoke[repository.CacheRepository](i), config.Logger), nil
	})
	do.Provide(injector, func(i *do.Injector) (asgard.Client, error) {
		if config.AsgardURL == "" {
			return nil, errors.New("asgard url is not configured")
		}
		return asgard.NewClient(asgard.Config{
			BaseURL: config.AsgardURL,
			Timeout: config.AsgardTimeout,
			Logger:  config.Logger,
		}), nil
	})
	do.Provide(injector, usecase.NewPrepareDeploymentUsecase)
	do.Provide(injector, usecase.NewStartDeploymentUsecase)
	do.Provide(injector, usecase.NewGetDeploymentUsecase)
	do.Provide(injector, usecase.NewWatchDeploymentUsecase)
	do.Provide(injector, usecase.NewJudgeDeploymentUsecase)
	do.Provide(injector, usecase.NewCancelDeploymentUsecase)
	do.Provide(injector, usecase.NewListImagesUsecase)
	do.Provide(injector, usecase.NewListDeploymentsUsecase)
	do.Provide(injector, usecase.NewCreateDraftUsecase)
	do.Provide(injector, usecase.NewGetDraftUsecase)
	do.Provide(injector, usecase.NewListDraftsUsecase)
	do.Provide(injector, usecase.NewEditDraftUsecase)
	do.Provide(injector, usecase.NewDeleteDraftUsecase)
	return injector
}

// ShutdownInjector shuts the services of injector down and closes the database if a
// service opened it.
func ShutdownInjector(injector *do.Injector) error {
	var db *gorm.DB
	if lo.Contains(injector.ListInvokedServices(), dbServiceName) {
		db = do.MustInvoke[*gorm.DB](injector)
	}
	err := injector.Shutdown()
	if db != nil {
		err = errors.Join(err, repository.CloseDB(db))
	}
	return err
}

func (s *Server) registerRoutes() {
	routes.RegisterMisc(s.injector, s.e)
	routes.RegisterDeploymentAPI(s.injector, s.e)
	routes.RegisterDraftAPI(s.injector, s.e)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() *echo.Echo {
	return s.e
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	s.config.Logger.Info().Str("addr", addr).Str("asgard", s.config.AsgardURL).Msg("starting server")
	return s.e.Start(addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return errors.Join(s.e.Shutdown(ctx), ShutdownInjector(s.injector))
}
