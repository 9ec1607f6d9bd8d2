package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/yz4230/asgard-console/internal/server"
	"github.com/yz4230/asgard-console/internal/usecase"
)

const EnvPrefix = "ASGARD"

// Keys understood in the config file, the environment and the flags.
const (
	KeyVerbose       = "verbose"
	KeyPort          = "port"
	KeyDataDir       = "data-dir"
	KeyAsgardURL     = "asgard-url"
	KeyAsgardTimeout = "asgard-timeout"
	KeyPollInterval  = "poll-interval"
	KeyImageCacheTTL = "image-cache-ttl"
)

func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyPort, 8080)
	v.SetDefault(KeyDataDir, "./data")
	v.SetDefault(KeyAsgardTimeout, 30*time.Second)
	v.SetDefault(KeyPollInterval, usecase.DefaultPollInterval)
	v.SetDefault(KeyImageCacheTTL, usecase.DefaultImageCacheTTL)
}

// Init prepares v for reading: defaults, ASGARD_* environment variables and the
// given flags. A non-empty file is read as YAML.
func Init(v *viper.Viper, flags *pflag.FlagSet, file string) error {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return fmt.Errorf("bind flags: %w", err)
		}
	}
	if file == "" {
		return nil
	}
	v.SetConfigFile(file)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// ServerConfig builds the server settings from v.
func ServerConfig(v *viper.Viper, logger zerolog.Logger) (*server.Config, error) {
	cfg := &server.Config{
		DataDir:       v.GetString(KeyDataDir),
		Port:          v.GetInt(KeyPort),
		AsgardURL:     v.GetString(KeyAsgardURL),
		AsgardTimeout: v.GetDuration(KeyAsgardTimeout),
		PollInterval:  v.GetDuration(KeyPollInterval),
		ImageCacheTTL: v.GetDuration(KeyImageCacheTTL),
		Logger:        logger,
	}
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func validate(cfg *server.Config) error {
	var errs []error
	if cfg.AsgardURL == "" {
		errs = append(errs, errors.New(KeyAsgardURL+" is required"))
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		errs = append(errs, fmt.Errorf("%s %d is out of range", KeyPort, cfg.Port))
	}
	if cfg.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyPollInterval))
	}
	if cfg.ImageCacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyImageCacheTTL))
	}
	return errors.Join(errs...)
}
