package usecase

import (
	"time"

	"github.com/yz4230/asgard-console/internal/asgard"
)

const (
	DefaultTemplateName  = asgard.TemplateCreateAndCleanUpPreviousAsg
	DefaultImageCacheTTL = 5 * time.Minute
	DefaultPollInterval  = time.Second
)

// Config holds the settings usecases read from the injector.
type Config struct {
	ImageCacheTTL time.Duration
	PollInterval  time.Duration
}

func templateOrDefault(name string) string {
	if name == "" {
		return DefaultTemplateName
	}
	return name
}
