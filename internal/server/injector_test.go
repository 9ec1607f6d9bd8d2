package server_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/samber/do"
	"github.com/yz4230/asgard-console/internal/asgard"
	"github.com/yz4230/asgard-console/internal/repository"
	"github.com/yz4230/asgard-console/internal/server"
)

func newInjector(t *testing.T) (*do.Injector, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")
	injector := server.NewInjector(&server.Config{
		DataDir:   dir,
		AsgardURL: "http://asgard.invalid/",
		Logger:    zerolog.Nop(),
	})
	return injector, dir
}

func TestShutdownInjectorLeavesUnusedDatabase(t *testing.T) {
	injector, dir := newInjector(t)
	do.MustInvoke[asgard.Client](injector)

	if err := server.ShutdownInjector(injector); err != nil {
		t.Fatalf("ShutdownInjector() error = %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("data dir stat error = %v, want not exist", err)
	}
}

func TestShutdownInjectorClosesDatabase(t *testing.T) {
	injector, dir := newInjector(t)
	repo := do.MustInvoke[repository.DraftRepository](injector)
	if _, err := repo.List(context.Background()); err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if err := server.ShutdownInjector(injector); err != nil {
		t.Fatalf("ShutdownInjector() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "console.db")); err != nil {
		t.Errorf("console.db stat error = %v", err)
	}
}
