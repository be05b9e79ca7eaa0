package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	service "github.com/okian/expertlens/internal/app"
	"github.com/okian/expertlens/internal/config"
	"github.com/okian/expertlens/pkg/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "expertlens",
		Short: "Expert profiling and quality dashboard",
		Long: "expertlens builds expert profiles for a list of talent ids, scores the\n" +
			"diversity of their annotation tasks and serves an aggregated dashboard.",
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		SilenceUsage: true,
		Version:      version,
	}
	root.AddCommand(newServeCmd(), newProfileCmd(), newGenIDsCmd())
	return root
}

// setup loads configuration and initializes the global logger writing to w.
func setup(ctx context.Context, w io.Writer) (*config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := logger.InitWithOptions(logger.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: w,
	}); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newService builds a service from cfg.
func newService(cfg *config.Config) *service.Service {
	return service.New(
		service.WithLogger(logger.Get()),
		service.WithProfileSource(cfg.ProfileSource),
		service.WithSessionTTL(cfg.SessionTTL),
		service.WithSweepInterval(cfg.SessionSweepInterval),
		service.WithMaxSessions(cfg.MaxSessions),
		service.WithSessionIDLength(cfg.SessionIDLength),
		service.WithGenerationConcurrency(cfg.GenerationConcurrency),
		service.WithHighTaskThreshold(cfg.HighTaskThreshold),
	)
}
