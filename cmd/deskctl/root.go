package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/app"
	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/observability"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "deskctl",
		Short:        "Operator tooling for the complaint service",
		Long:         "deskctl runs schema migrations, loads seed fixtures and inspects administrator progress against the configured record store.",
		SilenceUsage: true,
	}
	root.AddCommand(newMigrateCmd(), newSeedCmd(), newScoresCmd(), newNotifyAdminCmd())
	return root
}

// env is what every subcommand runs against.
type env struct {
	cfg      *config.Config
	logger   *zap.Logger
	runtime  *app.Runtime
	services *app.Services
}

func withEnv(run func(cmd *cobra.Command, e *env) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger, err := observability.NewLogger(cfg.Logger)
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		rt, err := app.Open(cmd.Context(), *cfg, logger)
		if err != nil {
			return err
		}
		defer rt.Close()

		services := app.NewServices(*cfg, rt.Store, rt.Locker, logger, nil)
		return run(cmd, &env{cfg: cfg, logger: logger, runtime: rt, services: services})
	}
}
