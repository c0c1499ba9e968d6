package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/farellandr/eventhub/config"
	"github.com/farellandr/eventhub/internal/server"
)

func main() {
	// A missing .env is fine; the process environment still applies.
	_ = godotenv.Load(".env")

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "eventhub",
		Short:         "Event ticketing API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd(), migrateCmd(), seedCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(func(cfg *config.Config, logger *zap.Logger) error {
				return server.Start(cfg, logger)
			})
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(func(cfg *config.Config, logger *zap.Logger) error {
				db, err := config.InitDatabase(cfg)
				if err != nil {
					return err
				}
				defer config.CloseDatabase(db)
				logger.Info("schema migrated", zap.String("db_driver", cfg.DBDriver))
				return nil
			})
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load demo users, events and tickets into an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(func(cfg *config.Config, logger *zap.Logger) error {
				db, err := config.InitDatabase(cfg)
				if err != nil {
					return err
				}
				defer config.CloseDatabase(db)
				return config.Seed(db, logger)
			})
		},
	}
}

func withEnv(run func(cfg *config.Config, logger *zap.Logger) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	return run(cfg, logger)
}
