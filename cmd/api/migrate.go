package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/credential-service/internal/infrastructure/database"
	"github.com/marcos-nsantos/credential-service/migrations"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded database migrations and exit",
		RunE:  runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	conn := database.NewConnectionManager(
		database.PostgresDialer(cfg.Database),
		logger,
		database.WithAfterConnect(func(ctx context.Context, db database.DBTX) error {
			return database.RunMigrations(ctx, db, migrations.FS)
		}),
	)
	defer conn.Close()

	if err := conn.EnsureConnected(cmd.Context()); err != nil {
		logger.Error("migration failed", zap.Error(err))
		return err
	}

	logger.Info("migrations completed successfully")
	return nil
}
