package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "github.com/marcos-nsantos/credential-service/docs"
	"github.com/marcos-nsantos/credential-service/internal/adapter/handler"
	"github.com/marcos-nsantos/credential-service/internal/adapter/repository/postgres"
	"github.com/marcos-nsantos/credential-service/internal/infrastructure/auth"
	"github.com/marcos-nsantos/credential-service/internal/infrastructure/database"
	"github.com/marcos-nsantos/credential-service/internal/infrastructure/observability"
	"github.com/marcos-nsantos/credential-service/internal/infrastructure/server"
	authUC "github.com/marcos-nsantos/credential-service/internal/usecase/auth"
	"github.com/marcos-nsantos/credential-service/migrations"
)

func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var opts []database.Option
	if cfg.Database.AutoMigrate {
		opts = append(opts, database.WithAfterConnect(func(ctx context.Context, db database.DBTX) error {
			return database.RunMigrations(ctx, db, migrations.FS)
		}))
	}

	// The store is dialed on the first request, not here.
	conn := database.NewConnectionManager(database.PostgresDialer(cfg.Database), logger, opts...)
	defer conn.Close()

	// Repositories
	userRepo := postgres.NewUserRepo(conn)

	// Infrastructure services
	passwordHasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	metrics := observability.NewMetrics()

	// Use cases
	authSvc := authUC.NewService(conn, userRepo, passwordHasher)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc, metrics)
	healthHandler := handler.NewHealthHandler(conn.Ping)

	// Router
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:   authHandler,
		HealthHandler: healthHandler,
		Metrics:       metrics,
		Logger:        logger,
		Environment:   cfg.Server.Environment,
	})

	// Server
	srv := server.NewServer(server.ServerConfig{
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Handler:      router.Engine(),
		Logger:       logger,
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("server error", zap.Error(err))
			return err
		}
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("server stopped")
	return nil
}
