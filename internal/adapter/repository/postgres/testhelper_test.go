package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"

	"github.com/marcos-nsantos/credential-service/internal/infrastructure/config"
	"github.com/marcos-nsantos/credential-service/internal/infrastructure/database"
	"github.com/marcos-nsantos/credential-service/migrations"
)

type TestDB struct {
	Manager   *database.ConnectionManager
	Container testcontainers.Container
}

func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connString, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	manager := database.NewConnectionManager(
		database.PostgresDialer(config.DatabaseConfig{URL: connString, MaxConns: 10, ConnectTimeout: 5 * time.Second}),
		zaptest.NewLogger(t),
		database.WithAfterConnect(func(ctx context.Context, db database.DBTX) error {
			return database.RunMigrations(ctx, db, migrations.FS)
		}),
	)
	if err := manager.EnsureConnected(ctx); err != nil {
		t.Fatalf("failed to connect: %v", err)
	}

	return &TestDB{
		Manager:   manager,
		Container: container,
	}
}

func (db *TestDB) Cleanup(t *testing.T) {
	t.Helper()
	if db.Manager != nil {
		db.Manager.Close()
	}
	if db.Container != nil {
		if err := db.Container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}
}

func (db *TestDB) Truncate(t *testing.T, tables ...string) {
	t.Helper()
	ctx := context.Background()
	conn, err := db.Manager.DB(ctx)
	if err != nil {
		t.Fatalf("failed to get connection: %v", err)
	}
	for _, table := range tables {
		if _, err := conn.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			t.Fatalf("failed to truncate table %s: %v", table, err)
		}
	}
}
