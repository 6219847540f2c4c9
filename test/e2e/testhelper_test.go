package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"

	"github.com/marcos-nsantos/credential-service/internal/adapter/handler"
	pgRepo "github.com/marcos-nsantos/credential-service/internal/adapter/repository/postgres"
	"github.com/marcos-nsantos/credential-service/internal/infrastructure/auth"
	"github.com/marcos-nsantos/credential-service/internal/infrastructure/config"
	"github.com/marcos-nsantos/credential-service/internal/infrastructure/database"
	"github.com/marcos-nsantos/credential-service/internal/infrastructure/observability"
	"github.com/marcos-nsantos/credential-service/internal/infrastructure/server"
	authUC "github.com/marcos-nsantos/credential-service/internal/usecase/auth"
	"github.com/marcos-nsantos/credential-service/migrations"
)

const (
	testDBUser     = "testuser"
	testDBPassword = "testpass"
	testDBName     = "testdb"
	apiBasePath    = "/api/user"
)

type TestApp struct {
	Server     *httptest.Server
	Conn       *database.ConnectionManager
	Container  testcontainers.Container
	BaseURL    string
	httpClient *http.Client
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping e2e test in short mode")
	}

	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(testDBName),
		postgres.WithUsername(testDBUser),
		postgres.WithPassword(testDBPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	logger := zaptest.NewLogger(t)

	// Connected lazily by the first request, migrations included.
	conn := database.NewConnectionManager(
		database.PostgresDialer(config.DatabaseConfig{URL: connStr, MaxConns: 10, ConnectTimeout: 5 * time.Second}),
		logger,
		database.WithAfterConnect(func(ctx context.Context, db database.DBTX) error {
			return database.RunMigrations(ctx, db, migrations.FS)
		}),
	)

	userRepo := pgRepo.NewUserRepo(conn)
	passwordHasher := auth.NewPasswordHasher(4) // Lower cost for faster tests
	metrics := observability.NewMetrics()

	authSvc := authUC.NewService(conn, userRepo, passwordHasher)

	router := server.NewRouter(server.RouterConfig{
		AuthHandler:   handler.NewAuthHandler(authSvc, metrics),
		HealthHandler: handler.NewHealthHandler(conn.Ping),
		Metrics:       metrics,
		Logger:        logger,
		Environment:   "test",
	})

	ts := httptest.NewServer(router.Engine())

	return &TestApp{
		Server:    ts,
		Conn:      conn,
		Container: pgContainer,
		BaseURL:   ts.URL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (app *TestApp) cleanup(t *testing.T) {
	t.Helper()

	app.Server.Close()
	app.Conn.Close()

	ctx := context.Background()
	if err := app.Container.Terminate(ctx); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

func (app *TestApp) request(method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, app.BaseURL+apiBasePath+path, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return app.httpClient.Do(req)
}

func (app *TestApp) post(path string, body any) (*http.Response, error) {
	return app.request(http.MethodPost, path, body)
}

func (app *TestApp) countUsers(t *testing.T, email string) int {
	t.Helper()
	ctx := context.Background()
	db, err := app.Conn.DB(ctx)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE email = $1`, email).Scan(&n))
	return n
}

func (app *TestApp) storedHash(t *testing.T, email string) string {
	t.Helper()
	ctx := context.Background()
	db, err := app.Conn.DB(ctx)
	require.NoError(t, err)

	var hash string
	require.NoError(t, db.QueryRow(ctx, `SELECT password_hash FROM users WHERE email = $1`, email).Scan(&hash))
	return hash
}

func parseResponse(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, dest), "body: %s", body)
}
