package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"gec-catalog/internal/database"
	"gec-catalog/internal/handler"
	"gec-catalog/internal/repository"
	"gec-catalog/internal/router"
	"gec-catalog/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, connects a pool to it and
// applies the migrations the service runs at startup.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.Migrate(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// NewTestServer wires repositories, services and handlers against the test
// database exactly the way main does, with the admin key gate disabled.
func NewTestServer(pool *pgxpool.Pool) http.Handler {
	logger := zerolog.Nop()

	productRepo := repository.NewProductRepository(pool, logger)
	folderRepo := repository.NewFolderRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	settingRepo := repository.NewSettingRepository(pool, logger)

	productService := service.NewProductService(productRepo, logger)
	folderService := service.NewFolderService(folderRepo, logger)
	orderService := service.NewOrderService(orderRepo, logger)
	settingService := service.NewSettingService(settingRepo, logger)

	return router.New(
		handler.NewProductHandler(productService, logger),
		handler.NewFolderHandler(folderService, logger),
		handler.NewOrderHandler(orderService, logger),
		handler.NewSettingHandler(settingService, logger),
		"",
		logger,
	)
}

// countRows returns the number of rows in the given table.
func countRows(t *testing.T, pool *pgxpool.Pool, table string) int {
	t.Helper()

	var count int
	if err := pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
		t.Fatalf("failed to count rows in %s: %v", table, err)
	}
	return count
}

// insertProduct inserts a minimal product row and returns its identifier.
func insertProduct(t *testing.T, pool *pgxpool.Pool, title string, hours int) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(), `
		INSERT INTO products (title, description, hours, image_data, image_content_type)
		VALUES ($1, '', $2, $3, 'image/png')
		RETURNING id
	`, title, hours, []byte{0x89, 0x50}).Scan(&id)
	if err != nil {
		t.Fatalf("failed to insert product: %v", err)
	}
	return id
}
