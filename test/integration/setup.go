package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"shoplite/internal/database"

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

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
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

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	// Create connection pool
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Create schema
	if err := database.EnsureSchema(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
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

// SeedProducts inserts test product and variant data, returning the generated
// product ids keyed by name.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) map[string]int64 {
	t.Helper()

	ctx := context.Background()

	products := []struct {
		name  string
		price float64
	}{
		{"Wireless Mouse", 29.99},
		{"Mechanical Keyboard", 89.99},
		{"Noise-Cancelling Headphones", 149.99},
	}

	ids := make(map[string]int64, len(products))
	for _, p := range products {
		var id int64
		err := pool.QueryRow(ctx,
			"INSERT INTO products (name, price) VALUES ($1, $2) RETURNING id",
			p.name, p.price,
		).Scan(&id)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.name, err)
		}
		ids[p.name] = id
	}

	variants := []struct {
		product string
		name    string
		stock   int
	}{
		{"Wireless Mouse", "Black", 25},
		{"Wireless Mouse", "White", 18},
		{"Mechanical Keyboard", "Brown switches", 12},
	}

	for _, v := range variants {
		_, err := pool.Exec(ctx,
			"INSERT INTO variants (product_id, name, stock) VALUES ($1, $2, $3)",
			ids[v.product], v.name, v.stock,
		)
		if err != nil {
			t.Fatalf("failed to seed variant %s: %v", v.name, err)
		}
	}

	return ids
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"variants", "products"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
