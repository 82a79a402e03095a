package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// InitPostgres initializes and returns a PostgreSQL connection pool
func InitPostgres() (*pgxpool.Pool, error) {
	// Get database URL from environment variable or use default
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		// Default local development configuration
		host := getEnvOrDefault("POSTGRES_HOST", "localhost")
		port := getEnvOrDefault("POSTGRES_PORT", "5432")
		user := getEnvOrDefault("POSTGRES_USER", "guestbook")
		password := getEnvOrDefault("POSTGRES_PASSWORD", "")
		dbname := getEnvOrDefault("POSTGRES_DB", "guestbook")
		sslmode := getEnvOrDefault("POSTGRES_SSLMODE", "disable")

		databaseURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
			user, password, host, port, dbname, sslmode)
	}

	// Configure connection pool
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Set connection pool settings
	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = time.Minute * 30
	config.HealthCheckPeriod = time.Minute * 5

	// Create connection pool
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Create tables if they don't exist
	if err := createTables(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return pool, nil
}

// createTables creates all required tables if they don't exist
func createTables(ctx context.Context, pool *pgxpool.Pool) error {
	// Entries table - the single persisted collection. Photos are stored as
	// reference URLs, never as bytes; the binaries live in object storage.
	entriesTable := `
		CREATE TABLE IF NOT EXISTS entries (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(120) NOT NULL,
			note TEXT NOT NULL,
			photos TEXT[] NOT NULL DEFAULT '{}',
			approved BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_entries_created_at ON entries(created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_approved ON entries(approved) WHERE approved;`,
	}

	if _, err := pool.Exec(ctx, entriesTable); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	for _, index := range indexes {
		if _, err := pool.Exec(ctx, index); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// getEnvOrDefault returns the environment variable value or a default value if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
