package database

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/yourusername/gridiron-prophet/internal/config"
)

// SetupTestDB connects to the integration test database described by
// TEST_DATABASE_* environment variables. Tests skip when no test database is
// configured.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	host := os.Getenv("TEST_DATABASE_HOST")
	if host == "" {
		t.Skip("TEST_DATABASE_HOST not set, skipping database tests")
	}

	cfg := config.DatabaseConfig{
		Host:               host,
		Port:               envInt(t, "TEST_DATABASE_PORT", 5432),
		Name:               envOr("TEST_DATABASE_NAME", "gridiron_prophet_test"),
		User:               envOr("TEST_DATABASE_USER", "postgres"),
		Password:           envOr("TEST_DATABASE_PASSWORD", "postgres"),
		SSLMode:            envOr("TEST_DATABASE_SSL_MODE", "disable"),
		MaxConnections:     5,
		MaxIdleConnections: 1,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := NewDB(ctx, &cfg)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	return db
}

// TeardownTestDB releases the test database connection.
func TeardownTestDB(t *testing.T, db *DB) {
	t.Helper()
	db.Close()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(t *testing.T, key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		t.Fatalf("invalid %s: %v", key, err)
	}
	return n
}
