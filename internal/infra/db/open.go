package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"news-agency/internal/resilience/retry"
	"news-agency/pkg/config"
)

// ConnectionConfig holds database connection pool configuration.
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConnectionConfig returns the default connection pool configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 1 * time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}
}

// Open connects to PostgreSQL through the pgx stdlib driver, applies the pool
// settings and verifies the connection with a ping.
func Open(ctx context.Context, dbCfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", dbCfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	cfg := getConnectionConfigFromEnv()
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	slog.Info("database connection pool configured",
		slog.String("host", dbCfg.Host),
		slog.String("database", dbCfg.Name),
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.MaxIdleConns),
		slog.Duration("conn_max_lifetime", cfg.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", cfg.ConnMaxIdleTime))

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("database connection established successfully")
	return db, nil
}

// OpenWithRetry is Open, repeated with backoff while PostgreSQL refuses
// connections. Compose setups start the API before the database is ready.
func OpenWithRetry(ctx context.Context, dbCfg config.DatabaseConfig, rc retry.Config) (*sql.DB, error) {
	var db *sql.DB
	err := retry.WithBackoff(ctx, rc, "open database", func() error {
		var err error
		db, err = Open(ctx, dbCfg)
		return err
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// WaitForSchema blocks until the articles table exists. The worker uses it
// because only the API process runs migrations.
func WaitForSchema(ctx context.Context, db *sql.DB, rc retry.Config) error {
	rc.Retryable = retry.Always
	return retry.WithBackoff(ctx, rc, "wait for schema", func() error {
		_, err := db.ExecContext(ctx, "SELECT 1 FROM articles LIMIT 1")
		return err
	})
}

// getConnectionConfigFromEnv keeps a default whenever the variable is missing,
// malformed or not positive.
func getConnectionConfigFromEnv() ConnectionConfig {
	cfg := DefaultConnectionConfig()

	if v := config.GetEnvInt("DB_MAX_OPEN_CONNS", 0); v > 0 {
		cfg.MaxOpenConns = v
	}
	if v := config.GetEnvInt("DB_MAX_IDLE_CONNS", 0); v > 0 {
		cfg.MaxIdleConns = v
	}
	if v := config.GetEnvDuration("DB_CONN_MAX_LIFETIME", 0); v > 0 {
		cfg.ConnMaxLifetime = v
	}
	if v := config.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", 0); v > 0 {
		cfg.ConnMaxIdleTime = v
	}
	return cfg
}
