// Package database provides connection setup for MariaDB and Redis.
// Both connections are created once at startup and shared across the
// application via dependency injection. This package owns the connection
// lifecycle (open, configure pool, ping, migrate, close).
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	// MariaDB driver -- imported for side effect of registering the driver.
	_ "github.com/go-sql-driver/mysql"

	"github.com/keyxmakerx/sessiondesk/internal/config"
)

// pingAttempts bounds the startup wait for MariaDB.
const pingAttempts = 10

// NewMariaDB opens the users/sessions/todos database pool and waits until it
// answers a ping. The pool is shared by every plugin repository.
func NewMariaDB(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening mariadb connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := waitForPing(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// waitForPing retries with exponential backoff. MariaDB may still be starting
// when the app container launches under Docker Compose.
func waitForPing(ctx context.Context, db *sql.DB) error {
	backoff := time.Second
	var pingErr error

	for attempt := 1; attempt <= pingAttempts; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		pingErr = db.PingContext(pingCtx)
		cancel()
		if pingErr == nil {
			return nil
		}
		if attempt == pingAttempts {
			break
		}

		slog.Warn("mariadb not ready, retrying...",
			slog.Int("attempt", attempt),
			slog.Int("max_retries", pingAttempts),
			slog.Duration("backoff", backoff),
			slog.Any("error", pingErr),
		)

		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for mariadb: %w", ctx.Err())
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, 30*time.Second)
	}

	return fmt.Errorf("pinging mariadb after %d attempts: %w", pingAttempts, pingErr)
}
