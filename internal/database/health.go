package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/redis/go-redis/v9"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

var _ Pinger = (*sql.DB)(nil)

// Health reports per-dependency status for the /healthz endpoint. The second
// return value is false when any dependency failed its ping.
func Health(ctx context.Context, db Pinger, rdb redis.UniversalClient) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := map[string]string{"mariadb": "ok", "redis": "ok"}
	healthy := true

	if err := db.PingContext(ctx); err != nil {
		status["mariadb"] = "unavailable"
		healthy = false
	}
	if err := rdb.Ping(ctx).Err(); err != nil {
		status["redis"] = "unavailable"
		healthy = false
	}
	return status, healthy
}
