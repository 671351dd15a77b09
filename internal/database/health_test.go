package database

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type stubPinger struct{ err error }

func (s stubPinger) PingContext(context.Context) error { return s.err }

func TestHealth_AllUp(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	status, ok := Health(context.Background(), stubPinger{}, rdb)
	if !ok {
		t.Fatalf("expected healthy, got %v", status)
	}
	if status["mariadb"] != "ok" || status["redis"] != "ok" {
		t.Errorf("unexpected status: %v", status)
	}
}

func TestHealth_DatabaseDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	status, ok := Health(context.Background(), stubPinger{err: errors.New("down")}, rdb)
	if ok {
		t.Fatal("expected unhealthy")
	}
	if status["mariadb"] != "unavailable" {
		t.Errorf("expected mariadb unavailable, got %v", status)
	}
}

func TestHealth_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	mr.Close()

	status, ok := Health(context.Background(), stubPinger{}, rdb)
	if ok {
		t.Fatal("expected unhealthy")
	}
	if status["redis"] != "unavailable" {
		t.Errorf("expected redis unavailable, got %v", status)
	}
}
