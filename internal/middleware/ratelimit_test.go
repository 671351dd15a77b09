package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// newLimitedEcho builds an echo instance with one rate-limited route.
func newLimitedEcho(rdb redis.UniversalClient, max int) *echo.Echo {
	e := echo.New()
	e.POST("/auth/sign-in", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, RateLimit(rdb, "sign-in", max, time.Minute))
	return e
}

func doPost(e *echo.Echo, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/sign-in", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit_BlocksAfterMax(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	e := newLimitedEcho(rdb, 2)

	for i := 0; i < 2; i++ {
		if rec := doPost(e, "203.0.113.5:1234"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}

	rec := doPost(e, "203.0.113.5:1234")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Errorf("expected 0 remaining, got %s", rec.Header().Get("X-RateLimit-Remaining"))
	}
}

func TestRateLimit_PerIP(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	e := newLimitedEcho(rdb, 1)

	if rec := doPost(e, "203.0.113.5:1"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := doPost(e, "198.51.100.7:1"); rec.Code != http.StatusOK {
		t.Fatalf("second IP should have its own budget, got %d", rec.Code)
	}
}

func TestRateLimit_WindowResets(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	e := newLimitedEcho(rdb, 1)

	doPost(e, "203.0.113.5:1")
	if rec := doPost(e, "203.0.113.5:1"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}

	mr.FastForward(61 * time.Second)

	if rec := doPost(e, "203.0.113.5:1"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 after window reset, got %d", rec.Code)
	}
}

func TestRateLimit_FailsOpenWithoutRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	mr.Close()
	e := newLimitedEcho(rdb, 1)

	for i := 0; i < 3; i++ {
		if rec := doPost(e, "203.0.113.5:1"); rec.Code != http.StatusOK {
			t.Fatalf("expected request to pass when redis is down, got %d", rec.Code)
		}
	}
}
