// Package middleware provides HTTP middleware for sessiondesk.
// ratelimit.go implements a per-IP fixed-window limiter whose counters live
// in Redis, so every API replica shares the same budget. Used on the
// sign-in and sign-up endpoints.
package middleware

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// rateLimitKeyPrefix namespaces limiter counters in Redis.
const rateLimitKeyPrefix = "ratelimit:"

// RateLimit returns middleware that limits requests per IP to maxRequests
// within window for the named bucket. Returns 429 when exceeded. If Redis is
// unreachable the request is let through and a warning is logged.
func RateLimit(rdb redis.UniversalClient, bucket string, maxRequests int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := rateLimitKeyPrefix + bucket + ":" + c.RealIP()

			count, ttl, err := hit(ctx, rdb, key, window)
			if err != nil {
				slog.Warn("rate limiter unavailable, allowing request",
					slog.String("bucket", bucket),
					slog.Any("error", err),
				)
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(maxRequests))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(max(maxRequests-int(count), 0)))

			if count > int64(maxRequests) {
				h.Set("Retry-After", strconv.Itoa(int(math.Ceil(ttl.Seconds()))))
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"code":    "rate_limited",
					"message": "Rate limit exceeded. Please try again later.",
				})
			}
			return next(c)
		}
	}
}

// hit increments the window counter and returns the new count together with
// the time left in the window. The expiry is set only by the first hit so the
// window does not slide.
func hit(ctx context.Context, rdb redis.UniversalClient, key string, window time.Duration) (int64, time.Duration, error) {
	count, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}
	if count == 1 {
		if err := rdb.Expire(ctx, key, window).Err(); err != nil {
			return 0, 0, err
		}
		return count, window, nil
	}

	ttl, err := rdb.TTL(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}
	if ttl < 0 {
		// Key lost its expiry (e.g. the EXPIRE after INCR failed); repair it.
		if err := rdb.Expire(ctx, key, window).Err(); err != nil {
			return 0, 0, err
		}
		ttl = window
	}
	return count, ttl, nil
}
