package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/hygienewatch/hygienewatch-backend/internal/database"
	"github.com/hygienewatch/hygienewatch-backend/pkg/clientip"
)

const (
	// RateLimitWindow is the counting window per client IP.
	RateLimitWindow = 60 * time.Second
	// RateLimitMaxRequests is the allowance within one window.
	RateLimitMaxRequests = 60
	// rateLimitKeyPrefix is the Redis key prefix for per-IP counters.
	rateLimitKeyPrefix = "ratelimit:"
)

// RateLimit counts requests per client IP in Redis and rejects the
// overflow with 429. Redis being down fails open: the limiter protects
// the backend, it must not become the outage.
func RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if database.RedisClient == nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.Background()
		key := rateLimitKeyPrefix + clientip.RealClientIP(r)

		count, err := database.RedisClient.Incr(ctx, key).Result()
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			database.RedisClient.Expire(ctx, key, RateLimitWindow)
		}

		if count > RateLimitMaxRequests {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"success":false,"message":"Too many requests. Please slow down and try again."}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}
