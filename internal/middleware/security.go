package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/hygienewatch/hygienewatch-backend/pkg/clientip"
)

// SecurityHeaders sets security-related response headers. HSTS is only
// sent in production, where traffic is actually served over TLS; emitting
// it against a local http:// dev server would poison the browser cache.
func SecurityHeaders(production bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Content-Security-Policy", "default-src 'self'")
			if production {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// loginLimiters hands out one token-bucket limiter per client IP for the
// credential endpoints, where the Redis window limiter is too coarse.
type loginLimiters struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var signinLimiters = &loginLimiters{limiters: make(map[string]*limiterEntry)}

func (l *loginLimiters) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.limiters[ip]
	if !ok {
		// 1 attempt per 2s sustained, bursts of 5.
		entry = &limiterEntry{limiter: rate.NewLimiter(rate.Every(2*time.Second), 5)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = time.Now()

	// Opportunistic cleanup of stale entries.
	if len(l.limiters) > 1000 {
		cutoff := time.Now().Add(-10 * time.Minute)
		for k, e := range l.limiters {
			if e.lastSeen.Before(cutoff) {
				delete(l.limiters, k)
			}
		}
	}
	return entry.limiter
}

// LoginRateLimit throttles credential attempts per client IP.
func LoginRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !signinLimiters.get(clientip.RealClientIP(r)).Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"success":false,"message":"Too many sign-in attempts. Please wait and try again."}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
