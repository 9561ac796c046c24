package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"
)

const sweepInterval = 5 * time.Minute

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// RequestsPerMinute is the maximum number of requests per minute per
	// client. Zero disables the limiter.
	RequestsPerMinute int `yaml:"requests_per_minute" mapstructure:"requests_per_minute"`
	// KeyFunc extracts the rate limit key from a request. Defaults to client IP.
	KeyFunc func(*http.Request) string `yaml:"-" mapstructure:"-"`
}

// RateLimit applies a per-key sliding-window limit and answers 429 with the
// standard error envelope once the window is full.
func RateLimit(cfg RateLimitConfig) Middleware {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = IPBasedKey
	}
	rl := &rateLimiter{
		requests:  make(map[string][]time.Time),
		limit:     cfg.RequestsPerMinute,
		lastSweep: time.Now(),
	}

	return func(next http.Handler) http.Handler {
		if cfg.RequestsPerMinute <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.allow(cfg.KeyFunc(r), time.Now()) {
				w.Header().Set("Retry-After", "60")
				writeError(w, http.StatusTooManyRequests, "Rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IPBasedKey uses the remote host as the rate limit key.
func IPBasedKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type rateLimiter struct {
	mu        sync.Mutex
	requests  map[string][]time.Time
	limit     int
	lastSweep time.Time
}

func (rl *rateLimiter) allow(key string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := now.Add(-time.Minute)
	if now.Sub(rl.lastSweep) > sweepInterval {
		for k, times := range rl.requests {
			if valid := filterByTime(times, cutoff); len(valid) == 0 {
				delete(rl.requests, k)
			} else {
				rl.requests[k] = valid
			}
		}
		rl.lastSweep = now
	}

	valid := filterByTime(rl.requests[key], cutoff)
	if len(valid) >= rl.limit {
		rl.requests[key] = valid
		return false
	}
	rl.requests[key] = append(valid, now)
	return true
}

func filterByTime(times []time.Time, cutoff time.Time) []time.Time {
	var result []time.Time
	for _, t := range times {
		if t.After(cutoff) {
			result = append(result, t)
		}
	}
	return result
}
