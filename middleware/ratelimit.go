// Package middleware provides an http.Handler wrapper that gates requests
// through per-client limiters.
package middleware

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/benbjohnson/clock"

	"github.com/yourusername/gatelimit/pkg/gatelimit"
	"github.com/yourusername/gatelimit/store"
)

// KeyFunc extracts a unique client identifier from the request.
type KeyFunc func(*http.Request) string

// Config for creating a rate limiting middleware.
type Config struct {
	// Rate is the number of tokens generated per second per client.
	Rate int

	// Capacity is the maximum burst per client. Zero defaults to Rate.
	Capacity int64

	// Mode selects the acquisition strategy for per-client limiters.
	// Defaults to ModeFailFast; ModeBlocking would hold the request open
	// instead of answering 429.
	Mode gatelimit.Mode

	// KeyFunc identifies clients. Defaults to the proxy-aware IP key.
	KeyFunc KeyFunc

	// Clock overrides the limiter clock. Tests inject a mock here.
	Clock clock.Clock
}

// RateLimiter provides HTTP middleware for per-client rate limiting.
type RateLimiter struct {
	registry *store.Registry
	keyFunc  KeyFunc
	limit    int64
	retry    int64 // seconds after which a denied client may retry
}

// NewRateLimiter creates a rate limiting middleware. Each distinct client
// key gets its own bucket built from the config.
func NewRateLimiter(config Config) (*RateLimiter, error) {
	if config.KeyFunc == nil {
		config.KeyFunc = defaultKeyFunc
	}
	mode := config.Mode
	if mode == gatelimit.ModeBlocking {
		mode = gatelimit.ModeFailFast
	}

	opts := []gatelimit.Option{
		gatelimit.WithRate(config.Rate),
		gatelimit.WithMode(mode),
	}
	if config.Capacity > 0 {
		opts = append(opts, gatelimit.WithCapacity(config.Capacity))
	}
	if config.Clock != nil {
		opts = append(opts, gatelimit.WithClock(config.Clock))
	}

	// Build one limiter up front so configuration errors surface here
	// rather than on the first request.
	probe, err := gatelimit.New(opts...)
	if err != nil {
		return nil, err
	}

	registry, err := store.NewRegistry(func() (*gatelimit.Limiter, error) {
		return gatelimit.New(opts...)
	})
	if err != nil {
		return nil, err
	}

	retry := int64(math.Ceil(probe.Period().Seconds()))
	if retry < 1 {
		retry = 1
	}

	return &RateLimiter{
		registry: registry,
		keyFunc:  config.KeyFunc,
		limit:    probe.Capacity(),
		retry:    retry,
	}, nil
}

// defaultKeyFunc extracts the client identifier from the IP address.
func defaultKeyFunc(r *http.Request) string {
	// Try X-Forwarded-For first (for proxies).
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}

	// Fall back to RemoteAddr, stripping the port if present.
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}

// Middleware wraps an http.Handler with rate limiting. Denied requests
// receive 429 with a JSON body and a Retry-After header.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rl.keyFunc(r)

		limiter, err := rl.registry.Get(key)
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		admitted := limiter.Acquire()

		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", limiter.Remaining()))

		if !admitted {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", rl.retry))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)

			json.NewEncoder(w).Encode(map[string]interface{}{
				"error":   "rate_limit_exceeded",
				"message": "Too many requests. Please try again later.",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Clients returns the number of distinct client keys seen so far.
func (rl *RateLimiter) Clients() int {
	return rl.registry.Count()
}
