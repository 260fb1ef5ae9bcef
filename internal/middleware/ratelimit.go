package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// limiterCache is a generic rate limiter cache with double-check locking.
type limiterCache[K comparable] struct {
	limiters map[K]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

// newLimiterCache creates a new limiter cache.
func newLimiterCache[K comparable](rps float64, burst int) *limiterCache[K] {
	return &limiterCache[K]{
		limiters: make(map[K]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

// get returns the rate limiter for a specific key, creating one if needed.
func (lc *limiterCache[K]) get(key K) *rate.Limiter {
	lc.mu.RLock()
	limiter, exists := lc.limiters[key]
	lc.mu.RUnlock()

	if exists {
		return limiter
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists = lc.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(lc.rate, lc.burst)
	lc.limiters[key] = limiter
	return limiter
}

// clearIfExceeds clears all entries if the cache exceeds maxSize.
// Returns true if the cache was cleared.
func (lc *limiterCache[K]) clearIfExceeds(maxSize int) bool {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	if len(lc.limiters) > maxSize {
		lc.limiters = make(map[K]*rate.Limiter)
		return true
	}
	return false
}

// LoginLimiter provides per-IP rate limiting for the login endpoint.
type LoginLimiter struct {
	ipLimiters *limiterCache[string]
	done       chan struct{}
	closeOnce  sync.Once
}

// LoginLimiterConfig holds configuration for login rate limiting.
type LoginLimiterConfig struct {
	// RateLimit is requests per second per IP (default: 0.5 = 1 request per 2 seconds)
	RateLimit float64
	// Burst is the maximum burst size per IP (default: 5)
	Burst int
}

// DefaultLoginLimiterConfig returns sensible defaults.
func DefaultLoginLimiterConfig() LoginLimiterConfig {
	return LoginLimiterConfig{
		RateLimit: 0.5, // 1 request per 2 seconds
		Burst:     5,
	}
}

// NewLoginLimiter creates a new login rate limiter.
func NewLoginLimiter(cfg LoginLimiterConfig) *LoginLimiter {
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 0.5
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 5
	}

	ll := &LoginLimiter{
		ipLimiters: newLimiterCache[string](cfg.RateLimit, cfg.Burst),
		done:       make(chan struct{}),
	}
	go ll.cleanup()
	return ll
}

// Allow checks whether a login attempt from the given IP is permitted.
func (ll *LoginLimiter) Allow(ip string) bool {
	return ll.ipLimiters.get(ip).Allow()
}

// Close stops the background cleanup goroutine.
func (ll *LoginLimiter) Close() {
	ll.closeOnce.Do(func() { close(ll.done) })
}

// cleanup periodically bounds the limiter cache size.
func (ll *LoginLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if ll.ipLimiters.clearIfExceeds(10000) {
				slog.Info("cleared IP rate limiters due to size")
			}
		case <-ll.done:
			return
		}
	}
}

// Middleware returns HTTP middleware for IP rate limiting on login.
// Only POST requests are rate limited.
func (ll *LoginLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			ip := getClientIP(r)
			if !ll.Allow(ip) {
				slog.WarnContext(r.Context(), "login rate limit exceeded", "ip", ip)
				http.Error(w, "Too many login attempts. Please try again later.", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP extracts the client IP from the request.
func getClientIP(r *http.Request) string {
	// Check X-Real-IP header (set by reverse proxies)
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}

	// Check X-Forwarded-For header
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		// X-Forwarded-For can contain multiple IPs; take the first one
		return ip
	}

	// Fall back to RemoteAddr
	return r.RemoteAddr
}
