package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/quizapi/internal/apperr"
	"github.com/skillsenselab/quizapi/internal/logger"
)

// windowDuration is the fixed counting window. Windows reset lazily on
// access, not on a schedule.
const windowDuration = time.Minute

// RateLimitConfig configures the per-client request throttle. Authentication
// routes get a stricter threshold than the rest of the API.
type RateLimitConfig struct {
	// RequestsPerMinute is the general per-client threshold (default: 100).
	RequestsPerMinute int `yaml:"requests_per_minute" mapstructure:"requests_per_minute"`

	// AuthRequestsPerMinute is the threshold for authentication routes
	// (default: 10).
	AuthRequestsPerMinute int `yaml:"auth_requests_per_minute" mapstructure:"auth_requests_per_minute"`

	// CleanupInterval is how often idle client windows are evicted
	// (default: 5m).
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *RateLimitConfig) ApplyDefaults() {
	if c.RequestsPerMinute <= 0 {
		c.RequestsPerMinute = 100
	}
	if c.AuthRequestsPerMinute <= 0 {
		c.AuthRequestsPerMinute = 10
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = 5 * time.Minute
	}
}

// rateWindow is one client's counter. Each window owns its own mutex so
// contention between different clients never serializes on a single lock;
// the limiter's map mutex is held only for fetch-or-create.
type rateWindow struct {
	mu          sync.Mutex
	count       int
	windowStart time.Time
}

// RateLimiter is a concurrent per-client fixed-window request throttle.
type RateLimiter struct {
	cfg RateLimitConfig

	mu      sync.Mutex
	windows map[string]*rateWindow

	now func() time.Time
}

// NewRateLimiter creates a rate limiter and starts its eviction janitor.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	cfg.ApplyDefaults()
	rl := &RateLimiter{
		cfg:     cfg,
		windows: make(map[string]*rateWindow),
		now:     time.Now,
	}
	go rl.cleanup()
	return rl
}

// Handler returns the throttling middleware. It must run before Authenticate
// so abusive clients are cut off ahead of any token work.
func (rl *RateLimiter) Handler(log *logger.Logger) gin.HandlerFunc {
	log = log.WithComponent("ratelimit")
	return func(c *gin.Context) {
		clientID := ClientID(c)
		limit := rl.cfg.RequestsPerMinute
		if isAuthRoute(c.Request.URL.Path) {
			limit = rl.cfg.AuthRequestsPerMinute
		}

		allowed, remaining, reset := rl.check(clientID, limit)

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !allowed {
			c.Header("X-RateLimit-Reset", strconv.FormatInt(reset, 10))
			log.Warn("Rate limit exceeded", map[string]interface{}{
				logger.FieldClientIP: clientID,
				logger.FieldPath:     c.Request.URL.Path,
				"limit":              limit,
			})
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apperr.RejectBody{
				Error: apperr.RateLimited().Message,
			})
			return
		}

		c.Next()
	}
}

// check performs the atomic increment-and-compare for one client. It returns
// whether the request is permitted, the remaining budget, and the epoch
// second at which the current window resets.
func (rl *RateLimiter) check(clientID string, limit int) (allowed bool, remaining int, reset int64) {
	now := rl.now()

	rl.mu.Lock()
	w, ok := rl.windows[clientID]
	if !ok {
		w = &rateWindow{windowStart: now}
		rl.windows[clientID] = w
	}
	rl.mu.Unlock()

	w.mu.Lock()
	defer w.mu.Unlock()

	if now.Sub(w.windowStart) >= windowDuration {
		w.count = 0
		w.windowStart = now
	}

	reset = w.windowStart.Add(windowDuration).Unix()
	if w.count >= limit {
		return false, 0, reset
	}

	w.count++
	remaining = limit - w.count
	if remaining < 0 {
		remaining = 0
	}
	return true, remaining, reset
}

// cleanup periodically evicts windows that have sat idle past expiry, so the
// per-client map does not grow without bound.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.cfg.CleanupInterval)
	defer ticker.Stop()
	for range ticker.C {
		rl.evictStale()
	}
}

func (rl *RateLimiter) evictStale() {
	now := rl.now()
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for id, w := range rl.windows {
		w.mu.Lock()
		stale := now.Sub(w.windowStart) >= 2*windowDuration
		w.mu.Unlock()
		if stale {
			delete(rl.windows, id)
		}
	}
}

// isAuthRoute classifies paths under the stricter authentication threshold.
func isAuthRoute(path string) bool {
	return strings.Contains(path, "/auth/") ||
		strings.Contains(path, "/login") ||
		strings.Contains(path, "/register")
}

// ClientID derives the throttling/logging identifier for a request: the
// first entry of X-Forwarded-For when present, else the direct peer address.
func ClientID(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first := strings.SplitN(xff, ",", 2)[0]
		return strings.TrimSpace(first)
	}
	return c.Request.RemoteAddr
}
