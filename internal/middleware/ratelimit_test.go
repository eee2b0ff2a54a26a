package middleware

import (
	"sync"
	"testing"
	"time"
)

// newTestLimiter builds a limiter with a controllable clock and no janitor.
func newTestLimiter(cfg RateLimitConfig, now *time.Time) *RateLimiter {
	cfg.ApplyDefaults()
	return &RateLimiter{
		cfg:     cfg,
		windows: make(map[string]*rateWindow),
		now:     func() time.Time { return *now },
	}
}

func TestRateLimiter_ThresholdAndReset(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rl := newTestLimiter(RateLimitConfig{AuthRequestsPerMinute: 10}, &now)

	const limit = 10
	for i := 1; i <= limit; i++ {
		allowed, remaining, _ := rl.check("1.2.3.4", limit)
		if !allowed {
			t.Fatalf("request %d should be permitted", i)
		}
		if remaining != limit-i {
			t.Errorf("request %d: remaining = %d, want %d", i, remaining, limit-i)
		}
	}

	allowed, remaining, reset := rl.check("1.2.3.4", limit)
	if allowed {
		t.Fatal("request 11 should be rejected within the window")
	}
	if remaining != 0 {
		t.Errorf("rejected remaining = %d, want 0", remaining)
	}
	if want := now.Add(time.Minute).Unix(); reset != want {
		t.Errorf("reset = %d, want %d", reset, want)
	}

	// A different client is unaffected.
	if ok, _, _ := rl.check("5.6.7.8", limit); !ok {
		t.Error("different client should be permitted")
	}

	// After the window elapses the counter resets lazily.
	now = now.Add(windowDuration)
	if ok, rem, _ := rl.check("1.2.3.4", limit); !ok || rem != limit-1 {
		t.Errorf("first request of new window: allowed=%v remaining=%d", ok, rem)
	}
}

func TestRateLimiter_ConcurrentSameClient(t *testing.T) {
	now := time.Now()
	rl := newTestLimiter(RateLimitConfig{}, &now)

	const limit = 10
	const attempts = 100

	var wg sync.WaitGroup
	var mu sync.Mutex
	permitted := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _, _ := rl.check("1.2.3.4", limit); ok {
				mu.Lock()
				permitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if permitted != limit {
		t.Fatalf("permitted = %d, want exactly %d under concurrency", permitted, limit)
	}
}

func TestRateLimiter_EvictStale(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rl := newTestLimiter(RateLimitConfig{}, &now)

	rl.check("1.2.3.4", 10)
	rl.check("5.6.7.8", 10)

	now = now.Add(3 * windowDuration)
	rl.check("5.6.7.8", 10) // refreshes this client's window
	rl.evictStale()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.windows["1.2.3.4"]; ok {
		t.Error("idle window should have been evicted")
	}
	if _, ok := rl.windows["5.6.7.8"]; !ok {
		t.Error("active window should have been kept")
	}
}

func TestIsAuthRoute(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/api/auth/login", true},
		{"/api/auth/register", true},
		{"/api/auth/refresh", true},
		{"/api/quizzes", false},
		{"/api/users/me", false},
		{"/api/health", false},
	}
	for _, tt := range tests {
		if got := isAuthRoute(tt.path); got != tt.want {
			t.Errorf("isAuthRoute(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
