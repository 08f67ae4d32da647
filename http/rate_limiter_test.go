package http

import (
	"testing"
	"time"
)

func TestRateLimiter_Allow(t *testing.T) {

	limiter := NewRateLimiter(2, time.Minute)
	defer limiter.Stop()

	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		if ok, _ := limiter.Allow("10.0.0.1"); !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	now = now.Add(20 * time.Second)
	ok, retryAfter := limiter.Allow("10.0.0.1")
	if ok {
		t.Fatalf("third request should be rejected")
	}
	if retryAfter != 40*time.Second {
		t.Errorf("expected retry after 40s, got %s", retryAfter)
	}

	if ok, _ := limiter.Allow("10.0.0.2"); !ok {
		t.Errorf("other clients keep their own window")
	}

	now = now.Add(40 * time.Second)
	if ok, _ := limiter.Allow("10.0.0.1"); !ok {
		t.Errorf("window should reset after the period")
	}
}

func TestRateLimiter_Sweep(t *testing.T) {

	limiter := NewRateLimiter(1, time.Minute)
	defer limiter.Stop()

	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	limiter.Allow("10.0.0.1")

	now = now.Add(2 * idleWindowTTL)
	limiter.Allow("10.0.0.2")
	limiter.sweep()

	limiter.mu.Lock()
	_, stale := limiter.windows["10.0.0.1"]
	_, fresh := limiter.windows["10.0.0.2"]
	limiter.mu.Unlock()
	if stale || !fresh {
		t.Errorf("expected only the idle window to be dropped")
	}
}

func TestRateLimiter_StopTwice(t *testing.T) {

	limiter := NewRateLimiter(1, time.Minute)
	limiter.Stop()
	limiter.Stop()
}
