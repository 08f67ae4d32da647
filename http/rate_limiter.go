package http

import (
	"sync"
	"time"
)

const (
	idleWindowTTL = 1 * time.Hour
	sweepInterval = 30 * time.Minute
)

// window counts one client's requests until resetAt.
type window struct {
	used    int
	resetAt time.Time
}

// RateLimiter allows each client limit requests per fixed window. Idle
// clients are swept periodically until Stop is called.
type RateLimiter struct {
	mu      sync.Mutex
	limit   int
	period  time.Duration
	windows map[string]*window
	done    chan struct{}
	once    sync.Once
	now     func() time.Time
}

func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	rl := &RateLimiter{
		limit:   limit,
		period:  period,
		windows: make(map[string]*window),
		done:    make(chan struct{}),
		now:     time.Now,
	}
	go rl.sweepLoop()
	return rl
}

func (r *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sweep()
		case <-r.done:
			return
		}
	}
}

func (r *RateLimiter) sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idleWindowTTL)
	for client, w := range r.windows {
		if w.resetAt.Before(cutoff) {
			delete(r.windows, client)
		}
	}
}

// Stop ends the background sweep. Safe to call more than once.
func (r *RateLimiter) Stop() {
	r.once.Do(func() { close(r.done) })
}

// Allow records a request from client. A rejected request gets the time left
// until the client's window resets.
func (r *RateLimiter) Allow(client string) (bool, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	w, ok := r.windows[client]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(r.period)}
		r.windows[client] = w
	}

	if w.used >= r.limit {
		return false, w.resetAt.Sub(now)
	}
	w.used++
	return true, 0
}
