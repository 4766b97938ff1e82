package ratelimit

import (
	"context"
	"sync"
	"time"
)

// TokenLimiter enforces a per-minute token budget. Wait blocks until the
// requested amount of tokens fits into the current one-minute window.
type TokenLimiter struct {
	mu        sync.Mutex
	maxPerMin int
	used      int
	windowEnd time.Time
}

// NewTokenLimiter creates a TokenLimiter with the given per-minute budget.
func NewTokenLimiter(maxPerMinute int) *TokenLimiter {
	return &TokenLimiter{
		maxPerMin: maxPerMinute,
		windowEnd: time.Now().Add(time.Minute),
	}
}

// GetRemaining returns the tokens still available in the current window.
func (t *TokenLimiter) GetRemaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rotate(time.Now())
	return t.maxPerMin - t.used
}

// Wait blocks until n tokens are available, then consumes them. A request
// larger than the whole budget is consumed in a single fresh window rather
// than blocking forever.
func (t *TokenLimiter) Wait(ctx context.Context, n int) error {
	for {
		t.mu.Lock()
		now := time.Now()
		t.rotate(now)
		if t.used+n <= t.maxPerMin || (t.used == 0 && n > t.maxPerMin) {
			t.used += n
			t.mu.Unlock()
			return nil
		}
		wait := time.Until(t.windowEnd)
		t.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (t *TokenLimiter) rotate(now time.Time) {
	if now.After(t.windowEnd) {
		t.used = 0
		t.windowEnd = now.Add(time.Minute)
	}
}
