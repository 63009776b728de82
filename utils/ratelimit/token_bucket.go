package ratelimit

import (
	"context"
	"sync"
	"time"
)

// TokenBucket is a token bucket rate limiter.
type TokenBucket struct {
	rate       float64 // tokens generated per second
	capacity   int64
	tokens     float64
	lastUpdate time.Time
	mutex      sync.Mutex
}

// NewTokenBucket creates a limiter generating rate tokens per second with the
// given burst capacity.
func NewTokenBucket(rate float64, capacity int64) *TokenBucket {
	return &TokenBucket{
		rate:       rate,
		capacity:   capacity,
		tokens:     float64(capacity),
		lastUpdate: time.Now(),
	}
}

// Allow reports whether a single request may pass right now.
func (tb *TokenBucket) Allow() bool {
	return tb.AllowN(1)
}

// AllowN reports whether n tokens can be consumed right now.
func (tb *TokenBucket) AllowN(n int64) bool {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	tb.refill()
	if tb.tokens < float64(n) {
		return false
	}
	tb.tokens -= float64(n)
	return true
}

// Wait blocks until a single token is available or the context is done.
func (tb *TokenBucket) Wait(ctx context.Context) error {
	return tb.WaitN(ctx, 1)
}

// WaitN blocks until n tokens are available or the context is done.
func (tb *TokenBucket) WaitN(ctx context.Context, n int64) error {
	for {
		tb.mutex.Lock()
		tb.refill()
		if tb.tokens >= float64(n) {
			tb.tokens -= float64(n)
			tb.mutex.Unlock()
			return nil
		}
		waitTime := time.Duration(float64(n-int64(tb.tokens)) / tb.rate * float64(time.Second))
		tb.mutex.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}
}

// refill credits tokens for the elapsed interval. Callers hold the mutex.
func (tb *TokenBucket) refill() {
	now := time.Now()
	elapsed := now.Sub(tb.lastUpdate).Seconds()
	tb.tokens = min(float64(tb.capacity), tb.tokens+elapsed*tb.rate)
	tb.lastUpdate = now
}
