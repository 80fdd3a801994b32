// Package ratelimit provides per-user token-bucket admission control for
// authenticated routes. Buckets live in process memory only and reset on
// restart.
package ratelimit

import (
	"sync"
	"time"
)

const (
	DefaultCapacity = 100
	DefaultInterval = time.Minute
)

// bucket refills in fixed-interval batches, not a continuous leak: once a full
// interval has elapsed the bucket is topped back up to capacity.
type bucket struct {
	tokens     int
	lastRefill time.Time
}

// Limiter owns the shared bucket map. Creation on first use happens under the
// mutex, so exactly one bucket exists per user id even under concurrent first
// requests, and concurrent consumes on the same bucket cannot both take the
// last token.
type Limiter struct {
	mu      sync.Mutex
	buckets map[int]*bucket

	Capacity int
	Interval time.Duration
	Now      func() time.Time
}

func NewLimiter() *Limiter {
	return &Limiter{buckets: make(map[int]*bucket)}
}

func (l *Limiter) capacity() int {
	if l.Capacity > 0 {
		return l.Capacity
	}
	return DefaultCapacity
}

func (l *Limiter) interval() time.Duration {
	if l.Interval > 0 {
		return l.Interval
	}
	return DefaultInterval
}

func (l *Limiter) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

// Admit consumes one token from the user's bucket. It reports false, with no
// state change, when the bucket is empty.
func (l *Limiter) Admit(userID int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[userID]
	if !ok {
		b = &bucket{tokens: l.capacity(), lastRefill: now}
		l.buckets[userID] = b
	} else if now.Sub(b.lastRefill) >= l.interval() {
		b.tokens = l.capacity()
		b.lastRefill = now
	}

	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}
