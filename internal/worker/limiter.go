package worker

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter spaces requests by a fixed interval. One Limiter is shared by
// every fetch of a run, so the interval is a global request budget rather
// than a per-host or per-caller delay.
type Limiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	delay   time.Duration
}

// NewLimiter returns a limiter that allows one request per delay. A
// non-positive delay disables throttling.
func NewLimiter(delay time.Duration) *Limiter {
	return &Limiter{
		limiter: rate.NewLimiter(limitFor(delay), 1),
		delay:   max(delay, 0),
	}
}

func limitFor(delay time.Duration) rate.Limit {
	if delay <= 0 {
		return rate.Inf
	}
	return rate.Every(delay)
}

// Wait blocks until the next request may start or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.current().Wait(ctx)
}

// Delay returns the current interval.
func (l *Limiter) Delay() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.delay
}

// RaiseDelay widens the interval to d if d is larger than the current one.
// It is used to honour a robots.txt crawl-delay.
func (l *Limiter) RaiseDelay(d time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if d <= l.delay {
		return false
	}
	l.delay = d
	l.limiter.SetLimit(limitFor(d))
	return true
}

func (l *Limiter) current() *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.limiter
}
