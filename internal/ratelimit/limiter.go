package ratelimit

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Limiter enforces a fixed cadence between operations, with a name for
// logging/debugging. The clock and sleep functions can be replaced so tests
// never wait in real time.
type Limiter struct {
	limiter  *rate.Limiter
	name     string
	interval time.Duration
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
}

// Option is a functional option for configuring the Limiter.
type Option func(*Limiter)

// WithClock sets the time source used to reserve tokens.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}

// WithSleep sets the function used to wait out a reservation delay.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(l *Limiter) {
		if sleep != nil {
			l.sleep = sleep
		}
	}
}

// New creates a limiter that lets one operation through per interval.
// An interval of zero or less disables waiting entirely.
func New(name string, interval time.Duration, opts ...Option) *Limiter {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}

	l := &Limiter{
		limiter:  rate.NewLimiter(limit, 1),
		name:     name,
		interval: interval,
		now:      time.Now,
		sleep:    sleepContext,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Wait blocks until the limiter allows the next operation to proceed.
// The interval runs from the previous Wait, not from the end of the work
// done after it.
// Returns an error if the context is cancelled while waiting.
func (l *Limiter) Wait(ctx context.Context) error {
	now := l.now()
	r := l.limiter.ReserveN(now, 1)
	if !r.OK() {
		return fmt.Errorf("rate limit wait for %s: reservation refused", l.name)
	}

	delay := r.DelayFrom(now)
	if delay <= 0 {
		return nil
	}

	if err := l.sleep(ctx, delay); err != nil {
		r.CancelAt(l.now())
		return fmt.Errorf("rate limit wait for %s: %w", l.name, err)
	}
	return nil
}

// Allow reports whether an operation can proceed without blocking.
// Use this for non-blocking checks; prefer Wait for most cases.
func (l *Limiter) Allow() bool {
	return l.limiter.AllowN(l.now(), 1)
}

// Name returns the name of this rate limiter.
func (l *Limiter) Name() string {
	return l.name
}

// Interval returns the minimum spacing between operations.
func (l *Limiter) Interval() time.Duration {
	return l.interval
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
