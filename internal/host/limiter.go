package host

import (
	"context"
	"time"
)

// spinWindow is the tail of each interval spent polling instead of sleeping.
const spinWindow = 200 * time.Microsecond

// TickLimiter paces a loop to a fixed number of ticks per second.
type TickLimiter struct {
	interval time.Duration
	deadline time.Time
}

// NewTickLimiter creates a limiter. A rate <= 0 disables limiting.
func NewTickLimiter(rate int) *TickLimiter {
	l := &TickLimiter{}
	if rate > 0 {
		l.interval = time.Second / time.Duration(rate)
	}
	return l
}

// Wait blocks until the next tick is due or ctx is done. Deadlines advance
// by a fixed interval so short hitches are absorbed; after a long stall the
// schedule restarts from now.
func (l *TickLimiter) Wait(ctx context.Context) error {
	if l.interval == 0 {
		return ctx.Err()
	}

	now := time.Now()
	if l.deadline.IsZero() || now.Sub(l.deadline) > l.interval {
		l.deadline = now.Add(l.interval)
	} else {
		l.deadline = l.deadline.Add(l.interval)
	}

	if sleep := time.Until(l.deadline) - spinWindow; sleep > 0 {
		t := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
	for time.Now().Before(l.deadline) {
	}
	return ctx.Err()
}
