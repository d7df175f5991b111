package host

import (
	"context"
	"log/slog"
	"time"

	"mapgen/internal/profiling"
)

// slowTick is the budget after which a tick is logged with its top costs.
const slowTick = 16 * time.Millisecond

// Drainer delivers queued results on the calling goroutine.
type Drainer interface {
	Drain() (maps, meshes int)
}

// Loop is the single consumer goroutine: each tick it drains every result
// queue once, then runs OnTick.
type Loop struct {
	drainer Drainer
	limiter *TickLimiter
	log     *slog.Logger

	// OnTick runs after the drains of every tick. Returning false stops Run.
	OnTick func(tick int) bool

	ticks     int
	delivered int
}

// NewLoop creates a loop ticking rate times per second.
func NewLoop(d Drainer, rate int, log *slog.Logger) *Loop {
	if log == nil {
		log = slog.Default()
	}
	return &Loop{drainer: d, limiter: NewTickLimiter(rate), log: log}
}

// Run ticks until ctx is done or OnTick returns false.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !l.Tick() {
			return nil
		}
		if err := l.limiter.Wait(ctx); err != nil {
			return err
		}
	}
}

// Tick performs one drain cycle. It reports whether the loop should go on.
func (l *Loop) Tick() bool {
	profiling.ResetTick()
	start := time.Now()

	maps, meshes := l.drainer.Drain()
	l.delivered += maps + meshes
	l.ticks++

	cont := true
	if l.OnTick != nil {
		cont = l.OnTick(l.ticks)
	}

	if d := time.Since(start); d > slowTick {
		l.log.Warn("slow tick", "duration", d, "top", profiling.TopN(5))
	}
	return cont
}

// Ticks returns the number of completed ticks.
func (l *Loop) Ticks() int { return l.ticks }

// Delivered returns the number of callbacks run by all drains so far.
func (l *Loop) Delivered() int { return l.delivered }
