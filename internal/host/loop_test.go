package host

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

type countingDrainer struct {
	perTick int
	calls   int
}

func (c *countingDrainer) Drain() (int, int) {
	c.calls++
	return c.perTick, 1
}

func quietLog() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestLoopDrainsOncePerTick(t *testing.T) {
	d := &countingDrainer{perTick: 2}
	l := NewLoop(d, 0, quietLog())
	l.OnTick = func(tick int) bool { return tick < 5 }

	if err := l.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if d.calls != 5 || l.Ticks() != 5 {
		t.Errorf("drain calls %d, ticks %d; want 5 each", d.calls, l.Ticks())
	}
	if l.Delivered() != 15 {
		t.Errorf("delivered %d, want 15", l.Delivered())
	}
}

func TestLoopStopsOnContext(t *testing.T) {
	l := NewLoop(&countingDrainer{}, 1000, quietLog())
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := l.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("got %v, want DeadlineExceeded", err)
	}
	if l.Ticks() == 0 {
		t.Error("loop never ticked")
	}
}

func TestTickLimiterPaces(t *testing.T) {
	l := NewTickLimiter(100)
	start := time.Now()
	for range 5 {
		if err := l.Wait(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if el := time.Since(start); el < 45*time.Millisecond {
		t.Errorf("5 ticks at 100/s took %v, want >= 45ms", el)
	}
}

func TestTickLimiterCancelled(t *testing.T) {
	l := NewTickLimiter(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	if err := l.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want Canceled", err)
	}
	if el := time.Since(start); el > 100*time.Millisecond {
		t.Errorf("cancelled wait took %v", el)
	}
}

func TestTickLimiterUnlimited(t *testing.T) {
	l := NewTickLimiter(0)
	start := time.Now()
	for range 1000 {
		l.Wait(context.Background())
	}
	if el := time.Since(start); el > 50*time.Millisecond {
		t.Errorf("unlimited waits took %v", el)
	}
}
