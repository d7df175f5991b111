package dispatch

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestWorkerPoolRunsAllJobs(t *testing.T) {
	p := NewWorkerPool(4, 8)
	var n atomic.Int32
	for range 100 {
		if err := p.SubmitJobBlocking(func() { n.Add(1) }); err != nil {
			t.Fatal(err)
		}
	}
	p.Close()
	if got := n.Load(); got != 100 {
		t.Errorf("ran %d jobs, want 100", got)
	}
}

func TestWorkerPoolSubmitJobFull(t *testing.T) {
	p := NewWorkerPool(1, 1)
	started := make(chan struct{})
	release := make(chan struct{})

	if err := p.SubmitJob(func() { close(started); <-release }); err != nil {
		t.Fatal(err)
	}
	<-started // worker busy
	if err := p.SubmitJob(func() {}); err != nil {
		t.Fatalf("queue slot should be free: %v", err)
	}
	if err := p.SubmitJob(func() {}); !errors.Is(err, ErrSaturated) {
		t.Fatalf("got %v, want ErrSaturated", err)
	}
	if got := p.QueueLength(); got != 1 {
		t.Errorf("queue length %d, want 1", got)
	}
	close(release)
	p.Close()
}

func TestWorkerPoolClosed(t *testing.T) {
	p := NewWorkerPool(2, 2)
	p.Close()
	p.Close()
	if err := p.SubmitJob(func() {}); !errors.Is(err, ErrClosed) {
		t.Errorf("SubmitJob after close: got %v, want ErrClosed", err)
	}
	if err := p.SubmitJobBlocking(func() {}); !errors.Is(err, ErrClosed) {
		t.Errorf("SubmitJobBlocking after close: got %v, want ErrClosed", err)
	}
}

func TestWorkerPoolDefaults(t *testing.T) {
	p := NewWorkerPool(0, -1)
	defer p.Close()
	if p.Workers() != 1 {
		t.Errorf("workers %d, want at least 1", p.Workers())
	}
}
