package dispatch

import (
	"errors"
	"sync"
)

var (
	ErrSaturated = errors.New("dispatch: worker pool queue is full")
	ErrClosed    = errors.New("dispatch: dispatcher is closed")
)

// Job is a unit of work run by the pool.
type Job func()

// WorkerPool runs jobs on a fixed set of goroutines fed by a bounded queue.
type WorkerPool struct {
	jobQueue chan Job
	workers  int
	wg       sync.WaitGroup

	// mu guards closed and the send side of jobQueue
	mu     sync.RWMutex
	closed bool
}

// NewWorkerPool creates a pool and starts its workers.
func NewWorkerPool(workers int, queueSize int) *WorkerPool {
	workers = max(workers, 1)
	queueSize = max(queueSize, 0)

	pool := &WorkerPool{
		jobQueue: make(chan Job, queueSize),
		workers:  workers,
	}

	for range workers {
		pool.wg.Add(1)
		go pool.worker()
	}

	return pool
}

// SubmitJob queues a job without blocking.
// Returns ErrSaturated if the queue is full and ErrClosed after Close.
func (p *WorkerPool) SubmitJob(job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	select {
	case p.jobQueue <- job:
		return nil
	default:
		return ErrSaturated
	}
}

// SubmitJobBlocking waits for queue space. Close waits for blocked
// submitters to get their job in before shutting the queue.
func (p *WorkerPool) SubmitJobBlocking(job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	p.jobQueue <- job
	return nil
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for job := range p.jobQueue {
		job()
	}
}

// Close stops accepting jobs, runs everything already queued and waits for
// the workers to exit. It is safe to call more than once.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.jobQueue)
	}
	p.mu.Unlock()
	p.wg.Wait()
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int { return p.workers }

// QueueLength returns the current number of jobs waiting for a worker.
func (p *WorkerPool) QueueLength() int {
	return len(p.jobQueue)
}
