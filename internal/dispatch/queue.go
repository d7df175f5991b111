package dispatch

import "sync"

// PendingResult pairs a finished value with the callback that will receive
// it on the consumer goroutine.
type PendingResult[T any] struct {
	Callback func(T)
	Value    T
}

// ResultQueue is a FIFO of pending results. Push is safe from any goroutine;
// Drain is meant for the single consumer.
type ResultQueue[T any] struct {
	mu    sync.Mutex
	items []PendingResult[T]
}

// Push appends a result.
func (q *ResultQueue[T]) Push(r PendingResult[T]) {
	q.mu.Lock()
	q.items = append(q.items, r)
	q.mu.Unlock()
}

// Drain detaches everything queued right now and leaves the queue empty.
// Results pushed after Drain returns belong to the next call.
func (q *ResultQueue[T]) Drain() []PendingResult[T] {
	q.mu.Lock()
	items := q.items
	q.items = nil
	q.mu.Unlock()
	return items
}

// Len returns the number of queued results.
func (q *ResultQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
