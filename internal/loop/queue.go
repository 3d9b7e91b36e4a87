package loop

import (
	"sync"
	"time"
)

type request struct {
	fn       func()
	canceled bool
}

// Queue is a Scheduler driven by the host's repaint loop: the host calls
// Flush once per display frame.
type Queue struct {
	mu      sync.Mutex
	pending []*request
}

func NewQueue() *Queue { return &Queue{} }

func (q *Queue) RequestFrame(fn func()) func() {
	req := &request{fn: fn}
	q.mu.Lock()
	q.pending = append(q.pending, req)
	q.mu.Unlock()
	return func() {
		q.mu.Lock()
		req.canceled = true
		q.mu.Unlock()
	}
}

// Flush runs every callback requested before the flush began, in request
// order. Callbacks requested while flushing wait for the next Flush.
// It returns the number of callbacks run.
func (q *Queue) Flush() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	n := 0
	for _, req := range batch {
		q.mu.Lock()
		canceled := req.canceled
		q.mu.Unlock()
		if canceled {
			continue
		}
		req.fn()
		n++
	}
	return n
}

// Len reports the number of outstanding requests, canceled ones included.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Ticker flushes a Queue at a fixed rate on its own goroutine, for hosts
// without a repaint loop of their own.
type Ticker struct {
	*Queue
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func NewTicker(fps int) *Ticker {
	if fps <= 0 {
		fps = 60
	}
	t := &Ticker{
		Queue:  NewQueue(),
		ticker: time.NewTicker(time.Second / time.Duration(fps)),
		done:   make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *Ticker) run() {
	for {
		select {
		case <-t.done:
			return
		case <-t.ticker.C:
			t.Flush()
		}
	}
}

func (t *Ticker) Close() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}
