// Package loop provides the frame timing facility and a stoppable
// self-rescheduling frame loop on top of it.
package loop

import "sync"

// Scheduler runs fn once before the next repaint. The returned cancel
// drops the request if it has not run yet.
type Scheduler interface {
	RequestFrame(fn func()) (cancel func())
}

// Loop calls frame once per scheduled frame and re-requests itself after
// every call until stopped.
type Loop struct {
	sched Scheduler
	frame func()

	mu      sync.Mutex
	running bool
	gen     uint64
	cancel  func()
	frames  uint64
}

func New(sched Scheduler, frame func()) *Loop {
	return &Loop{sched: sched, frame: frame}
}

// Start requests the first frame. Calling Start on a running loop does nothing.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return
	}
	l.running = true
	l.gen++
	l.schedule(l.gen)
}

// Stop cancels the pending frame. No frame runs after Stop returns unless
// it is already executing.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.running {
		return
	}
	l.running = false
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// Frames reports how many frames have run.
func (l *Loop) Frames() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames
}

// schedule must be called with mu held.
func (l *Loop) schedule(gen uint64) {
	l.cancel = l.sched.RequestFrame(func() { l.tick(gen) })
}

func (l *Loop) tick(gen uint64) {
	l.mu.Lock()
	if !l.running || gen != l.gen {
		l.mu.Unlock()
		return
	}
	l.frames++
	l.mu.Unlock()

	l.frame()

	l.mu.Lock()
	defer l.mu.Unlock()
	// the frame may have stopped or restarted the loop
	if l.running && gen == l.gen {
		l.schedule(gen)
	}
}
