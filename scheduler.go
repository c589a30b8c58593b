package immstruct

import "sync"

// Scheduler runs callbacks after the current frame. It is the hook behind
// next-animation-frame events.
type Scheduler interface {
	Schedule(fn func())
}

// SchedulerFunc adapts a function to a Scheduler.
type SchedulerFunc func(fn func())

func (f SchedulerFunc) Schedule(fn func()) {
	f(fn)
}

// FrameQueue is a Scheduler whose callbacks run when Flush is called, for
// event loops which draw frames explicitly. It is safe for concurrent use;
// Flush must be called from the goroutine which owns the structures.
type FrameQueue struct {
	mu      sync.Mutex
	pending []func()
}

func (q *FrameQueue) Schedule(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, fn)
}

// Flush runs the callbacks scheduled before the call and returns how many
// ran. Callbacks scheduled while flushing wait for the next Flush.
func (q *FrameQueue) Flush() int {
	q.mu.Lock()
	fns := q.pending
	q.pending = nil
	q.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// Len returns the number of pending callbacks.
func (q *FrameQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
