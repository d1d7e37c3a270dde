package pool

import (
	"sync"
)

// completionTracker counts tasks that have been accepted but not finished.
// Unlike sync.WaitGroup it allows add and wait to race freely, which is what
// WaitForCompletion needs: waiters observe the moment the count reaches zero
// and later submissions simply start a new round.
type completionTracker struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending int64
}

func newCompletionTracker() *completionTracker {
	t := &completionTracker{}
	t.cond = sync.NewCond(&t.mu)
	return t
}

// add registers n newly accepted tasks
func (t *completionTracker) add(n int64) {
	t.mu.Lock()
	t.pending += n
	t.mu.Unlock()
}

// done marks one task as finished, releasing waiters when none remain
func (t *completionTracker) done() {
	t.mu.Lock()
	t.pending--
	if t.pending < 0 {
		t.mu.Unlock()
		panic("pool: completion tracker underflow")
	}
	if t.pending == 0 {
		t.cond.Broadcast()
	}
	t.mu.Unlock()
}

// wait blocks until no accepted task remains unfinished
func (t *completionTracker) wait() {
	t.mu.Lock()
	for t.pending > 0 {
		t.cond.Wait()
	}
	t.mu.Unlock()
}

// count returns the number of unfinished tasks
func (t *completionTracker) count() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}
