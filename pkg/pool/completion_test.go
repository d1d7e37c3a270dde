package pool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompletionTracker_WaitWithoutPending(t *testing.T) {
	tracker := newCompletionTracker()

	done := make(chan struct{})
	go func() {
		tracker.wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("wait should return immediately when nothing is pending")
	}
}

func TestCompletionTracker_WaitBlocksUntilDone(t *testing.T) {
	tracker := newCompletionTracker()
	tracker.add(2)
	assert.Equal(t, int64(2), tracker.count())

	var released int32
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		tracker.wait()
		atomic.StoreInt32(&released, 1)
	}()

	// Still one task outstanding, the waiter must not run
	tracker.done()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&released))

	tracker.done()
	wg.Wait()
	assert.Equal(t, int32(1), atomic.LoadInt32(&released))
	assert.Equal(t, int64(0), tracker.count())
}

func TestCompletionTracker_ReleasesAllWaiters(t *testing.T) {
	tracker := newCompletionTracker()
	tracker.add(1)

	const waiters = 8
	var released int32
	var wg sync.WaitGroup
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.wait()
			atomic.AddInt32(&released, 1)
		}()
	}

	tracker.done()
	wg.Wait()
	assert.Equal(t, int32(waiters), atomic.LoadInt32(&released))
}

func TestCompletionTracker_Reusable(t *testing.T) {
	tracker := newCompletionTracker()

	// First round
	tracker.add(1)
	tracker.done()
	tracker.wait()

	// Second round starts fresh after the barrier opened
	tracker.add(1)
	assert.Equal(t, int64(1), tracker.count())
	tracker.done()
	tracker.wait()
	assert.Equal(t, int64(0), tracker.count())
}

func TestCompletionTracker_UnderflowPanics(t *testing.T) {
	tracker := newCompletionTracker()

	assert.Panics(t, func() {
		tracker.done()
	})
}
