package pool

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/jzx17/gothreadpool/pkg/types"
)

// workerHandle identifies one worker goroutine. done is closed when the
// goroutine exits so the pool can join and prune it.
type workerHandle struct {
	id   int64
	done chan struct{}
}

// workerLoop is the main loop of a single worker. It drains the queue, then
// waits for a wake-up token, shutdown or the idle timeout. A worker whose
// idle timeout fires exits only after confirming under the lock that the
// queue is still empty; the exit decision and the live worker decrement
// happen in one critical section so a concurrent Submit either hands the
// task to this worker or sees the freed slot and spawns a new one.
func (p *DynamicPool) workerLoop(handle *workerHandle) {
	defer p.retire(handle)

	timer := p.config.Clock.NewTimer(p.config.IdleTimeout)
	defer timer.Stop()

	for {
		task, ok := p.popTask()
		if ok {
			p.runTask(handle, task)
			continue
		}

		p.mu.Lock()
		if p.shuttingDown && p.queue.len() == 0 {
			atomic.AddInt32(&p.liveWorkers, -1)
			p.mu.Unlock()
			return
		}
		p.idleWorkers++
		p.mu.Unlock()

		if !timer.Stop() {
			select {
			case <-timer.C():
			default:
			}
		}
		timer.Reset(p.config.IdleTimeout)

		select {
		case <-p.workC:
			p.mu.Lock()
			p.idleWorkers--
			p.mu.Unlock()

		case <-p.quitC:
			p.mu.Lock()
			p.idleWorkers--
			p.mu.Unlock()

		case <-timer.C():
			p.mu.Lock()
			p.idleWorkers--
			if p.queue.len() > 0 {
				// Work arrived between the timeout firing and this check.
				p.mu.Unlock()
				continue
			}
			atomic.AddInt32(&p.liveWorkers, -1)
			p.mu.Unlock()
			p.logger.Debug().
				Int64("worker_id", handle.id).
				Msg("worker idle timeout")
			return
		}
	}
}

// popTask removes the oldest queued task. If more tasks remain it passes the
// wake-up token on so another idle worker starts draining as well.
func (p *DynamicPool) popTask() (types.Task, bool) {
	p.mu.Lock()
	task, ok := p.queue.pop()
	remaining := p.queue.len()
	p.mu.Unlock()

	if ok && remaining > 0 {
		p.wakeOne()
	}
	return task, ok
}

// runTask executes a single task and updates pool statistics. The completion
// tracker is decremented last so WaitForCompletion does not return before
// error handlers and callbacks have run.
func (p *DynamicPool) runTask(handle *workerHandle, task types.Task) {
	defer p.completion.done()

	atomic.AddInt64(&p.activeTasks, 1)
	startTime := p.config.Clock.Now()

	err := p.executeTask(handle, task)

	executionTime := p.config.Clock.Since(startTime)
	atomic.AddInt64(&p.activeTasks, -1)
	atomic.AddInt64(&p.completedTasks, 1)

	failed := err != nil
	if failed {
		atomic.AddInt64(&p.failedTasks, 1)
		p.logger.Error().
			Err(err).
			Str("task_id", task.ID()).
			Int64("worker_id", handle.id).
			Msg("task failed")
		p.handleError(err)
	}

	if p.config.CompletionCallback != nil {
		p.config.CompletionCallback(executionTime, !failed)
	}
}

// executeTask executes a task with panic recovery support
func (p *DynamicPool) executeTask(handle *workerHandle, task types.Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			// record panic information
			var buf [4096]byte
			n := runtime.Stack(buf[:], false)

			err = types.NewPoolError("execute",
				fmt.Errorf("%w: %v", types.ErrTaskPanicked, r)).
				WithContext("task_id", task.ID()).
				WithContext("worker_id", handle.id).
				WithContext("stack_trace", string(buf[:n]))
		}
	}()

	return task.Execute(context.Background())
}

// handleError passes a task error to the configured handler
func (p *DynamicPool) handleError(err error) {
	handler := p.config.ErrorHandler
	if handler == nil {
		return
	}
	if handledErr := handler(err); handledErr != nil {
		p.logger.Error().
			Err(handledErr).
			Msg("error handler failed")
	}
}

// retire releases the worker bookkeeping after its goroutine returns
func (p *DynamicPool) retire(handle *workerHandle) {
	close(handle.done)
	atomic.AddInt32(&p.exitedHandles, 1)
	p.logger.Debug().
		Int64("worker_id", handle.id).
		Int32("live_workers", atomic.LoadInt32(&p.liveWorkers)).
		Msg("worker exited")
}
