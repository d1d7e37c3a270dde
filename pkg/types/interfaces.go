// Package types defines core interfaces and types for the thread pool library
package types

import (
	"context"
)

// Task defines the task interface
type Task interface {
	// Execute executes the task
	Execute(ctx context.Context) error

	// ID returns the task ID (optional, for tracking)
	ID() string
}

// WorkerPool defines the worker pool interface
type WorkerPool interface {
	// Submit submits a task to the worker pool
	Submit(task Task) error

	// WorkerCount returns the number of live workers
	WorkerCount() int

	// MaxWorkers returns the configured worker bound
	MaxWorkers() int

	// PendingTasks returns the number of tasks queued or running
	PendingTasks() int64

	// WaitForCompletion blocks until no task is queued or running
	WaitForCompletion()

	// Stats returns worker pool statistics
	Stats() PoolStats

	// IsRunning reports whether the pool still accepts tasks
	IsRunning() bool

	// Close shuts the pool down gracefully and releases resources
	Close() error
}

// PoolStats defines basic statistics for worker pools
type PoolStats struct {
	// CurrentWorkers is the number of live workers
	CurrentWorkers int

	// IdleWorkers is the number of workers waiting for work
	IdleWorkers int

	// MaxWorkers is the configured worker bound
	MaxWorkers int

	// QueuedTasks is the current number of tasks in the queue
	QueuedTasks int

	// ActiveTasks is the number of tasks currently executing
	ActiveTasks int64

	// SubmittedTasks is the total number of accepted tasks
	SubmittedTasks int64

	// CompletedTasks is the total number of finished tasks
	CompletedTasks int64

	// FailedTasks is the total number of tasks that returned an error or panicked
	FailedTasks int64
}

// BusyWorkers returns the number of workers currently running tasks,
// floored at zero
func (s PoolStats) BusyWorkers() int {
	busy := s.CurrentWorkers - s.IdleWorkers
	if busy < 0 {
		return 0
	}
	return busy
}

// SuccessRate gets the success rate over all finished tasks
func (s PoolStats) SuccessRate() float64 {
	if s.CompletedTasks == 0 {
		return 0
	}
	return float64(s.CompletedTasks-s.FailedTasks) / float64(s.CompletedTasks)
}

// ErrorHandler defines an error handling function invoked for each failed task.
// The returned error, if any, is logged but not propagated further.
type ErrorHandler func(error) error
