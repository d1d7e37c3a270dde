/*
Package pool provides a production-grade dynamic worker pool with demand-driven scaling and comprehensive task management.

# Overview

This package implements a high-performance, concurrency-safe worker pool supporting:
- Demand-driven worker creation up to a configurable maximum
- Automatic worker retirement after an idle timeout
- Unbounded FIFO task queuing
- Completion tracking and barriers
- Graceful shutdown that drains all pending work
- Error handling and panic recovery
- Complete statistical information

# Core Components

## DynamicPool

Dynamic worker pool implementation providing the following features:
- Workers are spawned only when tasks arrive and no worker is idle
- Workers exit on their own after the configured idle timeout
- A pool with no work consumes no goroutines
- Task submission never blocks; the queue grows as needed
- Real-time statistics
- Graceful shutdown mechanism

## Task

Task interface and implementations including:
- FuncTask: wraps a plain function as a task
- Custom implementations supply Execute and ID

# Lifecycle

A freshly created pool has zero workers. Each submission wakes an idle worker
when one exists, otherwise it starts a new worker as long as the pool is below
its maximum. An idle worker that receives no work within the idle timeout
exits and releases its slot; subsequent submissions will spawn replacements.
Close stops admission, waits for every accepted task to finish and joins all
worker goroutines.

# Concurrency Safety

All components have undergone rigorous concurrency safety testing:
- Passes Go race detector
- Supports high-concurrency task submission
- Worker slots are claimed with compare-and-swap, so the worker count never
  exceeds the configured maximum even under concurrent submission bursts
- Every woken worker re-checks the queue under the lock before acting, so
  wake-ups can be spurious but work can never be lost
- Atomic operations ensure statistical accuracy

# Error Handling

Comprehensive error handling mechanisms:
- Panic recovery with stack traces attached as error context
- Configurable error handlers
- Structured errors with sentinel values for errors.Is checks
- Error statistics and monitoring

# Usage Examples

Basic usage:

	p, err := pool.New(&pool.Config{
		MaxWorkers:  8,
		IdleTimeout: 10 * time.Second,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	// Submit task
	task := pool.NewFuncTask(func(ctx context.Context) error {
		// Execute work
		return nil
	})

	if err := p.Submit(task); err != nil {
		log.Printf("Failed to submit task: %v", err)
	}

	// Wait for all submitted tasks to finish
	p.WaitForCompletion()

Error inspection:

	err := p.Submit(task)
	if errors.Is(err, types.ErrPoolShuttingDown) {
		log.Println("Pool no longer accepts tasks")
	}

Retrieve statistics:

	stats := p.Stats()
	fmt.Printf("Workers: %d/%d (%d idle)\n", stats.CurrentWorkers, stats.MaxWorkers, stats.IdleWorkers)
	fmt.Printf("Completed: %d\n", stats.CompletedTasks)
	fmt.Printf("Success Rate: %.2f\n", stats.SuccessRate())

# Configuration Options

Config supports the following configurations:
- MaxWorkers: Upper bound on concurrent workers
- IdleTimeout: How long a worker may wait for work before exiting
- Clock: Time source, replaceable for deterministic tests
- Logger: Structured logger for pool events
- ErrorHandler: Custom error handler
- CompletionCallback: Per-task completion hook for metrics integration

# Production-Grade Features

This implementation provides production-ready characteristics:
- Idle pools scale to zero goroutines
- Submission takes a single short critical section
- Graceful shutdown without losing accepted tasks
- Complete observability support
- Detailed error diagnostic information
*/
package pool
