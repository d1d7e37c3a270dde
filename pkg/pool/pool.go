// Package pool provides a dynamic worker pool implementation
package pool

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/jzx17/gothreadpool/pkg/types"
)

// Config contains configuration for the dynamic pool
type Config struct {
	// MaxWorkers is the maximum number of workers
	MaxWorkers int

	// IdleTimeout is the worker idle timeout duration (defaults to 10s)
	IdleTimeout time.Duration

	// Clock for time operations (optional, defaults to real clock)
	Clock types.Clock

	// Logger for pool events (optional, defaults to a disabled logger)
	Logger *zerolog.Logger

	// ErrorHandler handles task errors
	ErrorHandler types.ErrorHandler

	// CompletionCallback is invoked after each task with its duration and outcome
	CompletionCallback func(time.Duration, bool)
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		MaxWorkers:  runtime.NumCPU(),
		IdleTimeout: 10 * time.Second,
		Clock:       types.NewRealClock(),
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.MaxWorkers <= 0 {
		return fmt.Errorf("%w: max workers must be positive, got %d",
			types.ErrInvalidConfiguration, c.MaxWorkers)
	}
	if c.IdleTimeout < 0 {
		return fmt.Errorf("%w: idle timeout cannot be negative, got %v",
			types.ErrInvalidConfiguration, c.IdleTimeout)
	}
	return nil
}

// DynamicPool implements a worker pool that spawns workers on demand up to
// MaxWorkers and lets them exit again after IdleTimeout without work.
type DynamicPool struct {
	config *Config
	logger zerolog.Logger

	// Synchronization. mu guards queue, idleWorkers, handles and shuttingDown.
	mu           sync.RWMutex
	queue        taskRing
	idleWorkers  int
	handles      map[int64]*workerHandle
	shuttingDown bool

	// workC carries at most one pending wake-up token for idle workers.
	// quitC is closed on shutdown to release every waiting worker at once.
	workC chan struct{}
	quitC chan struct{}

	completion *completionTracker

	// Worker management
	liveWorkers   int32
	exitedHandles int32
	nextWorkerID  int64

	// Statistics
	submittedTasks int64
	completedTasks int64
	failedTasks    int64
	activeTasks    int64

	closeOnce sync.Once
}

// New creates a new dynamic pool
func New(config *Config) (*DynamicPool, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if config.IdleTimeout == 0 {
		config.IdleTimeout = 10 * time.Second
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Ensure clock is set
	if config.Clock == nil {
		config.Clock = types.NewRealClock()
	}

	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = *config.Logger
	}

	pool := &DynamicPool{
		config:     config,
		logger:     logger,
		handles:    make(map[int64]*workerHandle),
		workC:      make(chan struct{}, 1),
		quitC:      make(chan struct{}),
		completion: newCompletionTracker(),
	}

	pool.logger.Debug().
		Int("max_workers", config.MaxWorkers).
		Dur("idle_timeout", config.IdleTimeout).
		Msg("pool created")

	return pool, nil
}

// Submit submits a task to the pool. The task is queued immediately and a
// worker is woken or spawned to pick it up. Submit never blocks on a full
// queue; the queue grows as needed.
func (p *DynamicPool) Submit(task types.Task) error {
	if task == nil {
		return types.ErrNilTask
	}

	p.mu.Lock()
	if p.shuttingDown {
		p.mu.Unlock()
		return types.ErrPoolShuttingDown
	}
	p.completion.add(1)
	p.queue.push(task)
	atomic.AddInt64(&p.submittedTasks, 1)
	idle := p.idleWorkers
	p.mu.Unlock()

	p.wakeOne()
	if idle == 0 {
		p.trySpawn()
	}

	if atomic.LoadInt32(&p.exitedHandles) > 0 {
		p.pruneHandles()
	}

	return nil
}

// trySpawn starts a new worker unless the pool is already at MaxWorkers.
// The live worker slot is claimed with a compare-and-swap so that concurrent
// submitters can never overshoot the limit.
func (p *DynamicPool) trySpawn() {
	for {
		live := atomic.LoadInt32(&p.liveWorkers)
		if int(live) >= p.config.MaxWorkers {
			return
		}
		if atomic.CompareAndSwapInt32(&p.liveWorkers, live, live+1) {
			break
		}
	}

	id := atomic.AddInt64(&p.nextWorkerID, 1)
	handle := &workerHandle{
		id:   id,
		done: make(chan struct{}),
	}

	p.mu.Lock()
	p.handles[id] = handle
	p.mu.Unlock()

	p.logger.Debug().
		Int64("worker_id", id).
		Int32("live_workers", atomic.LoadInt32(&p.liveWorkers)).
		Msg("worker spawned")

	go p.workerLoop(handle)
}

// wakeOne hands a wake-up token to one idle worker. The token channel has
// capacity one, so a token is never lost while no worker is listening and
// duplicate wake-ups collapse into a single one.
func (p *DynamicPool) wakeOne() {
	select {
	case p.workC <- struct{}{}:
	default:
	}
}

// pruneHandles drops bookkeeping for workers that have already exited.
func (p *DynamicPool) pruneHandles() {
	p.mu.Lock()
	atomic.StoreInt32(&p.exitedHandles, 0)
	for id, handle := range p.handles {
		select {
		case <-handle.done:
			delete(p.handles, id)
		default:
		}
	}
	p.mu.Unlock()
}

// WorkerCount returns the number of live workers
func (p *DynamicPool) WorkerCount() int {
	return int(atomic.LoadInt32(&p.liveWorkers))
}

// MaxWorkers returns the configured worker bound
func (p *DynamicPool) MaxWorkers() int {
	return p.config.MaxWorkers
}

// PendingTasks returns the number of tasks queued or currently executing
func (p *DynamicPool) PendingTasks() int64 {
	return p.completion.count()
}

// WaitForCompletion blocks until every accepted task has finished. Tasks
// submitted while waiting extend the wait.
func (p *DynamicPool) WaitForCompletion() {
	p.completion.wait()
}

// Stats returns pool statistics. The live worker count is loaded while the
// read lock is held: exiting workers decrement it together with idleWorkers
// under the write lock, so a snapshot never reports more idle than live
// workers.
func (p *DynamicPool) Stats() types.PoolStats {
	p.mu.RLock()
	queued := p.queue.len()
	idle := p.idleWorkers
	live := int(atomic.LoadInt32(&p.liveWorkers))
	p.mu.RUnlock()

	return types.PoolStats{
		CurrentWorkers: live,
		IdleWorkers:    idle,
		MaxWorkers:     p.config.MaxWorkers,
		QueuedTasks:    queued,
		ActiveTasks:    atomic.LoadInt64(&p.activeTasks),
		SubmittedTasks: atomic.LoadInt64(&p.submittedTasks),
		CompletedTasks: atomic.LoadInt64(&p.completedTasks),
		FailedTasks:    atomic.LoadInt64(&p.failedTasks),
	}
}

// IsRunning reports whether the pool still accepts tasks
func (p *DynamicPool) IsRunning() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return !p.shuttingDown
}

// Close shuts the pool down gracefully. It stops accepting new tasks, waits
// for all queued and running tasks to finish and joins every worker.
// Close is idempotent; calls after the first return nil immediately.
func (p *DynamicPool) Close() error {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.shuttingDown = true
		p.mu.Unlock()

		close(p.quitC)

		p.completion.wait()
		p.joinWorkers()

		p.logger.Debug().Msg("pool closed")
	})

	return nil
}

// joinWorkers waits until every worker goroutine has exited. Workers claim
// their slot before registering a handle, so an empty handle map alone does
// not mean the pool is drained; liveWorkers has to reach zero as well.
func (p *DynamicPool) joinWorkers() {
	for {
		p.mu.Lock()
		handles := make([]*workerHandle, 0, len(p.handles))
		for _, handle := range p.handles {
			handles = append(handles, handle)
		}
		p.mu.Unlock()

		for _, handle := range handles {
			<-handle.done
			p.mu.Lock()
			delete(p.handles, handle.id)
			p.mu.Unlock()
		}

		if len(handles) == 0 {
			if atomic.LoadInt32(&p.liveWorkers) == 0 {
				return
			}
			runtime.Gosched()
		}
	}
}
