package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/jzx17/gothreadpool/pkg/types"
)

// PoolMetrics holds the Prometheus metrics for a worker pool. It is embedded
// inside InstrumentedPool but can also be used standalone for manual
// instrumentation.
type PoolMetrics struct {
	reg  *Registry
	name string

	submitted prometheus.Counter
	rejected  prometheus.Counter
	completed *prometheus.CounterVec
	duration  prometheus.Histogram
}

// PoolOption configures pool metrics.
type PoolOption func(*poolConfig)

type poolConfig struct {
	buckets []float64
}

// WithPoolBuckets overrides the default histogram buckets for task duration
// tracking.
func WithPoolBuckets(buckets []float64) PoolOption {
	return func(cfg *poolConfig) {
		cfg.buckets = buckets
	}
}

// NewPoolMetrics creates and registers pool metrics on the given Registry.
// The name parameter is used as a prefix for all metric names.
//
// Metrics registered:
//
//   - <name>_submitted_total: counter of accepted submissions
//   - <name>_rejected_total: counter of refused submissions
//   - <name>_tasks_total{result}: counter of finished tasks by outcome
//   - <name>_task_duration_seconds: histogram of task execution latency
func NewPoolMetrics(reg *Registry, name string, opts ...PoolOption) *PoolMetrics {
	cfg := &poolConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return &PoolMetrics{
		reg:  reg,
		name: name,
		submitted: reg.NewCounter(
			name+"_submitted_total",
			"Total number of tasks accepted by the pool.",
		),
		rejected: reg.NewCounter(
			name+"_rejected_total",
			"Total number of task submissions refused by the pool.",
		),
		completed: reg.NewCounterVec(
			name+"_tasks_total",
			"Total number of finished tasks by result.",
			[]string{"result"},
		),
		duration: reg.NewHistogram(
			name+"_task_duration_seconds",
			"Duration of task execution in seconds.",
			cfg.buckets,
		),
	}
}

// RecordSubmission records the outcome of one Submit call.
func (pm *PoolMetrics) RecordSubmission(err error) {
	if err != nil {
		pm.rejected.Inc()
		return
	}
	pm.submitted.Inc()
}

// CompletionCallback returns a callback suitable for the pool configuration.
// It observes the task duration and counts the task under its result label.
func (pm *PoolMetrics) CompletionCallback() func(time.Duration, bool) {
	return func(d time.Duration, success bool) {
		pm.duration.Observe(d.Seconds())
		if success {
			pm.completed.WithLabelValues("success").Inc()
		} else {
			pm.completed.WithLabelValues("failure").Inc()
		}
	}
}

// Watch registers gauges that read live pool state at scrape time:
//
//   - <name>_workers: current number of live workers
//   - <name>_max_workers: configured worker bound
//   - <name>_pending_tasks: tasks queued or executing
//
// Watch registers on the underlying registry and must be called at most once
// per PoolMetrics.
func (pm *PoolMetrics) Watch(p types.WorkerPool) {
	pm.reg.NewGaugeFunc(
		pm.name+"_workers",
		"Current number of live workers.",
		func() float64 { return float64(p.WorkerCount()) },
	)
	pm.reg.NewGaugeFunc(
		pm.name+"_max_workers",
		"Configured maximum number of workers.",
		func() float64 { return float64(p.MaxWorkers()) },
	)
	pm.reg.NewGaugeFunc(
		pm.name+"_pending_tasks",
		"Number of tasks queued or currently executing.",
		func() float64 { return float64(p.PendingTasks()) },
	)
}

// SuccessRatio computes the current success ratio over all finished tasks.
// Returns 0 if no task has finished. For dashboards prefer rate-based PromQL
// expressions.
func (pm *PoolMetrics) SuccessRatio() float64 {
	successes := readCounter(pm.completed.WithLabelValues("success"))
	failures := readCounter(pm.completed.WithLabelValues("failure"))
	total := successes + failures

	if total == 0 {
		return 0
	}

	return successes / total
}

// readCounter extracts the current value from a prometheus.Counter.
func readCounter(counter prometheus.Counter) float64 {
	var metric prometheus.Metric = counter
	dtoMetric := &dto.Metric{}

	if err := metric.Write(dtoMetric); err != nil {
		return 0
	}

	return dtoMetric.GetCounter().GetValue()
}

// InstrumentedPool wraps a WorkerPool with automatic Prometheus
// instrumentation. Submit outcomes are counted transparently and the pool
// gauges are registered for scraping.
//
// The completion metrics rely on the pool invoking the PoolMetrics completion
// callback, so wire it into the pool configuration first:
//
//	reg := metrics.New(metrics.WithNamespace("myapp"))
//	pm := metrics.NewPoolMetrics(reg, "pool")
//
//	p, err := pool.New(&pool.Config{
//	    MaxWorkers:         8,
//	    CompletionCallback: pm.CompletionCallback(),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ip := metrics.NewInstrumentedPool(pm, p)
//	ip.Submit(task) // automatically counted
type InstrumentedPool struct {
	types.WorkerPool
	Metrics *PoolMetrics
}

// NewInstrumentedPool wraps an existing WorkerPool with Prometheus
// instrumentation. It calls Watch on the given PoolMetrics, so do not call
// Watch separately.
func NewInstrumentedPool(pm *PoolMetrics, inner types.WorkerPool) *InstrumentedPool {
	pm.Watch(inner)

	return &InstrumentedPool{
		WorkerPool: inner,
		Metrics:    pm,
	}
}

// Submit submits a task to the wrapped pool, recording the outcome.
func (ip *InstrumentedPool) Submit(task types.Task) error {
	err := ip.WorkerPool.Submit(task)
	ip.Metrics.RecordSubmission(err)
	return err
}
