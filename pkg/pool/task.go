package pool

import (
	"context"
	"fmt"
	"sync/atomic"
)

// taskIDCounter is the global task ID counter
var taskIDCounter int64

// FuncTask wraps a function as a Task
type FuncTask struct {
	id string
	fn func(ctx context.Context) error
}

// NewFuncTask creates a task from a function with a generated ID
func NewFuncTask(fn func(ctx context.Context) error) *FuncTask {
	id := atomic.AddInt64(&taskIDCounter, 1)
	return &FuncTask{
		id: fmt.Sprintf("task-%d", id),
		fn: fn,
	}
}

// NewFuncTaskWithID creates a task from a function with a custom ID
func NewFuncTaskWithID(id string, fn func(ctx context.Context) error) *FuncTask {
	return &FuncTask{
		id: id,
		fn: fn,
	}
}

// Execute executes the task
func (t *FuncTask) Execute(ctx context.Context) error {
	if t.fn == nil {
		return fmt.Errorf("task %s has no execution function", t.id)
	}
	return t.fn(ctx)
}

// ID returns the task ID
func (t *FuncTask) ID() string {
	return t.id
}
