package pool

import (
	"github.com/jzx17/gothreadpool/pkg/types"
)

// taskRing is an unbounded FIFO queue backed by a circular buffer. It is not
// safe for concurrent use; callers hold the pool mutex.
type taskRing struct {
	buf  []types.Task
	head int
	size int
}

// push appends a task at the tail, growing the buffer when full
func (r *taskRing) push(task types.Task) {
	if r.size == len(r.buf) {
		r.grow()
	}
	r.buf[(r.head+r.size)%len(r.buf)] = task
	r.size++
}

// pop removes and returns the oldest task
func (r *taskRing) pop() (types.Task, bool) {
	if r.size == 0 {
		return nil, false
	}
	task := r.buf[r.head]
	r.buf[r.head] = nil
	r.head = (r.head + 1) % len(r.buf)
	r.size--
	return task, true
}

// len returns the number of queued tasks
func (r *taskRing) len() int {
	return r.size
}

func (r *taskRing) grow() {
	capacity := len(r.buf) * 2
	if capacity == 0 {
		capacity = 8
	}
	buf := make([]types.Task, capacity)
	for i := 0; i < r.size; i++ {
		buf[i] = r.buf[(r.head+i)%len(r.buf)]
	}
	r.buf = buf
	r.head = 0
}
