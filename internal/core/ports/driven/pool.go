package driven

import "context"

// Task is one unit of work submitted to a WorkerPool.
type Task func(ctx context.Context) error

// Future is the pending outcome of a submitted Task.
type Future interface {
	// Wait blocks until the task finishes and returns its error.
	Wait() error
}

// WorkerPool executes tasks with bounded parallelism. The pool owns
// scheduling and any per-task timeout; tasks own nothing shared.
type WorkerPool interface {
	// Submit schedules a task. It may block while the pool is saturated.
	// If ctx is already done the task is not run and the future reports
	// ctx.Err().
	Submit(ctx context.Context, task Task) Future
}

// ProgressFunc reports progress at file or pair granularity.
type ProgressFunc func(current, total int, message string)
