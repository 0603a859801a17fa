// Package pool provides a bounded worker pool for parse and compare tasks.
package pool

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/custodia-labs/reqdiff/internal/core/ports/driven"
	"github.com/custodia-labs/reqdiff/internal/logger"
)

// Ensure Pool implements the interface.
var _ driven.WorkerPool = (*Pool)(nil)

// Pool runs at most Size tasks at a time. Submit blocks while all slots
// are busy.
type Pool struct {
	sem         *semaphore.Weighted
	size        int
	taskTimeout time.Duration
}

// Option configures a Pool.
type Option func(*Pool)

// WithTaskTimeout bounds every task with its own deadline.
func WithTaskTimeout(d time.Duration) Option {
	return func(p *Pool) {
		p.taskTimeout = d
	}
}

// New creates a pool running size tasks in parallel. A non-positive size
// uses the number of CPUs.
func New(size int, opts ...Option) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	p := &Pool{
		sem:  semaphore.NewWeighted(int64(size)),
		size: size,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Size returns the parallelism limit.
func (p *Pool) Size() int {
	return p.size
}

// Submit schedules task, waiting for a free slot. If ctx is done before a
// slot frees up the task never runs and the future reports ctx.Err().
func (p *Pool) Submit(ctx context.Context, task driven.Task) driven.Future {
	f := &future{done: make(chan struct{})}

	if err := ctx.Err(); err != nil {
		f.finish(err)
		return f
	}
	if err := p.sem.Acquire(ctx, 1); err != nil {
		f.finish(err)
		return f
	}

	go func() {
		defer p.sem.Release(1)
		f.finish(p.run(ctx, task))
	}()
	return f
}

func (p *Pool) run(ctx context.Context, task driven.Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("task panicked: %v", r)
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()

	if p.taskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.taskTimeout)
		defer cancel()
	}
	return task(ctx)
}

// future is closed exactly once by finish.
type future struct {
	done chan struct{}
	err  error
}

func (f *future) finish(err error) {
	f.err = err
	close(f.done)
}

// Wait blocks until the task finishes and returns its error.
func (f *future) Wait() error {
	<-f.done
	return f.err
}
