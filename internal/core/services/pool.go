package services

import (
	"context"

	"github.com/custodia-labs/reqdiff/internal/core/ports/driven"
)

// inlinePool runs each task on the caller's goroutine.
type inlinePool struct{}

func (inlinePool) Submit(ctx context.Context, task driven.Task) driven.Future {
	if err := ctx.Err(); err != nil {
		return doneFuture{err: err}
	}
	return doneFuture{err: task(ctx)}
}

type doneFuture struct {
	err error
}

func (f doneFuture) Wait() error {
	return f.err
}
