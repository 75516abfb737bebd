package queue

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/reusedev/weather-viewer/internal/modules/result"
)

var (
	ErrShutdown    = errors.New("executor is shut down")
	ErrQueueFull   = errors.New("executor queue is full")
	ErrWorkerPanic = errors.New("worker panicked")
)

// Performer does the blocking part of a task. It runs on a worker goroutine.
type Performer[S, T any] interface {
	Perform(ctx context.Context, spec S) result.Result[T]
}

type PerformerFunc[S, T any] func(ctx context.Context, spec S) result.Result[T]

func (f PerformerFunc[S, T]) Perform(ctx context.Context, spec S) result.Result[T] {
	return f(ctx, spec)
}

// Handle identifies a submitted task. Done is closed once the task has been
// delivered, or when Shutdown abandons it.
type Handle struct {
	ID        uuid.UUID
	done      chan struct{}
	abandoned bool
}

func newHandle() *Handle {
	return &Handle{ID: uuid.New(), done: make(chan struct{})}
}

func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Abandoned reports whether Shutdown dropped the task before it started.
// Only meaningful once Done is closed.
func (h *Handle) Abandoned() bool {
	return h.abandoned
}

type task[S, T any] struct {
	handle  *Handle
	spec    S
	deliver func(result.Result[T])
}
