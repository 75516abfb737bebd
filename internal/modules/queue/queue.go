package queue

import (
	"context"
	"fmt"
	"sync"

	"github.com/reusedev/weather-viewer/internal/modules/logs"
	"github.com/reusedev/weather-viewer/internal/modules/result"
)

// Executor runs submitted specs on a fixed set of worker goroutines, in
// submission order, and hands each Result to the deliver func of its task.
type Executor[S, T any] struct {
	ctx       context.Context
	performer Performer[S, T]
	queueSize int

	mu      sync.Mutex
	cond    *sync.Cond
	pending []task[S, T]
	closed  bool

	wg sync.WaitGroup
}

// New starts size workers. Cancelling ctx shuts the executor down. Perform
// gets ctx without its cancellation, so running tasks finish and deliver.
func New[S, T any](ctx context.Context, size, queueSize int, performer Performer[S, T]) *Executor[S, T] {
	if size < 1 {
		size = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	e := &Executor[S, T]{
		ctx:       context.WithoutCancel(ctx),
		performer: performer,
		queueSize: queueSize,
	}
	e.cond = sync.NewCond(&e.mu)
	e.wg.Add(size)
	for i := 0; i < size; i++ {
		go e.work()
	}
	context.AfterFunc(ctx, func() { e.Shutdown() })
	return e
}

// Submit enqueues spec and returns at once. deliver is called from a worker
// goroutine with the finished Result, exactly once, unless the task is abandoned.
func (e *Executor[S, T]) Submit(spec S, deliver func(result.Result[T])) (*Handle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, ErrShutdown
	}
	if len(e.pending) >= e.queueSize {
		return nil, ErrQueueFull
	}
	t := task[S, T]{handle: newHandle(), spec: spec, deliver: deliver}
	e.pending = append(e.pending, t)
	e.cond.Signal()
	return t.handle, nil
}

// Shutdown rejects further submissions and abandons queued tasks, returning
// their handles. Running tasks finish, their results are still delivered.
func (e *Executor[S, T]) Shutdown() []*Handle {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	abandoned := e.pending
	e.pending = nil
	e.cond.Broadcast()
	e.mu.Unlock()

	handles := make([]*Handle, 0, len(abandoned))
	for _, t := range abandoned {
		t.handle.abandoned = true
		close(t.handle.done)
		handles = append(handles, t.handle)
	}
	logs.Logger.Info().Int("abandoned", len(handles)).Msg("executor shut down")
	return handles
}

// Wait blocks until every worker has returned. Call it after Shutdown.
func (e *Executor[S, T]) Wait() {
	e.wg.Wait()
}

func (e *Executor[S, T]) next() (task[S, T], bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for len(e.pending) == 0 && !e.closed {
		e.cond.Wait()
	}
	if e.closed {
		return task[S, T]{}, false
	}
	t := e.pending[0]
	e.pending[0] = task[S, T]{}
	e.pending = e.pending[1:]
	return t, true
}

func (e *Executor[S, T]) work() {
	defer e.wg.Done()
	for {
		t, ok := e.next()
		if !ok {
			return
		}
		e.run(t)
	}
}

func (e *Executor[S, T]) run(t task[S, T]) {
	defer close(t.handle.done)
	r := e.perform(t)
	defer func() {
		if p := recover(); p != nil {
			logs.Logger.Error().Str("handle_id", t.handle.ID.String()).Interface("panic", p).Msg("deliver panicked")
		}
	}()
	t.deliver(r)
}

func (e *Executor[S, T]) perform(t task[S, T]) (r result.Result[T]) {
	defer func() {
		if p := recover(); p != nil {
			logs.Logger.Error().Str("handle_id", t.handle.ID.String()).Interface("panic", p).Msg("perform panicked")
			r = result.Error[T](fmt.Errorf("%w: %v", ErrWorkerPanic, p))
		}
	}()
	return e.performer.Perform(e.ctx, t.spec)
}
