package dispatch

import (
	"context"
	"errors"
	"sync"

	"github.com/reusedev/weather-viewer/internal/modules/logs"
)

var (
	ErrQuit           = errors.New("handler has quit")
	ErrAlreadyLooping = errors.New("handler loop already running")
)

// Handler runs posted funcs one at a time on whichever goroutine calls Loop.
// That goroutine is the controlling context: workers never run a continuation
// themselves, they Post it here.
type Handler struct {
	mu      sync.Mutex
	queue   []func()
	quit    bool
	looping bool
	wake    chan struct{}
	done    chan struct{}
}

func NewHandler() *Handler {
	return &Handler{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Post queues fn and returns without running it.
func (h *Handler) Post(fn func()) error {
	h.mu.Lock()
	if h.quit {
		h.mu.Unlock()
		return ErrQuit
	}
	h.queue = append(h.queue, fn)
	h.mu.Unlock()

	select {
	case h.wake <- struct{}{}:
	default:
	}
	return nil
}

// Loop drains posted funcs in order until Quit or ctx is done.
func (h *Handler) Loop(ctx context.Context) error {
	h.mu.Lock()
	if h.looping {
		h.mu.Unlock()
		return ErrAlreadyLooping
	}
	h.looping = true
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		h.looping = false
		h.mu.Unlock()
	}()

	for {
		for {
			fn, ok := h.next()
			if !ok {
				break
			}
			h.run(fn)
		}
		select {
		case <-h.wake:
		case <-h.done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Quit stops the loop. Funcs still queued are dropped and later Posts fail.
func (h *Handler) Quit() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.quit {
		return
	}
	h.quit = true
	if n := len(h.queue); n > 0 {
		logs.Logger.Debug().Int("dropped", n).Msg("handler quit with pending funcs")
	}
	h.queue = nil
	close(h.done)
}

// Done is closed by Quit.
func (h *Handler) Done() <-chan struct{} {
	return h.done
}

func (h *Handler) next() (func(), bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.quit || len(h.queue) == 0 {
		return nil, false
	}
	fn := h.queue[0]
	h.queue[0] = nil
	h.queue = h.queue[1:]
	return fn, true
}

func (h *Handler) run(fn func()) {
	defer func() {
		if p := recover(); p != nil {
			logs.Logger.Error().Interface("panic", p).Msg("posted func panicked")
		}
	}()
	fn()
}
