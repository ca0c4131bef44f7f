package chart

import (
	"sync"
	"time"
)

// DefaultDebounceWindow is the quiet period before a relayout fires.
const DefaultDebounceWindow = 50 * time.Millisecond

// Timer is the cancellable handle returned by an AfterFunc.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it via StdAfterFunc.
type AfterFunc func(d time.Duration, f func()) Timer

// StdAfterFunc schedules f on the runtime timer.
func StdAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ResizeSynchronizer coalesces size notifications into one relayout call per
// quiet period.
type ResizeSynchronizer struct {
	mu       sync.Mutex
	window   time.Duration
	after    AfterFunc
	relayout func()

	timer      Timer
	generation uint64
	stopped    bool
	unobserve  func()
}

// ResizeOption customizes a ResizeSynchronizer.
type ResizeOption func(*ResizeSynchronizer)

// WithResizeWindow overrides the debounce window.
func WithResizeWindow(d time.Duration) ResizeOption {
	return func(r *ResizeSynchronizer) {
		if d > 0 {
			r.window = d
		}
	}
}

// WithResizeTimer swaps the timer source, mainly for tests.
func WithResizeTimer(after AfterFunc) ResizeOption {
	return func(r *ResizeSynchronizer) {
		if after != nil {
			r.after = after
		}
	}
}

// NewResizeSynchronizer builds a synchronizer calling relayout after each
// quiet period.
func NewResizeSynchronizer(relayout func(), opts ...ResizeOption) *ResizeSynchronizer {
	r := &ResizeSynchronizer{
		window:   DefaultDebounceWindow,
		after:    StdAfterFunc,
		relayout: relayout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Observe subscribes to size changes of container. Any previous observation
// is replaced.
func (r *ResizeSynchronizer) Observe(observer SizeObserver, container Container) {
	if observer == nil {
		return
	}
	stop := observer.Observe(container, r.Notify)
	r.mu.Lock()
	prev := r.unobserve
	r.unobserve = stop
	r.mu.Unlock()
	if prev != nil {
		prev()
	}
}

// Notify (re)starts the debounce window.
func (r *ResizeSynchronizer) Notify(Size) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	if r.timer != nil {
		r.timer.Stop()
	}
	r.generation++
	gen := r.generation
	r.timer = r.after(r.window, func() { r.fire(gen) })
}

func (r *ResizeSynchronizer) fire(gen uint64) {
	r.mu.Lock()
	if r.stopped || gen != r.generation {
		r.mu.Unlock()
		return
	}
	r.timer = nil
	relayout := r.relayout
	r.mu.Unlock()
	if relayout != nil {
		relayout()
	}
}

// Pending reports whether a relayout is scheduled.
func (r *ResizeSynchronizer) Pending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timer != nil
}

// Stop cancels the pending relayout and ends the observation. It is safe to
// call more than once.
func (r *ResizeSynchronizer) Stop() {
	r.mu.Lock()
	r.stopped = true
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	unobserve := r.unobserve
	r.unobserve = nil
	r.mu.Unlock()
	if unobserve != nil {
		unobserve()
	}
}
