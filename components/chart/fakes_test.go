package chart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

type fakeInstance struct{ id string }

func (f *fakeInstance) ID() string { return f.id }

type fakeEngine struct {
	mu         sync.Mutex
	next       int
	inits      int
	disposed   []string
	resized    []string
	applied    map[string][]OptionTree
	failApply  error
	failInit   error
	containers []Container
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{applied: map[string][]OptionTree{}}
}

func (e *fakeEngine) Init(container Container) (Instance, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.failInit != nil {
		return nil, e.failInit
	}
	e.next++
	e.inits++
	e.containers = append(e.containers, container)
	return &fakeInstance{id: fmt.Sprintf("inst-%d", e.next)}, nil
}

func (e *fakeEngine) SetOption(instance Instance, tree OptionTree) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.failApply != nil {
		return e.failApply
	}
	e.applied[instance.ID()] = append(e.applied[instance.ID()], tree)
	return nil
}

func (e *fakeEngine) Resize(instance Instance) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resized = append(e.resized, instance.ID())
	return nil
}

func (e *fakeEngine) Dispose(instance Instance) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if instance == nil {
		return errors.New("nil instance")
	}
	e.disposed = append(e.disposed, instance.ID())
	return nil
}

func (e *fakeEngine) resizeCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.resized)
}

// fakeTimers captures scheduled callbacks so tests decide when a window elapses.
type fakeTimers struct {
	mu      sync.Mutex
	pending []*fakeTimer
	windows []time.Duration
}

type fakeTimer struct {
	owner   *fakeTimers
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

func (f *fakeTimers) After(d time.Duration, fn func()) Timer {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &fakeTimer{owner: f, fn: fn}
	f.pending = append(f.pending, t)
	f.windows = append(f.windows, d)
	return t
}

// elapse fires every timer that was neither stopped nor fired.
func (f *fakeTimers) elapse() int {
	f.mu.Lock()
	var due []*fakeTimer
	for _, t := range f.pending {
		if !t.stopped && !t.fired {
			t.fired = true
			due = append(due, t)
		}
	}
	f.pending = nil
	f.mu.Unlock()
	for _, t := range due {
		t.fn()
	}
	return len(due)
}

func (f *fakeTimers) active() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, t := range f.pending {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

type recordingTelemetry struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}
