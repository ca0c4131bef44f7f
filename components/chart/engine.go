package chart

import "sync"

// Container is the host element a chart instance is bound to.
type Container struct {
	ID     string `json:"id"`
	Width  string `json:"width,omitempty"`
	Height string `json:"height,omitempty"`
}

// Size is the observed box size of a container.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Instance is an opaque handle to mounted rendering-engine state.
type Instance interface {
	ID() string
}

// Engine is the rendering engine the lifecycle drives.
type Engine interface {
	Init(container Container) (Instance, error)
	SetOption(instance Instance, tree OptionTree) error
	Resize(instance Instance) error
	Dispose(instance Instance) error
}

// SizeObserver delivers size-change notifications for a container until the
// returned stop func is called.
type SizeObserver interface {
	Observe(container Container, notify func(Size)) (stop func())
}

// ManualObserver is a SizeObserver fed by explicit Notify calls, used when
// size changes arrive from a remote client.
type ManualObserver struct {
	mu   sync.RWMutex
	subs map[string]map[int]func(Size)
	next int
}

// NewManualObserver creates an observer with no subscriptions.
func NewManualObserver() *ManualObserver {
	return &ManualObserver{subs: map[string]map[int]func(Size){}}
}

// Observe registers notify for container.ID.
func (o *ManualObserver) Observe(container Container, notify func(Size)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()
	id := o.next
	o.next++
	if o.subs[container.ID] == nil {
		o.subs[container.ID] = map[int]func(Size){}
	}
	o.subs[container.ID][id] = notify
	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		delete(o.subs[container.ID], id)
		if len(o.subs[container.ID]) == 0 {
			delete(o.subs, container.ID)
		}
	}
}

// Notify delivers size to every observer of containerID and reports how many
// were notified.
func (o *ManualObserver) Notify(containerID string, size Size) int {
	o.mu.RLock()
	callbacks := make([]func(Size), 0, len(o.subs[containerID]))
	for _, cb := range o.subs[containerID] {
		callbacks = append(callbacks, cb)
	}
	o.mu.RUnlock()
	for _, cb := range callbacks {
		cb(size)
	}
	return len(callbacks)
}

// Observing reports whether any observer is registered for containerID.
func (o *ManualObserver) Observing(containerID string) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.subs[containerID]) > 0
}
