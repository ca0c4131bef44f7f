package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-chartkit/components/chart"
)

type fakeInstance struct{ id string }

func (f fakeInstance) ID() string { return f.id }

// fakeEngine records engine calls and can render markup for the controller.
type fakeEngine struct {
	mu       sync.Mutex
	next     int
	live     map[string]chart.OptionTree
	inits    int
	applies  int
	resizes  int
	disposed int
	setErr   error
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{live: map[string]chart.OptionTree{}}
}

func (e *fakeEngine) Init(container chart.Container) (chart.Instance, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.next++
	e.inits++
	inst := fakeInstance{id: fmt.Sprintf("inst-%d", e.next)}
	e.live[inst.id] = nil
	return inst, nil
}

func (e *fakeEngine) SetOption(instance chart.Instance, tree chart.OptionTree) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.setErr != nil {
		return e.setErr
	}
	if _, ok := e.live[instance.ID()]; !ok {
		return chart.ErrInstanceNotFound
	}
	e.applies++
	e.live[instance.ID()] = tree.Clone()
	return nil
}

func (e *fakeEngine) Resize(instance chart.Instance) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resizes++
	return nil
}

func (e *fakeEngine) Dispose(instance chart.Instance) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.live, instance.ID())
	e.disposed++
	return nil
}

func (e *fakeEngine) Render(instanceID string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.live[instanceID]; !ok {
		return "", chart.ErrInstanceNotFound
	}
	return `<div data-instance="` + instanceID + `"></div>`, nil
}

func (e *fakeEngine) Scripts() []string {
	return []string{"https://cdn.example.com/echarts.min.js"}
}

func (e *fakeEngine) tree(instanceID string) chart.OptionTree {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.live[instanceID]
}

func (e *fakeEngine) liveCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.live)
}

func (e *fakeEngine) resizeCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resizes
}

func (e *fakeEngine) failApply(err error) {
	e.mu.Lock()
	e.setErr = err
	e.mu.Unlock()
}

var errEngineRejected = errors.New("engine rejected option")

type recordingTelemetry struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
}

func (r *recordingTelemetry) has(event string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e == event {
			return true
		}
	}
	return false
}

type recordingHook struct {
	mu     sync.Mutex
	events []PanelEvent
}

func (h *recordingHook) PanelUpdated(_ context.Context, event PanelEvent) error {
	h.mu.Lock()
	h.events = append(h.events, event)
	h.mu.Unlock()
	return nil
}

func (h *recordingHook) reasons() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.events))
	for i, e := range h.events {
		out[i] = e.Reason
	}
	return out
}

type sequentialIDs struct {
	mu   sync.Mutex
	next int
}

func (s *sequentialIDs) id() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return fmt.Sprintf("id-%04d", s.next)
}

// newTestService builds a seeded-ready service with sessions on a fake engine.
func newTestService(opts ...func(*Options)) (*Service, *fakeEngine, *InMemoryPanelStore) {
	engine := newFakeEngine()
	ids := &sequentialIDs{}
	store := NewInMemoryPanelStore()
	store.newID = ids.id
	o := Options{
		PanelStore: store,
		Sessions:   NewSessionStore(engine, WithSessionIDGenerator(ids.id)),
	}
	for _, opt := range opts {
		opt(&o)
	}
	_ = RegisterAreas(context.Background(), store)
	return NewService(o), engine, store
}
