package echarts

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-chartkit/components/chart"
)

// Snapshot is the state of one mounted instance.
type Snapshot struct {
	ID        string              `json:"id"`
	Container chart.Container     `json:"container"`
	Init      opts.Initialization `json:"init"`
	Option    string              `json:"option,omitempty"`
	Tree      chart.OptionTree    `json:"tree,omitempty"`
	Version   int                 `json:"version"`
	Resizes   int                 `json:"resizes"`
}

type handle struct{ id string }

func (h handle) ID() string { return h.id }

type instanceState struct {
	id        string
	container chart.Container
	init      opts.Initialization
	tree      chart.OptionTree
	option    string
	version   int
	resizes   int
}

// Engine is a server-side chart.Engine. It keeps every instance's applied
// option, renders markup for the initial page load and streams instance
// commands through a Publisher so connected browsers stay in sync.
type Engine struct {
	mu        sync.RWMutex
	instances map[string]*instanceState
	maps      map[string]json.RawMessage

	renderer   Renderer
	validator  *OptionValidator
	publisher  Publisher
	assetsHost string
	theme      string
	newID      func() string
	logger     zerolog.Logger
}

// EngineOption customizes an Engine.
type EngineOption func(*Engine)

// WithRenderer swaps the markup renderer.
func WithRenderer(r Renderer) EngineOption {
	return func(e *Engine) {
		if r != nil {
			e.renderer = r
		}
	}
}

// WithOptionValidator swaps the option schema validator.
func WithOptionValidator(v *OptionValidator) EngineOption {
	return func(e *Engine) {
		if v != nil {
			e.validator = v
		}
	}
}

// WithPublisher streams instance commands to p (usually a *Hub).
func WithPublisher(p Publisher) EngineOption {
	return func(e *Engine) {
		e.publisher = p
	}
}

// WithAssetsHost rewrites the host ECharts scripts load from.
func WithAssetsHost(host string) EngineOption {
	return func(e *Engine) {
		if host = strings.TrimSpace(host); host != "" {
			e.assetsHost = ensureTrailingSlash(host)
		}
	}
}

// WithTheme sets the engine theme passed to echarts.init.
func WithTheme(theme string) EngineOption {
	return func(e *Engine) {
		if theme = strings.TrimSpace(theme); theme != "" {
			e.theme = theme
		}
	}
}

// WithIDGenerator replaces the uuid instance id generator.
func WithIDGenerator(fn func() string) EngineOption {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// WithEngineLogger sets the structured logger.
func WithEngineLogger(logger zerolog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine builds an engine with the embedded templates and option schema.
func NewEngine(options ...EngineOption) (*Engine, error) {
	e := &Engine{
		instances:  map[string]*instanceState{},
		maps:       map[string]json.RawMessage{},
		assetsHost: ResolveAssetsHost(),
		theme:      ThemeLight,
		newID:      uuid.NewString,
		logger:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(e)
	}
	if e.renderer == nil {
		r, err := NewTemplateRenderer()
		if err != nil {
			return nil, fmt.Errorf("echarts: template renderer: %w", err)
		}
		e.renderer = r
	}
	if e.validator == nil {
		v, err := DefaultOptionValidator()
		if err != nil {
			return nil, err
		}
		e.validator = v
	}
	return e, nil
}

// Init creates an instance bound to container.
func (e *Engine) Init(container chart.Container) (chart.Instance, error) {
	if strings.TrimSpace(container.ID) == "" {
		return nil, fmt.Errorf("echarts: container id is required")
	}
	width := container.Width
	if width == "" {
		width = "100%"
	}
	height := container.Height
	if height == "" {
		height = chart.DefaultHeight
	}
	state := &instanceState{
		id:        e.newID(),
		container: container,
		init: opts.Initialization{
			ChartID:    container.ID,
			AssetsHost: e.assetsHost,
			Theme:      e.theme,
			Width:      width,
			Height:     height,
		},
	}

	e.mu.Lock()
	e.instances[state.id] = state
	e.mu.Unlock()

	e.logger.Debug().Str("instance", state.id).Str("container", container.ID).Msg("echarts instance created")
	e.publish(Command{Op: OpInit, Instance: state.id, Container: container.ID})
	return handle{id: state.id}, nil
}

// SetOption validates and stores tree as the instance's current option.
func (e *Engine) SetOption(instance chart.Instance, tree chart.OptionTree) error {
	if instance == nil {
		return chart.ErrInstanceNotFound
	}
	if err := e.validator.Validate(tree); err != nil {
		return err
	}
	option, err := Encode(tree)
	if err != nil {
		return err
	}

	e.mu.Lock()
	state, ok := e.instances[instance.ID()]
	if !ok {
		e.mu.Unlock()
		return fmt.Errorf("%w: %s", chart.ErrInstanceNotFound, instance.ID())
	}
	state.tree = tree.Clone()
	state.option = option
	state.version++
	cmd := Command{
		Op:        OpSetOption,
		Instance:  state.id,
		Container: state.container.ID,
		Option:    option,
		Version:   state.version,
	}
	e.mu.Unlock()

	e.publish(cmd)
	return nil
}

// Resize asks browsers to relayout the instance.
func (e *Engine) Resize(instance chart.Instance) error {
	if instance == nil {
		return chart.ErrInstanceNotFound
	}
	e.mu.Lock()
	state, ok := e.instances[instance.ID()]
	if !ok {
		e.mu.Unlock()
		return fmt.Errorf("%w: %s", chart.ErrInstanceNotFound, instance.ID())
	}
	state.resizes++
	cmd := Command{Op: OpResize, Instance: state.id, Container: state.container.ID}
	e.mu.Unlock()

	e.publish(cmd)
	return nil
}

// Dispose forgets the instance and tells browsers to release it.
func (e *Engine) Dispose(instance chart.Instance) error {
	if instance == nil {
		return chart.ErrInstanceNotFound
	}
	e.mu.Lock()
	state, ok := e.instances[instance.ID()]
	if ok {
		delete(e.instances, instance.ID())
	}
	e.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", chart.ErrInstanceNotFound, instance.ID())
	}

	e.logger.Debug().Str("instance", state.id).Msg("echarts instance disposed")
	e.publish(Command{Op: OpDispose, Instance: state.id, Container: state.container.ID})
	return nil
}

// RegisterMap stores a GeoJSON document under name so map series can bind
// to it.
func (e *Engine) RegisterMap(name string, geo json.RawMessage) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("echarts: map name is required")
	}
	if !json.Valid(geo) {
		return fmt.Errorf("echarts: map %s is not valid JSON", name)
	}
	e.mu.Lock()
	e.maps[name] = append(json.RawMessage(nil), geo...)
	e.mu.Unlock()

	e.publish(Command{Op: OpRegisterMap, Map: name, Geo: geo})
	return nil
}

// HasMap reports whether name was registered.
func (e *Engine) HasMap(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.maps[name]
	return ok
}

// Snapshot returns the state of instance id.
func (e *Engine) Snapshot(id string) (Snapshot, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	state, ok := e.instances[id]
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: %s", chart.ErrInstanceNotFound, id)
	}
	return state.snapshot(), nil
}

// Instances lists the live instance snapshots ordered by container id.
func (e *Engine) Instances() []Snapshot {
	e.mu.RLock()
	out := make([]Snapshot, 0, len(e.instances))
	for _, state := range e.instances {
		out = append(out, state.snapshot())
	}
	e.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		return out[i].Container.ID < out[j].Container.ID
	})
	return out
}

// Scripts lists the script URLs a page hosting this engine's charts needs.
func (e *Engine) Scripts() []string {
	return ScriptURLs(e.assetsHost, e.theme)
}

func (e *Engine) publish(cmd Command) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.Publish(context.Background(), cmd); err != nil {
		e.logger.Warn().Err(err).Str("op", string(cmd.Op)).Msg("echarts command dropped")
	}
}

func (s *instanceState) snapshot() Snapshot {
	return Snapshot{
		ID:        s.id,
		Container: s.container,
		Init:      s.init,
		Option:    s.option,
		Tree:      s.tree.Clone(),
		Version:   s.version,
		Resizes:   s.resizes,
	}
}
