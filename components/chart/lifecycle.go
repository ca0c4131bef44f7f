package chart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// State is the lifecycle state of a chart component.
type State int

const (
	// StateUnmounted means no container is available; no instance exists.
	StateUnmounted State = iota
	// StateReady means a container exists but data is missing or invalid.
	StateReady
	// StateBound means an instance exists and carries the current tree.
	StateBound
	// StateDisposed means the component was unmounted and its instance released.
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUnmounted:
		return "unmounted"
	case StateReady:
		return "ready"
	case StateBound:
		return "bound"
	case StateDisposed:
		return "disposed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MarshalText renders the state name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Status is the caller-visible render status.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Lifecycle owns the single engine instance of one mounted chart. All
// methods are safe for concurrent use; mutations are serialized.
type Lifecycle struct {
	mu sync.Mutex

	id          string
	engine      Engine
	pipeline    *Pipeline
	observer    SizeObserver
	window      time.Duration
	after       AfterFunc
	logger      zerolog.Logger
	diagnostics *Diagnostics
	telemetry   Telemetry

	container *Container
	props     Props
	state     State
	status    Status
	err       error
	instance  Instance
	applied   OptionTree
	resize    *ResizeSynchronizer
}

// LifecycleOption customizes a Lifecycle.
type LifecycleOption func(*Lifecycle)

// WithLifecycleID labels log records and telemetry.
func WithLifecycleID(id string) LifecycleOption {
	return func(l *Lifecycle) {
		l.id = id
	}
}

// WithPipeline injects the option pipeline (defaults to DefaultPipeline).
func WithPipeline(p *Pipeline) LifecycleOption {
	return func(l *Lifecycle) {
		if p != nil {
			l.pipeline = p
		}
	}
}

// WithSizeObserver sets the container size observer.
func WithSizeObserver(o SizeObserver) LifecycleOption {
	return func(l *Lifecycle) {
		l.observer = o
	}
}

// WithDebounceWindow overrides the resize debounce window.
func WithDebounceWindow(d time.Duration) LifecycleOption {
	return func(l *Lifecycle) {
		if d > 0 {
			l.window = d
		}
	}
}

// WithTimer swaps the timer source used for resize debouncing.
func WithTimer(after AfterFunc) LifecycleOption {
	return func(l *Lifecycle) {
		if after != nil {
			l.after = after
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger zerolog.Logger) LifecycleOption {
	return func(l *Lifecycle) {
		l.logger = logger
	}
}

// WithDiagnostics shares a diagnostics sink.
func WithDiagnostics(d *Diagnostics) LifecycleOption {
	return func(l *Lifecycle) {
		if d != nil {
			l.diagnostics = d
		}
	}
}

// WithTelemetry records lifecycle events.
func WithTelemetry(t Telemetry) LifecycleOption {
	return func(l *Lifecycle) {
		l.telemetry = t
	}
}

// NewLifecycle builds an unmounted lifecycle driving engine.
func NewLifecycle(engine Engine, opts ...LifecycleOption) *Lifecycle {
	l := &Lifecycle{
		engine:   engine,
		pipeline: DefaultPipeline(),
		window:   DefaultDebounceWindow,
		after:    StdAfterFunc,
		logger:   zerolog.Nop(),
		state:    StateUnmounted,
		status:   StatusIdle,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.diagnostics == nil {
		l.diagnostics = NewDiagnostics(DefaultDiagnosticsLimit)
	}
	l.telemetry = normalizeTelemetry(l.telemetry)
	if l.id != "" {
		l.logger = l.logger.With().Str("chart", l.id).Logger()
	}
	return l
}

// Mount attaches the container and renders the current props.
func (l *Lifecycle) Mount(ctx context.Context, container Container) error {
	if container.ID == "" {
		return fmt.Errorf("chart: container id is required")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.container != nil && l.container.ID != container.ID {
		l.release(ctx, "container changed")
	}
	c := container
	l.container = &c
	l.emit(zerolog.InfoLevel, "Container mounted", map[string]any{"container": c.ID})
	return l.reconcile(ctx)
}

// Update replaces the props and re-renders when a container is mounted.
func (l *Lifecycle) Update(ctx context.Context, props Props) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.props = props
	l.emit(zerolog.DebugLevel, "Props updated", map[string]any{
		"kind":          string(props.Kind),
		"seriesCount":   len(props.Series),
		"xAxisDataSize": len(props.XAxisData),
		"yAxisDataSize": len(props.YAxisData),
		"darkMode":      props.DarkMode,
		"height":        props.ResolvedHeight(),
	})
	return l.reconcile(ctx)
}

// Unmount releases the instance and stops resize observation.
func (l *Lifecycle) Unmount(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.release(ctx, "unmount")
	l.container = nil
	l.state = StateDisposed
	l.status = StatusIdle
	l.err = nil
}

// Relayout triggers an immediate engine relayout.
func (l *Lifecycle) Relayout() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == StateDisposed {
		return ErrDisposed
	}
	if l.instance == nil {
		return ErrNoContainer
	}
	return l.engine.Resize(l.instance)
}

func (l *Lifecycle) reconcile(ctx context.Context) error {
	if l.container == nil {
		if l.state != StateDisposed {
			l.state = StateUnmounted
		}
		return nil
	}

	if l.props.Kind != KindCombo && !l.props.HasData() {
		if l.instance != nil {
			l.release(ctx, "series data lost")
		}
		l.state = StateReady
		l.status = StatusIdle
		l.err = nil
		return nil
	}

	tree, err := l.pipeline.Compose(l.props)
	if err != nil {
		data := map[string]any{"error": err.Error()}
		var verr *ValidationError
		if errors.As(err, &verr) {
			data = map[string]any{"issues": verr.Issues}
		}
		l.emit(zerolog.ErrorLevel, "Data validation failed", data)
		l.release(ctx, "validation failed")
		l.state = StateReady
		l.status = StatusError
		l.err = err
		return err
	}

	if l.instance == nil {
		l.status = StatusLoading
		l.emit(zerolog.InfoLevel, "Initializing new chart instance", nil)
		inst, err := l.engine.Init(*l.container)
		if err != nil {
			l.emit(zerolog.ErrorLevel, "Chart instance initialization failed", map[string]any{"error": err.Error()})
			l.state = StateReady
			l.status = StatusError
			l.err = fmt.Errorf("chart: init instance: %w", err)
			return l.err
		}
		l.instance = inst
		l.startResize()
		l.telemetry.Record(ctx, "chart.instance.init", map[string]any{
			"chart":    l.id,
			"instance": inst.ID(),
		})
	}
	l.state = StateBound

	fields := map[string]any{"seriesCount": len(l.props.Series)}
	if l.props.Kind == KindCombo {
		fields["isHorizontal"] = ComboHorizontal(l.props)
	}
	l.emit(zerolog.InfoLevel, "Setting chart options", fields)
	if err := l.engine.SetOption(l.instance, tree); err != nil {
		applyErr := &ApplyError{InstanceID: l.instance.ID(), Err: err}
		l.emit(zerolog.ErrorLevel, "Error rendering chart", map[string]any{"error": err.Error()})
		l.status = StatusError
		l.err = applyErr
		l.telemetry.Record(ctx, "chart.apply.error", map[string]any{
			"chart":    l.id,
			"instance": l.instance.ID(),
			"error":    err.Error(),
		})
		return applyErr
	}
	l.applied = tree
	l.status = StatusSuccess
	l.err = nil
	l.emit(zerolog.InfoLevel, "Chart rendered successfully", nil)
	l.telemetry.Record(ctx, "chart.apply", map[string]any{
		"chart":    l.id,
		"instance": l.instance.ID(),
		"kind":     string(l.props.Kind),
	})
	return nil
}

func (l *Lifecycle) startResize() {
	if l.resize != nil {
		l.resize.Stop()
	}
	l.resize = NewResizeSynchronizer(l.relayoutDebounced,
		WithResizeWindow(l.window),
		WithResizeTimer(l.after),
	)
	if l.observer != nil && l.container != nil {
		l.resize.Observe(l.observer, *l.container)
	}
}

func (l *Lifecycle) relayoutDebounced() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.instance == nil {
		return
	}
	if err := l.engine.Resize(l.instance); err != nil {
		l.emit(zerolog.WarnLevel, "Chart resize failed", map[string]any{"error": err.Error()})
		return
	}
	l.emit(zerolog.InfoLevel, "Chart resized", nil)
}

// release disposes the instance and cancels pending resize work.
func (l *Lifecycle) release(ctx context.Context, reason string) {
	if l.resize != nil {
		l.resize.Stop()
		l.resize = nil
	}
	if l.instance == nil {
		return
	}
	id := l.instance.ID()
	if err := l.engine.Dispose(l.instance); err != nil {
		l.emit(zerolog.WarnLevel, "Chart dispose failed", map[string]any{"error": err.Error()})
	}
	l.instance = nil
	l.applied = nil
	l.emit(zerolog.InfoLevel, "Chart disposed", map[string]any{"reason": reason})
	l.telemetry.Record(ctx, "chart.instance.dispose", map[string]any{
		"chart":    l.id,
		"instance": id,
		"reason":   reason,
	})
}

func (l *Lifecycle) emit(level zerolog.Level, msg string, data map[string]any) {
	l.logger.WithLevel(level).Fields(data).Msg(msg)
	diag := l.diagnostics.Logger()
	diag.WithLevel(level).Fields(data).Msg(msg)
}

// ID returns the lifecycle label.
func (l *Lifecycle) ID() string { return l.id }

// State returns the current lifecycle state.
func (l *Lifecycle) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Status returns the caller-visible render status.
func (l *Lifecycle) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status
}

// Err returns the last validation or apply error, if any.
func (l *Lifecycle) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Instance returns the bound instance.
func (l *Lifecycle) Instance() (Instance, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.instance, l.instance != nil
}

// Tree returns a copy of the last successfully applied option tree.
func (l *Lifecycle) Tree() OptionTree {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.applied.Clone()
}

// Props returns the current props.
func (l *Lifecycle) Props() Props {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.props
}

// Container returns the mounted container.
func (l *Lifecycle) Container() (Container, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.container == nil {
		return Container{}, false
	}
	return *l.container, true
}

// Diagnostics returns the retained diagnostic entries.
func (l *Lifecycle) Diagnostics() []DiagnosticEntry {
	return l.diagnostics.Entries()
}

// ResizePending reports whether a debounced relayout is scheduled.
func (l *Lifecycle) ResizePending() bool {
	l.mu.Lock()
	r := l.resize
	l.mu.Unlock()
	return r != nil && r.Pending()
}
