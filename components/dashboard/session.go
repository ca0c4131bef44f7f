package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ettle/strcase"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-chartkit/components/chart"
)

var (
	// ErrSessionNotFound is returned for unknown or closed session ids.
	ErrSessionNotFound  = errors.New("dashboard: session not found")
	errSessionsDisabled = errors.New("dashboard: sessions not configured")
)

// ChartState is the externally visible state of one session chart.
type ChartState struct {
	PanelID       string          `json:"panel_id"`
	DefinitionID  string          `json:"definition_id"`
	AreaCode      string          `json:"area_code"`
	Title         string          `json:"title,omitempty"`
	Kind          chart.Kind      `json:"kind"`
	Container     chart.Container `json:"container"`
	State         chart.State     `json:"state"`
	Status        chart.Status    `json:"status"`
	Error         string          `json:"error,omitempty"`
	Instance      string          `json:"instance,omitempty"`
	ResizePending bool            `json:"resize_pending"`
}

type sessionChart struct {
	panel     Panel
	props     chart.Props
	container chart.Container
	lifecycle *chart.Lifecycle
}

// Session mounts one chart lifecycle per chart panel shown to a viewer.
type Session struct {
	// apply orders prop changes together with their lifecycle updates so the
	// last change recorded is also the last one applied.
	apply    sync.Mutex
	mu       sync.Mutex
	id       string
	viewer   ViewerContext
	dark     bool
	created  time.Time
	closed   bool
	observer *chart.ManualObserver
	charts   []*sessionChart
	build    func(id string, observer chart.SizeObserver) *chart.Lifecycle
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Viewer returns the viewer the session was opened for.
func (s *Session) Viewer() ViewerContext { return s.viewer }

// CreatedAt reports when the session was opened.
func (s *Session) CreatedAt() time.Time { return s.created }

// DarkMode reports the active color mode.
func (s *Session) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark
}

// Closed reports whether Close has run.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Attach mounts a chart for panel. Rendering failures stay on the chart
// state and are also returned.
func (s *Session) Attach(ctx context.Context, panel Panel, props chart.Props) error {
	s.apply.Lock()
	defer s.apply.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionNotFound
	}
	for _, c := range s.charts {
		if c.panel.ID == panel.ID {
			s.mu.Unlock()
			return fmt.Errorf("dashboard: panel %s already attached", panel.ID)
		}
	}
	props.DarkMode = s.dark
	container := chart.Container{ID: containerID(panel, props), Height: props.ResolvedHeight()}
	entry := &sessionChart{
		panel:     panel,
		props:     props,
		container: container,
		lifecycle: s.build(container.ID, s.observer),
	}
	s.charts = append(s.charts, entry)
	s.mu.Unlock()

	if err := entry.lifecycle.Update(ctx, props); err != nil {
		return err
	}
	return entry.lifecycle.Mount(ctx, container)
}

// UpdatePanel re-renders the chart of panelID with new props.
func (s *Session) UpdatePanel(ctx context.Context, panel Panel, props chart.Props) error {
	s.apply.Lock()
	defer s.apply.Unlock()

	s.mu.Lock()
	var entry *sessionChart
	for _, c := range s.charts {
		if c.panel.ID == panel.ID {
			entry = c
			break
		}
	}
	if entry == nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrPanelNotFound, panel.ID)
	}
	props.DarkMode = s.dark
	entry.panel = panel
	entry.props = props
	s.mu.Unlock()
	return entry.lifecycle.Update(ctx, props)
}

// Detach unmounts and forgets the chart of panelID.
func (s *Session) Detach(ctx context.Context, panelID string) bool {
	s.mu.Lock()
	var removed *sessionChart
	kept := s.charts[:0]
	for _, c := range s.charts {
		if c.panel.ID == panelID && removed == nil {
			removed = c
			continue
		}
		kept = append(kept, c)
	}
	s.charts = kept
	s.mu.Unlock()
	if removed == nil {
		return false
	}
	removed.lifecycle.Unmount(ctx)
	return true
}

// SetDarkMode re-applies every chart in the requested mode.
func (s *Session) SetDarkMode(ctx context.Context, dark bool) error {
	s.apply.Lock()
	defer s.apply.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionNotFound
	}
	s.dark = dark
	type pending struct {
		panelID   string
		props     chart.Props
		lifecycle *chart.Lifecycle
	}
	updates := make([]pending, len(s.charts))
	for i, c := range s.charts {
		c.props.DarkMode = dark
		updates[i] = pending{panelID: c.panel.ID, props: c.props, lifecycle: c.lifecycle}
	}
	s.mu.Unlock()

	var errs error
	for _, c := range updates {
		if err := c.lifecycle.Update(ctx, c.props); err != nil {
			errs = errors.Join(errs, fmt.Errorf("panel %s: %w", c.panelID, err))
		}
	}
	return errs
}

// Resize forwards a container size change to the observing lifecycles and
// returns how many were notified.
func (s *Session) Resize(containerID string, size chart.Size) int {
	if s.Closed() {
		return 0
	}
	return s.observer.Notify(containerID, size)
}

// Close unmounts every chart. It is safe to call more than once.
func (s *Session) Close(ctx context.Context) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	charts := s.charts
	s.charts = nil
	s.mu.Unlock()
	for _, c := range charts {
		c.lifecycle.Unmount(ctx)
	}
}

// Charts reports the state of every chart in attach order.
func (s *Session) Charts() []ChartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ChartState, 0, len(s.charts))
	for _, c := range s.charts {
		out = append(out, c.state())
	}
	return out
}

// Chart reports the state of one chart.
func (s *Session) Chart(panelID string) (ChartState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.charts {
		if c.panel.ID == panelID {
			return c.state(), true
		}
	}
	return ChartState{}, false
}

// Lifecycle exposes the lifecycle driving panelID.
func (s *Session) Lifecycle(panelID string) (*chart.Lifecycle, bool) {
	entry, ok := s.lookup(panelID)
	if !ok {
		return nil, false
	}
	return entry.lifecycle, true
}

// Diagnostics returns the recent log entries of one chart.
func (s *Session) Diagnostics(panelID string) ([]chart.DiagnosticEntry, bool) {
	entry, ok := s.lookup(panelID)
	if !ok {
		return nil, false
	}
	return entry.lifecycle.Diagnostics(), true
}

func (s *Session) lookup(panelID string) (*sessionChart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.charts {
		if c.panel.ID == panelID {
			return c, true
		}
	}
	return nil, false
}

func (c *sessionChart) state() ChartState {
	st := ChartState{
		PanelID:       c.panel.ID,
		DefinitionID:  c.panel.DefinitionID,
		AreaCode:      c.panel.AreaCode,
		Title:         c.props.Title,
		Kind:          c.props.Kind,
		Container:     c.container,
		State:         c.lifecycle.State(),
		Status:        c.lifecycle.Status(),
		ResizePending: c.lifecycle.ResizePending(),
	}
	if err := c.lifecycle.Err(); err != nil {
		st.Error = err.Error()
	}
	if inst, ok := c.lifecycle.Instance(); ok {
		st.Instance = inst.ID()
	}
	return st
}

func containerID(panel Panel, props chart.Props) string {
	base := props.Title
	if base == "" {
		base = panel.DefinitionID
	}
	suffix := panel.ID
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return strcase.ToKebab(base + " " + suffix)
}

// SessionStore is an in-memory registry of open sessions sharing one engine.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	engine    chart.Engine
	pipeline  *chart.Pipeline
	window    time.Duration
	after     chart.AfterFunc
	logger    zerolog.Logger
	telemetry Telemetry
	newID     func() string
	now       func() time.Time
}

// SessionOption customizes a SessionStore.
type SessionOption func(*SessionStore)

// WithSessionPipeline sets the option pipeline used by every lifecycle.
func WithSessionPipeline(p *chart.Pipeline) SessionOption {
	return func(s *SessionStore) {
		s.pipeline = p
	}
}

// WithSessionDebounce overrides the resize debounce window.
func WithSessionDebounce(d time.Duration) SessionOption {
	return func(s *SessionStore) {
		s.window = d
	}
}

// WithSessionTimer swaps the debounce timer source.
func WithSessionTimer(after chart.AfterFunc) SessionOption {
	return func(s *SessionStore) {
		s.after = after
	}
}

// WithSessionLogger sets the logger handed to every lifecycle.
func WithSessionLogger(logger zerolog.Logger) SessionOption {
	return func(s *SessionStore) {
		s.logger = logger
	}
}

// WithSessionTelemetry records lifecycle events.
func WithSessionTelemetry(t Telemetry) SessionOption {
	return func(s *SessionStore) {
		s.telemetry = t
	}
}

// WithSessionIDGenerator swaps the session id source.
func WithSessionIDGenerator(fn func() string) SessionOption {
	return func(s *SessionStore) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewSessionStore builds a store whose sessions render through engine.
func NewSessionStore(engine chart.Engine, opts ...SessionOption) *SessionStore {
	s := &SessionStore{
		sessions: map[string]*Session{},
		engine:   engine,
		logger:   zerolog.Nop(),
		newID:    uuid.NewString,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.telemetry = normalizeTelemetry(s.telemetry)
	return s
}

// Create registers an empty session for viewer.
func (s *SessionStore) Create(viewer ViewerContext, dark bool) *Session {
	session := &Session{
		id:       s.newID(),
		viewer:   viewer,
		dark:     dark,
		created:  s.now(),
		observer: chart.NewManualObserver(),
	}
	logger := s.logger.With().Str("session", session.id).Logger()
	session.build = func(id string, observer chart.SizeObserver) *chart.Lifecycle {
		opts := []chart.LifecycleOption{
			chart.WithLifecycleID(id),
			chart.WithSizeObserver(observer),
			chart.WithLogger(logger),
			chart.WithTelemetry(s.telemetry),
			chart.WithPipeline(s.pipeline),
			chart.WithDebounceWindow(s.window),
		}
		if s.after != nil {
			opts = append(opts, chart.WithTimer(s.after))
		}
		return chart.NewLifecycle(s.engine, opts...)
	}
	s.mu.Lock()
	s.sessions[session.id] = session
	s.mu.Unlock()
	return session
}

// Get returns an open session.
func (s *SessionStore) Get(id string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return session, nil
}

// Close unmounts and forgets a session.
func (s *SessionStore) Close(ctx context.Context, id string) error {
	s.mu.Lock()
	session, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	session.Close(ctx)
	return nil
}

// CloseAll closes every open session.
func (s *SessionStore) CloseAll(ctx context.Context) {
	for _, session := range s.All() {
		_ = s.Close(ctx, session.ID())
	}
}

// ForViewer lists the open sessions of a user.
func (s *SessionStore) ForViewer(userID string) []*Session {
	var out []*Session
	for _, session := range s.All() {
		if session.viewer.UserID == userID {
			out = append(out, session)
		}
	}
	return out
}

// All lists open sessions, oldest first.
func (s *SessionStore) All() []*Session {
	s.mu.RLock()
	out := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		out = append(out, session)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].created.Equal(out[j].created) {
			return out[i].id < out[j].id
		}
		return out[i].created.Before(out[j].created)
	})
	return out
}

// Len reports the number of open sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
