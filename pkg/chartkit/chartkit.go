// Package chartkit assembles the chart engine, dashboard service and
// transports into a ready-to-serve stack.
package chartkit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	router "github.com/goliatone/go-router"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-chartkit/components/chart"
	"github.com/goliatone/go-chartkit/components/chart/echarts"
	"github.com/goliatone/go-chartkit/components/dashboard"
	"github.com/goliatone/go-chartkit/components/dashboard/commands"
	"github.com/goliatone/go-chartkit/components/dashboard/gorouter"
	"github.com/goliatone/go-chartkit/components/dashboard/httpapi"
	"github.com/goliatone/go-chartkit/pkg/analytics"
)

// Options configures New.
type Options struct {
	Logger     *zerolog.Logger
	Telemetry  dashboard.Telemetry
	AssetsHost string
	Theme      string
	// Debounce overrides the resize debounce window of mounted charts.
	Debounce time.Duration
	// Maps lists geo boundary URLs keyed by map name, fetched once at startup.
	Maps       map[string]string
	HTTPClient *http.Client
	// SeedDefaults creates the built-in panels; Manifest seeds its own.
	SeedDefaults bool
	Manifest     *dashboard.PanelManifestDocument
	Title        string
	// Series, when set, feeds remote data into SeriesDefinitions, or into
	// every chart definition when that list is empty.
	Series            analytics.SeriesClient
	SeriesDefinitions []string
}

// Stack holds every wired component.
type Stack struct {
	Engine     *echarts.Engine
	Hub        *echarts.Hub
	Geo        *echarts.GeoLoader
	Broadcast  *dashboard.BroadcastHook
	Store      *dashboard.InMemoryPanelStore
	Service    *dashboard.Service
	Controller *dashboard.Controller
	Executor   *httpapi.CommandExecutor
	logger     zerolog.Logger
}

// New builds and seeds a stack.
func New(ctx context.Context, opts Options) (*Stack, error) {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	s := &Stack{logger: logger}

	s.Hub = echarts.NewHub(
		echarts.WithClientHandler(s.handleClient),
		echarts.WithHubLogger(logger.With().Str("component", "hub").Logger()),
	)
	engineOpts := []echarts.EngineOption{
		echarts.WithPublisher(s.Hub),
		echarts.WithEngineLogger(logger.With().Str("component", "echarts").Logger()),
	}
	if opts.AssetsHost != "" {
		engineOpts = append(engineOpts, echarts.WithAssetsHost(opts.AssetsHost))
	}
	if opts.Theme != "" {
		engineOpts = append(engineOpts, echarts.WithTheme(opts.Theme))
	}
	engine, err := echarts.NewEngine(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("chartkit: engine: %w", err)
	}
	s.Engine = engine

	var geoOpts []echarts.GeoOption
	if opts.HTTPClient != nil {
		geoOpts = append(geoOpts, echarts.WithHTTPClient(opts.HTTPClient))
	}
	s.Geo = echarts.NewGeoLoader(engine, geoOpts...)
	if err := s.loadMaps(ctx, opts.Maps); err != nil {
		return nil, err
	}

	sessionOpts := []dashboard.SessionOption{
		dashboard.WithSessionLogger(logger),
		dashboard.WithSessionTelemetry(opts.Telemetry),
	}
	if opts.Debounce > 0 {
		sessionOpts = append(sessionOpts, dashboard.WithSessionDebounce(opts.Debounce))
	}

	s.Broadcast = dashboard.NewBroadcastHook()
	s.Store = dashboard.NewInMemoryPanelStore()
	s.Service = dashboard.NewService(dashboard.Options{
		PanelStore: s.Store,
		Sessions:   dashboard.NewSessionStore(engine, sessionOpts...),
		RefreshHook: dashboard.RefreshHooks{
			s.Broadcast,
			dashboard.LoggingRefreshHook{Logger: logger},
		},
		Telemetry: opts.Telemetry,
		Logger:    &logger,
	})

	seed := commands.NewSeedDashboardCommand(s.Store, s.Service.Registry(), s.Service, opts.Telemetry)
	if err := seed.Execute(ctx, commands.SeedDashboardInput{SeedLayout: opts.SeedDefaults, Manifest: opts.Manifest}); err != nil {
		return nil, fmt.Errorf("chartkit: seed: %w", err)
	}
	if opts.Series != nil {
		codes := opts.SeriesDefinitions
		if len(codes) == 0 {
			for _, def := range s.Service.Registry().Definitions() {
				if def.Kind.Valid() {
					codes = append(codes, def.Code)
				}
			}
		}
		if err := analytics.Register(s.Service.Registry(), opts.Series, codes...); err != nil {
			return nil, fmt.Errorf("chartkit: series providers: %w", err)
		}
		logger.Debug().Strs("definitions", codes).Msg("remote series providers registered")
	}

	renderer, err := dashboard.NewTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("chartkit: page templates: %w", err)
	}
	s.Controller = dashboard.NewController(dashboard.ControllerOptions{
		Service:  s.Service,
		Renderer: renderer,
		Charts:   engine,
		Title:    opts.Title,
		Logger:   &logger,
	})
	s.Executor = httpapi.NewCommandExecutor(s.Service, opts.Telemetry)
	return s, nil
}

func (s *Stack) loadMaps(ctx context.Context, maps map[string]string) error {
	names := make([]string, 0, len(maps))
	for name := range maps {
		names = append(names, name)
	}
	sort.Strings(names)
	var errs error
	for _, name := range names {
		if err := s.Geo.Load(ctx, name, maps[name]); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

// handleClient applies resize reports sent over the instance WebSocket.
func (s *Stack) handleClient(ctx context.Context, msg echarts.ClientMessage) {
	if msg.Op != string(echarts.OpResize) || s.Service == nil {
		return
	}
	size := chart.Size{Width: msg.Width, Height: msg.Height}
	if err := s.Service.ResizeChart(ctx, msg.Session, msg.Container, size); err != nil {
		s.logger.Debug().Err(err).Str("session", msg.Session).Str("container", msg.Container).Msg("resize ignored")
	}
}

// Handlers returns net/http handlers for the stack.
func (s *Stack) Handlers() *httpapi.Handlers {
	return &httpapi.Handlers{
		Exec:        s.Executor,
		Queries:     s.Service,
		Pages:       s.Controller,
		Instances:   http.HandlerFunc(s.Hub.ServeWebSocket),
		Events:      http.HandlerFunc(s.Broadcast.ServeWebSocket),
		EventStream: http.HandlerFunc(s.Broadcast.ServeSSE),
		Logger:      s.logger,
	}
}

// Mount registers the stack on a go-router router under base.
func Mount[T any](s *Stack, r router.Router[T], base string, viewer gorouter.ViewerResolver) error {
	if s == nil {
		return errors.New("chartkit: stack is nil")
	}
	return gorouter.Register(gorouter.Config[T]{
		Router:         r,
		Controller:     s.Controller,
		Service:        s.Service,
		API:            s.Executor,
		Broadcast:      s.Broadcast,
		Instances:      s.Hub,
		ViewerResolver: viewer,
		BasePath:       base,
	})
}

// Close stops the refresh broadcast.
func (s *Stack) Close() {
	s.Broadcast.Close()
}
