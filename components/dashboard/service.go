package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-chartkit/components/chart"
)

var defaultAreas = []string{AreaMain, AreaSecondary, AreaFooter}

var (
	errMissingPanelStore = errors.New("dashboard: panel store not configured")
	errInvalidArea       = errors.New("dashboard: area code is required")
	errInvalidDefinition = errors.New("dashboard: definition id is required")
	errInvalidPanel      = errors.New("dashboard: panel id is required")
	errMissingUser       = errors.New("dashboard: viewer context missing user id")
)

// Options configures the dashboard Service. Every collaborator is provided via
// interface so applications can swap implementations.
type Options struct {
	PanelStore      PanelStore
	Authorizer      Authorizer
	PreferenceStore PreferenceStore
	Providers       ProviderRegistry
	ConfigValidator ConfigValidator
	RefreshHook     RefreshHook
	Telemetry       Telemetry
	Pipeline        *chart.Pipeline
	Cache           OptionCache
	Sessions        *SessionStore
	Logger          *zerolog.Logger
	Areas           []string
}

// Service orchestrates dashboard panels and the chart sessions rendering them.
type Service struct {
	opts   Options
	logger zerolog.Logger
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.Authorizer == nil {
		opts.Authorizer = allowAllAuthorizer{}
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	if opts.Providers == nil {
		opts.Providers = NewRegistry()
	}
	if opts.ConfigValidator == nil {
		opts.ConfigValidator = NewJSONSchemaValidator()
	}
	if opts.Pipeline == nil {
		opts.Pipeline = chart.DefaultPipeline()
	}
	if opts.Cache == nil {
		opts.Cache = NewChartCache(5 * time.Minute)
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	if opts.PreferenceStore == nil {
		opts.PreferenceStore = NewInMemoryPreferenceStore()
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = opts.Logger.With().Str("component", "dashboard").Logger()
	}
	return &Service{opts: opts, logger: logger}
}

// AddPanelRequest captures the data required to create panel assignments.
type AddPanelRequest struct {
	DefinitionID  string         `json:"definition_id"`
	AreaCode      string         `json:"area_code"`
	Configuration map[string]any `json:"configuration,omitempty"`
	Position      *int           `json:"position,omitempty"`
	Roles         []string       `json:"roles,omitempty"`
	UserID        string         `json:"user_id,omitempty"`
}

// UpdatePanelRequest replaces the configuration of a panel.
type UpdatePanelRequest struct {
	PanelID       string         `json:"panel_id"`
	Configuration map[string]any `json:"configuration"`
}

// AddPanel creates a panel and assigns it to an area.
func (s *Service) AddPanel(ctx context.Context, req AddPanelRequest) (Panel, error) {
	store, err := s.panelStore()
	if err != nil {
		return Panel{}, err
	}
	if req.AreaCode == "" {
		return Panel{}, errInvalidArea
	}
	if req.DefinitionID == "" {
		return Panel{}, errInvalidDefinition
	}
	if _, ok := s.opts.Providers.Definition(req.DefinitionID); !ok {
		return Panel{}, fmt.Errorf("dashboard: panel definition %s not registered", req.DefinitionID)
	}
	if err := s.validateConfiguration(req.DefinitionID, req.Configuration); err != nil {
		return Panel{}, err
	}
	panel, err := store.CreatePanel(ctx, CreatePanelInput{
		DefinitionID:  req.DefinitionID,
		Configuration: req.Configuration,
		Roles:         req.Roles,
		Metadata: map[string]any{
			"user_id": req.UserID,
		},
	})
	if err != nil {
		return Panel{}, err
	}
	if err := store.AssignPanel(ctx, AssignPanelInput{
		AreaCode: req.AreaCode,
		PanelID:  panel.ID,
		Position: req.Position,
	}); err != nil {
		return Panel{}, err
	}
	panel.AreaCode = req.AreaCode
	if err := s.opts.RefreshHook.PanelUpdated(ctx, PanelEvent{
		AreaCode: req.AreaCode,
		Panel:    panel,
		Reason:   "add",
	}); err != nil {
		return Panel{}, err
	}
	s.recordTelemetry(ctx, "dashboard.panel.add", map[string]any{
		"area_code":     req.AreaCode,
		"definition_id": req.DefinitionID,
	})
	return panel, nil
}

// UpdatePanel validates and stores a new configuration, then re-renders the
// panel in every open session showing it.
func (s *Service) UpdatePanel(ctx context.Context, req UpdatePanelRequest) (Panel, error) {
	store, err := s.panelStore()
	if err != nil {
		return Panel{}, err
	}
	if req.PanelID == "" {
		return Panel{}, errInvalidPanel
	}
	current, err := store.Panel(ctx, req.PanelID)
	if err != nil {
		return Panel{}, err
	}
	if err := s.validateConfiguration(current.DefinitionID, req.Configuration); err != nil {
		return Panel{}, err
	}
	panel, err := store.UpdatePanel(ctx, UpdatePanelInput{
		PanelID:       req.PanelID,
		Configuration: req.Configuration,
	})
	if err != nil {
		return Panel{}, err
	}
	refreshErr := s.refreshSessions(ctx, panel)
	if err := s.opts.RefreshHook.PanelUpdated(ctx, PanelEvent{
		AreaCode: panel.AreaCode,
		Panel:    panel,
		Reason:   "update",
	}); err != nil {
		return Panel{}, err
	}
	s.recordTelemetry(ctx, "dashboard.panel.update", map[string]any{"panel_id": panel.ID})
	return panel, refreshErr
}

// RemovePanel deletes the panel and unmounts it from open sessions.
func (s *Service) RemovePanel(ctx context.Context, panelID string) error {
	store, err := s.panelStore()
	if err != nil {
		return err
	}
	if panelID == "" {
		return errInvalidPanel
	}
	if err := store.DeletePanel(ctx, panelID); err != nil {
		return err
	}
	if s.opts.Sessions != nil {
		for _, session := range s.opts.Sessions.All() {
			session.Detach(ctx, panelID)
		}
	}
	if err := s.opts.RefreshHook.PanelUpdated(ctx, PanelEvent{
		Panel:  Panel{ID: panelID},
		Reason: "delete",
	}); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "dashboard.panel.remove", map[string]any{"panel_id": panelID})
	return nil
}

// ReorderPanels changes panel ordering within an area.
func (s *Service) ReorderPanels(ctx context.Context, areaCode string, panelIDs []string) error {
	store, err := s.panelStore()
	if err != nil {
		return err
	}
	if areaCode == "" {
		return errInvalidArea
	}
	if err := store.ReorderArea(ctx, ReorderAreaInput{
		AreaCode: areaCode,
		PanelIDs: panelIDs,
	}); err != nil {
		return err
	}
	if err := s.opts.RefreshHook.PanelUpdated(ctx, PanelEvent{
		AreaCode: areaCode,
		Reason:   "reorder",
	}); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "dashboard.panel.reorder", map[string]any{
		"area_code": areaCode,
		"count":     len(panelIDs),
	})
	return nil
}

// ConfigureLayout resolves panels for each dashboard area respecting preferences + auth.
func (s *Service) ConfigureLayout(ctx context.Context, viewer ViewerContext) (Layout, error) {
	store, err := s.panelStore()
	if err != nil {
		return Layout{}, err
	}
	prefs, err := s.opts.PreferenceStore.Preferences(ctx, viewer)
	if err != nil {
		return Layout{}, err
	}
	layout := Layout{DarkMode: prefs.DarkMode, Areas: make(map[string][]Panel)}
	for _, area := range s.areaList() {
		resolved, err := store.ResolveArea(ctx, ResolveAreaInput{
			AreaCode: area,
			Audience: viewer.Roles,
		})
		if err != nil {
			return Layout{}, err
		}
		for i := range resolved.Panels {
			resolved.Panels[i].AreaCode = area
		}
		filtered := s.filterAuthorized(ctx, viewer, resolved.Panels)
		ordered := applyOrderOverride(filtered, prefs.AreaOrder[area])
		layout.Areas[area] = applyHiddenFilter(ordered, prefs.HiddenPanels)
	}
	s.recordTelemetry(ctx, "dashboard.layout.resolve", map[string]any{
		"viewer": viewer.UserID,
	})
	return layout, nil
}

// ResolveArea retrieves a single area for the viewer.
func (s *Service) ResolveArea(ctx context.Context, viewer ViewerContext, areaCode string) (ResolvedArea, error) {
	store, err := s.panelStore()
	if err != nil {
		return ResolvedArea{}, err
	}
	resolved, err := store.ResolveArea(ctx, ResolveAreaInput{
		AreaCode: areaCode,
		Audience: viewer.Roles,
	})
	if err != nil {
		return ResolvedArea{}, err
	}
	resolved.Panels = s.filterAuthorized(ctx, viewer, resolved.Panels)
	s.recordTelemetry(ctx, "dashboard.area.resolve", map[string]any{
		"viewer":   viewer.UserID,
		"areaCode": areaCode,
	})
	return resolved, nil
}

// PanelProps returns the chart props of a panel in the viewer's color mode.
func (s *Service) PanelProps(ctx context.Context, viewer ViewerContext, panelID string) (chart.Props, error) {
	panel, err := s.viewablePanel(ctx, viewer, panelID)
	if err != nil {
		return chart.Props{}, err
	}
	prefs, err := s.opts.PreferenceStore.Preferences(ctx, viewer)
	if err != nil {
		return chart.Props{}, err
	}
	return s.panelProps(ctx, viewer, panel, prefs.DarkMode)
}

// PanelOption composes the final option tree of a panel for the viewer.
func (s *Service) PanelOption(ctx context.Context, viewer ViewerContext, panelID string) (chart.OptionTree, error) {
	panel, err := s.viewablePanel(ctx, viewer, panelID)
	if err != nil {
		return nil, err
	}
	prefs, err := s.opts.PreferenceStore.Preferences(ctx, viewer)
	if err != nil {
		return nil, err
	}
	return s.composePanel(ctx, viewer, panel, prefs.DarkMode)
}

// ComposePanel composes the option tree of an arbitrary panel in the given
// mode without a preference lookup. It is used by offline tooling.
func (s *Service) ComposePanel(ctx context.Context, panel Panel, dark bool) (chart.OptionTree, error) {
	return s.composePanel(ctx, ViewerContext{}, panel, dark)
}

func (s *Service) composePanel(ctx context.Context, viewer ViewerContext, panel Panel, dark bool) (chart.OptionTree, error) {
	key := fmt.Sprintf("%s:%s:%s:%s:%s", panel.DefinitionID, panel.ID, strconv.FormatBool(dark), ViewerLocale(viewer), configHash(panel.Configuration))
	return s.opts.Cache.GetOrCompose(key, func() (chart.OptionTree, error) {
		props, err := s.panelProps(ctx, viewer, panel, dark)
		if err != nil {
			return nil, err
		}
		return s.opts.Pipeline.Compose(props)
	})
}

// OpenSession mounts every chart panel of the viewer's layout. Charts that
// fail to render keep their error state; the session still opens.
func (s *Service) OpenSession(ctx context.Context, viewer ViewerContext) (*Session, error) {
	if s.opts.Sessions == nil {
		return nil, errSessionsDisabled
	}
	layout, err := s.ConfigureLayout(ctx, viewer)
	if err != nil {
		return nil, err
	}
	session := s.opts.Sessions.Create(viewer, layout.DarkMode)
	for _, area := range s.areaList() {
		for _, panel := range layout.Areas[area] {
			props, err := s.panelProps(ctx, viewer, panel, layout.DarkMode)
			if err != nil {
				s.logger.Warn().Err(err).Str("panel", panel.ID).Msg("panel props unavailable")
				continue
			}
			if err := session.Attach(ctx, panel, props); err != nil {
				s.logger.Warn().Err(err).Str("panel", panel.ID).Msg("panel render failed")
			}
		}
	}
	s.recordTelemetry(ctx, "dashboard.session.open", map[string]any{
		"viewer":  viewer.UserID,
		"session": session.ID(),
		"charts":  len(session.Charts()),
	})
	return session, nil
}

// Session returns an open session.
func (s *Service) Session(id string) (*Session, error) {
	if s.opts.Sessions == nil {
		return nil, errSessionsDisabled
	}
	return s.opts.Sessions.Get(id)
}

// CloseSession unmounts every chart of a session.
func (s *Service) CloseSession(ctx context.Context, id string) error {
	if s.opts.Sessions == nil {
		return errSessionsDisabled
	}
	if err := s.opts.Sessions.Close(ctx, id); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "dashboard.session.close", map[string]any{"session": id})
	return nil
}

// ResizeChart forwards a container size change reported by a browser.
func (s *Service) ResizeChart(_ context.Context, sessionID, containerID string, size chart.Size) error {
	session, err := s.Session(sessionID)
	if err != nil {
		return err
	}
	if session.Resize(containerID, size) == 0 {
		return fmt.Errorf("dashboard: container %s not observed in session %s", containerID, sessionID)
	}
	return nil
}

// NotifyPanelUpdated exposes refresh hook invocation for commands/transports.
func (s *Service) NotifyPanelUpdated(ctx context.Context, event PanelEvent) error {
	if err := s.opts.RefreshHook.PanelUpdated(ctx, event); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "dashboard.panel.event", map[string]any{
		"area_code": event.AreaCode,
		"panel_id":  event.Panel.ID,
		"reason":    event.Reason,
	})
	return nil
}

// Preferences returns the viewer's stored preferences.
func (s *Service) Preferences(ctx context.Context, viewer ViewerContext) (Preferences, error) {
	return s.opts.PreferenceStore.Preferences(ctx, viewer)
}

// SavePreferences persists per-viewer preferences. A changed color mode is
// applied to the viewer's open sessions.
func (s *Service) SavePreferences(ctx context.Context, viewer ViewerContext, prefs Preferences) error {
	if viewer.UserID == "" {
		return errMissingUser
	}
	prefs = normalizePreferences(prefs)
	if err := s.opts.PreferenceStore.SavePreferences(ctx, viewer, prefs); err != nil {
		return err
	}
	return s.applyDarkMode(ctx, viewer, prefs.DarkMode)
}

// SetDarkMode stores the color mode and re-applies every open chart of the viewer.
func (s *Service) SetDarkMode(ctx context.Context, viewer ViewerContext, dark bool) error {
	if viewer.UserID == "" {
		return errMissingUser
	}
	prefs, err := s.opts.PreferenceStore.Preferences(ctx, viewer)
	if err != nil {
		return err
	}
	prefs.DarkMode = dark
	if err := s.opts.PreferenceStore.SavePreferences(ctx, viewer, prefs); err != nil {
		return err
	}
	return s.applyDarkMode(ctx, viewer, dark)
}

// ToggleDarkMode flips the viewer's color mode and returns the new value.
func (s *Service) ToggleDarkMode(ctx context.Context, viewer ViewerContext) (bool, error) {
	prefs, err := s.opts.PreferenceStore.Preferences(ctx, viewer)
	if err != nil {
		return false, err
	}
	dark := !prefs.DarkMode
	return dark, s.SetDarkMode(ctx, viewer, dark)
}

func (s *Service) applyDarkMode(ctx context.Context, viewer ViewerContext, dark bool) error {
	s.recordTelemetry(ctx, "dashboard.theme.apply", map[string]any{
		"viewer": viewer.UserID,
		"dark":   dark,
	})
	if s.opts.Sessions == nil {
		return nil
	}
	var errs error
	for _, session := range s.opts.Sessions.ForViewer(viewer.UserID) {
		if session.DarkMode() == dark {
			continue
		}
		if err := session.SetDarkMode(ctx, dark); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

func (s *Service) refreshSessions(ctx context.Context, panel Panel) error {
	if s.opts.Sessions == nil {
		return nil
	}
	var errs error
	for _, session := range s.opts.Sessions.All() {
		if _, ok := session.Chart(panel.ID); !ok {
			continue
		}
		props, err := s.panelProps(ctx, session.Viewer(), panel, session.DarkMode())
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		if err := session.UpdatePanel(ctx, panel, props); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

func (s *Service) panelProps(ctx context.Context, viewer ViewerContext, panel Panel, dark bool) (chart.Props, error) {
	def, ok := s.opts.Providers.Definition(panel.DefinitionID)
	if !ok {
		return chart.Props{}, fmt.Errorf("dashboard: panel definition %s not registered", panel.DefinitionID)
	}
	provider, ok := s.opts.Providers.Provider(panel.DefinitionID)
	if !ok || provider == nil {
		return chart.Props{}, fmt.Errorf("dashboard: no provider for %s", panel.DefinitionID)
	}
	props, err := provider.Props(ctx, PanelContext{
		Panel:      panel,
		Definition: def,
		Viewer:     viewer,
		DarkMode:   dark,
	})
	if err != nil {
		s.recordTelemetry(ctx, "dashboard.panel.provider_error", map[string]any{
			"definition_id": panel.DefinitionID,
			"error":         err.Error(),
		})
		return chart.Props{}, err
	}
	return props, nil
}

func (s *Service) viewablePanel(ctx context.Context, viewer ViewerContext, panelID string) (Panel, error) {
	store, err := s.panelStore()
	if err != nil {
		return Panel{}, err
	}
	if panelID == "" {
		return Panel{}, errInvalidPanel
	}
	panel, err := store.Panel(ctx, panelID)
	if err != nil {
		return Panel{}, err
	}
	if !audienceMatches(panel.Roles, viewer.Roles) || !s.opts.Authorizer.CanViewPanel(ctx, viewer, panel) {
		return Panel{}, fmt.Errorf("%w: %s", ErrPanelNotFound, panelID)
	}
	return panel, nil
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

func (s *Service) panelStore() (PanelStore, error) {
	if s.opts.PanelStore == nil {
		return nil, errMissingPanelStore
	}
	return s.opts.PanelStore, nil
}

func (s *Service) validateConfiguration(definitionID string, config map[string]any) error {
	if s.opts.ConfigValidator == nil || s.opts.Providers == nil {
		return nil
	}
	def, ok := s.opts.Providers.Definition(definitionID)
	if !ok {
		return nil
	}
	return s.opts.ConfigValidator.Validate(def, config)
}

// Areas returns the area codes rendered by the service, in order.
func (s *Service) Areas() []string {
	return append([]string(nil), s.areaList()...)
}

// Registry exposes the provider registry.
func (s *Service) Registry() ProviderRegistry {
	return s.opts.Providers
}

func (s *Service) areaList() []string {
	if len(s.opts.Areas) > 0 {
		return s.opts.Areas
	}
	return defaultAreas
}

func (s *Service) filterAuthorized(ctx context.Context, viewer ViewerContext, panels []Panel) []Panel {
	if len(panels) == 0 {
		return panels
	}
	var filtered []Panel
	for _, p := range panels {
		if s.opts.Authorizer.CanViewPanel(ctx, viewer, p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

type allowAllAuthorizer struct{}

func (allowAllAuthorizer) CanViewPanel(context.Context, ViewerContext, Panel) bool {
	return true
}

type noopRefreshHook struct{}

func (noopRefreshHook) PanelUpdated(context.Context, PanelEvent) error {
	return nil
}
