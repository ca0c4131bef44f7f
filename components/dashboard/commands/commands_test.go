package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-chartkit/components/chart"
	dashboard "github.com/goliatone/go-chartkit/components/dashboard"
)

func TestSeedDashboardCommand(t *testing.T) {
	store := dashboard.NewInMemoryPanelStore()
	service := dashboard.NewService(dashboard.Options{PanelStore: store})
	telemetry := &stubTelemetry{}
	cmd := NewSeedDashboardCommand(store, service.Registry(), service, telemetry)
	if err := cmd.Execute(context.Background(), SeedDashboardInput{SeedLayout: true}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	layout, err := service.ConfigureLayout(context.Background(), dashboard.ViewerContext{})
	require.NoError(t, err)
	total := 0
	for _, panels := range layout.Areas {
		total += len(panels)
	}
	assert.Equal(t, len(dashboard.DefaultSeedPanels()), total)
	assert.Equal(t, []string{"dashboard.seed"}, telemetry.events)
}

func TestSeedDashboardCommandManifest(t *testing.T) {
	store := dashboard.NewInMemoryPanelStore()
	service := dashboard.NewService(dashboard.Options{PanelStore: store})
	doc, err := dashboard.DecodeManifest(strings.NewReader(`
version: "1"
panels:
  - definition:
      code: ops.panel.queue
      name: Queue depth
      kind: bar
seeds:
  - definition: ops.panel.queue
    area: admin.dashboard.footer
    configuration:
      title: Queue depth
`))
	require.NoError(t, err)

	cmd := NewSeedDashboardCommand(store, service.Registry(), service, nil)
	require.NoError(t, cmd.Execute(context.Background(), SeedDashboardInput{Manifest: doc}))
	resolved, err := service.ResolveArea(context.Background(), dashboard.ViewerContext{}, dashboard.AreaFooter)
	require.NoError(t, err)
	require.Len(t, resolved.Panels, 1)
	assert.Equal(t, "ops.panel.queue", resolved.Panels[0].DefinitionID)

	err = NewSeedDashboardCommand(nil, nil, nil, nil).Execute(context.Background(), SeedDashboardInput{})
	assert.Error(t, err)
}

func TestAddPanelCommand(t *testing.T) {
	service := &stubService{}
	var created dashboard.Panel
	cmd := NewAddPanelCommand(service, nil, func(p dashboard.Panel) { created = p })
	req := dashboard.AddPanelRequest{DefinitionID: "chartkit.panel.bar", AreaCode: dashboard.AreaMain}
	if err := cmd.Execute(context.Background(), req); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.addCalls != 1 {
		t.Fatalf("expected add call")
	}
	assert.Equal(t, "panel-1", created.ID)

	service.err = errors.New("boom")
	assert.Error(t, cmd.Execute(context.Background(), req))
	assert.Error(t, NewAddPanelCommand(nil, nil, nil).Execute(context.Background(), req))
}

func TestRemovePanelCommand(t *testing.T) {
	service := &stubService{}
	telemetry := &stubTelemetry{}
	cmd := NewRemovePanelCommand(service, telemetry)
	if err := cmd.Execute(context.Background(), RemovePanelInput{PanelID: "panel-1"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.removeCalls != 1 {
		t.Fatalf("expected remove call")
	}
	assert.Equal(t, []string{"dashboard.panel.remove"}, telemetry.events)
	assert.Error(t, cmd.Execute(context.Background(), RemovePanelInput{}))
}

func TestReorderPanelsCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewReorderPanelsCommand(service, nil)
	if err := cmd.Execute(context.Background(), ReorderPanelsInput{
		AreaCode: dashboard.AreaMain,
		PanelIDs: []string{"p1", "p2"},
	}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.reorderCalls != 1 {
		t.Fatalf("expected reorder call")
	}
}

func TestUpdatePanelCommandRecordsFailures(t *testing.T) {
	service := &stubService{}
	telemetry := &stubTelemetry{}
	cmd := NewUpdatePanelCommand(service, telemetry)
	require.NoError(t, cmd.Execute(context.Background(), dashboard.UpdatePanelRequest{PanelID: "p1"}))
	assert.Equal(t, 1, service.updateCalls)

	service.err = errors.New("apply failed")
	assert.Error(t, cmd.Execute(context.Background(), dashboard.UpdatePanelRequest{PanelID: "p1"}))
	assert.Len(t, telemetry.events, 2)
	assert.Error(t, cmd.Execute(context.Background(), dashboard.UpdatePanelRequest{}))
}

func TestRefreshPanelCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewRefreshPanelCommand(service, nil)
	event := dashboard.PanelEvent{AreaCode: dashboard.AreaMain}
	if err := cmd.Execute(context.Background(), RefreshPanelInput{Event: event}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.refreshCalls != 1 {
		t.Fatalf("expected refresh call")
	}
	assert.Equal(t, "refresh", service.lastEvent.Reason)
}

func TestSaveLayoutPreferencesCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewSaveLayoutPreferencesCommand(service, nil)
	require.NoError(t, cmd.Execute(context.Background(), SaveLayoutPreferencesInput{
		Viewer:       dashboard.ViewerContext{UserID: "u1"},
		DarkMode:     true,
		HiddenPanels: []string{"p2"},
	}))
	assert.True(t, service.lastPrefs.DarkMode)
	assert.True(t, service.lastPrefs.HiddenPanels["p2"])

	assert.Error(t, cmd.Execute(context.Background(), SaveLayoutPreferencesInput{}))
}

func TestSetDarkModeCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewSetDarkModeCommand(service, nil)
	viewer := dashboard.ViewerContext{UserID: "u1"}

	require.NoError(t, cmd.Execute(context.Background(), SetDarkModeInput{Viewer: viewer}))
	assert.Equal(t, 1, service.toggleCalls)

	dark := false
	require.NoError(t, cmd.Execute(context.Background(), SetDarkModeInput{Viewer: viewer, Dark: &dark}))
	require.NotNil(t, service.lastDark)
	assert.False(t, *service.lastDark)
}

func TestSessionCommands(t *testing.T) {
	service := &stubService{}
	resize := NewResizeChartCommand(service)
	require.NoError(t, resize.Execute(context.Background(), ResizeChartInput{
		SessionID: "s1", ContainerID: "sales-p1", Width: 640, Height: 320,
	}))
	assert.Equal(t, chart.Size{Width: 640, Height: 320}, service.lastSize)
	assert.Error(t, resize.Execute(context.Background(), ResizeChartInput{Width: -1}))

	require.NoError(t, resize.Execute(context.Background(), ResizeChartInput{
		SessionID: "s1", ContainerID: "sales-p1", Width: 640.5, Height: 319.75,
	}))
	assert.Equal(t, chart.Size{Width: 640.5, Height: 319.75}, service.lastSize)

	closeCmd := NewCloseSessionCommand(service, nil)
	require.NoError(t, closeCmd.Execute(context.Background(), CloseSessionInput{SessionID: "s1"}))
	assert.Equal(t, "s1", service.closed)
}

type stubService struct {
	err          error
	addCalls     int
	removeCalls  int
	reorderCalls int
	updateCalls  int
	refreshCalls int
	toggleCalls  int
	lastEvent    dashboard.PanelEvent
	lastPrefs    dashboard.Preferences
	lastDark     *bool
	lastSize     chart.Size
	closed       string
}

func (s *stubService) AddPanel(_ context.Context, req dashboard.AddPanelRequest) (dashboard.Panel, error) {
	if s.err != nil {
		return dashboard.Panel{}, s.err
	}
	s.addCalls++
	return dashboard.Panel{ID: "panel-1", DefinitionID: req.DefinitionID, AreaCode: req.AreaCode}, nil
}

func (s *stubService) RemovePanel(context.Context, string) error {
	s.removeCalls++
	return s.err
}

func (s *stubService) ReorderPanels(context.Context, string, []string) error {
	s.reorderCalls++
	return s.err
}

func (s *stubService) UpdatePanel(_ context.Context, req dashboard.UpdatePanelRequest) (dashboard.Panel, error) {
	s.updateCalls++
	return dashboard.Panel{ID: req.PanelID}, s.err
}

func (s *stubService) NotifyPanelUpdated(_ context.Context, event dashboard.PanelEvent) error {
	s.refreshCalls++
	s.lastEvent = event
	return s.err
}

func (s *stubService) SavePreferences(_ context.Context, _ dashboard.ViewerContext, prefs dashboard.Preferences) error {
	s.lastPrefs = prefs
	return s.err
}

func (s *stubService) SetDarkMode(_ context.Context, _ dashboard.ViewerContext, dark bool) error {
	s.lastDark = &dark
	return s.err
}

func (s *stubService) ToggleDarkMode(context.Context, dashboard.ViewerContext) (bool, error) {
	s.toggleCalls++
	return true, s.err
}

func (s *stubService) ResizeChart(_ context.Context, _, _ string, size chart.Size) error {
	s.lastSize = size
	return s.err
}

func (s *stubService) CloseSession(_ context.Context, id string) error {
	s.closed = id
	return s.err
}

type stubTelemetry struct {
	events []string
}

func (s *stubTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	s.events = append(s.events, event)
}
