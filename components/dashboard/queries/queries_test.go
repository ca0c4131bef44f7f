package queries

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-chartkit/components/chart"
	"github.com/goliatone/go-chartkit/components/chart/echarts"
	"github.com/goliatone/go-chartkit/components/dashboard"
)

type stubLayoutService struct {
	calls int
}

func (s *stubLayoutService) ConfigureLayout(context.Context, dashboard.ViewerContext) (dashboard.Layout, error) {
	s.calls++
	return dashboard.Layout{Areas: map[string][]dashboard.Panel{}}, nil
}

type stubAreaService struct {
	calls int
	area  string
}

func (s *stubAreaService) ResolveArea(_ context.Context, _ dashboard.ViewerContext, area string) (dashboard.ResolvedArea, error) {
	s.calls++
	s.area = area
	return dashboard.ResolvedArea{AreaCode: area}, nil
}

type stubOptionService struct {
	err error
}

func (s stubOptionService) PanelOption(_ context.Context, _ dashboard.ViewerContext, panelID string) (chart.OptionTree, error) {
	if s.err != nil {
		return nil, s.err
	}
	return chart.OptionTree{"title": map[string]any{"text": panelID}}, nil
}

func TestLayoutQuery(t *testing.T) {
	service := &stubLayoutService{}
	query := NewLayoutQuery(service)
	_, err := query.Query(context.Background(), dashboard.ViewerContext{})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if service.calls != 1 {
		t.Fatalf("expected 1 call, got %d", service.calls)
	}
}

func TestAreaQuery(t *testing.T) {
	service := &stubAreaService{}
	query := NewAreaQuery(service)
	area, err := query.Query(context.Background(), AreaInput{AreaCode: dashboard.AreaMain})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if service.calls != 1 || area.AreaCode != dashboard.AreaMain {
		t.Fatalf("unexpected area resolution: calls=%d area=%q", service.calls, area.AreaCode)
	}
}

func TestPanelOptionQuery(t *testing.T) {
	query := NewPanelOptionQuery(stubOptionService{})
	got, err := query.Query(context.Background(), PanelOptionInput{PanelID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "p1", got.PanelID)
	assert.Equal(t, "p1", got.Option["title"].(map[string]any)["text"])

	query = NewPanelOptionQuery(stubOptionService{err: dashboard.ErrPanelNotFound})
	_, err = query.Query(context.Background(), PanelOptionInput{PanelID: "missing"})
	assert.ErrorIs(t, err, dashboard.ErrPanelNotFound)
}

func TestDiagnosticsQueryAgainstLiveSession(t *testing.T) {
	ctx := context.Background()
	engine, err := echarts.NewEngine()
	require.NoError(t, err)

	store := dashboard.NewInMemoryPanelStore()
	require.NoError(t, dashboard.RegisterAreas(ctx, store))
	service := dashboard.NewService(dashboard.Options{
		PanelStore: store,
		Sessions:   dashboard.NewSessionStore(engine),
	})
	require.NoError(t, dashboard.SeedLayout(ctx, service))

	session, err := service.OpenSession(ctx, dashboard.ViewerContext{UserID: "ops"})
	require.NoError(t, err)
	charts := session.Charts()
	require.NotEmpty(t, charts)

	query := NewDiagnosticsQuery(service)
	got, err := query.Query(ctx, DiagnosticsInput{SessionID: session.ID(), PanelID: charts[0].PanelID})
	require.NoError(t, err)
	assert.Equal(t, charts[0].PanelID, got.Chart.PanelID)
	assert.Equal(t, charts[0].Container.ID, got.Chart.Container.ID)

	_, err = query.Query(ctx, DiagnosticsInput{SessionID: session.ID(), PanelID: "nope"})
	assert.True(t, errors.Is(err, dashboard.ErrPanelNotFound))

	_, err = query.Query(ctx, DiagnosticsInput{SessionID: "missing", PanelID: charts[0].PanelID})
	assert.ErrorIs(t, err, dashboard.ErrSessionNotFound)
}
