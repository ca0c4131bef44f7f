package chartkit

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-chartkit/components/chart"
	"github.com/goliatone/go-chartkit/components/chart/echarts"
	"github.com/goliatone/go-chartkit/components/dashboard"
)

// Renderers load their templates from the embedded filesystem, so they work
// from any working directory, including this package's.
func TestEmbeddedTemplatesRenderFromAnyPackage(t *testing.T) {
	engine, err := echarts.NewEngine()
	require.NoError(t, err)

	instance, err := engine.Init(chart.Container{ID: "revenue-chart"})
	require.NoError(t, err)
	require.NoError(t, engine.SetOption(instance, chart.OptionTree{
		"xAxis":  map[string]any{"type": "category", "data": []any{"a", "b"}},
		"yAxis":  map[string]any{"type": "value"},
		"series": []any{map[string]any{"type": "bar", "data": []any{1, 2}}},
	}))

	page, err := engine.RenderPage("Revenue", instance.ID())
	require.NoError(t, err)
	assert.Contains(t, page, "revenue-chart")
	assert.Contains(t, page, "Revenue")

	renderer, err := dashboard.NewTemplateRenderer()
	require.NoError(t, err)
	controller := dashboard.NewController(dashboard.ControllerOptions{
		Service:  newPageService(t, engine),
		Renderer: renderer,
		Charts:   engine,
	})
	var buf bytes.Buffer
	require.NoError(t, controller.RenderTemplate(context.Background(), dashboard.PageRequest{
		Viewer: dashboard.ViewerContext{UserID: "ops"},
	}, &buf))
	assert.Contains(t, buf.String(), "<title>Dashboard</title>")
	assert.Contains(t, buf.String(), "data-instance=")
}

func newPageService(t *testing.T, engine *echarts.Engine) *dashboard.Service {
	t.Helper()
	ctx := context.Background()
	store := dashboard.NewInMemoryPanelStore()
	require.NoError(t, dashboard.RegisterAreas(ctx, store))
	service := dashboard.NewService(dashboard.Options{
		PanelStore: store,
		Sessions:   dashboard.NewSessionStore(engine),
	})
	require.NoError(t, dashboard.SeedLayout(ctx, service))
	return service
}
