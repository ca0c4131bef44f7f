package dashboard

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-chartkit/components/chart"
)

type stubRenderer struct {
	lastTemplate string
	lastPayload  map[string]any
	err          error
}

func (r *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	r.lastTemplate = name
	if payload, ok := data.(map[string]any); ok {
		r.lastPayload = payload
	}
	if r.err != nil {
		return "", r.err
	}
	if len(out) > 0 && out[0] != nil {
		_, _ = io.WriteString(out[0], "rendered")
	}
	return "rendered", nil
}

type failingThemeProvider struct{}

func (failingThemeProvider) SelectTheme(context.Context, ThemeSelector) (*ThemeSelection, error) {
	return nil, errors.New("theme unavailable")
}

func newTestController(t *testing.T, renderer Renderer) (*Controller, *Service, *fakeEngine) {
	t.Helper()
	svc, engine, _ := newTestService()
	controller := NewController(ControllerOptions{
		Service:  svc,
		Renderer: renderer,
		Charts:   engine,
	})
	return controller, svc, engine
}

func TestControllerPageGroupsChartsByArea(t *testing.T) {
	controller, svc, _ := newTestController(t, nil)
	main := mustAdd(t, svc, AreaMain, salesConfig("Sales"))
	footer := mustAdd(t, svc, AreaFooter, salesConfig("Footer"))

	page, err := controller.Page(context.Background(), PageRequest{
		Viewer: ViewerContext{UserID: "u1"},
		Path:   "/",
	})
	require.NoError(t, err)

	assert.Equal(t, "Dashboard", page.Title)
	assert.NotEmpty(t, page.SessionID)
	assert.Equal(t, ThemeVariantLight, page.Theme)
	assert.Contains(t, page.ThemeCSS, "--chart-background")
	assert.Equal(t, []string{"https://cdn.example.com/echarts.min.js"}, page.Scripts)
	require.Len(t, page.Areas, 3)
	assert.Equal(t, AreaMain, page.Areas[0].Code)
	require.Len(t, page.Areas[0].Charts, 1)
	assert.Equal(t, main.ID, page.Areas[0].Charts[0].PanelID)
	assert.Contains(t, page.Areas[0].Charts[0].Markup, `data-instance="inst-1"`)
	assert.False(t, page.Areas[0].Charts[0].Failed())
	assert.Empty(t, page.Areas[1].Charts)
	assert.Equal(t, footer.ID, page.Areas[2].Charts[0].PanelID)

	assert.Len(t, page.Cards, 4)
	assert.Equal(t, page.Cards[0].Card.Colors(false), page.Cards[0].Colors)
	assert.Equal(t, 4, page.Products.Total)
	assert.Equal(t, "dashboard", page.Active.ItemID)
}

func TestControllerPageShowsFailedCharts(t *testing.T) {
	controller, svc, engine := newTestController(t, nil)
	panel := mustAdd(t, svc, AreaMain, salesConfig("Sales"))
	engine.failApply(errEngineRejected)

	page, err := controller.Page(context.Background(), PageRequest{Viewer: ViewerContext{UserID: "u1"}})
	require.NoError(t, err)

	view := page.Areas[0].Charts[0]
	assert.Equal(t, panel.ID, view.PanelID)
	assert.True(t, view.Failed())
	assert.Equal(t, chart.StatusError, view.Status)
	assert.Contains(t, view.Error, errEngineRejected.Error())
	require.NotEmpty(t, view.Diagnostics)
	assert.LessOrEqual(t, len(view.Diagnostics), diagnosticsShown)
	assert.Equal(t, "Error rendering chart", view.Diagnostics[len(view.Diagnostics)-1].Message)
}

func TestControllerPageUsesDarkPreference(t *testing.T) {
	controller, svc, _ := newTestController(t, nil)
	viewer := ViewerContext{UserID: "u1"}
	require.NoError(t, svc.SetDarkMode(context.Background(), viewer, true))

	page, err := controller.Page(context.Background(), PageRequest{Viewer: viewer})
	require.NoError(t, err)
	assert.True(t, page.DarkMode)
	assert.Equal(t, ThemeVariantDark, page.Theme)
	assert.Equal(t, page.Cards[0].Card.Colors(true), page.Cards[0].Colors)
}

func TestControllerPageRejectsBadProductQuery(t *testing.T) {
	controller, _, _ := newTestController(t, nil)
	_, err := controller.Page(context.Background(), PageRequest{Products: ProductQuery{SortBy: "name"}})
	assert.Error(t, err)

	controller.opts.Theme = failingThemeProvider{}
	_, err = controller.Page(context.Background(), PageRequest{})
	assert.ErrorContains(t, err, "theme unavailable")
}

func TestControllerRenderTemplatePassesPayload(t *testing.T) {
	renderer := &stubRenderer{}
	controller, svc, _ := newTestController(t, renderer)
	mustAdd(t, svc, AreaMain, salesConfig("Sales"))

	var buf bytes.Buffer
	require.NoError(t, controller.RenderTemplate(context.Background(), PageRequest{Viewer: ViewerContext{UserID: "u1"}}, &buf))
	assert.Equal(t, DefaultDashboardTemplate, renderer.lastTemplate)
	assert.Equal(t, "rendered", buf.String())
	for _, key := range []string{"page", "title", "session", "theme", "dark", "theme_css", "scripts", "areas", "cards", "products", "menu", "active"} {
		assert.Contains(t, renderer.lastPayload, key)
	}

	renderer.err = errors.New("boom")
	assert.Error(t, controller.RenderTemplate(context.Background(), PageRequest{}, io.Discard))
}

func TestControllerRequiresCollaborators(t *testing.T) {
	_, err := NewController(ControllerOptions{}).Page(context.Background(), PageRequest{})
	assert.Error(t, err)

	svc, _, _ := newTestService()
	err = NewController(ControllerOptions{Service: svc}).RenderTemplate(context.Background(), PageRequest{}, io.Discard)
	assert.ErrorContains(t, err, "renderer")
}

func TestControllerRendersEmbeddedTemplate(t *testing.T) {
	renderer, err := NewTemplateRenderer()
	require.NoError(t, err)
	controller, svc, _ := newTestController(t, renderer)
	mustAdd(t, svc, AreaMain, salesConfig("Sales"))

	var buf bytes.Buffer
	require.NoError(t, controller.RenderTemplate(context.Background(), PageRequest{
		Viewer: ViewerContext{UserID: "u1"},
		Path:   "/products/list",
	}, &buf))
	html := buf.String()
	assert.Contains(t, html, "<title>Dashboard</title>")
	assert.Contains(t, html, `data-instance="inst-1"`)
	assert.Contains(t, html, "iPhone 15 Pro")
	assert.Equal(t, 4, strings.Count(html, `class="chartkit-card"`))
	assert.Equal(t, 1, strings.Count(html, `chartkit-menu-item active`))
	assert.Contains(t, html, `<a href="/products/list">Products</a>`)
	assert.NotContains(t, html, `chartkit-menu-sub active`)
	assert.NotContains(t, html, `data-panel=""`)
}
