package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-chartkit/components/chart"
	"github.com/goliatone/go-chartkit/components/dashboard"
)

func TestSeriesProviderOverlaysRemoteData(t *testing.T) {
	client := NewMockClient(map[string]SeriesReport{
		dashboard.DefinitionBar: {
			XAxis:  []any{"Q1", "Q2"},
			Legend: []string{"Remote"},
			Series: []chart.SeriesSpec{{Name: "Remote", Data: []any{1, 2}}},
		},
	})
	provider := NewSeriesProvider(client)

	props, err := provider.Props(context.Background(), dashboard.PanelContext{
		Panel: dashboard.Panel{ID: "p1", DefinitionID: dashboard.DefinitionBar, Configuration: map[string]any{
			"title":  "Revenue",
			"range":  "30d",
			"x_axis": []any{"local"},
		}},
		Definition: dashboard.PanelDefinition{Code: dashboard.DefinitionBar, Kind: chart.KindBar},
		DarkMode:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Revenue", props.Title)
	assert.True(t, props.DarkMode)
	assert.Equal(t, []any{"Q1", "Q2"}, props.XAxisData)
	assert.Equal(t, []string{"Remote"}, props.LegendData)
	require.Len(t, props.Series, 1)
	assert.Equal(t, "Remote", props.Series[0].Name)
	assert.Equal(t, 1, client.Calls())
}

func TestSeriesProviderSurfacesClientErrors(t *testing.T) {
	provider := NewSeriesProvider(NewMockClient(nil))
	_, err := provider.Props(context.Background(), dashboard.PanelContext{
		Panel:      dashboard.Panel{ID: "p9"},
		Definition: dashboard.PanelDefinition{Code: "ops.panel.none", Kind: chart.KindLine},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "p9")

	_, err = (&SeriesProvider{}).Props(context.Background(), dashboard.PanelContext{})
	assert.Error(t, err)
}

func TestRegisterWiresServicePanels(t *testing.T) {
	ctx := context.Background()
	store := dashboard.NewInMemoryPanelStore()
	require.NoError(t, dashboard.RegisterAreas(ctx, store))
	service := dashboard.NewService(dashboard.Options{PanelStore: store})

	client := NewMockClient(map[string]SeriesReport{
		dashboard.DefinitionLine: {
			XAxis:  []any{"Jan", "Feb", "Mar"},
			Series: []chart.SeriesSpec{{Name: "Visitors", Data: []any{10, 20, 30}}},
		},
	})
	require.NoError(t, Register(service.Registry(), client, dashboard.DefinitionLine))
	assert.Error(t, Register(service.Registry(), client, "ops.panel.unknown"))

	panel, err := service.AddPanel(ctx, dashboard.AddPanelRequest{
		DefinitionID:  dashboard.DefinitionLine,
		AreaCode:      dashboard.AreaMain,
		Configuration: map[string]any{"title": "Traffic"},
	})
	require.NoError(t, err)

	props, err := service.PanelProps(ctx, dashboard.ViewerContext{UserID: "ops"}, panel.ID)
	require.NoError(t, err)
	assert.Equal(t, []any{"Jan", "Feb", "Mar"}, props.XAxisData)
	assert.Equal(t, "Visitors", props.Series[0].Name)
}
