package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-chartkit/components/chart"
)

func TestConfigProviderUsesDefinition(t *testing.T) {
	provider := NewConfigProvider(WithConfigDefaults(map[string]any{"title": "Fallback", "height": "200px"}))
	props, err := provider.Props(context.Background(), PanelContext{
		Panel:      Panel{Configuration: map[string]any{"title": "Orders"}},
		Definition: PanelDefinition{Kind: chart.KindLine, Height: "320px"},
		DarkMode:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, chart.KindLine, props.Kind)
	assert.Equal(t, "Orders", props.Title)
	assert.Equal(t, "200px", props.Height)
	assert.True(t, props.DarkMode)
}

func TestConfigProviderDefinitionHeightFallback(t *testing.T) {
	props, err := NewConfigProvider().Props(context.Background(), PanelContext{
		Definition: PanelDefinition{Kind: chart.KindPie, Height: "320px"},
	})
	require.NoError(t, err)
	assert.Equal(t, "320px", props.Height)
	assert.False(t, props.DarkMode)
}

func TestConfigProviderPinnedKind(t *testing.T) {
	props, err := NewConfigProvider(WithProviderKind(chart.KindScatter)).Props(context.Background(), PanelContext{
		Definition: PanelDefinition{Kind: chart.KindBar},
	})
	require.NoError(t, err)
	assert.Equal(t, chart.KindScatter, props.Kind)

	_, err = NewConfigProvider().Props(context.Background(), PanelContext{
		Panel:      Panel{Configuration: map[string]any{"x_axis_dates": []any{"2025-01-01"}, "date_format": "bogus"}},
		Definition: PanelDefinition{Kind: chart.KindBar},
	})
	assert.Error(t, err)
}

func TestRegistryRegistersConfigProviders(t *testing.T) {
	reg := NewRegistry()
	for _, def := range DefaultPanelDefinitions() {
		_, ok := reg.Definition(def.Code)
		assert.True(t, ok, def.Code)
		provider, ok := reg.Provider(def.Code)
		require.True(t, ok, def.Code)
		assert.IsType(t, &ConfigProvider{}, provider)
	}
	defs := reg.Definitions()
	for i := 1; i < len(defs); i++ {
		assert.Less(t, defs[i-1].Code, defs[i].Code)
	}
}

func TestRegistryRejectsInvalidEntries(t *testing.T) {
	reg := NewEmptyRegistry()
	assert.Error(t, reg.RegisterDefinition(PanelDefinition{}))
	assert.Error(t, reg.RegisterDefinition(PanelDefinition{Code: "x", Kind: "radar"}))
	assert.Error(t, reg.RegisterProvider("missing", NewConfigProvider()))
	require.NoError(t, reg.RegisterDefinition(PanelDefinition{Code: "x", Kind: chart.KindBar}))
	assert.Error(t, reg.RegisterProvider("x", nil))
	assert.Error(t, reg.RegisterProvider("", NewConfigProvider()))
	assert.NoError(t, reg.RegisterProvider("x", NewConfigProvider()))
}
