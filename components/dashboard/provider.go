package dashboard

import (
	"context"

	"github.com/goliatone/go-chartkit/components/chart"
)

// Provider turns a panel into the chart props rendered for a viewer.
type Provider interface {
	Props(ctx context.Context, meta PanelContext) (chart.Props, error)
}

// ProviderFunc adapts a function into a Provider.
type ProviderFunc func(ctx context.Context, meta PanelContext) (chart.Props, error)

// Props implements Provider.
func (f ProviderFunc) Props(ctx context.Context, meta PanelContext) (chart.Props, error) {
	return f(ctx, meta)
}

// PanelContext contains the metadata needed by providers.
type PanelContext struct {
	Panel      Panel
	Definition PanelDefinition
	Viewer     ViewerContext
	DarkMode   bool
}
