package analytics

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-chartkit/components/chart"
	"github.com/goliatone/go-chartkit/components/dashboard"
)

// SeriesProvider is a dashboard.Provider that reads presentation settings
// from the panel configuration and data from a SeriesClient.
type SeriesProvider struct {
	client SeriesClient
	base   dashboard.Provider
}

// NewSeriesProvider wraps client. Configuration-driven props come from a
// dashboard.ConfigProvider.
func NewSeriesProvider(client SeriesClient) *SeriesProvider {
	return &SeriesProvider{client: client, base: dashboard.NewConfigProvider()}
}

var _ dashboard.Provider = (*SeriesProvider)(nil)

// Props fetches the panel series and overlays them on the configured props.
func (p *SeriesProvider) Props(ctx context.Context, meta dashboard.PanelContext) (chart.Props, error) {
	if p.client == nil {
		return chart.Props{}, errors.New("analytics: series client is required")
	}
	props, err := p.base.Props(ctx, meta)
	if err != nil {
		return chart.Props{}, err
	}
	query := SeriesQuery{
		PanelID:    meta.Panel.ID,
		Definition: meta.Definition.Code,
		Kind:       props.Kind,
		Locale:     meta.Viewer.Locale,
	}
	if r, ok := meta.Panel.Configuration["range"].(string); ok {
		query.Range = r
	}
	report, err := p.client.FetchSeries(ctx, query)
	if err != nil {
		return chart.Props{}, fmt.Errorf("analytics: panel %s: %w", meta.Panel.ID, err)
	}
	if len(report.Series) > 0 {
		props.Series = report.Series
	}
	if len(report.XAxis) > 0 {
		props.XAxisData = report.XAxis
	}
	if len(report.YAxis) > 0 {
		props.YAxisData = report.YAxis
	}
	if len(report.Legend) > 0 {
		props.LegendData = report.Legend
	}
	return props, nil
}

// Register installs a SeriesProvider for each definition code.
func Register(registry dashboard.ProviderRegistry, client SeriesClient, codes ...string) error {
	provider := NewSeriesProvider(client)
	var errs error
	for _, code := range codes {
		if err := registry.RegisterProvider(code, provider); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}
