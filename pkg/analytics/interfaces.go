// Package analytics sources panel series from remote BI services.
package analytics

import (
	"context"

	"github.com/goliatone/go-chartkit/components/chart"
)

// SeriesQuery asks a remote source for the data of one panel.
type SeriesQuery struct {
	PanelID    string     `json:"panel_id"`
	Definition string     `json:"definition"`
	Kind       chart.Kind `json:"kind"`
	Locale     string     `json:"locale,omitempty"`
	// Range is taken from the panel's "range" configuration key, e.g. "7d".
	Range string `json:"range,omitempty"`
}

// SeriesReport is the chart data returned by a remote source. Empty fields
// leave the panel configuration untouched.
type SeriesReport struct {
	XAxis  []any              `json:"x_axis,omitempty"`
	YAxis  []any              `json:"y_axis,omitempty"`
	Legend []string           `json:"legend,omitempty"`
	Series []chart.SeriesSpec `json:"series,omitempty"`
}

// SeriesClient fetches panel series from upstream analytics services.
type SeriesClient interface {
	FetchSeries(ctx context.Context, query SeriesQuery) (SeriesReport, error)
}
