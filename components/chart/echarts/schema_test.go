package echarts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-chartkit/components/chart"
)

func TestOptionValidatorAcceptsBuiltTrees(t *testing.T) {
	t.Parallel()

	v, err := DefaultOptionValidator()
	require.NoError(t, err)

	pipeline := chart.NewPipeline()
	for _, props := range []chart.Props{
		{Kind: chart.KindBar, XAxisData: []any{"a"}, Series: []chart.SeriesSpec{{Name: "S", Data: []any{1}}}},
		{Kind: chart.KindLine, XAxisData: []any{"a"}, Series: []chart.SeriesSpec{{Name: "S", Data: []any{1}}}},
		{Kind: chart.KindPie, Series: []chart.SeriesSpec{{Name: "S", Data: []any{chart.DataPoint{Name: "x", Value: 1}}}}},
		{Kind: chart.KindScatter, Series: []chart.SeriesSpec{{Name: "S", Data: []any{[]any{1, 2}}}}},
		{Kind: chart.KindMap, Series: []chart.SeriesSpec{{Name: "S", Data: []any{chart.DataPoint{Name: "x", Value: 1}}}}},
		{Kind: chart.KindCombo, XAxisData: []any{"a"}, Series: []chart.SeriesSpec{{Name: "S", Kind: chart.KindLine, Data: []any{1}}}},
	} {
		tree, err := pipeline.Compose(props)
		require.NoError(t, err, props.Kind)
		assert.NoError(t, v.Validate(tree), props.Kind)
	}
}

func TestOptionValidatorRejectsMalformedTrees(t *testing.T) {
	t.Parallel()

	v, err := DefaultOptionValidator()
	require.NoError(t, err)

	cases := map[string]chart.OptionTree{
		"unknown series type": {"series": []any{map[string]any{"type": "donut"}}},
		"series without type": {"series": []any{map[string]any{"name": "x"}}},
		"scalar grid":         {"grid": 10},
		"numeric background":  {"backgroundColor": 1},
	}
	for name, tree := range cases {
		t.Run(name, func(t *testing.T) {
			err := v.Validate(tree)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidOption))
		})
	}
}

func TestNewOptionValidatorRejectsBadSchema(t *testing.T) {
	t.Parallel()

	_, err := NewOptionValidator([]byte(`{"type": 12}`))
	assert.Error(t, err)
}
