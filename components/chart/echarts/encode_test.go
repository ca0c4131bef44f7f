package echarts

import (
	"testing"

	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-chartkit/components/chart"
)

func TestEncodePlainTree(t *testing.T) {
	t.Parallel()

	out, err := Encode(chart.OptionTree{
		"backgroundColor": "transparent",
		"tooltip":         map[string]any{"formatter": "{b} <{c}>"},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"backgroundColor":"transparent","tooltip":{"formatter":"{b} <{c}>"}}`, out)
}

func TestEncodeEmitsFunctionsUnquoted(t *testing.T) {
	t.Parallel()

	fn := string(opts.FuncOpts(`function (p) { return p.name + ": " + p.value; }`))
	out, err := Encode(chart.OptionTree{"tooltip": map[string]any{"formatter": fn}})
	require.NoError(t, err)
	assert.Equal(t, `{"tooltip":{"formatter":function (p) { return p.name + ": " + p.value; }}}`, out)
	assert.NotContains(t, out, funcMarker)
}

func TestEncodeEmptyTree(t *testing.T) {
	t.Parallel()

	out, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", out)
}

func TestScriptSafe(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `"<\/script>"`, scriptSafe(`"</script>"`))
}
