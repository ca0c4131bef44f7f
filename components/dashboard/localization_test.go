package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/goodsign/monday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-chartkit/components/chart"
	"github.com/goliatone/go-chartkit/pkg/format"
)

func TestViewerLocale(t *testing.T) {
	cases := map[string]monday.Locale{
		"":      format.DefaultLocale,
		"es-mx": monday.Locale("es_MX"),
		"fr_FR": monday.LocaleFrFR,
		"de":    monday.LocaleDeDE,
		"xx":    format.DefaultLocale,
	}
	for input, want := range cases {
		assert.Equal(t, want, ViewerLocale(ViewerContext{Locale: input}), "locale %q", input)
	}
}

func TestDateLabeler(t *testing.T) {
	day := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

	label, err := DateLabeler(DateFormatWeekdayShort, monday.LocaleEnUS)
	require.NoError(t, err)
	assert.Equal(t, "Mon", label(day))

	label, err = DateLabeler(DateFormatMonth, monday.LocaleEsES)
	require.NoError(t, err)
	assert.Equal(t, "junio", label(day))

	label, err = DateLabeler("", monday.LocaleEnUS)
	require.NoError(t, err)
	assert.Equal(t, "Jun 2", label(day))

	_, err = DateLabeler("fortnight", monday.LocaleEnUS)
	assert.Error(t, err)
}

func TestLocalizeDateAxisLeavesInputUntouched(t *testing.T) {
	cfg := map[string]any{
		"title":        "Revenue",
		"x_axis_dates": []any{"2025-06-02T00:00:00", "not-a-date"},
		"date_format":  DateFormatMonthShort,
	}
	out, err := localizeDateAxis(cfg, monday.LocaleEnUS)
	require.NoError(t, err)
	assert.Equal(t, []any{"Jun", "not-a-date"}, out["x_axis"])
	assert.NotContains(t, out, "x_axis_dates")
	assert.NotContains(t, out, "date_format")
	assert.Contains(t, cfg, "x_axis_dates")

	plain := map[string]any{"title": "Plain"}
	out, err = localizeDateAxis(plain, monday.LocaleEnUS)
	require.NoError(t, err)
	assert.Equal(t, plain, out)
}

func TestConfigProviderLocalizesDates(t *testing.T) {
	provider := NewConfigProvider()
	meta := PanelContext{
		Panel: Panel{Configuration: map[string]any{
			"x_axis_dates": []any{"2025-06-02T00:00:00"},
			"date_format":  DateFormatWeekday,
			"series":       []any{map[string]any{"name": "s", "data": []any{1}}},
		}},
		Definition: PanelDefinition{Kind: chart.KindBar},
		Viewer:     ViewerContext{Locale: "fr"},
	}
	props, err := provider.Props(context.Background(), meta)
	require.NoError(t, err)
	assert.Equal(t, []any{"lundi"}, props.XAxisData)

	meta.Viewer.Locale = ""
	props, err = provider.Props(context.Background(), meta)
	require.NoError(t, err)
	assert.Equal(t, []any{"Monday"}, props.XAxisData)
}
