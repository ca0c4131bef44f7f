package dashboard

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-chartkit/components/chart"
)

// PropsFromConfig converts a panel configuration map into chart props. The
// kind comes from the configuration when present, otherwise from fallback.
func PropsFromConfig(fallback chart.Kind, cfg map[string]any) (chart.Props, error) {
	if cfg == nil {
		cfg = map[string]any{}
	}
	kind := fallback
	if raw := stringValue(cfg["kind"], ""); raw != "" {
		parsed, err := chart.ParseKind(raw)
		if err != nil {
			return chart.Props{}, fmt.Errorf("dashboard: %w", err)
		}
		kind = parsed
	}
	if kind == "" {
		return chart.Props{}, fmt.Errorf("dashboard: chart kind is required")
	}

	props := chart.Props{
		Kind:       kind,
		Title:      stringValue(cfg["title"], ""),
		Series:     parseSeries(cfg["series"]),
		XAxisData:  anySliceValue(cfg["x_axis"]),
		YAxisData:  anySliceValue(cfg["y_axis"]),
		XAxisName:  stringValue(cfg["x_axis_name"], ""),
		YAxisName:  stringValue(cfg["y_axis_name"], ""),
		LegendData: stringSliceValue(cfg["legend"]),
		Horizontal: boolValue(cfg["horizontal"]),
		Height:     stringValue(cfg["height"], ""),
		MapName:    stringValue(cfg["map_name"], ""),
		Formatters: parseFormatters(cfg["formatters"]),
		VisualMap:  parseVisualMap(cfg["visual_map"]),
	}
	if override, ok := cfg["override"].(map[string]any); ok && len(override) > 0 {
		props.Override = chart.OptionTree(cloneConfig(override))
	}
	return props, nil
}

func parseSeries(v any) []chart.SeriesSpec {
	items, ok := v.([]any)
	if !ok {
		if typed, ok := v.([]map[string]any); ok {
			items = make([]any, len(typed))
			for i, m := range typed {
				items[i] = m
			}
		}
	}
	if len(items) == 0 {
		return nil
	}
	out := make([]chart.SeriesSpec, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, buildSeries(m))
	}
	return out
}

func buildSeries(m map[string]any) chart.SeriesSpec {
	spec := chart.SeriesSpec{
		Name:       stringValue(m["name"], ""),
		Kind:       chart.Kind(strings.ToLower(stringValue(m["type"], ""))),
		Data:       parseData(m["data"]),
		Color:      stringValue(m["color"], ""),
		Colors:     stringSliceValue(m["colors"]),
		Stack:      stringValue(m["stack"], ""),
		Symbol:     stringValue(m["symbol"], ""),
		SymbolSize: float64Value(m["symbol_size"]),
		LineStyle:  mapValue(m["line_style"]),
		ItemStyle:  mapValue(m["item_style"]),
		AreaStyle:  mapValue(m["area_style"]),
		Extra:      mapValue(m["extra"]),
	}
	if raw, ok := m["smooth"]; ok {
		smooth := boolValue(raw)
		spec.Smooth = &smooth
	}
	return spec
}

// parseData keeps a nil data list distinct from an empty one so combo
// validation can report the difference.
func parseData(v any) []any {
	var items []any
	switch val := v.(type) {
	case nil:
		return nil
	case []any:
		items = val
	case []float64:
		items = make([]any, len(val))
		for i, f := range val {
			items[i] = f
		}
	case []int:
		items = make([]any, len(val))
		for i, n := range val {
			items[i] = float64(n)
		}
	default:
		return nil
	}
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = dataItem(item)
	}
	return out
}

func dataItem(v any) any {
	switch val := v.(type) {
	case map[string]any:
		if name, ok := val["name"].(string); ok {
			return chart.DataPoint{
				Name:      name,
				Value:     dataItem(val["value"]),
				ItemStyle: mapValue(val["item_style"]),
			}
		}
		return cloneConfig(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = dataItem(item)
		}
		return out
	case int, int64, int32, float32, json.Number:
		return float64Value(val)
	default:
		return val
	}
}

func parseFormatters(v any) chart.Formatters {
	m, ok := v.(map[string]any)
	if !ok {
		return chart.Formatters{}
	}
	return chart.Formatters{
		Tooltip:    chart.Formatter(stringValue(m["tooltip"], "")),
		XAxisLabel: chart.Formatter(stringValue(m["x_axis_label"], "")),
		YAxisLabel: chart.Formatter(stringValue(m["y_axis_label"], "")),
		BarLabel:   chart.Formatter(stringValue(m["bar_label"], "")),
		Label:      chart.Formatter(stringValue(m["label"], "")),
		Legend:     chart.Formatter(stringValue(m["legend"], "")),
	}
}

func parseVisualMap(v any) *chart.VisualMap {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	vm := &chart.VisualMap{
		Min:        float64Value(m["min"]),
		Max:        float64Value(m["max"]),
		Colors:     stringSliceValue(m["colors"]),
		Text:       stringSliceValue(m["text"]),
		Calculable: boolValue(m["calculable"]),
		Orient:     stringValue(m["orient"], ""),
		Left:       stringValue(m["left"], ""),
		Right:      stringValue(m["right"], ""),
		Top:        stringValue(m["top"], ""),
		Bottom:     stringValue(m["bottom"], ""),
	}
	if raw, ok := m["dimension"]; ok {
		dim := int(float64Value(raw))
		vm.Dimension = &dim
	}
	return vm
}

func anySliceValue(v any) []any {
	switch val := v.(type) {
	case []any:
		return append([]any(nil), val...)
	case []string:
		out := make([]any, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out
	default:
		return nil
	}
}

func mapValue(v any) map[string]any {
	m, ok := v.(map[string]any)
	if !ok || len(m) == 0 {
		return nil
	}
	return cloneConfig(m)
}

func stringSliceValue(v any) []string {
	switch val := v.(type) {
	case []string:
		return append([]string(nil), val...)
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func stringValue(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

func float64Value(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return 0
}

func boolValue(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return strings.EqualFold(val, "true")
	case int:
		return val != 0
	case int64:
		return val != 0
	default:
		return false
	}
}
