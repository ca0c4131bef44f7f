package chart

import (
	"strings"

	"github.com/go-echarts/go-echarts/v2/opts"
)

// formatterValue converts a Formatter into its option tree form. Function
// sources go through go-echarts' function marker so the encoder emits them
// as raw JavaScript; string templates pass through unchanged.
func formatterValue(f Formatter) any {
	src := strings.TrimSpace(string(f))
	if src == "" {
		return nil
	}
	if isFunctionSource(src) {
		return string(opts.FuncOpts(src))
	}
	return src
}

func isFunctionSource(src string) bool {
	return strings.HasPrefix(src, "function") || strings.Contains(src, "=>")
}

func setIf(m map[string]any, key string, value any) {
	switch v := value.(type) {
	case nil:
		return
	case string:
		if v == "" {
			return
		}
	case []any:
		if len(v) == 0 {
			return
		}
	case map[string]any:
		if v == nil {
			return
		}
	}
	m[key] = value
}

func baseTree(props Props, palette Palette) OptionTree {
	tree := OptionTree{
		"backgroundColor": palette.Background,
		"tooltip":         tooltipOption(props.Kind.axisTrigger(), palette, props.Formatters.Tooltip),
	}
	if title := titleOption(props.Title, palette); title != nil {
		tree["title"] = title
	}
	return tree
}

func titleOption(text string, palette Palette) map[string]any {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return map[string]any{
		"text": text,
		"left": "center",
		"textStyle": map[string]any{
			"fontSize":   16,
			"fontWeight": "bold",
			"color":      palette.Text,
		},
	}
}

func tooltipOption(axis bool, palette Palette, formatter Formatter) map[string]any {
	trigger := "item"
	if axis {
		trigger = "axis"
	}
	tooltip := map[string]any{
		"trigger":         trigger,
		"backgroundColor": palette.TooltipBackground,
		"borderColor":     palette.TooltipBorder,
		"textStyle":       map[string]any{"color": palette.TooltipText},
	}
	setIf(tooltip, "formatter", formatterValue(formatter))
	return tooltip
}

func axisLabelOption(palette Palette, formatter Formatter) map[string]any {
	label := map[string]any{"color": palette.SubText}
	setIf(label, "formatter", formatterValue(formatter))
	return label
}

func splitLineOption(show bool, palette Palette) map[string]any {
	return map[string]any{
		"show": show,
		"lineStyle": map[string]any{
			"type":  "dashed",
			"color": palette.SplitLine,
		},
	}
}

func axisLineOption(show bool, palette Palette) map[string]any {
	line := map[string]any{
		"lineStyle": map[string]any{"color": palette.AxisLine},
	}
	if show {
		line["show"] = true
	}
	return line
}

func legendOption(palette Palette, data []string) map[string]any {
	legend := map[string]any{
		"show":      len(data) > 0,
		"textStyle": map[string]any{"color": palette.SubText},
	}
	if len(data) > 0 {
		legend["data"] = stringsToAny(data)
	}
	return legend
}

// cartesianAxis builds an x or y axis. Category axes carry data, value axes
// carry the dashed split line when splitLine is true.
func cartesianAxis(axisType string, data []any, name string, nameGap int, splitLine bool, palette Palette, formatter Formatter) map[string]any {
	axis := map[string]any{
		"type":          axisType,
		"nameLocation":  "middle",
		"nameTextStyle": map[string]any{"color": palette.SubText},
		"axisLabel":     axisLabelOption(palette, formatter),
		"axisLine":      axisLineOption(axisType == "value", palette),
		"splitLine":     splitLineOption(splitLine, palette),
	}
	if axisType == "category" && len(data) > 0 {
		axis["data"] = cloneValue(data)
	}
	if name != "" {
		axis["name"] = name
		axis["nameGap"] = nameGap
	}
	return axis
}

func seriesData(data []any) []any {
	out := make([]any, len(data))
	for i, item := range data {
		switch v := item.(type) {
		case DataPoint:
			out[i] = dataPointValue(v)
		case *DataPoint:
			if v != nil {
				out[i] = dataPointValue(*v)
			}
		default:
			out[i] = cloneValue(v)
		}
	}
	return out
}

func dataPointValue(p DataPoint) map[string]any {
	m := map[string]any{"name": p.Name, "value": cloneValue(p.Value)}
	if len(p.ItemStyle) > 0 {
		m["itemStyle"] = cloneMap(p.ItemStyle)
	}
	return m
}

// dataNames returns the names of named data items, in order.
func dataNames(data []any) []any {
	var names []any
	for _, item := range data {
		switch v := item.(type) {
		case DataPoint:
			names = append(names, v.Name)
		case *DataPoint:
			if v != nil {
				names = append(names, v.Name)
			}
		case map[string]any:
			if name, ok := v["name"].(string); ok {
				names = append(names, name)
			}
		}
	}
	return names
}

// applySeriesSpec layers the caller's series fields over a default series
// entry. Style maps are merged so kind defaults survive partial overrides.
func applySeriesSpec(entry map[string]any, s SeriesSpec) {
	setIf(entry, "name", s.Name)
	entry["data"] = seriesData(s.Data)
	setIf(entry, "stack", s.Stack)
	if s.Smooth != nil {
		entry["smooth"] = *s.Smooth
	}
	setIf(entry, "symbol", s.Symbol)
	if s.SymbolSize > 0 {
		entry["symbolSize"] = s.SymbolSize
	}
	for key, style := range map[string]map[string]any{
		"lineStyle": s.LineStyle,
		"itemStyle": s.ItemStyle,
		"areaStyle": s.AreaStyle,
	} {
		if len(style) == 0 {
			continue
		}
		entry[key] = mergeValue(entry[key], style)
	}
	for key, value := range s.Extra {
		entry[key] = mergeValue(entry[key], value)
	}
}

// itemColor returns the explicit series color or the category color at index.
func itemColor(s SeriesSpec, index int, palette Palette) string {
	if s.Color != "" {
		return s.Color
	}
	return palette.CategoryColor(index)
}

func stringsToAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func visualMapOption(vm *VisualMap, palette Palette) map[string]any {
	if vm == nil {
		return nil
	}
	out := map[string]any{
		"min":        vm.Min,
		"max":        vm.Max,
		"calculable": vm.Calculable,
		"textStyle":  map[string]any{"color": palette.Text},
	}
	if len(vm.Colors) > 0 {
		out["inRange"] = map[string]any{"color": stringsToAny(vm.Colors)}
	}
	if len(vm.Text) > 0 {
		out["text"] = stringsToAny(vm.Text)
	}
	if vm.Dimension != nil {
		out["dimension"] = *vm.Dimension
	}
	setIf(out, "orient", vm.Orient)
	setIf(out, "left", vm.Left)
	setIf(out, "right", vm.Right)
	setIf(out, "top", vm.Top)
	setIf(out, "bottom", vm.Bottom)
	return out
}
