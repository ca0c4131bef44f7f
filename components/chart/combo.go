package chart

import (
	"encoding/json"
	"fmt"
	"math"
)

type comboBuilder struct{}

// ComboHorizontal reports whether a combo chart lays its categories on the y
// axis. Only y-axis data without x-axis data flips the layout; when both or
// neither are present the chart stays vertical unless props.Horizontal is set
// and no x-axis data exists.
func ComboHorizontal(props Props) bool {
	hasX, hasY := len(props.XAxisData) > 0, len(props.YAxisData) > 0
	switch {
	case hasY && !hasX:
		return true
	case hasX:
		return false
	default:
		return props.Horizontal
	}
}

// ValidateInput checks every series for a name and a non-empty numeric data
// sequence, and the category axis length against each series.
func (comboBuilder) ValidateInput(props Props) []string {
	if len(props.Series) == 0 {
		return []string{"No series data provided"}
	}
	var issues []string
	for i, s := range props.Series {
		if s.Name == "" {
			issues = append(issues, fmt.Sprintf("Series %d missing name", i))
		}
		switch {
		case s.Data == nil:
			issues = append(issues, fmt.Sprintf("Series %d (%s) has invalid data array", i, s.Name))
		case len(s.Data) == 0:
			issues = append(issues, fmt.Sprintf("Series %d (%s) has empty data array", i, s.Name))
		default:
			if invalid := countNonNumeric(s.Data); invalid > 0 {
				issues = append(issues, fmt.Sprintf("Series %d (%s) contains %d non-numeric values", i, s.Name, invalid))
			}
		}
	}
	axisName, axis := "X", props.XAxisData
	if ComboHorizontal(props) {
		axisName, axis = "Y", props.YAxisData
	}
	if len(axis) > 0 {
		for _, s := range props.Series {
			if len(s.Data) == 0 || len(s.Data) == len(axis) {
				continue
			}
			issues = append(issues, fmt.Sprintf("%s-axis data length (%d) doesn't match series data length (%d)", axisName, len(axis), len(s.Data)))
		}
	}
	return issues
}

func (comboBuilder) Build(props Props, palette Palette) (OptionTree, error) {
	horizontal := ComboHorizontal(props)
	tree := baseTree(props, palette)
	tooltip := tree["tooltip"].(map[string]any)
	tooltip["axisPointer"] = map[string]any{"type": "shadow"}

	hasLegend := len(props.LegendData) > 0
	if hasLegend {
		tree["legend"] = map[string]any{
			"data":      stringsToAny(props.LegendData),
			"top":       30,
			"textStyle": map[string]any{"color": palette.SubText},
		}
	}
	tree["grid"] = cartesianGrid(hasLegend, false)

	if horizontal {
		yGap := 45
		if props.YAxisName != "" {
			yGap = len(props.YAxisName)*6 + 20
		}
		tree["xAxis"] = cartesianAxis("value", nil, props.XAxisName, 30, true, palette, props.Formatters.XAxisLabel)
		tree["yAxis"] = cartesianAxis("category", props.YAxisData, props.YAxisName, yGap, false, palette, props.Formatters.YAxisLabel)
	} else {
		tree["xAxis"] = cartesianAxis("category", props.XAxisData, props.XAxisName, 30, false, palette, props.Formatters.XAxisLabel)
		tree["yAxis"] = cartesianAxis("value", nil, props.YAxisName, 45, true, palette, props.Formatters.YAxisLabel)
	}
	if y, ok := tree["yAxis"].(map[string]any); ok {
		y["axisLine"] = axisLineOption(true, palette)
	}

	series := make([]any, 0, len(props.Series))
	for i, s := range props.Series {
		kind := s.Kind
		if kind == "" {
			kind = KindBar
		}
		entry := map[string]any{
			"name": s.Name,
			"type": string(kind),
			"data": seriesData(s.Data),
		}
		setIf(entry, "stack", s.Stack)
		if s.Smooth != nil {
			entry["smooth"] = *s.Smooth
		}
		if len(s.LineStyle) > 0 {
			entry["lineStyle"] = cloneMap(s.LineStyle)
		}
		switch {
		case len(s.ItemStyle) > 0:
			entry["itemStyle"] = cloneMap(s.ItemStyle)
		case len(s.Colors) > 0:
			entry["color"] = stringsToAny(s.Colors)
		default:
			entry["itemStyle"] = map[string]any{"color": itemColor(s, i, palette)}
		}
		for key, value := range s.Extra {
			entry[key] = mergeValue(entry[key], value)
		}
		series = append(series, entry)
	}
	tree["series"] = series
	return tree, nil
}

func countNonNumeric(data []any) int {
	invalid := 0
	for _, v := range data {
		if !isNumeric(v) {
			invalid++
		}
	}
	return invalid
}

func isNumeric(v any) bool {
	switch n := v.(type) {
	case float64:
		return !math.IsNaN(n)
	case float32:
		return !math.IsNaN(float64(n))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case json.Number:
		f, err := n.Float64()
		return err == nil && !math.IsNaN(f)
	default:
		return false
	}
}
