package chart

func buildScatter(props Props, palette Palette) (OptionTree, error) {
	tree := baseTree(props, palette)
	tooltip := tree["tooltip"].(map[string]any)
	tooltip["axisPointer"] = map[string]any{"type": "cross"}

	hasLegend := len(props.LegendData) > 0
	if hasLegend {
		tree["legend"] = map[string]any{
			"data":      stringsToAny(props.LegendData),
			"top":       30,
			"textStyle": map[string]any{"color": palette.SubText},
		}
	}
	tree["grid"] = cartesianGrid(hasLegend, props.VisualMap != nil)

	xAxis := cartesianAxis("value", nil, props.XAxisName, 30, true, palette, props.Formatters.XAxisLabel)
	xAxis["axisLine"] = axisLineOption(false, palette)
	tree["xAxis"] = xAxis
	tree["yAxis"] = cartesianAxis("value", nil, props.YAxisName, 45, true, palette, props.Formatters.YAxisLabel)

	series := make([]any, 0, len(props.Series))
	for i, s := range props.Series {
		entry := map[string]any{
			"type":       "scatter",
			"symbolSize": 10,
			"itemStyle":  map[string]any{"color": itemColor(s, i, palette)},
		}
		applySeriesSpec(entry, s)
		series = append(series, entry)
	}
	tree["series"] = series

	if vm := visualMapOption(props.VisualMap, palette); vm != nil {
		tree["visualMap"] = vm
	}
	return tree, nil
}

// cartesianGrid is shared by the scatter and combo layouts: the legend row
// pushes the plot down and a visual map reserves room on the right.
func cartesianGrid(legend, visualMap bool) map[string]any {
	top, right := 50, 40
	if legend {
		top = 70
	}
	if visualMap {
		right = 80
	}
	return map[string]any{
		"top":          top,
		"bottom":       50,
		"left":         60,
		"right":        right,
		"containLabel": true,
	}
}
