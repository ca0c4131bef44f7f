package chart

func buildLine(props Props, palette Palette) (OptionTree, error) {
	tree := baseTree(props, palette)
	tree["legend"] = legendOption(palette, props.LegendData)
	tree["grid"] = map[string]any{
		"containLabel": true,
		"top":          0,
		"bottom":       0,
		"left":         0,
		"right":        0,
	}

	xAxis := cartesianAxis("category", props.XAxisData, props.XAxisName, 30, false, palette, props.Formatters.XAxisLabel)
	xAxis["boundaryGap"] = false
	delete(xAxis, "splitLine")
	tree["xAxis"] = xAxis

	yAxis := cartesianAxis("value", nil, props.YAxisName, 45, true, palette, props.Formatters.YAxisLabel)
	yAxis["nameTextStyle"] = map[string]any{
		"color":   palette.SubText,
		"padding": []any{0, 0, 0, 50},
	}
	tree["yAxis"] = yAxis

	series := make([]any, 0, len(props.Series))
	for i, s := range props.Series {
		entry := map[string]any{
			"type":       "line",
			"symbol":     "circle",
			"symbolSize": 6,
			"lineStyle":  map[string]any{"width": 2},
			"itemStyle":  map[string]any{"color": itemColor(s, i, palette)},
			"areaStyle":  map[string]any{"opacity": 0.1},
		}
		applySeriesSpec(entry, s)
		series = append(series, entry)
	}
	tree["series"] = series
	return tree, nil
}
