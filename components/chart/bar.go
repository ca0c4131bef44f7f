package chart

func buildBar(props Props, palette Palette) (OptionTree, error) {
	horizontal := props.Horizontal
	tree := baseTree(props, palette)
	tooltip := tree["tooltip"].(map[string]any)
	tooltip["axisPointer"] = map[string]any{"type": "shadow"}

	tree["legend"] = legendOption(palette, props.LegendData)
	tree["grid"] = map[string]any{
		"containLabel": true,
		"top":          10,
		"bottom":       10,
		"left":         10,
		"right":        10,
	}

	categories := props.XAxisData
	if horizontal && len(props.YAxisData) > 0 {
		categories = props.YAxisData
	}
	if horizontal {
		tree["xAxis"] = cartesianAxis("value", nil, props.XAxisName, 30, true, palette, props.Formatters.XAxisLabel)
		tree["yAxis"] = cartesianAxis("category", categories, props.YAxisName, 45, false, palette, props.Formatters.YAxisLabel)
	} else {
		tree["xAxis"] = cartesianAxis("category", categories, props.XAxisName, 30, false, palette, props.Formatters.XAxisLabel)
		tree["yAxis"] = cartesianAxis("value", nil, props.YAxisName, 45, true, palette, props.Formatters.YAxisLabel)
	}

	radius := []any{4, 4, 0, 0}
	labelPosition := "top"
	if horizontal {
		radius = []any{0, 4, 4, 0}
		labelPosition = "right"
	}

	series := make([]any, 0, len(props.Series))
	for i, s := range props.Series {
		itemStyle := map[string]any{"borderRadius": cloneValue(radius)}
		entry := map[string]any{
			"type":      "bar",
			"itemStyle": itemStyle,
		}
		if len(s.Colors) > 0 {
			// Multi-color single series: colors apply per data item.
			entry["color"] = stringsToAny(s.Colors)
		} else {
			itemStyle["color"] = itemColor(s, i, palette)
		}
		if label := formatterValue(props.Formatters.BarLabel); label != nil {
			entry["label"] = map[string]any{
				"show":      true,
				"position":  labelPosition,
				"formatter": label,
				"color":     palette.Text,
			}
		}
		applySeriesSpec(entry, s)
		series = append(series, entry)
	}
	tree["series"] = series
	return tree, nil
}
