package chart

// buildPie expects a single series; additional series are ignored.
func buildPie(props Props, palette Palette) (OptionTree, error) {
	tree := baseTree(props, palette)
	if title, ok := tree["title"].(map[string]any); ok {
		title["top"] = 10
	}

	var spec SeriesSpec
	if len(props.Series) > 0 {
		spec = props.Series[0]
	}

	names := dataNames(spec.Data)
	if len(props.LegendData) > 0 {
		names = stringsToAny(props.LegendData)
	}
	legend := map[string]any{
		"orient":     "horizontal",
		"bottom":     10,
		"itemWidth":  12,
		"itemHeight": 12,
		"icon":       "square",
		"textStyle":  map[string]any{"color": palette.Text},
		"data":       names,
	}
	setIf(legend, "formatter", formatterValue(props.Formatters.Legend))
	tree["legend"] = legend

	label := map[string]any{
		"show":  false,
		"color": palette.Text,
	}
	setIf(label, "formatter", formatterValue(props.Formatters.Label))

	series := map[string]any{
		"type":              "pie",
		"radius":            []any{"40%", "70%"},
		"center":            []any{"50%", "50%"},
		"avoidLabelOverlap": true,
		"itemStyle": map[string]any{
			"borderRadius": 10,
			"borderColor":  palette.PieBorder,
			"borderWidth":  2,
		},
		"label":     label,
		"labelLine": map[string]any{"show": false},
		"emphasis": map[string]any{
			"label": map[string]any{
				"show":       true,
				"fontSize":   16,
				"fontWeight": "bold",
				"color":      palette.Text,
			},
		},
		"color": palette.CategoryList(),
	}
	if len(spec.Colors) > 0 {
		series["color"] = stringsToAny(spec.Colors)
	}
	applySeriesSpec(series, spec)
	tree["series"] = series
	return tree, nil
}
